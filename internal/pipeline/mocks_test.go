package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/clintrovert/prdesc/pkg/types"
)

type MockPullRequests struct {
	mock.Mock
}

func (m *MockPullRequests) FetchDiff(ctx context.Context, ref types.PullRequestRef) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

func (m *MockPullRequests) GetBody(ctx context.Context, ref types.PullRequestRef) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

func (m *MockPullRequests) UpdateBody(ctx context.Context, ref types.PullRequestRef, body string) error {
	args := m.Called(ctx, ref, body)
	return args.Error(0)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, title, diff string) (string, error) {
	args := m.Called(ctx, title, diff)
	return args.String(0), args.Error(1)
}
