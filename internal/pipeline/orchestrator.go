package pipeline

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clintrovert/prdesc/internal/generator"
	"github.com/clintrovert/prdesc/internal/prbody"
	"github.com/clintrovert/prdesc/pkg/types"
)

// PullRequests is the slice of the hosting API the pipeline needs
type PullRequests interface {
	FetchDiff(ctx context.Context, ref types.PullRequestRef) (string, error)
	GetBody(ctx context.Context, ref types.PullRequestRef) (string, error)
	UpdateBody(ctx context.Context, ref types.PullRequestRef, body string) error
}

// Options controls a run
type Options struct {
	// RequestTimeout bounds each external call. Zero leaves calls unbounded.
	RequestTimeout time.Duration
	DryRun         bool
}

// Orchestrator fetches a diff, generates a description and writes it into the PR body
type Orchestrator struct {
	pullRequests PullRequests
	generator    generator.Generator
	opts         Options
	logger       *zap.Logger
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	pullRequests PullRequests,
	gen generator.Generator,
	opts Options,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		pullRequests: pullRequests,
		generator:    gen,
		opts:         opts,
		logger:       logger,
	}
}

// Run describes a single pull request
func (o *Orchestrator) Run(ctx context.Context, ref types.PullRequestRef, title string) types.Result {
	if err := ref.Validate(); err != nil {
		o.logger.Warn("missing pull request coordinates, nothing to do", zap.Error(err))
		return types.Failed(types.ReasonMissingInput, err.Error())
	}

	logger := o.logger.With(zap.String("pull_request", ref.String()))
	logger.Info("describing pull request", zap.String("title", title))

	diff, err := o.fetchDiff(ctx, ref)
	if err != nil {
		logger.Error("failed to fetch diff", zap.Error(err))
		return types.Failed(types.ReasonFetchFailed, err.Error())
	}
	if strings.TrimSpace(diff) == "" {
		logger.Warn("pull request diff is empty, skipping")
		return types.Failed(types.ReasonEmptyDiff, "pull request diff is empty")
	}

	description, degraded := o.describe(ctx, title, diff, logger)

	body, err := o.currentBody(ctx, ref)
	if err != nil {
		logger.Error("failed to read pull request body", zap.Error(err))
		result := types.Failed(types.ReasonReadBodyFailed, err.Error())
		result.Degraded = degraded
		return result
	}

	updated := prbody.Splice(body, description)

	if o.opts.DryRun {
		logger.Info("dry run, not updating pull request", zap.String("body", updated))
		return types.Result{
			Success:  true,
			Reason:   types.ReasonOK,
			Message:  "dry run",
			Degraded: degraded,
			Body:     updated,
		}
	}

	if err := o.updateBody(ctx, ref, updated); err != nil {
		logger.Error("failed to update pull request description", zap.Error(err))
		result := types.Failed(types.ReasonUpdateFailed, err.Error())
		result.Degraded = degraded
		return result
	}

	logger.Info("successfully updated pull request description", zap.Bool("degraded", degraded))

	return types.Result{
		Success:  true,
		Reason:   types.ReasonOK,
		Message:  "pull request description updated",
		Degraded: degraded,
		Body:     updated,
	}
}

// describe returns the generated description, or the fallback text and true when generation failed
func (o *Orchestrator) describe(ctx context.Context, title, diff string, logger *zap.Logger) (string, bool) {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	description, err := o.generator.Generate(ctx, title, diff)
	if err != nil {
		logger.Error("failed to generate pull request description", zap.Error(err))
		return generator.FallbackDescription, true
	}
	return description, false
}

func (o *Orchestrator) fetchDiff(ctx context.Context, ref types.PullRequestRef) (string, error) {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()
	return o.pullRequests.FetchDiff(ctx, ref)
}

func (o *Orchestrator) currentBody(ctx context.Context, ref types.PullRequestRef) (string, error) {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()
	return o.pullRequests.GetBody(ctx, ref)
}

func (o *Orchestrator) updateBody(ctx context.Context, ref types.PullRequestRef, body string) error {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()
	return o.pullRequests.UpdateBody(ctx, ref, body)
}

func (o *Orchestrator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.opts.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.opts.RequestTimeout)
}
