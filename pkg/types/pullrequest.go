package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRepository is returned when no owner/name pair was supplied.
	ErrMissingRepository = errors.New("repository is required")
	// ErrMissingNumber is returned when the pull request number is unset.
	ErrMissingNumber = errors.New("pull request number is required")
)

// PullRequestRef identifies a pull request on the hosting service
type PullRequestRef struct {
	Owner  string
	Name   string
	Number int
}

// ParseRepository splits an "owner/name" identifier into its parts
func ParseRepository(repository string) (owner, name string, err error) {
	repository = strings.TrimSpace(repository)
	if repository == "" {
		return "", "", ErrMissingRepository
	}

	repository = strings.TrimPrefix(repository, "https://github.com/")
	parts := strings.Split(strings.Trim(repository, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed repository %q: expected owner/name", repository)
	}

	return parts[0], parts[1], nil
}

// Validate reports whether the reference can address a pull request
func (r PullRequestRef) Validate() error {
	var errs []error
	if r.Owner == "" || r.Name == "" {
		errs = append(errs, ErrMissingRepository)
	}
	if r.Number <= 0 {
		errs = append(errs, ErrMissingNumber)
	}
	return errors.Join(errs...)
}

// Repository returns the "owner/name" identifier
func (r PullRequestRef) Repository() string {
	return r.Owner + "/" + r.Name
}

func (r PullRequestRef) String() string {
	return fmt.Sprintf("%s#%d", r.Repository(), r.Number)
}
