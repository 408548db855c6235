package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
)

// StatusError carries the HTTP status of a failed GitHub API call
type StatusError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github api returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status of a failed call, or 0 for transport errors
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// describeError turns go-github response errors into StatusError and passes others through
func describeError(err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return &StatusError{
			StatusCode: errResp.Response.StatusCode,
			Message:    errResp.Message,
			Err:        err,
		}
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return &StatusError{
			StatusCode: rateErr.Response.StatusCode,
			Message:    rateErr.Message,
			Err:        err,
		}
	}

	return err
}
