package types

// Reason classifies how a run ended
type Reason string

const (
	ReasonOK             Reason = "ok"
	ReasonMissingInput   Reason = "missing_input"
	ReasonFetchFailed    Reason = "fetch_failed"
	ReasonEmptyDiff      Reason = "empty_diff"
	ReasonReadBodyFailed Reason = "read_body_failed"
	ReasonUpdateFailed   Reason = "update_failed"
)

// Result contains the outcome of a description run
type Result struct {
	Success bool
	Reason  Reason
	Message string
	// Degraded is set when the generator failed and the fallback text was used.
	Degraded bool
	// Body is the pull request body that was written, or would have been in a dry run.
	Body string
}

// Failed builds an unsuccessful result
func Failed(reason Reason, message string) Result {
	return Result{Success: false, Reason: reason, Message: message}
}
