package migrate

import (
	"strings"

	"github.com/ryclarke/gh-metadata-migrator/output"
)

// Status is the outcome of a transfer operation.
type Status string

const (
	Success Status = output.StatusSuccess
	Failed  Status = output.StatusFailed
)

// Result is returned by every transfer operation. Failures are carried in the
// result rather than returned as errors, so that one failed step never aborts a pair.
type Result struct {
	Status  Status
	Message string
}

func succeeded(message string) Result {
	return Result{Status: Success, Message: message}
}

func failed(message string) Result {
	return Result{Status: Failed, Message: message}
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Status == Success
}

// combine merges step results: Failed if any step failed, with the failure
// messages (prefixed by step name) joined by "; ".
func combine(steps []string, results []Result) Result {
	var messages []string

	for i, result := range results {
		if !result.OK() {
			messages = append(messages, steps[i]+": "+result.Message)
		}
	}

	if len(messages) > 0 {
		return failed(strings.Join(messages, "; "))
	}

	return succeeded("Success")
}
