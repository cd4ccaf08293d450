package advisor

import (
	"errors"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

// User-visible messages for collaborator failures.
const (
	MsgInvalidRemediationInput = "Invalid input provided for remediation."
	MsgRemediationFailed       = "An unexpected error occurred while generating remediation suggestions."
	MsgSummaryFailed           = "Could not generate summary."
)

// UserMessage maps a Suggest error to the text shown to the user. Invalid input
// gets its own message; every other failure is reported generically, since the
// user's only recourse is to try again.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return MsgInvalidRemediationInput
	}
	if errors.Is(err, schemas.ErrNotFound) {
		return "Scan result not found."
	}
	return MsgRemediationFailed
}

// InputError marks a request rejected before any remote call was made. It
// wraps schemas.ErrSchemaValidationFailed.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return e.Err.Error() }
func (e *InputError) Unwrap() error { return e.Err }
