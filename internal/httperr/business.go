package httperr

import "errors"

// Engine outcome codes. Everything except CodeStoreUnavailable requires the
// caller to change the request rather than retry it.
const (
	CodeValidation         = "validation_error"
	CodeSlotConflict       = "slot_conflict"
	CodeCancellationWindow = "cancellation_window"
	CodeInvalidSchedule    = "invalid_schedule"
	CodeStoreUnavailable   = "store_unavailable"
	CodeNotAuthenticated   = "not_authenticated"
	CodeNotFound           = "not_found"
	CodeNoData             = "no_data"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func ErrBusiness(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessMessage extracts the human-readable reason, falling back to the
// code itself.
func BusinessMessage(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		if be.Message != "" {
			return be.Message
		}
		return be.Code
	}
	return ""
}
