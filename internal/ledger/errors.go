package ledger

import "errors"

type ValidationCode string

const (
	CodeWeightExceeded ValidationCode = "WEIGHT_EXCEEDED"
	CodeRequiredField  ValidationCode = "REQUIRED_FIELD"
	CodeDateOrder      ValidationCode = "DATE_ORDER"
	CodeInvalidValue   ValidationCode = "INVALID_VALUE"
	CodeUnknownStage   ValidationCode = "UNKNOWN_STAGE"
	CodeUnknownLine    ValidationCode = "UNKNOWN_BUDGET_LINE"
)

// ValidationError rejects an edit intent. The state it was applied to is
// left unchanged.
type ValidationError struct {
	Code    ValidationCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func invalid(code ValidationCode, field, msg string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidationCodeOf returns the code of a wrapped ValidationError, or "".
func ValidationCodeOf(err error) ValidationCode {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}
