package schedule

// ErrorCode identifies why a form field failed validation. The empty code
// means the field is valid.
type ErrorCode string

const (
	CodeNone             ErrorCode = ""
	CodeRequired         ErrorCode = "required"
	CodeMinDate          ErrorCode = "minDate"
	CodeMaxDate          ErrorCode = "maxDate"
	CodeInvalidDateRange ErrorCode = "invalidDateRange"
	CodeInvalid          ErrorCode = "invalid"
)

var errorMessages = map[ErrorCode]string{
	CodeRequired:         "this field is required",
	CodeMinDate:          "date is before the earliest allowed day",
	CodeMaxDate:          "date is after the latest allowed day",
	CodeInvalidDateRange: "end must be after start",
	CodeInvalid:          "invalid field",
}

// Message returns the human-readable text for a code, with a generic
// fallback for codes without a specific message.
func (c ErrorCode) Message() string {
	if c == CodeNone {
		return ""
	}
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return errorMessages[CodeInvalid]
}
