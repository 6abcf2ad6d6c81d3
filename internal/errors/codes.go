package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeResourceExhausted  Code = "RESOURCE_EXHAUSTED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeAborted            Code = "ABORTED"
	CodeOutOfRange         Code = "OUT_OF_RANGE"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Rejection reports whether the code describes a request the player can fix
// (bad argument, missing item, exhausted quota) rather than a system fault.
// Rejections are reported back to the chat; faults are logged.
func (c Code) Rejection() bool {
	switch c {
	case CodeInvalidArgument,
		CodeNotFound,
		CodeAlreadyExists,
		CodeResourceExhausted,
		CodeFailedPrecondition,
		CodeOutOfRange:
		return true
	default:
		return false
	}
}

// Retryable reports whether repeating the same call may succeed without any change
func (c Code) Retryable() bool {
	return c == CodeAborted || c == CodeUnavailable
}
