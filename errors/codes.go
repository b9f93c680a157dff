package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested file or resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeIO indicates reading input or writing output failed.
	ErrCodeIO ErrorCode = "IO_ERROR"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Exit statuses, following the BSD sysexits conventions.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
	ExitIOErr    = 74
)

var exitCodes = map[ErrorCode]int{
	ErrCodeInvalidInput:  ExitUsage,
	ErrCodeMissingField:  ExitUsage,
	ErrCodeInvalidFormat: ExitDataErr,
	ErrCodeNotFound:      ExitNoInput,
	ErrCodeIO:            ExitIOErr,
	ErrCodeInternal:      ExitSoftware,
}

// ExitCodeFor returns the process exit status for an error code.
func ExitCodeFor(code ErrorCode) int {
	if c, ok := exitCodes[code]; ok {
		return c
	}
	return ExitFailure
}
