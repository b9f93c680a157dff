// Package validation provides input validation for subsl configuration and
// command-line arguments.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Failures are returned as
// errors.AppError with an INVALID_INPUT code and per-field details.
//
// # Struct Tag Validation
//
//	type Options struct {
//	    Format string `validate:"oneof=raw json spans"`
//	}
//	err := validation.Validate(opts)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(len(args) <= 1, "input", "at most one input file may be given")
//	err := v.Validate()
package validation
