package generator

import "fmt"

// Error is the single failure kind this package reports. Configuration
// problems, extraction failures, storage collisions and failed
// recognition jobs all surface as one of these, carrying a message fit
// for an operator.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("subtitle generation failed: %s: %v", e.Message, e.Err)
	}
	return "subtitle generation failed: " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func failf(cause error, format string, args ...interface{}) error {
	return &Error{Message: fmt.Sprintf(format, args...), Err: cause}
}
