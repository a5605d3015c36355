package service

import "errors"

var (
	// ErrInvalidInput wraps every validation failure.
	ErrInvalidInput = errors.New("emergency: invalid input")
	// ErrNotFound is returned for unknown request ids.
	ErrNotFound = errors.New("emergency: request not found")
	// ErrInvalidTransition is returned when the status change is not allowed from the current status.
	ErrInvalidTransition = errors.New("emergency: status transition not allowed")
)

type inputError struct{ msg string }

func (e *inputError) Error() string { return "emergency: " + e.msg }

func (e *inputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(msg string) error { return &inputError{msg: msg} }

// InputMessage extracts the client facing validation message.
func InputMessage(err error) string {
	var ie *inputError
	if errors.As(err, &ie) {
		return ie.msg
	}
	return "invalid input"
}
