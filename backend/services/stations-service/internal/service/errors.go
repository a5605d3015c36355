package service

import "errors"

var (
	// ErrInvalidInput wraps every validation failure; the message after the prefix is
	// safe to show to clients.
	ErrInvalidInput = errors.New("stations: invalid input")
)

type inputError struct{ msg string }

func (e *inputError) Error() string { return "stations: " + e.msg }

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
