package service

import "errors"

var (
	// ErrInvalidInput wraps every validation failure.
	ErrInvalidInput = errors.New("routes: invalid input")
	// ErrUpstream means a directions or geocoding provider call failed.
	ErrUpstream = errors.New("routes: upstream failure")
	// ErrNotFound is returned when geocoding has no match.
	ErrNotFound = errors.New("routes: place not found")
)

type inputError struct{ msg string }

func (e *inputError) Error() string { return "routes: " + e.msg }

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
