package service

import "errors"

var (
	// ErrInvalidInput wraps every validation failure.
	ErrInvalidInput = errors.New("revenue: invalid input")
	// ErrNoTariff is returned when neither an active nor a default tariff exists.
	ErrNoTariff = errors.New("revenue: no tariff configured")
)

type inputError struct{ msg string }

func (e *inputError) Error() string { return "revenue: " + e.msg }

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
