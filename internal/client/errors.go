package client

import (
	"errors"
	"fmt"
)

var (
	ErrTransport          = errors.New("сервис контента недоступен по сети")
	ErrServiceUnavailable = errors.New("сервис контента временно недоступен")
	ErrDecode             = errors.New("неверный формат ответа сервиса")
	ErrNotFound           = errors.New("блог не найден")
	ErrUnexpectedStatus   = errors.New("неожиданный статус ответа")
	ErrInvalidArgument    = errors.New("неверный аргумент")
	ErrInvalidPayload     = errors.New("неверные данные блога")
)

// Error is returned by every Client operation. Kind is one of the sentinels above
// and Err, when set, is the underlying cause.
type Error struct {
	Op         string
	Kind       error
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by a client error, or 0
func StatusCode(err error) int {
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode
	}
	return 0
}
