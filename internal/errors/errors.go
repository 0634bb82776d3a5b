// Package errors описывает ошибки, общие для расчетного ядра и внешних
// интерфейсов. Любое нарушение предусловия возвращается как InvalidInput,
// поэтому вызывающий код проверяет его через errors.Is независимо от текста.
package errors

import (
	"fmt"
	"net/http"
)

// AppError - структурированная ошибка приложения: код, сообщение,
// HTTP-статус и необязательная внутренняя причина
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Internal }

// Is сравнивает ошибки по коду
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap создает копию sentinel с внутренней причиной
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage создает копию sentinel со своим сообщением
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// InvalidInput возвращает ErrInvalidInput с описанием нарушенного условия
func InvalidInput(format string, args ...interface{}) error {
	return WithMessage(ErrInvalidInput, fmt.Sprintf(format, args...))
}

var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrToolNotFound   = &AppError{Code: "TOOL_NOT_FOUND", Message: "Tool not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)
