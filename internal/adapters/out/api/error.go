package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	// Транспортная ошибка: сеть, таймаут, обрыв
	ErrorKindNetwork ErrorKind = "network"
	// Не-2xx без осмысленного тела
	ErrorKindHTTP ErrorKind = "http"
	// 4xx с сообщением от бэкенда, показывается пользователю как есть
	ErrorKindValidation ErrorKind = "validation"
)

// Error - нормализованная ошибка на границе адаптера
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func newNetworkError(err error) *Error {
	return &Error{
		Kind:    ErrorKindNetwork,
		Message: err.Error(),
	}
}

func newStatusError(status int, body []byte) *Error {
	var env envelope
	message := ""
	if err := json.Unmarshal(body, &env); err == nil {
		message = env.Message
	}

	if status >= http.StatusBadRequest && status < http.StatusInternalServerError &&
		status != http.StatusUnauthorized && message != "" {
		return &Error{
			Kind:    ErrorKindValidation,
			Status:  status,
			Message: message,
		}
	}

	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{
		Kind:    ErrorKindHTTP,
		Status:  status,
		Message: message,
	}
}

// IsUnauthorized сообщает, отверг ли бэкенд предъявленный токен
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}
	return false
}
