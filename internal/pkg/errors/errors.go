package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены
	// (сессия, вопрос, токен возобновления).
	ErrNotFound = errors.New("record not found")

	// ErrConflict используется для конфликтов состояния
	// (например, имя сессии уже занято в рамках викторины).
	ErrConflict = errors.New("resource state conflict")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия
	// (например, чужая сессия).
	ErrForbidden = errors.New("forbidden")
)
