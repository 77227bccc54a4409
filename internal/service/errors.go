package service

import "errors"

// Доменные исходы сервисного слоя, не являющиеся сбоями хранилища
var (
	// ErrNothingToRetry — у сессии нет неверно отвеченных вопросов,
	// производная сессия не создается
	ErrNothingToRetry = errors.New("no incorrect questions to retry")

	// ErrNothingBookmarked — у сессии нет вопросов с закладкой
	ErrNothingBookmarked = errors.New("no bookmarked questions to retry")
)
