package repository

import (
	"github.com/yourusername/quizdrill-api/internal/domain/entity"
)

// AnswerSummary — строка итогов по отвеченному вопросу сессии
type AnswerSummary struct {
	QuestionText   string `json:"question_text"`
	QuestionNumber int    `json:"question_number"`
	IsCorrect      bool   `json:"is_correct"`
	IsBookmarked   bool   `json:"is_bookmarked"`
}

// CategoryStat — агрегат точности по категории в рамках сессии
type CategoryStat struct {
	Category string  `json:"category"`
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// QuizOverallStats — сводная статистика по викторине за все сессии
type QuizOverallStats struct {
	TotalQuestions int64 `json:"total_questions"`
	UniqueAsked    int64 `json:"unique_asked"`
	TotalCorrect   int64 `json:"total_correct"`
	TotalAnswered  int64 `json:"total_answered"`
}

// QuizCategoryStats — покрытие и точность по категории за все сессии викторины
type QuizCategoryStats struct {
	Category        string `json:"category"`
	TotalInCategory int64  `json:"total_in_category"`
	UniqueAsked     int64  `json:"unique_asked"`
	TotalCorrect    int64  `json:"total_correct"`
	TotalAnswered   int64  `json:"total_answered"`
}

// AnswerRepository определяет методы для журнала ответов и состояния
// прохождения сессии (session_questions + user_answers).
type AnswerRepository interface {
	// CreateBatch добавляет журнальные записи об отправке ответа
	// (по одной на выбранный вариант). Журнал append-only.
	CreateBatch(answers []entity.UserAnswer) error

	// SetQuestionResult выставляет результат назначения. Повторный вызов
	// для того же вопроса перезаписывает результат (last-write-wins).
	SetQuestionResult(sessionID, questionID uint, isCorrect bool) error

	// ToggleBookmark инвертирует флаг закладки назначения и возвращает
	// новое состояние
	ToggleBookmark(sessionID, questionID uint) (bool, error)

	// Progress возвращает (отвечено, всего) для сессии
	Progress(sessionID uint) (entity.SessionProgress, error)

	// AssignmentOrdinal возвращает порядковый номер вопроса в сессии
	AssignmentOrdinal(sessionID, questionID uint) (int, error)

	// QuestionIDAt возвращает ID вопроса по порядковому номеру в сессии
	QuestionIDAt(sessionID uint, ordinal int) (uint, error)

	// IsAnswered сообщает, есть ли хотя бы одна журнальная запись
	// по вопросу сессии
	IsAnswered(sessionID, questionID uint) (bool, error)

	// SelectedOptionIDs возвращает все варианты, когда-либо отправленные
	// по вопросу сессии
	SelectedOptionIDs(sessionID, questionID uint) ([]uint, error)

	// CorrectAnswerCount возвращает число назначений сессии с верным результатом
	CorrectAnswerCount(sessionID uint) (int, error)

	// IncorrectQuestionIDs возвращает различные ID вопросов сессии
	// с неверным результатом
	IncorrectQuestionIDs(sessionID uint) ([]uint, error)

	// BookmarkedQuestionIDs возвращает ID вопросов сессии с закладкой
	BookmarkedQuestionIDs(sessionID uint) ([]uint, error)

	// AnsweredSummaries возвращает итоги только по отвеченным вопросам
	// в порядке назначения
	AnsweredSummaries(sessionID uint) ([]AnswerSummary, error)

	// CategoryStats возвращает точность по категориям для отвеченных
	// вопросов сессии
	CategoryStats(sessionID uint) ([]CategoryStat, error)

	// QuizOverallStats возвращает сводную статистику викторины за все сессии
	QuizOverallStats(quizID uint) (*QuizOverallStats, error)

	// QuizCategoryStats возвращает статистику викторины по категориям
	QuizCategoryStats(quizID uint) ([]QuizCategoryStats, error)
}
