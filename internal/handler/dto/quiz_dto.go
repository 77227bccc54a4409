package dto

import (
	"time"

	"github.com/yourusername/quizdrill-api/internal/domain/entity"
	"github.com/yourusername/quizdrill-api/internal/domain/repository"
)

// QuizResponse представляет викторину в формате для клиента
type QuizResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	QuestionCount int64     `json:"question_count"`
	SessionCount  int64     `json:"session_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizStatsResponse объединяет сводную и категорийную статистику викторины
type QuizStatsResponse struct {
	Overall    *repository.QuizOverallStats   `json:"overall"`
	Categories []repository.QuizCategoryStats `json:"categories"`
}

// NewQuizResponse создает DTO для викторины
func NewQuizResponse(quiz *entity.Quiz, questionCount, sessionCount int64) QuizResponse {
	return QuizResponse{
		ID:            quiz.ID,
		Name:          quiz.Name,
		QuestionCount: questionCount,
		SessionCount:  sessionCount,
		CreatedAt:     quiz.CreatedAt,
	}
}
