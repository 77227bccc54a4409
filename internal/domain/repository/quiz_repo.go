package repository

import (
	"time"

	"github.com/yourusername/quizdrill-api/internal/domain/entity"
)

// QuizOverview — строка дашборда владельца: викторина с агрегатами
// по числу вопросов и сессий.
type QuizOverview struct {
	QuizID        uint      `json:"quiz_id"`
	Name          string    `json:"name"`
	QuestionCount int64     `json:"question_count"`
	SessionCount  int64     `json:"session_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	ListByOwner(ownerID uint) ([]QuizOverview, error)
	Rename(id uint, newName string) error
	Delete(id uint) error
}
