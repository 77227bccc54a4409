package repository

import (
	"time"

	"github.com/yourusername/quizdrill-api/internal/domain/entity"
)

// SessionOverview — строка списка сессий викторины с прогрессом,
// используется для дашборда и выбора сессии для возобновления.
type SessionOverview struct {
	SessionID     uint      `json:"session_id"`
	Name          string    `json:"name"`
	SessionToken  string    `json:"session_token"`
	SelectionMode string    `json:"selection_mode"`
	Answered      int       `json:"answered"`
	Correct       int       `json:"correct"`
	Total         int       `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

// SessionRepository определяет методы для работы с сессиями и их назначениями
type SessionRepository interface {
	// CreateWithQuestions атомарно вставляет строку сессии и пачку ее назначений
	// с порядковыми номерами 0..N-1 в порядке questionIDs. Либо сессия видна
	// читателям целиком, либо не видна вовсе. Гонка по уникальности
	// (name, quiz_id) приводит к откату всей транзакции и ErrConflict.
	CreateWithQuestions(session *entity.QuizSession, questionIDs []uint) error

	// GetByToken ищет сессию по токену возобновления
	GetByToken(token string) (*entity.QuizSession, error)

	// GetByID возвращает сессию по ID
	GetByID(id uint) (*entity.QuizSession, error)

	// NameExists сообщает, занято ли имя сессии в рамках викторины
	NameExists(name string, quizID uint) (bool, error)

	// Rename переименовывает сессию; уникальность имени в рамках викторины
	// гарантируется тем же constraint, что и при создании
	Rename(id uint, newName string) error

	// Delete удаляет сессию; назначения и ответы удаляются каскадно
	Delete(id uint) error

	// CountByQuizID возвращает число сессий викторины
	CountByQuizID(quizID uint) (int64, error)

	// ListByQuizID возвращает сессии викторины с агрегированным прогрессом,
	// новые первыми
	ListByQuizID(quizID uint) ([]SessionOverview, error)

	// FindIncomplete ищет последнюю незавершенную сессию с данным именем
	// в рамках викторины (для сценария возобновления по имени)
	FindIncomplete(name string, quizID uint) (*entity.QuizSession, error)
}
