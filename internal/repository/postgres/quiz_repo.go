package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizdrill-api/internal/domain/entity"
	"github.com/yourusername/quizdrill-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizdrill-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает новую викторину
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID возвращает викторину по ID
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// ListByOwner возвращает викторины владельца с агрегатами для дашборда
func (r *QuizRepo) ListByOwner(ownerID uint) ([]repository.QuizOverview, error) {
	overviews := []repository.QuizOverview{}
	err := r.db.Model(&entity.Quiz{}).
		Select(`quizzes.id AS quiz_id,
			quizzes.name,
			quizzes.created_at,
			COUNT(DISTINCT q.id) AS question_count,
			COUNT(DISTINCT s.id) AS session_count`).
		Joins("LEFT JOIN questions q ON q.quiz_id = quizzes.id").
		Joins("LEFT JOIN quiz_sessions s ON s.quiz_id = quizzes.id").
		Where("quizzes.owner_id = ?", ownerID).
		Group("quizzes.id").
		Order("quizzes.id DESC").
		Scan(&overviews).Error
	return overviews, err
}

// Rename переименовывает викторину
func (r *QuizRepo) Rename(id uint, newName string) error {
	return r.db.Model(&entity.Quiz{}).
		Where("id = ?", id).
		Update("name", newName).Error
}

// Delete удаляет викторину; вопросы, варианты и сессии удаляются каскадно
func (r *QuizRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Quiz{}, id).Error
}
