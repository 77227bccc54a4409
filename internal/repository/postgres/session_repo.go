package postgres

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/quizdrill-api/internal/domain/entity"
	"github.com/yourusername/quizdrill-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizdrill-api/internal/pkg/errors"
)

// SessionRepo реализует repository.SessionRepository
type SessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo создает новый репозиторий сессий
func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// CreateWithQuestions атомарно вставляет сессию и пачку ее назначений.
// Порядковые номера 0..N-1 присваиваются в порядке questionIDs. Нарушение
// уникальности (name, quiz_id) — например, проигранная гонка с параллельным
// созданием — откатывает транзакцию целиком и возвращает ErrConflict:
// частично созданная сессия не видна читателям никогда.
func (r *SessionRepo) CreateWithQuestions(session *entity.QuizSession, questionIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}

		if len(questionIDs) == 0 {
			// Викторина без вопросов: сессия без назначений, сразу завершена
			return nil
		}

		assignments := make([]entity.SessionQuestion, len(questionIDs))
		for idx, questionID := range questionIDs {
			assignments[idx] = entity.SessionQuestion{
				SessionID:      session.ID,
				QuestionID:     questionID,
				QuestionNumber: idx,
			}
		}
		return tx.Create(&assignments).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: session name %q already in use for quiz #%d",
				apperrors.ErrConflict, session.Name, session.QuizID)
		}
		return err
	}

	log.Printf("[SessionRepo] session created for quiz=%d: session_id=%d, questions=%d, mode=%s",
		session.QuizID, session.ID, len(questionIDs), session.SelectionMode)
	return nil
}

// GetByToken ищет сессию по токену возобновления
func (r *SessionRepo) GetByToken(token string) (*entity.QuizSession, error) {
	var session entity.QuizSession
	err := r.db.Where("session_token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByID возвращает сессию по ID
func (r *SessionRepo) GetByID(id uint) (*entity.QuizSession, error) {
	var session entity.QuizSession
	err := r.db.First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// NameExists сообщает, занято ли имя сессии в рамках викторины.
// Это оптимистичная предварительная проверка для дружелюбной ошибки;
// авторитетно уникальность обеспечивает constraint БД.
func (r *SessionRepo) NameExists(name string, quizID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.QuizSession{}).
		Where("name = ? AND quiz_id = ?", name, quizID).
		Count(&count).Error
	return count > 0, err
}

// Rename переименовывает сессию; гонку по имени ловит тот же unique constraint
func (r *SessionRepo) Rename(id uint, newName string) error {
	err := r.db.Model(&entity.QuizSession{}).
		Where("id = ?", id).
		Update("name", newName).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: session name %q already in use", apperrors.ErrConflict, newName)
	}
	return err
}

// Delete удаляет сессию; назначения и ответы удаляются каскадно (FK ON DELETE CASCADE)
func (r *SessionRepo) Delete(id uint) error {
	return r.db.Delete(&entity.QuizSession{}, id).Error
}

// CountByQuizID возвращает число сессий викторины
func (r *SessionRepo) CountByQuizID(quizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.QuizSession{}).
		Where("quiz_id = ?", quizID).
		Count(&count).Error
	return count, err
}

// ListByQuizID возвращает сессии викторины с агрегированным прогрессом, новые первыми
func (r *SessionRepo) ListByQuizID(quizID uint) ([]repository.SessionOverview, error) {
	overviews := []repository.SessionOverview{}
	err := r.db.Model(&entity.QuizSession{}).
		Select(`quiz_sessions.id AS session_id,
			quiz_sessions.name,
			quiz_sessions.session_token,
			quiz_sessions.selection_mode,
			quiz_sessions.created_at,
			COUNT(sq.id) FILTER (WHERE sq.is_correct IS NOT NULL) AS answered,
			COUNT(sq.id) FILTER (WHERE sq.is_correct = TRUE) AS correct,
			COUNT(sq.id) AS total`).
		Joins("LEFT JOIN session_questions sq ON sq.session_id = quiz_sessions.id").
		Where("quiz_sessions.quiz_id = ?", quizID).
		Group("quiz_sessions.id").
		Order("quiz_sessions.id DESC").
		Scan(&overviews).Error
	return overviews, err
}

// FindIncomplete ищет последнюю незавершенную сессию с данным именем в рамках викторины
func (r *SessionRepo) FindIncomplete(name string, quizID uint) (*entity.QuizSession, error) {
	var session entity.QuizSession
	err := r.db.
		Where("name = ? AND quiz_id = ?", name, quizID).
		Where(`id IN (
			SELECT s.id FROM quiz_sessions s
			LEFT JOIN session_questions sq ON sq.session_id = s.id
			GROUP BY s.id
			HAVING COUNT(sq.id) > 0
			   AND COUNT(sq.id) FILTER (WHERE sq.is_correct IS NOT NULL) < COUNT(sq.id)
		)`).
		Order("id DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
