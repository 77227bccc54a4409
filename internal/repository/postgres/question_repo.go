package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizdrill-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizdrill-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// GetByID возвращает вопрос вместе с вариантами ответа
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.Preload("Options").First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// AllQuestionIDs возвращает все ID вопросов викторины в стабильном порядке
func (r *QuestionRepo) AllQuestionIDs(quizID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.Model(&entity.Question{}).
		Where("quiz_id = ?", quizID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// NeverAssignedQuestionIDs возвращает ID вопросов, ни разу не попадавших
// в назначения сессий данной викторины. Владелец сессии не учитывается:
// "задавался" означает задавался хоть кому-нибудь.
func (r *QuestionRepo) NeverAssignedQuestionIDs(quizID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.Model(&entity.Question{}).
		Where("quiz_id = ?", quizID).
		Where(`id NOT IN (
			SELECT DISTINCT sq.question_id
			FROM session_questions sq
			JOIN quiz_sessions s ON s.id = sq.session_id
			WHERE s.quiz_id = ?
		)`, quizID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// PreviouslyIncorrectQuestionIDs возвращает ID вопросов, хотя бы раз
// отмеченных неверными в какой-либо сессии викторины
func (r *QuestionRepo) PreviouslyIncorrectQuestionIDs(quizID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.Model(&entity.SessionQuestion{}).
		Distinct("session_questions.question_id").
		Joins("JOIN quiz_sessions s ON s.id = session_questions.session_id").
		Where("s.quiz_id = ? AND session_questions.is_correct = FALSE", quizID).
		Order("session_questions.question_id").
		Pluck("session_questions.question_id", &ids).Error
	return ids, err
}

// CorrectOptionIDs возвращает ID правильных вариантов вопроса
func (r *QuestionRepo) CorrectOptionIDs(questionID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.Model(&entity.Option{}).
		Where("question_id = ? AND is_answer = TRUE", questionID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// CountByQuizID возвращает размер банка вопросов викторины
func (r *QuestionRepo) CountByQuizID(quizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Question{}).
		Where("quiz_id = ?", quizID).
		Count(&count).Error
	return count, err
}
