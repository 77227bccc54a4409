package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizdrill-api/internal/domain/entity"
	"github.com/yourusername/quizdrill-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizdrill-api/internal/pkg/errors"
)

// AnswerRepo реализует repository.AnswerRepository
type AnswerRepo struct {
	db *gorm.DB
}

// NewAnswerRepo создает новый репозиторий ответов
func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// CreateBatch добавляет журнальные записи об отправке ответа одной вставкой.
// Журнал append-only: повторные отправки не удаляют прежние строки.
func (r *AnswerRepo) CreateBatch(answers []entity.UserAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.Create(&answers).Error
}

// SetQuestionResult выставляет результат назначения (last-write-wins)
func (r *AnswerRepo) SetQuestionResult(sessionID, questionID uint, isCorrect bool) error {
	result := r.db.Model(&entity.SessionQuestion{}).
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		Update("is_correct", isCorrect)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ToggleBookmark атомарно инвертирует флаг закладки одним UPDATE
// и возвращает новое состояние; конкурентные переключения не теряются
func (r *AnswerRepo) ToggleBookmark(sessionID, questionID uint) (bool, error) {
	var newState bool
	result := r.db.Raw(
		`UPDATE session_questions
		 SET is_bookmarked = NOT is_bookmarked
		 WHERE session_id = ? AND question_id = ?
		 RETURNING is_bookmarked`,
		sessionID, questionID,
	).Scan(&newState)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, apperrors.ErrNotFound
	}
	return newState, nil
}

// Progress возвращает (отвечено, всего) для сессии одним запросом
func (r *AnswerRepo) Progress(sessionID uint) (entity.SessionProgress, error) {
	var progress entity.SessionProgress
	err := r.db.Model(&entity.SessionQuestion{}).
		Select("COUNT(*) FILTER (WHERE is_correct IS NOT NULL) AS answered, COUNT(*) AS total").
		Where("session_id = ?", sessionID).
		Scan(&progress).Error
	return progress, err
}

// AssignmentOrdinal возвращает порядковый номер вопроса в сессии
func (r *AnswerRepo) AssignmentOrdinal(sessionID, questionID uint) (int, error) {
	var assignment entity.SessionQuestion
	err := r.db.Select("question_number").
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrNotFound
		}
		return 0, err
	}
	return assignment.QuestionNumber, nil
}

// QuestionIDAt возвращает ID вопроса по порядковому номеру в сессии
func (r *AnswerRepo) QuestionIDAt(sessionID uint, ordinal int) (uint, error) {
	var assignment entity.SessionQuestion
	err := r.db.Select("question_id").
		Where("session_id = ? AND question_number = ?", sessionID, ordinal).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrNotFound
		}
		return 0, err
	}
	return assignment.QuestionID, nil
}

// IsAnswered сообщает, отправлялся ли хоть один ответ по вопросу сессии
func (r *AnswerRepo) IsAnswered(sessionID, questionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.UserAnswer{}).
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		Count(&count).Error
	return count > 0, err
}

// SelectedOptionIDs возвращает все варианты, отправленные по вопросу сессии
func (r *AnswerRepo) SelectedOptionIDs(sessionID, questionID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.Model(&entity.UserAnswer{}).
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		Order("id").
		Pluck("option_id", &ids).Error
	return ids, err
}

// CorrectAnswerCount считает верные назначения по session_questions:
// журнал user_answers для подсчета очков не используется
func (r *AnswerRepo) CorrectAnswerCount(sessionID uint) (int, error) {
	var count int64
	err := r.db.Model(&entity.SessionQuestion{}).
		Where("session_id = ? AND is_correct = TRUE", sessionID).
		Count(&count).Error
	return int(count), err
}

// IncorrectQuestionIDs возвращает различные ID вопросов сессии с неверным результатом
func (r *AnswerRepo) IncorrectQuestionIDs(sessionID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.Model(&entity.SessionQuestion{}).
		Distinct("question_id").
		Where("session_id = ? AND is_correct = FALSE", sessionID).
		Order("question_id").
		Pluck("question_id", &ids).Error
	return ids, err
}

// BookmarkedQuestionIDs возвращает ID вопросов сессии с закладкой
func (r *AnswerRepo) BookmarkedQuestionIDs(sessionID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.Model(&entity.SessionQuestion{}).
		Where("session_id = ? AND is_bookmarked = TRUE", sessionID).
		Order("question_number").
		Pluck("question_id", &ids).Error
	return ids, err
}

// AnsweredSummaries возвращает итоги по отвеченным вопросам в порядке назначения
func (r *AnswerRepo) AnsweredSummaries(sessionID uint) ([]repository.AnswerSummary, error) {
	summaries := []repository.AnswerSummary{}
	err := r.db.Model(&entity.SessionQuestion{}).
		Select(`q.question_text AS question_text,
			session_questions.question_number,
			session_questions.is_correct,
			session_questions.is_bookmarked`).
		Joins("JOIN questions q ON q.id = session_questions.question_id").
		Where("session_questions.session_id = ? AND session_questions.is_correct IS NOT NULL", sessionID).
		Order("session_questions.question_number").
		Scan(&summaries).Error
	return summaries, err
}

// CategoryStats возвращает точность по категориям для отвеченных вопросов сессии
func (r *AnswerRepo) CategoryStats(sessionID uint) ([]repository.CategoryStat, error) {
	stats := []repository.CategoryStat{}
	err := r.db.Model(&entity.SessionQuestion{}).
		Select(`q.category AS category,
			COUNT(*) AS total,
			SUM(CASE WHEN session_questions.is_correct THEN 1 ELSE 0 END) AS correct,
			ROUND(SUM(CASE WHEN session_questions.is_correct THEN 1 ELSE 0 END)::NUMERIC * 100.0 / COUNT(*), 1)::FLOAT8 AS accuracy`).
		Joins("JOIN questions q ON q.id = session_questions.question_id").
		Where("session_questions.session_id = ? AND q.category IS NOT NULL AND session_questions.is_correct IS NOT NULL", sessionID).
		Group("q.category").
		Order("q.category").
		Scan(&stats).Error
	return stats, err
}

// QuizOverallStats возвращает сводную статистику викторины за все сессии
func (r *AnswerRepo) QuizOverallStats(quizID uint) (*repository.QuizOverallStats, error) {
	var stats repository.QuizOverallStats

	err := r.db.Model(&entity.Question{}).
		Where("quiz_id = ?", quizID).
		Count(&stats.TotalQuestions).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&entity.SessionQuestion{}).
		Select(`COUNT(DISTINCT session_questions.question_id) AS unique_asked,
			COALESCE(SUM(CASE WHEN session_questions.is_correct THEN 1 ELSE 0 END), 0) AS total_correct,
			COUNT(*) AS total_answered`).
		Joins("JOIN quiz_sessions s ON s.id = session_questions.session_id").
		Where("s.quiz_id = ? AND session_questions.is_correct IS NOT NULL", quizID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// QuizCategoryStats возвращает покрытие и точность по категориям викторины
func (r *AnswerRepo) QuizCategoryStats(quizID uint) ([]repository.QuizCategoryStats, error) {
	stats := []repository.QuizCategoryStats{}
	err := r.db.Model(&entity.Question{}).
		Select(`questions.category AS category,
			COUNT(DISTINCT questions.id) AS total_in_category,
			COUNT(DISTINCT CASE WHEN sq.is_correct IS NOT NULL THEN sq.question_id END) AS unique_asked,
			COALESCE(SUM(CASE WHEN sq.is_correct THEN 1 ELSE 0 END), 0) AS total_correct,
			COUNT(CASE WHEN sq.is_correct IS NOT NULL THEN 1 END) AS total_answered`).
		Joins("LEFT JOIN session_questions sq ON sq.question_id = questions.id").
		Where("questions.quiz_id = ? AND questions.category IS NOT NULL", quizID).
		Group("questions.category").
		Order("questions.category").
		Scan(&stats).Error
	return stats, err
}
