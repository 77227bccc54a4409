package service

import (
	"fmt"
	"log"

	"github.com/yourusername/quizdrill-api/internal/domain/entity"
	"github.com/yourusername/quizdrill-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizdrill-api/internal/pkg/errors"
)

// AnswerResult — исход записи ответа
type AnswerResult struct {
	IsCorrect bool `json:"is_correct"`
	// IsLast истинно, когда отвечен вопрос с последним порядковым номером
	IsLast bool `json:"is_last"`
	// QuestionNumber — порядковый номер отвеченного вопроса
	QuestionNumber int `json:"question_number"`
	// Total — общее число назначений сессии
	Total int `json:"total"`
}

// ProgressService отслеживает прохождение сессии: записывает ответы,
// оценивает правильность, считает индекс текущего вопроса и закладки.
// Переход назначения "не отвечен" -> "отвечен" односторонний.
type ProgressService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	sessionRepo  repository.SessionRepository
	cacheRepo    repository.CacheRepository
}

// NewProgressService создает новый сервис прогресса
func NewProgressService(
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	sessionRepo repository.SessionRepository,
	cacheRepo repository.CacheRepository,
) *ProgressService {
	return &ProgressService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		sessionRepo:  sessionRepo,
		cacheRepo:    cacheRepo,
	}
}

// RecordAnswer записывает отправку ответа и возвращает оценку.
//
// Правильность: одиночный выбор — единственный выбранный вариант входит
// в множество правильных; множественный — точное совпадение множеств,
// без частичного зачета. В журнал пишется по строке на выбранный вариант
// с одной общей оценкой; результат назначения перезаписывается
// (повторная отправка терпима и прежних строк журнала не удаляет).
func (s *ProgressService) RecordAnswer(sessionID, questionID uint, selectedOptionIDs []uint, durationMs *int64) (*AnswerResult, error) {
	if len(selectedOptionIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one option must be selected", apperrors.ErrValidation)
	}

	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}

	// Назначение проверяется до записи в журнал: вопрос вне сессии
	// не должен оставлять осиротевших строк журнала
	ordinal, err := s.answerRepo.AssignmentOrdinal(sessionID, questionID)
	if err != nil {
		return nil, err
	}

	correctIDs, err := s.questionRepo.CorrectOptionIDs(questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get correct options for question #%d: %w", questionID, err)
	}

	isCorrect := question.EvaluateAnswer(selectedOptionIDs, correctIDs)

	answers := make([]entity.UserAnswer, len(selectedOptionIDs))
	for i, optionID := range selectedOptionIDs {
		answers[i] = entity.UserAnswer{
			SessionID:  sessionID,
			QuestionID: questionID,
			OptionID:   optionID,
			IsCorrect:  isCorrect,
			DurationMs: durationMs,
		}
	}
	if err := s.answerRepo.CreateBatch(answers); err != nil {
		return nil, fmt.Errorf("failed to record answers for session #%d: %w", sessionID, err)
	}

	if err := s.answerRepo.SetQuestionResult(sessionID, questionID, isCorrect); err != nil {
		return nil, fmt.Errorf("failed to set question result for session #%d: %w", sessionID, err)
	}

	progress, err := s.answerRepo.Progress(sessionID)
	if err != nil {
		return nil, err
	}

	s.invalidateStatsCache(sessionID, session.QuizID)

	log.Printf("[ProgressService] answer recorded for session=%d question=%d: correct=%t, options=%d",
		sessionID, questionID, isCorrect, len(selectedOptionIDs))

	return &AnswerResult{
		IsCorrect:      isCorrect,
		IsLast:         ordinal+1 == progress.Total,
		QuestionNumber: ordinal,
		Total:          progress.Total,
	}, nil
}

// CurrentQuestionIndex возвращает число отвеченных вопросов — по соглашению
// это порядковый номер следующего вопроса для показа
func (s *ProgressService) CurrentQuestionIndex(sessionID uint) (int, error) {
	progress, err := s.answerRepo.Progress(sessionID)
	if err != nil {
		return 0, err
	}
	return progress.CurrentIndex(), nil
}

// Progress возвращает (отвечено, всего) для сессии
func (s *ProgressService) Progress(sessionID uint) (entity.SessionProgress, error) {
	return s.answerRepo.Progress(sessionID)
}

// QuestionIDAt возвращает ID вопроса по порядковому номеру в сессии
func (s *ProgressService) QuestionIDAt(sessionID uint, ordinal int) (uint, error) {
	return s.answerRepo.QuestionIDAt(sessionID, ordinal)
}

// QuestionAt возвращает вопрос (с вариантами) по порядковому номеру в сессии
func (s *ProgressService) QuestionAt(sessionID uint, ordinal int) (*entity.Question, error) {
	questionID, err := s.answerRepo.QuestionIDAt(sessionID, ordinal)
	if err != nil {
		return nil, err
	}
	return s.questionRepo.GetByID(questionID)
}

// IsAnswered сообщает, отправлялся ли ответ по вопросу сессии
func (s *ProgressService) IsAnswered(sessionID, questionID uint) (bool, error) {
	return s.answerRepo.IsAnswered(sessionID, questionID)
}

// SelectedOptionIDs возвращает варианты, отправленные по вопросу сессии
func (s *ProgressService) SelectedOptionIDs(sessionID, questionID uint) ([]uint, error) {
	return s.answerRepo.SelectedOptionIDs(sessionID, questionID)
}

// CorrectAnswerCount возвращает число верно отвеченных назначений
func (s *ProgressService) CorrectAnswerCount(sessionID uint) (int, error) {
	return s.answerRepo.CorrectAnswerCount(sessionID)
}

// IncorrectQuestionIDs возвращает вопросы сессии с неверным результатом
func (s *ProgressService) IncorrectQuestionIDs(sessionID uint) ([]uint, error) {
	return s.answerRepo.IncorrectQuestionIDs(sessionID)
}

// BookmarkedQuestionIDs возвращает вопросы сессии с закладкой
func (s *ProgressService) BookmarkedQuestionIDs(sessionID uint) ([]uint, error) {
	return s.answerRepo.BookmarkedQuestionIDs(sessionID)
}

// AnsweredSummaries возвращает итоги по отвеченным вопросам в порядке назначения
func (s *ProgressService) AnsweredSummaries(sessionID uint) ([]repository.AnswerSummary, error) {
	return s.answerRepo.AnsweredSummaries(sessionID)
}

// ToggleBookmark инвертирует закладку назначения и возвращает новое состояние.
// Исходное состояние любого назначения — без закладки.
func (s *ProgressService) ToggleBookmark(sessionID, questionID uint) (bool, error) {
	state, err := s.answerRepo.ToggleBookmark(sessionID, questionID)
	if err != nil {
		return false, err
	}
	log.Printf("[ProgressService] bookmark toggled for session=%d question=%d: %t",
		sessionID, questionID, state)
	return state, nil
}

// invalidateStatsCache сбрасывает кешированную статистику затронутой сессии
// и викторины. Сбой кеша не влияет на запись ответа — только логируется.
func (s *ProgressService) invalidateStatsCache(sessionID, quizID uint) {
	if s.cacheRepo == nil {
		return
	}
	keys := []string{
		sessionStatsCacheKey(sessionID),
		quizStatsCacheKey(quizID),
		quizCategoryStatsCacheKey(quizID),
	}
	if err := s.cacheRepo.Delete(keys...); err != nil {
		log.Printf("[ProgressService] WARNING: failed to invalidate stats cache: %v", err)
	}
}
