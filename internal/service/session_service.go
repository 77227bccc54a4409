package service

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/yourusername/quizdrill-api/internal/domain/entity"
	"github.com/yourusername/quizdrill-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizdrill-api/internal/pkg/errors"
	"github.com/yourusername/quizdrill-api/internal/service/selection"
)

// Границы числа вопросов в сессии. Значения вне диапазона молча
// приводятся к границе, а не отклоняются.
const (
	MinQuestionCount = 5
	MaxQuestionCount = 30
)

// SessionService управляет жизненным циклом сессий: создание с выбором
// вопросов, производные сессии (повтор ошибок, закладки), возобновление,
// переименование и удаление.
type SessionService struct {
	sessionRepo  repository.SessionRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
}

// NewSessionService создает новый сервис сессий
func NewSessionService(
	sessionRepo repository.SessionRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
	}
}

// ResumeState — результат возобновления сессии по токену
type ResumeState struct {
	Session *entity.QuizSession
	// Progress — фактическое состояние назначений. Завершенность выводится
	// отсюда, а не из сохраненного запрошенного числа вопросов: при малом
	// банке назначений меньше, чем запрашивалось.
	Progress entity.SessionProgress
	// CurrentIndex — порядковый номер следующего вопроса (= число отвеченных)
	CurrentIndex int
	// Resuming истинно, когда прогресс уже есть и интерфейсу стоит
	// показать уведомление о возобновлении
	Resuming bool
}

// Create создает сессию, наполняя ее вопросами по политике выбора.
//
// Последовательность: оптимистичная проверка имени (дружелюбный ErrConflict
// до записи), клемп числа вопросов к [MinQuestionCount, MaxQuestionCount],
// новый 32-битный seed и непредсказуемый токен, выбор вопросов вне
// транзакции и, наконец, атомарная вставка сессии вместе с назначениями.
// Проигранная гонка по имени откатывается constraint'ом БД.
func (s *SessionService) Create(name string, quizID uint, requestedCount int, modeInput string, ownerID uint) (*entity.QuizSession, error) {
	exists, err := s.sessionRepo.NameExists(name, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session name: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: session name %q already in use for quiz #%d",
			apperrors.ErrConflict, name, quizID)
	}

	count := clampQuestionCount(requestedCount)
	mode := selection.ParseMode(modeInput)
	seed := rand.Int31()

	pools, err := s.loadPools(quizID, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to load question pools for quiz #%d: %w", quizID, err)
	}
	selected := selection.Select(pools, count, mode, int64(seed))

	session := &entity.QuizSession{
		Name:          name,
		SessionToken:  newSessionToken(),
		QuizID:        quizID,
		ShuffleSeed:   seed,
		QuestionCount: count,
		SelectionMode: string(mode),
		OwnerID:       ownerID,
	}
	if err := s.sessionRepo.CreateWithQuestions(session, selected); err != nil {
		return nil, err
	}

	log.Printf("[SessionService] created session %q (id=%d) for quiz=%d: %d questions, mode=%s, seed=%d",
		name, session.ID, quizID, len(selected), mode, seed)
	return session, nil
}

// CreateWithQuestions создает сессию с явным списком вопросов, минуя движок
// выбора. Дубликаты во входном списке схлопываются с сохранением порядка
// первого вхождения. Используется композером производных сессий.
func (s *SessionService) CreateWithQuestions(name string, quizID uint, questionIDs []uint, mode string, ownerID uint) (*entity.QuizSession, error) {
	exists, err := s.sessionRepo.NameExists(name, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session name: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: session name %q already in use for quiz #%d",
			apperrors.ErrConflict, name, quizID)
	}

	deduped := dedupePreservingOrder(questionIDs)

	session := &entity.QuizSession{
		Name:          name,
		SessionToken:  newSessionToken(),
		QuizID:        quizID,
		ShuffleSeed:   0, // выбор не выполнялся, воспроизводить нечего
		QuestionCount: len(deduped),
		SelectionMode: mode,
		OwnerID:       ownerID,
	}
	if err := s.sessionRepo.CreateWithQuestions(session, deduped); err != nil {
		return nil, err
	}

	log.Printf("[SessionService] created session %q (id=%d) with explicit questions: %d, mode=%s",
		name, session.ID, len(deduped), mode)
	return session, nil
}

// RetryIncorrect создает производную сессию из неверно отвеченных вопросов.
// Пустое множество ошибок — исход ErrNothingToRetry, сессия не создается.
func (s *SessionService) RetryIncorrect(sessionID uint, ownerID uint) (*entity.QuizSession, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}

	incorrectIDs, err := s.answerRepo.IncorrectQuestionIDs(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get incorrect questions for session #%d: %w", sessionID, err)
	}
	if len(incorrectIDs) == 0 {
		return nil, ErrNothingToRetry
	}

	retryName := fmt.Sprintf("%s-retry-%s", session.Name, shortSuffix())
	return s.CreateWithQuestions(retryName, session.QuizID, incorrectIDs, string(selection.ModeIncorrect), ownerID)
}

// RetryBookmarked создает производную сессию из вопросов с закладкой
func (s *SessionService) RetryBookmarked(sessionID uint, ownerID uint) (*entity.QuizSession, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}

	bookmarkedIDs, err := s.answerRepo.BookmarkedQuestionIDs(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarked questions for session #%d: %w", sessionID, err)
	}
	if len(bookmarkedIDs) == 0 {
		return nil, ErrNothingBookmarked
	}

	retryName := fmt.Sprintf("%s-bm-%s", session.Name, shortSuffix())
	return s.CreateWithQuestions(retryName, session.QuizID, bookmarkedIDs, string(selection.ModeBookmarked), ownerID)
}

// Resume возвращает сессию по токену вместе с текущим индексом.
// Это чтение без побочных эффектов: вопросы не перевыбираются никогда.
func (s *SessionService) Resume(token string) (*ResumeState, error) {
	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}

	progress, err := s.answerRepo.Progress(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress for session #%d: %w", session.ID, err)
	}

	return &ResumeState{
		Session:      session,
		Progress:     progress,
		CurrentIndex: progress.CurrentIndex(),
		Resuming:     progress.CurrentIndex() > 0,
	}, nil
}

// GetByID возвращает сессию по ID
func (s *SessionService) GetByID(id uint) (*entity.QuizSession, error) {
	return s.sessionRepo.GetByID(id)
}

// VerifyOwner сообщает, принадлежит ли сессия пользователю
func (s *SessionService) VerifyOwner(sessionID, userID uint) (bool, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return false, err
	}
	return session.OwnerID == userID, nil
}

// Rename переименовывает сессию с той же проверкой уникальности, что и создание
func (s *SessionService) Rename(sessionID uint, newName string) error {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return err
	}

	exists, err := s.sessionRepo.NameExists(newName, session.QuizID)
	if err != nil {
		return fmt.Errorf("failed to check session name: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: session name %q already in use for quiz #%d",
			apperrors.ErrConflict, newName, session.QuizID)
	}

	if err := s.sessionRepo.Rename(sessionID, newName); err != nil {
		return err
	}
	log.Printf("[SessionService] renamed session %d to %q", sessionID, newName)
	return nil
}

// Delete удаляет сессию вместе с назначениями и ответами
func (s *SessionService) Delete(sessionID uint) error {
	if err := s.sessionRepo.Delete(sessionID); err != nil {
		return err
	}
	log.Printf("[SessionService] deleted session %d", sessionID)
	return nil
}

// CountByQuizID возвращает число сессий викторины
func (s *SessionService) CountByQuizID(quizID uint) (int64, error) {
	return s.sessionRepo.CountByQuizID(quizID)
}

// ListByQuizID возвращает сессии викторины с прогрессом
func (s *SessionService) ListByQuizID(quizID uint) ([]repository.SessionOverview, error) {
	return s.sessionRepo.ListByQuizID(quizID)
}

// FindIncomplete ищет последнюю незавершенную сессию с данным именем
func (s *SessionService) FindIncomplete(name string, quizID uint) (*entity.QuizSession, error) {
	return s.sessionRepo.FindIncomplete(name, quizID)
}

// loadPools собирает снимок пулов для политики. Полный банк нужен всегда:
// для random он и есть первичный пул, для остальных — пул добора.
func (s *SessionService) loadPools(quizID uint, mode selection.Mode) (selection.Pools, error) {
	var pools selection.Pools
	var err error

	pools.All, err = s.questionRepo.AllQuestionIDs(quizID)
	if err != nil {
		return pools, err
	}

	switch mode {
	case selection.ModeNeverAsked:
		pools.NeverAssigned, err = s.questionRepo.NeverAssignedQuestionIDs(quizID)
	case selection.ModeIncorrect:
		pools.PreviouslyIncorrect, err = s.questionRepo.PreviouslyIncorrectQuestionIDs(quizID)
	}
	return pools, err
}

// clampQuestionCount молча приводит запрошенное число вопросов к допустимому диапазону
func clampQuestionCount(count int) int {
	if count < MinQuestionCount {
		return MinQuestionCount
	}
	if count > MaxQuestionCount {
		return MaxQuestionCount
	}
	return count
}

// dedupePreservingOrder схлопывает дубликаты, сохраняя порядок первого вхождения
func dedupePreservingOrder(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	deduped := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}
	return deduped
}

// newSessionToken возвращает непредсказуемый 128-битный токен возобновления.
// UUIDv7 упорядочен по времени, что дружелюбно к уникальному индексу.
func newSessionToken() string {
	token, err := uuid.NewV7()
	if err != nil {
		// Крайне маловероятно (сбой источника энтропии); v4 сохраняет
		// непредсказуемость, жертвуя лишь сортируемостью
		return uuid.NewString()
	}
	return token.String()
}

// shortSuffix возвращает короткий случайный суффикс для имен производных сессий
func shortSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}
