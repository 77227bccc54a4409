package service

import (
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yourusername/quizdrill-api/internal/domain/entity"
	"github.com/yourusername/quizdrill-api/internal/domain/repository"
)

// ============================================================================
// Общие моки репозиториев для тестов сервисного слоя
// ============================================================================

// MockSessionRepository реализует repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CreateWithQuestions(session *entity.QuizSession, questionIDs []uint) error {
	args := m.Called(session, questionIDs)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByToken(token string) (*entity.QuizSession, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizSession), args.Error(1)
}

func (m *MockSessionRepository) GetByID(id uint) (*entity.QuizSession, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizSession), args.Error(1)
}

func (m *MockSessionRepository) NameExists(name string, quizID uint) (bool, error) {
	args := m.Called(name, quizID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) Rename(id uint, newName string) error {
	args := m.Called(id, newName)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSessionRepository) CountByQuizID(quizID uint) (int64, error) {
	args := m.Called(quizID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) ListByQuizID(quizID uint) ([]repository.SessionOverview, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SessionOverview), args.Error(1)
}

func (m *MockSessionRepository) FindIncomplete(name string, quizID uint) (*entity.QuizSession, error) {
	args := m.Called(name, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizSession), args.Error(1)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) AllQuestionIDs(quizID uint) ([]uint, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockQuestionRepository) NeverAssignedQuestionIDs(quizID uint) ([]uint, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockQuestionRepository) PreviouslyIncorrectQuestionIDs(quizID uint) ([]uint, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockQuestionRepository) CorrectOptionIDs(questionID uint) ([]uint, error) {
	args := m.Called(questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockQuestionRepository) CountByQuizID(quizID uint) (int64, error) {
	args := m.Called(quizID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnswerRepository реализует repository.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) CreateBatch(answers []entity.UserAnswer) error {
	args := m.Called(answers)
	return args.Error(0)
}

func (m *MockAnswerRepository) SetQuestionResult(sessionID, questionID uint, isCorrect bool) error {
	args := m.Called(sessionID, questionID, isCorrect)
	return args.Error(0)
}

func (m *MockAnswerRepository) ToggleBookmark(sessionID, questionID uint) (bool, error) {
	args := m.Called(sessionID, questionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAnswerRepository) Progress(sessionID uint) (entity.SessionProgress, error) {
	args := m.Called(sessionID)
	return args.Get(0).(entity.SessionProgress), args.Error(1)
}

func (m *MockAnswerRepository) AssignmentOrdinal(sessionID, questionID uint) (int, error) {
	args := m.Called(sessionID, questionID)
	return args.Int(0), args.Error(1)
}

func (m *MockAnswerRepository) QuestionIDAt(sessionID uint, ordinal int) (uint, error) {
	args := m.Called(sessionID, ordinal)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockAnswerRepository) IsAnswered(sessionID, questionID uint) (bool, error) {
	args := m.Called(sessionID, questionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAnswerRepository) SelectedOptionIDs(sessionID, questionID uint) ([]uint, error) {
	args := m.Called(sessionID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockAnswerRepository) CorrectAnswerCount(sessionID uint) (int, error) {
	args := m.Called(sessionID)
	return args.Int(0), args.Error(1)
}

func (m *MockAnswerRepository) IncorrectQuestionIDs(sessionID uint) ([]uint, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockAnswerRepository) BookmarkedQuestionIDs(sessionID uint) ([]uint, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockAnswerRepository) AnsweredSummaries(sessionID uint) ([]repository.AnswerSummary, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AnswerSummary), args.Error(1)
}

func (m *MockAnswerRepository) CategoryStats(sessionID uint) ([]repository.CategoryStat, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CategoryStat), args.Error(1)
}

func (m *MockAnswerRepository) QuizOverallStats(quizID uint) (*repository.QuizOverallStats, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.QuizOverallStats), args.Error(1)
}

func (m *MockAnswerRepository) QuizCategoryStats(quizID uint) ([]repository.QuizCategoryStats, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.QuizCategoryStats), args.Error(1)
}

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListByOwner(ownerID uint) ([]repository.QuizOverview, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.QuizOverview), args.Error(1)
}

func (m *MockQuizRepository) Rename(id uint, newName string) error {
	args := m.Called(id, newName)
	return args.Error(0)
}

func (m *MockQuizRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(keys ...string) error {
	args := m.Called(keys)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}
