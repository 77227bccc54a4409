package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/quizdrill-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizdrill-api/internal/pkg/errors"
)

func newSessionServiceForTest() (*SessionService, *MockSessionRepository, *MockQuestionRepository, *MockAnswerRepository) {
	sessionRepo := new(MockSessionRepository)
	questionRepo := new(MockQuestionRepository)
	answerRepo := new(MockAnswerRepository)
	return NewSessionService(sessionRepo, questionRepo, answerRepo), sessionRepo, questionRepo, answerRepo
}

func TestSessionService_Create_Success(t *testing.T) {
	// Arrange
	svc, sessionRepo, questionRepo, _ := newSessionServiceForTest()

	bank := []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	sessionRepo.On("NameExists", "morning-drill", uint(7)).Return(false, nil)
	questionRepo.On("AllQuestionIDs", uint(7)).Return(bank, nil)
	questionRepo.On("NeverAssignedQuestionIDs", uint(7)).Return(bank, nil)

	var capturedIDs []uint
	sessionRepo.On("CreateWithQuestions", mock.AnythingOfType("*entity.QuizSession"), mock.Anything).
		Run(func(args mock.Arguments) {
			session := args.Get(0).(*entity.QuizSession)
			session.ID = 42
			capturedIDs = args.Get(1).([]uint)
		}).
		Return(nil)

	// Act
	session, err := svc.Create("morning-drill", 7, 8, "unanswered", 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(42), session.ID)
	assert.Equal(t, "unanswered", session.SelectionMode)
	assert.Equal(t, 8, session.QuestionCount)
	assert.NotEmpty(t, session.SessionToken, "токен возобновления должен быть присвоен")
	assert.Len(t, capturedIDs, 8)
	sessionRepo.AssertExpectations(t)
}

func TestSessionService_Create_NameConflict(t *testing.T) {
	// Arrange: имя занято другой сессией той же викторины
	svc, sessionRepo, _, _ := newSessionServiceForTest()
	sessionRepo.On("NameExists", "taken", uint(7)).Return(true, nil)

	// Act
	session, err := svc.Create("taken", 7, 10, "random", 1)

	// Assert: конфликт, а не общий сбой; к хранилищу запись не ходила
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Nil(t, session)
	sessionRepo.AssertNotCalled(t, "CreateWithQuestions", mock.Anything, mock.Anything)
}

func TestSessionService_Create_CountIsClamped(t *testing.T) {
	svc, sessionRepo, questionRepo, _ := newSessionServiceForTest()

	bank := make([]uint, 50)
	for i := range bank {
		bank[i] = uint(i + 1)
	}
	sessionRepo.On("NameExists", mock.Anything, uint(3)).Return(false, nil)
	questionRepo.On("AllQuestionIDs", uint(3)).Return(bank, nil)

	var capturedIDs []uint
	sessionRepo.On("CreateWithQuestions", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { capturedIDs = args.Get(1).([]uint) }).
		Return(nil)

	// Запрос ниже минимума приводится к 5
	session, err := svc.Create("tiny", 3, 1, "random", 1)
	require.NoError(t, err)
	assert.Equal(t, MinQuestionCount, session.QuestionCount)
	assert.Len(t, capturedIDs, MinQuestionCount)

	// Запрос выше максимума приводится к 30
	session, err = svc.Create("huge", 3, 500, "random", 1)
	require.NoError(t, err)
	assert.Equal(t, MaxQuestionCount, session.QuestionCount)
	assert.Len(t, capturedIDs, MaxQuestionCount)
}

func TestSessionService_Create_UnknownModeFallsBackToRandom(t *testing.T) {
	svc, sessionRepo, questionRepo, _ := newSessionServiceForTest()

	sessionRepo.On("NameExists", mock.Anything, uint(3)).Return(false, nil)
	questionRepo.On("AllQuestionIDs", uint(3)).Return([]uint{1, 2, 3, 4, 5, 6}, nil)
	sessionRepo.On("CreateWithQuestions", mock.Anything, mock.Anything).Return(nil)

	session, err := svc.Create("drill", 3, 5, "definitely-not-a-mode", 1)

	require.NoError(t, err)
	assert.Equal(t, "random", session.SelectionMode)
	// Пулы политик не запрашивались: random работает по полному банку
	questionRepo.AssertNotCalled(t, "NeverAssignedQuestionIDs", mock.Anything)
	questionRepo.AssertNotCalled(t, "PreviouslyIncorrectQuestionIDs", mock.Anything)
}

func TestSessionService_Create_EmptyBankCreatesDegenerateSession(t *testing.T) {
	// Викторина без вопросов: сессия создается с нулем назначений
	svc, sessionRepo, questionRepo, _ := newSessionServiceForTest()

	sessionRepo.On("NameExists", mock.Anything, uint(9)).Return(false, nil)
	questionRepo.On("AllQuestionIDs", uint(9)).Return([]uint{}, nil)
	questionRepo.On("NeverAssignedQuestionIDs", uint(9)).Return([]uint{}, nil)

	var capturedIDs []uint
	sessionRepo.On("CreateWithQuestions", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { capturedIDs = args.Get(1).([]uint) }).
		Return(nil)

	session, err := svc.Create("empty", 9, 10, "unanswered", 1)

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Empty(t, capturedIDs)
	// Вырожденная сессия завершена сразу
	assert.True(t, entity.SessionProgress{Answered: 0, Total: 0}.IsComplete())
}

func TestSessionService_CreateWithQuestions_DeduplicatesPreservingOrder(t *testing.T) {
	// Сценарий из постановки: вход [5,1,5,2] -> назначения для [5,1,2]
	svc, sessionRepo, _, _ := newSessionServiceForTest()

	sessionRepo.On("NameExists", mock.Anything, uint(7)).Return(false, nil)

	var capturedIDs []uint
	sessionRepo.On("CreateWithQuestions", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			session := args.Get(0).(*entity.QuizSession)
			capturedIDs = args.Get(1).([]uint)
			assert.Equal(t, len(capturedIDs), session.QuestionCount)
		}).
		Return(nil)

	session, err := svc.CreateWithQuestions("redo", 7, []uint{5, 1, 5, 2}, "incorrect", 1)

	require.NoError(t, err)
	assert.Equal(t, []uint{5, 1, 2}, capturedIDs)
	assert.Equal(t, 3, session.QuestionCount)
	assert.Equal(t, int32(0), session.ShuffleSeed)
}

func TestSessionService_RetryIncorrect_CreatesDerivedSession(t *testing.T) {
	// Arrange: сессия с 5 вопросами, 3 из них неверные
	svc, sessionRepo, _, answerRepo := newSessionServiceForTest()

	original := &entity.QuizSession{ID: 11, Name: "drill", QuizID: 7, OwnerID: 1}
	sessionRepo.On("GetByID", uint(11)).Return(original, nil)
	answerRepo.On("IncorrectQuestionIDs", uint(11)).Return([]uint{2, 4, 9}, nil)
	sessionRepo.On("NameExists", mock.Anything, uint(7)).Return(false, nil)

	var capturedIDs []uint
	var capturedName string
	sessionRepo.On("CreateWithQuestions", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			session := args.Get(0).(*entity.QuizSession)
			capturedName = session.Name
			capturedIDs = args.Get(1).([]uint)
		}).
		Return(nil)

	// Act
	derived, err := svc.RetryIncorrect(11, 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 4, 9}, capturedIDs)
	assert.Equal(t, "incorrect", derived.SelectionMode)
	assert.True(t, strings.HasPrefix(capturedName, "drill-retry-"), "имя производной сессии: %s", capturedName)
	assert.Len(t, strings.TrimPrefix(capturedName, "drill-retry-"), 6)
}

func TestSessionService_RetryIncorrect_NothingToRetry(t *testing.T) {
	svc, sessionRepo, _, answerRepo := newSessionServiceForTest()

	sessionRepo.On("GetByID", uint(11)).Return(&entity.QuizSession{ID: 11, Name: "drill", QuizID: 7}, nil)
	answerRepo.On("IncorrectQuestionIDs", uint(11)).Return([]uint{}, nil)

	derived, err := svc.RetryIncorrect(11, 1)

	// Исход "нечего повторять": новая сессия не создается
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNothingToRetry)
	assert.Nil(t, derived)
	sessionRepo.AssertNotCalled(t, "CreateWithQuestions", mock.Anything, mock.Anything)
}

func TestSessionService_RetryBookmarked_UsesBookmarkSubset(t *testing.T) {
	svc, sessionRepo, _, answerRepo := newSessionServiceForTest()

	sessionRepo.On("GetByID", uint(11)).Return(&entity.QuizSession{ID: 11, Name: "drill", QuizID: 7}, nil)
	answerRepo.On("BookmarkedQuestionIDs", uint(11)).Return([]uint{3, 8}, nil)
	sessionRepo.On("NameExists", mock.Anything, uint(7)).Return(false, nil)

	var capturedName string
	sessionRepo.On("CreateWithQuestions", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedName = args.Get(0).(*entity.QuizSession).Name
		}).
		Return(nil)

	derived, err := svc.RetryBookmarked(11, 1)

	require.NoError(t, err)
	assert.Equal(t, "bookmarked", derived.SelectionMode)
	assert.True(t, strings.HasPrefix(capturedName, "drill-bm-"))
}

func TestSessionService_Resume_FlagsExistingProgress(t *testing.T) {
	svc, sessionRepo, _, answerRepo := newSessionServiceForTest()

	session := &entity.QuizSession{ID: 5, SessionToken: "tok"}
	sessionRepo.On("GetByToken", "tok").Return(session, nil)
	answerRepo.On("Progress", uint(5)).Return(entity.SessionProgress{Answered: 3, Total: 10}, nil)

	state, err := svc.Resume("tok")

	require.NoError(t, err)
	assert.Equal(t, 3, state.CurrentIndex)
	assert.True(t, state.Resuming, "уведомление о возобновлении показывается при наличии прогресса")
}

func TestSessionService_Resume_SmallBankSessionCompletes(t *testing.T) {
	svc, sessionRepo, _, answerRepo := newSessionServiceForTest()

	// Банк был меньше запрошенного: хранится count=5, но назначений всего 3.
	// Завершенность выводится из фактических назначений, иначе полностью
	// пройденная сессия возобновлялась бы как незаконченная вечно.
	session := &entity.QuizSession{ID: 5, SessionToken: "tok", QuestionCount: 5}
	sessionRepo.On("GetByToken", "tok").Return(session, nil)
	answerRepo.On("Progress", uint(5)).Return(entity.SessionProgress{Answered: 3, Total: 3}, nil)

	state, err := svc.Resume("tok")

	require.NoError(t, err)
	assert.True(t, state.Progress.IsComplete())
	assert.Equal(t, 3, state.CurrentIndex)
	assert.True(t, state.Resuming)
}

func TestSessionService_Resume_FreshSessionIsNotResuming(t *testing.T) {
	svc, sessionRepo, _, answerRepo := newSessionServiceForTest()

	sessionRepo.On("GetByToken", "tok").Return(&entity.QuizSession{ID: 5}, nil)
	answerRepo.On("Progress", uint(5)).Return(entity.SessionProgress{Answered: 0, Total: 10}, nil)

	state, err := svc.Resume("tok")

	require.NoError(t, err)
	assert.Equal(t, 0, state.CurrentIndex)
	assert.False(t, state.Resuming)
}

func TestSessionService_VerifyOwner(t *testing.T) {
	svc, sessionRepo, _, _ := newSessionServiceForTest()

	sessionRepo.On("GetByID", uint(5)).Return(&entity.QuizSession{ID: 5, OwnerID: 9}, nil)

	isOwner, err := svc.VerifyOwner(5, 9)
	require.NoError(t, err)
	assert.True(t, isOwner)

	isOwner, err = svc.VerifyOwner(5, 10)
	require.NoError(t, err)
	assert.False(t, isOwner)
}

func TestSessionService_Rename_ConflictOnTakenName(t *testing.T) {
	svc, sessionRepo, _, _ := newSessionServiceForTest()

	sessionRepo.On("GetByID", uint(5)).Return(&entity.QuizSession{ID: 5, QuizID: 7, Name: "old"}, nil)
	sessionRepo.On("NameExists", "new", uint(7)).Return(true, nil)

	err := svc.Rename(5, "new")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	sessionRepo.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything)
}

func TestSessionService_Create_StorageErrorPropagates(t *testing.T) {
	svc, sessionRepo, questionRepo, _ := newSessionServiceForTest()

	storageErr := errors.New("connection refused")
	sessionRepo.On("NameExists", mock.Anything, uint(7)).Return(false, nil)
	questionRepo.On("AllQuestionIDs", uint(7)).Return(nil, storageErr)

	session, err := svc.Create("drill", 7, 10, "random", 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, storageErr)
	assert.Nil(t, session)
}
