package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizdrill-api/internal/handler/dto"
	"github.com/yourusername/quizdrill-api/internal/middleware"
	apperrors "github.com/yourusername/quizdrill-api/internal/pkg/errors"
	"github.com/yourusername/quizdrill-api/internal/service"
)

// SessionHandler обрабатывает запросы, связанные с сессиями прохождения
type SessionHandler struct {
	sessionService  *service.SessionService
	progressService *service.ProgressService
	statsService    *service.StatsService
	quizService     *service.QuizService
}

// NewSessionHandler создает новый обработчик сессий
func NewSessionHandler(
	sessionService *service.SessionService,
	progressService *service.ProgressService,
	statsService *service.StatsService,
	quizService *service.QuizService,
) *SessionHandler {
	return &SessionHandler{
		sessionService:  sessionService,
		progressService: progressService,
		statsService:    statsService,
		quizService:     quizService,
	}
}

// StartSessionRequest представляет запрос на создание сессии
type StartSessionRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	QuestionCount int    `json:"question_count"`
	SelectionMode string `json:"selection_mode"`
}

// RecordAnswerRequest представляет отправку ответа на вопрос сессии
type RecordAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	OptionIDs  []uint `json:"option_ids" binding:"required"`
	DurationMs *int64 `json:"duration_ms"`
}

// BookmarkRequest представляет переключение закладки на вопросе сессии
type BookmarkRequest struct {
	QuestionID uint `json:"question_id" binding:"required"`
}

// RenameSessionRequest представляет запрос на переименование сессии
type RenameSessionRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// StartSession создает новую сессию прохождения викторины
func (h *SessionHandler) StartSession(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.verifyQuizOwner(c, quizID, userID) {
		return
	}

	session, err := h.sessionService.Create(req.Name, quizID, req.QuestionCount, req.SelectionMode, userID)
	if err != nil {
		// Конфликт имени с незавершенной сессией — подсказываем токен возобновления
		if errors.Is(err, apperrors.ErrConflict) {
			if existing, findErr := h.sessionService.FindIncomplete(req.Name, quizID); findErr == nil {
				c.JSON(http.StatusConflict, gin.H{
					"error":        err.Error(),
					"resume_token": existing.SessionToken,
				})
				return
			}
		}
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSessionResponse(session))
}

// ResumeSession возвращает состояние сессии по токену возобновления
func (h *SessionHandler) ResumeSession(c *gin.Context) {
	token := c.Param("token")
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	state, err := h.sessionService.Resume(token)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	if state.Session.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	resp := dto.ResumeResponse{
		Session:      dto.NewSessionResponse(state.Session),
		CurrentIndex: state.CurrentIndex,
		Resuming:     state.Resuming,
		IsComplete:   state.Progress.IsComplete(),
	}
	if !resp.IsComplete {
		if question, err := h.progressService.QuestionAt(state.Session.ID, state.CurrentIndex); err == nil {
			resp.CurrentQuestion = dto.NewQuestionResponse(question)
		} else {
			log.Printf("[SessionHandler] Не удалось загрузить текущий вопрос сессии #%d: %v", state.Session.ID, err)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetSession возвращает сессию с прогрессом и текущим вопросом
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uint)
	if !h.verifySessionOwner(c, sessionID) {
		return
	}

	session, err := h.sessionService.GetByID(sessionID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	progress, err := h.progressService.Progress(sessionID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	resp := dto.SessionDetailResponse{
		Session:      dto.NewSessionResponse(session),
		Answered:     progress.Answered,
		Total:        progress.Total,
		IsComplete:   progress.IsComplete(),
		CurrentIndex: progress.CurrentIndex(),
	}
	if !progress.IsComplete() {
		if question, err := h.progressService.QuestionAt(sessionID, progress.CurrentIndex()); err == nil {
			resp.CurrentQuestion = dto.NewQuestionResponse(question)
		} else {
			log.Printf("[SessionHandler] Не удалось загрузить текущий вопрос сессии #%d: %v", sessionID, err)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// RecordAnswer фиксирует ответ на вопрос сессии
func (h *SessionHandler) RecordAnswer(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uint)
	if !h.verifySessionOwner(c, sessionID) {
		return
	}

	var req RecordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.progressService.RecordAnswer(sessionID, req.QuestionID, req.OptionIDs, req.DurationMs)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RetryIncorrect создает производную сессию из неверно отвеченных вопросов
func (h *SessionHandler) RetryIncorrect(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uint)
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !h.verifySessionOwner(c, sessionID) {
		return
	}

	session, err := h.sessionService.RetryIncorrect(sessionID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNothingToRetry) {
			c.JSON(http.StatusOK, gin.H{"message": "nothing to retry"})
			return
		}
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSessionResponse(session))
}

// RetryBookmarked создает производную сессию из вопросов с закладкой
func (h *SessionHandler) RetryBookmarked(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uint)
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !h.verifySessionOwner(c, sessionID) {
		return
	}

	session, err := h.sessionService.RetryBookmarked(sessionID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNothingBookmarked) {
			c.JSON(http.StatusOK, gin.H{"message": "nothing bookmarked"})
			return
		}
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSessionResponse(session))
}

// ToggleBookmark переключает закладку на вопросе сессии
func (h *SessionHandler) ToggleBookmark(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uint)
	if !h.verifySessionOwner(c, sessionID) {
		return
	}

	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookmarked, err := h.progressService.ToggleBookmark(sessionID, req.QuestionID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"question_id": req.QuestionID, "is_bookmarked": bookmarked})
}

// RenameSession переименовывает сессию
func (h *SessionHandler) RenameSession(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uint)
	if !h.verifySessionOwner(c, sessionID) {
		return
	}

	var req RenameSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessionService.Rename(sessionID, req.Name); err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session renamed successfully"})
}

// DeleteSession удаляет сессию вместе с назначениями и журналом ответов
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uint)
	if !h.verifySessionOwner(c, sessionID) {
		return
	}

	if err := h.sessionService.Delete(sessionID); err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

// GetQuestionAt возвращает вопрос сессии по порядковому номеру вместе с
// состоянием ответа — для просмотра уже пройденных вопросов
func (h *SessionHandler) GetQuestionAt(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uint)
	ordinal := c.MustGet("ordinal").(uint)
	if !h.verifySessionOwner(c, sessionID) {
		return
	}

	question, err := h.progressService.QuestionAt(sessionID, int(ordinal))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	answered, err := h.progressService.IsAnswered(sessionID, question.ID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	resp := gin.H{
		"question":        dto.NewQuestionResponse(question),
		"question_number": ordinal,
		"is_answered":     answered,
	}
	if answered {
		selected, err := h.progressService.SelectedOptionIDs(sessionID, question.ID)
		if err != nil {
			h.handleSessionError(c, err)
			return
		}
		resp["selected_option_ids"] = selected
	}

	c.JSON(http.StatusOK, resp)
}

// GetSessionResults возвращает итоги сессии: сводку по вопросам и категориям
func (h *SessionHandler) GetSessionResults(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uint)
	if !h.verifySessionOwner(c, sessionID) {
		return
	}

	progress, err := h.progressService.Progress(sessionID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	correct, err := h.progressService.CorrectAnswerCount(sessionID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	summaries, err := h.progressService.AnsweredSummaries(sessionID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	categoryStats, err := h.statsService.SessionCategoryStats(sessionID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResultsResponse{
		Answered:      progress.Answered,
		Total:         progress.Total,
		Correct:       correct,
		IsComplete:    progress.IsComplete(),
		Summaries:     summaries,
		CategoryStats: categoryStats,
	})
}

// verifySessionOwner проверяет, что сессия принадлежит аутентифицированному
// пользователю. При отказе сам пишет ответ и возвращает false.
func (h *SessionHandler) verifySessionOwner(c *gin.Context, sessionID uint) bool {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return false
	}

	isOwner, err := h.sessionService.VerifyOwner(sessionID, userID)
	if err != nil {
		h.handleSessionError(c, err)
		return false
	}
	if !isOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return false
	}
	return true
}

// verifyQuizOwner проверяет владение викториной перед созданием сессии
func (h *SessionHandler) verifyQuizOwner(c *gin.Context, quizID, userID uint) bool {
	isOwner, err := h.quizService.VerifyOwner(quizID, userID)
	if err != nil {
		h.handleSessionError(c, err)
		return false
	}
	if !isOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return false
	}
	return true
}

// handleSessionError обрабатывает ошибки сервисов сессий
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in SessionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
