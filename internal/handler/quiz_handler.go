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

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService    *service.QuizService
	sessionService *service.SessionService
	statsService   *service.StatsService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(
	quizService *service.QuizService,
	sessionService *service.SessionService,
	statsService *service.StatsService,
) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		sessionService: sessionService,
		statsService:   statsService,
	}
}

// CreateQuizRequest представляет запрос на создание викторины
type CreateQuizRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// RenameQuizRequest представляет запрос на переименование викторины
type RenameQuizRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateQuiz обрабатывает запрос на создание викторины
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.Create(req.Name, userID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz, 0, 0))
}

// ListQuizzes возвращает викторины пользователя со счетчиками для дашборда
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	overviews, err := h.quizService.ListByOwner(userID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quizzes": overviews})
}

// GetQuiz возвращает викторину с числом вопросов
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	if !h.verifyQuizOwner(c, quizID) {
		return
	}

	quiz, err := h.quizService.GetByID(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	questionCount, err := h.quizService.QuestionCount(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	sessionCount, err := h.sessionService.CountByQuizID(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, questionCount, sessionCount))
}

// RenameQuiz переименовывает викторину
func (h *QuizHandler) RenameQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	if !h.verifyQuizOwner(c, quizID) {
		return
	}

	var req RenameQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.quizService.Rename(quizID, req.Name); err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz renamed successfully"})
}

// DeleteQuiz удаляет викторину каскадно вместе с сессиями
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	if !h.verifyQuizOwner(c, quizID) {
		return
	}

	if err := h.quizService.Delete(quizID); err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

// ListSessions возвращает сессии викторины со сводкой прогресса
func (h *QuizHandler) ListSessions(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	if !h.verifyQuizOwner(c, quizID) {
		return
	}

	overviews, err := h.sessionService.ListByQuizID(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": overviews})
}

// GetQuizStats возвращает сводную и категорийную статистику викторины
func (h *QuizHandler) GetQuizStats(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	if !h.verifyQuizOwner(c, quizID) {
		return
	}

	overall, err := h.statsService.QuizOverallStats(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	categories, err := h.statsService.QuizCategoryStats(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuizStatsResponse{
		Overall:    overall,
		Categories: categories,
	})
}

// verifyQuizOwner проверяет, что викторина принадлежит аутентифицированному
// пользователю. При отказе сам пишет ответ и возвращает false.
func (h *QuizHandler) verifyQuizOwner(c *gin.Context, quizID uint) bool {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return false
	}

	isOwner, err := h.quizService.VerifyOwner(quizID, userID)
	if err != nil {
		h.handleQuizError(c, err)
		return false
	}
	if !isOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return false
	}
	return true
}

// handleQuizError обрабатывает ошибки сервиса викторин
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
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
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
