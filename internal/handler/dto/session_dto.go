package dto

import (
	"time"

	"github.com/yourusername/quizdrill-api/internal/domain/entity"
	"github.com/yourusername/quizdrill-api/internal/domain/repository"
)

// OptionResponse представляет вариант ответа в формате для клиента.
// Признак правильности намеренно не сериализуется.
type OptionResponse struct {
	ID          uint    `json:"id"`
	Text        string  `json:"text"`
	Explanation *string `json:"explanation,omitempty"`
}

// QuestionResponse представляет вопрос сессии в формате для клиента
type QuestionResponse struct {
	ID               uint             `json:"id"`
	Text             string           `json:"text"`
	Category         *string          `json:"category,omitempty"`
	IsMultipleChoice bool             `json:"is_multiple_choice"`
	Options          []OptionResponse `json:"options"`
}

// SessionResponse представляет сессию в формате для клиента
type SessionResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	SessionToken  string    `json:"session_token"`
	QuizID        uint      `json:"quiz_id"`
	SelectionMode string    `json:"selection_mode"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// SessionDetailResponse дополняет сессию прогрессом и текущим вопросом
type SessionDetailResponse struct {
	Session         SessionResponse   `json:"session"`
	Answered        int               `json:"answered"`
	Total           int               `json:"total"`
	IsComplete      bool              `json:"is_complete"`
	CurrentIndex    int               `json:"current_index"`
	CurrentQuestion *QuestionResponse `json:"current_question,omitempty"`
}

// ResumeResponse представляет результат возобновления сессии по токену
type ResumeResponse struct {
	Session         SessionResponse   `json:"session"`
	CurrentIndex    int               `json:"current_index"`
	Resuming        bool              `json:"resuming"`
	IsComplete      bool              `json:"is_complete"`
	CurrentQuestion *QuestionResponse `json:"current_question,omitempty"`
}

// SessionResultsResponse представляет итоги сессии
type SessionResultsResponse struct {
	Answered      int                        `json:"answered"`
	Total         int                        `json:"total"`
	Correct       int                        `json:"correct"`
	IsComplete    bool                       `json:"is_complete"`
	Summaries     []repository.AnswerSummary `json:"summaries"`
	CategoryStats []repository.CategoryStat  `json:"category_stats"`
}

// NewSessionResponse создает DTO для сессии
func NewSessionResponse(s *entity.QuizSession) SessionResponse {
	return SessionResponse{
		ID:            s.ID,
		Name:          s.Name,
		SessionToken:  s.SessionToken,
		QuizID:        s.QuizID,
		SelectionMode: s.SelectionMode,
		QuestionCount: s.QuestionCount,
		CreatedAt:     s.CreatedAt,
	}
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) *QuestionResponse {
	options := make([]OptionResponse, 0, len(q.Options))
	for _, opt := range q.Options {
		options = append(options, OptionResponse{
			ID:          opt.ID,
			Text:        opt.Text,
			Explanation: opt.Explanation,
		})
	}
	return &QuestionResponse{
		ID:               q.ID,
		Text:             q.Text,
		Category:         q.Category,
		IsMultipleChoice: q.IsMultipleChoice,
		Options:          options,
	}
}
