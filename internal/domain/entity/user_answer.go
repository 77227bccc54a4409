package entity

import "time"

// UserAnswer — журнальная запись об отправленном варианте ответа.
// На один вопрос пишется по строке на каждый выбранный вариант; повторные
// отправки добавляют новые строки, а не перезаписывают старые. Источником
// истины для подсчета очков служит SessionQuestion.IsCorrect, а не этот журнал.
type UserAnswer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionID  uint      `gorm:"not null;index" json:"session_id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	OptionID   uint      `gorm:"not null" json:"option_id"`
	IsCorrect  bool      `gorm:"not null" json:"is_correct"`
	DurationMs *int64    `json:"duration_ms,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (UserAnswer) TableName() string {
	return "user_answers"
}
