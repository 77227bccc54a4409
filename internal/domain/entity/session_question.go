package entity

// SessionQuestion — назначение вопроса на слот сессии.
// QuestionNumber — порядковый номер 0..N-1, уникальный в рамках сессии;
// назначения создаются одной пачкой при создании сессии и никогда не
// переупорядочиваются. IsCorrect == nil означает "не отвечен".
type SessionQuestion struct {
	ID             uint  `gorm:"primaryKey" json:"id"`
	SessionID      uint  `gorm:"not null;index;uniqueIndex:idx_session_questions_session_number,priority:1" json:"session_id"`
	QuestionID     uint  `gorm:"not null;index" json:"question_id"`
	QuestionNumber int   `gorm:"not null;uniqueIndex:idx_session_questions_session_number,priority:2" json:"question_number"`
	IsCorrect      *bool `json:"is_correct,omitempty"`
	IsBookmarked   bool  `gorm:"not null;default:false" json:"is_bookmarked"`
}

// TableName определяет имя таблицы для GORM
func (SessionQuestion) TableName() string {
	return "session_questions"
}

// Answered сообщает, выставлен ли результат для назначения.
// Переход "не отвечен" -> "отвечен" односторонний: снять ответ нельзя,
// повторная отправка лишь перезаписывает результат.
func (sq *SessionQuestion) Answered() bool {
	return sq.IsCorrect != nil
}
