package entity

import "time"

// QuizSession представляет одну попытку прохождения ограниченного подмножества
// вопросов викторины. Имя уникально в рамках викторины; токен возобновления
// уникален глобально и непредсказуем. Сессия создается один раз и не меняется,
// кроме переименования; удаление каскадно удаляет назначения и ответы.
type QuizSession struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:150;not null" json:"name"`
	SessionToken  string    `gorm:"size:64;not null;uniqueIndex" json:"session_token"`
	QuizID        uint      `gorm:"not null;index" json:"quiz_id"`
	ShuffleSeed   int32     `gorm:"not null;default:0" json:"shuffle_seed"`
	QuestionCount int       `gorm:"not null" json:"question_count"`
	SelectionMode string    `gorm:"size:20;not null;default:'random'" json:"selection_mode"`
	OwnerID       uint      `gorm:"not null;index" json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizSession) TableName() string {
	return "quiz_sessions"
}

// SessionProgress агрегирует состояние прохождения сессии.
// Answered — число назначений с выставленным результатом,
// Total — общее число назначений сессии.
type SessionProgress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// IsComplete сообщает, завершена ли сессия: все назначенные вопросы отвечены.
// Вырожденная сессия с нулем назначений считается завершенной сразу (0 >= 0).
func (p SessionProgress) IsComplete() bool {
	return p.Answered >= p.Total
}

// CurrentIndex возвращает порядковый номер следующего вопроса для показа.
// По соглашению это число уже отвеченных вопросов.
func (p SessionProgress) CurrentIndex() int {
	return p.Answered
}
