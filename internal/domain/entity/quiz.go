package entity

import "time"

// Quiz представляет викторину — фиксированный банк вопросов одного владельца.
// После создания викторина неизменна, кроме переименования и удаления.
type Quiz struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	OwnerID   uint       `gorm:"not null;index" json:"owner_id"`
	Questions []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}
