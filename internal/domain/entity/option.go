package entity

// Option представляет вариант ответа на вопрос
type Option struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	QuestionID  uint    `gorm:"not null;index" json:"question_id"`
	Text        string  `gorm:"column:option_text;size:500;not null" json:"text"`
	IsAnswer    bool    `gorm:"not null;default:false" json:"-"` // Скрыто от клиента
	Explanation *string `gorm:"size:1000" json:"explanation,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Option) TableName() string {
	return "options"
}
