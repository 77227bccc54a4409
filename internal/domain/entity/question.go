package entity

import "time"

// Question представляет вопрос в банке викторины.
// Вопрос владеет минимум двумя вариантами ответа (Option).
type Question struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	QuizID           uint      `gorm:"not null;index" json:"quiz_id"`
	Text             string    `gorm:"column:question_text;size:500;not null" json:"text"`
	Category         *string   `gorm:"size:100" json:"category,omitempty"`
	IsMultipleChoice bool      `gorm:"not null;default:false" json:"is_multiple_choice"`
	Options          []Option  `gorm:"constraint:OnDelete:CASCADE" json:"options,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// CorrectOptionIDs возвращает ID правильных вариантов из предзагруженных Options.
// Для вопросов без предзагрузки используйте QuestionRepository.CorrectOptionIDs.
func (q *Question) CorrectOptionIDs() []uint {
	var ids []uint
	for _, opt := range q.Options {
		if opt.IsAnswer {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// EvaluateAnswer проверяет выбор пользователя против правильных вариантов.
// Одиночный выбор: единственный выбранный вариант должен входить в множество правильных.
// Множественный выбор: множество выбранных должно в точности совпадать с множеством
// правильных — частичное совпадение не засчитывается.
func (q *Question) EvaluateAnswer(selectedOptionIDs []uint, correctOptionIDs []uint) bool {
	if len(selectedOptionIDs) == 0 {
		return false
	}

	correct := make(map[uint]bool, len(correctOptionIDs))
	for _, id := range correctOptionIDs {
		correct[id] = true
	}

	if !q.IsMultipleChoice {
		return len(selectedOptionIDs) == 1 && correct[selectedOptionIDs[0]]
	}

	// Точное совпадение множеств (повторы в выборе схлопываются)
	selected := make(map[uint]bool, len(selectedOptionIDs))
	for _, id := range selectedOptionIDs {
		if !correct[id] {
			return false
		}
		selected[id] = true
	}
	return len(selected) == len(correct)
}
