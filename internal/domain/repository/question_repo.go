package repository

import (
	"github.com/yourusername/quizdrill-api/internal/domain/entity"
)

// QuestionRepository — read-only доступ к банку вопросов викторины.
// Методы выборки пулов не имеют побочных эффектов и возвращают пустые
// срезы (не ошибки), когда ничего не подходит.
type QuestionRepository interface {
	// GetByID возвращает вопрос вместе с вариантами ответа
	GetByID(id uint) (*entity.Question, error)

	// AllQuestionIDs возвращает упорядоченный список всех ID вопросов викторины
	AllQuestionIDs(quizID uint) ([]uint, error)

	// NeverAssignedQuestionIDs возвращает ID вопросов, ни разу не попадавших
	// в назначения ни одной сессии данной викторины (независимо от владельца)
	NeverAssignedQuestionIDs(quizID uint) ([]uint, error)

	// PreviouslyIncorrectQuestionIDs возвращает ID вопросов, хотя бы раз
	// отмеченных неверными в какой-либо сессии викторины
	PreviouslyIncorrectQuestionIDs(quizID uint) ([]uint, error)

	// CorrectOptionIDs возвращает ID правильных вариантов вопроса
	CorrectOptionIDs(questionID uint) ([]uint, error)

	// CountByQuizID возвращает размер банка вопросов викторины
	CountByQuizID(quizID uint) (int64, error)
}
