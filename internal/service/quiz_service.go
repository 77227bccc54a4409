package service

import (
	"fmt"
	"log"

	"github.com/yourusername/quizdrill-api/internal/domain/entity"
	"github.com/yourusername/quizdrill-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizdrill-api/internal/pkg/errors"
)

// QuizService управляет викторинами как контейнерами банка вопросов:
// создание, переименование, удаление, дашборд владельца. Наполнение
// банка вопросами (авторинг, импорт) — вне зоны ответственности сервиса.
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
}

// NewQuizService создает новый сервис викторин
func NewQuizService(quizRepo repository.QuizRepository, questionRepo repository.QuestionRepository) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
	}
}

// Create создает викторину
func (s *QuizService) Create(name string, ownerID uint) (*entity.Quiz, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: quiz name must not be empty", apperrors.ErrValidation)
	}

	quiz := &entity.Quiz{
		Name:    name,
		OwnerID: ownerID,
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	log.Printf("[QuizService] created quiz %q (id=%d) for owner=%d", name, quiz.ID, ownerID)
	return quiz, nil
}

// GetByID возвращает викторину по ID
func (s *QuizService) GetByID(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetByID(quizID)
}

// ListByOwner возвращает викторины владельца с агрегатами для дашборда
func (s *QuizService) ListByOwner(ownerID uint) ([]repository.QuizOverview, error) {
	return s.quizRepo.ListByOwner(ownerID)
}

// VerifyOwner сообщает, принадлежит ли викторина пользователю
func (s *QuizService) VerifyOwner(quizID, userID uint) (bool, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return false, err
	}
	return quiz.OwnerID == userID, nil
}

// Rename переименовывает викторину
func (s *QuizService) Rename(quizID uint, newName string) error {
	if newName == "" {
		return fmt.Errorf("%w: quiz name must not be empty", apperrors.ErrValidation)
	}
	if err := s.quizRepo.Rename(quizID, newName); err != nil {
		return err
	}
	log.Printf("[QuizService] renamed quiz %d to %q", quizID, newName)
	return nil
}

// Delete удаляет викторину вместе с вопросами, вариантами и сессиями
func (s *QuizService) Delete(quizID uint) error {
	if err := s.quizRepo.Delete(quizID); err != nil {
		return err
	}
	log.Printf("[QuizService] deleted quiz %d", quizID)
	return nil
}

// QuestionCount возвращает размер банка вопросов викторины
func (s *QuizService) QuestionCount(quizID uint) (int64, error) {
	return s.questionRepo.CountByQuizID(quizID)
}
