package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quizdrill-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizdrill-api/internal/pkg/errors"
)

// statsCacheTTL ограничивает жизнь кешированных агрегатов; помимо TTL
// кеш сбрасывается явно при записи ответа
const statsCacheTTL = 5 * time.Minute

func sessionStatsCacheKey(sessionID uint) string {
	return fmt.Sprintf("session:%d:category_stats", sessionID)
}

func quizStatsCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:%d:overall_stats", quizID)
}

func quizCategoryStatsCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:%d:category_stats", quizID)
}

// StatsService отдает агрегированную статистику поверх выходов трекера
// прогресса. Чистый потребитель ядра: ничего не мутирует, читает агрегаты
// из хранилища и кеширует их в Redis.
type StatsService struct {
	answerRepo repository.AnswerRepository
	cacheRepo  repository.CacheRepository
}

// NewStatsService создает новый сервис статистики
func NewStatsService(answerRepo repository.AnswerRepository, cacheRepo repository.CacheRepository) *StatsService {
	return &StatsService{
		answerRepo: answerRepo,
		cacheRepo:  cacheRepo,
	}
}

// SessionCategoryStats возвращает точность по категориям для сессии
func (s *StatsService) SessionCategoryStats(sessionID uint) ([]repository.CategoryStat, error) {
	key := sessionStatsCacheKey(sessionID)

	var cached []repository.CategoryStat
	if s.tryCacheGet(key, &cached) {
		return cached, nil
	}

	stats, err := s.answerRepo.CategoryStats(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category stats for session #%d: %w", sessionID, err)
	}
	s.tryCacheSet(key, stats)
	return stats, nil
}

// QuizOverallStats возвращает сводную статистику викторины за все сессии
func (s *StatsService) QuizOverallStats(quizID uint) (*repository.QuizOverallStats, error) {
	key := quizStatsCacheKey(quizID)

	var cached repository.QuizOverallStats
	if s.tryCacheGet(key, &cached) {
		return &cached, nil
	}

	stats, err := s.answerRepo.QuizOverallStats(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get overall stats for quiz #%d: %w", quizID, err)
	}
	s.tryCacheSet(key, stats)
	return stats, nil
}

// QuizCategoryStats возвращает покрытие и точность по категориям викторины
func (s *StatsService) QuizCategoryStats(quizID uint) ([]repository.QuizCategoryStats, error) {
	key := quizCategoryStatsCacheKey(quizID)

	var cached []repository.QuizCategoryStats
	if s.tryCacheGet(key, &cached) {
		return cached, nil
	}

	stats, err := s.answerRepo.QuizCategoryStats(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category stats for quiz #%d: %w", quizID, err)
	}
	s.tryCacheSet(key, stats)
	return stats, nil
}

// tryCacheGet читает кеш; промах и сбой Redis равнозначны — идем в БД
func (s *StatsService) tryCacheGet(key string, dest interface{}) bool {
	if s.cacheRepo == nil {
		return false
	}
	err := s.cacheRepo.GetJSON(key, dest)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[StatsService] WARNING: cache read failed for %s: %v", key, err)
		}
		return false
	}
	return true
}

// tryCacheSet пишет кеш; сбой Redis не мешает отдать ответ
func (s *StatsService) tryCacheSet(key string, value interface{}) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.SetJSON(key, value, statsCacheTTL); err != nil {
		log.Printf("[StatsService] WARNING: cache write failed for %s: %v", key, err)
	}
}
