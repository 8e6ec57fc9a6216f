package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/aalkhodiry/ikhtibar/internal/repository"
	"github.com/rs/zerolog/log"
)

const statsKeyPrefix = "userStats_"

// UserStatsService accumulates lifetime exam counts and correctness per
// user. Record is atomic with respect to callers in this process.
type UserStatsService interface {
	Get(userID string) (model.UserStats, error)
	Record(userID string, correctCount, totalCount int) error
	Reset(userID string) error
}

type userStatsService struct {
	mu      sync.Mutex
	storage repository.StorageRepository
}

func NewUserStatsService(storage repository.StorageRepository) UserStatsService {
	return &userStatsService{storage: storage}
}

func (s *userStatsService) Get(userID string) (model.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(userID)
}

func (s *userStatsService) load(userID string) (model.UserStats, error) {
	raw, err := s.storage.Get(statsKeyPrefix + userID)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return model.UserStats{}, nil
	}
	if err != nil {
		return model.UserStats{}, fmt.Errorf("reading stats for user %s: %w", userID, err)
	}
	var stats model.UserStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return model.UserStats{}, fmt.Errorf("decoding stats for user %s: %w", userID, err)
	}
	return stats, nil
}

func (s *userStatsService) Record(userID string, correctCount, totalCount int) error {
	if correctCount < 0 || totalCount < 0 || correctCount > totalCount {
		return fmt.Errorf("invalid exam result: %d correct of %d", correctCount, totalCount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.load(userID)
	if err != nil {
		return err
	}
	stats.ExamsTaken++
	stats.TotalQuestionsAnswered += totalCount
	stats.CorrectAnswers += correctCount

	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("%w: encoding stats: %v", ErrPersistence, err)
	}
	if err := s.storage.Set(statsKeyPrefix+userID, string(raw)); err != nil {
		return fmt.Errorf("%w: writing stats for user %s: %v", ErrPersistence, userID, err)
	}
	log.Info().Str("userID", userID).Int("correct", correctCount).Int("total", totalCount).Msg("Recorded exam result")
	return nil
}

func (s *userStatsService) Reset(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Delete(statsKeyPrefix + userID); err != nil {
		return fmt.Errorf("%w: resetting stats for user %s: %v", ErrPersistence, userID, err)
	}
	return nil
}
