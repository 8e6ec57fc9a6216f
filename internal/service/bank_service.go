package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/aalkhodiry/ikhtibar/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const questionBankKey = "aiGeneratedQuestionsBank"

// QuestionBankService owns the durable, deduplicated sequence of
// non-ephemeral questions accumulated across exam sessions.
//
// Two questions are duplicates iff their Text fields are identical; no
// normalization is applied before the comparison.
type QuestionBankService interface {
	GetAll() ([]model.Question, error)
	SetAll(questions []model.Question) error
	// Merge appends the members of newQuestions whose text is not already
	// present and returns the resulting full sequence. When the
	// write-through fails the returned sequence is still the merged
	// in-memory view, alongside an error wrapping ErrPersistence.
	Merge(newQuestions []model.Question) ([]model.Question, error)
	Clear() error
	Update(question model.Question) error
	Delete(id string) error
}

type questionBankService struct {
	mu      sync.Mutex
	storage repository.StorageRepository
}

func NewQuestionBankService(storage repository.StorageRepository) QuestionBankService {
	return &questionBankService{storage: storage}
}

func (s *questionBankService) GetAll() ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load reads the stored sequence. Legacy records without an id get a fresh
// one back-filled on the returned copy; the stored record is left as is.
// Callers must hold s.mu.
func (s *questionBankService) load() ([]model.Question, error) {
	raw, err := s.storage.Get(questionBankKey)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return []model.Question{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading question bank: %w", err)
	}

	var questions []model.Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("decoding question bank: %w", err)
	}
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
	}
	return questions, nil
}

// save writes the full sequence through to storage. Callers must hold s.mu.
func (s *questionBankService) save(questions []model.Question) error {
	raw, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("%w: encoding question bank: %v", ErrPersistence, err)
	}
	if err := s.storage.Set(questionBankKey, string(raw)); err != nil {
		return fmt.Errorf("%w: writing question bank: %v", ErrPersistence, err)
	}
	return nil
}

func (s *questionBankService) SetAll(questions []model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(questions)
}

func (s *questionBankService) Merge(newQuestions []model.Question) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, q := range existing {
		seen[q.Text] = struct{}{}
	}

	merged := existing
	appended := 0
	for _, q := range newQuestions {
		if _, dup := seen[q.Text]; dup {
			continue
		}
		seen[q.Text] = struct{}{}
		merged = append(merged, q)
		appended++
	}

	if appended == 0 {
		return existing, nil
	}

	if err := s.save(merged); err != nil {
		// The merged view stays valid for the caller even though the
		// write-through failed.
		log.Error().Err(err).Int("appended", appended).Msg("Question bank merge write failed")
		return merged, err
	}
	log.Info().Int("appended", appended).Int("bank_size", len(merged)).Msg("Merged new questions into bank")
	return merged, nil
}

func (s *questionBankService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Delete(questionBankKey); err != nil {
		return fmt.Errorf("%w: clearing question bank: %v", ErrPersistence, err)
	}
	return nil
}

func (s *questionBankService) Update(question model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions, err := s.load()
	if err != nil {
		return err
	}
	for i := range questions {
		if questions[i].ID == question.ID {
			questions[i] = question
			return s.save(questions)
		}
	}
	return fmt.Errorf("question %s not found in bank", question.ID)
}

func (s *questionBankService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions, err := s.load()
	if err != nil {
		return err
	}
	for i := range questions {
		if questions[i].ID == id {
			questions = append(questions[:i], questions[i+1:]...)
			return s.save(questions)
		}
	}
	return fmt.Errorf("question %s not found in bank", id)
}
