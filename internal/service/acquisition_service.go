package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/aalkhodiry/ikhtibar/internal/model"
)

// standardModeDelay keeps the Standard strategy on the same asynchronous
// contract as the generating strategies, so the session has one uniform
// suspension point regardless of mode.
const standardModeDelay = 500 * time.Millisecond

// AcquisitionResult is a finite ordered question set produced for an exam
// configuration. PersistenceWarning is set when the acquired questions
// could not be written through to the bank; the questions themselves are
// still usable.
type AcquisitionResult struct {
	Questions          []model.Question
	PersistenceWarning string
}

// AcquisitionService produces a question set for an exam configuration,
// dispatching to the strategy selected by the config's mode.
type AcquisitionService interface {
	Acquire(ctx context.Context, cfg model.ExamConfig) (AcquisitionResult, error)
}

type acquisitionService struct {
	standard AcquisitionService
	smart    AcquisitionService
	pdf      AcquisitionService
}

func NewAcquisitionService(generator QuestionGenerator, bank QuestionBankService) AcquisitionService {
	return &acquisitionService{
		standard: NewStandardAcquisition(rand.New(rand.NewSource(time.Now().UnixNano())), standardModeDelay),
		smart:    NewSmartAcquisition(generator, bank),
		pdf:      NewPDFAcquisition(generator, bank),
	}
}

func (s *acquisitionService) Acquire(ctx context.Context, cfg model.ExamConfig) (AcquisitionResult, error) {
	if cfg.NumQuestions < 1 {
		return AcquisitionResult{}, fmt.Errorf("%w: question count must be positive, got %d", ErrInvalidConfiguration, cfg.NumQuestions)
	}

	switch cfg.Mode {
	case model.ModeStandard:
		return s.standard.Acquire(ctx, cfg)
	case model.ModeSmart:
		return s.smart.Acquire(ctx, cfg)
	case model.ModePDF:
		return s.pdf.Acquire(ctx, cfg)
	default:
		return AcquisitionResult{}, fmt.Errorf("%w: unknown exam mode %q", ErrInvalidConfiguration, cfg.Mode)
	}
}

// standardAcquisition serves shuffled catalog questions. It never calls a
// network collaborator.
type standardAcquisition struct {
	catalog map[model.Specialization][]model.Question
	rng     *rand.Rand
	delay   time.Duration
}

// NewStandardAcquisition builds the catalog strategy. The random source is
// injectable so shuffle-dependent tests stay deterministic.
func NewStandardAcquisition(rng *rand.Rand, delay time.Duration) AcquisitionService {
	return &standardAcquisition{catalog: standardCatalog, rng: rng, delay: delay}
}

func (s *standardAcquisition) Acquire(ctx context.Context, cfg model.ExamConfig) (AcquisitionResult, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return AcquisitionResult{}, ctx.Err()
		}
	}

	available := s.catalog[cfg.Specialization]
	if len(available) == 0 {
		return AcquisitionResult{}, fmt.Errorf("%w: %s", ErrNoQuestionsAvailable, cfg.Specialization)
	}

	shuffled := make([]model.Question, len(available))
	copy(shuffled, available)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	// When fewer catalog entries exist than requested, all of them are
	// returned; no padding and no error.
	if cfg.NumQuestions < len(shuffled) {
		shuffled = shuffled[:cfg.NumQuestions]
	}
	return AcquisitionResult{Questions: shuffled}, nil
}
