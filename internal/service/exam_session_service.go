package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/rs/zerolog/log"
)

// SessionSnapshot is a read-only copy of the session for the presentation
// layer. Questions and Answers are copies; mutating them never touches the
// session.
type SessionSnapshot struct {
	State     model.ExamState
	Questions []model.Question
	Answers   map[int]string
	Score     int
	Message   string
	Warning   string
}

// ExamSessionService is the lifecycle state machine for the single exam
// attempt of this application instance:
//
//	Config --start--> Active --submit--> Finished --review--> Review
//	Finished|Review --restart--> Config
//
// Answers are mutable only while Active. A failed start returns to Config
// with a user-facing message. One acquisition is in flight at most; a
// second start while one is pending fails with ErrSessionBusy.
type ExamSessionService interface {
	Start(ctx context.Context, cfg model.ExamConfig) error
	Answer(index int, value string) error
	Submit(userID string) (int, error)
	Review() error
	Restart() error
	Snapshot() SessionSnapshot
}

type examSessionService struct {
	mu       sync.Mutex
	inFlight bool

	state     model.ExamState
	questions []model.Question
	answers   map[int]string
	score     int
	message   string
	warning   string

	acquirer AcquisitionService
	stats    UserStatsService
}

func NewExamSessionService(acquirer AcquisitionService, stats UserStatsService) ExamSessionService {
	return &examSessionService{
		state:    model.StateConfig,
		answers:  make(map[int]string),
		acquirer: acquirer,
		stats:    stats,
	}
}

func (s *examSessionService) Start(ctx context.Context, cfg model.ExamConfig) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrSessionBusy
	}
	if s.state != model.StateConfig {
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot start from %s", ErrInvalidTransition, s.state)
	}
	s.inFlight = true
	s.message = ""
	s.warning = ""
	s.questions = nil
	// The mutex is dropped across the acquisition await; inFlight keeps
	// the session closed to a second start meanwhile.
	s.mu.Unlock()

	result, err := s.acquirer.Acquire(ctx, cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		s.state = model.StateConfig
		s.questions = nil
		s.message = fmt.Sprintf("exam creation failed: %s", err.Error())
		log.Warn().Err(err).Str("mode", string(cfg.Mode)).Msg("Exam start failed")
		return err
	}

	s.questions = make([]model.Question, len(result.Questions))
	copy(s.questions, result.Questions)
	s.answers = make(map[int]string)
	s.score = 0
	s.warning = result.PersistenceWarning
	s.state = model.StateActive
	log.Info().Str("mode", string(cfg.Mode)).Int("questions", len(s.questions)).Msg("Exam started")
	return nil
}

func (s *examSessionService) Answer(index int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != model.StateActive {
		return fmt.Errorf("%w: answers are only accepted while the exam is active", ErrInvalidTransition)
	}
	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("%w: index %d with %d questions", ErrAnswerIndexOutOfRange, index, len(s.questions))
	}
	s.answers[index] = value
	return nil
}

func (s *examSessionService) Submit(userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != model.StateActive {
		return 0, fmt.Errorf("%w: cannot submit from %s", ErrInvalidTransition, s.state)
	}

	s.score = ScoreExam(s.questions, s.answers)
	s.state = model.StateFinished

	if userID != "" {
		if err := s.stats.Record(userID, s.score, len(s.questions)); err != nil {
			// A stats write failure does not undo the submission.
			log.Error().Err(err).Str("userID", userID).Msg("Failed to record exam result")
			s.warning = fmt.Sprintf("exam result could not be saved to your statistics: %s", err.Error())
		}
	}
	log.Info().Int("score", s.score).Int("total", len(s.questions)).Msg("Exam submitted")
	return s.score, nil
}

func (s *examSessionService) Review() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != model.StateFinished {
		return fmt.Errorf("%w: cannot review from %s", ErrInvalidTransition, s.state)
	}
	s.state = model.StateReview
	return nil
}

func (s *examSessionService) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != model.StateFinished && s.state != model.StateReview {
		return fmt.Errorf("%w: cannot restart from %s", ErrInvalidTransition, s.state)
	}
	s.state = model.StateConfig
	s.questions = nil
	s.answers = make(map[int]string)
	s.score = 0
	s.message = ""
	s.warning = ""
	return nil
}

func (s *examSessionService) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := make([]model.Question, len(s.questions))
	copy(questions, s.questions)
	answers := make(map[int]string, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	return SessionSnapshot{
		State:     s.state,
		Questions: questions,
		Answers:   answers,
		Score:     s.score,
		Message:   s.message,
		Warning:   s.warning,
	}
}
