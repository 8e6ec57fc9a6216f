package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/aalkhodiry/ikhtibar/internal/repository"
)

// fakeAcquirer serves a fixed result, optionally blocking until released so
// concurrent starts can be exercised.
type fakeAcquirer struct {
	result  AcquisitionResult
	err     error
	entered chan struct{}
	release chan struct{}
}

func (f *fakeAcquirer) Acquire(ctx context.Context, cfg model.ExamConfig) (AcquisitionResult, error) {
	if f.entered != nil {
		close(f.entered)
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return AcquisitionResult{}, f.err
	}
	return f.result, nil
}

func sessionQuestions() []model.Question {
	return []model.Question{
		{ID: "1", Text: "Capital of France?", Type: model.ShortAnswer, Answer: "Paris"},
		{ID: "2", Text: "Answer to everything?", Type: model.ShortAnswer, Answer: "42"},
	}
}

func newActiveSession(t *testing.T) ExamSessionService {
	t.Helper()
	acq := &fakeAcquirer{result: AcquisitionResult{Questions: sessionQuestions()}}
	sess := NewExamSessionService(acq, NewUserStatsService(repository.NewMemoryStorageRepository()))
	if err := sess.Start(context.Background(), model.ExamConfig{Mode: model.ModeStandard, NumQuestions: 2}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return sess
}

func TestSessionStartsEmptyAnswered(t *testing.T) {
	sess := newActiveSession(t)

	snap := sess.Snapshot()
	if snap.State != model.StateActive {
		t.Fatalf("state = %s, want %s", snap.State, model.StateActive)
	}
	if len(snap.Questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(snap.Questions))
	}
	if len(snap.Answers) != 0 {
		t.Errorf("new session already has %d answers", len(snap.Answers))
	}
	if snap.Score != 0 {
		t.Errorf("new session has score %d", snap.Score)
	}
}

func TestSessionAnswerOnlyWhileActive(t *testing.T) {
	acq := &fakeAcquirer{result: AcquisitionResult{Questions: sessionQuestions()}}
	sess := NewExamSessionService(acq, NewUserStatsService(repository.NewMemoryStorageRepository()))

	if err := sess.Answer(0, "Paris"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("answer before start: expected ErrInvalidTransition, got %v", err)
	}

	if err := sess.Start(context.Background(), model.ExamConfig{Mode: model.ModeStandard, NumQuestions: 2}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sess.Answer(0, "Paris"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if err := sess.Answer(5, "oops"); !errors.Is(err, ErrAnswerIndexOutOfRange) {
		t.Errorf("out-of-range index: expected ErrAnswerIndexOutOfRange, got %v", err)
	}
	if err := sess.Answer(-1, "oops"); !errors.Is(err, ErrAnswerIndexOutOfRange) {
		t.Errorf("negative index: expected ErrAnswerIndexOutOfRange, got %v", err)
	}

	if _, err := sess.Submit(""); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := sess.Answer(1, "42"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("answer after submit: expected ErrInvalidTransition, got %v", err)
	}
}

func TestSessionSubmitScoresAndRecordsStats(t *testing.T) {
	acq := &fakeAcquirer{result: AcquisitionResult{Questions: sessionQuestions()}}
	stats := NewUserStatsService(repository.NewMemoryStorageRepository())
	sess := NewExamSessionService(acq, stats)

	if err := sess.Start(context.Background(), model.ExamConfig{Mode: model.ModeStandard, NumQuestions: 2}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sess.Answer(0, "paris "); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if err := sess.Answer(1, "43"); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	score, err := sess.Submit("u1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if score != 1 {
		t.Errorf("score = %d, want 1", score)
	}
	if snap := sess.Snapshot(); snap.State != model.StateFinished {
		t.Errorf("state = %s, want %s", snap.State, model.StateFinished)
	}

	got, err := stats.Get("u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ExamsTaken != 1 || got.TotalQuestionsAnswered != 2 || got.CorrectAnswers != 1 {
		t.Errorf("stats not recorded: %+v", got)
	}
}

func TestSessionAnonymousSubmitSkipsStats(t *testing.T) {
	acq := &fakeAcquirer{result: AcquisitionResult{Questions: sessionQuestions()}}
	stats := NewUserStatsService(repository.NewMemoryStorageRepository())
	sess := NewExamSessionService(acq, stats)

	if err := sess.Start(context.Background(), model.ExamConfig{Mode: model.ModeStandard, NumQuestions: 2}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := sess.Submit(""); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestSessionReviewAndRestart(t *testing.T) {
	sess := newActiveSession(t)

	if err := sess.Review(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("review while active: expected ErrInvalidTransition, got %v", err)
	}
	if err := sess.Restart(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("restart while active: expected ErrInvalidTransition, got %v", err)
	}

	if _, err := sess.Submit(""); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := sess.Review(); err != nil {
		t.Fatalf("Review: %v", err)
	}
	if snap := sess.Snapshot(); snap.State != model.StateReview {
		t.Errorf("state = %s, want %s", snap.State, model.StateReview)
	}

	if err := sess.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	snap := sess.Snapshot()
	if snap.State != model.StateConfig {
		t.Errorf("state = %s, want %s", snap.State, model.StateConfig)
	}
	if len(snap.Questions) != 0 || len(snap.Answers) != 0 || snap.Score != 0 {
		t.Errorf("restart did not clear the session: %+v", snap)
	}
}

func TestSessionFailedStartStaysInConfig(t *testing.T) {
	acq := &fakeAcquirer{err: errors.New("model unavailable")}
	sess := NewExamSessionService(acq, NewUserStatsService(repository.NewMemoryStorageRepository()))

	err := sess.Start(context.Background(), model.ExamConfig{Mode: model.ModeSmart, NumQuestions: 2})
	if err == nil {
		t.Fatal("expected start to fail")
	}

	snap := sess.Snapshot()
	if snap.State != model.StateConfig {
		t.Errorf("state = %s, want %s", snap.State, model.StateConfig)
	}
	if snap.Message == "" {
		t.Error("expected a user-facing failure message")
	}
	if len(snap.Questions) != 0 {
		t.Errorf("failed start left %d questions behind", len(snap.Questions))
	}
}

func TestSessionSecondStartWhilePendingIsBusy(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	acq := &fakeAcquirer{result: AcquisitionResult{Questions: sessionQuestions()}, entered: entered, release: release}
	sess := NewExamSessionService(acq, NewUserStatsService(repository.NewMemoryStorageRepository()))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sess.Start(context.Background(), model.ExamConfig{Mode: model.ModeStandard, NumQuestions: 2}); err != nil {
			t.Errorf("first Start: %v", err)
		}
	}()

	// Wait until the first start is parked inside the acquirer.
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first start never reached the acquirer")
	}

	if err := sess.Start(context.Background(), model.ExamConfig{Mode: model.ModeStandard, NumQuestions: 2}); !errors.Is(err, ErrSessionBusy) {
		t.Errorf("expected ErrSessionBusy, got %v", err)
	}

	close(release)
	wg.Wait()

	if snap := sess.Snapshot(); snap.State != model.StateActive {
		t.Errorf("state = %s after the pending start completed, want %s", snap.State, model.StateActive)
	}
}

func TestSessionStartCarriesPersistenceWarning(t *testing.T) {
	acq := &fakeAcquirer{result: AcquisitionResult{
		Questions:          sessionQuestions(),
		PersistenceWarning: "generated questions could not be saved to the question bank: disk full",
	}}
	sess := NewExamSessionService(acq, NewUserStatsService(repository.NewMemoryStorageRepository()))

	if err := sess.Start(context.Background(), model.ExamConfig{Mode: model.ModeSmart, NumQuestions: 2}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if snap := sess.Snapshot(); snap.Warning == "" {
		t.Error("persistence warning lost on the way to the snapshot")
	}
}

func TestSessionSnapshotIsACopy(t *testing.T) {
	sess := newActiveSession(t)

	snap := sess.Snapshot()
	snap.Questions[0].Text = "tampered"
	snap.Answers[0] = "tampered"

	fresh := sess.Snapshot()
	if fresh.Questions[0].Text == "tampered" {
		t.Error("snapshot shares question storage with the session")
	}
	if _, ok := fresh.Answers[0]; ok {
		t.Error("snapshot shares the answers map with the session")
	}
}
