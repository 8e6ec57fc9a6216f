package service

import (
	"testing"

	"github.com/aalkhodiry/ikhtibar/internal/repository"
)

func TestStatsGetReturnsZeroesWhenUnrecorded(t *testing.T) {
	stats := NewUserStatsService(repository.NewMemoryStorageRepository())

	got, err := stats.Get("nobody")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ExamsTaken != 0 || got.TotalQuestionsAnswered != 0 || got.CorrectAnswers != 0 {
		t.Errorf("expected zero stats, got %+v", got)
	}
}

func TestStatsRecordAccumulates(t *testing.T) {
	stats := NewUserStatsService(repository.NewMemoryStorageRepository())

	if err := stats.Record("u1", 3, 5); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := stats.Record("u1", 4, 4); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := stats.Get("u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ExamsTaken != 2 {
		t.Errorf("ExamsTaken = %d, want 2", got.ExamsTaken)
	}
	if got.TotalQuestionsAnswered != 9 {
		t.Errorf("TotalQuestionsAnswered = %d, want 9", got.TotalQuestionsAnswered)
	}
	if got.CorrectAnswers != 7 {
		t.Errorf("CorrectAnswers = %d, want 7", got.CorrectAnswers)
	}
	if got.CorrectAnswers > got.TotalQuestionsAnswered {
		t.Error("invariant violated: correct answers exceed total answered")
	}
}

func TestStatsRecordRejectsImpossibleResults(t *testing.T) {
	stats := NewUserStatsService(repository.NewMemoryStorageRepository())

	if err := stats.Record("u1", 6, 5); err == nil {
		t.Error("expected error for correct > total")
	}
	if err := stats.Record("u1", -1, 5); err == nil {
		t.Error("expected error for negative correct count")
	}

	got, err := stats.Get("u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ExamsTaken != 0 {
		t.Errorf("rejected record still counted: %+v", got)
	}
}

func TestStatsResetZeroesEverything(t *testing.T) {
	stats := NewUserStatsService(repository.NewMemoryStorageRepository())

	if err := stats.Record("u1", 2, 3); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := stats.Reset("u1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	got, err := stats.Get("u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ExamsTaken != 0 || got.TotalQuestionsAnswered != 0 || got.CorrectAnswers != 0 {
		t.Errorf("expected zero stats after reset, got %+v", got)
	}
}

func TestStatsAreKeyedByUser(t *testing.T) {
	stats := NewUserStatsService(repository.NewMemoryStorageRepository())

	if err := stats.Record("u1", 1, 2); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := stats.Get("u2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ExamsTaken != 0 {
		t.Errorf("stats leaked across users: %+v", got)
	}
}
