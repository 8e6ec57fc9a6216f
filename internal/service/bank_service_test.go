package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/aalkhodiry/ikhtibar/internal/repository"
)

// failingStorage wraps a working repository and fails every write.
type failingStorage struct {
	repository.StorageRepository
}

func (f *failingStorage) Set(key, value string) error {
	return errors.New("disk full")
}

func TestBankMergeDeduplicatesByText(t *testing.T) {
	bank := NewQuestionBankService(repository.NewMemoryStorageRepository())

	if err := bank.SetAll([]model.Question{{ID: "1", Text: "Q1"}}); err != nil {
		t.Fatalf("SetAll: %v", err)
	}

	merged, err := bank.Merge([]model.Question{{ID: "1b", Text: "Q1"}, {ID: "2", Text: "Q2"}})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 questions after merge, got %d", len(merged))
	}
	if merged[0].Text != "Q1" || merged[1].Text != "Q2" {
		t.Errorf("unexpected merge order: %q, %q", merged[0].Text, merged[1].Text)
	}
	// Q1 must keep its original id; the incoming duplicate is dropped.
	if merged[0].ID != "1" {
		t.Errorf("existing question was replaced, id = %q", merged[0].ID)
	}
}

func TestBankMergeIsIdempotent(t *testing.T) {
	bank := NewQuestionBankService(repository.NewMemoryStorageRepository())

	questions := []model.Question{{ID: "1", Text: "Q1"}, {ID: "2", Text: "Q2"}}
	first, err := bank.Merge(questions)
	if err != nil {
		t.Fatalf("first Merge: %v", err)
	}
	second, err := bank.Merge(questions)
	if err != nil {
		t.Fatalf("second Merge: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("merge not idempotent: %d then %d questions", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text {
			t.Errorf("question %d differs: %q vs %q", i, first[i].Text, second[i].Text)
		}
	}
}

func TestBankMergeNothingNewLeavesStoreUntouched(t *testing.T) {
	storage := repository.NewMemoryStorageRepository()
	bank := NewQuestionBankService(storage)

	if err := bank.SetAll([]model.Question{{ID: "1", Text: "Q1"}}); err != nil {
		t.Fatalf("SetAll: %v", err)
	}
	before, err := storage.Get("aiGeneratedQuestionsBank")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if _, err := bank.Merge([]model.Question{{ID: "x", Text: "Q1"}}); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	after, err := storage.Get("aiGeneratedQuestionsBank")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if before != after {
		t.Error("no-op merge rewrote the stored value")
	}
}

func TestBankMergeWriteFailureKeepsInMemoryView(t *testing.T) {
	storage := repository.NewMemoryStorageRepository()
	bank := NewQuestionBankService(&failingStorage{StorageRepository: storage})

	merged, err := bank.Merge([]model.Question{{ID: "1", Text: "Q1"}})
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
	if len(merged) != 1 || merged[0].Text != "Q1" {
		t.Errorf("in-memory merge result lost on write failure: %+v", merged)
	}
}

func TestBankGetAllBackfillsMissingIDs(t *testing.T) {
	storage := repository.NewMemoryStorageRepository()

	// A legacy record written without ids.
	legacy, _ := json.Marshal([]model.Question{{Text: "old question"}})
	if err := storage.Set("aiGeneratedQuestionsBank", string(legacy)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	bank := NewQuestionBankService(storage)
	questions, err := bank.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].ID == "" {
		t.Error("expected a back-filled id for legacy record")
	}
}

func TestBankUpdateAndDelete(t *testing.T) {
	bank := NewQuestionBankService(repository.NewMemoryStorageRepository())

	if err := bank.SetAll([]model.Question{{ID: "1", Text: "Q1"}, {ID: "2", Text: "Q2"}}); err != nil {
		t.Fatalf("SetAll: %v", err)
	}

	if err := bank.Update(model.Question{ID: "1", Text: "Q1 edited", Answer: "yes"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := bank.Delete("2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	questions, err := bank.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Text != "Q1 edited" {
		t.Errorf("update not applied: %q", questions[0].Text)
	}

	if err := bank.Delete("missing"); err == nil {
		t.Error("expected error deleting unknown question")
	}
}

func TestBankClear(t *testing.T) {
	bank := NewQuestionBankService(repository.NewMemoryStorageRepository())

	if _, err := bank.Merge([]model.Question{{ID: "1", Text: "Q1"}}); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if err := bank.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	questions, err := bank.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("expected empty bank after clear, got %d questions", len(questions))
	}
}
