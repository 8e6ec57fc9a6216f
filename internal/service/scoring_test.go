package service

import (
	"testing"

	"github.com/aalkhodiry/ikhtibar/internal/model"
)

func TestScoreExam(t *testing.T) {
	questions := []model.Question{
		{Text: "Capital of France?", Answer: "Paris"},
		{Text: "Answer to everything?", Answer: "42"},
	}

	tests := []struct {
		name    string
		answers map[int]string
		want    int
	}{
		{
			name:    "trimmed case-insensitive match counts, wrong answer does not",
			answers: map[int]string{0: "paris ", 1: "43"},
			want:    1,
		},
		{
			name:    "all correct",
			answers: map[int]string{0: "  PARIS", 1: "42"},
			want:    2,
		},
		{
			name:    "unanswered questions never count",
			answers: map[int]string{},
			want:    0,
		},
		{
			name:    "empty answer does not match non-empty canonical answer",
			answers: map[int]string{0: "   "},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreExam(questions, tt.answers); got != tt.want {
				t.Errorf("ScoreExam() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreExamIsPure(t *testing.T) {
	questions := []model.Question{{Text: "Q", Answer: "A"}}
	answers := map[int]string{0: "a"}

	first := ScoreExam(questions, answers)
	second := ScoreExam(questions, answers)
	if first != second {
		t.Errorf("repeated scoring differed: %d then %d", first, second)
	}
	if answers[0] != "a" {
		t.Errorf("answers map was mutated: %q", answers[0])
	}
	if questions[0].Answer != "A" {
		t.Errorf("question was mutated: %q", questions[0].Answer)
	}
}
