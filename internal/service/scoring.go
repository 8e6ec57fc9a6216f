package service

import (
	"strings"

	"github.com/aalkhodiry/ikhtibar/internal/model"
)

// ScoreExam counts correct answers. A user answer is correct iff it is
// present and, after trimming and case-folding, equals the question's
// canonical answer. Unanswered questions never count. The function is
// pure: neither argument is mutated.
func ScoreExam(questions []model.Question, answers map[int]string) int {
	correct := 0
	for i, q := range questions {
		userAnswer, ok := answers[i]
		if !ok {
			continue
		}
		if normalizeAnswer(userAnswer) == normalizeAnswer(q.Answer) {
			correct++
		}
	}
	return correct
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
