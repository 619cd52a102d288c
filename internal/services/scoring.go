package services

import (
	"strings"

	"github.com/smart-correction/quizphere/internal/models"
)

// RunAnswer is one submitted answer. Exactly one field is meaningful,
// depending on the question type: ChoiceID for multiple choice and
// true/false, Ordering (choice ids in submitted sequence) for puzzle,
// Value for slider, Text for free response.
type RunAnswer struct {
	ChoiceID string   `json:"choice_id,omitempty"`
	Ordering []string `json:"ordering,omitempty"`
	Value    *float64 `json:"value,omitempty"`
	Text     string   `json:"text,omitempty"`
}

// IsCorrectAnswer checks a submitted answer against a question with a
// comparison appropriate to the question type. A single correct-choice-id
// equality only works for multiple choice and true/false; puzzle compares
// the submitted sequence to the target order, slider the submitted value,
// free response any accepted literal case-insensitively.
func IsCorrectAnswer(q *models.Question, ans RunAnswer) bool {
	switch q.Type {
	case models.TypeQuiz, models.TypeTrueFalse:
		if ans.ChoiceID == "" {
			return false
		}
		for _, c := range q.Choices {
			if c.IsCorrect {
				return c.ID == ans.ChoiceID
			}
		}
		return false

	case models.TypePuzzle:
		target := targetOrdering(q.Choices)
		if len(ans.Ordering) != len(target) {
			return false
		}
		for i, id := range ans.Ordering {
			if id != target[i] {
				return false
			}
		}
		return true

	case models.TypeSlider:
		if ans.Value == nil || len(q.Choices) == 0 {
			return false
		}
		c := q.Choices[0]
		return c.CorrectValue != nil && *ans.Value == *c.CorrectValue

	case models.TypeFreeResponse:
		submitted := strings.TrimSpace(ans.Text)
		if submitted == "" {
			return false
		}
		for _, c := range q.Choices {
			if c.IsCorrect && strings.EqualFold(submitted, strings.TrimSpace(c.Text)) {
				return true
			}
		}
		return false
	}

	return false
}

// targetOrdering returns the choice ids in canonical sequence, sorted by the
// per-choice target order. Upload order carries no meaning for puzzles.
func targetOrdering(choices []models.Choice) []string {
	ids := make([]string, len(choices))
	for _, c := range choices {
		if c.Order == nil || *c.Order < 0 || *c.Order >= len(choices) {
			return nil
		}
		ids[*c.Order] = c.ID
	}
	return ids
}

func (a RunAnswer) isEmpty() bool {
	return a.ChoiceID == "" && len(a.Ordering) == 0 && a.Value == nil && a.Text == ""
}
