package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/smart-correction/quizphere/internal/models"

	"github.com/google/uuid"
)

// answerTypeNames maps the per-question answer.type wire names to the quiz
// type they imply. The question type itself always comes from the
// response-level metadata; a declared answer type that implies a different
// quiz type is rejected instead of silently overriding it.
var answerTypeNames = map[string]models.QuizType{
	"multiple_choice": models.TypeQuiz,
	"boolean":         models.TypeTrueFalse,
	"puzzle":          models.TypePuzzle,
	"curseur":         models.TypeSlider,
	"reponse_libre":   models.TypeFreeResponse,
}

// MapAIResponseToQuiz converts a generation-service response into the
// internal quiz model. Structurally broken answers (bad slider tuple,
// out-of-range choice index, missing options) are rejected; absent optional
// fields (images, explanation) are simply left empty. Every produced entity
// gets a fresh globally unique id. The result is always a draft.
func MapAIResponseToQuiz(resp AIQuizResponse) (*models.Quiz, error) {
	quizType := models.ParseQuizType(resp.Data.Metadata.Type)

	generatedAt, err := time.Parse(time.RFC3339, resp.Data.Metadata.GeneratedAt)
	if err != nil {
		generatedAt = time.Now()
	}

	quizID := resp.Data.QuizID
	if quizID == "" {
		quizID = uuid.NewString()
	}

	questions := make([]models.Question, 0, len(resp.Data.Questions))
	for i, aq := range resp.Data.Questions {
		if aq.Answer.Type != "" {
			declared, ok := answerTypeNames[aq.Answer.Type]
			if !ok {
				return nil, fmt.Errorf("question %d: unknown answer type %q", i, aq.Answer.Type)
			}
			if declared != quizType {
				return nil, fmt.Errorf("question %d: answer type %q does not match quiz type %q", i, aq.Answer.Type, quizType)
			}
		}

		choices, err := buildChoices(quizType, aq.Answer)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}

		question := models.Question{
			ID:          uuid.NewString(),
			QuizID:      quizID,
			Type:        quizType,
			Text:        aq.QuestionText,
			OrderNum:    i,
			Explanation: aq.Explanation,
			Choices:     choices,
		}
		for j, url := range aq.ImageURL {
			question.Images = append(question.Images, models.QuestionImage{
				ID:         uuid.NewString(),
				QuestionID: question.ID,
				URL:        url,
				OrderNum:   j,
			})
		}
		for c := range question.Choices {
			question.Choices[c].QuestionID = question.ID
		}
		questions = append(questions, question)
	}

	return &models.Quiz{
		ID:        quizID,
		Title:     "AI Generated Quiz",
		Language:  models.ParseLanguage(resp.Data.Metadata.Language),
		Type:      quizType,
		Status:    models.StatusDraft,
		Questions: questions,
		CreatedAt: generatedAt,
		UpdatedAt: generatedAt,
	}, nil
}

// buildChoices constructs the choices for one question. The switch is
// exhaustive over the closed QuizType enum.
func buildChoices(quizType models.QuizType, answer AIAnswer) ([]models.Choice, error) {
	switch quizType {
	case models.TypeQuiz:
		var correct int
		if err := json.Unmarshal(answer.CorrectAnswer, &correct); err != nil {
			return nil, fmt.Errorf("multiple choice correct_answer must be an index: %w", err)
		}
		if len(answer.Options) == 0 {
			return nil, fmt.Errorf("multiple choice requires options")
		}
		if correct < 0 || correct >= len(answer.Options) {
			return nil, fmt.Errorf("correct_answer index %d out of range for %d options", correct, len(answer.Options))
		}
		choices := make([]models.Choice, len(answer.Options))
		for i, text := range answer.Options {
			choices[i] = models.Choice{
				ID:        uuid.NewString(),
				Text:      text,
				IsCorrect: i == correct,
			}
		}
		return choices, nil

	case models.TypeTrueFalse:
		var code int
		if err := json.Unmarshal(answer.CorrectAnswer, &code); err != nil {
			return nil, fmt.Errorf("boolean correct_answer must be 0 or 1: %w", err)
		}
		if code != 0 && code != 1 {
			return nil, fmt.Errorf("boolean correct_answer must be 0 or 1, got %d", code)
		}
		return []models.Choice{
			{ID: uuid.NewString(), Text: "True", IsCorrect: code == 1},
			{ID: uuid.NewString(), Text: "False", IsCorrect: code == 0},
		}, nil

	case models.TypePuzzle:
		var order []int
		if err := json.Unmarshal(answer.CorrectAnswer, &order); err != nil {
			return nil, fmt.Errorf("puzzle correct_answer must be an order array: %w", err)
		}
		if len(answer.Options) == 0 {
			return nil, fmt.Errorf("puzzle requires options")
		}
		if len(order) != len(answer.Options) {
			return nil, fmt.Errorf("puzzle order has %d entries for %d options", len(order), len(answer.Options))
		}
		seen := make(map[int]bool, len(order))
		for _, pos := range order {
			if pos < 0 || pos >= len(order) || seen[pos] {
				return nil, fmt.Errorf("puzzle order must be a permutation of 0..%d", len(order)-1)
			}
			seen[pos] = true
		}
		choices := make([]models.Choice, len(answer.Options))
		for i, text := range answer.Options {
			pos := order[i]
			choices[i] = models.Choice{
				ID:        uuid.NewString(),
				Text:      text,
				IsCorrect: true,
				Order:     &pos,
			}
		}
		return choices, nil

	case models.TypeSlider:
		// Fixed destructure order: [min, correctValue, max].
		var tuple []float64
		if err := json.Unmarshal(answer.CorrectAnswer, &tuple); err != nil {
			return nil, fmt.Errorf("slider correct_answer must be a number tuple: %w", err)
		}
		if len(tuple) != 3 {
			return nil, fmt.Errorf("slider correct_answer must be [min, value, max], got %d numbers", len(tuple))
		}
		min, value, max := tuple[0], tuple[1], tuple[2]
		if min > max || value < min || value > max {
			return nil, fmt.Errorf("slider value %v outside range [%v, %v]", value, min, max)
		}
		return []models.Choice{{
			ID:           uuid.NewString(),
			IsCorrect:    true,
			Min:          &min,
			Max:          &max,
			CorrectValue: &value,
		}}, nil

	case models.TypeFreeResponse:
		var accepted []string
		if err := json.Unmarshal(answer.CorrectAnswer, &accepted); err != nil {
			return nil, fmt.Errorf("free response correct_answer must be a string array: %w", err)
		}
		if len(accepted) == 0 {
			return nil, fmt.Errorf("free response requires at least one accepted answer")
		}
		choices := make([]models.Choice, len(accepted))
		for i, text := range accepted {
			choices[i] = models.Choice{
				ID:        uuid.NewString(),
				Text:      text,
				IsCorrect: true,
			}
		}
		return choices, nil
	}

	return nil, fmt.Errorf("unsupported quiz type %q", quizType)
}
