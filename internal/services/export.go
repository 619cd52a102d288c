package services

import (
	"errors"
	"fmt"

	"github.com/smart-correction/quizphere/internal/models"
)

// ExportChoice carries every type-specific field so an export/import
// round trip preserves them unchanged.
type ExportChoice struct {
	Text         string   `json:"text"`
	IsCorrect    bool     `json:"is_correct"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	CorrectValue *float64 `json:"correct_value,omitempty"`
	Order        *int     `json:"order,omitempty"`
}

type ExportQuestion struct {
	Text        string         `json:"text"`
	Explanation string         `json:"explanation,omitempty"`
	ImageURLs   []string       `json:"image_urls,omitempty"`
	Choices     []ExportChoice `json:"choices"`
}

type ExportQuiz struct {
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Language    models.Language  `json:"language"`
	Type        models.QuizType  `json:"type"`
	TimeLimit   int              `json:"time_limit,omitempty"`
	Points      int              `json:"points,omitempty"`
	Questions   []ExportQuestion `json:"questions"`
}

// BuildExport serializes a quiz into the editor save format.
func BuildExport(quiz *models.Quiz) ExportQuiz {
	data := ExportQuiz{
		Title:       quiz.Title,
		Description: quiz.Description,
		Language:    quiz.Language,
		Type:        quiz.Type,
		TimeLimit:   quiz.TimeLimit,
		Points:      quiz.Points,
	}
	for _, q := range quiz.Questions {
		eq := ExportQuestion{Text: q.Text, Explanation: q.Explanation}
		for _, img := range q.Images {
			eq.ImageURLs = append(eq.ImageURLs, img.URL)
		}
		for _, c := range q.Choices {
			eq.Choices = append(eq.Choices, ExportChoice{
				Text:         c.Text,
				IsCorrect:    c.IsCorrect,
				Min:          c.Min,
				Max:          c.Max,
				CorrectValue: c.CorrectValue,
				Order:        c.Order,
			})
		}
		data.Questions = append(data.Questions, eq)
	}
	return data
}

// ImportQuiz recreates a quiz from exported data as a new draft with fresh
// ids, validating every question against the quiz type.
func (s *QuizService) ImportQuiz(userID string, data ExportQuiz) (*models.Quiz, error) {
	if data.Title == "" {
		return nil, errors.New("import requires a title")
	}
	if !data.Type.Valid() {
		return nil, fmt.Errorf("unknown quiz type %q", data.Type)
	}

	quiz, err := s.CreateQuiz(userID, QuizInput{
		Title:       data.Title,
		Description: data.Description,
		Language:    string(data.Language),
		Type:        string(data.Type),
		TimeLimit:   data.TimeLimit,
		Points:      data.Points,
	})
	if err != nil {
		return nil, err
	}

	for i, q := range data.Questions {
		input := QuestionInput{
			Text:        q.Text,
			Explanation: q.Explanation,
			ImageURLs:   q.ImageURLs,
		}
		for _, c := range q.Choices {
			input.Choices = append(input.Choices, ChoiceInput{
				Text:         c.Text,
				IsCorrect:    c.IsCorrect,
				Min:          c.Min,
				Max:          c.Max,
				CorrectValue: c.CorrectValue,
				Order:        c.Order,
			})
		}
		if _, err := s.CreateQuestion(quiz.ID, userID, input); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	return s.GetQuizByID(quiz.ID, userID)
}
