package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/smart-correction/quizphere/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aiResponse(metaType string, questions ...AIQuestion) AIQuizResponse {
	return AIQuizResponse{
		Status: "success",
		Data: AIQuizData{
			QuizID:    "quiz-123",
			Questions: questions,
			Metadata: AIMetadata{
				Type:        metaType,
				GeneratedAt: "2025-03-01T10:00:00Z",
				Source:      "topic",
				Language:    "en",
			},
		},
	}
}

func TestMapMultipleChoice(t *testing.T) {
	resp := aiResponse("quiz", AIQuestion{
		QuestionText: "Capital of France?",
		ImageURL:     []string{"https://img.example/eiffel.jpg"},
		Answer: AIAnswer{
			Type:          "multiple_choice",
			CorrectAnswer: json.RawMessage(`2`),
			Options:       []string{"London", "Berlin", "Paris", "Madrid"},
		},
		Explanation: "Paris has been the capital since 987.",
	})

	quiz, err := MapAIResponseToQuiz(resp)
	require.NoError(t, err)

	assert.Equal(t, "quiz-123", quiz.ID)
	assert.Equal(t, models.TypeQuiz, quiz.Type)
	assert.Equal(t, models.StatusDraft, quiz.Status)
	assert.Equal(t, models.LangEnglish, quiz.Language)

	wantTime := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.True(t, quiz.CreatedAt.Equal(wantTime))
	assert.True(t, quiz.UpdatedAt.Equal(wantTime))

	require.Len(t, quiz.Questions, 1)
	q := quiz.Questions[0]
	assert.Equal(t, models.TypeQuiz, q.Type)
	assert.Equal(t, "Capital of France?", q.Text)
	assert.Equal(t, "Paris has been the capital since 987.", q.Explanation)
	require.Len(t, q.Images, 1)
	assert.Equal(t, "https://img.example/eiffel.jpg", q.Images[0].URL)

	require.Len(t, q.Choices, 4)
	correctCount := 0
	for i, c := range q.Choices {
		if c.IsCorrect {
			correctCount++
			assert.Equal(t, 2, i)
			assert.Equal(t, "Paris", c.Text)
		}
	}
	assert.Equal(t, 1, correctCount)
}

func TestMapBoolean(t *testing.T) {
	for code, wantCorrect := range map[int]string{1: "True", 0: "False"} {
		resp := aiResponse("vrai_ou_faux", AIQuestion{
			QuestionText: "The sky is blue.",
			Answer: AIAnswer{
				Type:          "boolean",
				CorrectAnswer: json.RawMessage(jsonInt(code)),
			},
		})

		quiz, err := MapAIResponseToQuiz(resp)
		require.NoError(t, err)
		require.Len(t, quiz.Questions, 1)

		choices := quiz.Questions[0].Choices
		require.Len(t, choices, 2)
		assert.Equal(t, "True", choices[0].Text)
		assert.Equal(t, "False", choices[1].Text)
		for _, c := range choices {
			assert.Equal(t, c.Text == wantCorrect, c.IsCorrect)
		}
	}
}

func TestMapBooleanRejectsBadCode(t *testing.T) {
	resp := aiResponse("vrai_ou_faux", AIQuestion{
		QuestionText: "Broken",
		Answer: AIAnswer{
			Type:          "boolean",
			CorrectAnswer: json.RawMessage(`5`),
		},
	})

	_, err := MapAIResponseToQuiz(resp)
	assert.Error(t, err)
}

func TestMapPuzzle(t *testing.T) {
	resp := aiResponse("puzzle", AIQuestion{
		QuestionText: "Order the steps",
		Answer: AIAnswer{
			Type:          "puzzle",
			CorrectAnswer: json.RawMessage(`[2, 0, 1]`),
			Options:       []string{"Serve", "Knead", "Bake"},
		},
	})

	quiz, err := MapAIResponseToQuiz(resp)
	require.NoError(t, err)

	choices := quiz.Questions[0].Choices
	require.Len(t, choices, 3)

	seen := make(map[int]bool)
	for _, c := range choices {
		assert.True(t, c.IsCorrect)
		require.NotNil(t, c.Order)
		seen[*c.Order] = true
	}
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true}, seen)

	// The provided order applies to the options regardless of upload order.
	assert.Equal(t, 2, *choices[0].Order)
	assert.Equal(t, 0, *choices[1].Order)
	assert.Equal(t, 1, *choices[2].Order)
}

func TestMapPuzzleRejectsNonPermutation(t *testing.T) {
	resp := aiResponse("puzzle", AIQuestion{
		QuestionText: "Broken",
		Answer: AIAnswer{
			Type:          "puzzle",
			CorrectAnswer: json.RawMessage(`[0, 0, 1]`),
			Options:       []string{"A", "B", "C"},
		},
	})

	_, err := MapAIResponseToQuiz(resp)
	assert.Error(t, err)
}

func TestMapSlider(t *testing.T) {
	resp := aiResponse("curseur", AIQuestion{
		QuestionText: "Boiling point of water in Celsius?",
		Answer: AIAnswer{
			Type:          "curseur",
			CorrectAnswer: json.RawMessage(`[0, 100, 200]`),
		},
	})

	quiz, err := MapAIResponseToQuiz(resp)
	require.NoError(t, err)
	assert.Equal(t, models.TypeSlider, quiz.Type)

	choices := quiz.Questions[0].Choices
	require.Len(t, choices, 1)
	c := choices[0]
	require.NotNil(t, c.Min)
	require.NotNil(t, c.Max)
	require.NotNil(t, c.CorrectValue)
	assert.Equal(t, 0.0, *c.Min)
	assert.Equal(t, 200.0, *c.Max)
	assert.Equal(t, 100.0, *c.CorrectValue)
	assert.True(t, *c.Min <= *c.CorrectValue && *c.CorrectValue <= *c.Max)
}

func TestMapSliderRejectsBadTuple(t *testing.T) {
	cases := []string{`[0, 100]`, `[50, 10, 40]`, `"not a tuple"`}
	for _, raw := range cases {
		resp := aiResponse("curseur", AIQuestion{
			QuestionText: "Broken",
			Answer: AIAnswer{
				Type:          "curseur",
				CorrectAnswer: json.RawMessage(raw),
			},
		})
		_, err := MapAIResponseToQuiz(resp)
		assert.Error(t, err, "tuple %s should be rejected", raw)
	}
}

func TestMapFreeResponse(t *testing.T) {
	resp := aiResponse("reponse_libre", AIQuestion{
		QuestionText: "Name a primary color",
		Answer: AIAnswer{
			Type:          "reponse_libre",
			CorrectAnswer: json.RawMessage(`["red", "blue", "yellow"]`),
		},
	})

	quiz, err := MapAIResponseToQuiz(resp)
	require.NoError(t, err)

	choices := quiz.Questions[0].Choices
	require.Len(t, choices, 3)
	for _, c := range choices {
		assert.True(t, c.IsCorrect)
		assert.NotEmpty(t, c.Text)
	}
}

func TestMapUnknownQuizTypeFallsBack(t *testing.T) {
	resp := aiResponse("mystery_mode", AIQuestion{
		QuestionText: "Fallback?",
		Answer: AIAnswer{
			Type:          "multiple_choice",
			CorrectAnswer: json.RawMessage(`0`),
			Options:       []string{"Yes", "No"},
		},
	})

	quiz, err := MapAIResponseToQuiz(resp)
	require.NoError(t, err)
	assert.Equal(t, models.TypeQuiz, quiz.Type)
	assert.Equal(t, models.TypeQuiz, quiz.Questions[0].Type)
}

func TestMapRejectsAnswerTypeMismatch(t *testing.T) {
	resp := aiResponse("puzzle", AIQuestion{
		QuestionText: "Mismatch",
		Answer: AIAnswer{
			Type:          "boolean",
			CorrectAnswer: json.RawMessage(`1`),
		},
	})

	_, err := MapAIResponseToQuiz(resp)
	assert.Error(t, err)
}

func TestMapRejectsOutOfRangeIndex(t *testing.T) {
	resp := aiResponse("quiz", AIQuestion{
		QuestionText: "Broken",
		Answer: AIAnswer{
			Type:          "multiple_choice",
			CorrectAnswer: json.RawMessage(`7`),
			Options:       []string{"A", "B"},
		},
	})

	_, err := MapAIResponseToQuiz(resp)
	assert.Error(t, err)
}

func TestMapOptionalFieldsStayEmpty(t *testing.T) {
	resp := aiResponse("quiz", AIQuestion{
		QuestionText: "No extras",
		Answer: AIAnswer{
			Type:          "multiple_choice",
			CorrectAnswer: json.RawMessage(`0`),
			Options:       []string{"A", "B"},
		},
	})

	quiz, err := MapAIResponseToQuiz(resp)
	require.NoError(t, err)
	q := quiz.Questions[0]
	assert.Empty(t, q.Images)
	assert.Empty(t, q.Explanation)
}

func TestMapGeneratesUniqueIDs(t *testing.T) {
	resp := aiResponse("quiz",
		AIQuestion{
			QuestionText: "Q1",
			Answer: AIAnswer{
				Type:          "multiple_choice",
				CorrectAnswer: json.RawMessage(`0`),
				Options:       []string{"A", "B", "C"},
			},
		},
		AIQuestion{
			QuestionText: "Q2",
			Answer: AIAnswer{
				Type:          "multiple_choice",
				CorrectAnswer: json.RawMessage(`1`),
				Options:       []string{"A", "B", "C"},
			},
		},
	)

	quiz, err := MapAIResponseToQuiz(resp)
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, q := range quiz.Questions {
		assert.False(t, ids[q.ID])
		ids[q.ID] = true
		for _, c := range q.Choices {
			assert.False(t, ids[c.ID])
			ids[c.ID] = true
		}
	}
}

func jsonInt(n int) []byte {
	b, _ := json.Marshal(n)
	return b
}
