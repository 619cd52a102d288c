package services

import (
	"testing"

	"github.com/smart-correction/quizphere/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuizSettings(t *testing.T) {
	assert.NoError(t, validateQuizSettings(0, 0))
	assert.NoError(t, validateQuizSettings(5, 0))
	assert.NoError(t, validateQuizSettings(120, 1000))

	assert.Error(t, validateQuizSettings(4, 0))
	assert.Error(t, validateQuizSettings(121, 0))
	assert.Error(t, validateQuizSettings(0, -1))
	assert.Error(t, validateQuizSettings(0, 1001))
}

func TestValidateMultipleChoice(t *testing.T) {
	valid := []ChoiceInput{
		{Text: "A", IsCorrect: true},
		{Text: "B"},
		{Text: "C"},
	}
	assert.NoError(t, validateChoicesByType(models.TypeQuiz, valid))

	assert.Error(t, validateChoicesByType(models.TypeQuiz, valid[:1]))

	tooMany := make([]ChoiceInput, 7)
	tooMany[0].IsCorrect = true
	assert.Error(t, validateChoicesByType(models.TypeQuiz, tooMany))

	noneCorrect := []ChoiceInput{{Text: "A"}, {Text: "B"}}
	assert.Error(t, validateChoicesByType(models.TypeQuiz, noneCorrect))

	twoCorrect := []ChoiceInput{
		{Text: "A", IsCorrect: true},
		{Text: "B", IsCorrect: true},
	}
	assert.Error(t, validateChoicesByType(models.TypeQuiz, twoCorrect))
}

func TestValidateTrueFalse(t *testing.T) {
	valid := []ChoiceInput{
		{Text: "True", IsCorrect: true},
		{Text: "False"},
	}
	assert.NoError(t, validateChoicesByType(models.TypeTrueFalse, valid))

	three := append(valid, ChoiceInput{Text: "Maybe"})
	assert.Error(t, validateChoicesByType(models.TypeTrueFalse, three))

	bothCorrect := []ChoiceInput{
		{Text: "True", IsCorrect: true},
		{Text: "False", IsCorrect: true},
	}
	assert.Error(t, validateChoicesByType(models.TypeTrueFalse, bothCorrect))
}

func TestValidatePuzzle(t *testing.T) {
	valid := []ChoiceInput{
		{Text: "First", IsCorrect: true, Order: intPtr(0)},
		{Text: "Second", IsCorrect: true, Order: intPtr(1)},
		{Text: "Third", IsCorrect: true, Order: intPtr(2)},
	}
	assert.NoError(t, validateChoicesByType(models.TypePuzzle, valid))

	notCorrect := []ChoiceInput{
		{Text: "First", IsCorrect: true, Order: intPtr(0)},
		{Text: "Second", Order: intPtr(1)},
	}
	assert.Error(t, validateChoicesByType(models.TypePuzzle, notCorrect))

	missingOrder := []ChoiceInput{
		{Text: "First", IsCorrect: true, Order: intPtr(0)},
		{Text: "Second", IsCorrect: true},
	}
	assert.Error(t, validateChoicesByType(models.TypePuzzle, missingOrder))

	duplicateOrder := []ChoiceInput{
		{Text: "First", IsCorrect: true, Order: intPtr(0)},
		{Text: "Second", IsCorrect: true, Order: intPtr(0)},
	}
	assert.Error(t, validateChoicesByType(models.TypePuzzle, duplicateOrder))

	outOfRange := []ChoiceInput{
		{Text: "First", IsCorrect: true, Order: intPtr(0)},
		{Text: "Second", IsCorrect: true, Order: intPtr(5)},
	}
	assert.Error(t, validateChoicesByType(models.TypePuzzle, outOfRange))
}

func TestValidateSlider(t *testing.T) {
	valid := []ChoiceInput{{
		IsCorrect:    true,
		Min:          floatPtr(0),
		Max:          floatPtr(100),
		CorrectValue: floatPtr(50),
	}}
	assert.NoError(t, validateChoicesByType(models.TypeSlider, valid))

	assert.Error(t, validateChoicesByType(models.TypeSlider, nil))
	assert.Error(t, validateChoicesByType(models.TypeSlider, append(valid, valid[0])))

	missingBounds := []ChoiceInput{{IsCorrect: true, CorrectValue: floatPtr(50)}}
	assert.Error(t, validateChoicesByType(models.TypeSlider, missingBounds))

	outside := []ChoiceInput{{
		IsCorrect:    true,
		Min:          floatPtr(0),
		Max:          floatPtr(100),
		CorrectValue: floatPtr(150),
	}}
	assert.Error(t, validateChoicesByType(models.TypeSlider, outside))
}

func TestValidateFreeResponse(t *testing.T) {
	valid := []ChoiceInput{
		{Text: "Paris", IsCorrect: true},
		{Text: "paris", IsCorrect: true},
	}
	assert.NoError(t, validateChoicesByType(models.TypeFreeResponse, valid))

	assert.Error(t, validateChoicesByType(models.TypeFreeResponse, nil))

	notCorrect := []ChoiceInput{{Text: "Paris"}}
	assert.Error(t, validateChoicesByType(models.TypeFreeResponse, notCorrect))

	empty := []ChoiceInput{{Text: "", IsCorrect: true}}
	assert.Error(t, validateChoicesByType(models.TypeFreeResponse, empty))
}
