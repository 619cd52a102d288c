package services

import (
	"testing"

	"github.com/smart-correction/quizphere/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func mcQuestion(id string, correct int, optionCount int) models.Question {
	q := models.Question{
		ID:   id,
		Type: models.TypeQuiz,
		Text: "question " + id,
	}
	for i := 0; i < optionCount; i++ {
		q.Choices = append(q.Choices, models.Choice{
			ID:        id + "-c" + string(rune('a'+i)),
			Text:      "option",
			IsCorrect: i == correct,
		})
	}
	return q
}

func runQuiz(timeLimit, points int, questions ...models.Question) *models.Quiz {
	return &models.Quiz{
		ID:        "quiz-1",
		UserID:    "user-1",
		Title:     "Test quiz",
		Type:      models.TypeQuiz,
		TimeLimit: timeLimit,
		Points:    points,
		Questions: questions,
	}
}

func TestNewRunSessionValidation(t *testing.T) {
	_, err := NewRunSession(nil, RunOptions{})
	assert.Error(t, err)

	_, err = NewRunSession(runQuiz(10, 0), RunOptions{})
	assert.Error(t, err)
}

func TestNewRunSessionDefaults(t *testing.T) {
	quiz := runQuiz(0, 0, mcQuestion("q1", 0, 3), mcQuestion("q2", 1, 3))

	sess, err := NewRunSession(quiz, RunOptions{})
	require.NoError(t, err)

	state := sess.State()
	assert.Equal(t, DefaultTimeLimit, state.TimeLeft)
	assert.Equal(t, 200, state.TotalPoints)
	require.NotNil(t, state.Question)
	assert.Equal(t, 100.0, state.Question.Points)
}

func TestNewRunSessionClampsOverrides(t *testing.T) {
	quiz := runQuiz(10, 100, mcQuestion("q1", 0, 3))

	sess, err := NewRunSession(quiz, RunOptions{TimeLimit: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, models.MinTimeLimit, sess.State().TimeLeft)

	sess, err = NewRunSession(quiz, RunOptions{TimeLimit: intPtr(500)})
	require.NoError(t, err)
	assert.Equal(t, models.MaxTimeLimit, sess.State().TimeLeft)

	sess, err = NewRunSession(quiz, RunOptions{Points: intPtr(5000)})
	require.NoError(t, err)
	assert.Equal(t, models.MaxPoints, sess.State().TotalPoints)
}

func TestRunFullScenario(t *testing.T) {
	quiz := runQuiz(10, 100, mcQuestion("q1", 2, 4), mcQuestion("q2", 0, 4))

	sess, err := NewRunSession(quiz, RunOptions{})
	require.NoError(t, err)

	state := sess.State()
	assert.Equal(t, 0, state.QuestionIndex)
	assert.Equal(t, 2, state.TotalQuestions)
	assert.Equal(t, 10, state.TimeLeft)
	assert.False(t, state.Finished)
	require.NotNil(t, state.Question)
	assert.Equal(t, "q1", state.Question.ID)
	assert.Equal(t, 50.0, state.Question.Points)

	// Correct choice on the first question.
	state, err = sess.Select(RunAnswer{ChoiceID: "q1-cc"})
	require.NoError(t, err)
	assert.Equal(t, 0, state.QuestionIndex)

	state, err = sess.Advance()
	require.NoError(t, err)
	assert.Equal(t, 1, state.QuestionIndex)
	assert.Equal(t, 10, state.TimeLeft)
	assert.Equal(t, 50.0, state.Score)

	// Let the second question expire without an answer.
	for i := 0; i < 10; i++ {
		sess.Tick()
	}

	state = sess.State()
	assert.True(t, state.Finished)
	assert.Equal(t, 50.0, state.Score)
	assert.Equal(t, 100, state.TotalPoints)
	assert.Equal(t, 50.0, state.PercentageCorrect)
	assert.Nil(t, state.Question)
	require.Len(t, state.Answers, 1)
	assert.Equal(t, "q1-cc", state.Answers["q1"].ChoiceID)
}

func TestSelectReplacesEarlierSelection(t *testing.T) {
	quiz := runQuiz(10, 0, mcQuestion("q1", 1, 3))

	sess, err := NewRunSession(quiz, RunOptions{})
	require.NoError(t, err)

	_, err = sess.Select(RunAnswer{ChoiceID: "q1-ca"})
	require.NoError(t, err)
	_, err = sess.Select(RunAnswer{ChoiceID: "q1-cb"})
	require.NoError(t, err)

	state, err := sess.Advance()
	require.NoError(t, err)
	assert.True(t, state.Finished)
	assert.Equal(t, 100.0, state.Score)
	assert.Equal(t, "q1-cb", state.Answers["q1"].ChoiceID)
}

func TestSelectSameAnswerTwice(t *testing.T) {
	quiz := runQuiz(10, 0, mcQuestion("q1", 0, 3))

	sess, err := NewRunSession(quiz, RunOptions{})
	require.NoError(t, err)

	_, err = sess.Select(RunAnswer{ChoiceID: "q1-ca"})
	require.NoError(t, err)
	_, err = sess.Select(RunAnswer{ChoiceID: "q1-ca"})
	require.NoError(t, err)

	state, err := sess.Advance()
	require.NoError(t, err)
	assert.Equal(t, 100.0, state.Score)
}

func TestExpiryRecordsPendingAnswer(t *testing.T) {
	quiz := runQuiz(10, 0, mcQuestion("q1", 0, 3), mcQuestion("q2", 0, 3))

	sess, err := NewRunSession(quiz, RunOptions{})
	require.NoError(t, err)

	_, err = sess.Select(RunAnswer{ChoiceID: "q1-ca"})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		sess.Tick()
	}

	state := sess.State()
	assert.Equal(t, 1, state.QuestionIndex)
	assert.Equal(t, 10, state.TimeLeft)
	assert.Equal(t, 100.0, state.Score)
}

func TestFinishedSessionRejectsFurtherActions(t *testing.T) {
	quiz := runQuiz(10, 0, mcQuestion("q1", 0, 3))

	sess, err := NewRunSession(quiz, RunOptions{})
	require.NoError(t, err)

	_, err = sess.Advance()
	require.NoError(t, err)

	_, err = sess.Select(RunAnswer{ChoiceID: "q1-ca"})
	assert.Error(t, err)
	_, err = sess.Advance()
	assert.Error(t, err)
}

func TestTicksAfterFinishAreNoOps(t *testing.T) {
	quiz := runQuiz(10, 0, mcQuestion("q1", 0, 3))

	sess, err := NewRunSession(quiz, RunOptions{})
	require.NoError(t, err)

	before, err := sess.Advance()
	require.NoError(t, err)
	require.True(t, before.Finished)

	sess.Tick()
	sess.Tick()

	after := sess.State()
	assert.Equal(t, before.TimeLeft, after.TimeLeft)
	assert.Equal(t, before.Score, after.Score)
	assert.True(t, after.Finished)
}

func TestOnFinishFiresOnce(t *testing.T) {
	quiz := runQuiz(10, 0, mcQuestion("q1", 0, 3), mcQuestion("q2", 0, 3))

	sess, err := NewRunSession(quiz, RunOptions{})
	require.NoError(t, err)

	finishes := 0
	changes := 0
	sess.onChange = func(RunState) { changes++ }
	sess.onFinish = func(*RunSession) { finishes++ }

	_, err = sess.Advance()
	require.NoError(t, err)
	_, err = sess.Advance()
	require.NoError(t, err)

	assert.Equal(t, 1, finishes)
	assert.Equal(t, 2, changes)
}

func TestPresentedQuestionWithholdsCorrectness(t *testing.T) {
	min, max, value := 0.0, 100.0, 42.0
	quiz := &models.Quiz{
		ID:   "quiz-1",
		Type: models.TypeSlider,
		Questions: []models.Question{{
			ID:   "q1",
			Type: models.TypeSlider,
			Choices: []models.Choice{{
				ID:           "q1-ca",
				IsCorrect:    true,
				Min:          &min,
				Max:          &max,
				CorrectValue: &value,
			}},
		}},
	}

	sess, err := NewRunSession(quiz, RunOptions{})
	require.NoError(t, err)

	state := sess.State()
	require.NotNil(t, state.Question)
	require.Len(t, state.Question.Choices, 1)
	c := state.Question.Choices[0]
	assert.Equal(t, &min, c.Min)
	assert.Equal(t, &max, c.Max)
}

func TestFreeResponseQuestionHidesChoices(t *testing.T) {
	quiz := &models.Quiz{
		ID:   "quiz-1",
		Type: models.TypeFreeResponse,
		Questions: []models.Question{{
			ID:   "q1",
			Type: models.TypeFreeResponse,
			Choices: []models.Choice{
				{ID: "q1-ca", Text: "Paris", IsCorrect: true},
			},
		}},
	}

	sess, err := NewRunSession(quiz, RunOptions{})
	require.NoError(t, err)

	state := sess.State()
	require.NotNil(t, state.Question)
	assert.Empty(t, state.Question.Choices)
}
