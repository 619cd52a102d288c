package services

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/smart-correction/quizphere/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DefaultTimeLimit applies when a quiz has no per-question limit set.
	DefaultTimeLimit = 30
	// DefaultQuestionPoints applies when a quiz has no point budget set.
	DefaultQuestionPoints = 100
)

// RunOptions carries optional per-run overrides for the quiz's configured
// time limit and point budget.
type RunOptions struct {
	TimeLimit *int `json:"time_limit,omitempty"`
	Points    *int `json:"points,omitempty"`
}

// RunState is the externally visible snapshot of a run session. Question is
// set while presenting; Answers and PercentageCorrect once finished.
type RunState struct {
	RunID             string               `json:"run_id"`
	QuizID            string               `json:"quiz_id"`
	QuestionIndex     int                  `json:"question_index"`
	TotalQuestions    int                  `json:"total_questions"`
	TimeLeft          int                  `json:"time_left"`
	Finished          bool                 `json:"finished"`
	Score             float64              `json:"score"`
	TotalPoints       int                  `json:"total_points"`
	PercentageCorrect float64              `json:"percentage_correct,omitempty"`
	Question          *RunQuestion         `json:"question,omitempty"`
	Answers           map[string]RunAnswer `json:"answers,omitempty"`
}

// RunQuestion is the presented question with correctness information
// withheld: no is_correct flags, no puzzle target order, no slider correct
// value, and no accepted free-response literals at all.
type RunQuestion struct {
	ID      string          `json:"id"`
	Type    models.QuizType `json:"type"`
	Text    string          `json:"text"`
	Images  []string        `json:"images,omitempty"`
	Choices []RunChoice     `json:"choices,omitempty"`
	Points  float64         `json:"points"`
}

type RunChoice struct {
	ID   string   `json:"id"`
	Text string   `json:"text,omitempty"`
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
}

// RunSession drives a single user's timed progression through a quiz:
// one question at a time, a per-question countdown, answer capture and a
// terminal scored result. All state is mutated under one mutex; the only
// concurrent caller is the ticker goroutine.
type RunSession struct {
	ID     string
	QuizID string
	UserID string

	mu          sync.Mutex
	questions   []models.Question
	timeLimit   int
	perQuestion float64
	totalPoints int
	index       int
	timeLeft    int
	pending     *RunAnswer
	answers     map[string]RunAnswer
	score       float64
	finished    bool

	stopCh   chan struct{}
	timerOn  bool
	onChange func(RunState)
	onFinish func(*RunSession)
}

// NewRunSession builds a run over an already-loaded quiz. A nil quiz or a
// quiz without questions cannot be run.
func NewRunSession(quiz *models.Quiz, opts RunOptions) (*RunSession, error) {
	if quiz == nil {
		return nil, errors.New("no quiz to run")
	}
	if len(quiz.Questions) == 0 {
		return nil, errors.New("quiz has no questions")
	}

	timeLimit := quiz.TimeLimit
	if opts.TimeLimit != nil {
		timeLimit = *opts.TimeLimit
	}
	if timeLimit == 0 {
		timeLimit = DefaultTimeLimit
	}
	if timeLimit < models.MinTimeLimit {
		timeLimit = models.MinTimeLimit
	}
	if timeLimit > models.MaxTimeLimit {
		timeLimit = models.MaxTimeLimit
	}

	points := quiz.Points
	if opts.Points != nil {
		points = *opts.Points
	}
	if points < 0 {
		points = 0
	}
	if points > models.MaxPoints {
		points = models.MaxPoints
	}

	// When a point budget is configured it is split evenly across the
	// questions and the budget itself is the maximum score. Without one,
	// every question is worth 100.
	questionCount := len(quiz.Questions)
	var perQuestion float64
	var totalPoints int
	if points > 0 {
		perQuestion = float64(points) / float64(questionCount)
		totalPoints = points
	} else {
		perQuestion = DefaultQuestionPoints
		totalPoints = DefaultQuestionPoints * questionCount
	}

	return &RunSession{
		ID:          uuid.NewString(),
		QuizID:      quiz.ID,
		UserID:      quiz.UserID,
		questions:   quiz.Questions,
		timeLimit:   timeLimit,
		perQuestion: perQuestion,
		totalPoints: totalPoints,
		timeLeft:    timeLimit,
		answers:     make(map[string]RunAnswer),
		stopCh:      make(chan struct{}),
	}, nil
}

// StartTimer launches the one-second countdown loop. There is exactly one
// per session; it stops when the session reaches its result.
func (r *RunSession) StartTimer() {
	r.mu.Lock()
	if r.timerOn || r.finished {
		r.mu.Unlock()
		return
	}
	r.timerOn = true
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-r.stopCh:
				return
			case <-ticker.C:
				r.Tick()
			}
		}
	}()
}

// Tick decrements the countdown by one second. Reaching zero forces the
// same advance as an explicit user action, with whatever answer is pending
// at that instant. Ticks after the result state are no-ops.
func (r *RunSession) Tick() {
	r.mu.Lock()
	if r.finished {
		r.mu.Unlock()
		return
	}
	r.timeLeft--
	justFinished := false
	if r.timeLeft <= 0 {
		justFinished = r.advanceLocked()
	}
	state := r.stateLocked()
	r.mu.Unlock()

	r.notify(state, justFinished)
}

// Select records the pending answer for the current question, replacing any
// earlier selection. No history within a question is kept.
func (r *RunSession) Select(ans RunAnswer) (RunState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finished {
		return r.stateLocked(), errors.New("run already finished")
	}
	r.pending = &ans
	return r.stateLocked(), nil
}

// Advance records and scores the pending answer, then moves to the next
// question or to the result when the current question is the last one.
func (r *RunSession) Advance() (RunState, error) {
	r.mu.Lock()
	if r.finished {
		state := r.stateLocked()
		r.mu.Unlock()
		return state, errors.New("run already finished")
	}
	justFinished := r.advanceLocked()
	state := r.stateLocked()
	r.mu.Unlock()

	r.notify(state, justFinished)
	return state, nil
}

func (r *RunSession) State() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

// advanceLocked performs the shared advance transition. Returns true when
// the session just entered its result state.
func (r *RunSession) advanceLocked() bool {
	q := r.questions[r.index]
	if r.pending != nil && !r.pending.isEmpty() {
		r.answers[q.ID] = *r.pending
		if IsCorrectAnswer(&q, *r.pending) {
			r.score += r.perQuestion
		}
	}
	r.pending = nil

	if r.index == len(r.questions)-1 {
		r.finished = true
		r.stopTimerLocked()
		return true
	}

	r.index++
	r.timeLeft = r.timeLimit
	return false
}

// stopTimerLocked cancels the countdown loop. Must happen on entering the
// result state so no ticks arrive afterwards.
func (r *RunSession) stopTimerLocked() {
	if r.timerOn {
		close(r.stopCh)
		r.timerOn = false
	}
}

func (r *RunSession) stateLocked() RunState {
	state := RunState{
		RunID:          r.ID,
		QuizID:         r.QuizID,
		QuestionIndex:  r.index,
		TotalQuestions: len(r.questions),
		TimeLeft:       r.timeLeft,
		Finished:       r.finished,
		Score:          r.score,
		TotalPoints:    r.totalPoints,
	}

	if r.finished {
		state.PercentageCorrect = r.score / float64(r.totalPoints) * 100
		answers := make(map[string]RunAnswer, len(r.answers))
		for k, v := range r.answers {
			answers[k] = v
		}
		state.Answers = answers
		return state
	}

	q := r.questions[r.index]
	view := RunQuestion{
		ID:     q.ID,
		Type:   q.Type,
		Text:   q.Text,
		Points: r.perQuestion,
	}
	for _, img := range q.Images {
		view.Images = append(view.Images, img.URL)
	}
	if q.Type != models.TypeFreeResponse {
		for _, c := range q.Choices {
			view.Choices = append(view.Choices, RunChoice{
				ID:   c.ID,
				Text: c.Text,
				Min:  c.Min,
				Max:  c.Max,
			})
		}
	}
	state.Question = &view
	return state
}

func (r *RunSession) notify(state RunState, justFinished bool) {
	if r.onChange != nil {
		r.onChange(state)
	}
	if justFinished && r.onFinish != nil {
		r.onFinish(r)
	}
}

// RunService owns the registry of live preview sessions and persists their
// results.
type RunService struct {
	db *gorm.DB

	mu       sync.Mutex
	sessions map[string]*RunSession

	notifier func(RunState)
}

func NewRunService(db *gorm.DB) *RunService {
	return &RunService{
		db:       db,
		sessions: make(map[string]*RunSession),
	}
}

// SetNotifier installs the callback invoked on every state change, used to
// push live run state to preview clients.
func (s *RunService) SetNotifier(fn func(RunState)) {
	s.notifier = fn
}

func (s *RunService) StartRun(quizID, userID string, opts RunOptions) (RunState, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ? AND user_id = ?", quizID, userID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Choices").
		Preload("Questions.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&quiz).Error
	if err != nil {
		return RunState{}, errors.New("quiz not found")
	}

	sess, err := NewRunSession(&quiz, opts)
	if err != nil {
		return RunState{}, err
	}
	sess.UserID = userID
	sess.onChange = s.notifier
	sess.onFinish = s.persistResult

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	sess.StartTimer()
	return sess.State(), nil
}

func (s *RunService) Select(runID string, ans RunAnswer) (RunState, error) {
	sess, err := s.session(runID)
	if err != nil {
		return RunState{}, err
	}
	return sess.Select(ans)
}

func (s *RunService) Advance(runID string) (RunState, error) {
	sess, err := s.session(runID)
	if err != nil {
		return RunState{}, err
	}
	return sess.Advance()
}

func (s *RunService) State(runID string) (RunState, error) {
	sess, err := s.session(runID)
	if err != nil {
		return RunState{}, err
	}
	return sess.State(), nil
}

func (s *RunService) session(runID string) (*RunSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[runID]
	if !ok {
		return nil, errors.New("run not found")
	}
	return sess, nil
}

func (s *RunService) persistResult(sess *RunSession) {
	state := sess.State()

	answersJSON, err := json.Marshal(state.Answers)
	if err != nil {
		log.Printf("run %s: failed to marshal answers: %v", sess.ID, err)
		answersJSON = []byte("{}")
	}

	result := models.RunResult{
		ID:          uuid.NewString(),
		QuizID:      sess.QuizID,
		UserID:      sess.UserID,
		Score:       state.Score,
		TotalPoints: state.TotalPoints,
		Answers:     string(answersJSON),
	}
	if err := s.db.Create(&result).Error; err != nil {
		log.Printf("run %s: failed to persist result: %v", sess.ID, err)
	}
}

// ListResults returns the persisted run results for one of the user's
// quizzes, newest first.
func (s *RunService) ListResults(quizID, userID string) ([]models.RunResult, error) {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND user_id = ?", quizID, userID).First(&quiz).Error; err != nil {
		return nil, errors.New("quiz not found")
	}

	var results []models.RunResult
	if err := s.db.Where("quiz_id = ?", quizID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
