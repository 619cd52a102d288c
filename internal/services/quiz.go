package services

import (
	"errors"
	"fmt"

	"github.com/smart-correction/quizphere/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type QuizInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Type        string `json:"type"`
	TimeLimit   int    `json:"time_limit"`
	Points      int    `json:"points"`
}

type ChoiceInput struct {
	Text         string   `json:"text"`
	IsCorrect    bool     `json:"is_correct"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	CorrectValue *float64 `json:"correct_value,omitempty"`
	Order        *int     `json:"order,omitempty"`
}

type QuestionInput struct {
	Text        string        `json:"text"`
	Explanation string        `json:"explanation"`
	ImageURLs   []string      `json:"image_urls"`
	Choices     []ChoiceInput `json:"choices"`
}

func (s *QuizService) ListQuizzes(userID string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Where("user_id = ?", userID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Choices").
		Preload("Questions.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (s *QuizService) CreateQuiz(userID string, input QuizInput) (*models.Quiz, error) {
	quizType := models.ParseQuizType(input.Type)
	if err := validateQuizSettings(input.TimeLimit, input.Points); err != nil {
		return nil, err
	}

	quiz := models.Quiz{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Language:    models.ParseLanguage(input.Language),
		Type:        quizType,
		Status:      models.StatusDraft,
		TimeLimit:   input.TimeLimit,
		Points:      input.Points,
	}
	if err := s.db.Create(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) GetQuizByID(quizID, userID string) (*models.Quiz, error) {
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
		return nil, errors.New("quiz not found")
	}
	return &quiz, nil
}

func (s *QuizService) UpdateQuiz(quizID, userID string, input QuizInput) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND user_id = ?", quizID, userID).First(&quiz).Error; err != nil {
		return nil, errors.New("quiz not found")
	}

	if err := validateQuizSettings(input.TimeLimit, input.Points); err != nil {
		return nil, err
	}

	quiz.Title = input.Title
	quiz.Description = input.Description
	quiz.Language = models.ParseLanguage(input.Language)
	quiz.Type = models.ParseQuizType(input.Type)
	quiz.TimeLimit = input.TimeLimit
	quiz.Points = input.Points
	if err := s.db.Save(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) DeleteQuiz(quizID, userID string) error {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND user_id = ?", quizID, userID).First(&quiz).Error; err != nil {
		return errors.New("quiz not found")
	}

	s.db.Where("question_id IN (SELECT id FROM questions WHERE quiz_id = ?)", quizID).Delete(&models.Choice{})
	s.db.Where("question_id IN (SELECT id FROM questions WHERE quiz_id = ?)", quizID).Delete(&models.QuestionImage{})
	s.db.Where("quiz_id = ?", quizID).Delete(&models.Question{})
	return s.db.Delete(&quiz).Error
}

func (s *QuizService) PublishQuiz(quizID, userID string) (*models.Quiz, error) {
	quiz, err := s.GetQuizByID(quizID, userID)
	if err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, errors.New("cannot publish a quiz without questions")
	}
	for i, q := range quiz.Questions {
		if err := validateChoicesByType(q.Type, choiceInputsOf(q.Choices)); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	quiz.Status = models.StatusPublished
	if err := s.db.Model(&models.Quiz{}).Where("id = ?", quizID).
		Update("status", models.StatusPublished).Error; err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) CreateQuestion(quizID, userID string, input QuestionInput) (*models.Question, error) {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND user_id = ?", quizID, userID).First(&quiz).Error; err != nil {
		return nil, errors.New("quiz not found")
	}

	if err := validateChoicesByType(quiz.Type, input.Choices); err != nil {
		return nil, err
	}

	var maxOrder int
	s.db.Model(&models.Question{}).Where("quiz_id = ?", quizID).
		Select("COALESCE(MAX(order_num), -1)").Scan(&maxOrder)

	question := buildQuestion(quizID, quiz.Type, maxOrder+1, input)

	tx := s.db.Begin()
	if err := createQuestionTree(tx, &question); err != nil {
		tx.Rollback()
		return nil, err
	}
	tx.Commit()

	s.db.Preload("Choices").Preload("Images").First(&question, "id = ?", question.ID)
	return &question, nil
}

func (s *QuizService) UpdateQuestion(questionID, userID string, input QuestionInput) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		return nil, errors.New("question not found")
	}

	var quiz models.Quiz
	if err := s.db.Where("id = ? AND user_id = ?", question.QuizID, userID).First(&quiz).Error; err != nil {
		return nil, errors.New("quiz not found or access denied")
	}

	if err := validateChoicesByType(quiz.Type, input.Choices); err != nil {
		return nil, err
	}

	tx := s.db.Begin()

	question.Text = input.Text
	question.Explanation = input.Explanation
	if err := tx.Save(&question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Where("question_id = ?", questionID).Delete(&models.Choice{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, in := range input.Choices {
		choice := buildChoice(questionID, in)
		if err := tx.Create(&choice).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if input.ImageURLs != nil {
		if err := tx.Where("question_id = ?", questionID).Delete(&models.QuestionImage{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		for i, url := range input.ImageURLs {
			img := models.QuestionImage{
				ID:         uuid.NewString(),
				QuestionID: questionID,
				URL:        url,
				OrderNum:   i,
			}
			if err := tx.Create(&img).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	tx.Commit()

	s.db.Preload("Choices").Preload("Images").First(&question, "id = ?", questionID)
	return &question, nil
}

func (s *QuizService) DeleteQuestion(questionID, userID string) error {
	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		return errors.New("question not found")
	}

	var quiz models.Quiz
	if err := s.db.Where("id = ? AND user_id = ?", question.QuizID, userID).First(&quiz).Error; err != nil {
		return errors.New("quiz not found or access denied")
	}

	s.db.Where("question_id = ?", questionID).Delete(&models.Choice{})
	s.db.Where("question_id = ?", questionID).Delete(&models.QuestionImage{})
	return s.db.Delete(&question).Error
}

// ReorderQuestions moves the question at fromIndex to toIndex within the
// quiz's ordered question list and rewrites order numbers.
func (s *QuizService) ReorderQuestions(quizID, userID string, fromIndex, toIndex int) error {
	quiz, err := s.GetQuizByID(quizID, userID)
	if err != nil {
		return err
	}

	reordered, err := Reorder(quiz.Questions, fromIndex, toIndex)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	for i, q := range reordered {
		if err := tx.Model(&models.Question{}).Where("id = ?", q.ID).
			Update("order_num", i).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

func (s *QuizService) AddQuestionImage(questionID, userID, url string) (*models.QuestionImage, error) {
	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		return nil, errors.New("question not found")
	}

	var quiz models.Quiz
	if err := s.db.Where("id = ? AND user_id = ?", question.QuizID, userID).First(&quiz).Error; err != nil {
		return nil, errors.New("access denied")
	}

	var maxOrder int
	s.db.Model(&models.QuestionImage{}).Where("question_id = ?", questionID).
		Select("COALESCE(MAX(order_num), -1)").Scan(&maxOrder)

	img := models.QuestionImage{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		URL:        url,
		OrderNum:   maxOrder + 1,
	}
	if err := s.db.Create(&img).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *QuizService) DeleteQuestionImage(imageID, userID string) error {
	var img models.QuestionImage
	if err := s.db.First(&img, "id = ?", imageID).Error; err != nil {
		return errors.New("image not found")
	}

	var question models.Question
	if err := s.db.First(&question, "id = ?", img.QuestionID).Error; err != nil {
		return errors.New("question not found")
	}

	var quiz models.Quiz
	if err := s.db.Where("id = ? AND user_id = ?", question.QuizID, userID).First(&quiz).Error; err != nil {
		return errors.New("access denied")
	}

	return s.db.Delete(&img).Error
}

// SaveMapped persists a fully-assembled quiz (the mapper's output) as a new
// draft owned by userID.
func (s *QuizService) SaveMapped(userID string, quiz *models.Quiz) error {
	quiz.UserID = userID
	quiz.Status = models.StatusDraft

	tx := s.db.Begin()
	if err := tx.Omit("Questions").Create(quiz).Error; err != nil {
		tx.Rollback()
		return err
	}
	for i := range quiz.Questions {
		if err := createQuestionTree(tx, &quiz.Questions[i]); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

func createQuestionTree(tx *gorm.DB, question *models.Question) error {
	if err := tx.Omit("Choices", "Images").Create(question).Error; err != nil {
		return err
	}
	for i := range question.Choices {
		question.Choices[i].QuestionID = question.ID
		if err := tx.Create(&question.Choices[i]).Error; err != nil {
			return err
		}
	}
	for i := range question.Images {
		question.Images[i].QuestionID = question.ID
		if err := tx.Create(&question.Images[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func buildQuestion(quizID string, quizType models.QuizType, orderNum int, input QuestionInput) models.Question {
	question := models.Question{
		ID:          uuid.NewString(),
		QuizID:      quizID,
		Type:        quizType,
		Text:        input.Text,
		OrderNum:    orderNum,
		Explanation: input.Explanation,
	}
	for _, in := range input.Choices {
		question.Choices = append(question.Choices, buildChoice(question.ID, in))
	}
	for i, url := range input.ImageURLs {
		question.Images = append(question.Images, models.QuestionImage{
			ID:         uuid.NewString(),
			QuestionID: question.ID,
			URL:        url,
			OrderNum:   i,
		})
	}
	return question
}

func buildChoice(questionID string, in ChoiceInput) models.Choice {
	return models.Choice{
		ID:           uuid.NewString(),
		QuestionID:   questionID,
		Text:         in.Text,
		IsCorrect:    in.IsCorrect,
		Min:          in.Min,
		Max:          in.Max,
		CorrectValue: in.CorrectValue,
		Order:        in.Order,
	}
}

func choiceInputsOf(choices []models.Choice) []ChoiceInput {
	inputs := make([]ChoiceInput, len(choices))
	for i, c := range choices {
		inputs[i] = ChoiceInput{
			Text:         c.Text,
			IsCorrect:    c.IsCorrect,
			Min:          c.Min,
			Max:          c.Max,
			CorrectValue: c.CorrectValue,
			Order:        c.Order,
		}
	}
	return inputs
}

func validateQuizSettings(timeLimit, points int) error {
	if timeLimit != 0 && (timeLimit < models.MinTimeLimit || timeLimit > models.MaxTimeLimit) {
		return fmt.Errorf("time limit must be between %d and %d seconds", models.MinTimeLimit, models.MaxTimeLimit)
	}
	if points < 0 || points > models.MaxPoints {
		return fmt.Errorf("points must be between 0 and %d", models.MaxPoints)
	}
	return nil
}

// validateChoicesByType enforces the choice shape invariant for each quiz
// type before anything is written.
func validateChoicesByType(quizType models.QuizType, choices []ChoiceInput) error {
	switch quizType {
	case models.TypeQuiz:
		if len(choices) < 2 || len(choices) > 6 {
			return errors.New("multiple choice must have 2 to 6 choices")
		}
		correctCount := 0
		for _, c := range choices {
			if c.IsCorrect {
				correctCount++
			}
		}
		if correctCount != 1 {
			return errors.New("exactly one choice must be marked as correct")
		}

	case models.TypeTrueFalse:
		if len(choices) != 2 {
			return errors.New("true/false must have exactly 2 choices")
		}
		correctCount := 0
		for _, c := range choices {
			if c.IsCorrect {
				correctCount++
			}
		}
		if correctCount != 1 {
			return errors.New("exactly one of True/False must be correct")
		}

	case models.TypePuzzle:
		if len(choices) < 2 || len(choices) > 8 {
			return errors.New("puzzle must have 2 to 8 items")
		}
		positions := make(map[int]bool)
		for _, c := range choices {
			if !c.IsCorrect {
				return errors.New("every puzzle item must be marked correct")
			}
			if c.Order == nil {
				return errors.New("each puzzle item must have an order")
			}
			p := *c.Order
			if p < 0 || p >= len(choices) {
				return errors.New("puzzle order must be between 0 and the number of items minus one")
			}
			if positions[p] {
				return errors.New("puzzle order values must be unique")
			}
			positions[p] = true
		}

	case models.TypeSlider:
		if len(choices) != 1 {
			return errors.New("slider must have exactly one choice")
		}
		c := choices[0]
		if c.Min == nil || c.Max == nil || c.CorrectValue == nil {
			return errors.New("slider choice must have min, max and correct value")
		}
		if *c.Min > *c.Max || *c.CorrectValue < *c.Min || *c.CorrectValue > *c.Max {
			return errors.New("slider correct value must lie within [min, max]")
		}

	case models.TypeFreeResponse:
		if len(choices) == 0 {
			return errors.New("free response must have at least one accepted answer")
		}
		for _, c := range choices {
			if !c.IsCorrect {
				return errors.New("every free response answer must be marked correct")
			}
			if c.Text == "" {
				return errors.New("accepted answers must not be empty")
			}
		}

	default:
		return fmt.Errorf("unknown quiz type %q", quizType)
	}
	return nil
}
