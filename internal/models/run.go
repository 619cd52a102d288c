package models

import "time"

// RunResult is the persisted outcome of one preview run session.
// Answers holds the question-id to submitted-answer map as JSON.
type RunResult struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	QuizID      string    `gorm:"size:36;not null;index" json:"quiz_id"`
	UserID      string    `gorm:"size:36;not null;index" json:"user_id"`
	Score       float64   `gorm:"not null;default:0" json:"score"`
	TotalPoints int       `gorm:"not null;default:0" json:"total_points"`
	Answers     string    `gorm:"type:text" json:"answers"`
	CreatedAt   time.Time `json:"created_at"`
}
