package models

import "time"

type Quiz struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"size:36;not null;index" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"size:1000" json:"description,omitempty"`
	Language    Language   `gorm:"size:5;not null;default:'en'" json:"language"`
	Type        QuizType   `gorm:"size:20;not null;default:'quiz'" json:"type"`
	Status      QuizStatus `gorm:"size:20;not null;default:'draft'" json:"status"`
	TimeLimit   int        `gorm:"not null;default:0" json:"time_limit,omitempty"`
	Points      int        `gorm:"not null;default:0" json:"points,omitempty"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TimeLimit and Points bounds enforced by the editor surface. Zero means
// unset, the run falls back to defaults.
const (
	MinTimeLimit = 5
	MaxTimeLimit = 120
	MaxPoints    = 1000
)
