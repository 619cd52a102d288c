package models

type Question struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	QuizID      string          `gorm:"size:36;not null;index" json:"quiz_id"`
	Type        QuizType        `gorm:"size:20;not null;default:'quiz'" json:"type"`
	Text        string          `gorm:"type:text;not null" json:"text"`
	OrderNum    int             `gorm:"not null;default:0" json:"order_num"`
	Explanation string          `gorm:"type:text" json:"explanation,omitempty"`
	Images      []QuestionImage `gorm:"foreignKey:QuestionID" json:"images,omitempty"`
	Choices     []Choice        `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

type QuestionImage struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	QuestionID string `gorm:"size:36;not null;index" json:"question_id"`
	URL        string `gorm:"size:500;not null" json:"url"`
	OrderNum   int    `gorm:"not null;default:0" json:"order_num"`
}
