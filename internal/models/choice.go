package models

// Choice is one selectable or acceptable answer unit attached to a question.
// Min, Max and CorrectValue are set for slider questions only; Order is set
// for puzzle questions only and defines the target sequence position.
type Choice struct {
	ID           string   `gorm:"primaryKey;size:36" json:"id"`
	QuestionID   string   `gorm:"size:36;not null;index" json:"question_id"`
	Text         string   `gorm:"size:500" json:"text"`
	IsCorrect    bool     `gorm:"not null;default:false" json:"is_correct"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	CorrectValue *float64 `json:"correct_value,omitempty"`
	Order        *int     `gorm:"column:order_num" json:"order,omitempty"`
}
