package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer is one response to one question. The unique index on
// (user_id, question_id) spans the user's entire history, not just one
// session: a question answered once is never served to that user again.
// Subject, section and type are denormalized from the referenced Question at
// write time so evaluation can aggregate without joins; they are never
// caller-supplied.
type Answer struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_answer_user_question"`
	QuestionID     uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_answer_user_question"`
	SessionID      uint           `json:"session_id" gorm:"not null;index"`
	Subject        string         `json:"subject" gorm:"not null"`
	Section        string         `json:"section" gorm:"not null"`
	QuestionType   string         `json:"question_type" gorm:"not null"`
	SelectedOption *string        `json:"selected_option,omitempty"`
	AnswerText     *string        `json:"answer_text,omitempty" gorm:"type:text"`
	IsCorrect      *bool          `json:"is_correct,omitempty"`
	MarksAwarded   float64        `json:"marks_awarded" gorm:"default:0"`
	MaxMarks       float64        `json:"max_marks" gorm:"default:1"`
	TimeSpentSec   int            `json:"time_spent_sec" gorm:"default:0"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Attempted reports whether the answer carries a gradable selection. Blank
// submissions are treated as unattempted, not wrong.
func (a *Answer) Attempted() bool {
	return a.SelectedOption != nil && *a.SelectedOption != ""
}
