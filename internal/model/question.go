package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types.
const (
	QuestionTypeObjective  = "objective"
	QuestionTypeSubjective = "subjective"
)

// Difficulty tiers, derived from the user's level by the level calculator.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Core sections present in every session, regardless of declared interests.
const (
	SectionVerbal       = "verbal"
	SectionLogical      = "logical"
	SectionQuantitative = "quantitative"
	SectionDomain       = "domain"
)

// Question is an immutable content item. The tuple (content_hash,
// education_level, section, subject) is unique so that independently
// generated duplicates collapse into one row. Rows are never mutated after
// creation except for IsActive deactivation, and never hard-deleted while a
// session references them.
type Question struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	EducationLevel string         `json:"education_level" gorm:"not null;uniqueIndex:idx_question_content_ctx"`
	EducationStage string         `json:"education_stage,omitempty"`
	Stream         string         `json:"stream,omitempty"`
	Section        string         `json:"section" gorm:"not null;uniqueIndex:idx_question_content_ctx;index"`
	Subject        string         `json:"subject" gorm:"not null;uniqueIndex:idx_question_content_ctx;index"`
	Difficulty     string         `json:"difficulty" gorm:"not null;index"`
	Type           string         `json:"type" gorm:"not null;default:'objective'"`
	Text           string         `json:"text" gorm:"type:text;not null"`
	ContentHash    string         `json:"-" gorm:"size:64;not null;uniqueIndex:idx_question_content_ctx"`
	Options        datatypes.JSON `json:"options,omitempty"`
	CorrectOption  string         `json:"-"`
	MaxMarks       float64        `json:"max_marks" gorm:"default:1"`
	IsAIGenerated  bool           `json:"is_ai_generated" gorm:"default:false"`
	IsActive       bool           `json:"is_active" gorm:"default:true;index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// OptionList decodes the stored option set.
func (q *Question) OptionList() ([]string, error) {
	if len(q.Options) == 0 {
		return nil, nil
	}
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// SetOptions encodes the option set for storage.
func (q *Question) SetOptions(opts []string) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	q.Options = datatypes.JSON(raw)
	return nil
}

// Scoreable reports whether the question can enter the objective score:
// objective type with a known correct option. Questions missing a correct
// option are excluded from both numerator and denominator.
func (q *Question) Scoreable() bool {
	return q.Type == QuestionTypeObjective && q.CorrectOption != ""
}
