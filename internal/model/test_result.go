package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestResult statuses.
const (
	ResultEvaluated = "evaluated"
)

// SectionResult is the per-section score breakdown embedded in a TestResult.
type SectionResult struct {
	Section    string `json:"section"`
	Subject    string `json:"subject"`
	Total      int    `json:"total"`
	Attempted  int    `json:"attempted"`
	Correct    int    `json:"correct"`
	Wrong      int    `json:"wrong"`
	Percentage int    `json:"percentage"`
}

// TestResult is the durable one-per-session evaluation summary. Level is
// denormalized from the session so the level calculator can query history
// without joining sessions. Created exactly once; re-evaluation returns the
// stored row unchanged.
type TestResult struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	SessionID       uint           `json:"session_id" gorm:"not null;uniqueIndex"`
	UserID          uint           `json:"user_id" gorm:"not null;index"`
	Level           int            `json:"level" gorm:"not null;index"`
	TotalQuestions  int            `json:"total_questions"`
	Attempted       int            `json:"attempted"`
	Correct         int            `json:"correct"`
	Wrong           int            `json:"wrong"`
	ScorePercentage int            `json:"score_percentage"`
	SectionResults  datatypes.JSON `json:"section_results"`
	Status          string         `json:"status" gorm:"not null;default:'evaluated'"`
	EvaluatedAt     time.Time      `json:"evaluated_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// SectionBreakdown decodes the stored per-section results.
func (r *TestResult) SectionBreakdown() ([]SectionResult, error) {
	if len(r.SectionResults) == 0 {
		return nil, nil
	}
	var sections []SectionResult
	if err := json.Unmarshal(r.SectionResults, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// SetSectionBreakdown encodes the per-section results for storage.
func (r *TestResult) SetSectionBreakdown(sections []SectionResult) error {
	raw, err := json.Marshal(sections)
	if err != nil {
		return err
	}
	r.SectionResults = datatypes.JSON(raw)
	return nil
}
