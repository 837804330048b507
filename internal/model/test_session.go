package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestSession statuses. Transitions are one-directional:
// not_started → in_progress → submitted → evaluated → counselling_generated,
// with expired reachable from in_progress on timeout.
const (
	SessionNotStarted           = "not_started"
	SessionInProgress           = "in_progress"
	SessionSubmitted            = "submitted"
	SessionEvaluated            = "evaluated"
	SessionCounsellingGenerated = "counselling_generated"
	SessionExpired              = "expired"
)

// SubjectBlueprint is one subject block of a session: which subject to pull
// from, under which section, and how many questions were requested.
type SubjectBlueprint struct {
	Subject       string `json:"subject"`
	Section       string `json:"section"`
	QuestionCount int    `json:"question_count"`
}

// TestSession is one assessment attempt. The education context is frozen at
// creation time so later profile edits cannot change a running test. At most
// one session per user may be in_progress, enforced by a partial unique
// index on (user_id) WHERE status = 'in_progress'.
type TestSession struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `json:"user_id" gorm:"not null;index"`
	EducationLevel  string         `json:"education_level" gorm:"not null"`
	EducationStage  string         `json:"education_stage,omitempty"`
	Stream          string         `json:"stream,omitempty"`
	Level           int            `json:"level" gorm:"not null;default:1"`
	Difficulty      string         `json:"difficulty" gorm:"not null"`
	Blueprint       datatypes.JSON `json:"blueprint"`
	QuestionIDs     datatypes.JSON `json:"question_ids"`
	TotalQuestions  int            `json:"total_questions" gorm:"not null"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null"`
	StartedAt       time.Time      `json:"started_at"`
	EndsAt          time.Time      `json:"ends_at"`
	SubmittedAt     *time.Time     `json:"submitted_at,omitempty"`
	Status          string         `json:"status" gorm:"not null;index;default:'in_progress'"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// BlueprintEntries decodes the stored subject blueprint.
func (s *TestSession) BlueprintEntries() ([]SubjectBlueprint, error) {
	if len(s.Blueprint) == 0 {
		return nil, nil
	}
	var entries []SubjectBlueprint
	if err := json.Unmarshal(s.Blueprint, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetBlueprint encodes the subject blueprint for storage.
func (s *TestSession) SetBlueprint(entries []SubjectBlueprint) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	s.Blueprint = datatypes.JSON(raw)
	return nil
}

// QuestionIDList decodes the ordered question reference list.
func (s *TestSession) QuestionIDList() ([]uint, error) {
	if len(s.QuestionIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	if err := json.Unmarshal(s.QuestionIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetQuestionIDs encodes the ordered question reference list for storage.
func (s *TestSession) SetQuestionIDs(ids []uint) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	s.QuestionIDs = datatypes.JSON(raw)
	return nil
}

// Terminal reports whether the session can no longer change state on its own.
func (s *TestSession) Terminal() bool {
	return s.Status == SessionCounsellingGenerated || s.Status == SessionExpired
}

// TimedOut reports whether the session has run past its deadline.
func (s *TestSession) TimedOut(now time.Time) bool {
	return now.After(s.EndsAt)
}
