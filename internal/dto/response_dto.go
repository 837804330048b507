package dto

import "time"

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// QuestionDTO is a question as shown to a test taker. The correct option
// and content hash never leave the server through this shape.
type QuestionDTO struct {
	ID         uint     `json:"id"`
	Section    string   `json:"section"`
	Subject    string   `json:"subject"`
	Difficulty string   `json:"difficulty"`
	Type       string   `json:"type"`
	Text       string   `json:"text"`
	Options    []string `json:"options,omitempty"`
	MaxMarks   float64  `json:"max_marks"`
}

// SubjectBlueprintDTO mirrors one subject block of a session.
type SubjectBlueprintDTO struct {
	Subject       string `json:"subject"`
	Section       string `json:"section"`
	QuestionCount int    `json:"question_count"`
}

// SessionDetailDTO is the full session view handed to the taker.
type SessionDetailDTO struct {
	ID              uint                  `json:"id"`
	UserID          uint                  `json:"user_id"`
	Level           int                   `json:"level"`
	Difficulty      string                `json:"difficulty"`
	Status          string                `json:"status"`
	Blueprint       []SubjectBlueprintDTO `json:"blueprint"`
	Questions       []QuestionDTO         `json:"questions"`
	TotalQuestions  int                   `json:"total_questions"`
	DurationMinutes int                   `json:"duration_minutes"`
	StartedAt       time.Time             `json:"started_at"`
	EndsAt          time.Time             `json:"ends_at"`
	Resumed         bool                  `json:"resumed"`
}

// SessionSummaryDTO is the list/history view of a session.
type SessionSummaryDTO struct {
	ID              uint       `json:"id"`
	Level           int        `json:"level"`
	Difficulty      string     `json:"difficulty"`
	Status          string     `json:"status"`
	TotalQuestions  int        `json:"total_questions"`
	DurationMinutes int        `json:"duration_minutes"`
	StartedAt       time.Time  `json:"started_at"`
	EndsAt          time.Time  `json:"ends_at"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// AnswerDTO reflects a saved answer back to the caller.
type AnswerDTO struct {
	ID             uint    `json:"id"`
	SessionID      uint    `json:"session_id"`
	QuestionID     uint    `json:"question_id"`
	Subject        string  `json:"subject"`
	Section        string  `json:"section"`
	QuestionType   string  `json:"question_type"`
	SelectedOption *string `json:"selected_option,omitempty"`
	AnswerText     *string `json:"answer_text,omitempty"`
	TimeSpentSec   int     `json:"time_spent_sec"`
}

// SectionResultDTO is one row of the section-wise breakdown.
type SectionResultDTO struct {
	Section    string `json:"section"`
	Subject    string `json:"subject"`
	Total      int    `json:"total"`
	Attempted  int    `json:"attempted"`
	Correct    int    `json:"correct"`
	Wrong      int    `json:"wrong"`
	Percentage int    `json:"percentage"`
}

// TestResultDTO is the stored evaluation summary.
type TestResultDTO struct {
	ID              uint               `json:"id"`
	SessionID       uint               `json:"session_id"`
	Level           int                `json:"level"`
	TotalQuestions  int                `json:"total_questions"`
	Attempted       int                `json:"attempted"`
	Correct         int                `json:"correct"`
	Wrong           int                `json:"wrong"`
	ScorePercentage int                `json:"score_percentage"`
	SectionResults  []SectionResultDTO `json:"section_results"`
	Status          string             `json:"status"`
	EvaluatedAt     time.Time          `json:"evaluated_at"`
}

// MaterializedResultDTO is the reporting projection: the stored result plus
// derived fields, or a pending_evaluation marker when the session is
// submitted but not yet evaluated.
type MaterializedResultDTO struct {
	SessionID   uint           `json:"session_id"`
	Status      string         `json:"status"`
	Result      *TestResultDTO `json:"result,omitempty"`
	Unattempted int            `json:"unattempted"`
	// Accuracy is correct/attempted (not correct/total), as a rounded
	// percentage; 0 when nothing was attempted.
	Accuracy int `json:"accuracy"`
}

// SubjectiveAnswerDTO is one ungraded free-text answer staged for the
// external counselling/evaluation path.
type SubjectiveAnswerDTO struct {
	QuestionID   uint   `json:"question_id"`
	QuestionText string `json:"question_text"`
	Subject      string `json:"subject"`
	Section      string `json:"section"`
	AnswerText   string `json:"answer_text"`
}

// CounsellingBundleDTO packages everything the counselling collaborator
// consumes.
type CounsellingBundleDTO struct {
	SessionID         uint                  `json:"session_id"`
	Result            TestResultDTO         `json:"result"`
	SubjectiveAnswers []SubjectiveAnswerDTO `json:"subjective_answers"`
}

// ProfileDTO is the stored profile view.
type ProfileDTO struct {
	UserID         uint     `json:"user_id"`
	EducationLevel string   `json:"education_level"`
	EducationStage string   `json:"education_stage,omitempty"`
	Stream         string   `json:"stream,omitempty"`
	Interests      []string `json:"interests"`
}

// SeedReportDTO reports a bulk seed: duplicates are skipped, not errors.
type SeedReportDTO struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}
