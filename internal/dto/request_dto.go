package dto

// RecordAnswerRequest saves or overwrites one answer in an open session.
// Exactly one of SelectedOption/AnswerText survives sanitization, decided by
// the question's type, so supplying both is not an error.
type RecordAnswerRequest struct {
	QuestionID     uint    `json:"question_id" binding:"required"`
	SelectedOption *string `json:"selected_option,omitempty"`
	AnswerText     *string `json:"answer_text,omitempty"`
	TimeSpentSec   int     `json:"time_spent_sec,omitempty"`
}

// UpsertProfileRequest declares the education context the session builder
// needs before a test can start.
type UpsertProfileRequest struct {
	EducationLevel string   `json:"education_level" binding:"required"`
	EducationStage string   `json:"education_stage,omitempty"`
	Stream         string   `json:"stream,omitempty"`
	Interests      []string `json:"interests" binding:"required,min=1"`
}

// SeedQuestionRequest is one admin-authored question.
type SeedQuestionRequest struct {
	EducationLevel string   `json:"education_level" binding:"required"`
	EducationStage string   `json:"education_stage,omitempty"`
	Stream         string   `json:"stream,omitempty"`
	Section        string   `json:"section" binding:"required"`
	Subject        string   `json:"subject" binding:"required"`
	Difficulty     string   `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Type           string   `json:"type" binding:"required,oneof=objective subjective"`
	Text           string   `json:"text" binding:"required"`
	Options        []string `json:"options,omitempty"`
	CorrectOption  string   `json:"correct_option,omitempty"`
	MaxMarks       float64  `json:"max_marks,omitempty"`
}

// SeedQuestionsRequest bulk-seeds the question pool.
type SeedQuestionsRequest struct {
	Questions []SeedQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}
