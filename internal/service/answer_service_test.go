package service

import (
	"testing"
	"time"

	"github.com/mnhthng/ascent/internal/dto"
	"github.com/mnhthng/ascent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answerFixture struct {
	sessions  *fakeSessionRepo
	questions *fakeQuestionRepo
	answers   *fakeAnswerRepo
	svc       AnswerService

	session   *model.TestSession
	objective model.Question
	essay     model.Question
}

func newAnswerFixture(t *testing.T) *answerFixture {
	t.Helper()
	f := &answerFixture{
		sessions: newFakeSessionRepo(),
		answers:  newFakeAnswerRepo(),
	}
	f.questions = newFakeQuestionRepo(f.answers)
	f.svc = NewAnswerService(f.sessions, f.questions, f.answers)

	obj := model.Question{
		EducationLevel: "high_school",
		Section:        model.SectionQuantitative,
		Subject:        model.SectionQuantitative,
		Difficulty:     model.DifficultyEasy,
		Type:           model.QuestionTypeObjective,
		Text:           "2 + 2 = ?",
		ContentHash:    model.ContentHash("2 + 2 = ?"),
		CorrectOption:  "4",
		MaxMarks:       1,
		IsActive:       true,
	}
	require.NoError(t, obj.SetOptions([]string{"3", "4", "5", "6"}))
	f.objective = f.questions.add(obj)

	f.essay = f.questions.add(model.Question{
		EducationLevel: "high_school",
		Section:        model.SectionDomain,
		Subject:        "computer_science",
		Difficulty:     model.DifficultyEasy,
		Type:           model.QuestionTypeSubjective,
		Text:           "Describe a project you built.",
		ContentHash:    model.ContentHash("Describe a project you built."),
		MaxMarks:       5,
		IsActive:       true,
	})

	now := time.Now()
	session := &model.TestSession{
		UserID:          1,
		EducationLevel:  "high_school",
		Level:           1,
		Difficulty:      model.DifficultyEasy,
		TotalQuestions:  2,
		DurationMinutes: 2,
		StartedAt:       now,
		EndsAt:          now.Add(30 * time.Minute),
		Status:          model.SessionInProgress,
	}
	require.NoError(t, session.SetQuestionIDs([]uint{f.objective.ID, f.essay.ID}))
	require.NoError(t, f.sessions.Create(session))
	f.session = session
	return f
}

func strptr(s string) *string { return &s }

func TestRecordAnswerDenormalizesQuestionContext(t *testing.T) {
	f := newAnswerFixture(t)

	resp, err := f.svc.RecordAnswer(1, f.session.ID, dto.RecordAnswerRequest{
		QuestionID:     f.objective.ID,
		SelectedOption: strptr("4"),
		TimeSpentSec:   17,
	})
	require.NoError(t, err)

	assert.Equal(t, f.session.ID, resp.SessionID)
	assert.Equal(t, model.SectionQuantitative, resp.Subject)
	assert.Equal(t, model.SectionQuantitative, resp.Section)
	assert.Equal(t, model.QuestionTypeObjective, resp.QuestionType)
	assert.Equal(t, 17, resp.TimeSpentSec)

	stored := f.answers.answers[answerKey{UserID: 1, QuestionID: f.objective.ID}]
	require.NotNil(t, stored)
	assert.Nil(t, stored.IsCorrect, "grading happens at evaluation, not on write")
	assert.Equal(t, float64(1), stored.MaxMarks)
}

func TestRecordAnswerSanitizesPayloadByQuestionType(t *testing.T) {
	f := newAnswerFixture(t)

	// Both fields supplied; the question's type decides which survives.
	_, err := f.svc.RecordAnswer(1, f.session.ID, dto.RecordAnswerRequest{
		QuestionID:     f.objective.ID,
		SelectedOption: strptr("4"),
		AnswerText:     strptr("should be dropped"),
	})
	require.NoError(t, err)
	obj := f.answers.answers[answerKey{UserID: 1, QuestionID: f.objective.ID}]
	assert.Equal(t, "4", *obj.SelectedOption)
	assert.Nil(t, obj.AnswerText)

	_, err = f.svc.RecordAnswer(1, f.session.ID, dto.RecordAnswerRequest{
		QuestionID:     f.essay.ID,
		SelectedOption: strptr("should be dropped"),
		AnswerText:     strptr("I built a compiler."),
	})
	require.NoError(t, err)
	essay := f.answers.answers[answerKey{UserID: 1, QuestionID: f.essay.ID}]
	assert.Nil(t, essay.SelectedOption)
	assert.Equal(t, "I built a compiler.", *essay.AnswerText)
}

func TestRecordAnswerOverwriteResetsGrading(t *testing.T) {
	f := newAnswerFixture(t)

	_, err := f.svc.RecordAnswer(1, f.session.ID, dto.RecordAnswerRequest{
		QuestionID:     f.objective.ID,
		SelectedOption: strptr("3"),
	})
	require.NoError(t, err)

	// Simulate an earlier grading pass.
	key := answerKey{UserID: 1, QuestionID: f.objective.ID}
	graded := true
	f.answers.answers[key].IsCorrect = &graded
	f.answers.answers[key].MarksAwarded = 1
	firstID := f.answers.answers[key].ID

	_, err = f.svc.RecordAnswer(1, f.session.ID, dto.RecordAnswerRequest{
		QuestionID:     f.objective.ID,
		SelectedOption: strptr("4"),
	})
	require.NoError(t, err)

	stored := f.answers.answers[key]
	assert.Equal(t, firstID, stored.ID, "overwrite, not a second row")
	assert.Equal(t, "4", *stored.SelectedOption)
	assert.Nil(t, stored.IsCorrect)
	assert.Zero(t, stored.MarksAwarded)
}

func TestRecordAnswerRejectsForeignQuestion(t *testing.T) {
	f := newAnswerFixture(t)
	outsider := f.questions.add(model.Question{
		EducationLevel: "high_school",
		Section:        model.SectionVerbal,
		Subject:        model.SectionVerbal,
		Type:           model.QuestionTypeObjective,
		Text:           "Not part of the session",
		ContentHash:    model.ContentHash("Not part of the session"),
		CorrectOption:  "A",
		IsActive:       true,
	})

	_, err := f.svc.RecordAnswer(1, f.session.ID, dto.RecordAnswerRequest{
		QuestionID:     outsider.ID,
		SelectedOption: strptr("A"),
	})
	assert.ErrorIs(t, err, ErrQuestionNotInSession)
}

func TestRecordAnswerRejectsWrongOwnerAndUnknownSession(t *testing.T) {
	f := newAnswerFixture(t)

	_, err := f.svc.RecordAnswer(2, f.session.ID, dto.RecordAnswerRequest{
		QuestionID:     f.objective.ID,
		SelectedOption: strptr("4"),
	})
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = f.svc.RecordAnswer(1, 404, dto.RecordAnswerRequest{
		QuestionID:     f.objective.ID,
		SelectedOption: strptr("4"),
	})
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRecordAnswerRejectsClosedSession(t *testing.T) {
	f := newAnswerFixture(t)
	f.session.Status = model.SessionSubmitted

	_, err := f.svc.RecordAnswer(1, f.session.ID, dto.RecordAnswerRequest{
		QuestionID:     f.objective.ID,
		SelectedOption: strptr("4"),
	})
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRecordAnswerExpiresTimedOutSession(t *testing.T) {
	f := newAnswerFixture(t)
	f.session.EndsAt = time.Now().Add(-time.Second)

	_, err := f.svc.RecordAnswer(1, f.session.ID, dto.RecordAnswerRequest{
		QuestionID:     f.objective.ID,
		SelectedOption: strptr("4"),
	})

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, model.SessionExpired, f.session.Status, "lazy expiry flips the status on touch")
}
