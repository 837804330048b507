package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mnhthng/ascent/config"
	"github.com/mnhthng/ascent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	sessions  *fakeSessionRepo
	questions *fakeQuestionRepo
	answers   *fakeAnswerRepo
	profiles  *fakeProfileRepo
	results   *fakeResultRepo
	generator *fakeGenerator
	cfg       *config.Config
	svc       SessionService
}

func newSessionFixture(t *testing.T, perSubject int) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		sessions:  newFakeSessionRepo(),
		answers:   newFakeAnswerRepo(),
		profiles:  newFakeProfileRepo(),
		results:   newFakeResultRepo(),
		generator: &fakeGenerator{},
		cfg: &config.Config{
			Session: config.Session{
				QuestionsPerSubject: perSubject,
				MaxSubjects:         6,
				MinutesPerQuestion:  1,
			},
		},
	}
	f.questions = newFakeQuestionRepo(f.answers)
	levelSvc := NewLevelService(f.sessions, f.results)
	f.svc = NewSessionService(f.sessions, f.questions, f.profiles, levelSvc, f.generator, f.cfg)
	return f
}

func (f *sessionFixture) seedProfile(t *testing.T, userID uint, interests ...string) {
	t.Helper()
	profile := model.UserProfile{UserID: userID, EducationLevel: "high_school"}
	require.NoError(t, profile.SetInterests(interests))
	require.NoError(t, f.profiles.Upsert(&profile))
}

func (f *sessionFixture) seedPool(t *testing.T, section, subject, difficulty string, count int) []model.Question {
	t.Helper()
	out := make([]model.Question, 0, count)
	for i := 0; i < count; i++ {
		text := fmt.Sprintf("%s %s question %d", section, subject, i)
		q := model.Question{
			EducationLevel: "high_school",
			Section:        section,
			Subject:        subject,
			Difficulty:     difficulty,
			Type:           model.QuestionTypeObjective,
			Text:           text,
			ContentHash:    model.ContentHash(text),
			CorrectOption:  "A",
			MaxMarks:       1,
			IsActive:       true,
		}
		require.NoError(t, q.SetOptions([]string{"A", "B", "C", "D"}))
		out = append(out, f.questions.add(q))
	}
	return out
}

func (f *sessionFixture) seedCorePool(t *testing.T, count int) {
	t.Helper()
	for _, section := range []string{model.SectionVerbal, model.SectionLogical, model.SectionQuantitative} {
		f.seedPool(t, section, section, model.DifficultyEasy, count)
	}
}

func generatedQuestion(section, subject, difficulty, text string) model.Question {
	q := model.Question{
		EducationLevel: "high_school",
		Section:        section,
		Subject:        subject,
		Difficulty:     difficulty,
		Type:           model.QuestionTypeObjective,
		Text:           text,
		ContentHash:    model.ContentHash(text),
		CorrectOption:  "A",
		MaxMarks:       1,
		IsAIGenerated:  true,
		IsActive:       true,
	}
	_ = q.SetOptions([]string{"A", "B"})
	return q
}

func TestStartSessionRequiresCompleteProfile(t *testing.T) {
	f := newSessionFixture(t, 2)

	_, err := f.svc.StartSession(context.Background(), 1)
	assert.ErrorIs(t, err, ErrIncompleteProfile, "missing profile")

	profile := model.UserProfile{UserID: 1, EducationLevel: "high_school"}
	require.NoError(t, f.profiles.Upsert(&profile))
	_, err = f.svc.StartSession(context.Background(), 1)
	assert.ErrorIs(t, err, ErrIncompleteProfile, "no interests declared")
}

func TestStartSessionBuildsCoreAndInterestSections(t *testing.T) {
	f := newSessionFixture(t, 2)
	f.seedProfile(t, 1, "computer_science")
	f.seedCorePool(t, 2)
	f.seedPool(t, model.SectionDomain, "computer_science", model.DifficultyEasy, 2)

	detail, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, model.SessionInProgress, detail.Status)
	assert.False(t, detail.Resumed)
	assert.Equal(t, 1, detail.Level)
	assert.Equal(t, model.DifficultyEasy, detail.Difficulty)
	require.Len(t, detail.Blueprint, 4)
	assert.Equal(t, model.SectionVerbal, detail.Blueprint[0].Section)
	assert.Equal(t, "computer_science", detail.Blueprint[3].Subject)
	assert.Equal(t, model.SectionDomain, detail.Blueprint[3].Section)
	assert.Len(t, detail.Questions, 8)
	assert.Equal(t, 8, detail.TotalQuestions)
	// One minute per question.
	assert.Equal(t, 8, detail.DurationMinutes)
	assert.Equal(t, detail.StartedAt.Add(8*time.Minute), detail.EndsAt)
}

func TestStartSessionIsIdempotentWhileOpen(t *testing.T) {
	f := newSessionFixture(t, 2)
	f.seedProfile(t, 1, "computer_science")
	f.seedCorePool(t, 2)
	f.seedPool(t, model.SectionDomain, "computer_science", model.DifficultyEasy, 2)

	first, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)
	second, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Resumed)
	require.Len(t, second.Questions, len(first.Questions))
	for i := range first.Questions {
		assert.Equal(t, first.Questions[i].ID, second.Questions[i].ID, "resume must not rebuild the question list")
	}
}

func TestStartSessionSkipsEveryAnsweredQuestion(t *testing.T) {
	f := newSessionFixture(t, 2)
	f.seedProfile(t, 1, "computer_science")
	f.seedCorePool(t, 3)
	pool := f.seedPool(t, model.SectionDomain, "computer_science", model.DifficultyEasy, 3)

	// Answered long ago, in a different session.
	sel := "A"
	require.NoError(t, f.answers.Upsert(&model.Answer{
		UserID:         1,
		QuestionID:     pool[0].ID,
		SessionID:      999,
		Subject:        "computer_science",
		Section:        model.SectionDomain,
		QuestionType:   model.QuestionTypeObjective,
		SelectedOption: &sel,
	}))

	detail, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	for _, q := range detail.Questions {
		assert.NotEqual(t, pool[0].ID, q.ID, "previously answered question must never be served again")
	}
}

func TestStartSessionBackfillsShortfallFromGenerator(t *testing.T) {
	f := newSessionFixture(t, 10)
	f.seedProfile(t, 1, "computer_science")
	f.seedCorePool(t, 10)
	f.seedPool(t, model.SectionDomain, "computer_science", model.DifficultyEasy, 7)

	f.generator.generate = func(params GenerationParams) ([]model.Question, error) {
		out := make([]model.Question, 0, params.Count)
		for i := 0; i < params.Count; i++ {
			out = append(out, generatedQuestion(params.Section, params.Subject,
				params.Difficulty, fmt.Sprintf("generated %s item %d", params.Subject, i)))
		}
		return out, nil
	}

	detail, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, f.generator.calls, 1)
	assert.Equal(t, 3, f.generator.calls[0].Count)
	assert.Equal(t, "computer_science", f.generator.calls[0].Subject)
	assert.Len(t, detail.Questions, 40)

	// Backfilled questions joined the persistent pool.
	generated := 0
	for _, q := range f.questions.questions {
		if q.IsAIGenerated {
			generated++
		}
	}
	assert.Equal(t, 3, generated)
}

func TestStartSessionAcceptsShortSubjectWhenGeneratorFails(t *testing.T) {
	f := newSessionFixture(t, 10)
	f.seedProfile(t, 1, "computer_science")
	f.seedCorePool(t, 10)
	f.seedPool(t, model.SectionDomain, "computer_science", model.DifficultyEasy, 4)
	f.generator.generate = func(GenerationParams) ([]model.Question, error) {
		return nil, ErrUpstreamGeneration
	}

	detail, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	// 3 core subjects full, interest subject short but non-empty.
	assert.Len(t, detail.Questions, 34)
	assert.Equal(t, 34, detail.DurationMinutes)
}

func TestStartSessionFailsWhenSubjectStaysEmpty(t *testing.T) {
	f := newSessionFixture(t, 2)
	f.seedProfile(t, 1, "computer_science")
	f.seedCorePool(t, 2)
	// Nothing seeded for the interest subject, generator yields nothing.
	f.generator.generate = func(GenerationParams) ([]model.Question, error) {
		return nil, ErrUpstreamGeneration
	}

	_, err := f.svc.StartSession(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPoolExhausted)
}

func TestStartSessionCapsSubjectCount(t *testing.T) {
	f := newSessionFixture(t, 1)
	f.seedProfile(t, 1, "music", "art", "history", "biology", "chemistry")
	f.seedCorePool(t, 1)
	f.seedPool(t, model.SectionDomain, "music", model.DifficultyEasy, 1)
	f.seedPool(t, model.SectionDomain, "art", model.DifficultyEasy, 1)
	f.seedPool(t, model.SectionDomain, "history", model.DifficultyEasy, 1)

	detail, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	// 3 core sections plus the first 3 interests fit under the cap of 6.
	require.Len(t, detail.Blueprint, 6)
	assert.Equal(t, "music", detail.Blueprint[3].Subject)
	assert.Equal(t, "history", detail.Blueprint[5].Subject)
}

func TestStartSessionResolvesConcurrentCreateToWinner(t *testing.T) {
	f := newSessionFixture(t, 2)
	f.seedProfile(t, 1, "computer_science")
	f.seedCorePool(t, 2)
	f.seedPool(t, model.SectionDomain, "computer_science", model.DifficultyEasy, 2)

	winner, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	// Second starter misses the open-session lookup and collides on the
	// partial unique index at create time.
	f.sessions.findInProgressMisses = 1
	resolved, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, winner.ID, resolved.ID)
	assert.True(t, resolved.Resumed)
}

func TestStartSessionReplacesTimedOutLeftover(t *testing.T) {
	f := newSessionFixture(t, 2)
	f.seedProfile(t, 1, "computer_science")
	f.seedCorePool(t, 4)
	f.seedPool(t, model.SectionDomain, "computer_science", model.DifficultyEasy, 4)

	stale, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)
	f.sessions.sessions[stale.ID].EndsAt = time.Now().Add(-time.Minute)

	fresh, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	assert.NotEqual(t, stale.ID, fresh.ID)
	assert.Equal(t, model.SessionExpired, f.sessions.sessions[stale.ID].Status)
	assert.False(t, fresh.Resumed)
}

func TestStartSessionFreezesEducationContext(t *testing.T) {
	f := newSessionFixture(t, 2)
	f.seedProfile(t, 1, "computer_science")
	f.seedCorePool(t, 2)
	f.seedPool(t, model.SectionDomain, "computer_science", model.DifficultyEasy, 2)

	detail, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	stored := f.sessions.sessions[detail.ID]
	assert.Equal(t, "high_school", stored.EducationLevel)
}

func TestGetSessionEnforcesOwnership(t *testing.T) {
	f := newSessionFixture(t, 2)
	f.seedProfile(t, 1, "computer_science")
	f.seedCorePool(t, 2)
	f.seedPool(t, model.SectionDomain, "computer_science", model.DifficultyEasy, 2)

	detail, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.GetSession(2, detail.ID)
	assert.ErrorIs(t, err, ErrInvalidSession, "foreign session must look like it does not exist")

	_, err = f.svc.GetSession(1, 9999)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestGetUserSessionsListsHistory(t *testing.T) {
	f := newSessionFixture(t, 2)
	f.seedProfile(t, 1, "computer_science")
	f.seedCorePool(t, 2)
	f.seedPool(t, model.SectionDomain, "computer_science", model.DifficultyEasy, 2)

	detail, err := f.svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	summaries, err := f.svc.GetUserSessions(1)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, detail.ID, summaries[0].ID)
	assert.Equal(t, model.SessionInProgress, summaries[0].Status)

	empty, err := f.svc.GetUserSessions(2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
