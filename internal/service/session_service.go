package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/mnhthng/ascent/config"
	"github.com/mnhthng/ascent/internal/dto"
	"github.com/mnhthng/ascent/internal/model"
	"github.com/mnhthng/ascent/internal/repository"
	"github.com/rs/zerolog/log"
)

// coreSections open every session regardless of declared interests.
var coreSections = []string{
	model.SectionVerbal,
	model.SectionLogical,
	model.SectionQuantitative,
}

// SessionService assembles and serves test sessions.
type SessionService interface {
	// StartSession returns the user's open session unchanged if one
	// exists, otherwise builds a new one. Every question in the result is
	// one the user has never been shown, across all sessions, ever.
	StartSession(ctx context.Context, userID uint) (*dto.SessionDetailDTO, error)
	GetSession(userID, sessionID uint) (*dto.SessionDetailDTO, error)
	GetUserSessions(userID uint) ([]dto.SessionSummaryDTO, error)
}

type sessionService struct {
	sessionRepo  repository.SessionRepository
	questionRepo repository.QuestionRepository
	profileRepo  repository.ProfileRepository
	levelSvc     LevelService
	generator    QuestionGeneratorService
	cfg          *config.Config
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	questionRepo repository.QuestionRepository,
	profileRepo repository.ProfileRepository,
	levelSvc LevelService,
	generator QuestionGeneratorService,
	cfg *config.Config,
) SessionService {
	return &sessionService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		profileRepo:  profileRepo,
		levelSvc:     levelSvc,
		generator:    generator,
		cfg:          cfg,
	}
}

func (s *sessionService) StartSession(ctx context.Context, userID uint) (*dto.SessionDetailDTO, error) {
	// Idempotent resume: an open session is returned unchanged.
	existing, err := s.sessionRepo.FindInProgressByUser(userID)
	switch {
	case err == nil:
		if expired, expErr := s.expireIfTimedOut(existing); expErr != nil {
			return nil, expErr
		} else if !expired {
			log.Info().Uint("userID", userID).Uint("sessionID", existing.ID).Msg("Resuming in-progress session")
			return s.sessionDetail(existing, true)
		}
		// A timed-out leftover was flipped to expired; build a fresh one.
	case !repository.IsNotFound(err):
		return nil, fmt.Errorf("looking up open session for user %d: %w", userID, err)
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrIncompleteProfile
		}
		return nil, fmt.Errorf("loading profile for user %d: %w", userID, err)
	}
	if !profile.Complete() {
		return nil, ErrIncompleteProfile
	}

	level, err := s.levelSvc.NextLevel(userID)
	if err != nil {
		return nil, err
	}
	difficulty := s.levelSvc.DifficultyForLevel(level)

	blueprint, err := s.buildBlueprint(profile)
	if err != nil {
		return nil, err
	}

	var questionIDs []uint
	questions := make([]model.Question, 0, len(blueprint)*s.cfg.Session.QuestionsPerSubject)
	for _, entry := range blueprint {
		subjectQs, err := s.fillSubject(ctx, userID, profile, entry, difficulty)
		if err != nil {
			return nil, err
		}
		for _, q := range subjectQs {
			questionIDs = append(questionIDs, q.ID)
		}
		questions = append(questions, subjectQs...)
	}

	now := time.Now()
	duration := len(questionIDs) * s.cfg.Session.MinutesPerQuestion
	session := model.TestSession{
		UserID:          userID,
		EducationLevel:  profile.EducationLevel,
		EducationStage:  profile.EducationStage,
		Stream:          profile.Stream,
		Level:           level,
		Difficulty:      difficulty,
		TotalQuestions:  len(questionIDs),
		DurationMinutes: duration,
		StartedAt:       now,
		EndsAt:          now.Add(time.Duration(duration) * time.Minute),
		Status:          model.SessionInProgress,
	}
	if err := session.SetBlueprint(blueprint); err != nil {
		return nil, fmt.Errorf("encoding blueprint: %w", err)
	}
	if err := session.SetQuestionIDs(questionIDs); err != nil {
		return nil, fmt.Errorf("encoding question ids: %w", err)
	}

	if err := s.sessionRepo.Create(&session); err != nil {
		if repository.IsDuplicateKey(err) {
			// Lost the one-in-progress race; the winner's session is the
			// session. Question-pool writes from this build are kept,
			// they are valid standalone content.
			log.Warn().Uint("userID", userID).Msg("Concurrent session start detected, resuming winner")
			winner, ferr := s.sessionRepo.FindInProgressByUser(userID)
			if ferr != nil {
				return nil, fmt.Errorf("resolving concurrent session start for user %d: %w", userID, ferr)
			}
			return s.sessionDetail(winner, true)
		}
		return nil, fmt.Errorf("persisting session for user %d: %w", userID, err)
	}

	log.Info().Uint("userID", userID).Uint("sessionID", session.ID).Int("level", level).
		Int("questions", len(questionIDs)).Msg("Session created")
	return s.sessionDetailWithQuestions(&session, questions, false)
}

// buildBlueprint composes the three core sections plus one domain section per
// declared interest, truncated to the configured subject cap.
func (s *sessionService) buildBlueprint(profile *model.UserProfile) ([]model.SubjectBlueprint, error) {
	interests, err := profile.InterestList()
	if err != nil {
		return nil, fmt.Errorf("decoding interests: %w", err)
	}

	perSubject := s.cfg.Session.QuestionsPerSubject
	blueprint := make([]model.SubjectBlueprint, 0, len(coreSections)+len(interests))
	for _, section := range coreSections {
		blueprint = append(blueprint, model.SubjectBlueprint{
			Subject:       section,
			Section:       section,
			QuestionCount: perSubject,
		})
	}
	for _, interest := range interests {
		blueprint = append(blueprint, model.SubjectBlueprint{
			Subject:       interest,
			Section:       model.SectionDomain,
			QuestionCount: perSubject,
		})
	}
	if max := s.cfg.Session.MaxSubjects; len(blueprint) > max {
		blueprint = blueprint[:max]
	}
	return blueprint, nil
}

// fillSubject pulls unseen pool questions for one blueprint entry and backs
// the shortfall with AI generation. A subject that still ends empty fails the
// whole build; a subject that ends short but non-empty is accepted.
func (s *sessionService) fillSubject(
	ctx context.Context,
	userID uint,
	profile *model.UserProfile,
	entry model.SubjectBlueprint,
	difficulty string,
) ([]model.Question, error) {
	filter := repository.QuestionFilter{
		EducationLevel: profile.EducationLevel,
		EducationStage: profile.EducationStage,
		Stream:         profile.Stream,
		Section:        entry.Section,
		Subject:        entry.Subject,
		Difficulty:     difficulty,
	}
	questions, err := s.questionRepo.FindUnseen(userID, filter, entry.QuestionCount)
	if err != nil {
		return nil, fmt.Errorf("querying unseen questions for %s: %w", entry.Subject, err)
	}

	if shortfall := entry.QuestionCount - len(questions); shortfall > 0 {
		generated, genErr := s.generator.GenerateQuestions(ctx, GenerationParams{
			EducationLevel: profile.EducationLevel,
			EducationStage: profile.EducationStage,
			Stream:         profile.Stream,
			Section:        entry.Section,
			Subject:        entry.Subject,
			Difficulty:     difficulty,
			Count:          shortfall,
		})
		if genErr != nil {
			// Degrades to PoolExhausted below if the subject stays empty.
			log.Warn().Err(genErr).Str("subject", entry.Subject).Int("shortfall", shortfall).
				Msg("Question backfill failed")
		} else if len(generated) > 0 {
			inserted, insErr := s.questionRepo.InsertGenerated(generated)
			if insErr != nil {
				return nil, fmt.Errorf("inserting generated questions for %s: %w", entry.Subject, insErr)
			}
			// Rows skipped as content duplicates already exist in the
			// pool; only fresh rows are guaranteed unseen by this user.
			questions = append(questions, inserted...)
			log.Info().Str("subject", entry.Subject).Int("generated", len(inserted)).
				Msg("Backfilled subject from AI generation")
		}
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: subject %s", ErrPoolExhausted, entry.Subject)
	}
	if len(questions) > entry.QuestionCount {
		questions = questions[:entry.QuestionCount]
	}
	return questions, nil
}

func (s *sessionService) GetSession(userID, sessionID uint) (*dto.SessionDetailDTO, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.expireIfTimedOut(session); err != nil {
		return nil, err
	}
	return s.sessionDetail(session, false)
}

func (s *sessionService) GetUserSessions(userID uint) ([]dto.SessionSummaryDTO, error) {
	sessions, err := s.sessionRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions for user %d: %w", userID, err)
	}
	summaries := make([]dto.SessionSummaryDTO, len(sessions))
	for i, session := range sessions {
		if err := copier.Copy(&summaries[i], &session); err != nil {
			return nil, fmt.Errorf("preparing session summary: %w", err)
		}
	}
	return summaries, nil
}

// ownedSession loads a session and enforces ownership. Foreign or unknown
// sessions are indistinguishable to the caller.
func (s *sessionService) ownedSession(userID, sessionID uint) (*model.TestSession, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("loading session %d: %w", sessionID, err)
	}
	if session.UserID != userID {
		return nil, ErrInvalidSession
	}
	return session, nil
}

// expireIfTimedOut lazily transitions an in_progress session past its
// deadline to expired. There is no background sweeper.
func (s *sessionService) expireIfTimedOut(session *model.TestSession) (bool, error) {
	if session.Status != model.SessionInProgress || !session.TimedOut(time.Now()) {
		return false, nil
	}
	session.Status = model.SessionExpired
	if err := s.sessionRepo.Update(session); err != nil {
		return false, fmt.Errorf("expiring session %d: %w", session.ID, err)
	}
	log.Info().Uint("sessionID", session.ID).Msg("Session expired on timeout")
	return true, nil
}

func (s *sessionService) sessionDetail(session *model.TestSession, resumed bool) (*dto.SessionDetailDTO, error) {
	ids, err := session.QuestionIDList()
	if err != nil {
		return nil, fmt.Errorf("decoding question ids for session %d: %w", session.ID, err)
	}
	questions, err := s.questionRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("loading questions for session %d: %w", session.ID, err)
	}
	// Preserve blueprint order; FindByIDs does not guarantee it.
	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return s.sessionDetailWithQuestions(session, ordered, resumed)
}

func (s *sessionService) sessionDetailWithQuestions(session *model.TestSession, questions []model.Question, resumed bool) (*dto.SessionDetailDTO, error) {
	var detail dto.SessionDetailDTO
	if err := copier.Copy(&detail, session); err != nil {
		return nil, fmt.Errorf("preparing session detail: %w", err)
	}
	blueprint, err := session.BlueprintEntries()
	if err != nil {
		return nil, fmt.Errorf("decoding blueprint for session %d: %w", session.ID, err)
	}
	detail.Blueprint = make([]dto.SubjectBlueprintDTO, len(blueprint))
	for i, entry := range blueprint {
		detail.Blueprint[i] = dto.SubjectBlueprintDTO(entry)
	}
	detail.Questions = make([]dto.QuestionDTO, 0, len(questions))
	for i := range questions {
		qDTO, err := toQuestionDTO(&questions[i])
		if err != nil {
			return nil, err
		}
		detail.Questions = append(detail.Questions, *qDTO)
	}
	detail.Resumed = resumed
	return &detail, nil
}

// toQuestionDTO shapes a question for the taker. The correct option is not
// part of the DTO.
func toQuestionDTO(q *model.Question) (*dto.QuestionDTO, error) {
	opts, err := q.OptionList()
	if err != nil {
		return nil, fmt.Errorf("decoding options for question %d: %w", q.ID, err)
	}
	return &dto.QuestionDTO{
		ID:         q.ID,
		Section:    q.Section,
		Subject:    q.Subject,
		Difficulty: q.Difficulty,
		Type:       q.Type,
		Text:       q.Text,
		Options:    opts,
		MaxMarks:   q.MaxMarks,
	}, nil
}
