package service

import (
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/copier"
	"github.com/mnhthng/ascent/internal/dto"
	"github.com/mnhthng/ascent/internal/model"
	"github.com/mnhthng/ascent/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PendingEvaluation is the materializer state for a submitted session whose
// result does not exist yet.
const PendingEvaluation = "pending_evaluation"

// EvaluationService owns the submitted half of the session lifecycle:
// submission, objective scoring, the durable TestResult, its reporting
// projection, and the counselling handoff.
type EvaluationService interface {
	// SubmitSession moves an open session to submitted. Submitting an
	// already-submitted session is an idempotent no-op.
	SubmitSession(userID, sessionID uint) (*dto.SessionSummaryDTO, error)
	// EvaluateSession grades a submitted session's objective answers into
	// a TestResult and advances the session to evaluated. Safe to invoke
	// repeatedly; an existing evaluated result is returned unchanged.
	EvaluateSession(userID, sessionID uint) (*dto.TestResultDTO, error)
	// GetResult is the reporting projection: the stored result plus
	// derived fields, or a pending_evaluation marker.
	GetResult(userID, sessionID uint) (*dto.MaterializedResultDTO, error)
	// GetCounsellingBundle stages the evaluated result and the ungraded
	// free-text answers for the external counselling collaborator.
	GetCounsellingBundle(userID, sessionID uint) (*dto.CounsellingBundleDTO, error)
	// MarkCounsellingGenerated records that the counselling collaborator
	// consumed the bundle. Idempotent.
	MarkCounsellingGenerated(userID, sessionID uint) error
}

type evaluationService struct {
	sessionRepo  repository.SessionRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	resultRepo   repository.ResultRepository
	db           *gorm.DB
}

func NewEvaluationService(
	sessionRepo repository.SessionRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	resultRepo repository.ResultRepository,
	db *gorm.DB,
) EvaluationService {
	return &evaluationService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		resultRepo:   resultRepo,
		db:           db,
	}
}

func (s *evaluationService) SubmitSession(userID, sessionID uint) (*dto.SessionSummaryDTO, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Status {
	case model.SessionSubmitted, model.SessionEvaluated, model.SessionCounsellingGenerated:
		// Already past submission; no-op, not an error.
		return sessionSummary(session)
	case model.SessionExpired:
		return nil, ErrSessionExpired
	case model.SessionInProgress:
		// fallthrough below
	default:
		return nil, ErrInvalidSession
	}

	now := time.Now()
	if session.TimedOut(now) {
		session.Status = model.SessionExpired
		if updErr := s.sessionRepo.Update(session); updErr != nil {
			return nil, fmt.Errorf("expiring session %d: %w", session.ID, updErr)
		}
		return nil, ErrSessionExpired
	}

	count, err := s.answerRepo.CountBySession(session.ID)
	if err != nil {
		return nil, fmt.Errorf("counting answers for session %d: %w", session.ID, err)
	}
	if count == 0 {
		return nil, ErrNoAnswers
	}

	session.SubmittedAt = &now
	session.Status = model.SessionSubmitted
	if err := s.sessionRepo.Update(session); err != nil {
		return nil, fmt.Errorf("submitting session %d: %w", session.ID, err)
	}
	log.Info().Uint("sessionID", session.ID).Int64("answers", count).Msg("Session submitted")
	return sessionSummary(session)
}

type sectionKey struct {
	Section string
	Subject string
}

func (s *evaluationService) EvaluateSession(userID, sessionID uint) (*dto.TestResultDTO, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	// Idempotency check first: re-evaluation returns the stored result
	// rather than re-deriving anything from cumulative state.
	existing, err := s.resultRepo.FindBySessionID(session.ID)
	switch {
	case err == nil:
		if existing.Status == model.ResultEvaluated {
			return toResultDTO(existing)
		}
	case !repository.IsNotFound(err):
		return nil, fmt.Errorf("checking existing result for session %d: %w", session.ID, err)
	}

	switch session.Status {
	case model.SessionSubmitted:
		// fallthrough below
	case model.SessionInProgress:
		return nil, ErrNotSubmitted
	default:
		return nil, ErrInvalidSession
	}

	answers, err := s.answerRepo.FindBySession(session.ID)
	if err != nil {
		return nil, fmt.Errorf("loading answers for session %d: %w", session.ID, err)
	}
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}

	ids, err := session.QuestionIDList()
	if err != nil {
		return nil, fmt.Errorf("decoding question ids for session %d: %w", session.ID, err)
	}
	questions, err := s.questionRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("loading questions for session %d: %w", session.ID, err)
	}
	questionByID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}

	// Section totals come from the session's question list, so unattempted
	// questions still count toward their section. Only scoreable questions
	// enter any denominator: subjective items are staged for the external
	// path, and resolvable questions missing a correct option are excluded
	// from numerator and denominator alike.
	agg := make(map[sectionKey]*model.SectionResult)
	var sectionOrder []sectionKey
	totalScoreable := 0
	for _, id := range ids {
		q, ok := questionByID[id]
		if !ok || !q.Scoreable() {
			continue
		}
		key := sectionKey{Section: q.Section, Subject: q.Subject}
		if agg[key] == nil {
			agg[key] = &model.SectionResult{Section: q.Section, Subject: q.Subject}
			sectionOrder = append(sectionOrder, key)
		}
		agg[key].Total++
		totalScoreable++
	}

	attempted, correct, wrong := 0, 0, 0
	graded := make([]model.Answer, 0, len(answers))
	for i := range answers {
		answer := &answers[i]
		if answer.QuestionType != model.QuestionTypeObjective {
			continue
		}
		question, ok := questionByID[answer.QuestionID]
		if !ok || !question.Scoreable() {
			continue
		}
		if !answer.Attempted() {
			// Unattempted, not wrong; stays ungraded.
			continue
		}
		key := sectionKey{Section: question.Section, Subject: question.Subject}
		agg[key].Attempted++
		attempted++

		isCorrect := *answer.SelectedOption == question.CorrectOption
		answer.IsCorrect = &isCorrect
		if isCorrect {
			answer.MarksAwarded = answer.MaxMarks
			agg[key].Correct++
			correct++
		} else {
			answer.MarksAwarded = 0
			agg[key].Wrong++
			wrong++
		}
		graded = append(graded, *answer)
	}

	sections := make([]model.SectionResult, 0, len(sectionOrder))
	for _, key := range sectionOrder {
		entry := agg[key]
		entry.Percentage = roundedPercent(entry.Correct, entry.Total)
		sections = append(sections, *entry)
	}

	result := model.TestResult{
		SessionID:       session.ID,
		UserID:          session.UserID,
		Level:           session.Level,
		TotalQuestions:  totalScoreable,
		Attempted:       attempted,
		Correct:         correct,
		Wrong:           wrong,
		ScorePercentage: roundedPercent(correct, totalScoreable),
		Status:          model.ResultEvaluated,
		EvaluatedAt:     time.Now(),
	}
	if err := result.SetSectionBreakdown(sections); err != nil {
		return nil, fmt.Errorf("encoding section breakdown: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&result).Error; err != nil {
			return fmt.Errorf("persisting result: %w", err)
		}
		for i := range graded {
			if err := tx.Save(&graded[i]).Error; err != nil {
				return fmt.Errorf("persisting grade for answer %d: %w", graded[i].ID, err)
			}
		}
		session.Status = model.SessionEvaluated
		if err := tx.Save(session).Error; err != nil {
			return fmt.Errorf("advancing session status: %w", err)
		}
		return nil
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			// Lost an evaluation race on the one-result-per-session
			// index; the winner's stored result is the result.
			log.Warn().Uint("sessionID", session.ID).Msg("Concurrent evaluation detected, returning stored result")
			stored, ferr := s.resultRepo.FindBySessionID(session.ID)
			if ferr != nil {
				return nil, fmt.Errorf("resolving concurrent evaluation for session %d: %w", session.ID, ferr)
			}
			return toResultDTO(stored)
		}
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("Evaluation transaction failed")
		return nil, err
	}

	log.Info().Uint("sessionID", session.ID).Int("correct", correct).Int("of", totalScoreable).
		Int("score", result.ScorePercentage).Msg("Session evaluated")
	return toResultDTO(&result)
}

func (s *evaluationService) GetResult(userID, sessionID uint) (*dto.MaterializedResultDTO, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	result, err := s.resultRepo.FindBySessionID(session.ID)
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, fmt.Errorf("loading result for session %d: %w", session.ID, err)
		}
		switch session.Status {
		case model.SessionSubmitted:
			return &dto.MaterializedResultDTO{SessionID: session.ID, Status: PendingEvaluation}, nil
		case model.SessionInProgress:
			return nil, ErrNotSubmitted
		default:
			return nil, ErrInvalidSession
		}
	}

	resultDTO, err := toResultDTO(result)
	if err != nil {
		return nil, err
	}
	return &dto.MaterializedResultDTO{
		SessionID:   session.ID,
		Status:      result.Status,
		Result:      resultDTO,
		Unattempted: result.TotalQuestions - result.Attempted,
		Accuracy:    roundedPercent(result.Correct, result.Attempted),
	}, nil
}

func (s *evaluationService) GetCounsellingBundle(userID, sessionID uint) (*dto.CounsellingBundleDTO, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionEvaluated && session.Status != model.SessionCounsellingGenerated {
		return nil, ErrNotSubmitted
	}

	result, err := s.resultRepo.FindBySessionID(session.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotSubmitted
		}
		return nil, fmt.Errorf("loading result for session %d: %w", session.ID, err)
	}
	resultDTO, err := toResultDTO(result)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerRepo.FindBySession(session.ID)
	if err != nil {
		return nil, fmt.Errorf("loading answers for session %d: %w", session.ID, err)
	}
	subjective := make([]dto.SubjectiveAnswerDTO, 0)
	for _, answer := range answers {
		if answer.QuestionType != model.QuestionTypeSubjective || answer.AnswerText == nil || *answer.AnswerText == "" {
			continue
		}
		text := ""
		if question, qErr := s.questionRepo.FindByID(answer.QuestionID); qErr == nil {
			text = question.Text
		} else {
			log.Warn().Err(qErr).Uint("questionID", answer.QuestionID).Uint("sessionID", session.ID).
				Msg("Question lookup failed while staging counselling bundle")
		}
		subjective = append(subjective, dto.SubjectiveAnswerDTO{
			QuestionID:   answer.QuestionID,
			QuestionText: text,
			Subject:      answer.Subject,
			Section:      answer.Section,
			AnswerText:   *answer.AnswerText,
		})
	}

	return &dto.CounsellingBundleDTO{
		SessionID:         session.ID,
		Result:            *resultDTO,
		SubjectiveAnswers: subjective,
	}, nil
}

func (s *evaluationService) MarkCounsellingGenerated(userID, sessionID uint) error {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return err
	}
	if session.Status == model.SessionCounsellingGenerated {
		return nil
	}
	if session.Status != model.SessionEvaluated {
		return ErrInvalidSession
	}
	session.Status = model.SessionCounsellingGenerated
	if err := s.sessionRepo.Update(session); err != nil {
		return fmt.Errorf("marking counselling generated for session %d: %w", session.ID, err)
	}
	log.Info().Uint("sessionID", session.ID).Msg("Counselling marked generated")
	return nil
}

func (s *evaluationService) ownedSession(userID, sessionID uint) (*model.TestSession, error) {
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

// roundedPercent is round(n/d*100), 0 on a zero denominator.
func roundedPercent(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}

func sessionSummary(session *model.TestSession) (*dto.SessionSummaryDTO, error) {
	var summary dto.SessionSummaryDTO
	if err := copier.Copy(&summary, session); err != nil {
		return nil, fmt.Errorf("preparing session summary: %w", err)
	}
	return &summary, nil
}

func toResultDTO(result *model.TestResult) (*dto.TestResultDTO, error) {
	var resp dto.TestResultDTO
	if err := copier.Copy(&resp, result); err != nil {
		return nil, fmt.Errorf("preparing result response: %w", err)
	}
	sections, err := result.SectionBreakdown()
	if err != nil {
		return nil, fmt.Errorf("decoding section breakdown: %w", err)
	}
	resp.SectionResults = make([]dto.SectionResultDTO, len(sections))
	for i, section := range sections {
		resp.SectionResults[i] = dto.SectionResultDTO(section)
	}
	return &resp, nil
}
