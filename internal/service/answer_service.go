package service

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/mnhthng/ascent/internal/dto"
	"github.com/mnhthng/ascent/internal/model"
	"github.com/mnhthng/ascent/internal/repository"
	"github.com/rs/zerolog/log"
)

// AnswerService is the answer ledger: one upsertable answer per
// (user, question), immutable once the session is scored.
type AnswerService interface {
	// RecordAnswer saves or overwrites the caller's answer to one question
	// of their open session. Every write resets the grading fields, since
	// a changed answer invalidates any prior grading.
	RecordAnswer(userID, sessionID uint, req dto.RecordAnswerRequest) (*dto.AnswerDTO, error)
}

type answerService struct {
	sessionRepo  repository.SessionRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
}

func NewAnswerService(
	sessionRepo repository.SessionRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
) AnswerService {
	return &answerService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
	}
}

func (s *answerService) RecordAnswer(userID, sessionID uint, req dto.RecordAnswerRequest) (*dto.AnswerDTO, error) {
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
	if session.Status == model.SessionInProgress && session.TimedOut(time.Now()) {
		session.Status = model.SessionExpired
		if updErr := s.sessionRepo.Update(session); updErr != nil {
			return nil, fmt.Errorf("expiring session %d: %w", session.ID, updErr)
		}
		log.Info().Uint("sessionID", session.ID).Msg("Session expired on timeout")
		return nil, ErrSessionExpired
	}
	if session.Status != model.SessionInProgress {
		if session.Status == model.SessionExpired {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidSession
	}

	ids, err := session.QuestionIDList()
	if err != nil {
		return nil, fmt.Errorf("decoding question ids for session %d: %w", session.ID, err)
	}
	if !containsID(ids, req.QuestionID) {
		return nil, ErrQuestionNotInSession
	}

	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrQuestionNotInSession
		}
		return nil, fmt.Errorf("loading question %d: %w", req.QuestionID, err)
	}

	answer := model.Answer{
		UserID:     userID,
		QuestionID: question.ID,
		SessionID:  session.ID,
		// Denormalized from the question, never caller-supplied.
		Subject:      question.Subject,
		Section:      question.Section,
		QuestionType: question.Type,
		MaxMarks:     question.MaxMarks,
		TimeSpentSec: req.TimeSpentSec,
		// Ungraded until evaluation.
		IsCorrect:    nil,
		MarksAwarded: 0,
	}
	// Sanitize the payload: exactly one of selection/free text survives,
	// decided by the question's type.
	if question.Type == model.QuestionTypeObjective {
		answer.SelectedOption = req.SelectedOption
	} else {
		answer.AnswerText = req.AnswerText
	}

	if err := s.answerRepo.Upsert(&answer); err != nil {
		return nil, fmt.Errorf("saving answer for question %d: %w", question.ID, err)
	}

	var resp dto.AnswerDTO
	if err := copier.Copy(&resp, &answer); err != nil {
		return nil, fmt.Errorf("preparing answer response: %w", err)
	}
	return &resp, nil
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
