package service

import (
	"fmt"

	"github.com/mnhthng/ascent/internal/dto"
	"github.com/mnhthng/ascent/internal/model"
	"github.com/mnhthng/ascent/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminQuestionService seeds and curates the question pool. Seeding shares
// the content-dedup discipline of the AI backfill: a question whose
// normalized text already exists in the same (education level, section,
// subject) context is skipped, not an error.
type AdminQuestionService interface {
	SeedQuestions(req dto.SeedQuestionsRequest) (*dto.SeedReportDTO, error)
	ListQuestions(filter repository.QuestionFilter, limit, offset int) ([]dto.QuestionDTO, error)
	DeactivateQuestion(id uint) error
}

type adminQuestionService struct {
	questionRepo repository.QuestionRepository
}

func NewAdminQuestionService(questionRepo repository.QuestionRepository) AdminQuestionService {
	return &adminQuestionService{questionRepo: questionRepo}
}

func (s *adminQuestionService) SeedQuestions(req dto.SeedQuestionsRequest) (*dto.SeedReportDTO, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for _, seed := range req.Questions {
		if seed.Type == model.QuestionTypeObjective {
			if len(seed.Options) < 2 || seed.CorrectOption == "" || !contains(seed.Options, seed.CorrectOption) {
				return nil, fmt.Errorf("objective question %q requires at least two options and a correct option among them", seed.Text)
			}
		}
		maxMarks := seed.MaxMarks
		if maxMarks <= 0 {
			maxMarks = 1
		}
		q := model.Question{
			EducationLevel: seed.EducationLevel,
			EducationStage: seed.EducationStage,
			Stream:         seed.Stream,
			Section:        seed.Section,
			Subject:        seed.Subject,
			Difficulty:     seed.Difficulty,
			Type:           seed.Type,
			Text:           seed.Text,
			ContentHash:    model.ContentHash(seed.Text),
			CorrectOption:  seed.CorrectOption,
			MaxMarks:       maxMarks,
			IsActive:       true,
		}
		if len(seed.Options) > 0 {
			if err := q.SetOptions(seed.Options); err != nil {
				return nil, fmt.Errorf("encoding options for question %q: %w", seed.Text, err)
			}
		}
		questions = append(questions, q)
	}

	inserted, err := s.questionRepo.InsertGenerated(questions)
	if err != nil {
		return nil, fmt.Errorf("seeding questions: %w", err)
	}
	report := &dto.SeedReportDTO{Inserted: len(inserted), Skipped: len(questions) - len(inserted)}
	log.Info().Int("inserted", report.Inserted).Int("skipped", report.Skipped).Msg("Question seed finished")
	return report, nil
}

func (s *adminQuestionService) ListQuestions(filter repository.QuestionFilter, limit, offset int) ([]dto.QuestionDTO, error) {
	questions, err := s.questionRepo.FindAll(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	out := make([]dto.QuestionDTO, 0, len(questions))
	for i := range questions {
		qDTO, err := toQuestionDTO(&questions[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *qDTO)
	}
	return out, nil
}

func (s *adminQuestionService) DeactivateQuestion(id uint) error {
	if err := s.questionRepo.Deactivate(id); err != nil {
		return fmt.Errorf("deactivating question %d: %w", id, err)
	}
	return nil
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
