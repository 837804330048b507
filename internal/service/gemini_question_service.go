package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mnhthng/ascent/config"
	"github.com/mnhthng/ascent/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GenerationParams is the context tuple handed to the generator when the
// pool runs short for a subject.
type GenerationParams struct {
	EducationLevel string
	EducationStage string
	Stream         string
	Section        string
	Subject        string
	Difficulty     string
	Count          int
}

// QuestionGeneratorService produces question drafts on pool exhaustion. It
// is fallible by contract: it may error or return fewer drafts than
// requested, and callers must degrade gracefully.
type QuestionGeneratorService interface {
	GenerateQuestions(ctx context.Context, params GenerationParams) ([]model.Question, error)
}

type geminiQuestionService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiQuestionService(cfg *config.Config) (QuestionGeneratorService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Question backfill will be non-functional.")
		return &geminiQuestionService{cfg: cfg, client: nil}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiQuestionService{client: client.GenerativeModel("gemini-1.5-flash"), cfg: cfg}, nil
}

// questionDraft is the wire shape the model is instructed to return.
type questionDraft struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correct_option"`
}

func buildGenerationPrompt(params GenerationParams) string {
	var b strings.Builder
	b.WriteString("You are an expert item writer for multi-subject aptitude assessments.\n")
	b.WriteString(fmt.Sprintf("Write %d multiple-choice questions for the subject %q", params.Count, params.Subject))
	b.WriteString(fmt.Sprintf(" (section: %s, difficulty: %s, education level: %s", params.Section, params.Difficulty, params.EducationLevel))
	if params.EducationStage != "" {
		b.WriteString(fmt.Sprintf(", stage: %s", params.EducationStage))
	}
	if params.Stream != "" {
		b.WriteString(fmt.Sprintf(", stream: %s", params.Stream))
	}
	b.WriteString(").\n\n")
	b.WriteString("Each question must have exactly four answer options and exactly one correct option.\n")
	b.WriteString("The correct_option value must be copied verbatim from the options array.\n")
	b.WriteString("Respond with ONLY a JSON array, no prose and no markdown fences, in this shape:\n")
	b.WriteString(`[{"text":"...","options":["...","...","...","..."],"correct_option":"..."}]`)
	b.WriteString("\n")
	return b.String()
}

// parseDraftResponse extracts the JSON array from the raw model output,
// tolerating markdown fences and surrounding prose.
func parseDraftResponse(raw string) ([]questionDraft, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("response does not contain a JSON array. Raw: %s", raw)
	}
	var drafts []questionDraft
	if err := json.Unmarshal([]byte(raw[start:end+1]), &drafts); err != nil {
		return nil, fmt.Errorf("failed to decode question drafts: %w", err)
	}
	return drafts, nil
}

// validDraft checks a draft is insertable: non-empty text, at least two
// options, and a correct option that appears among them.
func validDraft(d questionDraft) bool {
	if strings.TrimSpace(d.Text) == "" || len(d.Options) < 2 || d.CorrectOption == "" {
		return false
	}
	for _, opt := range d.Options {
		if opt == d.CorrectOption {
			return true
		}
	}
	return false
}

func (s *geminiQuestionService) GenerateQuestions(ctx context.Context, params GenerationParams) ([]model.Question, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: gemini client not initialized", ErrUpstreamGeneration)
	}
	if params.Count <= 0 {
		return nil, nil
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(buildGenerationPrompt(params)))
	if err != nil {
		log.Error().Err(err).Str("subject", params.Subject).Msg("Gemini API error during question generation")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamGeneration, err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Str("subject", params.Subject).Msg("Gemini returned no candidates for question generation")
		return nil, fmt.Errorf("%w: empty response", ErrUpstreamGeneration)
	}

	fullResponseText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullResponseText += string(txt)
		}
	}

	drafts, parseErr := parseDraftResponse(fullResponseText)
	if parseErr != nil {
		log.Warn().Err(parseErr).Str("subject", params.Subject).Msg("Failed to parse question drafts from Gemini response")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamGeneration, parseErr)
	}

	questions := make([]model.Question, 0, len(drafts))
	for _, d := range drafts {
		if !validDraft(d) {
			log.Warn().Str("subject", params.Subject).Str("text", d.Text).Msg("Discarding invalid question draft")
			continue
		}
		q := model.Question{
			EducationLevel: params.EducationLevel,
			EducationStage: params.EducationStage,
			Stream:         params.Stream,
			Section:        params.Section,
			Subject:        params.Subject,
			Difficulty:     params.Difficulty,
			Type:           model.QuestionTypeObjective,
			Text:           strings.TrimSpace(d.Text),
			ContentHash:    model.ContentHash(d.Text),
			CorrectOption:  d.CorrectOption,
			MaxMarks:       1,
			IsAIGenerated:  true,
			IsActive:       true,
		}
		if err := q.SetOptions(d.Options); err != nil {
			log.Warn().Err(err).Msg("Failed to encode draft options, discarding draft")
			continue
		}
		questions = append(questions, q)
		if len(questions) == params.Count {
			break
		}
	}
	log.Info().Str("subject", params.Subject).Int("requested", params.Count).Int("usable", len(questions)).Msg("Question backfill generation finished")
	return questions, nil
}
