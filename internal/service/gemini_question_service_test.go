package service

import (
	"context"
	"testing"

	"github.com/mnhthng/ascent/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDraftResponseToleratesFencesAndProse(t *testing.T) {
	raw := "Sure, here are the questions:\n```json\n" +
		`[{"text":"What is 2+2?","options":["3","4"],"correct_option":"4"}]` +
		"\n```\nLet me know if you need more."

	drafts, err := parseDraftResponse(raw)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "What is 2+2?", drafts[0].Text)
	assert.Equal(t, "4", drafts[0].CorrectOption)
}

func TestParseDraftResponseRejectsNonArrayOutput(t *testing.T) {
	_, err := parseDraftResponse("I cannot help with that.")
	assert.Error(t, err)

	_, err = parseDraftResponse(`{"text":"not an array"}`)
	assert.Error(t, err)
}

func TestValidDraft(t *testing.T) {
	testCases := []struct {
		name  string
		draft questionDraft
		want  bool
	}{
		{
			name:  "well formed",
			draft: questionDraft{Text: "q", Options: []string{"a", "b"}, CorrectOption: "a"},
			want:  true,
		},
		{
			name:  "blank text",
			draft: questionDraft{Text: "   ", Options: []string{"a", "b"}, CorrectOption: "a"},
			want:  false,
		},
		{
			name:  "single option",
			draft: questionDraft{Text: "q", Options: []string{"a"}, CorrectOption: "a"},
			want:  false,
		},
		{
			name:  "correct option not among options",
			draft: questionDraft{Text: "q", Options: []string{"a", "b"}, CorrectOption: "c"},
			want:  false,
		},
		{
			name:  "missing correct option",
			draft: questionDraft{Text: "q", Options: []string{"a", "b"}},
			want:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validDraft(tc.draft))
		})
	}
}

func TestBuildGenerationPromptCarriesContext(t *testing.T) {
	prompt := buildGenerationPrompt(GenerationParams{
		EducationLevel: "high_school",
		EducationStage: "12",
		Stream:         "science",
		Section:        "domain",
		Subject:        "physics",
		Difficulty:     "medium",
		Count:          3,
	})

	assert.Contains(t, prompt, "3 multiple-choice questions")
	assert.Contains(t, prompt, `"physics"`)
	assert.Contains(t, prompt, "difficulty: medium")
	assert.Contains(t, prompt, "stage: 12")
	assert.Contains(t, prompt, "stream: science")
	assert.Contains(t, prompt, "JSON array")
}

func TestGenerateQuestionsWithoutClientFailsUpstream(t *testing.T) {
	svc, err := NewGeminiQuestionService(&config.Config{})
	require.NoError(t, err)

	_, err = svc.GenerateQuestions(context.Background(), GenerationParams{Count: 2})
	assert.ErrorIs(t, err, ErrUpstreamGeneration)
}
