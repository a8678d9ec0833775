package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studyhall/backend/internal/index"
)

func TestPersonalizationClause(t *testing.T) {
	tests := []struct {
		name   string
		majors []string
		year   string
		want   string
	}{
		{"no profile", nil, "", ""},
		{"single major", []string{"Biology"}, "", "The student is a Biology major"},
		{"double major", []string{"Biology", "Chemistry"}, "", "The student is double majoring in Biology and Chemistry"},
		{"three majors", []string{"Biology", "Chemistry", "Physics"}, "", "The student is majoring in Biology, Chemistry, and Physics"},
		{"year only", nil, "junior", "The student is in their junior year"},
		{"major and year", []string{"Biology"}, "senior", "The student is a Biology major, currently in their senior year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := personalizationClause(tt.majors, tt.year)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestOxfordJoin(t *testing.T) {
	assert.Equal(t, "A", oxfordJoin([]string{"A"}))
	assert.Equal(t, "A and B", oxfordJoin([]string{"A", "B"}))
	assert.Equal(t, "A, B, and C", oxfordJoin([]string{"A", "B", "C"}))
	assert.Equal(t, "A, B, C, and D", oxfordJoin([]string{"A", "B", "C", "D"}))
}

func TestBuildGroundedPrompt(t *testing.T) {
	results := []index.SearchResult{
		{Text: "Mitosis has four phases.", DocumentID: "d1"},
		{Text: "Prophase comes first.", DocumentID: "d1", ChunkIndex: 1},
	}

	prompt := buildGroundedPrompt("What is mitosis?", results, "The student is a Biology major.")

	assert.Contains(t, prompt, "[Source 1]: Mitosis has four phases.")
	assert.Contains(t, prompt, "[Source 2]: Prophase comes first.")
	assert.Contains(t, prompt, "Question: What is mitosis?")
	assert.Contains(t, prompt, "Biology major")
	assert.Contains(t, prompt, "Cite which sources")
}

func TestBuildGeneralKnowledgePrompt(t *testing.T) {
	prompt := buildGeneralKnowledgePrompt("What is mitosis?", "")
	assert.Contains(t, prompt, "general knowledge")
	assert.Contains(t, prompt, "Question: What is mitosis?")
	assert.NotContains(t, prompt, "[Source")
}

func TestBuildQuizPrompt(t *testing.T) {
	prompt := buildQuizPrompt(5, "multiple_choice", "cells divide")
	assert.Contains(t, prompt, "Generate 5 multiple_choice questions")
	assert.Contains(t, prompt, "cells divide")
	assert.Contains(t, prompt, `"correct_answer"`)
}

func TestBuildFlashcardPrompt(t *testing.T) {
	prompt := buildFlashcardPrompt(3, "cells divide")
	assert.Contains(t, prompt, "Create 3 flashcards")
	assert.Contains(t, prompt, "cells divide")
	assert.Contains(t, prompt, `"importance"`)
}
