package rag

import (
	"encoding/json"
	"fmt"
	"strings"

	"studyhall/backend/internal/llm"
)

// parseQuizJSON validates the model's structured output before it reaches
// domain types. Anything that fails validation is a malformed-output
// capability failure, never a partial result.
func parseQuizJSON(raw string) ([]QuizQuestion, error) {
	var payload struct {
		Questions []QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", llm.ErrMalformedOutput, err)
	}

	for i, q := range payload.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("%w: question %d has no text", llm.ErrMalformedOutput, i)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("%w: question %d has %d options, want 4", llm.ErrMalformedOutput, i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("%w: question %d correct_answer %d out of range", llm.ErrMalformedOutput, i, q.CorrectAnswer)
		}
	}
	return payload.Questions, nil
}

// parseFlashcardJSON validates the model's card output: difficulty must be
// easy/medium/hard and importance must sit in [0,1].
func parseFlashcardJSON(raw string) ([]Flashcard, error) {
	var payload struct {
		Cards []Flashcard `json:"cards"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", llm.ErrMalformedOutput, err)
	}

	for i, c := range payload.Cards {
		if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
			return nil, fmt.Errorf("%w: card %d missing front or back", llm.ErrMalformedOutput, i)
		}
		switch strings.ToLower(c.Difficulty) {
		case "easy", "medium", "hard":
		default:
			return nil, fmt.Errorf("%w: card %d has difficulty %q", llm.ErrMalformedOutput, i, c.Difficulty)
		}
		if c.Importance < 0 || c.Importance > 1 {
			return nil, fmt.Errorf("%w: card %d importance %v out of range", llm.ErrMalformedOutput, i, c.Importance)
		}
	}
	return payload.Cards, nil
}
