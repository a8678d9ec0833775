package rag

import (
	"context"

	"studyhall/backend/internal/llm"
)

// Outcome tags every orchestrator response so callers handle the three
// cases exhaustively instead of probing for an error field.
type Outcome string

const (
	// OutcomeOK means generation succeeded.
	OutcomeOK Outcome = "ok"
	// OutcomeEmpty means there was nothing to work with (no corpus, or a
	// query/filter matched nothing that requires data). Not a failure.
	OutcomeEmpty Outcome = "empty"
	// OutcomeFailed means a capability call failed; Error carries a
	// user-facing classification, never a raw internal error.
	OutcomeFailed Outcome = "failed"
)

// Embedder is the external embedding capability. EmbedBatch is
// order-preserving; Dimension is fixed for the instance's lifetime.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// Generator is the external text-completion capability.
type Generator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts llm.CompleteOptions) (string, error)
}

type AnswerRequest struct {
	Question    string
	DocumentIDs []string
	TopK        int
	Majors      []string
	Year        string
}

// Source is a truncated excerpt of a retrieved chunk returned with an
// answer.
type Source struct {
	Text       string  `json:"text"`
	DocumentID string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
	Relevance  string  `json:"relevance"`
}

type AnswerResult struct {
	Outcome    Outcome  `json:"outcome"`
	Answer     string   `json:"answer"`
	Sources    []Source `json:"sources"`
	Confidence float64  `json:"confidence"`
}

type QuizRequest struct {
	Topic        string
	NumQuestions int
	QuestionType string
	DocumentIDs  []string
	TopK         int
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type QuizResult struct {
	Outcome   Outcome        `json:"outcome"`
	Questions []QuizQuestion `json:"questions"`
	Topic     string         `json:"topic"`
	Error     string         `json:"error,omitempty"`
}

type FlashcardRequest struct {
	Text        string
	NumCards    int
	DocumentIDs []string
}

type Flashcard struct {
	Front      string  `json:"front"`
	Back       string  `json:"back"`
	Difficulty string  `json:"difficulty"`
	Importance float64 `json:"importance"`
}

type FlashcardResult struct {
	Outcome Outcome     `json:"outcome"`
	Cards   []Flashcard `json:"cards"`
	Error   string      `json:"error,omitempty"`
}
