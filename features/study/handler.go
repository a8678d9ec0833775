package study

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"studyhall/backend/internal/middleware"
	"studyhall/backend/internal/profile"
	"studyhall/backend/internal/rag"
)

type Orchestrator interface {
	Answer(ctx context.Context, req rag.AnswerRequest) rag.AnswerResult
	Quiz(ctx context.Context, req rag.QuizRequest) rag.QuizResult
	Flashcards(ctx context.Context, req rag.FlashcardRequest) rag.FlashcardResult
}

type ProfileStore interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
	Upsert(ctx context.Context, p *profile.Profile) error
}

type Handler struct {
	orchestrator Orchestrator
	profiles     ProfileStore
}

func NewHandler(o Orchestrator, p ProfileStore) *Handler {
	return &Handler{orchestrator: o, profiles: p}
}

type askRequest struct {
	Question    string   `json:"question"`
	UserID      string   `json:"user_id,omitempty"`
	DocumentIDs []string `json:"document_ids,omitempty"`
	TopK        int      `json:"top_k,omitempty"`
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(ctx, w, "VALIDATION_ERROR", "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		h.writeError(ctx, w, "VALIDATION_ERROR", "question is required", http.StatusBadRequest)
		return
	}

	answerReq := rag.AnswerRequest{
		Question:    req.Question,
		DocumentIDs: req.DocumentIDs,
		TopK:        req.TopK,
	}

	// Personalization is best-effort: a profile lookup failure downgrades
	// to an unpersonalized answer instead of failing the request.
	if req.UserID != "" && h.profiles != nil {
		p, err := h.profiles.Get(ctx, req.UserID)
		if err != nil {
			slog.ErrorContext(ctx, "profile lookup failed", "error", err, "user_id", req.UserID)
		} else {
			answerReq.Majors = p.Majors
			answerReq.Year = p.Year
		}
	}

	res := h.orchestrator.Answer(ctx, answerReq)
	if res.Outcome == rag.OutcomeFailed {
		h.writeError(ctx, w, "UPSTREAM_ERROR", res.Answer, http.StatusBadGateway)
		return
	}

	h.writeData(ctx, w, res)
}

type quizRequest struct {
	Topic        string   `json:"topic,omitempty"`
	NumQuestions int      `json:"num_questions,omitempty"`
	QuestionType string   `json:"question_type,omitempty"`
	DocumentIDs  []string `json:"document_ids,omitempty"`
	TopK         int      `json:"top_k,omitempty"`
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(ctx, w, "VALIDATION_ERROR", "Invalid JSON body", http.StatusBadRequest)
		return
	}

	res := h.orchestrator.Quiz(ctx, rag.QuizRequest{
		Topic:        req.Topic,
		NumQuestions: req.NumQuestions,
		QuestionType: req.QuestionType,
		DocumentIDs:  req.DocumentIDs,
		TopK:         req.TopK,
	})
	if res.Outcome == rag.OutcomeFailed {
		h.writeError(ctx, w, "UPSTREAM_ERROR", res.Error, http.StatusBadGateway)
		return
	}

	h.writeData(ctx, w, res)
}

type flashcardRequest struct {
	Text        string   `json:"text,omitempty"`
	NumCards    int      `json:"num_cards,omitempty"`
	DocumentIDs []string `json:"document_ids,omitempty"`
}

func (h *Handler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req flashcardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(ctx, w, "VALIDATION_ERROR", "Invalid JSON body", http.StatusBadRequest)
		return
	}

	res := h.orchestrator.Flashcards(ctx, rag.FlashcardRequest{
		Text:        req.Text,
		NumCards:    req.NumCards,
		DocumentIDs: req.DocumentIDs,
	})
	if res.Outcome == rag.OutcomeFailed {
		h.writeError(ctx, w, "UPSTREAM_ERROR", res.Error, http.StatusBadGateway)
		return
	}

	h.writeData(ctx, w, res)
}

type profileRequest struct {
	Majors []string `json:"majors"`
	Year   string   `json:"year"`
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("user_id")

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(ctx, w, "VALIDATION_ERROR", "Invalid JSON body", http.StatusBadRequest)
		return
	}

	p := &profile.Profile{UserID: userID, Majors: req.Majors, Year: req.Year}
	if err := h.profiles.Upsert(ctx, p); err != nil {
		slog.ErrorContext(ctx, "profile upsert failed", "error", err, "user_id", userID)
		h.writeError(ctx, w, "INTERNAL_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeData(ctx, w, p)
}

func (h *Handler) writeData(ctx context.Context, w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": data}); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(ctx),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
