package stats

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"studyhall/backend/internal/index"
)

type Handler struct {
	index *index.Index
}

func NewHandler(ix *index.Index) *Handler {
	return &Handler{index: ix}
}

type corpusStats struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
	Dimension int `json:"dimension"`
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats := corpusStats{
		Documents: h.index.DocumentCount(),
		Chunks:    h.index.Len(),
		Dimension: h.index.Dimension(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": stats}); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
