package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nsqio/go-nsq"

	"studyhall/backend/internal/middleware"
	"studyhall/backend/internal/text"
)

// IngestConsumer chunks incoming document text and hands the chunks to the
// ingester. The index writer is single-threaded; run this consumer with
// MaxInFlight = 1.
type IngestConsumer struct {
	ingester     Ingester
	chunkSize    int
	chunkOverlap int
}

func NewIngestConsumer(i Ingester, chunkSize, chunkOverlap int) *IngestConsumer {
	return &IngestConsumer{
		ingester:     i,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

func (h *IngestConsumer) HandleMessage(m *nsq.Message) error {
	if len(m.Body) == 0 {
		return nil
	}

	var payload IngestTextPayload
	if err := json.Unmarshal(m.Body, &payload); err != nil {
		// Poison Pill: Invalid JSON, don't retry
		slog.Error("poison pill: invalid json", "error", err)
		return nil
	}

	ctx := context.Background()
	if payload.CorrelationID != "" {
		ctx = middleware.WithCorrelationID(ctx, payload.CorrelationID)
	}

	documentID := payload.DocumentID
	if documentID == "" {
		documentID = uuid.NewString()
	}

	chunks := text.Chunk(payload.Text, h.chunkSize, h.chunkOverlap)
	if len(chunks) == 0 {
		slog.WarnContext(ctx, "ingest message carried no usable text", "document_id", documentID)
		return nil
	}

	if err := h.ingester.Ingest(ctx, documentID, chunks); err != nil {
		slog.ErrorContext(ctx, "ingest failed", "error", err, "document_id", documentID)
		return err // Retry
	}

	slog.InfoContext(ctx, "document indexed", "document_id", documentID, "chunks", len(chunks))
	return nil
}
