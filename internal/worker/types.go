package worker

import (
	"context"
)

type Ingester interface {
	Ingest(ctx context.Context, documentID string, chunks []string) error
}
