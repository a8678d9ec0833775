package worker_test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockIngester struct{ mock.Mock }

func (m *MockIngester) Ingest(ctx context.Context, documentID string, chunks []string) error {
	args := m.Called(ctx, documentID, chunks)
	return args.Error(0)
}
