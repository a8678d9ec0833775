package worker_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nsqio/go-nsq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"studyhall/backend/internal/worker"
)

func TestIngestConsumer_HandleMessage(t *testing.T) {
	i := new(MockIngester)
	consumer := worker.NewIngestConsumer(i, 500, 50)

	payload := worker.IngestTextPayload{
		DocumentID: "doc-1",
		Text:       "Mitosis is how cells divide. It has four phases.",
	}
	body, _ := json.Marshal(payload)
	msg := &nsq.Message{Body: body}

	i.On("Ingest", mock.Anything, "doc-1", mock.MatchedBy(func(chunks []string) bool {
		return len(chunks) > 0
	})).Return(nil)

	err := consumer.HandleMessage(msg)

	assert.NoError(t, err)
	i.AssertExpectations(t)
}

func TestIngestConsumer_AssignsDocumentID(t *testing.T) {
	i := new(MockIngester)
	consumer := worker.NewIngestConsumer(i, 500, 50)

	body, _ := json.Marshal(worker.IngestTextPayload{Text: "Some study notes."})
	msg := &nsq.Message{Body: body}

	i.On("Ingest", mock.Anything, mock.MatchedBy(func(id string) bool {
		return id != ""
	}), mock.Anything).Return(nil)

	err := consumer.HandleMessage(msg)

	assert.NoError(t, err)
	i.AssertExpectations(t)
}

func TestIngestConsumer_PoisonPill(t *testing.T) {
	i := new(MockIngester)
	consumer := worker.NewIngestConsumer(i, 500, 50)

	msg := &nsq.Message{Body: []byte("invalid json")}

	err := consumer.HandleMessage(msg)
	assert.NoError(t, err) // Should return nil (ack)
	i.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestConsumer_EmptyText(t *testing.T) {
	i := new(MockIngester)
	consumer := worker.NewIngestConsumer(i, 500, 50)

	body, _ := json.Marshal(worker.IngestTextPayload{DocumentID: "doc-1", Text: "   "})
	msg := &nsq.Message{Body: body}

	err := consumer.HandleMessage(msg)
	assert.NoError(t, err)
	i.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestConsumer_IngestFailureRequeues(t *testing.T) {
	i := new(MockIngester)
	consumer := worker.NewIngestConsumer(i, 500, 50)

	body, _ := json.Marshal(worker.IngestTextPayload{DocumentID: "doc-1", Text: "Some study notes."})
	msg := &nsq.Message{Body: body}

	i.On("Ingest", mock.Anything, "doc-1", mock.Anything).Return(errors.New("embed failed"))

	err := consumer.HandleMessage(msg)
	assert.Error(t, err)
}
