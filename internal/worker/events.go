package worker

// IngestTextPayload is the body published to the text-ingest topic. Producers
// may omit document_id; the consumer assigns one before indexing.
type IngestTextPayload struct {
	DocumentID    string `json:"document_id,omitempty"`
	Text          string `json:"text"`
	CorrelationID string `json:"correlation_id,omitempty"`
}
