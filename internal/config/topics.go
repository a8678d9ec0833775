package config

// NSQ topics and channels for the ingestion pipeline.
const (
	TopicIngestText = "study.ingest.text"

	ChannelIngestIndexer = "indexer"
)
