package llm

// CompleteOptions tune a single completion call against the generative
// model capability.
type CompleteOptions struct {
	Temperature     float32
	MaxOutputTokens int32
	// JSON forces the model to emit a single JSON document.
	JSON bool
}
