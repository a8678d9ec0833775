package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"studyhall/backend/internal/llm"
)

// Generator produces text completions from a Gemini generative model.
type Generator struct {
	client *genai.Client
	model  string
}

func NewGenerator(client *genai.Client, model string) *Generator {
	return &Generator{client: client, model: model}
}

// Complete runs one completion and returns the concatenated text parts of
// the first candidate. Failures are classified into the llm taxonomy; no
// retries are attempted here.
func (g *Generator) Complete(ctx context.Context, systemPrompt, userPrompt string, opts llm.CompleteOptions) (string, error) {
	m := g.client.GenerativeModel(g.model)
	m.SetTemperature(opts.Temperature)
	if opts.MaxOutputTokens > 0 {
		m.SetMaxOutputTokens(opts.MaxOutputTokens)
	}
	if opts.JSON {
		m.ResponseMIMEType = "application/json"
	}
	if systemPrompt != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}

	resp, err := m.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		slog.ErrorContext(ctx, "completion failed", "model", g.model, "error", err)
		return "", llm.Classify(err)
	}

	out := extractText(resp)
	if out == "" {
		return "", fmt.Errorf("gemini: completion returned no text")
	}
	return out, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}
