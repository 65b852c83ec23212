package vision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini implements Analyzer using Google Gemini.
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	prompt  string
	timeout time.Duration
}

// NewGemini creates a Gemini-backed analyzer. An empty prompt selects
// DefaultPrompt; an empty model name selects a sensible default.
func NewGemini(ctx context.Context, apiKey, modelName, prompt string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	if prompt == "" {
		prompt = DefaultPrompt
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client:  client,
		model:   client.GenerativeModel(modelName),
		prompt:  prompt,
		timeout: timeout,
	}, nil
}

// Analyze sends one image to the model and parses its structured reply.
// A call that outlives the timeout fails like any other call failure.
func (g *Gemini) Analyze(ctx context.Context, image []byte, mediaType string) (*RawAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// genai.ImageData expects the bare format suffix ("jpeg"), not the
	// full MIME type ("image/jpeg").
	format := strings.TrimPrefix(mediaType, "image/")
	parts := []genai.Part{
		genai.ImageData(format, image),
		genai.Text(g.prompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	return parseAnalysisJSON(text.String())
}

// Close closes the underlying Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
