package vision

import (
	"context"
	"encoding/json"
)

// RawAnalysis is the collaborator's classification of one image, before
// the payload is decoded into a concrete ticket or vehicle shape.
type RawAnalysis struct {
	Type       string          `json:"type"`
	Confidence float64         `json:"confidence"`
	Data       json.RawMessage `json:"data"`
}

// Analyzer classifies an image and extracts structured data from it.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, mediaType string) (*RawAnalysis, error)
	Close() error
}
