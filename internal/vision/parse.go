package vision

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUpstreamFormat marks a model response that arrived but could not be
// parsed as structured data. Transport failures do not carry this error.
var ErrUpstreamFormat = errors.New("model returned invalid JSON")

// parseAnalysisJSON extracts the JSON object from a model response.
// Models occasionally wrap the object in markdown fences or surround it
// with prose, so the parse works on the first '{' to the last '}'.
func parseAnalysisJSON(text string) (*RawAnalysis, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrUpstreamFormat)
	}
	end := strings.LastIndex(text, "}")
	if end == -1 || end < start {
		return nil, fmt.Errorf("%w: unterminated JSON object in response", ErrUpstreamFormat)
	}
	text = text[start : end+1]

	var raw RawAnalysis
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFormat, err)
	}

	if raw.Confidence < 0 {
		raw.Confidence = 0
	}
	if raw.Confidence > 1 {
		raw.Confidence = 1
	}

	return &raw, nil
}
