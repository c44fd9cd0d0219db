package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured means the advisor backend has no credential;
	// fatal for the request, not for the rest of the system.
	ErrNotConfigured = errors.New("advisor not configured")

	// ErrRequestFailed covers network and service failures calling the
	// backend. Never retried automatically.
	ErrRequestFailed = errors.New("advice request failed")

	// ErrMalformedResponse means the backend answered with something
	// other than the required {analysis, tips} shape. Surfaced like
	// ErrRequestFailed but kept distinct for diagnostics.
	ErrMalformedResponse = errors.New("malformed advice response")
)

// Advice is the advisor's response contract.
type Advice struct {
	Analysis string   `json:"analysis"`
	Tips     []string `json:"tips"`
}

// ParseAdvice decodes and shape-checks a raw advisor response. The
// value must carry a string field "analysis" and an array-of-strings
// field "tips"; anything else fails with ErrMalformedResponse.
// Markdown code fences around the JSON are tolerated.
func ParseAdvice(raw []byte) (Advice, error) {
	clean := stripFences(string(raw))

	var payload struct {
		Analysis *string        `json:"analysis"`
		Tips     *[]interface{} `json:"tips"`
	}
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return Advice{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.Analysis == nil {
		return Advice{}, fmt.Errorf("%w: missing analysis", ErrMalformedResponse)
	}
	if payload.Tips == nil {
		return Advice{}, fmt.Errorf("%w: missing tips", ErrMalformedResponse)
	}

	tips := make([]string, 0, len(*payload.Tips))
	for _, tip := range *payload.Tips {
		s, ok := tip.(string)
		if !ok {
			return Advice{}, fmt.Errorf("%w: tips must be strings", ErrMalformedResponse)
		}
		tips = append(tips, s)
	}
	return Advice{Analysis: *payload.Analysis, Tips: tips}, nil
}

// stripFences removes ```json fences and surrounding junk a model may
// wrap around the object despite instructions.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
