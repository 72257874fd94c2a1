package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrAnalysisUnavailable means no analyzer is configured. Callers confirm
// without analysis.
var ErrAnalysisUnavailable = errors.New("room analysis unavailable")

// RoomAnalysis is the style read-out for an uploaded room photo.
type RoomAnalysis struct {
	Style       string   `json:"style"`
	Lighting    string   `json:"lighting"`
	Palette     []string `json:"palette"`
	Suggestions []string `json:"suggestions"`
	Summary     string   `json:"summary"`
}

const roomPrompt = `You are an interior designer helping a customer pick custom window shades.
Look at the room photo and reply with JSON only, using this shape:
{"style": "<one or two words>", "lighting": "<bright|moderate|dim>", "palette": ["<color>", ...],
"suggestions": ["Blackout" or "Light Filtering", ...], "summary": "<two sentences>"}`

// ParseResponse reads the model reply. Replies wrapped in a markdown code
// fence are accepted.
func ParseResponse(text string) (*RoomAnalysis, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, fmt.Errorf("empty analysis response")
	}

	var out RoomAnalysis
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	if out.Style == "" && out.Summary == "" {
		return nil, fmt.Errorf("analysis response has no style or summary")
	}
	return &out, nil
}

// imageFormat maps a content type to the short format name the model API
// expects.
func imageFormat(mimeType string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/jpeg", "image/jpg":
		return "jpeg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	default:
		return "", fmt.Errorf("unsupported image type %q", mimeType)
	}
}
