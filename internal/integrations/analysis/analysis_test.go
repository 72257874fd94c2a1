package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	reply := "```json\n" + `{"style":"Mid-century","lighting":"bright","palette":["walnut","sage"],"suggestions":["Light Filtering"],"summary":"Warm wood tones."}` + "\n```"

	got, err := ParseResponse(reply)
	require.NoError(t, err)
	assert.Equal(t, "Mid-century", got.Style)
	assert.Equal(t, []string{"walnut", "sage"}, got.Palette)
	assert.Equal(t, []string{"Light Filtering"}, got.Suggestions)
}

func TestParseResponse_Errors(t *testing.T) {
	for _, reply := range []string{"", "```json\n```", "not json", `{"palette":["red"]}`} {
		_, err := ParseResponse(reply)
		assert.Error(t, err, reply)
	}
}

func TestImageFormat(t *testing.T) {
	f, err := imageFormat("image/JPEG")
	require.NoError(t, err)
	assert.Equal(t, "jpeg", f)

	_, err = imageFormat("application/pdf")
	assert.Error(t, err)
}

func TestGemini_NoKeyIsUnavailable(t *testing.T) {
	g := NewGemini("", "")

	_, err := g.Analyze(context.Background(), []byte{0xff}, "image/jpeg")
	assert.ErrorIs(t, err, ErrAnalysisUnavailable)
	assert.Equal(t, DefaultModel, g.model)
}
