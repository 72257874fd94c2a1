package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"shade-store/internal/shades/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CATALOG_DIR", "")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in   string
		want models.Dimension
	}{
		{"36", models.Inches(36, models.FractionZero)},
		{"36 3/8", models.Inches(36, models.FractionThreeEighths)},
		{`36-3/8"`, models.Inches(36, models.FractionThreeEighths)},
		{"40.5", models.Inches(40, models.FractionOneHalf)},
		{"12 0", models.Inches(12, models.FractionZero)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDimension(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Value(), got.Value())
		})
	}

	for _, bad := range []string{"", "abc", "36 5/16", "36.3", "1 2 3"} {
		_, err := ParseDimension(bad)
		assert.Error(t, err, bad)
	}
}

func TestQuote_StandardJSON(t *testing.T) {
	out, err := run(t, "quote", "--dim", "width=36", "--dim", "height=60", "--group", "C", "--json")
	require.NoError(t, err)

	var got struct {
		Quote struct {
			UnitBase float64 `json:"unitBase"`
			Total    float64 `json:"total"`
		} `json:"quote"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 219.0, got.Quote.UnitBase)
	assert.Equal(t, 219.0, got.Quote.Total)
}

func TestQuote_TableOutput(t *testing.T) {
	out, err := run(t, "quote", "--dim", "width=36", "--dim", "height=60", "--group", "C", "--quantity", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Metal Chain")
	assert.Contains(t, out, "$219.00")
	assert.Contains(t, out, "$438.00")
}

func TestQuote_SpecialtyIsMotorized(t *testing.T) {
	out, err := run(t, "quote", "--shape", "pentagon", "--dim", "width=48", "--dim", "leftHeight=40",
		"--dim", "rightHeight=40", "--dim", "centerHeight=60", "--fabric", "fab-003")
	require.NoError(t, err)
	assert.Contains(t, out, "Motorized")
	assert.NotContains(t, out, "incomplete")
}

func TestQuote_Incomplete(t *testing.T) {
	out, err := run(t, "quote", "--dim", "width=36")
	require.NoError(t, err)
	assert.Contains(t, out, "incomplete")
}

func TestQuote_Errors(t *testing.T) {
	_, err := run(t, "quote", "--dim", "width")
	assert.Error(t, err)

	_, err = run(t, "quote", "--fabric", "nope")
	assert.Error(t, err)
}

func TestGrid(t *testing.T) {
	out, err := run(t, "grid")
	require.NoError(t, err)
	assert.Contains(t, out, "specialty")
	assert.Contains(t, out, "C")

	out, err = run(t, "grid", "c")
	require.NoError(t, err)
	assert.Contains(t, out, "Group C")
	assert.Contains(t, out, "219")

	out, err = run(t, "grid", "specialty")
	require.NoError(t, err)
	assert.Contains(t, out, "Specialty")

	_, err = run(t, "grid", "Z")
	assert.Error(t, err)
}

func TestShapesAndFabrics(t *testing.T) {
	out, err := run(t, "shapes")
	require.NoError(t, err)
	assert.Contains(t, out, "flat-top-hexagon")
	assert.Contains(t, out, "specialty")

	out, err = run(t, "fabrics", "--category", "blackout")
	require.NoError(t, err)
	assert.Contains(t, out, "Linen Blackout Ivory")
	assert.NotContains(t, out, "Sheer Voile White")
}
