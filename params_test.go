package spermtrack

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you112ef/spermtrack/tracker"
)

func writeParams(t *testing.T, name, body string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultParamsValid(t *testing.T) {

	p := DefaultParams()
	require.NoError(t, p.Validate())

	assert.Equal(t, tracker.StrategyGreedy, p.Tracker.Strategy)
	assert.Equal(t, 50.0, p.Tracker.MatchDistance)
	assert.Equal(t, 5.0, p.Motility.MotileVelocity)
	assert.Equal(t, 5.0, p.SampleRate)
	assert.InDelta(t, 0.25, p.ConfidenceThreshold, 1e-9)
}

func TestLoadParamsPartialOverride(t *testing.T) {

	path := writeParams(t, "params.json", `{
		"tracker": {"strategy": "optimal"},
		"motility": {"motile_velocity": 8.5},
		"sample_rate": 10
	}`)

	p, err := LoadParams(path)
	require.NoError(t, err)

	assert.Equal(t, tracker.StrategyOptimal, p.Tracker.Strategy)
	// omitted fields keep their defaults
	assert.Equal(t, 50.0, p.Tracker.MatchDistance)
	assert.Equal(t, 8.5, p.Motility.MotileVelocity)
	assert.Equal(t, 10.0, p.SampleRate)
	assert.Equal(t, DefaultParams().Temporal, p.Temporal)
	assert.Equal(t, DefaultParams().Morphology, p.Morphology)
}

func TestLoadParamsErrors(t *testing.T) {

	tests := []struct {
		name string
		file string
		body string
	}{
		{"wrong extension", "params.yaml", `{}`},
		{"bad json", "params.json", `{"sample_rate":`},
		{"unknown strategy", "params.json", `{"tracker": {"strategy": "hungarian"}}`},
		{"negative sample rate", "params.json", `{"sample_rate": -1}`},
		{"confidence out of range", "params.json", `{"confidence_threshold": 1.5}`},
		{"too large", "params.json", `{"pad": "` + strings.Repeat("x", maxParamsFileSize) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadParams(writeParams(t, tt.file, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadParams(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestUnknownStrategyIs(t *testing.T) {

	p := DefaultParams()
	p.Tracker.Strategy = "hungarian"

	assert.ErrorIs(t, p.Validate(), tracker.ErrUnknownStrategy)
}
