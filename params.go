package spermtrack

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/you112ef/spermtrack/analysis"
	"github.com/you112ef/spermtrack/morphology"
	"github.com/you112ef/spermtrack/tracker"
)

// maxParamsFileSize caps the size of a parameters file
const maxParamsFileSize = 1 * 1024 * 1024

// Params defines the configuration of an analysis run
type Params struct {
	Tracker    tracker.Params          `json:"tracker"`
	Motility   analysis.MotilityParams `json:"motility"`
	Movement   analysis.MovementParams `json:"movement"`
	Temporal   analysis.TemporalParams `json:"temporal"`
	Morphology morphology.Params       `json:"morphology"`
	// SampleRate is the number of video frames analysed per second of video
	SampleRate float64 `json:"sample_rate"`
	// ConfidenceThreshold is the minimum detector probability kept for
	// analysis
	ConfidenceThreshold float32 `json:"confidence_threshold"`
}

// DefaultParams returns the configuration used when none is supplied
func DefaultParams() Params {
	return Params{
		Tracker:             tracker.DefaultParams(),
		Motility:            analysis.DefaultMotilityParams(),
		Movement:            analysis.DefaultMovementParams(),
		Temporal:            analysis.DefaultTemporalParams(),
		Morphology:          morphology.DefaultParams(),
		SampleRate:          5,
		ConfidenceThreshold: 0.25,
	}
}

// Validate checks the parameters are usable
func (p Params) Validate() error {

	if err := p.Tracker.Validate(); err != nil {
		return fmt.Errorf("tracker: %w", err)
	}

	if p.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %v", p.SampleRate)
	}

	if p.ConfidenceThreshold < 0 || p.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold must be within [0, 1], got %v", p.ConfidenceThreshold)
	}

	if p.Motility.MotileVelocity < 0 {
		return fmt.Errorf("motile velocity must not be negative, got %v", p.Motility.MotileVelocity)
	}

	if p.Movement.CircularStraightness > p.Movement.LinearStraightness {
		return fmt.Errorf("circular straightness %v exceeds linear straightness %v",
			p.Movement.CircularStraightness, p.Movement.LinearStraightness)
	}

	if p.Movement.MinPoints < 2 {
		return fmt.Errorf("movement min points must be at least 2, got %d", p.Movement.MinPoints)
	}

	if p.Temporal.HighStabilityCV > p.Temporal.ModerateStabilityCV {
		return fmt.Errorf("high stability CV %v exceeds moderate stability CV %v",
			p.Temporal.HighStabilityCV, p.Temporal.ModerateStabilityCV)
	}

	if p.Morphology.ReferenceConcentration <= 0 {
		return fmt.Errorf("reference concentration must be positive, got %v",
			p.Morphology.ReferenceConcentration)
	}

	return nil
}

// LoadParams reads parameters from a JSON file.  Fields absent from the file
// keep their default values.
func LoadParams(path string) (Params, error) {

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Params{}, fmt.Errorf("params file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return Params{}, fmt.Errorf("failed to stat params file: %w", err)
	}

	if info.Size() > maxParamsFileSize {
		return Params{}, fmt.Errorf("params file too large: %d bytes (max %d)",
			info.Size(), maxParamsFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read params file: %w", err)
	}

	p := DefaultParams()
	if err := json.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("failed to parse params JSON: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Params{}, fmt.Errorf("invalid params: %w", err)
	}

	return p, nil
}
