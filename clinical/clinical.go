// Package clinical maps aggregate sample metrics to fixed band, human
// readable interpretation text and motility classes.
package clinical

import (
	"fmt"
	"strings"
)

const (
	MotilityNormal      = "normal"
	MotilityBelowNormal = "below_normal"
	MotilityLow         = "low"
	MotilityVeryLow     = "very_low"
)

const (
	// separator joins interpretation sentences
	separator = "; "

	// DefaultReferenceConcentration is the WHO lower reference
	// concentration per ml
	DefaultReferenceConcentration = 15000000
)

// InterpretImage describes the concentration per ml and average
// morphological quality of a still image.  Concentration is normal from
// reference upwards and slightly below normal from two thirds of it, a
// reference of zero or less uses DefaultReferenceConcentration.
func InterpretImage(concentration, quality, reference float64) string {

	if reference <= 0 {
		reference = DefaultReferenceConcentration
	}

	lines := make([]string, 0, 2)

	switch {
	case concentration >= reference:
		lines = append(lines, fmt.Sprintf("Normal sperm concentration (≥%gM/ml)", reference/1000000))
	case concentration >= reference*2/3:
		lines = append(lines, "Slightly below normal concentration")
	default:
		lines = append(lines, "Low sperm concentration (oligozoospermia)")
	}

	switch {
	case quality >= 0.8:
		lines = append(lines, "Excellent morphological quality")
	case quality >= 0.6:
		lines = append(lines, "Good morphological quality")
	case quality >= 0.4:
		lines = append(lines, "Fair morphological quality")
	default:
		lines = append(lines, "Poor morphological quality")
	}

	return strings.Join(lines, separator)
}

// InterpretVideo describes the motility percentage and average swimming
// velocity in pixels per second of a video
func InterpretVideo(motilityPct, velocity float64) string {

	lines := make([]string, 0, 2)

	switch {
	case motilityPct >= 40:
		lines = append(lines, "Normal sperm motility (≥40%)")
	case motilityPct >= 30:
		lines = append(lines, "Slightly reduced motility")
	default:
		lines = append(lines, "Reduced sperm motility (asthenozoospermia)")
	}

	switch {
	case velocity >= 20:
		lines = append(lines, "Good swimming velocity")
	case velocity >= 10:
		lines = append(lines, "Moderate swimming velocity")
	default:
		lines = append(lines, "Low swimming velocity")
	}

	return strings.Join(lines, separator)
}

// ClassifyMotility returns the motility class of a motility percentage,
// normal from the WHO reference of 40%
func ClassifyMotility(pct float64) string {
	switch {
	case pct >= 40:
		return MotilityNormal
	case pct >= 30:
		return MotilityBelowNormal
	case pct >= 20:
		return MotilityLow
	}
	return MotilityVeryLow
}
