package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	StabilityHigh             = "high"
	StabilityModerate         = "moderate"
	StabilityLow              = "low"
	StabilityInsufficientData = "insufficient_data"

	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
	TrendUnknown    = "unknown"
)

// TemporalParams defines the stability bands and trend detection settings
// for a per frame count series
type TemporalParams struct {
	// HighStabilityCV is the coefficient of variation percentage below which
	// stability is high
	HighStabilityCV float64 `json:"high_stability_cv"`
	// ModerateStabilityCV is the coefficient of variation percentage below
	// which stability is moderate
	ModerateStabilityCV float64 `json:"moderate_stability_cv"`
	// TrendMinSamples is the sample count that must be exceeded before a
	// trend line is fitted, shorter series always report stable
	TrendMinSamples int `json:"trend_min_samples"`
	// TrendSlope is the absolute slope in counts per sample beyond which the
	// series is increasing or decreasing
	TrendSlope float64 `json:"trend_slope"`
}

// DefaultTemporalParams returns CV bands of 20 and 40 percent and a trend
// slope of 0.5 fitted on more than 5 samples
func DefaultTemporalParams() TemporalParams {
	return TemporalParams{
		HighStabilityCV:     20,
		ModerateStabilityCV: 40,
		TrendMinSamples:     5,
		TrendSlope:          0.5,
	}
}

// TemporalSummary describes the stability and trend of a count series
type TemporalSummary struct {
	MeanCount              float64 `json:"mean_count"`
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
	Stability              string  `json:"stability"`
	Trend                  string  `json:"trend"`
	MaxCount               int     `json:"max_count"`
	MinCount               int     `json:"min_count"`
	// Slope is the fitted trend line slope, zero when no fit was made
	Slope float64 `json:"-"`
}

// Temporal analyses the ordered per frame counts of a run
func Temporal(counts []int, p TemporalParams) TemporalSummary {

	if len(counts) < 2 {
		return TemporalSummary{
			Stability: StabilityInsufficientData,
			Trend:     TrendUnknown,
		}
	}

	ys := make([]float64, len(counts))
	xs := make([]float64, len(counts))

	for i, c := range counts {
		xs[i] = float64(i)
		ys[i] = float64(c)
	}

	var s TemporalSummary

	mean, std := stat.PopMeanStdDev(ys, nil)
	s.MeanCount = mean

	if mean > 0 {
		s.CoefficientOfVariation = std / mean * 100
	}

	switch {
	case s.CoefficientOfVariation < p.HighStabilityCV:
		s.Stability = StabilityHigh
	case s.CoefficientOfVariation < p.ModerateStabilityCV:
		s.Stability = StabilityModerate
	default:
		s.Stability = StabilityLow
	}

	s.Trend = TrendStable

	if len(counts) > p.TrendMinSamples {
		_, s.Slope = stat.LinearRegression(xs, ys, nil, false)

		switch {
		case s.Slope > p.TrendSlope:
			s.Trend = TrendIncreasing
		case s.Slope < -p.TrendSlope:
			s.Trend = TrendDecreasing
		}
	}

	s.MaxCount = int(floats.Max(ys))
	s.MinCount = int(floats.Min(ys))

	return s
}
