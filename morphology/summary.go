package morphology

import (
	"gonum.org/v1/gonum/stat"
)

// QualityDistribution buckets quality scores into bands
type QualityDistribution struct {
	Excellent    int     `json:"excellent"`
	Good         int     `json:"good"`
	Fair         int     `json:"fair"`
	Poor         int     `json:"poor"`
	AverageScore float64 `json:"average_score"`
	StdDeviation float64 `json:"std_deviation"`
}

// Total returns the number of scores bucketed
func (q QualityDistribution) Total() int {
	return q.Excellent + q.Good + q.Fair + q.Poor
}

// Summary counts the morphology classes of an image, unclear detections are
// counted as abnormal
type Summary struct {
	NormalCount        int     `json:"normal_count"`
	AcceptableCount    int     `json:"acceptable_count"`
	AbnormalCount      int     `json:"abnormal_count"`
	NormalPercentage   float64 `json:"normal_percentage"`
	AbnormalPercentage float64 `json:"abnormal_percentage"`
	TotalAssessed      int     `json:"total_assessed"`
}

// Viability is the composite viability verdict of a sample
type Viability struct {
	ViabilityScore    float64 `json:"viability_score"`
	Assessment        string  `json:"assessment"`
	MeetsWHOStandards bool    `json:"meets_who_standards"`
}

const (
	ViabilityExcellent = "Excellent"
	ViabilityGood      = "Good"
	ViabilityFair      = "Fair"
	ViabilityPoor      = "Poor"
)

// Scores returns the quality score of each assessment
func Scores(assessments []Assessment) []float64 {
	out := make([]float64, len(assessments))
	for i, a := range assessments {
		out[i] = a.QualityScore
	}
	return out
}

// Classes returns the morphology class of each assessment
func Classes(assessments []Assessment) []Class {
	out := make([]Class, len(assessments))
	for i, a := range assessments {
		out[i] = a.Class
	}
	return out
}

// AverageQuality returns the mean quality score, 0 for no scores
func AverageQuality(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	return stat.Mean(scores, nil)
}

// Distribution buckets scores at 0.8 excellent, 0.6 good and 0.4 fair with
// everything lower poor, and reports the mean and population standard
// deviation
func Distribution(scores []float64) QualityDistribution {

	var q QualityDistribution

	if len(scores) == 0 {
		return q
	}

	for _, s := range scores {
		switch {
		case s >= 0.8:
			q.Excellent++
		case s >= 0.6:
			q.Good++
		case s >= 0.4:
			q.Fair++
		default:
			q.Poor++
		}
	}

	q.AverageScore, q.StdDeviation = stat.PopMeanStdDev(scores, nil)

	return q
}

// Summarize counts morphology classes
func Summarize(classes []Class) Summary {

	s := Summary{
		TotalAssessed: len(classes),
	}

	if s.TotalAssessed == 0 {
		return s
	}

	for _, c := range classes {
		switch c {
		case Normal:
			s.NormalCount++
		case Acceptable:
			s.AcceptableCount++
		}
	}

	s.AbnormalCount = s.TotalAssessed - s.NormalCount - s.AcceptableCount
	s.NormalPercentage = float64(s.NormalCount) / float64(s.TotalAssessed) * 100
	s.AbnormalPercentage = float64(s.AbnormalCount) / float64(s.TotalAssessed) * 100

	return s
}

// Density returns the detections per million square pixels of the image
func Density(count, width, height int) float64 {

	area := float64(width) * float64(height)

	if area <= 0 {
		return 0
	}

	return float64(count) / (area / 1000000)
}

// Concentration estimates cells per ml from a detection count.  This is a
// fixed linear heuristic assuming a standard dilution and field of view, not
// a calibrated measurement.
func Concentration(count int, p Params) float64 {
	return float64(count) * p.CellsPerMLPerDetection
}

// Assess blends concentration (40 points, full marks at the reference
// concentration) with average quality (60 points) into a 0 to 100 score
func Assess(concentration, quality float64, p Params) Viability {

	var score float64

	if concentration >= p.ReferenceConcentration {
		score = 40
	} else if p.ReferenceConcentration > 0 {
		score = concentration / p.ReferenceConcentration * 40
	}

	score = clamp(score+quality*60, 0, 100)

	v := Viability{
		ViabilityScore:    score,
		MeetsWHOStandards: concentration >= p.ReferenceConcentration && quality >= p.ReferenceQuality,
	}

	switch {
	case score >= 80:
		v.Assessment = ViabilityExcellent
	case score >= 60:
		v.Assessment = ViabilityGood
	case score >= 40:
		v.Assessment = ViabilityFair
	default:
		v.Assessment = ViabilityPoor
	}

	return v
}
