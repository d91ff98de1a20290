package spermtrack

import (
	"github.com/you112ef/spermtrack/clinical"
	"github.com/you112ef/spermtrack/morphology"
	"github.com/you112ef/spermtrack/postprocess/result"
)

// SummarizeImage aggregates the morphology assessments of every detection
// in a width x height image.  An empty assessment list yields zero valued
// aggregates along with the low concentration interpretation.
func SummarizeImage(assessments []morphology.Assessment, width, height int, p Params) ImageResult {

	count := len(assessments)
	scores := morphology.Scores(assessments)

	quality := morphology.AverageQuality(scores)
	concentration := morphology.Concentration(count, p.Morphology)

	return ImageResult{
		SpermCount:             count,
		Density:                morphology.Density(count, width, height),
		ConcentrationPerML:     concentration,
		AverageQuality:         quality,
		QualityDistribution:    morphology.Distribution(scores),
		MorphologySummary:      morphology.Summarize(morphology.Classes(assessments)),
		ViabilityAssessment:    morphology.Assess(concentration, quality, p.Morphology),
		ClinicalInterpretation: clinical.InterpretImage(concentration, quality, p.Morphology.ReferenceConcentration),
		Width:                  width,
		Height:                 height,
		Detections:             []DetectionRecord{},
	}
}

// detectionRecords pairs each detection with its assessment
func detectionRecords(dets []result.DetectResult, assessments []morphology.Assessment) []DetectionRecord {

	out := make([]DetectionRecord, len(dets))

	for i, d := range dets {
		a := assessments[i]

		out[i] = DetectionRecord{
			ID:           d.ID,
			BBox:         [4]float32{d.Box.Left, d.Box.Top, d.Box.Right, d.Box.Bottom},
			Confidence:   d.Probability,
			AspectRatio:  a.Shape.AspectRatio,
			Area:         a.Shape.Area,
			Circularity:  a.Shape.Circularity,
			Morphology:   a.Class,
			QualityScore: a.QualityScore,
		}
	}

	return out
}
