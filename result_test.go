package spermtrack

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you112ef/spermtrack/morphology"
	"github.com/you112ef/spermtrack/tracker"
)

func TestSummarizeImageViability(t *testing.T) {

	p := DefaultParams()

	// 2000 detections estimate 20M/ml
	assessments := make([]morphology.Assessment, 2000)
	for i := range assessments {
		assessments[i] = morphology.Assessment{Class: morphology.Normal, QualityScore: 0.9}
	}

	res := SummarizeImage(assessments, 1000, 1000, p)

	assert.Equal(t, 2000, res.SpermCount)
	assert.InDelta(t, 20000000.0, res.ConcentrationPerML, 1e-6)
	assert.InDelta(t, 0.9, res.AverageQuality, 1e-9)
	assert.InDelta(t, 94.0, res.ViabilityAssessment.ViabilityScore, 1e-9)
	assert.Equal(t, morphology.ViabilityExcellent, res.ViabilityAssessment.Assessment)
	assert.True(t, res.ViabilityAssessment.MeetsWHOStandards)
	assert.Equal(t, 2000, res.QualityDistribution.Excellent)
	assert.Equal(t, 100.0, res.MorphologySummary.NormalPercentage)
	assert.Equal(t, "Normal sperm concentration (≥15M/ml); Excellent morphological quality",
		res.ClinicalInterpretation)
}

func TestSummarizeImageReferenceConcentration(t *testing.T) {

	p := DefaultParams()
	p.Morphology.ReferenceConcentration = 20000000

	// 1600 detections estimate 16M/ml, under the raised reference
	assessments := make([]morphology.Assessment, 1600)
	for i := range assessments {
		assessments[i] = morphology.Assessment{Class: morphology.Normal, QualityScore: 0.9}
	}

	res := SummarizeImage(assessments, 1000, 1000, p)

	assert.InDelta(t, 16000000.0, res.ConcentrationPerML, 1e-6)
	assert.False(t, res.ViabilityAssessment.MeetsWHOStandards)
	assert.Equal(t, "Slightly below normal concentration; Excellent morphological quality",
		res.ClinicalInterpretation)
}

func TestAnalysisResultJSON(t *testing.T) {

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	res := AnalysisResult{
		ID:        uuid.MustParse("6f1c2a44-2f0e-4b57-9c1a-7e3e0d6c5b10"),
		Kind:      VideoAnalysis,
		CreatedAt: created,
		Video: &VideoResult{
			Duration:               12.5,
			FPS:                    30,
			TotalSperm:             4,
			MotileSperm:            3,
			MotilityPercentage:     75,
			MotilityClassification: "normal",
		},
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))

	assert.Equal(t, "6f1c2a44-2f0e-4b57-9c1a-7e3e0d6c5b10", flat["analysis_id"])
	assert.Equal(t, "video_analysis", flat["type"])
	assert.Equal(t, "2024-03-01T12:00:00Z", flat["timestamp"])
	assert.Equal(t, 4.0, flat["total_sperm"])
	assert.Equal(t, 3.0, flat["motile_sperm"])
	assert.Equal(t, 75.0, flat["motility_percentage"])
	assert.Contains(t, flat, "movement_patterns")
	assert.Contains(t, flat, "temporal_analysis")
	assert.NotContains(t, flat, "sperm_count")

	var back AnalysisResult
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, res.ID, back.ID)
	assert.Equal(t, VideoAnalysis, back.Kind)
	assert.True(t, created.Equal(back.CreatedAt))
	assert.Nil(t, back.Image)
	require.NotNil(t, back.Video)
	assert.Equal(t, 12.5, back.Video.Duration)
	assert.Equal(t, 3, back.Video.MotileSperm)
}

func TestAnalysisResultJSONImage(t *testing.T) {

	res := newImageResult(SummarizeImage(nil, 640, 480, DefaultParams()))

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))

	assert.Equal(t, "image_analysis", flat["type"])
	assert.Equal(t, 0.0, flat["sperm_count"])
	assert.Contains(t, flat, "quality_distribution")
	assert.Contains(t, flat, "morphology_summary")
	assert.Contains(t, flat, "viability_assessment")
	assert.Equal(t, []any{}, flat["detections"])
}

func TestAnalysisResultJSONMissingPayload(t *testing.T) {

	_, err := json.Marshal(AnalysisResult{Kind: ImageAnalysis})
	assert.Error(t, err)

	_, err = json.Marshal(AnalysisResult{Kind: "audio"})
	assert.Error(t, err)

	var r AnalysisResult
	assert.Error(t, json.Unmarshal([]byte(`{"type":"audio"}`), &r))
}

func TestChartsSkipEmpty(t *testing.T) {

	res := newImageResult(SummarizeImage(nil, 640, 480, DefaultParams()))

	charts, err := res.Charts(DefaultParams())
	require.NoError(t, err)
	assert.Empty(t, charts)
}

func TestChartsImage(t *testing.T) {

	assessments := []morphology.Assessment{
		{Class: morphology.Normal, QualityScore: 0.9},
		{Class: morphology.Abnormal, QualityScore: 0.3},
	}

	res := newImageResult(SummarizeImage(assessments, 640, 480, DefaultParams()))

	charts, err := res.Charts(DefaultParams())
	require.NoError(t, err)
	require.Len(t, charts, 2)
	assert.Equal(t, "quality_distribution", charts[0].Name)
	assert.Equal(t, "morphology", charts[1].Name)
}

func TestReportVideo(t *testing.T) {

	res := AnalysisResult{
		ID:   uuid.MustParse("6f1c2a44-2f0e-4b57-9c1a-7e3e0d6c5b10"),
		Kind: VideoAnalysis,
		Video: &VideoResult{
			TotalSperm:  1,
			MotileSperm: 1,
			TimeSeries:  TimeSeries{Timestamps: []float64{0, 0.2}, Counts: []int{1, 1}},
			Tracks: []*tracker.Track{
				{ID: "track_1", Positions: []tracker.Point{{X: 0, Y: 0}, {X: 5, Y: 0}}},
			},
		},
	}

	rep, err := res.Report()
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Len())

	var buf bytes.Buffer
	require.NoError(t, rep.Render(&buf))
	assert.Contains(t, buf.String(), "6f1c2a44-2f0e-4b57-9c1a-7e3e0d6c5b10")
}

func TestReportCountMismatch(t *testing.T) {

	res := newVideoResult(VideoResult{
		TimeSeries: TimeSeries{Timestamps: []float64{0}, Counts: []int{1, 2}},
	})

	_, err := res.Report()
	assert.Error(t, err)
}
