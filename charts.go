package spermtrack

import (
	"errors"
	"fmt"

	"github.com/you112ef/spermtrack/analysis"
	"github.com/you112ef/spermtrack/chart"
	"gonum.org/v1/plot"
)

// Charts builds the summary charts of the result.  Charts with nothing to
// show are left out.
func (r *AnalysisResult) Charts(p Params) ([]chart.Named, error) {

	out := make([]chart.Named, 0, 5)

	add := func(name string, build func() (*plot.Plot, error)) error {
		pl, err := build()
		if errors.Is(err, chart.ErrNoData) {
			return nil
		}
		if err != nil {
			return err
		}
		out = append(out, chart.Named{Name: name, Plot: pl})
		return nil
	}

	var errs []error

	switch {
	case r.Image != nil:
		img := r.Image

		errs = append(errs,
			add("quality_distribution", func() (*plot.Plot, error) {
				return chart.QualityDistribution(img.QualityDistribution)
			}),
			add("morphology", func() (*plot.Plot, error) {
				return chart.Morphology(img.MorphologySummary)
			}),
		)

	case r.Video != nil:
		v := r.Video

		errs = append(errs,
			add("count_over_time", func() (*plot.Plot, error) {
				return chart.CountOverTime(v.TimeSeries.Timestamps, v.TimeSeries.Counts)
			}),
			add("motility", func() (*plot.Plot, error) {
				return chart.Motility(analysis.MotilityStats{
					TotalSperm:  v.TotalSperm,
					TotalMotile: v.MotileSperm,
				})
			}),
			add("movement_patterns", func() (*plot.Plot, error) {
				return chart.Movement(v.MovementPatterns)
			}),
			add("velocity_distribution", func() (*plot.Plot, error) {
				return chart.VelocityHistogram(analysis.Velocities(v.Tracks, p.Motility), chart.DefaultBins)
			}),
		)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return out, nil
}

// Report builds the interactive HTML report of the result
func (r *AnalysisResult) Report() (*chart.Report, error) {

	rep := chart.NewReport(fmt.Sprintf("Sperm analysis %s", r.ID))

	switch {
	case r.Image != nil:
		rep.AddQualityDistribution(r.Image.QualityDistribution)
		rep.AddMorphology(r.Image.MorphologySummary)

	case r.Video != nil:
		v := r.Video

		if err := rep.AddCountOverTime(v.TimeSeries.Timestamps, v.TimeSeries.Counts); err != nil {
			return nil, err
		}

		rep.AddMotility(analysis.MotilityStats{
			TotalSperm:  v.TotalSperm,
			TotalMotile: v.MotileSperm,
		})
		rep.AddMovement(v.MovementPatterns)
		rep.AddTrajectories(v.Tracks)
	}

	return rep, nil
}
