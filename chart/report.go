package chart

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/you112ef/spermtrack/analysis"
	"github.com/you112ef/spermtrack/morphology"
	"github.com/you112ef/spermtrack/tracker"
)

// maxTrajectories caps the number of tracks drawn on the trajectory chart
const maxTrajectories = 50

// Report is an interactive HTML page of charts rendered with ECharts
type Report struct {
	page   *components.Page
	charts int
}

// NewReport returns an empty report with the given page title
func NewReport(title string) *Report {
	page := components.NewPage()
	page.PageTitle = title

	return &Report{page: page}
}

// Len returns the number of charts added to the report
func (r *Report) Len() int {
	return r.charts
}

// Render writes the report as a standalone HTML document
func (r *Report) Render(w io.Writer) error {
	if err := r.page.Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// newBar returns a bar chart of labelled category values
func newBar(title, series string, names []string, values []int) *charts.Bar {

	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries(series, data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	return bar
}

// AddQualityDistribution adds the quality band counts, skipped when empty
func (r *Report) AddQualityDistribution(q morphology.QualityDistribution) {

	if q.Total() == 0 {
		return
	}

	r.page.AddCharts(newBar("Sperm Quality Distribution", "count",
		[]string{"Excellent", "Good", "Fair", "Poor"},
		[]int{q.Excellent, q.Good, q.Fair, q.Poor}))
	r.charts++
}

// AddMorphology adds the morphology class counts, skipped when empty
func (r *Report) AddMorphology(s morphology.Summary) {

	if s.TotalAssessed == 0 {
		return
	}

	r.page.AddCharts(newBar("Morphology Analysis", "count",
		[]string{"Normal", "Acceptable", "Abnormal"},
		[]int{s.NormalCount, s.AcceptableCount, s.AbnormalCount}))
	r.charts++
}

// AddMotility adds motile against non-motile track counts, skipped when
// there are no tracks
func (r *Report) AddMotility(m analysis.MotilityStats) {

	if m.TotalSperm == 0 {
		return
	}

	r.page.AddCharts(newBar("Motility Analysis", "sperm",
		[]string{"Motile", "Non-motile"},
		[]int{m.TotalMotile, m.TotalSperm - m.TotalMotile}))
	r.charts++
}

// AddMovement adds the trajectory class counts, skipped when empty
func (r *Report) AddMovement(s analysis.MovementSummary) {

	if s.TotalTracked == 0 {
		return
	}

	r.page.AddCharts(newBar("Movement Patterns", "tracks",
		[]string{"Linear", "Circular", "Erratic"},
		[]int{s.LinearSwimmers, s.CircularSwimmers, s.ErraticSwimmers}))
	r.charts++
}

// AddCountOverTime adds the per frame detection count as a line against
// the frame time
func (r *Report) AddCountOverTime(timestamps []float64, counts []int) error {

	if len(counts) == 0 {
		return nil
	}

	if len(timestamps) != len(counts) {
		return fmt.Errorf("%d timestamps for %d counts", len(timestamps), len(counts))
	}

	xs := make([]string, len(timestamps))
	data := make([]opts.LineData, len(counts))

	for i, c := range counts {
		xs[i] = fmt.Sprintf("%.1f", timestamps[i])
		data[i] = opts.LineData{Value: c}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Sperm Count Over Time"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)
	line.SetXAxis(xs).AddSeries("count", data)

	r.page.AddCharts(line)
	r.charts++

	return nil
}

// AddTrajectories plots the positions of the longest tracks, one series
// per track
func (r *Report) AddTrajectories(tracks []*tracker.Track) {

	if len(tracks) == 0 {
		return
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Sperm Trajectories",
			Subtitle: fmt.Sprintf("tracks=%d", len(tracks)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (px)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y (px)", NameLocation: "middle", NameGap: 30}),
	)

	for _, tr := range longest(tracks, maxTrajectories) {
		data := make([]opts.ScatterData, len(tr.Positions))

		for j, p := range tr.Positions {
			data[j] = opts.ScatterData{Value: []interface{}{p.X, p.Y}}
		}

		scatter.AddSeries(tr.ID, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	}

	r.page.AddCharts(scatter)
	r.charts++
}

// longest returns up to n tracks with the most positions, keeping creation
// order among tracks of equal length
func longest(tracks []*tracker.Track, n int) []*tracker.Track {

	if len(tracks) <= n {
		return tracks
	}

	sorted := append([]*tracker.Track(nil), tracks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Len() > sorted[j].Len()
	})

	return sorted[:n]
}
