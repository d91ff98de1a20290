// Package chart renders the summary charts of an analysis.  Static charts
// are built with gonum/plot, each constructor returning a *plot.Plot which
// can be saved to a file, with the format taken from the file extension, or
// written to any io.Writer.  Report collects interactive ECharts versions of
// the same charts into a single HTML page.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/you112ef/spermtrack/analysis"
	"github.com/you112ef/spermtrack/morphology"
	"github.com/you112ef/spermtrack/render"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when there is nothing to plot
var ErrNoData = errors.New("no data to plot")

const (
	// Width and Height are the default dimensions of saved charts
	Width  = 8 * vg.Inch
	Height = 5 * vg.Inch

	// DefaultBins is the default number of velocity histogram bins
	DefaultBins = 10
)

// Named pairs a chart with the base file name it is saved under
type Named struct {
	Name string
	Plot *plot.Plot
}

// bars builds a bar chart with one colored bar per category
func bars(title, yLabel string, names []string, values []float64,
	colors []color.Color) (*plot.Plot, error) {

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.Y.Min = 0

	for i, v := range values {
		bar, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(40))
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", names[i], err)
		}

		bar.XMin = float64(i)
		bar.Color = colors[i%len(colors)]
		bar.LineStyle.Width = 0

		p.Add(bar)
	}

	p.NominalX(names...)

	return p, nil
}

// QualityDistribution charts the number of detections in each quality band
func QualityDistribution(q morphology.QualityDistribution) (*plot.Plot, error) {

	if q.Total() == 0 {
		return nil, ErrNoData
	}

	return bars("Sperm Quality Distribution", "Count",
		[]string{"Excellent", "Good", "Fair", "Poor"},
		[]float64{float64(q.Excellent), float64(q.Good), float64(q.Fair), float64(q.Poor)},
		[]color.Color{render.Green, render.Blue, render.Orange, render.Red},
	)
}

// Morphology charts the normal, acceptable and abnormal class counts
func Morphology(s morphology.Summary) (*plot.Plot, error) {

	if s.TotalAssessed == 0 {
		return nil, ErrNoData
	}

	return bars("Morphology Analysis", "Count",
		[]string{"Normal", "Acceptable", "Abnormal"},
		[]float64{float64(s.NormalCount), float64(s.AcceptableCount), float64(s.AbnormalCount)},
		[]color.Color{render.Green, render.Orange, render.Red},
	)
}

// Motility charts motile against non-motile tracks
func Motility(m analysis.MotilityStats) (*plot.Plot, error) {

	if m.TotalSperm == 0 {
		return nil, ErrNoData
	}

	return bars("Motility Analysis", "Sperm",
		[]string{"Motile", "Non-motile"},
		[]float64{float64(m.TotalMotile), float64(m.TotalSperm - m.TotalMotile)},
		[]color.Color{render.Green, render.Red},
	)
}

// Movement charts the trajectory class counts
func Movement(s analysis.MovementSummary) (*plot.Plot, error) {

	if s.TotalTracked == 0 {
		return nil, ErrNoData
	}

	return bars("Movement Patterns", "Tracks",
		[]string{"Linear", "Circular", "Erratic"},
		[]float64{float64(s.LinearSwimmers), float64(s.CircularSwimmers), float64(s.ErraticSwimmers)},
		[]color.Color{render.Green, render.Blue, render.Orange},
	)
}

// CountOverTime charts the per frame detection count against the frame
// timestamp in seconds
func CountOverTime(timestamps []float64, counts []int) (*plot.Plot, error) {

	if len(counts) == 0 {
		return nil, ErrNoData
	}

	if len(timestamps) != len(counts) {
		return nil, fmt.Errorf("%d timestamps for %d counts", len(timestamps), len(counts))
	}

	pts := make(plotter.XYs, len(counts))

	for i, c := range counts {
		pts[i] = plotter.XY{X: timestamps[i], Y: float64(c)}
	}

	p := plot.New()
	p.Title.Text = "Sperm Count Over Time"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Count"
	p.Y.Min = 0

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("count line: %w", err)
	}

	line.Color = render.Blue
	line.Width = vg.Points(2)
	line.FillColor = color.RGBA{R: render.Blue.R, G: render.Blue.G, B: render.Blue.B, A: 80}

	p.Add(line)

	return p, nil
}

// VelocityHistogram charts the distribution of track velocities in pixels
// per second over the given number of equal width bins
func VelocityHistogram(velocities []float64, bins int) (*plot.Plot, error) {

	if len(velocities) == 0 {
		return nil, ErrNoData
	}

	if bins <= 0 {
		bins = DefaultBins
	}

	counts, low, width := histogram(velocities, bins)

	p := plot.New()
	p.Title.Text = "Velocity Distribution"
	p.X.Label.Text = "Velocity (px/s)"
	p.Y.Label.Text = "Tracks"
	p.Y.Min = 0

	names := make([]string, bins)
	for i := range names {
		names[i] = fmt.Sprintf("%.0f", low+float64(i)*width)
	}

	bar, err := plotter.NewBarChart(counts, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("velocity bars: %w", err)
	}

	bar.Color = render.Blue
	bar.LineStyle.Width = 0

	p.Add(bar)
	p.NominalX(names...)

	return p, nil
}

// histogram counts values into n equal width bins spanning the value range
// and returns the counts, the low edge and the bin width.  The maximum value
// falls into the last bin.
func histogram(values []float64, n int) (plotter.Values, float64, float64) {

	low := floats.Min(values)
	high := floats.Max(values)

	width := (high - low) / float64(n)
	if width == 0 {
		width = 1
	}

	counts := make(plotter.Values, n)

	for _, v := range values {
		i := int((v - low) / width)
		if i >= n {
			i = n - 1
		}
		counts[i]++
	}

	return counts, low, width
}

// Save writes the chart to file at the default dimensions, the image format
// is chosen by the file extension
func Save(p *plot.Plot, file string) error {
	if err := p.Save(Width, Height, file); err != nil {
		return fmt.Errorf("save chart %s: %w", file, err)
	}
	return nil
}

// Write renders the chart in the given format (png, svg, pdf...) to w
func Write(p *plot.Plot, w io.Writer, format string) error {

	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return fmt.Errorf("chart writer: %w", err)
	}

	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}

	return nil
}

// SaveAll saves each chart as a PNG named after it in dir, creating dir if
// needed, and returns the written file paths
func SaveAll(dir string, charts []Named) ([]string, error) {

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	files := make([]string, 0, len(charts))

	for _, c := range charts {
		file := filepath.Join(dir, c.Name+".png")

		if err := Save(c.Plot, file); err != nil {
			return files, err
		}

		files = append(files, file)
	}

	return files, nil
}
