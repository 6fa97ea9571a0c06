package scenedebug

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// StageStat is one row of the cumulative HTML report: a stage's
// vertex/face counts and, when it survived a trim/cull step, the
// fraction of faces that made it through.
type StageStat struct {
	Stage         string
	Vertices      int
	Faces         int
	SurvivalRatio float64 // faces-after / faces-before of the preceding stage; 0 when not applicable
}

// WriteReport renders one HTML page summarizing stats, in the manner
// of the teacher's handleTrafficChart/handleSweepDashboard: a
// components.Page wrapping a bar chart, written once to w.
func WriteReport(w io.Writer, stats []StageStat) error {
	labels := make([]string, len(stats))
	vertexBars := make([]opts.BarData, len(stats))
	faceBars := make([]opts.BarData, len(stats))
	survivalBars := make([]opts.BarData, len(stats))
	for i, s := range stats {
		labels[i] = s.Stage
		vertexBars[i] = opts.BarData{Value: s.Vertices}
		faceBars[i] = opts.BarData{Value: s.Faces}
		survivalBars[i] = opts.BarData{Value: s.SurvivalRatio * 100}
	}

	counts := charts.NewBar()
	counts.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Scene reconstruction debug report", Width: "1100px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Vertex / face counts by stage"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	counts.SetXAxis(labels).
		AddSeries("vertices", vertexBars).
		AddSeries("faces", faceBars, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))

	survival := charts.NewBar()
	survival.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Trim survival", Width: "1100px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Face survival ratio by stage (%)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Max: 100, Name: "%"}),
	)
	survival.SetXAxis(labels).
		AddSeries("survival %", survivalBars, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))

	page := components.NewPage()
	page.AddCharts(counts, survival)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("scenedebug: render report: %w", err)
	}
	return nil
}
