package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/lukeabraham24777/pipeline-anomaly-detection/internal/ili"
	"github.com/lukeabraham24777/pipeline-anomaly-detection/internal/units"
)

// RunSeries is one run's anomaly population for charting.
type RunSeries struct {
	Year      int
	Anomalies []ili.Anomaly
}

// PairSeries is one matched run pair for charting.
type PairSeries struct {
	BaseYear int
	NewYear  int
	Matches  []ili.Match
}

// WriteChartsHTML renders the report page: one anomaly scatter per run
// (station vs depth) and one growth scatter per matched pair (base station
// vs depth change). Stations are rendered in the requested display unit.
func WriteChartsHTML(path string, runs []RunSeries, pairs []PairSeries, unit string) error {
	page := components.NewPage()
	page.PageTitle = "ILI Alignment Report"

	for _, rs := range runs {
		data := make([]opts.ScatterData, 0, len(rs.Anomalies))
		for _, a := range rs.Anomalies {
			data = append(data, opts.ScatterData{
				Value: []interface{}{units.ConvertDistance(a.Station, unit), a.Depth.OrZero()},
			})
		}

		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "420px"}),
			charts.WithTitleOpts(opts.Title{
				Title:    fmt.Sprintf("Anomalies %d", rs.Year),
				Subtitle: fmt.Sprintf("%d anomalies with baseline station", len(rs.Anomalies)),
			}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
			charts.WithXAxisOpts(opts.XAxis{Name: "station (" + unit + ")", NameLocation: "middle", NameGap: 25}),
			charts.WithYAxisOpts(opts.YAxis{Name: "depth (%)", NameLocation: "middle", NameGap: 30}),
		)
		scatter.AddSeries(fmt.Sprintf("%d", rs.Year), data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))
		page.AddCharts(scatter)
	}

	for _, ps := range pairs {
		data := make([]opts.ScatterData, 0, len(ps.Matches))
		for _, m := range ps.Matches {
			if !m.Base.Depth.Valid || !m.New.Depth.Valid {
				continue
			}
			data = append(data, opts.ScatterData{
				Value: []interface{}{units.ConvertDistance(m.Base.Station, unit), m.New.Depth.V - m.Base.Depth.V},
			})
		}

		g := ili.SummarizeGrowth(ps.Matches)
		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "420px"}),
			charts.WithTitleOpts(opts.Title{
				Title: fmt.Sprintf("Depth growth %d → %d", ps.BaseYear, ps.NewYear),
				Subtitle: fmt.Sprintf("matches=%d depth pairs=%d mean Δdepth=%.2f%%",
					g.Pairs, g.DepthPairs, g.MeanDepthDelta),
			}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
			charts.WithXAxisOpts(opts.XAxis{Name: "station (" + unit + ")", NameLocation: "middle", NameGap: 25}),
			charts.WithYAxisOpts(opts.YAxis{Name: "Δdepth (%)", NameLocation: "middle", NameGap: 30}),
		)
		scatter.AddSeries(fmt.Sprintf("%d-%d", ps.BaseYear, ps.NewYear), data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))
		page.AddCharts(scatter)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}
