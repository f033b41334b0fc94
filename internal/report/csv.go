// Package report writes the pipeline's output artifacts: per-run aligned
// and anomaly tables as CSV, side-by-side match tables, an HTML chart page,
// and odometer-drift profile plots.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/lukeabraham24777/pipeline-anomaly-detection/internal/ili"
)

// fmtFloat renders a nullable number; missing values become empty cells so
// a round-trip through the loader reads them back as missing.
func fmtFloat(f ili.Float) string {
	if !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.V, 'f', -1, 64)
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteAlignedCSV writes a run's aligned table with the fixed column list.
func WriteAlignedCSV(path string, recs []ili.AlignedRecord) error {
	rows := [][]string{{
		"station_base_ft", "raw_dist_ft", "joint", "dus_ft", "joint_len_ft",
		"event", "depth_pct", "length_in", "width_in", "clock",
	}}
	for _, r := range recs {
		rows = append(rows, []string{
			fmtFloat(r.Station), fmtFloat(r.RawDist), fmtFloat(r.Joint),
			fmtFloat(r.DUS), fmtFloat(r.JointLen), r.Event,
			fmtFloat(r.Depth), fmtFloat(r.Length), fmtFloat(r.Width), r.Clock,
		})
	}
	return writeCSV(path, rows)
}

// WriteAnomaliesCSV writes a run's extracted anomaly table.
func WriteAnomaliesCSV(path string, anomalies []ili.Anomaly) error {
	rows := [][]string{{
		"id", "year", "station_base_ft", "joint", "p_in_joint",
		"event", "event_norm", "depth_pct", "length_in", "width_in", "clock",
	}}
	for _, a := range anomalies {
		rows = append(rows, []string{
			a.ID, strconv.Itoa(a.Year), fmtF(a.Station), fmtFloat(a.Joint),
			fmtFloat(a.PInJoint), a.Event, a.EventNorm,
			fmtFloat(a.Depth), fmtFloat(a.Length), fmtFloat(a.Width), a.Clock,
		})
	}
	return writeCSV(path, rows)
}

// WriteMatchesCSV writes a matched run pair side-by-side: match columns
// first, then the full attribute set of the new-run endpoint, then the
// base-run endpoint, columns prefixed by source year.
func WriteMatchesCSV(path string, matches []ili.Match, baseYear, newYear int) error {
	sideCols := func(year int) []string {
		p := fmt.Sprintf("y%d_", year)
		return []string{
			p + "id", p + "station_base_ft", p + "joint", p + "p_in_joint",
			p + "event", p + "depth_pct", p + "length_in", p + "width_in", p + "clock",
		}
	}
	side := func(a ili.Anomaly) []string {
		return []string{
			a.ID, fmtF(a.Station), fmtFloat(a.Joint), fmtFloat(a.PInJoint),
			a.Event, fmtFloat(a.Depth), fmtFloat(a.Length), fmtFloat(a.Width), a.Clock,
		}
	}

	header := []string{"cost", "delta_station_ft"}
	header = append(header, sideCols(newYear)...)
	header = append(header, sideCols(baseYear)...)

	rows := [][]string{header}
	for _, m := range matches {
		row := []string{fmtF(m.Cost), fmtF(m.DeltaStation)}
		row = append(row, side(m.New)...)
		row = append(row, side(m.Base)...)
		rows = append(rows, row)
	}
	return writeCSV(path, rows)
}
