// Command gen-ili generates synthetic ILI survey CSVs (plus a matching
// pipeline config) so the alignment pipeline can be demoed end-to-end
// without proprietary survey data.
//
// It simulates one pipeline surveyed in 2007, 2015 and 2022: the 2015 and
// 2022 runs share reliable joint numbering, while the 2007 run has shifted
// joint numbers and an odometer with multiplicative drift, exercising the
// weld-sequence fallback aligner. Anomaly depths grow between runs.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
)

type anomaly struct {
	joint     int     // index into joint slice
	dus       float64 // ft from upstream weld
	event     string
	depth     float64 // % at first appearance
	growth    float64 // % added per later run
	length    float64 // in
	width     float64 // in
	clock     string
	firstYear int // earliest run that sees it
}

var anomalyEvents = []string{
	"Metal Loss - Corrosion",
	"Metal Loss Cluster",
	"Dent",
	"Manufacturing Anomaly",
	"Seam Weld Anomaly",
}

func main() {
	outDir := flag.String("o", "sample", "output directory")
	nJoints := flag.Int("joints", 120, "number of pipe joints")
	nAnomalies := flag.Int("anomalies", 60, "number of anomalies")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	// Joint lengths around a nominal 40 ft stick.
	lens := make([]float64, *nJoints)
	starts := make([]float64, *nJoints)
	s := 0.0
	for i := range lens {
		lens[i] = 36 + 8*rng.Float64()
		starts[i] = s
		s += lens[i]
	}

	anomalies := make([]anomaly, *nAnomalies)
	for i := range anomalies {
		j := rng.Intn(*nJoints)
		firstYear := 2007
		if rng.Float64() < 0.3 {
			firstYear = 2015 // grew in after the first survey
		}
		anomalies[i] = anomaly{
			joint:     j,
			dus:       rng.Float64() * lens[j],
			event:     anomalyEvents[rng.Intn(len(anomalyEvents))],
			depth:     10 + 25*rng.Float64(),
			growth:    2 + 6*rng.Float64(),
			length:    1 + 9*rng.Float64(),
			width:     1 + 9*rng.Float64(),
			clock:     fmt.Sprintf("%02d:%02d", 1+rng.Intn(12), rng.Intn(60)),
			firstYear: firstYear,
		}
	}
	sort.Slice(anomalies, func(a, b int) bool {
		return starts[anomalies[a].joint]+anomalies[a].dus < starts[anomalies[b].joint]+anomalies[b].dus
	})

	// 2007 odometer drifts multiplicatively plus jitter.
	drift := func(station float64) float64 {
		return station*1.0035 + 0.3*rng.NormFloat64()
	}

	write := func(name string, rows [][]string) {
		path := filepath.Join(*outDir, name)
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("create %s: %v", path, err)
		}
		w := csv.NewWriter(f)
		if err := w.WriteAll(rows); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		f.Close()
		log.Printf("wrote %s (%d rows)", path, len(rows)-1)
	}

	f6 := func(v float64) string { return fmt.Sprintf("%.3f", v) }

	// 2015 and 2022: reliable joint numbering, "GirthWeld" markers.
	for _, year := range []int{2015, 2022} {
		var rows [][]string
		if year == 2015 {
			rows = append(rows, []string{"J. no.", "J. len [ft]", "to u/s w. [ft]", "Log Dist. [ft]", "Event Description", "Depth [%]", "Length [in]", "Width [in]", "O'clock"})
		} else {
			rows = append(rows, []string{"Joint Number", "Joint Length [ft]", "Distance to U/S GW [ft]", "ILI Wheel Count [ft.]", "Event Description", "Metal Loss Depth [%]", "Length [in]", "Width [in]", "O'clock [hh:mm]"})
		}
		for j := 0; j < *nJoints; j++ {
			raw := starts[j] + 0.05*rng.NormFloat64()
			rows = append(rows, []string{fmt.Sprint(j + 1), f6(lens[j]), "0", f6(raw), "GirthWeld", "", "", "", ""})
			for _, a := range anomalies {
				if a.joint != j || a.firstYear > year {
					continue
				}
				depth := a.depth
				if year == 2022 {
					depth += a.growth
				}
				// Anomaly rows frequently omit joint length.
				jlen := ""
				if rng.Float64() < 0.3 {
					jlen = f6(lens[j])
				}
				rows = append(rows, []string{
					fmt.Sprint(j + 1), jlen, f6(a.dus), f6(starts[j] + a.dus),
					a.event, f6(depth), f6(a.length), f6(a.width), a.clock,
				})
			}
		}
		write(fmt.Sprintf("%d.csv", year), rows)
	}

	// 2007: shifted joint numbers, drifting odometer, "Girth Weld" markers.
	rows := [][]string{{"J. no.", "J. len [ft]", "to u/s w. [ft]", "log dist. [ft]", "event", "depth [%]", "length [in]", "width [in]", "o'clock"}}
	for j := 0; j < *nJoints; j++ {
		rows = append(rows, []string{fmt.Sprint(j + 14), f6(lens[j]), "0", f6(drift(starts[j])), "Girth Weld", "", "", "", ""})
		for _, a := range anomalies {
			if a.joint != j || a.firstYear > 2007 {
				continue
			}
			rows = append(rows, []string{
				fmt.Sprint(j + 14), "", f6(a.dus), f6(drift(starts[j] + a.dus)),
				a.event, f6(a.depth - a.growth/2), f6(a.length), f6(a.width), a.clock,
			})
		}
	}
	write("2007.csv", rows)

	if err := writeConfig(filepath.Join(*outDir, "ili.json")); err != nil {
		log.Fatalf("write config: %v", err)
	}
	log.Printf("✓ generated sample dataset in %s", *outDir)
}

// writeConfig emits a pipeline config matching the generated files.
func writeConfig(path string) error {
	weld := "weld"
	label2007 := "girth weld"
	baseline := 2015
	cfg := map[string]interface{}{
		"baseline_year":      baseline,
		"match_tolerance_ft": 5.0,
		"runs": []map[string]interface{}{
			{
				"year": 2007, "file": "2007.csv", "aligner": weld, "weld_label": label2007,
				"schema": map[string]string{
					"joint": "J. no.", "joint_len": "J. len [ft]", "dus": "to u/s w. [ft]",
					"raw_dist": "log dist. [ft]", "event": "event", "depth": "depth [%]",
					"length": "length [in]", "width": "width [in]", "clock": "o'clock",
				},
			},
			{
				"year": 2015, "file": "2015.csv",
				"schema": map[string]string{
					"joint": "J. no.", "joint_len": "J. len [ft]", "dus": "to u/s w. [ft]",
					"raw_dist": "Log Dist. [ft]", "event": "Event Description", "depth": "Depth [%]",
					"length": "Length [in]", "width": "Width [in]", "clock": "O'clock",
				},
			},
			{
				"year": 2022, "file": "2022.csv",
				"schema": map[string]string{
					"joint": "Joint Number", "joint_len": "Joint Length [ft]", "dus": "Distance to U/S GW [ft]",
					"raw_dist": "ILI Wheel Count [ft.]", "event": "Event Description", "depth": "Metal Loss Depth [%]",
					"length": "Length [in]", "width": "Width [in]", "clock": "O'clock [hh:mm]",
				},
			},
		},
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
