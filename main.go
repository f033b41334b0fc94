// Command pipeline-anomaly-detection aligns multiple in-line inspection
// (ILI) survey runs onto one baseline station coordinate system and matches
// anomalies between adjacent runs so growth can be tracked.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/lukeabraham24777/pipeline-anomaly-detection/internal/config"
	"github.com/lukeabraham24777/pipeline-anomaly-detection/internal/ili"
	"github.com/lukeabraham24777/pipeline-anomaly-detection/internal/report"
	"github.com/lukeabraham24777/pipeline-anomaly-detection/internal/units"
)

var (
	configPath   = flag.String("config", "config/ili.json", "Path to pipeline config JSON")
	inputDir     = flag.String("input", ".", "Directory holding the run CSV files")
	outDir       = flag.String("out", "out", "Output directory for report artifacts")
	baselineYear = flag.Int("baseline", 0, "Baseline year (overrides config)")
	toleranceFt  = flag.Float64("tolerance", 0, "Match tolerance in feet (overrides config)")
	assignment   = flag.String("assignment", "", "Matcher strategy: greedy or optimal (overrides config)")
	displayUnits = flag.String("units", units.Feet, "Display units for charts")
)

// pipelineOptions are the effective settings after flag overrides.
type pipelineOptions struct {
	inputDir     string
	outDir       string
	baselineYear int
	toleranceFt  float64
	assignment   string
	units        string
}

func main() {
	flag.Parse()

	if !units.IsValid(*displayUnits) {
		log.Fatalf("invalid units %q (valid: %s)", *displayUnits, units.GetValidUnitsString())
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	opt := pipelineOptions{
		inputDir:     *inputDir,
		outDir:       *outDir,
		baselineYear: cfg.GetBaselineYear(),
		toleranceFt:  cfg.GetMatchToleranceFt(),
		assignment:   cfg.GetAssignment(),
		units:        *displayUnits,
	}
	if *baselineYear != 0 {
		opt.baselineYear = *baselineYear
	}
	if *toleranceFt != 0 {
		opt.toleranceFt = *toleranceFt
	}
	if *assignment != "" {
		if *assignment != config.AssignGreedy && *assignment != config.AssignOptimal {
			log.Fatalf("invalid assignment %q (valid: %s, %s)", *assignment, config.AssignGreedy, config.AssignOptimal)
		}
		opt.assignment = *assignment
	}

	if err := run(cfg, opt); err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}
}

// run executes the whole batch: load, align, extract, match, report.
// Structural failures (missing baseline, unreadable run file) return an
// error and abort the batch; per-field failures stay in the data as missing
// values and are only visible in the output tables.
func run(cfg *config.Config, opt pipelineOptions) error {
	if opt.baselineYear == 0 {
		return fmt.Errorf("no baseline year: set baseline_year in config or pass -baseline")
	}
	if _, ok := cfg.Run(opt.baselineYear); !ok {
		return fmt.Errorf("baseline year %d is not among the configured runs", opt.baselineYear)
	}

	records := make(map[int][]ili.Record, len(cfg.Runs))
	years := make([]int, 0, len(cfg.Runs))
	for i := range cfg.Runs {
		rc := &cfg.Runs[i]
		path := filepath.Join(opt.inputDir, rc.File)
		recs, err := ili.LoadRunCSV(path, toSchema(rc.Schema))
		if err != nil {
			return fmt.Errorf("run %d: %w", rc.Year, err)
		}
		records[rc.Year] = recs
		years = append(years, rc.Year)
		log.Printf("run %d: loaded %d records from %s", rc.Year, len(recs), path)
	}
	sort.Ints(years)

	baseRecs := records[opt.baselineYear]
	table := ili.BuildJointTable(baseRecs)
	if table.Len() == 0 {
		return fmt.Errorf("baseline run %d has no joints with a reported length", opt.baselineYear)
	}
	joints := table.Joints()
	last := joints[len(joints)-1]
	log.Printf("baseline %d: %d joints, %.1f ft of pipe", opt.baselineYear, table.Len(), last.Start+last.Len)

	if err := os.MkdirAll(opt.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	filter := ili.AnomalyFilter{Keywords: cfg.AnomalyKeywords, Exclude: cfg.GetAnomalyExclude()}
	if len(filter.Keywords) == 0 {
		filter.Keywords = ili.DefaultAnomalyKeywords
	}

	anomalies := make(map[int][]ili.Anomaly, len(years))
	for _, year := range years {
		rc, _ := cfg.Run(year)

		var aligned []ili.AlignedRecord
		switch rc.GetAligner() {
		case config.AlignerWeld:
			aligned = ili.AlignByWeldSequence(records[year], baseRecs, table, rc.GetWeldLabel(), cfg.GetBaselineWeldLabel())
		default:
			aligned = ili.AlignByJoint(records[year], table)
		}

		anomalies[year] = ili.ExtractAnomalies(aligned, year, filter)
		log.Printf("run %d: %d/%d records aligned, %d anomalies",
			year, alignedCount(aligned), len(aligned), len(anomalies[year]))

		if err := report.WriteAlignedCSV(filepath.Join(opt.outDir, fmt.Sprintf("%d_aligned.csv", year)), aligned); err != nil {
			return err
		}
		if err := report.WriteAnomaliesCSV(filepath.Join(opt.outDir, fmt.Sprintf("anomalies_%d.csv", year)), anomalies[year]); err != nil {
			return err
		}
		if rc.GetAligner() == config.AlignerWeld {
			// Drift profile is only meaningful where the odometer needed correcting.
			if err := report.WriteDriftPNG(filepath.Join(opt.outDir, fmt.Sprintf("drift_%d.png", year)), aligned); err != nil {
				log.Printf("run %d: %v", year, err)
			}
		}
	}

	var pairs []report.PairSeries
	for i := 0; i+1 < len(years); i++ {
		baseYear, newYear := years[i], years[i+1]

		var matches []ili.Match
		if opt.assignment == config.AssignOptimal {
			matches = ili.MatchRunsOptimal(anomalies[baseYear], anomalies[newYear], opt.toleranceFt)
		} else {
			matches = ili.MatchRuns(anomalies[baseYear], anomalies[newYear], opt.toleranceFt)
		}

		g := ili.SummarizeGrowth(matches)
		log.Printf("match %d -> %d: %d matches (tol %.1f ft), mean depth growth %.2f%% over %d depth pairs, mean |Δstation| %.2f ft",
			baseYear, newYear, g.Pairs, opt.toleranceFt, g.MeanDepthDelta, g.DepthPairs, g.MeanAbsStation)

		if err := report.WriteMatchesCSV(
			filepath.Join(opt.outDir, fmt.Sprintf("matches_%d_%d.csv", baseYear, newYear)),
			matches, baseYear, newYear); err != nil {
			return err
		}
		pairs = append(pairs, report.PairSeries{BaseYear: baseYear, NewYear: newYear, Matches: matches})
	}

	runSeries := make([]report.RunSeries, 0, len(years))
	for _, y := range years {
		runSeries = append(runSeries, report.RunSeries{Year: y, Anomalies: anomalies[y]})
	}
	if err := report.WriteChartsHTML(filepath.Join(opt.outDir, "report.html"), runSeries, pairs, opt.units); err != nil {
		return err
	}

	log.Printf("✓ wrote report artifacts to %s", opt.outDir)
	return nil
}

// toSchema maps the config's canonical-key schema onto the loader's
// column-header struct.
func toSchema(m map[string]string) ili.Schema {
	return ili.Schema{
		Joint:    m["joint"],
		JointLen: m["joint_len"],
		DUS:      m["dus"],
		RawDist:  m["raw_dist"],
		Event:    m["event"],
		Depth:    m["depth"],
		Length:   m["length"],
		Width:    m["width"],
		Clock:    m["clock"],
	}
}

func alignedCount(recs []ili.AlignedRecord) int {
	n := 0
	for _, r := range recs {
		if r.Station.Valid {
			n++
		}
	}
	return n
}
