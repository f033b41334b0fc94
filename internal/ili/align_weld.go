package ili

import (
	"log"
	"sort"
	"strings"
)

// Default girth-weld label substrings. The two spellings are an
// inconsistency between the source schemas, not a convention: the early
// surveys report "Girth Weld", later vendors "GirthWeld". Both are
// configurable per run so a new schema does not require a code change.
const (
	DefaultRunWeldLabel      = "girth weld"
	DefaultBaselineWeldLabel = "girthweld"
)

// weldAnchor pairs one raw logged distance in the run being aligned with
// the baseline station of the positionally corresponding girth weld.
type weldAnchor struct {
	raw     float64 // run's raw_dist_ft at the weld
	station float64 // baseline joint_start_base_ft of the paired weld
}

// AlignByWeldSequence is the fallback alignment path for a run whose joint
// numbering cannot be trusted to correspond to the baseline's (incomplete
// early surveys). It builds an order-preserving piecewise-linear map from
// the run's raw logged distance to baseline station, anchored at girth-weld
// markers, and applies it to every record.
//
// Precondition: the two weld sequences describe the same physical welds in
// the same physical order and have equal or near-equal counts. Anchors are
// paired positionally by sorted rank, truncating to the shorter sequence; a
// count skew is logged as a warning because it means the tail of the longer
// sequence is silently unanchored. Raw distances outside the anchor span
// map to missing rather than extrapolating.
func AlignByWeldSequence(run, base []Record, table *JointTable, runLabel, baseLabel string) []AlignedRecord {
	if runLabel == "" {
		runLabel = DefaultRunWeldLabel
	}
	if baseLabel == "" {
		baseLabel = DefaultBaselineWeldLabel
	}

	xs := runWeldDistances(run, runLabel)
	ys := baselineWeldStations(base, table, baseLabel)

	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if len(xs) != len(ys) {
		log.Printf("weld alignment: sequence count skew (run=%d baseline=%d), pairing first %d welds", len(xs), len(ys), n)
	}

	anchors := make([]weldAnchor, n)
	for i := 0; i < n; i++ {
		anchors[i] = weldAnchor{raw: xs[i], station: ys[i]}
	}

	out := make([]AlignedRecord, len(run))
	for i, rec := range run {
		out[i] = AlignedRecord{Record: rec, Station: interpolateStation(anchors, rec.RawDist)}
	}
	return out
}

// runWeldDistances selects the run's girth-weld rows with a usable raw
// distance, sorted ascending.
func runWeldDistances(run []Record, label string) []float64 {
	var xs []float64
	for _, rec := range run {
		if rec.RawDist.Valid && strings.Contains(rec.EventNorm, label) {
			xs = append(xs, rec.RawDist.V)
		}
	}
	sort.Float64s(xs)
	return xs
}

// baselineWeldStations selects the baseline run's girth-weld rows, joins
// them against the joint table, and returns their joint start stations in
// ascending raw-distance order. Weld rows whose joint is absent from the
// table carry no station and are skipped with a warning; they would
// otherwise poison the interpolation around them.
func baselineWeldStations(base []Record, table *JointTable, label string) []float64 {
	type weld struct{ raw, station float64 }
	var welds []weld
	skipped := 0
	for _, rec := range base {
		if !rec.RawDist.Valid || !strings.Contains(rec.EventNorm, label) {
			continue
		}
		bj, ok := table.Lookup(rec.Joint)
		if !ok {
			skipped++
			continue
		}
		welds = append(welds, weld{raw: rec.RawDist.V, station: bj.Start})
	}
	if skipped > 0 {
		log.Printf("weld alignment: skipped %d baseline weld rows with no joint-table entry", skipped)
	}
	sort.Slice(welds, func(i, j int) bool { return welds[i].raw < welds[j].raw })

	ys := make([]float64, len(welds))
	for i, w := range welds {
		ys[i] = w.station
	}
	return ys
}

// interpolateStation maps one raw distance through the anchor sequence by
// monotone linear interpolation. Outside the span of the anchors (or with
// no anchors, or a missing input) the result is missing.
func interpolateStation(anchors []weldAnchor, raw Float) Float {
	if !raw.Valid || len(anchors) == 0 {
		return Float{}
	}
	x := raw.V
	if x < anchors[0].raw || x > anchors[len(anchors)-1].raw {
		return Float{}
	}

	// First anchor at or beyond x.
	i := sort.Search(len(anchors), func(i int) bool { return anchors[i].raw >= x })
	if anchors[i].raw == x {
		return Num(anchors[i].station)
	}

	lo, hi := anchors[i-1], anchors[i]
	dx := hi.raw - lo.raw
	if dx == 0 {
		return Num(hi.station)
	}
	t := (x - lo.raw) / dx
	return Num(lo.station + t*(hi.station-lo.station))
}
