package ili

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultAnomalyKeywords are the event-label substrings treated as physical
// anomalies. "seam weld" is an anomaly class (seam-weld defect reports);
// girth-weld markers share some of this vocabulary in some schemas and are
// screened out by the exclusion substring.
var DefaultAnomalyKeywords = []string{
	"metal loss",
	"cluster",
	"dent",
	"manufacturing anomaly",
	"seam weld",
}

// DefaultAnomalyExclude screens out girth-weld markers.
const DefaultAnomalyExclude = "girth"

// Anomaly is a reported pipe-wall feature with a usable baseline station,
// tagged with its run year and a unique identity for match reporting.
type Anomaly struct {
	ID        string
	Year      int
	Station   float64 // station_base_ft, always present by construction
	Joint     Float
	PInJoint  Float
	Event     string
	EventNorm string
	Depth     Float // depth_pct
	Length    Float // length_in
	Width     Float // width_in
	Clock     string
}

// AnomalyFilter classifies normalized event labels. The zero value matches
// nothing; use DefaultAnomalyFilter for the standard vocabulary.
type AnomalyFilter struct {
	Keywords []string // any substring match qualifies
	Exclude  string   // substring that disqualifies regardless of keywords
}

// DefaultAnomalyFilter returns the standard anomaly vocabulary.
func DefaultAnomalyFilter() AnomalyFilter {
	return AnomalyFilter{Keywords: DefaultAnomalyKeywords, Exclude: DefaultAnomalyExclude}
}

// IsAnomaly reports whether a normalized event label describes a physical
// anomaly: it contains any keyword and does not contain the exclusion.
func (f AnomalyFilter) IsAnomaly(eventNorm string) bool {
	if f.Exclude != "" && strings.Contains(eventNorm, f.Exclude) {
		return false
	}
	for _, kw := range f.Keywords {
		if strings.Contains(eventNorm, kw) {
			return true
		}
	}
	return false
}

// ExtractAnomalies filters an aligned run down to anomaly rows with a
// non-missing baseline station, tags them with the run year, and assigns
// each a unique id. Structurally absent attributes stay missing.
func ExtractAnomalies(recs []AlignedRecord, year int, f AnomalyFilter) []Anomaly {
	var out []Anomaly
	for _, rec := range recs {
		if !rec.Station.Valid || !f.IsAnomaly(rec.EventNorm) {
			continue
		}
		out = append(out, Anomaly{
			ID:        uuid.NewString(),
			Year:      year,
			Station:   rec.Station.V,
			Joint:     rec.Joint,
			PInJoint:  rec.PInJoint,
			Event:     rec.Event,
			EventNorm: rec.EventNorm,
			Depth:     rec.Depth,
			Length:    rec.Length,
			Width:     rec.Width,
			Clock:     rec.Clock,
		})
	}
	return out
}
