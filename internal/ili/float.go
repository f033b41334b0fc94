// Package ili aligns in-line inspection (ILI) survey runs onto a common
// baseline station coordinate and cross-identifies anomalies between runs.
//
// A pipeline is surveyed every few years by different inspection tools, each
// with its own odometer and reporting schema. The packages here translate
// every run's distance measurements into the station frame of one designated
// baseline run, then match anomaly records between adjacent runs so that
// wall-loss growth can be tracked over time.
package ili

import "math"

// Float is a nullable float64. The zero value is missing.
//
// Missing data is the dominant "error" mode of survey tables: unparseable
// cells, joints that cannot be joined against the baseline, raw distances
// outside the weld-anchor span. These all propagate elementwise as missing
// values rather than aborting the batch.
type Float struct {
	V     float64
	Valid bool
}

// Num returns a present Float carrying v.
func Num(v float64) Float { return Float{V: v, Valid: true} }

// Or returns f if present, otherwise alt.
func (f Float) Or(alt Float) Float {
	if f.Valid {
		return f
	}
	return alt
}

// OrZero returns the value if present, otherwise 0. The match cost treats a
// missing attribute as zero for the purpose of the difference, not as
// infinitely different.
func (f Float) OrZero() float64 {
	if f.Valid {
		return f.V
	}
	return 0
}

// finite reports whether v is a usable number. Division by a zero-length
// joint yields Inf/NaN, which must read as missing downstream.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
