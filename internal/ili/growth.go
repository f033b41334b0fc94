package ili

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// GrowthSummary describes how the matched anomaly population changed
// between two runs. Depth statistics cover only the pairs where both
// endpoints report a depth; DepthPairs says how many that is.
type GrowthSummary struct {
	Pairs          int     // total matches
	DepthPairs     int     // matches with depth on both sides
	MeanDepthDelta float64 // mean (new - base) depth, percentage points
	StdDepthDelta  float64 // sample standard deviation of depth delta
	MaxDepthDelta  float64 // largest single depth increase
	MeanAbsStation float64 // mean |delta_station_ft| over all matches
}

// SummarizeGrowth computes per-pair growth statistics over a match set.
func SummarizeGrowth(matches []Match) GrowthSummary {
	s := GrowthSummary{Pairs: len(matches)}
	if len(matches) == 0 {
		return s
	}

	var depthDeltas, absStations []float64
	for _, m := range matches {
		absStations = append(absStations, math.Abs(m.DeltaStation))
		if m.Base.Depth.Valid && m.New.Depth.Valid {
			depthDeltas = append(depthDeltas, m.New.Depth.V-m.Base.Depth.V)
		}
	}

	s.MeanAbsStation = stat.Mean(absStations, nil)
	s.DepthPairs = len(depthDeltas)
	if len(depthDeltas) > 0 {
		s.MeanDepthDelta = stat.Mean(depthDeltas, nil)
		s.MaxDepthDelta = depthDeltas[0]
		for _, d := range depthDeltas[1:] {
			if d > s.MaxDepthDelta {
				s.MaxDepthDelta = d
			}
		}
	}
	if len(depthDeltas) > 1 {
		s.StdDepthDelta = stat.StdDev(depthDeltas, nil)
	}
	return s
}
