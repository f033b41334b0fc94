package ili

import (
	"math"
	"sort"
)

// Attribute normalizers for the match cost. Station difference is scaled by
// the caller's tolerance; depth (%), length (in) and width (in) differences
// are each scaled by a nominal 50-unit range.
const (
	depthWeight  = 0.5
	lengthWeight = 0.25
	widthWeight  = 0.25
	attrScale    = 50.0
)

// Match pairs one anomaly of the "new" run with one anomaly of the "base"
// run. Cost is non-negative; DeltaStation is the base station minus the new
// station in feet. Within one matching pass each anomaly appears in at most
// one Match on either side.
type Match struct {
	Base         Anomaly
	New          Anomaly
	Cost         float64
	DeltaStation float64
}

// MatchRuns finds a one-to-one correspondence between the base and new
// anomaly sets, considering only candidates within tolFt feet of station.
//
// The policy is asymmetric greedy with global conflict resolution: each new
// anomaly (in station order) picks its cheapest base candidate inside the
// tolerance window, then the tentative pairs are replayed in ascending cost
// order and a pair survives only if neither endpoint was already consumed
// by a cheaper pair. Candidate selection favors the new side;
// MatchRunsOptimal is the symmetric alternative.
func MatchRuns(base, new []Anomaly, tolFt float64) []Match {
	b := sortedByStation(base)
	n := sortedByStation(new)

	bPos := make([]float64, len(b))
	for i, a := range b {
		bPos[i] = a.Station
	}

	var tentative []Match
	for _, a := range n {
		lo := sort.SearchFloat64s(bPos, a.Station-tolFt)
		hi := sort.Search(len(bPos), func(i int) bool { return bPos[i] > a.Station+tolFt })
		if lo == hi {
			continue // no candidate in window; not an error
		}

		best := -1
		bestCost := math.Inf(1)
		for j := lo; j < hi; j++ {
			if c := matchCost(b[j], a, tolFt); c < bestCost {
				bestCost = c
				best = j
			}
		}
		tentative = append(tentative, Match{
			Base:         b[best],
			New:          a,
			Cost:         bestCost,
			DeltaStation: b[best].Station - a.Station,
		})
	}

	return resolveConflicts(tentative)
}

// matchCost combines station proximity with attribute similarity. Missing
// attributes contribute as zero difference terms.
func matchCost(base, new Anomaly, tolFt float64) float64 {
	cost := math.Abs(base.Station-new.Station) / tolFt
	cost += depthWeight * math.Abs(base.Depth.OrZero()-new.Depth.OrZero()) / attrScale
	cost += lengthWeight * math.Abs(base.Length.OrZero()-new.Length.OrZero()) / attrScale
	cost += widthWeight * math.Abs(base.Width.OrZero()-new.Width.OrZero()) / attrScale
	return cost
}

// resolveConflicts enforces mutual uniqueness: pairs are kept in ascending
// cost order, and a pair is dropped if either endpoint already belongs to a
// cheaper kept pair. Returns the survivors sorted by cost.
func resolveConflicts(tentative []Match) []Match {
	sort.SliceStable(tentative, func(i, j int) bool { return tentative[i].Cost < tentative[j].Cost })

	usedBase := make(map[string]bool, len(tentative))
	usedNew := make(map[string]bool, len(tentative))
	kept := make([]Match, 0, len(tentative))
	for _, m := range tentative {
		if usedBase[m.Base.ID] || usedNew[m.New.ID] {
			continue
		}
		usedBase[m.Base.ID] = true
		usedNew[m.New.ID] = true
		kept = append(kept, m)
	}
	return kept
}

func sortedByStation(as []Anomaly) []Anomaly {
	out := make([]Anomaly, len(as))
	copy(out, as)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Station < out[j].Station })
	return out
}
