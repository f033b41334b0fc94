package ili

import (
	"math"
	"sort"
)

// forbiddenCost marks a new/base pairing outside the station tolerance in
// the assignment cost matrix. The solver never selects an entry at or above
// this value.
const forbiddenCost = 1e18

// MatchRunsOptimal solves the same matching problem as MatchRuns but with a
// minimum-total-cost bipartite assignment (Kuhn–Munkres) instead of the
// greedy policy. Tolerance gating and mutual uniqueness hold identically;
// unlike the greedy path the result does not favor either side. Greedy by
// sorted cost does not always reach the global minimum, so totals from this
// strategy can only be equal or lower.
func MatchRunsOptimal(base, new []Anomaly, tolFt float64) []Match {
	b := sortedByStation(base)
	n := sortedByStation(new)
	if len(b) == 0 || len(n) == 0 {
		return nil
	}

	cost := make([][]float64, len(n))
	for i, a := range n {
		cost[i] = make([]float64, len(b))
		for j, bb := range b {
			if math.Abs(bb.Station-a.Station) > tolFt {
				cost[i][j] = forbiddenCost
			} else {
				cost[i][j] = matchCost(bb, a, tolFt)
			}
		}
	}

	var out []Match
	for i, j := range assign(cost) {
		if j < 0 {
			continue
		}
		out = append(out, Match{
			Base:         b[j],
			New:          n[i],
			Cost:         cost[i][j],
			DeltaStation: b[j].Station - n[i].Station,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Cost < out[j].Cost })
	return out
}

// assign solves the rectangular assignment problem for an n×m cost matrix,
// returning for each row the column assigned to it, or -1 when the row
// stays unassigned (every candidate forbidden). Kuhn–Munkres with row and
// column potentials, O(n³); the matrix is padded square with forbiddenCost
// so excess rows come back unassigned.
func assign(cost [][]float64) []int {
	rows := len(cost)
	if rows == 0 {
		return nil
	}
	cols := len(cost[0])
	if cols == 0 {
		out := make([]int, rows)
		for i := range out {
			out[i] = -1
		}
		return out
	}

	dim := rows
	if cols > dim {
		dim = cols
	}
	c := make([][]float64, dim)
	for i := 0; i < dim; i++ {
		c[i] = make([]float64, dim)
		for j := 0; j < dim; j++ {
			if i < rows && j < cols {
				c[i][j] = cost[i][j]
			} else {
				c[i][j] = forbiddenCost
			}
		}
	}

	// 1-indexed internally; index 0 is the virtual column that seeds each
	// augmenting path.
	const inf = math.MaxFloat64 / 2

	// Row/column potentials, p[j] = row assigned to column j, and the
	// predecessor column along the current augmenting path.
	u := make([]float64, dim+1)
	v := make([]float64, dim+1)
	p := make([]int, dim+1)
	way := make([]int, dim+1)
	minv := make([]float64, dim+1)
	used := make([]bool, dim+1)

	for i := 1; i <= dim; i++ {
		p[0] = i
		j0 := 0
		for j := 1; j <= dim; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1

			for j := 1; j <= dim; j++ {
				if used[j] {
					continue
				}
				cur := c[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			if j1 < 0 {
				break
			}

			for j := 0; j <= dim; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			p[j0] = p[way[j0]]
			j0 = way[j0]
		}
	}

	rowAssign := make([]int, dim)
	for i := range rowAssign {
		rowAssign[i] = -1
	}
	for j := 1; j <= dim; j++ {
		if p[j] > 0 && p[j] <= dim {
			rowAssign[p[j]-1] = j - 1
		}
	}

	out := make([]int, rows)
	for i := 0; i < rows; i++ {
		j := rowAssign[i]
		if j < 0 || j >= cols || cost[i][j] >= forbiddenCost {
			out[i] = -1
		} else {
			out[i] = j
		}
	}
	return out
}
