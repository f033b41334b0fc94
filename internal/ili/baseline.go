package ili

import "sort"

// BaselineJoint is one pipe joint of the baseline run, with its length and
// its cumulative start station in baseline coordinates.
type BaselineJoint struct {
	ID    float64 // joint number
	Len   float64 // joint_len_base_ft
	Start float64 // joint_start_base_ft
}

// JointTable holds the baseline run's joint geometry, ordered by ascending
// joint number. Joint starts are non-decreasing: each joint starts where the
// previous one ends, and the first joint starts at 0.
type JointTable struct {
	joints []BaselineJoint
	index  map[float64]int
}

// BuildJointTable derives the baseline joint geometry from the baseline
// run's records. The length of each joint is the first non-missing value
// seen for that joint in record order; reported discrepancies between rows
// of the same joint are ignored, not averaged. Joints with no reported
// length anywhere are dropped; nothing can be aligned to them.
func BuildJointTable(base []Record) *JointTable {
	lengths := make(map[float64]float64)
	for _, rec := range base {
		if !rec.Joint.Valid || !rec.JointLen.Valid {
			continue
		}
		if _, seen := lengths[rec.Joint.V]; !seen {
			lengths[rec.Joint.V] = rec.JointLen.V
		}
	}

	ids := make([]float64, 0, len(lengths))
	for id := range lengths {
		ids = append(ids, id)
	}
	sort.Float64s(ids)

	t := &JointTable{
		joints: make([]BaselineJoint, 0, len(ids)),
		index:  make(map[float64]int, len(ids)),
	}
	start := 0.0
	for _, id := range ids {
		t.index[id] = len(t.joints)
		t.joints = append(t.joints, BaselineJoint{ID: id, Len: lengths[id], Start: start})
		start += lengths[id]
	}
	return t
}

// Lookup returns the baseline joint for the given joint number.
func (t *JointTable) Lookup(joint Float) (BaselineJoint, bool) {
	if !joint.Valid {
		return BaselineJoint{}, false
	}
	i, ok := t.index[joint.V]
	if !ok {
		return BaselineJoint{}, false
	}
	return t.joints[i], true
}

// Joints returns all baseline joints in ascending joint-number order.
func (t *JointTable) Joints() []BaselineJoint { return t.joints }

// Len returns the number of joints in the table.
func (t *JointTable) Len() int { return len(t.joints) }
