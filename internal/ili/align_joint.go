package ili

// Fractional in-joint positions are clamped to this band before projecting
// onto the baseline. Measurement slop routinely places a feature slightly
// outside its nominal joint boundary; half a joint either side is tolerated.
const (
	minPInJoint = -0.5
	maxPInJoint = 1.5
)

// AlignedRecord is a Record carrying its computed position in the baseline
// coordinate frame. Station is missing when alignment could not be computed
// (unknown joint, missing interpolation support, raw distance outside the
// weld-anchor span). PInJoint is only set by the joint-based aligner.
type AlignedRecord struct {
	Record
	PInJoint Float // fractional position within the joint, clamped
	Station  Float // station_base_ft
}

// AlignByJoint computes every record's baseline station by joining on joint
// number against the baseline joint table and interpolating within the
// joint. It is the primary alignment path, immune to odometer drift because
// positions are referenced to the weld-defined joint coordinate.
//
// The denominator for the fractional position is the record's own joint
// length when reported, else the baseline's length for that joint (anomaly
// rows frequently omit joint length). A zero or missing denominator, or a
// missing distance-to-upstream-weld, leaves the station missing. Pure
// function; the joint table is not mutated.
func AlignByJoint(recs []Record, table *JointTable) []AlignedRecord {
	out := make([]AlignedRecord, len(recs))
	for i, rec := range recs {
		out[i] = AlignedRecord{Record: rec}

		bj, ok := table.Lookup(rec.Joint)
		if !ok {
			continue
		}

		denom := rec.JointLen.Or(Num(bj.Len))
		if !rec.DUS.Valid || !denom.Valid {
			continue
		}
		p := rec.DUS.V / denom.V
		if !finite(p) {
			continue
		}
		if p < minPInJoint {
			p = minPInJoint
		} else if p > maxPInJoint {
			p = maxPInJoint
		}

		out[i].PInJoint = Num(p)
		out[i].Station = Num(bj.Start + p*bj.Len)
	}
	return out
}
