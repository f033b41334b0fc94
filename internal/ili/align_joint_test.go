package ili

import (
	"math"
	"testing"
)

// twoJointTable holds joints 1 and 2 at 40 ft each, so joint 2 starts at
// station 40.
func twoJointTable() *JointTable {
	return BuildJointTable([]Record{
		rec(Num(1), Num(40)),
		rec(Num(2), Num(40)),
	})
}

func TestAlignByJoint(t *testing.T) {
	table := twoJointTable()

	tests := []struct {
		name        string
		record      Record
		wantP       Float
		wantStation Float
	}{
		{
			name:        "upstream weld maps to joint start",
			record:      Record{Joint: Num(1), DUS: Num(0)},
			wantP:       Num(0),
			wantStation: Num(0),
		},
		{
			name:        "full joint length maps to next joint start",
			record:      Record{Joint: Num(1), DUS: Num(40)},
			wantP:       Num(1),
			wantStation: Num(40),
		},
		{
			name:        "interpolates inside joint 2",
			record:      Record{Joint: Num(2), DUS: Num(10)},
			wantP:       Num(0.25),
			wantStation: Num(50), // 40 + 10/40*40
		},
		{
			name:        "own joint length overrides baseline denominator",
			record:      Record{Joint: Num(2), JointLen: Num(20), DUS: Num(10)},
			wantP:       Num(0.5),
			wantStation: Num(60), // p uses reported 20 ft, projection uses baseline 40 ft
		},
		{
			name:        "slop beyond joint end clamps to 1.5",
			record:      Record{Joint: Num(1), DUS: Num(100)},
			wantP:       Num(1.5),
			wantStation: Num(60),
		},
		{
			name:        "negative slop clamps to -0.5",
			record:      Record{Joint: Num(2), DUS: Num(-30)},
			wantP:       Num(-0.5),
			wantStation: Num(20),
		},
		{
			name:   "unknown joint stays missing",
			record: Record{Joint: Num(9), DUS: Num(5)},
		},
		{
			name:   "missing joint number stays missing",
			record: Record{DUS: Num(5)},
		},
		{
			name:   "missing dus stays missing",
			record: Record{Joint: Num(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := AlignByJoint([]Record{tt.record}, table)
			got := out[0]
			if got.PInJoint != tt.wantP {
				t.Errorf("PInJoint = %+v, want %+v", got.PInJoint, tt.wantP)
			}
			if got.Station.Valid != tt.wantStation.Valid {
				t.Fatalf("Station = %+v, want %+v", got.Station, tt.wantStation)
			}
			if got.Station.Valid && math.Abs(got.Station.V-tt.wantStation.V) > 1e-9 {
				t.Errorf("Station = %v, want %v", got.Station.V, tt.wantStation.V)
			}
		})
	}
}

func TestAlignByJoint_ZeroLengthDenominator(t *testing.T) {
	// A zero-length joint makes the division non-finite; that reads as
	// missing downstream, not as an error.
	table := BuildJointTable([]Record{rec(Num(1), Num(0))})
	out := AlignByJoint([]Record{{Joint: Num(1), DUS: Num(0)}}, table)
	if out[0].Station.Valid || out[0].PInJoint.Valid {
		t.Errorf("zero-length joint should yield missing station, got %+v", out[0])
	}
}

func TestAlignByJoint_DoesNotMutateInput(t *testing.T) {
	table := twoJointTable()
	recs := []Record{{Joint: Num(1), DUS: Num(5)}}
	_ = AlignByJoint(recs, table)
	if table.Len() != 2 {
		t.Error("joint table mutated")
	}
	if recs[0].DUS != Num(5) {
		t.Error("input records mutated")
	}
}
