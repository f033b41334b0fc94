package ili

import "strings"

// Record is one reported feature row of an inspection run, normalized to the
// canonical field set. Distances are in feet, anomaly length/width in inches,
// depth in percent of wall thickness. Records are immutable once normalized.
type Record struct {
	Joint    Float // joint number (nullable; some rows carry none)
	JointLen Float // nominal joint length, ft
	DUS      Float // distance to the upstream girth weld within the joint, ft
	RawDist  Float // odometer-style logged distance since run start, ft

	Event     string // event label as reported
	EventNorm string // trimmed, lowercased, whitespace-collapsed label

	Depth  Float  // metal-loss depth, % of wall
	Length Float  // anomaly length, in
	Width  Float  // anomaly width, in
	Clock  string // angular orientation, o'clock notation
}

// NormalizeEvent produces the canonical form of an event label: trimmed,
// lowercased, internal whitespace collapsed to single spaces. All predicate
// matching (anomaly keywords, girth-weld labels) runs against this form.
func NormalizeEvent(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
