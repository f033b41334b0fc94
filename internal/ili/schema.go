package ili

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Schema maps a run's raw column headers to the canonical field set. Every
// survey vendor (and often every survey year) names its columns differently;
// the mapping is supplied per run by configuration.
//
// Event is the only required column. Any other empty mapping, or a mapped
// header absent from the file, leaves that field missing on every record
// rather than failing the load.
type Schema struct {
	Joint    string
	JointLen string
	DUS      string
	RawDist  string
	Event    string
	Depth    string
	Length   string
	Width    string
	Clock    string
}

// LoadRunCSV reads one run's table from a CSV file (first row = raw headers)
// and normalizes it under the given schema. Missing file or missing Event
// header is a structural failure and returns an error; cell-level problems
// (unparseable numbers) become missing values.
func LoadRunCSV(path string, schema Schema) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open run file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows tolerated; short rows read as missing
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read run file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("run file %s is empty", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		col[strings.TrimSpace(h)] = i
	}
	if schema.Event == "" {
		return nil, fmt.Errorf("schema for %s does not map an event column", path)
	}
	if _, ok := col[schema.Event]; !ok {
		return nil, fmt.Errorf("run file %s has no column %q", path, schema.Event)
	}

	cell := func(row []string, header string) string {
		if header == "" {
			return ""
		}
		i, ok := col[header]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	recs := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		event := strings.TrimSpace(cell(row, schema.Event))
		recs = append(recs, Record{
			Joint:     parseCell(cell(row, schema.Joint)),
			JointLen:  parseCell(cell(row, schema.JointLen)),
			DUS:       parseCell(cell(row, schema.DUS)),
			RawDist:   parseCell(cell(row, schema.RawDist)),
			Event:     event,
			EventNorm: NormalizeEvent(event),
			Depth:     parseCell(cell(row, schema.Depth)),
			Length:    parseCell(cell(row, schema.Length)),
			Width:     parseCell(cell(row, schema.Width)),
			Clock:     strings.TrimSpace(cell(row, schema.Clock)),
		})
	}
	return recs, nil
}

// parseCell coerces a raw cell to a nullable number. Anything unparseable or
// non-finite reads as missing, never as an error.
func parseCell(s string) Float {
	s = strings.TrimSpace(s)
	if s == "" {
		return Float{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) {
		return Float{}
	}
	return Num(v)
}
