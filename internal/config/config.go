// Package config loads the pipeline configuration: which runs to read,
// their per-year column schemas, the baseline year, and the matching knobs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Canonical schema keys a run mapping may provide. "event" is required;
// the rest default to missing fields when unmapped.
var schemaKeys = map[string]bool{
	"joint":     true,
	"joint_len": true,
	"dus":       true,
	"raw_dist":  true,
	"event":     true,
	"depth":     true,
	"length":    true,
	"width":     true,
	"clock":     true,
}

// Aligner strategy names.
const (
	AlignerJoint = "joint"
	AlignerWeld  = "weld"
)

// Assignment strategy names.
const (
	AssignGreedy  = "greedy"
	AssignOptimal = "optimal"
)

// RunConfig describes one survey run: the year identifying it, the CSV file
// holding it, how to align it, and the raw column header for each canonical
// field.
type RunConfig struct {
	Year      int               `json:"year"`
	File      string            `json:"file"`
	Aligner   *string           `json:"aligner,omitempty"`    // "joint" (default) or "weld"
	WeldLabel *string           `json:"weld_label,omitempty"` // girth-weld substring in this run's labels
	Schema    map[string]string `json:"schema"`               // canonical key -> raw column header
}

// GetAligner returns the alignment strategy, defaulting to joint-based.
func (r *RunConfig) GetAligner() string {
	if r.Aligner != nil {
		return *r.Aligner
	}
	return AlignerJoint
}

// GetWeldLabel returns the girth-weld label substring for this run.
func (r *RunConfig) GetWeldLabel() string {
	if r.WeldLabel != nil {
		return *r.WeldLabel
	}
	return "girth weld"
}

// Config is the root pipeline configuration. Fields are pointers so a
// partial JSON file inherits defaults; the Get* methods supply fallbacks.
type Config struct {
	BaselineYear      *int        `json:"baseline_year,omitempty"`
	MatchToleranceFt  *float64    `json:"match_tolerance_ft,omitempty"`
	Assignment        *string     `json:"assignment,omitempty"`
	AnomalyKeywords   []string    `json:"anomaly_keywords,omitempty"`
	AnomalyExclude    *string     `json:"anomaly_exclude,omitempty"`
	BaselineWeldLabel *string     `json:"baseline_weld_label,omitempty"`
	Runs              []RunConfig `json:"runs"`
}

// GetBaselineYear returns the configured baseline year, or 0 when unset
// (the CLI flag must then provide it).
func (c *Config) GetBaselineYear() int {
	if c.BaselineYear != nil {
		return *c.BaselineYear
	}
	return 0
}

// GetMatchToleranceFt returns the station-proximity tolerance in feet.
func (c *Config) GetMatchToleranceFt() float64 {
	if c.MatchToleranceFt != nil {
		return *c.MatchToleranceFt
	}
	return 5.0
}

// GetAssignment returns the matcher strategy name.
func (c *Config) GetAssignment() string {
	if c.Assignment != nil {
		return *c.Assignment
	}
	return AssignGreedy
}

// GetAnomalyExclude returns the disqualifying event substring.
func (c *Config) GetAnomalyExclude() string {
	if c.AnomalyExclude != nil {
		return *c.AnomalyExclude
	}
	return "girth"
}

// GetBaselineWeldLabel returns the girth-weld substring used when scanning
// the baseline run for weld anchors.
func (c *Config) GetBaselineWeldLabel() string {
	if c.BaselineWeldLabel != nil {
		return *c.BaselineWeldLabel
	}
	return "girthweld"
}

// Run returns the run config for a year.
func (c *Config) Run(year int) (*RunConfig, bool) {
	for i := range c.Runs {
		if c.Runs[i].Year == year {
			return &c.Runs[i], true
		}
	}
	return nil, false
}

// Validate checks structural soundness. It does not verify that run files
// exist; that happens at load time so the diagnostic can name the file.
func (c *Config) Validate() error {
	if len(c.Runs) == 0 {
		return fmt.Errorf("no runs configured")
	}
	if c.MatchToleranceFt != nil && *c.MatchToleranceFt <= 0 {
		return fmt.Errorf("match_tolerance_ft must be positive, got %v", *c.MatchToleranceFt)
	}
	if a := c.GetAssignment(); a != AssignGreedy && a != AssignOptimal {
		return fmt.Errorf("assignment must be %q or %q, got %q", AssignGreedy, AssignOptimal, a)
	}

	seen := make(map[int]bool, len(c.Runs))
	for i := range c.Runs {
		r := &c.Runs[i]
		if r.Year == 0 {
			return fmt.Errorf("run %d: year is required", i)
		}
		if seen[r.Year] {
			return fmt.Errorf("duplicate run year %d", r.Year)
		}
		seen[r.Year] = true
		if r.File == "" {
			return fmt.Errorf("run %d: file is required", r.Year)
		}
		if a := r.GetAligner(); a != AlignerJoint && a != AlignerWeld {
			return fmt.Errorf("run %d: aligner must be %q or %q, got %q", r.Year, AlignerJoint, AlignerWeld, a)
		}
		if r.Schema["event"] == "" {
			return fmt.Errorf("run %d: schema must map the event column", r.Year)
		}
		for key := range r.Schema {
			if !schemaKeys[key] {
				return fmt.Errorf("run %d: unknown schema key %q", r.Year, key)
			}
		}
	}

	if y := c.GetBaselineYear(); y != 0 && !seen[y] {
		return fmt.Errorf("baseline_year %d is not among the configured runs", y)
	}
	return nil
}

// Load reads and validates a JSON config file. The path must have a .json
// extension and stay under a size cap; partial configs are safe, omitted
// fields fall back to defaults via the Get* methods.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
