package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	year := 2015
	return &Config{
		BaselineYear: &year,
		Runs: []RunConfig{
			{Year: 2015, File: "2015.csv", Schema: map[string]string{"event": "Event Description"}},
			{Year: 2022, File: "2022.csv", Schema: map[string]string{"event": "Event Description"}},
		},
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetMatchToleranceFt(); got != 5.0 {
		t.Errorf("GetMatchToleranceFt() = %v, want 5.0", got)
	}
	if got := cfg.GetAssignment(); got != AssignGreedy {
		t.Errorf("GetAssignment() = %q, want %q", got, AssignGreedy)
	}
	if got := cfg.GetAnomalyExclude(); got != "girth" {
		t.Errorf("GetAnomalyExclude() = %q, want girth", got)
	}
	if got := cfg.GetBaselineWeldLabel(); got != "girthweld" {
		t.Errorf("GetBaselineWeldLabel() = %q, want girthweld", got)
	}
	if got := cfg.GetBaselineYear(); got != 0 {
		t.Errorf("GetBaselineYear() = %d, want 0 when unset", got)
	}

	run := &RunConfig{}
	if got := run.GetAligner(); got != AlignerJoint {
		t.Errorf("GetAligner() = %q, want %q", got, AlignerJoint)
	}
	if got := run.GetWeldLabel(); got != "girth weld" {
		t.Errorf("GetWeldLabel() = %q, want girth weld", got)
	}
}

func TestValidate(t *testing.T) {
	weld := AlignerWeld
	bogus := "diagonal"
	badTol := -1.0
	badYear := 1999

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"valid weld aligner", func(c *Config) { c.Runs[0].Aligner = &weld }, false},
		{"no runs", func(c *Config) { c.Runs = nil }, true},
		{"negative tolerance", func(c *Config) { c.MatchToleranceFt = &badTol }, true},
		{"bad assignment", func(c *Config) { c.Assignment = &bogus }, true},
		{"bad aligner", func(c *Config) { c.Runs[0].Aligner = &bogus }, true},
		{"duplicate year", func(c *Config) { c.Runs[1].Year = 2015 }, true},
		{"missing year", func(c *Config) { c.Runs[0].Year = 0 }, true},
		{"missing file", func(c *Config) { c.Runs[0].File = "" }, true},
		{"missing event mapping", func(c *Config) { c.Runs[0].Schema = map[string]string{} }, true},
		{"unknown schema key", func(c *Config) { c.Runs[0].Schema["odometer"] = "X" }, true},
		{"baseline not among runs", func(c *Config) { c.BaselineYear = &badYear }, true},
		{"no baseline is allowed", func(c *Config) { c.BaselineYear = nil }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ili.json")
	content := `{
		"baseline_year": 2015,
		"match_tolerance_ft": 7.5,
		"runs": [
			{"year": 2015, "file": "2015.csv", "schema": {"event": "Event Description"}},
			{"year": 2007, "file": "2007.csv", "aligner": "weld", "weld_label": "girth weld",
			 "schema": {"event": "event"}}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GetBaselineYear() != 2015 {
		t.Errorf("baseline year = %d, want 2015", cfg.GetBaselineYear())
	}
	if cfg.GetMatchToleranceFt() != 7.5 {
		t.Errorf("tolerance = %v, want 7.5", cfg.GetMatchToleranceFt())
	}
	// Omitted fields fall back to defaults.
	if cfg.GetAssignment() != AssignGreedy {
		t.Errorf("assignment = %q, want default greedy", cfg.GetAssignment())
	}

	run, ok := cfg.Run(2007)
	if !ok {
		t.Fatal("run 2007 not found")
	}
	if run.GetAligner() != AlignerWeld || run.GetWeldLabel() != "girth weld" {
		t.Errorf("run 2007 = aligner %q label %q", run.GetAligner(), run.GetWeldLabel())
	}
	if _, ok := cfg.Run(1999); ok {
		t.Error("Run(1999) should not be found")
	}
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()

	t.Run("wrong extension", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "config.yaml")); err == nil {
			t.Error("expected error for non-json extension")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "absent.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		if err := os.WriteFile(path, []byte(`{"runs": []}`), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected validation error for empty runs")
		}
	})
}
