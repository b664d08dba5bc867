// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Report is the on-disk YAML summary of a run, kept alongside the citation
// file so an export can be traced back to the query that produced it.
type Report struct {
	Params  ReportParams  `yaml:"params"`
	Query   string        `yaml:"query"`
	Output  ReportOutput  `yaml:"output"`
	Summary ReportSummary `yaml:"summary"`
}

// ReportParams stores the run inputs in a serializable form.
type ReportParams struct {
	Author             string `yaml:"author"`
	MinDate            string `yaml:"min_date,omitempty"`
	IncludeProceedings bool   `yaml:"include_proceedings"`
	PageSize           int    `yaml:"page_size"`
	Affiliation        string `yaml:"affiliation,omitempty"`
	KeepAffiliation    bool   `yaml:"keep_affiliation"`
	ExcludePath        string `yaml:"exclude_path,omitempty"`
}

// ReportOutput records where and how the citations were written.
type ReportOutput struct {
	Path   string `yaml:"path,omitempty"`
	Format string `yaml:"format"`
}

// ReportSummary stores counts, excluded DOIs and a timestamp.
type ReportSummary struct {
	Fetched      int       `yaml:"fetched"`
	Unselected   int       `yaml:"unselected"`
	Excluded     int       `yaml:"excluded"`
	Written      int       `yaml:"written"`
	ExcludedDOIs []string  `yaml:"excluded_dois,omitempty"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// NewReport assembles the report for a finished run.
func NewReport(cfg Config, res Result) Report {
	format := string(cfg.Export.Format)
	if format == "" {
		format = "ris"
	}
	return Report{
		Params: ReportParams{
			Author:             cfg.Query.Author,
			MinDate:            cfg.Query.MinDate.String(),
			IncludeProceedings: cfg.Query.IncludeProceedings,
			PageSize:           cfg.PageSize,
			Affiliation:        cfg.Selection.Affiliation,
			KeepAffiliation:    cfg.Selection.KeepAffiliation,
			ExcludePath:        cfg.Export.ExcludePath,
		},
		Query:  res.Query,
		Output: ReportOutput{Path: cfg.Export.OutputPath, Format: format},
		Summary: ReportSummary{
			Fetched:      res.Fetched,
			Unselected:   res.Unselected,
			Excluded:     len(res.Excluded),
			Written:      len(res.Publications),
			ExcludedDOIs: res.Excluded,
			Timestamp:    time.Now().UTC(),
		},
	}
}

// WriteReport saves the run report to a YAML file.
func WriteReport(path string, cfg Config, res Result) error {
	r := NewReport(cfg, res)
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a previously saved report.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}
