// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "inspire-ris/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the INSPIRE fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the INSPIRE API root (default "https://inspirehep.net/api").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// PageSize is the number of records requested per page (default 25).
	PageSize int `json:"page_size" yaml:"page_size"`

	// RateLimit caps outgoing requests per second. Zero disables pacing.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`
}

// SelectionConfig controls which authors of a record are kept.
type SelectionConfig struct {
	// Name is the queried author, as written in INSPIRE ("Family, Given").
	Name string `json:"name" yaml:"name"`

	// Affiliation restricts the author list to authors affiliated with it.
	// Empty keeps every author.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// KeepAffiliation keeps records where the queried author is not listed
	// under Affiliation, adding the author back to the selection.
	KeepAffiliation bool `json:"keep_affiliation" yaml:"keep_affiliation"`

	// Aliases maps INSPIRE author names to the preferred spelling.
	Aliases map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// OutputFormat selects the citation file format.
type OutputFormat string

const (
	OutputRIS OutputFormat = "ris"
	OutputCSL OutputFormat = "csl"
)

// ExportConfig holds settings for the exclusion and writing stages.
type ExportConfig struct {
	// ExcludePath is an existing RIS export whose DOIs are skipped. Optional.
	ExcludePath string `json:"exclude_path,omitempty" yaml:"exclude_path,omitempty"`

	// OutputPath is the citation file to write. Empty writes to stdout.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Format selects RIS (default) or CSL-YAML output.
	Format OutputFormat `json:"format" yaml:"format"`

	// ReportPath, when set, receives a YAML summary of the run.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}
