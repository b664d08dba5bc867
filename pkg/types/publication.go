// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the inspire-ris pipeline:
// the Publication record passed between stages, stage configuration, and
// the error kinds surfaced to the CLI.
package types

import "time"

// DocType is the RIS reference type of a publication.
type DocType string

const (
	DocJournal    DocType = "JOUR"
	DocConference DocType = "CONF"
	DocGeneric    DocType = "GEN"
)

// DatePrecision is how much of a date the source actually gave.
type DatePrecision int

const (
	PrecisionDay DatePrecision = iota
	PrecisionMonth
	PrecisionYear
)

// Publication holds the metadata of one INSPIRE literature record after
// author selection. It only lives for the duration of a run.
type Publication struct {
	// ID is the INSPIRE control number.
	ID string `json:"id" yaml:"id"`

	// Title is the first title listed for the record.
	Title string `json:"title" yaml:"title"`

	// Authors lists the selected authors. When an affiliation filter is
	// active this is a sorted, alias-mapped subset of the full author list.
	Authors []string `json:"authors" yaml:"authors"`

	// DOI is the bare DOI (no resolver prefix). Empty when the record has none.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Type is the RIS reference type derived from the INSPIRE document type.
	Type DocType `json:"type" yaml:"type"`

	// Date is the earliest known date of the record. Zero when unknown.
	Date time.Time `json:"date" yaml:"date"`

	// DatePrecision says which parts of Date are known.
	DatePrecision DatePrecision `json:"date_precision,omitempty" yaml:"date_precision,omitempty"`

	// Year is the publication year from the journal reference, or from Date.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	Journal   string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Volume    string `json:"volume,omitempty" yaml:"volume,omitempty"`
	PageStart string `json:"page_start,omitempty" yaml:"page_start,omitempty"`
	PageEnd   string `json:"page_end,omitempty" yaml:"page_end,omitempty"`

	// RecordURL points at the record on inspirehep.net.
	RecordURL string `json:"record_url" yaml:"record_url"`

	// FulltextURL is a link to a document or external page, if any.
	FulltextURL string `json:"fulltext_url,omitempty" yaml:"fulltext_url,omitempty"`
}

// DateParts returns the known parts of Date: year, then month and day as far
// as DatePrecision allows. Nil when Date is zero.
func (p Publication) DateParts() []int {
	if p.Date.IsZero() {
		return nil
	}
	switch p.DatePrecision {
	case PrecisionYear:
		return []int{p.Date.Year()}
	case PrecisionMonth:
		return []int{p.Date.Year(), int(p.Date.Month())}
	default:
		return []int{p.Date.Year(), int(p.Date.Month()), p.Date.Day()}
	}
}

// HasDOI reports whether the publication carries a DOI.
func (p Publication) HasDOI() bool { return p.DOI != "" }
