// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds INSPIRE search strings from the author, date and
// document-type selection of a run.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/inspire-ris/pkg/types"
)

// Date layouts accepted for the minimum date, from least to most precise.
var dateLayouts = []string{"2006", "2006-01", "2006-01-02"}

// Date is a lower date bound kept at the precision the user supplied, so
// "2021" queries from the start of the year instead of 2021-01-01 exactly.
type Date struct {
	Time   time.Time
	layout string
}

// ParseDate accepts yyyy, yyyy-mm or yyyy-mm-dd. An empty string yields the
// zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if len(s) != len(layout) {
			continue
		}
		t, err := time.Parse(layout, s)
		if err == nil {
			return Date{Time: t, layout: layout}, nil
		}
	}
	return Date{}, fmt.Errorf("%w: invalid date %q (want yyyy, yyyy-mm or yyyy-mm-dd)", types.ErrConfiguration, s)
}

// DateOf wraps a full calendar date.
func DateOf(t time.Time) Date {
	return Date{Time: t, layout: "2006-01-02"}
}

// IsZero reports whether no date bound is set.
func (d Date) IsZero() bool { return d.Time.IsZero() }

// String formats the date at its original precision.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	layout := d.layout
	if layout == "" {
		layout = "2006-01-02"
	}
	return d.Time.Format(layout)
}

// Params is the immutable input of the query builder.
type Params struct {
	Author             string
	MinDate            Date
	IncludeProceedings bool
}

// Build returns the INSPIRE search string for p, e.g.
//
//	a Smith, J. and (tc p or tc c) and de > 2024-01-01
//
// Only the author is mandatory.
func Build(p Params) (string, error) {
	author := strings.TrimSpace(p.Author)
	if author == "" {
		return "", fmt.Errorf("%w: author name is required", types.ErrConfiguration)
	}

	selection := []string{"a " + author, docTypeFilter(p.IncludeProceedings)}
	if !p.MinDate.IsZero() {
		selection = append(selection, "de > "+p.MinDate.String())
	}
	return strings.Join(selection, " and "), nil
}

// docTypeFilter restricts hits to papers, and to conference proceedings too
// when requested. Conference records are excluded here rather than after
// the fetch.
func docTypeFilter(includeProceedings bool) string {
	doctypes := []string{"p"}
	if includeProceedings {
		doctypes = append(doctypes, "c")
	}
	terms := make([]string, len(doctypes))
	for i, d := range doctypes {
		terms[i] = "tc " + d
	}
	filter := strings.Join(terms, " or ")
	if len(terms) > 1 {
		filter = "(" + filter + ")"
	}
	return filter
}
