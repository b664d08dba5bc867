// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/inspire-ris/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

var cslTypes = map[types.DocType]string{
	types.DocJournal:    "article-journal",
	types.DocConference: "paper-conference",
}

// WriteCSL writes pubs as a CSL-YAML list to w.
func WriteCSL(w io.Writer, pubs []types.Publication) error {
	items := make([]CSLItem, len(pubs))
	for i, p := range pubs {
		items[i] = toCSLItem(p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(p types.Publication) CSLItem {
	item := CSLItem{
		ID:             "inspire:" + p.ID,
		Type:           "article",
		Title:          p.Title,
		ContainerTitle: p.Journal,
		Volume:         p.Volume,
		DOI:            p.DOI,
		URL:            p.RecordURL,
	}
	if t, ok := cslTypes[p.Type]; ok {
		item.Type = t
	}

	for _, a := range p.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}

	switch {
	case !p.Date.IsZero():
		item.Issued = &CSLDate{DateParts: [][]int{p.DateParts()}}
	case p.Year > 0:
		item.Issued = &CSLDate{DateParts: [][]int{{p.Year}}}
	}

	switch {
	case p.PageStart != "" && p.PageEnd != "":
		item.Page = fmt.Sprintf("%s-%s", p.PageStart, p.PageEnd)
	case p.PageStart != "":
		item.Page = p.PageStart
	}
	return item
}

// parseAuthorName splits an INSPIRE "Family, Given" name into CSL parts.
// Names without a comma, such as collaboration notes, use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	family, given, ok := strings.Cut(name, ",")
	if !ok || strings.Contains(name, "(") {
		return CSLName{Literal: name}
	}
	return CSLName{
		Family: strings.TrimSpace(family),
		Given:  strings.TrimSpace(given),
	}
}
