// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inspire

import "encoding/json"

// INSPIRE literature API JSON structures. Only the fields the exporter
// reads are declared; see the hep schema for the rest.

type searchResponse struct {
	Hits  searchHits  `json:"hits"`
	Links searchLinks `json:"links"`
}

type searchHits struct {
	Total int   `json:"total"`
	Hits  []Hit `json:"hits"`
}

type searchLinks struct {
	Self string `json:"self"`
	Next string `json:"next"`
}

// Hit is one literature record as returned by the search endpoint.
type Hit struct {
	ID       json.Number `json:"id"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata is the subset of the hep record used for citations.
type Metadata struct {
	ControlNumber   int               `json:"control_number"`
	Titles          []Title           `json:"titles"`
	DOIs            []Value           `json:"dois"`
	DocumentType    []string          `json:"document_type"`
	PublicationInfo []PublicationInfo `json:"publication_info"`
	Authors         []Author          `json:"authors"`
	Collaborations  []Value           `json:"collaborations"`
	Documents       []Document        `json:"documents"`
	URLs            []Value           `json:"urls"`
	EarliestDate    string            `json:"earliest_date"`
}

type Title struct {
	Title string `json:"title"`
}

// Value is the common {"value": ...} wrapper used for DOIs, URLs,
// collaborations and affiliations.
type Value struct {
	Value string `json:"value"`
}

type PublicationInfo struct {
	Year          int    `json:"year"`
	JournalTitle  string `json:"journal_title"`
	JournalVolume string `json:"journal_volume"`
	PageStart     string `json:"page_start"`
	PageEnd       string `json:"page_end"`
	ArtID         string `json:"artid"`
}

type Author struct {
	FullName     string  `json:"full_name"`
	Affiliations []Value `json:"affiliations"`
}

type Document struct {
	URL string `json:"url"`
}
