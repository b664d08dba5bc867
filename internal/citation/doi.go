// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "strings"

// doiPrefixes are resolver and scheme prefixes stripped from DOIs, checked
// against the lowercased value.
var doiPrefixes = []string{
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"https://doi.org/",
	"http://doi.org/",
	"dx.doi.org/",
	"doi.org/",
	"doi:",
}

// NormalizeDOI returns the bare, lowercased form of a DOI so values written
// as URLs, "doi:" references or plain identifiers compare equal. DOIs are
// case-insensitive.
func NormalizeDOI(doi string) string {
	doi = strings.ToLower(strings.TrimSpace(doi))
	for _, p := range doiPrefixes {
		if strings.HasPrefix(doi, p) {
			doi = strings.TrimSpace(doi[len(p):])
			break
		}
	}
	return doi
}

// DOIURL returns the resolver URL written into RIS DO fields.
func DOIURL(doi string) string {
	return "https://dx.doi.org/" + doi
}
