// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inspire

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/inspire-ris/internal/logging"
	"github.com/pdiddy/inspire-ris/pkg/types"
)

// RecordURLBase prefixes a control number to link a record on inspirehep.net.
const RecordURLBase = "https://inspirehep.net/record/"

// collabAuthorThreshold is the author count below which a collaboration is
// credited on the last selected author rather than as a separate entry.
const collabAuthorThreshold = 10

var docTypes = map[string]types.DocType{
	"article":          types.DocJournal,
	"conference paper": types.DocConference,
}

var earliestDateLayouts = []struct {
	layout    string
	precision types.DatePrecision
}{
	{"2006-01-02", types.PrecisionDay},
	{"2006-01", types.PrecisionMonth},
	{"2006", types.PrecisionYear},
}

// Converter maps hits to publications under an author selection.
type Converter struct {
	sel     types.SelectionConfig
	aliases map[string]string
}

// NewConverter returns a Converter for sel. Alias keys match case-insensitively
// since viper lowercases map keys read from config.
func NewConverter(sel types.SelectionConfig) *Converter {
	aliases := make(map[string]string, len(sel.Aliases))
	for k, v := range sel.Aliases {
		aliases[strings.ToLower(k)] = v
	}
	return &Converter{sel: sel, aliases: aliases}
}

// Convert maps hit to a Publication. It reports false when the author
// selection rejects the record: an affiliation is configured, the queried
// author is not listed under it, and KeepAffiliation is off.
func (c *Converter) Convert(ctx context.Context, hit Hit) (types.Publication, bool) {
	md := hit.Metadata
	id := hit.ID.String()
	if id == "" && md.ControlNumber > 0 {
		id = strconv.Itoa(md.ControlNumber)
	}
	ctx = logging.WithFields(ctx, zap.String("record", RecordURLBase+id))

	p := types.Publication{
		ID:        id,
		RecordURL: RecordURLBase + id,
		Type:      docType(ctx, md.DocumentType),
	}
	p.Date, p.DatePrecision = parseEarliestDate(md.EarliestDate)
	if len(md.Titles) > 0 {
		p.Title = md.Titles[0].Title
	}
	if len(md.DOIs) > 0 {
		p.DOI = strings.TrimSpace(md.DOIs[0].Value)
	}
	if !p.HasDOI() {
		logging.Debug(ctx, "record has no DOI")
	}

	if info, ok := firstDatedInfo(md.PublicationInfo); ok {
		p.Year = info.Year
		p.Journal = info.JournalTitle
		p.Volume = info.JournalVolume
		p.PageStart = info.PageStart
		if p.PageStart == "" {
			p.PageStart = info.ArtID
		}
		p.PageEnd = info.PageEnd
	} else {
		logging.Debug(ctx, "no publication year in journal references")
		if !p.Date.IsZero() {
			p.Year = p.Date.Year()
		}
	}

	switch {
	case len(md.Documents) > 0 && md.Documents[0].URL != "":
		p.FulltextURL = md.Documents[0].URL
	case len(md.URLs) > 0 && md.URLs[0].Value != "":
		p.FulltextURL = md.URLs[0].Value
	}

	authors, ok := c.selectAuthors(md.Authors)
	if !ok {
		logging.Debug(ctx, "author not listed under affiliation, skipping record",
			zap.String("affiliation", c.sel.Affiliation))
		return types.Publication{}, false
	}
	p.Authors = creditCollaborations(authors, md.Collaborations, len(md.Authors))
	return p, true
}

// selectAuthors returns the author names to credit. Without an affiliation
// every author is kept in source order. With one, only affiliated authors
// are kept, mapped through the alias table and sorted. It reports false
// when the queried author is missing and the record should be dropped.
func (c *Converter) selectAuthors(authors []Author) ([]string, bool) {
	if c.sel.Affiliation == "" {
		names := make([]string, 0, len(authors))
		for _, a := range authors {
			names = append(names, c.alias(a.FullName))
		}
		return names, true
	}

	var selected []string
	for _, a := range authors {
		for _, aff := range a.Affiliations {
			if aff.Value == c.sel.Affiliation {
				selected = append(selected, a.FullName)
				break
			}
		}
	}

	if !c.listed(selected) {
		if !c.sel.KeepAffiliation {
			return nil, false
		}
		selected = append(selected, c.sel.Name)
	}

	for i, name := range selected {
		selected[i] = c.alias(name)
	}
	sort.Strings(selected)
	return selected, true
}

// listed reports whether the queried author, or its alias, is in names.
func (c *Converter) listed(names []string) bool {
	alias, hasAlias := c.aliases[strings.ToLower(c.sel.Name)]
	for _, n := range names {
		if n == c.sel.Name || (hasAlias && n == alias) {
			return true
		}
	}
	return false
}

func (c *Converter) alias(name string) string {
	if a, ok := c.aliases[strings.ToLower(name)]; ok {
		return a
	}
	return name
}

// creditCollaborations appends the collaboration note to the author list:
// on the last author for small author lists, as an "et al." entry otherwise.
func creditCollaborations(authors []string, collabs []Value, totalAuthors int) []string {
	if len(collabs) == 0 {
		return authors
	}
	names := make([]string, 0, len(collabs))
	for _, c := range collabs {
		names = append(names, c.Value)
	}
	sort.Strings(names)

	note := JoinWithAnd(names) + " Collaboration"
	if len(names) > 1 {
		note += "s"
	}

	if totalAuthors < collabAuthorThreshold && len(authors) > 0 {
		authors[len(authors)-1] += " (for the " + note + ")"
		return authors
	}
	return append(authors, "et al. ("+note+")")
}

// JoinWithAnd joins items as "a", "a and b" or "a, b and c".
func JoinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// docType maps the first INSPIRE document type to a RIS type. Unknown
// types become GEN.
func docType(ctx context.Context, kinds []string) types.DocType {
	if len(kinds) == 0 {
		return types.DocGeneric
	}
	if t, ok := docTypes[kinds[0]]; ok {
		return t
	}
	logging.Debug(ctx, "unexpected document type", zap.String("document_type", kinds[0]))
	return types.DocGeneric
}

func firstDatedInfo(infos []PublicationInfo) (PublicationInfo, bool) {
	for _, info := range infos {
		if info.Year > 0 {
			return info, true
		}
	}
	return PublicationInfo{}, false
}

func parseEarliestDate(s string) (time.Time, types.DatePrecision) {
	for _, l := range earliestDateLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return t, l.precision
		}
	}
	return time.Time{}, types.PrecisionDay
}
