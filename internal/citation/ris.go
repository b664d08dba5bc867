// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation reads and writes citation files: RIS for reference
// managers and research information systems, CSL-YAML for Pandoc.
package citation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/inspire-ris/pkg/types"
)

// Fixed RIS field values expected by the research information system the
// exports are imported into.
const (
	risDatabase = "WoS"
	risLanguage = "English"
)

// risField is one tagged line of a RIS block.
type risField struct {
	tag   string
	value string
}

// risFields lays out p as RIS tag/value pairs in output order. Optional
// fields with no value are left out; AU repeats once per author.
func risFields(p types.Publication) []risField {
	var fields []risField
	add := func(tag, value string) {
		// A line break inside a value would start a new RIS line.
		value = strings.Join(strings.Fields(value), " ")
		if value != "" {
			fields = append(fields, risField{tag, value})
		}
	}

	docType := p.Type
	if docType == "" {
		docType = types.DocGeneric
	}
	add("TY", string(docType))
	if p.Year > 0 {
		add("PY", strconv.Itoa(p.Year))
	}
	add("DA", risDate(p))
	add("JO", p.Journal)
	add("VL", p.Volume)
	add("T1", p.Title)
	if p.HasDOI() {
		add("DO", DOIURL(p.DOI))
	}
	add("DB", risDatabase)
	add("DP", risDatabase)
	add("LA", risLanguage)
	add("UR", p.RecordURL)
	add("SP", p.PageStart)
	add("EP", p.PageEnd)
	add("AV", p.FulltextURL)
	for _, a := range p.Authors {
		add("AU", a)
	}
	return fields
}

// risDate renders the known parts of p's date as YYYY/MM/DD, leaving
// unknown parts empty ("2021//", "2021/03/").
func risDate(p types.Publication) string {
	parts := p.DateParts()
	if parts == nil {
		return ""
	}
	out := [3]string{}
	out[0] = fmt.Sprintf("%04d", parts[0])
	for i := 1; i < len(parts); i++ {
		out[i] = fmt.Sprintf("%02d", parts[i])
	}
	return strings.Join(out[:], "/")
}

// WriteRIS writes pubs to w as RIS, one block per publication terminated
// by an ER line, blocks separated by a blank line.
func WriteRIS(w io.Writer, pubs []types.Publication) error {
	bw := bufio.NewWriter(w)
	for i, p := range pubs {
		if i > 0 {
			bw.WriteString("\n")
		}
		for _, f := range risFields(p) {
			fmt.Fprintf(bw, "%s  - %s\n", f.tag, f.value)
		}
		bw.WriteString("ER  - \n")
	}
	return bw.Flush()
}
