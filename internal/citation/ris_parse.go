// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pdiddy/inspire-ris/pkg/types"
)

// risTagLine matches a tagged RIS line such as "TY  - JOUR" or "ER  -".
var risTagLine = regexp.MustCompile(`^[A-Z][A-Z0-9]  -( |$)`)

// ParseDOIs extracts the normalised DOIs of every DO field in a RIS stream.
//
// The input may be UTF-8 or carry a UTF-8/UTF-16 byte order mark; exports
// from research information systems are often UTF-16. A stream that does
// not decode to text, contains no RIS tags, or has a DO line that does not
// split into exactly a tag and a value returns an error wrapping
// types.ErrParse.
func ParseDOIs(r io.Reader) ([]string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var dois []string
	lineNo := 0
	sawTag := false
	sawText := false
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.ContainsRune(line, utf8.RuneError) || strings.ContainsRune(line, 0) {
			return nil, fmt.Errorf("%w: line %d is not valid text (UTF-16 without byte order mark?)", types.ErrParse, lineNo)
		}

		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		sawText = true
		if risTagLine.MatchString(stripped) {
			sawTag = true
		}

		if !strings.HasPrefix(stripped, "DO ") {
			continue
		}
		parts := strings.Split(stripped, " - ")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: malformed DO field on line %d: %q", types.ErrParse, lineNo, stripped)
		}
		if doi := NormalizeDOI(parts[1]); doi != "" {
			dois = append(dois, doi)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading RIS data: %v", types.ErrParse, err)
	}
	if sawText && !sawTag {
		return nil, fmt.Errorf("%w: no RIS tags found", types.ErrParse)
	}
	return dois, nil
}
