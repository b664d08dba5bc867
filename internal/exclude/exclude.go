// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package exclude skips publications that already appear in an existing
// citation export, matching them by DOI.
package exclude

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/pdiddy/inspire-ris/internal/citation"
	"github.com/pdiddy/inspire-ris/internal/logging"
	"github.com/pdiddy/inspire-ris/pkg/types"
)

// Set is a read-only set of normalised DOIs.
type Set struct {
	dois map[string]struct{}
}

// NewSet builds a Set from raw DOI strings in any accepted notation.
func NewSet(dois ...string) Set {
	s := Set{dois: make(map[string]struct{}, len(dois))}
	for _, d := range dois {
		if n := citation.NormalizeDOI(d); n != "" {
			s.dois[n] = struct{}{}
		}
	}
	return s
}

// Len returns the number of distinct DOIs in the set.
func (s Set) Len() int { return len(s.dois) }

// Contains reports whether doi, in any accepted notation, is in the set.
// The empty DOI is never contained.
func (s Set) Contains(doi string) bool {
	n := citation.NormalizeDOI(doi)
	if n == "" {
		return false
	}
	_, ok := s.dois[n]
	return ok
}

// Load reads the RIS export at path and returns its DOIs. An empty path
// yields an empty set. A missing file is a configuration error; a malformed
// one is a parse error.
func Load(ctx context.Context, path string) (Set, error) {
	if path == "" {
		return NewSet(), nil
	}
	logging.Debug(ctx, "excluding DOIs recorded in export", zap.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Set{}, fmt.Errorf("%w: no such file: %s", types.ErrConfiguration, path)
		}
		return Set{}, fmt.Errorf("%w: opening %s: %v", types.ErrConfiguration, path, err)
	}
	defer f.Close()

	dois, err := citation.ParseDOIs(f)
	if err != nil {
		return Set{}, fmt.Errorf("%s: %w", path, err)
	}

	s := NewSet(dois...)
	logging.Debug(ctx, "loaded exclusion set", zap.String("path", path), zap.Int("dois", s.Len()))
	return s, nil
}

// Filter returns the publications whose DOI is not in s, keeping their
// order, together with the DOIs that were dropped. Publications without a
// DOI always pass.
func Filter(ctx context.Context, pubs []types.Publication, s Set) ([]types.Publication, []string) {
	kept := make([]types.Publication, 0, len(pubs))
	var excluded []string
	for _, p := range pubs {
		if p.HasDOI() && s.Contains(p.DOI) {
			logging.Debug(ctx, "excluding DOI", zap.String("doi", p.DOI))
			excluded = append(excluded, p.DOI)
			continue
		}
		kept = append(kept, p)
	}
	return kept, excluded
}
