// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads per-user values that should not live in the config
// file from a directory of plain-text files. The filename is the key and
// the trimmed file contents are the value.
//
// Known keys: inspire-contact (e-mail appended to the User-Agent so INSPIRE
// operators can reach heavy users).
package secrets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/inspire-ris/internal/logging"
)

// KeyContact names the file holding the contact address.
const KeyContact = "inspire-contact"

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads all regular, non-hidden files in dir. A missing directory is
// not an error and yields empty Secrets. Unreadable files are logged and
// skipped.
func Load(ctx context.Context, dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logging.Warn(ctx, "could not read secret", zap.String("key", name), zap.Error(err))
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Keys returns the loaded key names in sorted order. Values are never
// listed so the keys can be logged safely.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UserAgent appends the contact address, if any, to base in the
// conventional "(mailto:...)" form.
func (s Secrets) UserAgent(base string) string {
	contact, ok := s[KeyContact]
	if !ok {
		return base
	}
	return fmt.Sprintf("%s (mailto:%s)", base, contact)
}
