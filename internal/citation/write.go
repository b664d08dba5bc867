// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/inspire-ris/pkg/types"
)

// Write serializes pubs to w in the requested format. An empty format
// means RIS.
func Write(w io.Writer, pubs []types.Publication, format types.OutputFormat) error {
	switch format {
	case types.OutputRIS, "":
		return WriteRIS(w, pubs)
	case types.OutputCSL:
		return WriteCSL(w, pubs)
	default:
		return fmt.Errorf("%w: unknown output format %q", types.ErrConfiguration, format)
	}
}

// CheckOutputDir verifies that the directory for path exists, so a bad
// output path is reported before any network traffic.
func CheckOutputDir(path string) error {
	if path == "" {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: resolving output path %s: %v", types.ErrConfiguration, path, err)
	}
	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: no directory for output file: %s", types.ErrConfiguration, abs)
	}
	return nil
}

// WriteFile writes pubs to path, replacing any existing file. The write is
// not atomic: a failure part-way leaves a truncated file.
func WriteFile(path string, pubs []types.Publication, format types.OutputFormat) error {
	if err := CheckOutputDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, pubs, format); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
