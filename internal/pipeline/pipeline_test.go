// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/inspire-ris/internal/citation"
	"github.com/pdiddy/inspire-ris/internal/inspire"
	"github.com/pdiddy/inspire-ris/internal/logging"
	"github.com/pdiddy/inspire-ris/internal/query"
	"github.com/pdiddy/inspire-ris/pkg/types"
)

type fakeFetcher struct {
	hits     []inspire.Hit
	err      error
	gotQuery string
	calls    int
}

func (f *fakeFetcher) Fetch(_ context.Context, q string, _ int) ([]inspire.Hit, error) {
	f.calls++
	f.gotQuery = q
	return f.hits, f.err
}

func hit(id, doi, author string) inspire.Hit {
	h := inspire.Hit{
		ID: json.Number(id),
		Metadata: inspire.Metadata{
			Titles:       []inspire.Title{{Title: "Paper " + id}},
			DocumentType: []string{"article"},
			Authors:      []inspire.Author{{FullName: author}},
		},
	}
	if doi != "" {
		h.Metadata.DOIs = []inspire.Value{{Value: doi}}
	}
	return h
}

func smithConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Query: query.Params{
			Author:  "Smith, J.",
			MinDate: query.DateOf(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
		PageSize: 25,
		Export:   types.ExportConfig{OutputPath: filepath.Join(t.TempDir(), "publications.ris")},
	}
}

func writeExport(t *testing.T, dois ...string) string {
	t.Helper()
	var b strings.Builder
	for _, d := range dois {
		fmt.Fprintf(&b, "TY  - JOUR\nDO  - https://dx.doi.org/%s\nER  - \n\n", d)
	}
	path := filepath.Join(t.TempDir(), "PublicationDocument.ris")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func readDOIs(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	dois, err := citation.ParseDOIs(f)
	require.NoError(t, err)
	return dois
}

func TestRunScenario(t *testing.T) {
	cfg := smithConfig(t)
	cfg.Export.ExcludePath = writeExport(t, "10.1000/b")
	f := &fakeFetcher{hits: []inspire.Hit{
		hit("1", "10.1000/a", "Smith, J."),
		hit("2", "10.1000/b", "Smith, J."),
		hit("3", "10.1000/c", "Smith, J."),
	}}

	res, err := Run(context.Background(), cfg, f, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "a Smith, J. and tc p and de > 2024-01-01", f.gotQuery)
	assert.Equal(t, 3, res.Fetched)
	assert.Equal(t, []string{"10.1000/b"}, res.Excluded)
	assert.Equal(t, []string{"10.1000/a", "10.1000/c"}, readDOIs(t, cfg.Export.OutputPath))
}

func TestRunWritesStdoutWithoutOutputPath(t *testing.T) {
	cfg := smithConfig(t)
	cfg.Export.OutputPath = ""
	f := &fakeFetcher{hits: []inspire.Hit{hit("1", "10.1000/a", "Smith, J."), hit("2", "", "Smith, J.")}}

	var stdout bytes.Buffer
	res, err := Run(context.Background(), cfg, f, &stdout)
	require.NoError(t, err)
	assert.Len(t, res.Publications, 2)
	assert.Contains(t, stdout.String(), "DO  - https://dx.doi.org/10.1000/a")
	assert.Equal(t, 2, strings.Count(stdout.String(), "ER  - "))
}

func TestRunCSLFormat(t *testing.T) {
	cfg := smithConfig(t)
	cfg.Export.OutputPath = ""
	cfg.Export.Format = types.OutputCSL
	f := &fakeFetcher{hits: []inspire.Hit{hit("1", "10.1000/a", "Smith, J.")}}

	var stdout bytes.Buffer
	_, err := Run(context.Background(), cfg, f, &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "DOI: 10.1000/a")
}

func TestRunAffiliationDropsRecords(t *testing.T) {
	cfg := smithConfig(t)
	cfg.Selection = types.SelectionConfig{Affiliation: "NICPB, Tallinn"}
	h := hit("1", "10.1000/a", "Smith, J.")
	h.Metadata.Authors[0].Affiliations = []inspire.Value{{Value: "NICPB, Tallinn"}}
	f := &fakeFetcher{hits: []inspire.Hit{h, hit("2", "10.1000/b", "Smith, J.")}}

	res, err := Run(context.Background(), cfg, f, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Unselected)
	require.Len(t, res.Publications, 1)
	assert.Equal(t, "1", res.Publications[0].ID)
}

func TestRunErrorsBeforeFetch(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, cfg *Config)
		wantErr error
	}{
		{
			name:    "empty author",
			mutate:  func(_ *testing.T, cfg *Config) { cfg.Query.Author = "" },
			wantErr: types.ErrConfiguration,
		},
		{
			name: "missing output directory",
			mutate: func(t *testing.T, cfg *Config) {
				cfg.Export.OutputPath = filepath.Join(t.TempDir(), "missing", "out.ris")
			},
			wantErr: types.ErrConfiguration,
		},
		{
			name: "missing exclusion file",
			mutate: func(t *testing.T, cfg *Config) {
				cfg.Export.ExcludePath = filepath.Join(t.TempDir(), "nope.ris")
			},
			wantErr: types.ErrConfiguration,
		},
		{
			name: "malformed exclusion file",
			mutate: func(t *testing.T, cfg *Config) {
				path := filepath.Join(t.TempDir(), "bad.ris")
				require.NoError(t, os.WriteFile(path, []byte("TY  - JOUR\nDO  - x - y\n"), 0o644))
				cfg.Export.ExcludePath = path
			},
			wantErr: types.ErrParse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smithConfig(t)
			tt.mutate(t, &cfg)
			f := &fakeFetcher{}

			_, err := Run(context.Background(), cfg, f, &bytes.Buffer{})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.calls)
		})
	}
}

func TestRunFetchFailureWritesNothing(t *testing.T) {
	cfg := smithConfig(t)
	f := &fakeFetcher{err: fmt.Errorf("%w: INSPIRE API returned HTTP 502", types.ErrNetwork)}

	_, err := Run(context.Background(), cfg, f, &bytes.Buffer{})
	assert.True(t, errors.Is(err, types.ErrNetwork))
	assert.NoFileExists(t, cfg.Export.OutputPath)
}

func TestRunLogsQuery(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := logging.WithLogger(context.Background(), zap.New(core))

	cfg := smithConfig(t)
	_, err := Run(ctx, cfg, &fakeFetcher{}, &bytes.Buffer{})
	require.NoError(t, err)

	entries := logs.FilterMessage("constructed query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "a Smith, J. and tc p and de > 2024-01-01", entries[0].ContextMap()["query"])

	filtered := logs.FilterMessage("filtered publications").All()
	require.Len(t, filtered, 1)
	assert.Equal(t, map[string]interface{}{"kept": int64(0), "excluded": int64(0)}, filtered[0].ContextMap())
}

func TestRunAgainstAPI(t *testing.T) {
	var pages int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		assert.Equal(t, "a Smith, J. and (tc p or tc c) and de > 2024-01-01", r.URL.Query().Get("q"))
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{"hits":{"total":3,"hits":[
				{"id":"1","metadata":{"titles":[{"title":"A"}],"dois":[{"value":"10.1000/A"}],"document_type":["article"],"authors":[{"full_name":"Smith, J."}]}},
				{"id":"2","metadata":{"titles":[{"title":"B"}],"dois":[{"value":"10.1000/B"}],"document_type":["conference paper"],"authors":[{"full_name":"Smith, J."}]}}
			]},"links":{"next":"more"}}`)
		default:
			fmt.Fprint(w, `{"hits":{"total":3,"hits":[
				{"id":"3","metadata":{"titles":[{"title":"C"}],"dois":[{"value":"10.1000/C"}],"document_type":["article"],"authors":[{"full_name":"Smith, J."}]}}
			]},"links":{}}`)
		}
	}))
	defer ts.Close()

	cfg := smithConfig(t)
	cfg.PageSize = 2
	cfg.Query.IncludeProceedings = true
	cfg.Export.ExcludePath = writeExport(t, "10.1000/B")
	cfg.Export.ReportPath = filepath.Join(t.TempDir(), "report.yaml")

	client := inspire.NewClient(types.FetchConfig{BaseURL: ts.URL}, inspire.WithDoer(ts.Client()))
	res, err := Run(context.Background(), cfg, client, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 2, pages)
	assert.Equal(t, 3, res.Fetched)
	assert.Equal(t, []string{"10.1000/a", "10.1000/c"}, readDOIs(t, cfg.Export.OutputPath))

	report, err := ReadReport(cfg.Export.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, "Smith, J.", report.Params.Author)
	assert.Equal(t, "2024-01-01", report.Params.MinDate)
	assert.Equal(t, res.Query, report.Query)
	assert.Equal(t, 3, report.Summary.Fetched)
	assert.Equal(t, 1, report.Summary.Excluded)
	assert.Equal(t, 2, report.Summary.Written)
	assert.Equal(t, []string{"10.1000/B"}, report.Summary.ExcludedDOIs)
	assert.Equal(t, "ris", report.Output.Format)
}
