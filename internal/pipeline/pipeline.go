// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one export: build the query, fetch every page,
// select authors, drop already-exported DOIs and write the citation file.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/inspire-ris/internal/citation"
	"github.com/pdiddy/inspire-ris/internal/exclude"
	"github.com/pdiddy/inspire-ris/internal/inspire"
	"github.com/pdiddy/inspire-ris/internal/logging"
	"github.com/pdiddy/inspire-ris/internal/query"
	"github.com/pdiddy/inspire-ris/pkg/types"
)

// Fetcher retrieves every hit for a query string. *inspire.Client
// implements it.
type Fetcher interface {
	Fetch(ctx context.Context, q string, pageSize int) ([]inspire.Hit, error)
}

// Config is the full input of a run.
type Config struct {
	Query     query.Params
	PageSize  int
	Selection types.SelectionConfig
	Export    types.ExportConfig
}

// Result summarises a successful run.
type Result struct {
	Query        string
	Fetched      int
	Unselected   int
	Excluded     []string
	Publications []types.Publication
}

// Run executes the pipeline. Output goes to cfg.Export.OutputPath, or to
// stdout when the path is empty. Inputs are validated and the exclusion
// file is parsed before any request is made; nothing is written unless
// fetching and filtering succeeded.
func Run(ctx context.Context, cfg Config, f Fetcher, stdout io.Writer) (Result, error) {
	q, err := query.Build(cfg.Query)
	if err != nil {
		return Result{}, err
	}
	logging.Debug(ctx, "constructed query", zap.String("query", q))

	if err := citation.CheckOutputDir(cfg.Export.OutputPath); err != nil {
		return Result{}, err
	}

	excl, err := exclude.Load(ctx, cfg.Export.ExcludePath)
	if err != nil {
		return Result{}, err
	}

	hits, err := f.Fetch(ctx, q, cfg.PageSize)
	if err != nil {
		return Result{}, err
	}

	res := Result{Query: q, Fetched: len(hits)}

	sel := cfg.Selection
	if sel.Name == "" {
		sel.Name = cfg.Query.Author
	}
	conv := inspire.NewConverter(sel)
	pubs := make([]types.Publication, 0, len(hits))
	for _, h := range hits {
		p, ok := conv.Convert(ctx, h)
		if !ok {
			res.Unselected++
			continue
		}
		pubs = append(pubs, p)
	}

	res.Publications, res.Excluded = exclude.Filter(ctx, pubs, excl)
	logging.Debug(ctx, "filtered publications", zap.Int("kept", len(res.Publications)), zap.Int("excluded", len(res.Excluded)))

	if cfg.Export.OutputPath == "" {
		if err := citation.Write(stdout, res.Publications, cfg.Export.Format); err != nil {
			return Result{}, fmt.Errorf("writing to stdout: %w", err)
		}
	} else {
		if err := citation.WriteFile(cfg.Export.OutputPath, res.Publications, cfg.Export.Format); err != nil {
			return Result{}, err
		}
		logging.Info(ctx, "saved results", zap.String("path", cfg.Export.OutputPath))
	}

	if cfg.Export.ReportPath != "" {
		if err := WriteReport(cfg.Export.ReportPath, cfg, res); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}
