package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/inspire-ris/internal/inspire"
	"github.com/pdiddy/inspire-ris/internal/logging"
	"github.com/pdiddy/inspire-ris/internal/pipeline"
	"github.com/pdiddy/inspire-ris/internal/query"
	"github.com/pdiddy/inspire-ris/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch an author's publications and write a citation file",
	Long: `Fetch builds an INSPIRE query from the author name, document types and
earliest date, retrieves every result page, keeps the authors listed under the
configured affiliation, drops entries whose DOI is already in the --exclude
export, and writes the remainder.

Example:

  inspire-ris fetch -n "Ehataht, Karl" -o publications.ris -d 2021-01-25 \
      -e PublicationDocument.ris -p -v`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("name", "n", "", "author's name, as listed in INSPIRE (required)")
	fetchCmd.Flags().StringP("out", "o", "", "output file (if none, print on screen)")
	fetchCmd.Flags().StringP("exclude", "e", "", "RIS file whose DOIs are excluded")
	fetchCmd.Flags().StringP("date", "d", "", "earliest date of publication (yyyy, yyyy-mm or yyyy-mm-dd)")
	fetchCmd.Flags().IntP("query-size", "s", inspire.DefaultPageSize, "number of publications fetched per query")
	fetchCmd.Flags().BoolP("keep-affiliation", "k", false, "keep publications where the author is not listed under the affiliation")
	fetchCmd.Flags().BoolP("include-proceedings", "p", false, "include conference proceedings")
	fetchCmd.Flags().String("format", string(types.OutputRIS), "output format: ris or csl")
	fetchCmd.Flags().String("report", "", "write a YAML run report to this file")
	_ = fetchCmd.MarkFlagRequired("name")

	_ = viper.BindPFlag("inspire.page_size", fetchCmd.Flags().Lookup("query-size"))

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	out, _ := cmd.Flags().GetString("out")
	excludePath, _ := cmd.Flags().GetString("exclude")
	dateStr, _ := cmd.Flags().GetString("date")
	keepAffiliation, _ := cmd.Flags().GetBool("keep-affiliation")
	includeProceedings, _ := cmd.Flags().GetBool("include-proceedings")
	format, _ := cmd.Flags().GetString("format")
	report, _ := cmd.Flags().GetString("report")

	minDate, err := query.ParseDate(dateStr)
	if err != nil {
		return err
	}

	fetchCfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: loadedSecrets.UserAgent(viper.GetString("http.user_agent")),
		},
		BaseURL:   viper.GetString("inspire.base_url"),
		PageSize:  viper.GetInt("inspire.page_size"),
		RateLimit: viper.GetFloat64("inspire.rate_limit"),
	}

	cfg := pipeline.Config{
		Query: query.Params{
			Author:             name,
			MinDate:            minDate,
			IncludeProceedings: includeProceedings,
		},
		PageSize: fetchCfg.PageSize,
		Selection: types.SelectionConfig{
			Name:            name,
			Affiliation:     viper.GetString("affiliation"),
			KeepAffiliation: keepAffiliation,
			Aliases:         viper.GetStringMapString("aliases"),
		},
		Export: types.ExportConfig{
			ExcludePath: excludePath,
			OutputPath:  out,
			Format:      types.OutputFormat(format),
			ReportPath:  report,
		},
	}

	switch cfg.Export.Format {
	case types.OutputRIS, types.OutputCSL:
	default:
		return fmt.Errorf("%w: unknown output format %q (want ris or csl)", types.ErrConfiguration, format)
	}

	ctx = logging.WithFields(ctx, zap.String("author", name))
	client := inspire.NewClient(fetchCfg)
	res, err := pipeline.Run(ctx, cfg, client, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	logging.Info(ctx, "export finished",
		zap.Int("fetched", res.Fetched),
		zap.Int("unselected", res.Unselected),
		zap.Int("excluded", len(res.Excluded)),
		zap.Int("written", len(res.Publications)))
	return nil
}
