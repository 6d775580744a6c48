package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"google.golang.org/api/option"

	"github.com/vnkhanh/survey-insights/analysis"
	"github.com/vnkhanh/survey-insights/config"
	"github.com/vnkhanh/survey-insights/pipeline"
	"github.com/vnkhanh/survey-insights/report"
	"github.com/vnkhanh/survey-insights/survey"
	"github.com/vnkhanh/survey-insights/utils"
)

var (
	cfgFile string
	v       = newViper()
	cfg     *config.Config

	rootCmd = &cobra.Command{
		Use:   "survey-insights",
		Short: "NPS and feedback analysis for training program surveys",
		Long: `survey-insights reads a survey export (CSV or Google Sheet), computes the
Net Promoter Score overall and per track, breaks down free-text feedback and
session preferences, and writes CSV summaries, charts and a workbook.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = config.Log.Sync()
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (YAML)")
	pf.String("source", "", "survey export to read (default data.csv)")
	pf.String("csv-dir", "", "directory for CSV outputs (default csv)")
	pf.String("images-dir", "", "directory for charts (default images)")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.Bool("log-dev", false, "human readable logs")
	bindFlag(pf.Lookup("source"), "source")
	bindFlag(pf.Lookup("csv-dir"), "csv_dir")
	bindFlag(pf.Lookup("images-dir"), "images_dir")
	bindFlag(pf.Lookup("log-level"), "log.level")
	bindFlag(pf.Lookup("log-dev"), "log.dev")
}

// newViper runs during package variable initialization, before any init
// function binds flags to it.
func newViper() *viper.Viper {
	nv, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return nv
}

func bindFlag(f *pflag.Flag, key string) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func setup(*cobra.Command, []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	c, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	logger, err := config.NewLogger(cfg.Log.Level, cfg.Log.Dev)
	if err != nil {
		return err
	}
	config.SetLogger(logger)
	return nil
}

// newRunner builds a pipeline runner from the loaded config. A configured
// spreadsheet replaces the CSV source.
func newRunner(ctx context.Context, tweak func(*pipeline.Options)) (*pipeline.Runner, error) {
	cats, err := analysis.LoadCategories(cfg.CategoriesFile)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	opts := pipeline.Options{
		Source:      cfg.Source,
		Backup:      cfg.Backup,
		CSVDir:      cfg.CSVDir,
		ImagesDir:   cfg.ImagesDir,
		Columns:     cfg.Columns,
		Categories:  cats,
		LowestCount: cfg.LowestCount,
		Console:     report.NewConsole(os.Stdout),
	}

	if id := cfg.Sheets.SpreadsheetID; id != "" {
		tbl, err := survey.FetchSheet(ctx, id, cfg.Sheets.Range, sheetOptions(cfg.Sheets)...)
		if err != nil {
			return nil, err
		}
		opts.Table = tbl
		opts.Source = "sheets:" + id
	}
	if tweak != nil {
		tweak(&opts)
	}
	return pipeline.New(opts, config.Log), nil
}

func sheetOptions(s config.SheetsConfig) []option.ClientOption {
	var opts []option.ClientOption
	if s.APIKey != "" {
		opts = append(opts, option.WithAPIKey(s.APIKey))
	}
	if s.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.CredentialsFile))
	}
	return opts
}

func publisher() pipeline.Publisher {
	if !cfg.Storage.Enabled() {
		return nil
	}
	return utils.NewPublisher(cfg.Storage.URL, cfg.Storage.Key, cfg.Storage.Bucket)
}
