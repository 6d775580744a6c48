package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vnkhanh/survey-insights/config"
	"github.com/vnkhanh/survey-insights/report"
	"github.com/vnkhanh/survey-insights/store"
	"github.com/vnkhanh/survey-insights/utils"
)

var (
	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Mint a JWT for the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok, err := utils.GenerateToken(cfg.Server.JWTSecret, tokenSubject, tokenRole, tokenTTL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	runsLimit int
	runsCmd   = &cobra.Command{
		Use:   "runs",
		Short: "List stored analysis runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "user the token is issued to")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "", `optional role, "admin" sees every run`)
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)

	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "how many runs to show")
	rootCmd.AddCommand(runsCmd)
}

func listRuns(cmd *cobra.Command, _ []string) error {
	if err := config.ConnectDB(cfg.Database); err != nil {
		return err
	}
	runs, total, err := store.New(config.DB).ListRuns("", runsLimit, 0)
	if err != nil {
		return err
	}

	sh := report.Sheet{
		Name:   fmt.Sprintf("Runs (%d of %d)", len(runs), total),
		Header: []string{"Job", "Status", "Source", "By", "NPS", "Responses", "Created"},
	}
	for _, r := range runs {
		nps := "-"
		if r.OverallNPS != nil {
			nps = fmt.Sprintf("%.2f", *r.OverallNPS)
		}
		sh.Rows = append(sh.Rows, []any{
			r.JobID, r.Status, r.SourceName, r.CreatedBy, nps, r.Responses,
			r.CreatedAt.Format(time.RFC3339),
		})
	}
	report.NewConsole(cmd.OutOrStdout()).Table(sh)
	return nil
}
