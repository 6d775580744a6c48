package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vnkhanh/survey-insights/config"
	"github.com/vnkhanh/survey-insights/pipeline"
)

// stepCommands exposes single pipeline steps. Each one imports the survey
// first, then computes only what the step needs.
var stepCommands = []struct {
	use, step, short string
}{
	{"import", pipeline.StepImport, "Import the survey export and keep a backup copy"},
	{"nps", pipeline.StepNPS, "Compute NPS overall and per track"},
	{"improvements", pipeline.StepImprovements, "Categorize improvement suggestions"},
	{"track-improvements", pipeline.StepTrackImprovements, "Categorize improvement suggestions per track"},
	{"sessions", pipeline.StepSessions, "Rank favorite sessions per track"},
	{"lowest", pipeline.StepLowest, "List the lowest scores with their feedback"},
	{"low-scorers", pipeline.StepLowScorers, "Group what detractors asked to improve"},
	{"tracks", pipeline.StepTrackFeedback, "Promoter keywords and detractor reviews per track"},
	{"session-analysis", pipeline.StepSessionAnalysis, "Session motivations, keywords and track tables"},
	{"charts", pipeline.StepCharts, "Draw every chart"},
	{"workbook", pipeline.StepWorkbook, "Write all summaries into one workbook"},
}

var (
	skipCharts bool
	noWorkbook bool
	publish    bool

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the whole analysis",
		Args:  cobra.NoArgs,
		RunE:  runAll,
	}
)

func init() {
	for _, sc := range stepCommands {
		step := sc.step
		cmd := &cobra.Command{
			Use:   sc.use,
			Short: sc.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runStep(cmd, step)
			},
		}
		if step == pipeline.StepLowest {
			cmd.Flags().Int("count", 0, "how many scores to list (default 5)")
			bindFlag(cmd.Flags().Lookup("count"), "lowest_count")
		}
		rootCmd.AddCommand(cmd)
	}

	runCmd.Flags().BoolVar(&skipCharts, "skip-charts", false, "do not draw charts")
	runCmd.Flags().BoolVar(&noWorkbook, "no-workbook", false, "do not write the workbook")
	runCmd.Flags().BoolVar(&publish, "publish", false, "upload outputs to the configured storage bucket")
	rootCmd.AddCommand(runCmd)
}

func runStep(cmd *cobra.Command, step string) error {
	r, err := newRunner(cmd.Context(), nil)
	if err != nil {
		return err
	}
	res, err := r.RunStep(cmd.Context(), step)
	if err != nil {
		return err
	}
	printOutputs(cmd, res)
	return nil
}

func runAll(cmd *cobra.Command, _ []string) error {
	var pub pipeline.Publisher
	if publish {
		pub = publisher()
		if pub == nil {
			return fmt.Errorf("--publish needs storage.url, storage.key and storage.bucket")
		}
	}
	r, err := newRunner(cmd.Context(), func(o *pipeline.Options) {
		o.SkipCharts = skipCharts
		o.SkipWorkbook = noWorkbook
		o.Publisher = pub
		o.PublishFolder = "cli"
	})
	if err != nil {
		return err
	}
	res, err := r.Run(cmd.Context())
	if err != nil {
		return err
	}
	printOutputs(cmd, res)
	for _, w := range res.Warnings {
		config.Log.Warnw("run warning", "warning", w)
	}
	return nil
}

func printOutputs(cmd *cobra.Command, res *pipeline.Result) {
	if len(res.Artifacts) == 0 {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nSaved:")
	for _, a := range res.Artifacts {
		if a.URL != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  • %s -> %s\n", a.Path, a.URL)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  • %s\n", a.Path)
	}
}
