package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/f3rmion/savour/internal/analysis"
	"github.com/f3rmion/savour/internal/clipboard"
	"github.com/f3rmion/savour/internal/form"
	"github.com/f3rmion/savour/internal/language"
	"github.com/f3rmion/savour/internal/preview"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze a food photo and print the report",
	Long: `Send a food photo to the analysis service and print the calorie and
nutrition report it returns.

Examples:
  savour analyze lunch.jpg
  savour analyze dinner.png --language es
  savour analyze breakfast.jpg -l fr --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeLanguage string
	analyzeCopy     bool
)

var errAnalysisFailed = errors.New("analysis failed")

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", language.Default().Code, "Report language code (see 'savour languages')")
	analyzeCmd.Flags().BoolVarP(&analyzeCopy, "copy", "c", false, "Copy the report to the clipboard")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	configDir := getConfigDir()
	cfg, err := loadUserConfig(configDir)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(cfg, configDir, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if _, ok := language.Lookup(analyzeLanguage); !ok {
		return fmt.Errorf("unknown language %q (see 'savour languages')", analyzeLanguage)
	}

	photo, err := preview.Open(args[0])
	if err != nil {
		return err
	}

	client, err := analysis.NewClient(cfg.Endpoint)
	if err != nil {
		return err
	}

	// Drive the same state machine as the TUI, running effects inline.
	st := form.New()
	queue := []form.Action{
		form.PickImage{File: photo},
		form.SelectLanguage{Code: analyzeLanguage},
		form.SubmitAnalysis{},
	}
	for len(queue) > 0 {
		var effects []form.Effect
		st, effects = form.Reduce(st, queue[0])
		queue = queue[1:]

		for _, e := range effects {
			switch e := e.(type) {
			case form.SendAnalysis:
				logger.Debug("Sending photo", "url", client.URL(), "file", e.File.Name, "language", e.Language)
				text, err := client.Analyze(cmd.Context(), analysis.Request{Image: e.File, Language: e.Language})
				queue = append(queue, form.AnalysisSettled{Gen: e.Gen, Text: text, Err: err})
			case form.ReportFault:
				logger.Error("Operation failed", "op", e.Op, "err", e.Err)
			}
		}
	}

	text, _ := st.Result()
	fmt.Fprintln(cmd.OutOrStdout(), text)

	if st.Submission.Phase != form.Succeeded {
		return errAnalysisFailed
	}

	if analyzeCopy {
		if err := clipboard.Write(text); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not copy report: %v\n", err)
		}
	}

	return nil
}
