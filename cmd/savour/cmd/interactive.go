package cmd

import "github.com/spf13/cobra"

var interactiveCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"i", "interactive"},
	Short:   "Launch interactive TUI",
	Long: `Launch the SavourSAGE terminal UI.

Controls:
  1-4     Switch views (analyze, photo, feedback, settings)
  ←/→     Change report language
  o       Choose a photo
  Enter   Analyze
  y       Copy the result
  ?       Help
  q       Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
