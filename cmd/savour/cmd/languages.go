package cmd

import (
	"fmt"

	"github.com/f3rmion/savour/internal/language"
	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the report languages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		def := language.Default().Code
		for _, opt := range language.All() {
			marker := ""
			if opt.Code == def {
				marker = " (default)"
			}
			fmt.Fprintf(out, "%-4s %s%s\n", opt.Code, opt.Name, marker)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
