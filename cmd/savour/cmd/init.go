package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/savour/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize savour configuration",
	Long: `Create config.yaml in your config directory.

The file sets the analysis service endpoint, the folder the photo picker
opens in, the log file and the settings used by 'savour serve'. Pass
--endpoint to record a service other than the default.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureConfigDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	cfg := config.Default()
	if endpoint := viper.GetString("endpoint"); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initializing savour configuration in %s\n\n", configDir)
	fmt.Fprintf(out, "  Created %s\n\n", config.FileName)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Point 'endpoint' at your analysis service")
	fmt.Fprintln(out, "  2. Run 'savour analyze <photo>' to test the connection")
	fmt.Fprintln(out, "  3. Run 'savour' to open the interactive UI")

	return nil
}
