// Package cmd contains all CLI commands for savour.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/savour/internal/analysis"
	"github.com/f3rmion/savour/internal/config"
	"github.com/f3rmion/savour/internal/feedback"
	"github.com/f3rmion/savour/internal/tui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "savour",
	Short: "SavourSAGE - calorie and nutrition analysis for food photos",
	Long: `SavourSAGE sends a photo of a meal to an analysis service and shows
the estimated calories and nutrients of every food item it finds.

Pick a photo, choose the language of the report and press analyze. The
service endpoint defaults to http://localhost:6001 and can be changed in
config.yaml, with --endpoint or with SAVOUR_ENDPOINT.

Running 'savour' without arguments launches the interactive TUI.`,
	RunE: runTUI,
}

// Root returns the root command.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/savour)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().String("endpoint", "", "analysis service URL (default "+config.DefaultEndpoint+")")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
}

// initConfig reads .env and wires environment variables.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		configDir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", configDir)
	}

	viper.SetEnvPrefix("SAVOUR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadUserConfig reads config.yaml from configDir, falling back to defaults
// when it doesn't exist, then applies flag and environment overrides.
func loadUserConfig(configDir string) (*config.Config, error) {
	cfg, err := config.LoadDir(configDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = config.Default()
	}

	if v := viper.GetString("endpoint"); v != "" {
		cfg.Endpoint = v
	}
	if viper.GetBool("verbose") {
		cfg.Verbose = true
	}
	if v := viper.GetString("start_dir"); v != "" {
		cfg.StartDir = v
	}
	if v := viper.GetString("log_file"); v != "" {
		cfg.LogFile = v
	}
	if v := viper.GetString("server.port"); v != "" {
		cfg.Server.Port = v
	}
	if v := viper.GetString("server.model"); v != "" {
		cfg.Server.Model = v
	}

	return cfg, nil
}

// setupLogging installs the default slog logger. The TUI owns the terminal,
// so it logs to a file; every other command logs to w.
func setupLogging(cfg *config.Config, configDir string, w io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	closer := func() {}
	if w == nil {
		path := cfg.LogPath(configDir)
		if err := config.EnsureConfigDir(filepath.Dir(path)); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closer, nil
}

// runTUI launches the interactive application.
func runTUI(cmd *cobra.Command, args []string) error {
	configDir := getConfigDir()

	cfg, err := loadUserConfig(configDir)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(cfg, configDir, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := analysis.NewClient(cfg.Endpoint)
	if err != nil {
		return err
	}
	logger.Info("Starting TUI", "url", client.URL())

	p := tea.NewProgram(
		tui.NewApp(tui.Options{
			Config:      cfg,
			ConfigDir:   configDir,
			Analyzer:    client,
			AnalysisURL: client.URL(),
			Recorder:    feedback.NewLogRecorder(logger),
			Logger:      logger,
			Context:     cmd.Context(),
		}),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
