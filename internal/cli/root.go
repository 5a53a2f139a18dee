package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aqasim81/severity-palette/internal/config"
)

const version = "0.1.0"

// AppConfig holds the loaded configuration, set during PersistentPreRunE.
var AppConfig *config.Config //nolint:gochecknoglobals // standard Cobra pattern for shared config

// rootCmd is the base command for the palette CLI.
var rootCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:     "palette",
	Version: version,
	Short:   "Severity color tables and zoom preferences for the dashboard",
	Long: `palette derives the dashboard's severity color table by interpolating
between a low and a high base color, renders it as a terminal preview, JSON,
CSS custom properties or a SQL seed script, and stores the per-profile zoom
level.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	rootCmd.PersistentFlags().String("config", "palette.yml", "path to configuration file (.yml, .yaml or .toml)")
	rootCmd.PersistentFlags().String("low", "", "low base color, e.g. #198754 or rgb(25, 135, 84)")
	rootCmd.PersistentFlags().String("high", "", "high base color, e.g. #dc3545 or rgb(220, 53, 69)")
	rootCmd.PersistentFlags().String("levels", "", "comma-separated severity levels, lowest first")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string for zoom preferences")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads configuration with precedence: flag > env > file.
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	allowMissing := !cmd.Flags().Changed("config")

	cfg, err := config.Load(configPath, allowMissing)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	config.MergeEnv(cfg)
	mergeFlags(cmd, cfg)

	AppConfig = cfg

	verbosef(cmd, "config: low=%s high=%s levels=%v database=%s\n",
		cfg.LowColor, cfg.HighColor, cfg.Levels, config.RedactURL(cfg.DatabaseURL))

	return nil
}

// mergeFlags overrides config with explicitly-set CLI flags.
func mergeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("low") {
		cfg.LowColor, _ = cmd.Flags().GetString("low")
	}

	if cmd.Flags().Changed("high") {
		cfg.HighColor, _ = cmd.Flags().GetString("high")
	}

	if cmd.Flags().Changed("levels") {
		raw, _ := cmd.Flags().GetString("levels")
		cfg.Levels = config.SplitLevels(raw)
	}

	if cmd.Flags().Changed("database-url") {
		cfg.DatabaseURL, _ = cmd.Flags().GetString("database-url")
	}
}

// verbosef writes diagnostics to stderr when --verbose is set.
func verbosef(cmd *cobra.Command, format string, args ...any) {
	if v, err := cmd.Flags().GetBool("verbose"); err != nil || !v {
		return
	}

	fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}
