package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	"github.com/aqasim81/severity-palette/internal/config"
	"github.com/aqasim81/severity-palette/internal/database"
	"github.com/aqasim81/severity-palette/internal/zoom"
)

var zoomCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "zoom",
	Short: "Show or change the stored dashboard zoom level",
	Long: `Manage the dashboard zoom level of a profile. Levels are percentages:
toggle steps up by 10 and wraps from 200 back to 100. Preferences live in
PostgreSQL when a database URL is configured, otherwise in a YAML state file.`,
}

var zoomShowCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "show",
	Short: "Print the stored zoom level",
	Args:  cobra.NoArgs,
	RunE:  runZoom(showZoom),
}

var zoomToggleCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "toggle",
	Short: "Advance the zoom level by one step",
	Args:  cobra.NoArgs,
	RunE:  runZoom(zoom.Toggle),
}

var zoomResetCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "reset",
	Short: "Reset the zoom level to 100%",
	Args:  cobra.NoArgs,
	RunE:  runZoom(zoom.Reset),
}

var zoomListCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "list",
	Short: "Print the zoom level of every stored profile",
	Args:  cobra.NoArgs,
	RunE:  runZoomList,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	zoomCmd.PersistentFlags().String("profile", "", "preference profile (default from config)")
	zoomCmd.AddCommand(zoomShowCmd, zoomToggleCmd, zoomResetCmd, zoomListCmd)
	rootCmd.AddCommand(zoomCmd)
}

type zoomAction func(ctx context.Context, s zoom.Store, profile string) (zoom.Preference, error)

func showZoom(ctx context.Context, s zoom.Store, profile string) (zoom.Preference, error) {
	return s.Get(ctx, profile)
}

// runZoom opens the configured store, applies action and prints the result.
func runZoom(action zoomAction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		store, closeStore, err := openZoomStore(ctx, cmd, AppConfig)
		if err != nil {
			return err
		}
		defer closeStore()

		profile := AppConfig.Profile
		if cmd.Flags().Changed("profile") {
			profile, _ = cmd.Flags().GetString("profile")
		}

		pref, err := action(ctx, store, profile)
		if err != nil {
			return fmt.Errorf("zoom %s: %w", cmd.Name(), err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), formatPreference(pref, time.Now()))

		return nil
	}
}

func runZoomList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, closeStore, err := openZoomStore(ctx, cmd, AppConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	prefs, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("zoom list: %w", err)
	}

	if len(prefs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored zoom preferences.")
		return nil
	}

	now := time.Now()
	for _, p := range prefs {
		fmt.Fprintln(cmd.OutOrStdout(), formatPreference(p, now))
	}

	return nil
}

// openZoomStore returns a PostgreSQL store when a database URL is configured,
// otherwise a file store.
func openZoomStore(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (zoom.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		verbosef(cmd, "zoom store: file %s\n", cfg.StateFile)

		return zoom.NewFileStore(cfg.StateFile), func() {}, nil
	}

	verbosef(cmd, "zoom store: postgres %s\n", config.RedactURL(cfg.DatabaseURL))

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.ConnectTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	store := zoom.NewPGStore(pool)
	if err := store.EnsureTable(ctx); err != nil {
		pool.Close()

		return nil, nil, err
	}

	return store, pool.Close, nil
}

func formatPreference(p zoom.Preference, now time.Time) string {
	if p.UpdatedAt.IsZero() {
		return fmt.Sprintf("%d%% (profile %s, never changed)", p.Level, p.Profile)
	}

	ago := durafmt.Parse(now.Sub(p.UpdatedAt).Truncate(time.Second)).LimitFirstN(2).String() //nolint:mnd // two units
	if now.Sub(p.UpdatedAt) < time.Second {
		ago = "just now"
	} else {
		ago += " ago"
	}

	return fmt.Sprintf("%d%% (profile %s, updated %s)", p.Level, p.Profile, ago)
}
