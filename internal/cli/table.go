package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aqasim81/severity-palette/internal/color"
	"github.com/aqasim81/severity-palette/internal/config"
	"github.com/aqasim81/severity-palette/internal/palette"
)

var tableCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "table",
	Short: "Print the severity color table",
	Long: `Build the severity color table from the configured base colors and
levels. The first level takes the low color, the last the high color, and
the levels between are interpolated evenly. MODERATE is added as an alias of
MEDIUM.`,
	Args: cobra.NoArgs,
	RunE: runTable,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	tableCmd.Flags().String("format", "", "output format (text, json, css, sql)")
	tableCmd.Flags().String("severity", "", "print only the color of this severity (MODERATE resolves to MEDIUM)")
	rootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, _ []string) error {
	table, err := buildTable(AppConfig)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("severity") {
		name, _ := cmd.Flags().GetString("severity")

		c, err := lookupSeverity(table, name)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), c)

		return nil
	}

	format := AppConfig.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}

	verbosef(cmd, "rendering %d entries as %s\n", table.Len(), format)

	if err := palette.Render(cmd.OutOrStdout(), table, format); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	return nil
}

// buildTable parses the configured base colors and interpolates the table.
func buildTable(cfg *config.Config) (*palette.Table, error) {
	low, err := color.ParseAny(cfg.LowColor)
	if err != nil {
		return nil, fmt.Errorf("parsing low color: %w", err)
	}

	high, err := color.ParseAny(cfg.HighColor)
	if err != nil {
		return nil, fmt.Errorf("parsing high color: %w", err)
	}

	table, err := palette.BuildTable(low, high, cfg.Levels)
	if err != nil {
		return nil, fmt.Errorf("building table: %w", err)
	}

	return table, nil
}

// lookupSeverity resolves canonical severity names (and their aliases)
// through ParseSeverity and falls back to a plain name lookup for custom
// levels.
func lookupSeverity(table *palette.Table, name string) (color.Color, error) {
	if sev, err := palette.ParseSeverity(name); err == nil {
		if c, ok := table.ForSeverity(sev); ok {
			return c, nil
		}
	}

	if c, ok := table.Lookup(name); ok {
		return c, nil
	}

	return color.Color{}, fmt.Errorf("%w: %q is not in the table", palette.ErrUnknownSeverity, name)
}
