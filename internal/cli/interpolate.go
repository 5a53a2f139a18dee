package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aqasim81/severity-palette/internal/color"
)

var interpolateCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "interpolate <color-a> <color-b> <factor>",
	Short: "Blend two colors",
	Long: `Blend two rgb()/rgba() colors by a factor, where 0 yields color-a and 1
yields color-b. Factors outside [0,1] extrapolate. The alpha of the result
ramps from 0.25 to 0.65 with the factor.`,
	Args: cobra.ExactArgs(3), //nolint:mnd // a, b, factor
	RunE: runInterpolate,
}

var normalizeCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "normalize <rgba-color>",
	Short: "Force the alpha of an rgba() color to 1",
	Args:  cobra.ExactArgs(1),
	RunE:  runNormalize,
}

// errNonFiniteFactor is returned for NaN or infinite interpolation factors.
var errNonFiniteFactor = errors.New("factor must be a finite number")

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	rootCmd.AddCommand(interpolateCmd)
	rootCmd.AddCommand(normalizeCmd)
}

func runInterpolate(cmd *cobra.Command, args []string) error {
	a, err := color.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parsing color-a: %w", err)
	}

	b, err := color.Parse(args[1])
	if err != nil {
		return fmt.Errorf("parsing color-b: %w", err)
	}

	factor, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("parsing factor %q: %w", args[2], err)
	}

	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("parsing factor %q: %w", args[2], errNonFiniteFactor)
	}

	fmt.Fprintln(cmd.OutOrStdout(), color.Interpolate(a, b, factor))

	return nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	out, err := color.NormalizeAlpha(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)

	return nil
}
