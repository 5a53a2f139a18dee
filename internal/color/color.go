package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Alpha ramp applied by Interpolate. The output alpha never depends on the
// input colors.
const (
	AlphaLow  = 0.25
	AlphaHigh = 0.65
)

const maxChannel = 255

// Color is an RGBA color with integer channels and a float alpha.
type Color struct {
	R int
	G int
	B int
	A float64
}

// RGB returns an opaque color.
func RGB(r, g, b int) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// String formats the color as "rgba(r,g,b,a)" with the shortest alpha
// representation, e.g. "rgba(60,70,80,0.45)".
func (c Color) String() string {
	return "rgba(" + strconv.Itoa(c.R) + "," + strconv.Itoa(c.G) + "," + strconv.Itoa(c.B) + "," +
		strconv.FormatFloat(c.A, 'f', -1, 64) + ")"
}

// Hex formats the RGB channels as "#rrggbb", dropping alpha. Channels outside
// [0,255] are clamped.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(clamp(c.R)) / maxChannel,
		G: float64(clamp(c.G)) / maxChannel,
		B: float64(clamp(c.B)) / maxChannel,
	}.Hex()
}

// Interpolate blends a toward b by factor f. Channels are rounded half up;
// alpha follows the fixed AlphaLow..AlphaHigh ramp. f is not clamped, so
// values outside [0,1] extrapolate.
func Interpolate(a, b Color, f float64) Color {
	return Color{
		R: lerpChannel(a.R, b.R, f),
		G: lerpChannel(a.G, b.G, f),
		B: lerpChannel(a.B, b.B, f),
		A: AlphaLow + float64((AlphaHigh-AlphaLow)*f),
	}
}

// The float64 conversions round each product on its own, so no platform fuses
// the multiply-add and results stay identical everywhere.
func lerpChannel(from, to int, f float64) int {
	return int(math.Floor(float64(from) + float64(float64(to-from)*f) + 0.5))
}

// Parse reads the first three channels of a parenthesized color string such
// as "rgb(10, 20, 30)" or "rgba(10, 20, 30, 0.5)". Alpha is not parsed; the
// result is opaque.
func Parse(s string) (Color, error) {
	fields, err := channelFields(s)
	if err != nil {
		return Color{}, err
	}

	if len(fields) < 3 { //nolint:mnd // r, g, b
		return Color{}, fmt.Errorf("%w: %q has %d channels, want at least 3", ErrMalformedColor, s, len(fields))
	}

	var ch [3]int

	for i := range ch {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q channel %d: %w", ErrMalformedColor, s, i, err)
		}

		if v < 0 || v > maxChannel {
			return Color{}, fmt.Errorf("%w: %q channel %d out of range: %d", ErrMalformedColor, s, i, v)
		}

		ch[i] = v
	}

	return RGB(ch[0], ch[1], ch[2]), nil
}

// ParseRGBA is Parse plus an optional fourth alpha channel in [0,1].
func ParseRGBA(s string) (Color, error) {
	c, err := Parse(s)
	if err != nil {
		return Color{}, err
	}

	fields, _ := channelFields(s)

	switch len(fields) {
	case 3: //nolint:mnd // rgb
		return c, nil
	case 4: //nolint:mnd // rgba
		a, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q alpha: %w", ErrMalformedColor, s, err)
		}

		if a < 0 || a > 1 || math.IsNaN(a) {
			return Color{}, fmt.Errorf("%w: %q alpha out of range: %v", ErrMalformedColor, s, a)
		}

		c.A = a

		return c, nil
	default:
		return Color{}, fmt.Errorf("%w: %q has %d channels, want 3 or 4", ErrMalformedColor, s, len(fields))
	}
}

// ParseHex reads "#rgb" or "#rrggbb".
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %w", ErrMalformedColor, s, err)
	}

	r, g, b := c.RGB255()

	return RGB(int(r), int(g), int(b)), nil
}

// ParseAny accepts hex or functional notation.
func ParseAny(s string) (Color, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "#") {
		return ParseHex(s)
	}

	return ParseRGBA(s)
}

// NormalizeAlpha rewrites a four-component color string so its alpha is 1,
// leaving the r, g and b text untouched: "rgba(1,2,3,0.5)" becomes
// "rgba(1,2,3,1)".
func NormalizeAlpha(s string) (string, error) {
	components := strings.Split(s, ",")
	if len(components) != 4 { //nolint:mnd // r, g, b, a
		return "", fmt.Errorf("%w: %q has %d components, want 4", ErrMalformedColor, s, len(components))
	}

	if !strings.Contains(components[0], "(") || !strings.HasSuffix(strings.TrimSpace(components[3]), ")") {
		return "", fmt.Errorf("%w: %q is not parenthesized", ErrMalformedColor, s)
	}

	components[3] = "1)"

	return strings.Join(components, ","), nil
}

// channelFields returns the trimmed comma-separated fields between the first
// "(" and the last ")".
func channelFields(s string) ([]string, error) {
	open := strings.Index(s, "(")
	closing := strings.LastIndex(s, ")")

	if open < 0 || closing < 0 || closing < open {
		return nil, fmt.Errorf("%w: %q is not parenthesized", ErrMalformedColor, s)
	}

	fields := strings.Split(s[open+1:closing], ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	return fields, nil
}

func clamp(v int) int {
	return max(0, min(maxChannel, v))
}
