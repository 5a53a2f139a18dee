package palette

import (
	"fmt"

	"github.com/aqasim81/severity-palette/internal/color"
)

// Table maps severity names to their interpolated colors. A Table is never
// modified after BuildTable returns it, so it can be shared between
// goroutines without locking.
type Table struct {
	names  []string
	colors map[string]color.Color
}

// BuildTable interpolates a color for each name in severities, placing the
// i-th of N names at factor i/(N-1) between low and high. A single name gets
// factor 0. MODERATE cannot be ranked on its own; it is added as an alias
// whenever MEDIUM is present.
func BuildTable(low, high color.Color, severities []string) (*Table, error) {
	if len(severities) == 0 {
		return nil, ErrNoSeverities
	}

	t := &Table{
		names:  make([]string, 0, len(severities)+1),
		colors: make(map[string]color.Color, len(severities)+1),
	}

	last := len(severities) - 1

	for i, raw := range severities {
		name := normalizeName(raw)
		if _, dup := t.colors[name]; dup || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSeverity, raw)
		}

		if name == AliasModerate {
			return nil, fmt.Errorf("%w: %q is an alias of %s", ErrDuplicateSeverity, raw, Medium)
		}

		factor := 0.0
		if last > 0 {
			factor = float64(i) / float64(last)
		}

		t.names = append(t.names, name)
		t.colors[name] = color.Interpolate(low, high, factor)
	}

	if medium, ok := t.colors[Medium.String()]; ok {
		t.names = append(t.names, AliasModerate)
		t.colors[AliasModerate] = medium
	}

	return t, nil
}

// DefaultTable builds a table over the canonical LOW..CRITICAL levels.
func DefaultTable(low, high color.Color) *Table {
	t, err := BuildTable(low, high, LevelNames())
	if err != nil {
		// LevelNames is non-empty and unique.
		panic(err)
	}

	return t
}

// Lookup returns the color for a severity name, case-insensitively.
func (t *Table) Lookup(name string) (color.Color, bool) {
	c, ok := t.colors[normalizeName(name)]
	return c, ok
}

// ForSeverity returns the color assigned to s.
func (t *Table) ForSeverity(s Severity) (color.Color, bool) {
	return t.Lookup(s.String())
}

// Names returns the table's names in build order, alias last.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)

	return out
}

// Len returns the number of entries, including aliases.
func (t *Table) Len() int {
	return len(t.names)
}

// Entry is one name/color pair of a Table.
type Entry struct {
	Name  string
	Color color.Color
}

// Entries returns the table contents in Names order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.names))
	for i, n := range t.names {
		out[i] = Entry{Name: n, Color: t.colors[n]}
	}

	return out
}
