package palette

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aqasim81/severity-palette/internal/parser"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSS  = "css"
	FormatSQL  = "sql"
)

const swatchWidth = 6

var labelStyle = lipgloss.NewStyle().Bold(true).Width(10) //nolint:gochecknoglobals,mnd // shared style

// Formats lists the formats Render understands.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatCSS, FormatSQL}
}

// Render writes t to w in the given format.
func Render(w io.Writer, t *Table, format string) error {
	switch format {
	case FormatText:
		return renderText(w, t)
	case FormatJSON:
		return renderJSON(w, t)
	case FormatCSS:
		return renderCSS(w, t)
	case FormatSQL:
		return renderSQL(w, t)
	default:
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}

func renderText(w io.Writer, t *Table) error {
	title := cases.Title(language.Und)

	for _, e := range t.Entries() {
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(e.Color.Hex())).
			Render(strings.Repeat(" ", swatchWidth))

		if _, err := fmt.Fprintf(w, "%s %s %s\n", swatch, labelStyle.Render(title.String(e.Name)), e.Color); err != nil {
			return fmt.Errorf("writing text table: %w", err)
		}
	}

	return nil
}

// renderJSON writes a flat object keyed by name, preserving table order.
func renderJSON(w io.Writer, t *Table) error {
	var b strings.Builder

	b.WriteString("{\n")

	entries := t.Entries()
	for i, e := range entries {
		key, err := json.Marshal(e.Name)
		if err != nil {
			return fmt.Errorf("encoding severity name: %w", err)
		}

		fmt.Fprintf(&b, "  %s: %q", key, e.Color.String())

		if i < len(entries)-1 {
			b.WriteString(",")
		}

		b.WriteString("\n")
	}

	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing json table: %w", err)
	}

	return nil
}

func renderCSS(w io.Writer, t *Table) error {
	var b strings.Builder

	b.WriteString(":root {\n")

	seen := make(map[string]string, t.Len())

	for _, e := range t.Entries() {
		ident := cssIdent(e.Name)
		if prev, dup := seen[ident]; dup {
			return fmt.Errorf("%w: %q and %q both map to --severity-%s", ErrNameCollision, prev, e.Name, ident)
		}

		seen[ident] = e.Name

		fmt.Fprintf(&b, "  --severity-%s: %s;\n", ident, e.Color)
	}

	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing css table: %w", err)
	}

	return nil
}

const createSeverityColorsSQL = `CREATE TABLE IF NOT EXISTS severity_colors (
    severity  TEXT PRIMARY KEY,
    rgba      TEXT NOT NULL,
    hex       TEXT NOT NULL,
    alpha     DOUBLE PRECISION NOT NULL,
    position  INTEGER NOT NULL
);
`

// SeedSQL returns a script that creates and upserts the severity_colors
// table. The script is checked with the PostgreSQL parser before it is
// returned.
func SeedSQL(t *Table) (string, error) {
	var b strings.Builder

	b.WriteString(createSeverityColorsSQL)
	b.WriteString("INSERT INTO severity_colors (severity, rgba, hex, alpha, position) VALUES\n")

	entries := t.Entries()
	for i, e := range entries {
		fmt.Fprintf(&b, "    (%s, %s, %s, %s, %d)",
			quoteLiteral(e.Name),
			quoteLiteral(e.Color.String()),
			quoteLiteral(e.Color.Hex()),
			strconv.FormatFloat(e.Color.A, 'f', -1, 64),
			i,
		)

		if i < len(entries)-1 {
			b.WriteString(",\n")
		}
	}

	b.WriteString("\nON CONFLICT (severity) DO UPDATE SET\n")
	b.WriteString("    rgba = EXCLUDED.rgba,\n")
	b.WriteString("    hex = EXCLUDED.hex,\n")
	b.WriteString("    alpha = EXCLUDED.alpha,\n")
	b.WriteString("    position = EXCLUDED.position;\n")

	script := b.String()

	if _, err := parser.Validate(script); err != nil {
		return "", fmt.Errorf("generated seed script is invalid: %w", err)
	}

	return script, nil
}

func renderSQL(w io.Writer, t *Table) error {
	script, err := SeedSQL(t)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, script); err != nil {
		return fmt.Errorf("writing sql table: %w", err)
	}

	return nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// cssIdent lowercases a name and replaces anything outside [a-z0-9-] with "-".
func cssIdent(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, name)
}
