package palette

import (
	"fmt"
	"strings"
)

// Severity is the ordinal importance of a finding.
type Severity int

const (
	// Low is the least urgent level and takes the low base color.
	Low Severity = iota
	// Medium is interpolated one third of the way toward the high color.
	Medium
	// High is interpolated two thirds of the way toward the high color.
	High
	// Critical takes the high base color.
	Critical
)

// AliasModerate is accepted wherever MEDIUM is and shares its color.
const AliasModerate = "MODERATE"

// String returns the uppercase label for the severity level.
func (s Severity) String() string {
	switch s {
	case Low:
		return "LOW"
	case Medium:
		return "MEDIUM"
	case High:
		return "HIGH"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Levels returns the canonical severities in ascending order.
func Levels() []Severity {
	return []Severity{Low, Medium, High, Critical}
}

// LevelNames returns the labels of Levels.
func LevelNames() []string {
	levels := Levels()
	names := make([]string, len(levels))

	for i, l := range levels {
		names[i] = l.String()
	}

	return names
}

// ParseSeverity maps a label to a Severity, case-insensitively. MODERATE
// parses as Medium.
func ParseSeverity(name string) (Severity, error) {
	switch normalizeName(name) {
	case "LOW":
		return Low, nil
	case "MEDIUM", AliasModerate:
		return Medium, nil
	case "HIGH":
		return High, nil
	case "CRITICAL":
		return Critical, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSeverity, name)
	}
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
