// Package zoom persists the dashboard zoom level per profile.
package zoom

import (
	"context"
	"time"
)

// Zoom levels are percentages. Toggling steps up by Step and wraps back to
// Default once the level would exceed Max.
const (
	Default = 100
	Step    = 10
	Max     = 200
)

// DefaultProfile is used when no profile is given.
const DefaultProfile = "default"

// Preference is the stored zoom level of one profile. A zero UpdatedAt means
// the level was never stored.
type Preference struct {
	Profile   string    `yaml:"-"`
	Level     int       `yaml:"level"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Store reads and writes zoom preferences. Get returns the default preference
// for a profile that has none. Update applies fn to the current level and
// stores the result atomically. List returns every stored preference ordered
// by profile.
type Store interface {
	Get(ctx context.Context, profile string) (Preference, error)
	Set(ctx context.Context, profile string, level int) (Preference, error)
	Update(ctx context.Context, profile string, fn func(level int) int) (Preference, error)
	List(ctx context.Context) ([]Preference, error)
}

// Sanitize maps unusable stored levels to Default.
func Sanitize(level int) int {
	if level <= 0 {
		return Default
	}

	return level
}

// Next returns the level after level in the toggle cycle.
func Next(level int) int {
	next := Sanitize(level) + Step
	if next > Max {
		return Default
	}

	return next
}

// DefaultPreference returns the preference reported for an unknown profile.
func DefaultPreference(profile string) Preference {
	return Preference{Profile: profile, Level: Default}
}

// Toggle advances the stored level of profile by one step.
func Toggle(ctx context.Context, s Store, profile string) (Preference, error) {
	return s.Update(ctx, profile, Next)
}

// Reset stores Default for profile.
func Reset(ctx context.Context, s Store, profile string) (Preference, error) {
	return s.Set(ctx, profile, Default)
}
