package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqasim81/severity-palette/internal/config"
	"github.com/aqasim81/severity-palette/internal/database"
	"github.com/aqasim81/severity-palette/internal/zoom"
)

func newZoomCmd(t *testing.T, use string, action zoomAction) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	cmd, buf := newTestCmd(t, use, runZoom(action))
	cmd.Flags().String("profile", "", "")

	return cmd, buf
}

func TestRunZoom_toggleThenShow_usesFileStore(t *testing.T) { // not parallel: mutates global AppConfig
	setupTestConfig(t, nil)

	toggle, out := newZoomCmd(t, "toggle", zoom.Toggle)
	require.NoError(t, toggle.Execute())
	assert.Contains(t, out.String(), "110% (profile default, updated just now)")

	show, out := newZoomCmd(t, "show", showZoom)
	require.NoError(t, show.Execute())
	assert.Contains(t, out.String(), "110%")
}

func TestRunZoom_profileFlag_isolatesProfiles(t *testing.T) { // not parallel: mutates global AppConfig
	setupTestConfig(t, nil)

	toggle, _ := newZoomCmd(t, "toggle", zoom.Toggle)
	toggle.SetArgs([]string{"--profile", "night"})
	require.NoError(t, toggle.Execute())

	show, out := newZoomCmd(t, "show", showZoom)
	require.NoError(t, show.Execute())
	assert.Equal(t, "100% (profile default, never changed)\n", out.String())

	reset, out := newZoomCmd(t, "reset", zoom.Reset)
	reset.SetArgs([]string{"--profile", "night"})
	require.NoError(t, reset.Execute())
	assert.Contains(t, out.String(), "100% (profile night")
}

func TestRunZoomList_printsEveryProfile(t *testing.T) { // not parallel: mutates global AppConfig
	setupTestConfig(t, nil)

	list, out := newTestCmd(t, "list", runZoomList)
	require.NoError(t, list.Execute())
	assert.Equal(t, "No stored zoom preferences.\n", out.String())

	for _, profile := range []string{"night", "day"} {
		toggle, _ := newZoomCmd(t, "toggle", zoom.Toggle)
		toggle.SetArgs([]string{"--profile", profile})
		require.NoError(t, toggle.Execute())
	}

	list, out = newTestCmd(t, "list", runZoomList)
	require.NoError(t, list.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "110% (profile day")
	assert.Contains(t, lines[1], "110% (profile night")
}

func TestRunZoom_badDatabaseURL_returnsError(t *testing.T) { // not parallel: mutates global AppConfig
	setupTestConfig(t, func(cfg *config.Config) { cfg.DatabaseURL = "not-a-valid-url" })

	show, _ := newZoomCmd(t, "show", showZoom)

	err := show.Execute()
	require.ErrorIs(t, err, database.ErrInvalidDatabaseURL)
	assert.Contains(t, err.Error(), "connecting to database")
}

func TestFormatPreference(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		pref     zoom.Preference
		expected string
	}{
		{
			name:     "never stored",
			pref:     zoom.DefaultPreference("default"),
			expected: "100% (profile default, never changed)",
		},
		{
			name:     "just now",
			pref:     zoom.Preference{Profile: "ops", Level: 130, UpdatedAt: now.Add(-200 * time.Millisecond)},
			expected: "130% (profile ops, updated just now)",
		},
		{
			name:     "limits to two units",
			pref:     zoom.Preference{Profile: "ops", Level: 150, UpdatedAt: now.Add(-(90*time.Minute + 7*time.Second))},
			expected: "150% (profile ops, updated 1 hour 30 minutes ago)",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, formatPreference(tt.pref, now))
		})
	}
}
