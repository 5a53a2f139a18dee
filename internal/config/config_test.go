package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqasim81/severity-palette/internal/config"
)

func TestNew_returnsDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.New()

	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, config.DefaultLowColor, cfg.LowColor)
	assert.Equal(t, config.DefaultHighColor, cfg.HighColor)
	assert.Equal(t, []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"}, cfg.Levels)
	assert.Equal(t, config.DefaultFormat, cfg.Format)
	assert.Equal(t, config.DefaultConnectTimeout, cfg.ConnectTimeout)
	assert.Equal(t, config.DefaultProfile, cfg.Profile)
	assert.Equal(t, config.DefaultStateFileName, filepath.Base(cfg.StateFile))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		filename     string
		content      string
		allowMissing bool
		writeFile    bool
		wantErr      bool
		errContains  string
		check        func(t *testing.T, cfg *config.Config)
	}{
		{
			name:      "valid yaml parses all fields",
			filename:  "palette.yml",
			writeFile: true,
			content: `low_color: "rgb(0, 128, 0)"
high_color: "#ff0000"
levels: ["info", "warning", "error"]
format: "css"
database_url: "postgres://localhost:5432/dashboard"
connect_timeout: "3s"
state_file: "/tmp/zoom.yml"
profile: "ops"
`,
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "rgb(0, 128, 0)", cfg.LowColor)
				assert.Equal(t, "#ff0000", cfg.HighColor)
				assert.Equal(t, []string{"info", "warning", "error"}, cfg.Levels)
				assert.Equal(t, "css", cfg.Format)
				assert.Equal(t, "postgres://localhost:5432/dashboard", cfg.DatabaseURL)
				assert.Equal(t, 3*time.Second, cfg.ConnectTimeout)
				assert.Equal(t, "/tmp/zoom.yml", cfg.StateFile)
				assert.Equal(t, "ops", cfg.Profile)
			},
		},
		{
			name:      "valid toml parses all fields",
			filename:  "palette.toml",
			writeFile: true,
			content: `low_color = "#00ff00"
levels = ["LOW", "HIGH"]
connect_timeout = "1m"
`,
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "#00ff00", cfg.LowColor)
				assert.Equal(t, config.DefaultHighColor, cfg.HighColor)
				assert.Equal(t, []string{"LOW", "HIGH"}, cfg.Levels)
				assert.Equal(t, time.Minute, cfg.ConnectTimeout)
			},
		},
		{
			name:      "partial file applies defaults",
			filename:  "palette.yml",
			writeFile: true,
			content:   `database_url: "postgres://localhost/dashboard"`,
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "postgres://localhost/dashboard", cfg.DatabaseURL)
				assert.Equal(t, config.DefaultLowColor, cfg.LowColor)
				assert.Equal(t, config.DefaultFormat, cfg.Format)
				assert.Equal(t, config.DefaultConnectTimeout, cfg.ConnectTimeout)
			},
		},
		{
			name:      "empty file returns defaults",
			filename:  "palette.yml",
			writeFile: true,
			content:   "",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.DefaultHighColor, cfg.HighColor)
				assert.Len(t, cfg.Levels, 4)
			},
		},
		{
			name:         "missing file with allowMissing returns defaults",
			filename:     "palette.yml",
			allowMissing: true,
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.DefaultLowColor, cfg.LowColor)
			},
		},
		{
			name:        "missing file without allowMissing returns error",
			filename:    "palette.yml",
			wantErr:     true,
			errContains: "reading config file",
		},
		{
			name:        "invalid YAML returns error",
			filename:    "palette.yml",
			writeFile:   true,
			content:     "{{{invalid yaml",
			wantErr:     true,
			errContains: "parsing config file",
		},
		{
			name:        "invalid TOML returns error",
			filename:    "palette.toml",
			writeFile:   true,
			content:     "low_color = ",
			wantErr:     true,
			errContains: "parsing config file",
		},
		{
			name:        "zero connect_timeout returns error",
			filename:    "palette.yml",
			writeFile:   true,
			content:     `connect_timeout: "0s"`,
			wantErr:     true,
			errContains: "timeout must be positive",
		},
		{
			name:        "negative connect_timeout returns error",
			filename:    "palette.toml",
			writeFile:   true,
			content:     `connect_timeout = "-5s"`,
			wantErr:     true,
			errContains: "timeout must be positive",
		},
		{
			name:        "invalid connect_timeout returns error",
			filename:    "palette.yml",
			writeFile:   true,
			content:     `connect_timeout: "soon"`,
			wantErr:     true,
			errContains: "parsing connect_timeout",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.filename)

			if tt.writeFile {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			cfg, err := config.Load(path, tt.allowMissing)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestMergeEnv_overridesFields(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "overrides colors",
			env:  map[string]string{"PALETTE_LOW_COLOR": "#000000", "PALETTE_HIGH_COLOR": "#ffffff"},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "#000000", cfg.LowColor)
				assert.Equal(t, "#ffffff", cfg.HighColor)
			},
		},
		{
			name: "overrides levels",
			env:  map[string]string{"PALETTE_LEVELS": " info, ,warning ,error"},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, []string{"info", "warning", "error"}, cfg.Levels)
			},
		},
		{
			name: "overrides database URL and profile",
			env:  map[string]string{"PALETTE_DATABASE_URL": "postgres://env-host/db", "PALETTE_PROFILE": "night"},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "postgres://env-host/db", cfg.DatabaseURL)
				assert.Equal(t, "night", cfg.Profile)
			},
		},
		{
			name: "overrides connect timeout",
			env:  map[string]string{"PALETTE_CONNECT_TIMEOUT": "2s"},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, 2*time.Second, cfg.ConnectTimeout)
			},
		},
		{
			name: "invalid duration preserves original",
			env:  map[string]string{"PALETTE_CONNECT_TIMEOUT": "not-valid"},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.DefaultConnectTimeout, cfg.ConnectTimeout)
			},
		},
		{
			name: "zero duration preserves original",
			env:  map[string]string{"PALETTE_CONNECT_TIMEOUT": "0"},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.DefaultConnectTimeout, cfg.ConnectTimeout)
			},
		},
		{
			name: "overrides state file",
			env:  map[string]string{"PALETTE_STATE_FILE": "/var/lib/palette/zoom.yml"},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/var/lib/palette/zoom.yml", cfg.StateFile)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := config.New()
			config.MergeEnv(cfg)

			tt.check(t, cfg)
		})
	}
}

func TestSplitLevels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, config.SplitLevels("a,b"))
	assert.Nil(t, config.SplitLevels(" , "))
}
