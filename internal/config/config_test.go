package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := LoadFile(filepath.Join(home, "nope.toml"), home)

	require.NoError(t, err)
	assert.Equal(t, Default(home), cfg)
	assert.Equal(t, filepath.Join(home, ".config", "cha", "cha.db"), cfg.DBPath)
	assert.EqualValues(t, 50*1024*1024, cfg.MaxUploadBytes)
}

func TestLoadFile_Overrides(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, `
db_path = "~/data/chats.db"
listen_addr = ":9090"
recent_limit = 25
date_order = "mdy"
retention_days = 30
log_format = "json"
`)

	cfg, err := LoadFile(path, home)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "chats.db"), cfg.DBPath)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 25, cfg.RecentLimit)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "2023-01-02", cfg.Parser().Parse("1/2/23, 10:00 - A: hi")[0].Date)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", `db_path = `},
		{"bad date order", `date_order = "ymd"`},
		{"zero upload size", `max_upload_bytes = 0`},
		{"bad log level", `log_level = "loud"`},
		{"negative retention", `retention_days = -1`},
		{"bad listen addr", `listen_addr = "nowhere"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body), t.TempDir())
			assert.Error(t, err)
		})
	}
}

func TestConfigParser_DefaultsToDayFirst(t *testing.T) {
	cfg := Default(t.TempDir())
	cfg.DateOrder = ""

	msgs := cfg.Parser().Parse("1/2/23, 10:00 - A: hi")

	require.Len(t, msgs, 1)
	assert.Equal(t, "2023-02-01", msgs[0].Date)
	assert.Equal(t, string(parse.DayFirst), Default("").DateOrder)
}
