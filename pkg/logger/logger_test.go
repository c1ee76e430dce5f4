package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("JSONToFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pagesim.log")
		logger, err := New(Config{Level: "debug", Format: "json", OutputFile: path})
		require.NoError(t, err)

		logger.Debug("page access")
		require.NoError(t, logger.Sync())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &entry))
		assert.Equal(t, "DEBUG", entry["level"], "capital levels")
		assert.Equal(t, "pagesim", entry["service"])
		assert.Equal(t, "page access", entry["msg"])
	})

	t.Run("BadLevelFallsBackToInfo", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pagesim.log")
		logger, err := New(Config{Level: "chatty", Format: "json", OutputFile: path})
		require.NoError(t, err)
		logger.Debug("dropped")
		logger.Info("kept")
		require.NoError(t, logger.Sync())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "dropped")
		assert.Contains(t, string(raw), "kept")
	})

	t.Run("UnwritablePath", func(t *testing.T) {
		_, err := New(Config{OutputFile: filepath.Join(t.TempDir(), "missing", "x.log")})
		assert.Error(t, err)
	})
}
