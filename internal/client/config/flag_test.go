package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overrides from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-a", "http://api.example:9000", "-t", "5", "-d", "other.db", "-e"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, "http://api.example:9000", cfg.APIBaseURL)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "other.db", cfg.SessionDBPath)
		assert.True(t, cfg.Ephemeral)
	})

	t.Run("no flags keeps defaults", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.False(t, cfg.Ephemeral)
	})
}
