package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "DATA_DIR", "STORE_DSN", "LOG_FILE", "EXPIRY_CHECK_SPEC"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, "./data", cfg.StoreDSN)
	assert.Equal(t, "@daily", cfg.ExpiryCheckSpec)
}

func TestLoadDerivesDSNFromDriver(t *testing.T) {
	t.Setenv("STORE_DSN", "")
	t.Setenv("DATA_DIR", "/var/lib/shelflife")
	t.Setenv("STORE_DRIVER", "bolt")
	assert.Equal(t, "/var/lib/shelflife/shelflife.bolt", Load().StoreDSN)

	t.Setenv("STORE_DRIVER", "sqlite")
	assert.Equal(t, "/var/lib/shelflife/shelflife.db", Load().StoreDSN)

	t.Setenv("STORE_DSN", "custom.db")
	assert.Equal(t, "custom.db", Load().StoreDSN)
}
