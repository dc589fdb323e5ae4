package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_URI", "MONGO_DB", "CONFLICT_ATTEMPTS", "SESSION_LOCK_TTL_MS", "RUN_WORKER", "MESSAGES_LANG"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8888", cfg.AppURI)
	assert.Equal(t, "SurveyDB", cfg.MongoDB)
	assert.Equal(t, 3, cfg.ConflictAttempts)
	assert.Equal(t, 5*time.Second, cfg.SessionLockTTL)
	assert.False(t, cfg.RunWorker)
	assert.Equal(t, "en", cfg.MessagesLang)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_URI", "9000")
	t.Setenv("CONFLICT_ATTEMPTS", "5")
	t.Setenv("SESSION_LOCK_TTL_MS", "250")
	t.Setenv("RUN_WORKER", "true")

	cfg := Load()
	assert.Equal(t, "9000", cfg.AppURI)
	assert.Equal(t, 5, cfg.ConflictAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.SessionLockTTL)
	assert.True(t, cfg.RunWorker)
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	t.Setenv("CONFLICT_ATTEMPTS", "-2")
	assert.Equal(t, 3, Load().ConflictAttempts)
}
