package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "AI_PROVIDER", "OCR_LANGUAGES", "STORAGE_TYPE", "DB_AUTO_MIGRATE", "JWT_EXPIRATION_HOURS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*1024*1024, cfg.Server.BodyLimit)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, []string{"eng"}, cfg.OCR.Languages)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("OCR_LANGUAGES", "eng, rus,,deu ")
	t.Setenv("STORAGE_TYPE", "S3")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("JWT_REFRESH_EXPIRATION_HOURS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, []string{"eng", "rus", "deu"}, cfg.OCR.Languages)
	assert.Equal(t, "s3", cfg.Storage.Type)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 2*time.Hour, cfg.JWT.RefreshExp)
}
