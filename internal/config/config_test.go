package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: t.TempDir()},
		Admin:  AdminConfig{Key: "test-secret"},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Environment(t *testing.T) {
	tests := []struct {
		env     string
		wantErr bool
	}{
		{"development", false},
		{"staging", false},
		{"production", false},
		{"", true},
		{"testing", true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.App.Environment = tt.env
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := validConfig(t)
	cfg.Logger.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg.Logger.Level = "WARN"
	assert.NoError(t, cfg.Validate(), "level comparison is case-insensitive")
}

func TestValidate_RequiresAdminKey(t *testing.T) {
	cfg := validConfig(t)
	cfg.Admin.Key = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_RequiresDataPath(t *testing.T) {
	cfg := validConfig(t)
	cfg.Data.BasePath = ""
	assert.Error(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	t.Run("empty uses default", func(t *testing.T) {
		got, err := expandPath("", "/default/data")
		require.NoError(t, err)
		assert.Equal(t, "/default/data", got)
	})

	t.Run("tilde expansion", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := expandPath("~/arvand", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "arvand"), got)
	})

	t.Run("relative made absolute", func(t *testing.T) {
		got, err := expandPath("data", "")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})
}

func TestGetConfigValue_Precedence(t *testing.T) {
	const envKey = "ARVAND_TEST_CONFIG_VALUE"
	t.Setenv(envKey, "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", envKey, "fallback"))
	assert.Equal(t, "from-env", getConfigValue("", envKey, "fallback"))

	os.Unsetenv(envKey)
	assert.Equal(t, "fallback", getConfigValue("", envKey, "fallback"))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")

	content := "# comment\nARVAND_TEST_ENVFILE_A=hello\nARVAND_TEST_ENVFILE_B=\"quoted\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0644))

	t.Cleanup(func() {
		os.Unsetenv("ARVAND_TEST_ENVFILE_A")
		os.Unsetenv("ARVAND_TEST_ENVFILE_B")
	})

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "hello", os.Getenv("ARVAND_TEST_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("ARVAND_TEST_ENVFILE_B"))
}

func TestLoadEnvFile_EnvTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("ARVAND_TEST_PRIO=file\n"), 0644))

	t.Setenv("ARVAND_TEST_PRIO", "env")
	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "env", os.Getenv("ARVAND_TEST_PRIO"))
}
