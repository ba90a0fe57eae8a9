package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigValue(t *testing.T) {
	t.Setenv("TEST_CONFIG_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "TEST_CONFIG_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "TEST_CONFIG_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "TEST_CONFIG_MISSING", "default"))
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("250ms", "TEST_DURATION_UNSET", "15s")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	d, err = parseDuration("", "TEST_DURATION_UNSET", "15s")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)

	_, err = parseDuration("not-a-duration", "TEST_DURATION_UNSET", "15s")
	require.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("", "/default/path")
	require.NoError(t, err)
	assert.Equal(t, "/default/path", got)

	got, err = expandPath("~/data", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, "data"), got)

	got, err = expandPath("/absolute/path", "")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", got)

	// Relative paths become absolute.
	got, err = expandPath("relative", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func validTestConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Store:  StoreConfig{DataPath: "/tmp/bookshelf"},
		Server: ServerConfig{Port: "4000"},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validTestConfig().Validate())
}

func TestValidate_InvalidEnvironment(t *testing.T) {
	cfg := validTestConfig()
	cfg.App.Environment = "testing"
	assert.Error(t, cfg.Validate())
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validTestConfig()
	cfg.Logger.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validTestConfig()
	cfg.Store.DataPath = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_TokenSecret(t *testing.T) {
	cfg := validTestConfig()

	cfg.Auth.TokenSecret = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	assert.NoError(t, cfg.Validate())

	cfg.Auth.TokenSecret = "not-hex"
	assert.Error(t, cfg.Validate())

	cfg.Auth.TokenSecret = "abcd" // too short
	assert.Error(t, cfg.Validate())
}

func TestLoadEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	content := "# comment\nTEST_ENVFILE_A=hello\nTEST_ENVFILE_B=\"quoted\"\n\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	t.Setenv("TEST_ENVFILE_A", "")
	t.Setenv("TEST_ENVFILE_B", "")
	require.NoError(t, loadEnvFile(envFile))

	assert.Equal(t, "hello", os.Getenv("TEST_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("TEST_ENVFILE_B"))
}

func TestLoadEnvFile_EnvTakesPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TEST_ENVFILE_C=from-file\n"), 0o644))

	t.Setenv("TEST_ENVFILE_C", "from-env")
	require.NoError(t, loadEnvFile(envFile))

	assert.Equal(t, "from-env", os.Getenv("TEST_ENVFILE_C"))
}

func TestLoadEnvFile_InvalidLine(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("no equals sign\n"), 0o644))

	assert.Error(t, loadEnvFile(envFile))
}
