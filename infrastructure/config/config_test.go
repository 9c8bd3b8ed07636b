package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/txancestry/infrastructure/network/esplora"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// loadWithoutConfigFile points --configfile at a file that does not exist in
// a fresh temp dir, so the user's own config never leaks into the tests.
func loadWithoutConfigFile(t *testing.T, args ...string) (*Config, error) {
	configFile := filepath.Join(t.TempDir(), "missing.conf")
	return LoadConfig(append([]string{"--configfile", configFile}, args...))
}

func writeConfigFile(t *testing.T, content string) string {
	configFile := filepath.Join(t.TempDir(), "txancestry.conf")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := loadWithoutConfigFile(t)
	require.Error(t, err)
	require.Contains(t, err.Error(), "error parsing config file")
}

func TestLoadConfigFlags(t *testing.T) {
	configFile := writeConfigFile(t, "")
	cfg, err := LoadConfig([]string{
		"--configfile", configFile,
		"-b", "700000",
		"-n", "3",
		"--timeout", "5",
		"--concurrency", "2",
		"--cachesize", "1",
		"--logdir", "/tmp/../tmp/txancestry-logs",
		"--nologfiles",
		"--logstdout",
	})
	require.NoError(t, err)
	require.Equal(t, "700000", cfg.Block)
	require.Equal(t, 3, cfg.Limit)
	require.Equal(t, "/tmp/txancestry-logs", cfg.LogDir)
	require.True(t, cfg.NoLogFiles)
	require.True(t, cfg.LogStdout)
	require.Equal(t, "/tmp/txancestry-logs/txancestry.log", cfg.LogFile())
	require.Equal(t, "/tmp/txancestry-logs/txancestry_err.log", cfg.ErrLogFile())
	require.Equal(t, esplora.MainnetURL, cfg.EsploraURL)

	esploraConfig := cfg.EsploraConfig()
	require.Equal(t, esplora.MainnetURL, esploraConfig.BaseURL)
	require.Equal(t, 5*time.Second, esploraConfig.Timeout)
	require.Equal(t, 2, esploraConfig.Concurrency)
	require.Equal(t, 1, esploraConfig.CacheSize)
}

func TestLoadConfigDefaultValues(t *testing.T) {
	configFile := writeConfigFile(t, "")
	cfg, err := LoadConfig([]string{"--configfile", configFile})
	require.NoError(t, err)
	require.Equal(t, defaultBlock, cfg.Block)
	require.Equal(t, defaultLimit, cfg.Limit)
	require.Equal(t, defaultTimeoutSeconds, cfg.Timeout)
	require.Equal(t, defaultConcurrency, cfg.Concurrency)
	require.Equal(t, defaultCacheSize, cfg.CacheSize)
	require.Equal(t, defaultLogLevel, cfg.LogLevel)
	require.Equal(t, &MainnetParams, cfg.NetParams())
}

func TestLoadConfigNetworks(t *testing.T) {
	configFile := writeConfigFile(t, "")

	cfg, err := LoadConfig([]string{"--configfile", configFile, "--testnet"})
	require.NoError(t, err)
	require.Equal(t, &TestnetParams, cfg.NetParams())
	require.Equal(t, esplora.TestnetURL, cfg.EsploraURL)

	cfg, err = LoadConfig([]string{"--configfile", configFile, "--signet"})
	require.NoError(t, err)
	require.Equal(t, esplora.SignetURL, cfg.EsploraURL)

	cfg, err = LoadConfig([]string{"--configfile", configFile, "--signet", "--esplora", "http://localhost:3000/api"})
	require.NoError(t, err)
	require.Equal(t, &SignetParams, cfg.NetParams())
	require.Equal(t, "http://localhost:3000/api", cfg.EsploraURL)

	_, err = LoadConfig([]string{"--configfile", configFile, "--testnet", "--signet"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Multiple networks")
}

func TestLoadConfigFile(t *testing.T) {
	configFile := writeConfigFile(t, `[Application Options]
block=000000000000000000076c036ff5119e5a5a74df77abf64203473364509f7732
limit=25
testnet=1
`)

	cfg, err := LoadConfig([]string{"--configfile", configFile})
	require.NoError(t, err)
	require.Equal(t, "000000000000000000076c036ff5119e5a5a74df77abf64203473364509f7732", cfg.Block)
	require.Equal(t, 25, cfg.Limit)
	require.Equal(t, &TestnetParams, cfg.NetParams())

	// The command line takes precedence over the config file.
	cfg, err = LoadConfig([]string{"--configfile", configFile, "--limit", "4"})
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Limit)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	configFile := writeConfigFile(t, "")

	tests := []struct {
		name string
		args []string
	}{
		{name: "negative limit", args: []string{"--limit=-1"}},
		{name: "zero timeout", args: []string{"--timeout", "0"}},
		{name: "zero concurrency", args: []string{"--concurrency", "0"}},
		{name: "zero cache size", args: []string{"--cachesize", "0"}},
		{name: "malformed block", args: []string{"--block", "not-a-block"}},
		{name: "proxy user without proxy", args: []string{"--proxyuser", "user"}},
		{name: "privileged profile port", args: []string{"--profile", "80"}},
		{name: "non-numeric profile port", args: []string{"--profile", "pprof"}},
		{name: "positional argument", args: []string{"extra"}},
		{name: "unknown flag", args: []string{"--no-such-flag"}},
	}
	for _, test := range tests {
		_, err := LoadConfig(append([]string{"--configfile", configFile}, test.args...))
		if err == nil {
			t.Errorf("%s: expected an error", test.name)
		}
	}
}

func TestLoadConfigVersionAndHelp(t *testing.T) {
	cfg, err := loadWithoutConfigFile(t, "--version")
	require.NoError(t, err)
	require.True(t, cfg.ShowVersion)

	_, err = loadWithoutConfigFile(t, "--help")
	var flagsErr *flags.Error
	require.True(t, errors.As(err, &flagsErr))
	require.Equal(t, flags.ErrHelp, flagsErr.Type)
}
