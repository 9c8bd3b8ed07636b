package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/txancestry/infrastructure/network/esplora"
	"github.com/pkg/errors"
)

const (
	defaultConfigFilename        = "txancestry.conf"
	defaultLogDirname            = "logs"
	defaultLogLevel              = "info"
	defaultLogFilename           = "txancestry.log"
	defaultErrLogFilename        = "txancestry_err.log"
	defaultBlock                 = "680000"
	defaultLimit                 = 10
	defaultTimeoutSeconds uint64 = 30
	defaultConcurrency           = 4
	defaultCacheSize             = 8
)

var (
	// DefaultHomeDir is the default home directory for txancestry.
	DefaultHomeDir = btcutil.AppDataDir("txancestry", false)

	defaultConfigFile = filepath.Join(DefaultHomeDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(DefaultHomeDir, defaultLogDirname)
)

// Flags defines the configuration options for txancestry.
type Flags struct {
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`

	Block string `short:"b" long:"block" description:"Height or hash of the block to analyse"`
	Limit int    `short:"n" long:"limit" description:"Number of transactions to report"`

	EsploraURL  string `long:"esplora" description:"Esplora API root (default: the public instance of the selected network)"`
	Timeout     uint64 `short:"t" long:"timeout" description:"Timeout for every Esplora request (in seconds)"`
	Concurrency int    `long:"concurrency" description:"Maximum number of transaction pages fetched at the same time"`
	CacheSize   int    `long:"cachesize" description:"Number of block listings kept in memory"`
	Proxy       string `long:"proxy" description:"Connect via SOCKS5 proxy (eg. 127.0.0.1:9050)"`
	ProxyUser   string `long:"proxyuser" description:"Username for proxy server"`
	ProxyPass   string `long:"proxypass" default-mask:"-" description:"Password for proxy server"`

	LogDir     string `long:"logdir" description:"Directory to log output"`
	LogLevel   string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	NoLogFiles bool   `long:"nologfiles" description:"Disable logging to files"`
	LogStdout  bool   `long:"logstdout" description:"Also write log entries to stdout, interleaved with the report"`
	Profile    string `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65535"`

	NetworkFlags
}

// Config is the validated txancestry configuration.
type Config struct {
	*Flags
}

// LogFile returns the path of the main log file.
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}

// ErrLogFile returns the path of the warnings-and-errors log file.
func (cfg *Config) ErrLogFile() string {
	return filepath.Join(cfg.LogDir, defaultErrLogFilename)
}

// EsploraConfig returns the configuration of the Esplora client.
func (cfg *Config) EsploraConfig() *esplora.Config {
	return &esplora.Config{
		BaseURL:     cfg.EsploraURL,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		Concurrency: cfg.Concurrency,
		CacheSize:   cfg.CacheSize,
		Proxy:       cfg.Proxy,
		ProxyUser:   cfg.ProxyUser,
		ProxyPass:   cfg.ProxyPass,
	}
}

func defaultFlags() *Flags {
	return &Flags{
		ConfigFile:  defaultConfigFile,
		Block:       defaultBlock,
		Limit:       defaultLimit,
		Timeout:     defaultTimeoutSeconds,
		Concurrency: defaultConcurrency,
		CacheSize:   defaultCacheSize,
		LogDir:      defaultLogDir,
		LogLevel:    defaultLogLevel,
	}
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// LoadConfig builds the configuration from args (without the program name):
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load the configuration file, overwriting defaults
//  4. Parse the command line again so its options take precedence
//
// A missing default config file is not an error; a missing file named with
// --configfile is. When --version or --help is given the returned
// configuration is not validated.
func LoadConfig(args []string) (*Config, error) {
	preCfg := defaultFlags()
	preParser := flags.NewParser(preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, err
		}
	}
	if preCfg.ShowVersion {
		return &Config{Flags: preCfg}, nil
	}

	cfgFlags := defaultFlags()
	parser := flags.NewParser(cfgFlags, flags.HelpFlag)

	configFile := cleanAndExpandPath(preCfg.ConfigFile)
	err = flags.NewIniParser(parser).ParseFile(configFile)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) || configFile != cleanAndExpandPath(defaultConfigFile) {
			return nil, errors.Wrapf(err, "error parsing config file %s", configFile)
		}
	}

	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if len(remainingArgs) > 0 {
		return nil, errors.Errorf("unexpected arguments: %s", strings.Join(remainingArgs, " "))
	}

	cfg := &Config{Flags: cfgFlags}
	err = cfg.validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	err := cfg.ResolveNetwork()
	if err != nil {
		return err
	}
	if cfg.EsploraURL == "" {
		cfg.EsploraURL = cfg.NetParams().EsploraURL
	}

	_, err = esplora.ParseBlockIdentifier(cfg.Block)
	if err != nil {
		return errors.Wrapf(err, "invalid --block")
	}
	if cfg.Limit < 0 {
		return errors.Errorf("--limit must not be negative, got %d", cfg.Limit)
	}
	if cfg.Timeout == 0 {
		return errors.New("--timeout must be positive")
	}
	if cfg.Concurrency < 1 {
		return errors.Errorf("--concurrency must be at least 1, got %d", cfg.Concurrency)
	}
	if cfg.CacheSize < 1 {
		return errors.Errorf("--cachesize must be at least 1, got %d", cfg.CacheSize)
	}
	if cfg.Proxy == "" && (cfg.ProxyUser != "" || cfg.ProxyPass != "") {
		return errors.New("--proxyuser and --proxypass require --proxy")
	}

	if cfg.Profile != "" {
		profilePort, err := strconv.Atoi(cfg.Profile)
		if err != nil || profilePort < 1024 || profilePort > 65535 {
			return errors.Errorf("the profile port must be between 1024 and 65535, got %s", cfg.Profile)
		}
	}

	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
	cfg.ConfigFile = cleanAndExpandPath(cfg.ConfigFile)
	return nil
}

// Usage returns a one-line hint on how to show the help text.
func Usage() string {
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	return fmt.Sprintf("Use %s -h to show usage", appName)
}
