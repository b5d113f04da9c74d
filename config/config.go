// Copyright 2024 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/stratastor/adminevents/internal/constants"
	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stratastor/logger"
	"gopkg.in/yaml.v3"
)

var (
	instance   *Config
	once       sync.Once
	mu         sync.Mutex
	configPath string // Tracks where the config was loaded from
)

type Config struct {
	Server struct {
		BaseURL       string `mapstructure:"baseURL" yaml:"baseURL"`
		TestingPath   string `mapstructure:"testingPath" yaml:"testingPath"`
		ClearPath     string `mapstructure:"clearPath" yaml:"clearPath"`
		PollPath      string `mapstructure:"pollPath" yaml:"pollPath"`
		PollMethod    string `mapstructure:"pollMethod" yaml:"pollMethod"`
		HealthPath    string `mapstructure:"healthPath" yaml:"healthPath"`
		Timeout       string `mapstructure:"timeout" yaml:"timeout"`
		AllowInsecure bool   `mapstructure:"allowInsecure" yaml:"allowInsecure"`
	} `mapstructure:"server" yaml:"server"`

	// Admin is the session whose credential default auth details derive from.
	// A non-empty Token is used as-is; otherwise a password grant is made.
	Admin struct {
		Realm    string `mapstructure:"realm" yaml:"realm"`
		ClientID string `mapstructure:"clientID" yaml:"clientID"`
		Username string `mapstructure:"username" yaml:"username"`
		Password string `mapstructure:"password" yaml:"password"`
		Token    string `mapstructure:"token" yaml:"token"`
	} `mapstructure:"admin" yaml:"admin"`

	Logger struct {
		LogLevel     string `mapstructure:"logLevel" yaml:"logLevel"`
		EnableSentry bool   `mapstructure:"enableSentry" yaml:"enableSentry"`
		SentryDSN    string `mapstructure:"sentryDSN" yaml:"sentryDSN"`
	} `mapstructure:"logger" yaml:"logger"`

	FakeServer struct {
		Addr       string `mapstructure:"addr" yaml:"addr"`
		SigningKey string `mapstructure:"signingKey" yaml:"signingKey"`
		UserID     string `mapstructure:"userID" yaml:"userID"`
		Username   string `mapstructure:"username" yaml:"username"`
		Password   string `mapstructure:"password" yaml:"password"`
		TokenTTL   string `mapstructure:"tokenTTL" yaml:"tokenTTL"`
	} `mapstructure:"fakeServer" yaml:"fakeServer"`

	Tail struct {
		Interval string `mapstructure:"interval" yaml:"interval"`
	} `mapstructure:"tail" yaml:"tail"`

	Assertions struct {
		LeftoverCheck bool `mapstructure:"leftoverCheck" yaml:"leftoverCheck"`
	} `mapstructure:"assertions" yaml:"assertions"`

	Environment string `mapstructure:"environment" yaml:"environment"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "dev")

	v.SetDefault("server.baseURL", "http://localhost:8180")
	v.SetDefault("server.testingPath", constants.DefaultTestingPath)
	v.SetDefault("server.clearPath", constants.ClearAdminEventQueue)
	v.SetDefault("server.pollPath", constants.PollAdminEvent)
	v.SetDefault("server.pollMethod", http.MethodGet)
	v.SetDefault("server.healthPath", constants.DefaultHealthPath)
	v.SetDefault("server.timeout", "10s")
	v.SetDefault("server.allowInsecure", false)

	v.SetDefault("admin.realm", constants.MasterRealm)
	v.SetDefault("admin.clientID", constants.AdminCLIClient)
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin")
	v.SetDefault("admin.token", "")

	v.SetDefault("logger.logLevel", "info")
	v.SetDefault("logger.enableSentry", false)
	v.SetDefault("logger.sentryDSN", "")

	v.SetDefault("fakeServer.addr", "127.0.0.1:8180")
	v.SetDefault("fakeServer.signingKey", "adminevents-fake-idp")
	v.SetDefault("fakeServer.userID", "00000000-0000-0000-0000-000000000001")
	v.SetDefault("fakeServer.username", "admin")
	v.SetDefault("fakeServer.password", "admin")
	v.SetDefault("fakeServer.tokenTTL", "5m")

	v.SetDefault("tail.interval", "1s")

	v.SetDefault("assertions.leftoverCheck", false)
}

// Load reads the configuration from path, or from the environment variable or
// default location when path is empty. A missing file yields the defaults;
// environment variables prefixed with ADMINEVENTS_ override both.
func Load(path string) (*Config, string, error) {
	resolved := resolveConfigPath(path)
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	used := ""
	if _, err := os.Stat(resolved); err == nil {
		v.SetConfigFile(resolved)
		if err := v.ReadInConfig(); err != nil {
			return nil, resolved, errors.Wrap(err, errors.ConfigLoadFailed).WithMetadata("path", resolved)
		}
		used = v.ConfigFileUsed()
	} else if !os.IsNotExist(err) {
		return nil, resolved, errors.Wrap(err, errors.ConfigLoadFailed).WithMetadata("path", resolved)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, used, errors.Wrap(err, errors.ConfigUnmarshalFailed)
	}
	if err := cfg.Validate(); err != nil {
		return nil, used, err
	}
	return &cfg, used, nil
}

// Validate checks the duration settings parse
func (c *Config) Validate() error {
	for key, value := range map[string]string{
		"server.timeout":      c.Server.Timeout,
		"fakeServer.tokenTTL": c.FakeServer.TokenTTL,
		"tail.interval":       c.Tail.Interval,
	} {
		if value == "" {
			continue
		}
		if d, err := time.ParseDuration(value); err != nil || d < 0 {
			return errors.New(errors.ConfigInvalid, fmt.Sprintf("%s: invalid duration %q", key, value)).
				WithMetadata("key", key)
		}
	}
	switch strings.ToUpper(c.Server.PollMethod) {
	case "", http.MethodGet, http.MethodPost:
	default:
		return errors.New(errors.ConfigInvalid, fmt.Sprintf("server.pollMethod: unsupported method %q", c.Server.PollMethod)).
			WithMetadata("key", "server.pollMethod")
	}
	if c.Server.BaseURL == "" {
		return errors.New(errors.ConfigInvalid, "server.baseURL is required").WithMetadata("key", "server.baseURL")
	}
	return nil
}

// ServerTimeout returns server.timeout; Validate guarantees it parses
func (c *Config) ServerTimeout() time.Duration {
	return parseDuration(c.Server.Timeout)
}

func (c *Config) TailInterval() time.Duration {
	return parseDuration(c.Tail.Interval)
}

func (c *Config) FakeServerTokenTTL() time.Duration {
	return parseDuration(c.FakeServer.TokenTTL)
}

func parseDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

// LoadConfig loads the process-wide configuration once. Load errors are logged
// and the defaults are used instead.
func LoadConfig(configFilePath string) *Config {
	once.Do(func() {
		l, err := logger.NewTag(logger.Config{LogLevel: "info"}, "config")
		if err != nil {
			fmt.Printf("Failed to create logger: %v\n", err)
			os.Exit(1)
		}

		cfg, used, err := Load(configFilePath)
		if err != nil {
			l.Error("Error reading config file, using defaults", "err", err)
			cfg = defaults()
		}

		mu.Lock()
		instance = cfg
		if used != "" {
			configPath = used
			l.Debug("Config file loaded successfully", "path", used)
		} else {
			configPath = ""
			l.Debug("Config file not found, using defaults", "path", resolveConfigPath(configFilePath))
		}
		mu.Unlock()

		debugCfg := *cfg
		debugCfg.Admin.Password = "[REDACTED]"
		debugCfg.Admin.Token = redactToken(debugCfg.Admin.Token)
		debugCfg.FakeServer.Password = "[REDACTED]"
		debugCfg.FakeServer.SigningKey = "[REDACTED]"
		l.Debug("Loaded configuration", "config", fmt.Sprintf("%+v", debugCfg))
	})

	return instance
}

func defaults() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func redactToken(token string) string {
	if token == "" {
		return ""
	}
	return "[REDACTED]"
}

// SaveConfig writes the current configuration as YAML. An empty path writes to
// the default location.
func SaveConfig(path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := GetConfig()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ConfigWriteFailed).WithMetadata("path", path)
	}

	configYAML, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ConfigMarshalFailed)
	}

	if err := os.WriteFile(path, configYAML, 0600); err != nil {
		return errors.Wrap(err, errors.ConfigWriteFailed).WithMetadata("path", path)
	}

	mu.Lock()
	configPath = path
	mu.Unlock()
	return nil
}

// GetLoadedConfigPath returns the path of the loaded configuration file, or ""
// when the defaults are in use.
func GetLoadedConfigPath() string {
	mu.Lock()
	defer mu.Unlock()
	return configPath
}

// GetConfig returns the current configuration instance, loading it on first use.
func GetConfig() *Config {
	mu.Lock()
	cfg := instance
	mu.Unlock()
	if cfg == nil {
		return LoadConfig("")
	}
	return cfg
}

func NewLoggerConfig(cfg *Config) logger.Config {
	if cfg == nil {
		return logger.Config{
			LogLevel:     "info",
			EnableSentry: false,
			SentryDSN:    "",
		}
	}

	return logger.Config{
		LogLevel:     cfg.Logger.LogLevel,
		EnableSentry: cfg.Logger.EnableSentry,
		SentryDSN:    cfg.Logger.SentryDSN,
	}
}
