package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL        = "http://localhost:4000"
	DefaultListenAddr    = "127.0.0.1:3100"
	DefaultEnv           = EnvProduction
	DefaultLogLevel      = "debug"
	DefaultShutdownDelay = 4 * time.Second

	EnvDevelopment = "development"
	EnvProduction  = "production"

	configFileName           = ".taskfront.toml"
	configDirEnvKey          = "TASKFRONT_CONFIG_DIR"
	trustProjectConfigEnvKey = "TASKFRONT_TRUST_PROJECT_CONFIG"
	apiURLEnvKey             = "TASKFRONT_API_URL"
	listenAddrEnvKey         = "TASKFRONT_LISTEN_ADDR"
	envEnvKey                = "TASKFRONT_ENV"
	portEnvKey               = "PORT"
)

// TLSConfig points at the certificate used when serving HTTPS.
type TLSConfig struct {
	CertFile string `toml:"cert_file"`
	KeyFile  string `toml:"key_file"`
}

// Enabled reports whether both certificate and key are configured.
func (t TLSConfig) Enabled() bool {
	return strings.TrimSpace(t.CertFile) != "" && strings.TrimSpace(t.KeyFile) != ""
}

// Config defines runtime configuration for taskfront.
type Config struct {
	APIURL                   string    `toml:"api_url"`
	ListenAddr               string    `toml:"listen_addr"`
	Env                      string    `toml:"env"`
	LogLevel                 string    `toml:"log_level"`
	ShutdownDelay            Duration  `toml:"shutdown_delay"`
	TLS                      TLSConfig `toml:"tls"`
	TrustedProjectConfigPath string    `toml:"-"`
}

// Duration is a time.Duration that decodes from TOML strings like "4s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:        DefaultAPIURL,
		ListenAddr:    DefaultListenAddr,
		Env:           DefaultEnv,
		LogLevel:      DefaultLogLevel,
		ShutdownDelay: Duration{DefaultShutdownDelay},
	}
}

// IsDevelopment reports whether the front end runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), EnvDevelopment)
}

// UseTLS reports whether the server should serve HTTPS.
func (c *Config) UseTLS() bool {
	return c.IsDevelopment() && c.TLS.Enabled()
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

func trustProjectConfig() bool {
	raw := strings.TrimSpace(os.Getenv(trustProjectConfigEnvKey))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

var allowedKeys = []string{
	"api_url",
	"listen_addr",
	"env",
	"log_level",
	"shutdown_delay",
	"tls.cert_file",
	"tls.key_file",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "listen_addr":
		return c.ListenAddr, nil
	case "env":
		return c.Env, nil
	case "log_level":
		return c.LogLevel, nil
	case "shutdown_delay":
		return c.ShutdownDelay.String(), nil
	case "tls.cert_file":
		return c.TLS.CertFile, nil
	case "tls.key_file":
		return c.TLS.KeyFile, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ProjectPath returns the path to the project config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from trusted files and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if err := loadFile(filepath.Join(home, configFileName), &cfg); err != nil {
				return nil, err
			}
		}

		if trustProjectConfig() {
			if cwd, err := os.Getwd(); err == nil {
				projectPath := filepath.Join(cwd, configFileName)
				info, statErr := os.Stat(projectPath)
				switch {
				case statErr == nil && !info.IsDir():
					if err := loadFile(projectPath, &cfg); err != nil {
						return nil, err
					}
					cfg.TrustedProjectConfigPath = projectPath
				case statErr != nil && !os.IsNotExist(statErr):
					return nil, statErr
				}
			}
		}
	}

	if apiURL := strings.TrimSpace(os.Getenv(apiURLEnvKey)); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if listenAddr := strings.TrimSpace(os.Getenv(listenAddrEnvKey)); listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	if port := strings.TrimSpace(os.Getenv(portEnvKey)); port != "" {
		addr, err := withPort(cfg.ListenAddr, port)
		if err != nil {
			return nil, err
		}
		cfg.ListenAddr = addr
	}
	if env := strings.TrimSpace(os.Getenv(envEnvKey)); env != "" {
		cfg.Env = env
	}

	cfg.normalizeDefaults()

	return &cfg, nil
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "shutdown_delay":
		parsed, err := time.ParseDuration(value)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("%s must be a non-negative duration such as 4s", key)
		}
		return parsed.String(), nil
	case "env":
		switch strings.ToLower(value) {
		case EnvDevelopment, EnvProduction:
			return strings.ToLower(value), nil
		default:
			return nil, fmt.Errorf("env must be %s or %s", EnvDevelopment, EnvProduction)
		}
	case "listen_addr":
		if _, _, err := net.SplitHostPort(value); err != nil {
			return nil, fmt.Errorf("listen_addr must be host:port: %w", err)
		}
		return value, nil
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}

func withPort(addr, port string) (string, error) {
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return "", fmt.Errorf("invalid %s %q", portEnvKey, port)
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, port), nil
}

func (c *Config) normalizeDefaults() {
	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = DefaultAPIURL
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = DefaultEnv
	}
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.ShutdownDelay.Duration < 0 {
		c.ShutdownDelay = Duration{DefaultShutdownDelay}
	}
}
