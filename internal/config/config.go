package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/rankcore/pkg/ranking/signal"
)

// Config is the complete ranking-core configuration.
type Config struct {
	Version     int               `yaml:"version" json:"version"`
	BM25        BM25Config        `yaml:"bm25" json:"bm25"`
	Signals     SignalsConfig     `yaml:"signals" json:"signals"`
	Bangs       BangsConfig       `yaml:"bangs" json:"bangs"`
	LinearModel LinearModelConfig `yaml:"linear_model" json:"linear_model"`
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
}

// BM25Config configures the per-segment BM25 weight builder. K1 and B are
// shared across all text fields — there is no per-field tuning knob, to keep
// the configuration surface small.
type BM25Config struct {
	K1 float64 `yaml:"k1" json:"k1"`
	B  float64 `yaml:"b" json:"b"`
}

// SignalsConfig holds operator overrides for signal registry defaults.
// Keys are signal names as returned by Signal.String() (e.g. "bm25_title");
// unknown keys are rejected at load time via signal.ParseCoefficients.
type SignalsConfig struct {
	Coefficients map[string]float64 `yaml:"coefficients" json:"coefficients"`
}

// BangsConfig locates the bang table on disk.
type BangsConfig struct {
	Path string `yaml:"path" json:"path"`
}

// LinearModelConfig locates an optional trained linear model file whose
// per-signal weights sit between query overrides and registry defaults in
// coefficient resolution order. Path empty means no linear model is loaded.
type LinearModelConfig struct {
	Path string `yaml:"path" json:"path"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// CacheConfig sizes the query-scoped LRU caches the signal computer keeps
// for the freshness and fetch-time signals, bounding memory in a long-lived
// server rather than growing unbounded per distinct value seen.
type CacheConfig struct {
	FreshnessSize int `yaml:"freshness_size" json:"freshness_size"`
	FetchTimeSize int `yaml:"fetch_time_size" json:"fetch_time_size"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		BM25: BM25Config{
			// k1=1.2, b=0.75 are the canonical Lucene/Okapi BM25 defaults.
			K1: 1.2,
			B:  0.75,
		},
		Signals: SignalsConfig{
			Coefficients: map[string]float64{},
		},
		Bangs: BangsConfig{
			Path: defaultBangsPath(),
		},
		LinearModel: LinearModelConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Cache: CacheConfig{
			FreshnessSize: 4096,
			FetchTimeSize: 2048,
		},
	}
}

// defaultBangsPath returns the default bang-table location, following the
// XDG Base Directory specification.
func defaultBangsPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rankcore", "bangs.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "rankcore", "bangs.json")
	}
	return filepath.Join(home, ".config", "rankcore", "bangs.json")
}

// GetUserConfigPath returns the path to the user/global configuration file.
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rankcore", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "rankcore", "config.yaml")
	}
	return filepath.Join(home, ".config", "rankcore", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

func loadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	cfg := NewConfig()
	if err := cfg.loadYAML(configPath); err != nil {
		return nil, fmt.Errorf("failed to load user config from %s: %w", configPath, err)
	}
	return cfg, nil
}

// Load loads configuration from the given directory, applying overrides in
// order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/rankcore/config.yaml)
//  3. Project config (.rankcore.yaml in dir)
//  4. Environment variables (RANKCORE_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(dir string) error {
	yamlPath := filepath.Join(dir, ".rankcore.yaml")
	if fileExists(yamlPath) {
		return c.loadYAML(yamlPath)
	}

	ymlPath := filepath.Join(dir, ".rankcore.yml")
	if fileExists(ymlPath) {
		return c.loadYAML(ymlPath)
	}

	return nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.BM25.K1 != 0 {
		c.BM25.K1 = other.BM25.K1
	}
	if other.BM25.B != 0 {
		c.BM25.B = other.BM25.B
	}

	if len(other.Signals.Coefficients) > 0 {
		if c.Signals.Coefficients == nil {
			c.Signals.Coefficients = make(map[string]float64, len(other.Signals.Coefficients))
		}
		for name, coeff := range other.Signals.Coefficients {
			c.Signals.Coefficients[name] = coeff
		}
	}

	if other.Bangs.Path != "" {
		c.Bangs.Path = other.Bangs.Path
	}

	if other.LinearModel.Path != "" {
		c.LinearModel.Path = other.LinearModel.Path
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}

	if other.Cache.FreshnessSize != 0 {
		c.Cache.FreshnessSize = other.Cache.FreshnessSize
	}
	if other.Cache.FetchTimeSize != 0 {
		c.Cache.FetchTimeSize = other.Cache.FetchTimeSize
	}
}

// applyEnvOverrides applies RANKCORE_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RANKCORE_BM25_K1"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.BM25.K1 = f
		}
	}
	if v := os.Getenv("RANKCORE_BM25_B"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			c.BM25.B = f
		}
	}
	if v := os.Getenv("RANKCORE_BANGS_PATH"); v != "" {
		c.Bangs.Path = v
	}
	if v := os.Getenv("RANKCORE_LINEAR_MODEL_PATH"); v != "" {
		c.LinearModel.Path = v
	}
	if v := os.Getenv("RANKCORE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("RANKCORE_CACHE_FRESHNESS_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Cache.FreshnessSize = n
		}
	}
	if v := os.Getenv("RANKCORE_CACHE_FETCH_TIME_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Cache.FetchTimeSize = n
		}
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.BM25.K1 < 0 {
		return fmt.Errorf("bm25.k1 must be non-negative, got %f", c.BM25.K1)
	}
	if c.BM25.B < 0 || c.BM25.B > 1 {
		return fmt.Errorf("bm25.b must be between 0 and 1, got %f", c.BM25.B)
	}

	if _, err := signal.ParseCoefficients(c.Signals.Coefficients); err != nil {
		return fmt.Errorf("signals.coefficients: %w", err)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}

	if c.Cache.FreshnessSize <= 0 {
		return fmt.Errorf("cache.freshness_size must be positive, got %d", c.Cache.FreshnessSize)
	}
	if c.Cache.FetchTimeSize <= 0 {
		return fmt.Errorf("cache.fetch_time_size must be positive, got %d", c.Cache.FetchTimeSize)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadUserConfig loads the user configuration file. Returns nil config and
// nil error if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	return loadUserConfig()
}

// FindProjectRoot finds the project root directory by walking up from
// startDir looking for a .git directory or .rankcore.yaml/.yml file.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	currentDir := absDir
	for {
		if dirExists(filepath.Join(currentDir, ".git")) {
			return currentDir, nil
		}
		if fileExists(filepath.Join(currentDir, ".rankcore.yaml")) ||
			fileExists(filepath.Join(currentDir, ".rankcore.yml")) {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return absDir, nil
		}
		currentDir = parentDir
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
