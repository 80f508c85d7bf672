package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/daybook/config.yaml"

// Config holds all daybook configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Events  Events  `yaml:"events"`
	Images  Images  `yaml:"images"`
	Logging Logging `yaml:"logging"`
}

// Storage locates the flat-file data the app persists.
type Storage struct {
	Path          string `yaml:"path"`
	EventsFile    string `yaml:"events_file"`
	ImageCacheDir string `yaml:"image_cache_dir"`
	CacheFile     string `yaml:"image_cache_file"`
	DownloadDir   string `yaml:"download_dir"`
	QuotaFile     string `yaml:"quota_file"`
}

// Events configures the remote event provider and the connectivity probe.
type Events struct {
	ProviderURL      string `yaml:"provider_url"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
	ProbeHost        string `yaml:"probe_host"`
	ProbePort        int    `yaml:"probe_port"`
	ProbeTimeoutSecs int    `yaml:"probe_timeout_seconds"`
}

// Images configures the quota-limited image search.
type Images struct {
	SearchURL      string `yaml:"search_url"`
	APIKey         string `yaml:"api_key"`
	SearchEngineID string `yaml:"search_engine_id"`
	FileType       string `yaml:"file_type"`
	ResultCount    int    `yaml:"result_count"`
	DailyQuota     int    `yaml:"daily_quota"`
	CacheTTLDays   int    `yaml:"cache_ttl_days"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Logging controls diagnostic output.
type Logging struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets the image-search credentials come from the
// environment, which always wins over the config file.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c.Images.APIKey = key
	}
	if id := os.Getenv("SEARCH_ENGINE_ID"); id != "" {
		c.Images.SearchEngineID = id
	}
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		cfg.applyEnvOverrides()
		return cfg, nil
	}

	return Load(path)
}

// DataPath resolves a storage file name against the storage path,
// expanding a leading ~.
func (c *Config) DataPath(name string) (string, error) {
	base, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, name), nil
}

// EventsPath returns the full path of the event store CSV.
func (c *Config) EventsPath() (string, error) {
	return c.DataPath(c.Storage.EventsFile)
}

// ImageCachePath returns the full path of the image cache CSV.
func (c *Config) ImageCachePath() (string, error) {
	return c.DataPath(filepath.Join(c.Storage.ImageCacheDir, c.Storage.CacheFile))
}

// DownloadDirPath returns the full path of the downloaded-images dir.
func (c *Config) DownloadDirPath() (string, error) {
	return c.DataPath(filepath.Join(c.Storage.ImageCacheDir, c.Storage.DownloadDir))
}

// QuotaPath returns the full path of the quota state JSON file.
func (c *Config) QuotaPath() (string, error) {
	return c.DataPath(c.Storage.QuotaFile)
}
