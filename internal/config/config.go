package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// R2 holds the object-storage block. Upload is only attempted when the
// block is fully filled in; see Ready.
type R2 struct {
	Enabled         bool   `yaml:"enabled"`
	AccountID       string `yaml:"account_id"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	CustomDomain    string `yaml:"custom_domain"`
	ImagePath       string `yaml:"image_path"`
}

// Ready reports whether uploads can actually run. A partially filled block
// silently disables uploading rather than erroring.
func (r R2) Ready() bool {
	return r.Enabled &&
		strings.TrimSpace(r.AccountID) != "" &&
		strings.TrimSpace(r.AccessKeyID) != "" &&
		strings.TrimSpace(r.SecretAccessKey) != "" &&
		strings.TrimSpace(r.Bucket) != ""
}

type Config struct {
	SiteURL          string `yaml:"site_url"`
	AdminAPIKey      string `yaml:"admin_api_key"`
	DefaultStatus    string `yaml:"default_status"`
	DefaultAuthor    string `yaml:"default_author"`
	DefaultTags      string `yaml:"default_tags"`
	ConvertWikilinks bool   `yaml:"convert_wikilinks"`
	AddSourceLink    bool   `yaml:"add_source_link"`
	Debug            bool   `yaml:"debug"`
	R2               R2     `yaml:"r2"`
}

// Default returns the settings used when a key is absent from the file.
func Default() *Config {
	return &Config{
		DefaultStatus:    "draft",
		ConvertWikilinks: true,
		R2:               R2{ImagePath: "images"},
	}
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic("unable to determine user home directory")
	}
	return filepath.Join(home, ".witch")
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(configDir(), "witch.yml")
}

// Load reads the config from the default location.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config from an explicit path. Keys absent from the
// file keep their defaults; GHOST_ADMIN_API_KEY overrides the stored key.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	if key := os.Getenv("GHOST_ADMIN_API_KEY"); key != "" {
		cfg.AdminAPIKey = key
	}
	return cfg, nil
}

// Save writes the config to the default location with restricted
// permissions. The file carries credentials, hence 0600.
func (c *Config) Save() error {
	if err := os.MkdirAll(configDir(), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(Path(), data, 0600)
}
