package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/eleitos/pkg/errors"
	"github.com/matzehuels/eleitos/pkg/integrations/picwish"
	"github.com/matzehuels/eleitos/pkg/integrations/tse"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta"
)

const (
	configFile         = "config.toml"
	configTemplateFile = "config.template.toml"

	defaultOutputDir      = "DADOS"
	defaultCacheTTL       = 24 * time.Hour
	defaultTemplateOutput = "tarjetas_eleitos.pdf"
)

// Duration decodes TOML strings such as "1s" or "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config is the parsed config.toml. It is read once at startup and passed to
// every component.
type Config struct {
	PicwishAPIKey string `toml:"picwish_api_key"`
	OutputDir     string `toml:"output_dir"`

	TSE struct {
		BaseURL      string `toml:"base_url"`
		ImageBaseURL string `toml:"image_base_url"`
	} `toml:"tse"`

	Picwish struct {
		BaseURL      string   `toml:"base_url"`
		PollAttempts int      `toml:"poll_attempts"`
		PollInterval Duration `toml:"poll_interval"`
	} `toml:"picwish"`

	Cache struct {
		Dir      string   `toml:"dir"`
		TTL      Duration `toml:"ttl"`
		RedisURL string   `toml:"redis_url"`
	} `toml:"cache"`

	Mongo struct {
		URI        string `toml:"uri"`
		Database   string `toml:"database"`
		Collection string `toml:"collection"`
	} `toml:"mongo"`

	Automation struct {
		Output      string `toml:"output"`
		TarjetasDir string `toml:"tarjetas_dir"`
	} `toml:"automation"`
}

func (c *Config) setDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
	if c.TSE.BaseURL == "" {
		c.TSE.BaseURL = tse.DefaultBaseURL
	}
	if c.TSE.ImageBaseURL == "" {
		c.TSE.ImageBaseURL = tse.DefaultImageBaseURL
	}
	if c.Picwish.BaseURL == "" {
		c.Picwish.BaseURL = picwish.DefaultBaseURL
	}
	if c.Picwish.PollAttempts <= 0 {
		c.Picwish.PollAttempts = picwish.DefaultPollAttempts
	}
	if c.Picwish.PollInterval.Duration <= 0 {
		c.Picwish.PollInterval.Duration = picwish.DefaultPollInterval
	}
	if c.Cache.TTL.Duration <= 0 {
		c.Cache.TTL.Duration = defaultCacheTTL
	}
	if c.Automation.TarjetasDir == "" {
		c.Automation.TarjetasDir = tarjeta.DefaultOutputDir
	}
	if c.Automation.Output == "" {
		c.Automation.Output = defaultTemplateOutput
	}
}

// TemplatePath is the automation output, relative paths resolved inside the
// tarjetas directory.
func (c *Config) TemplatePath() string {
	if filepath.IsAbs(c.Automation.Output) {
		return c.Automation.Output
	}
	return filepath.Join(c.Automation.TarjetasDir, c.Automation.Output)
}

// configCandidates lists the lookup order when no path is given.
func configCandidates() []string {
	paths := []string{configFile}
	if dir, err := configDir(); err == nil {
		paths = append(paths, filepath.Join(dir, configFile))
	}
	return paths
}

// configDir returns $XDG_CONFIG_HOME/eleitos, or ~/.config/eleitos.
func configDir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads the config and requires the API key. A missing file or
// key is a CONFIG_MISSING error whose message carries the remediation steps.
func loadConfig(path string) (*Config, error) {
	cfg, found, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.PicwishAPIKey) == "" {
		return nil, apperrors.New(apperrors.ErrCodeConfigMissing, "%s has no picwish_api_key\n%s", found, remediation())
	}
	return cfg, nil
}

// readConfig decodes path, or the first existing default location when path
// is empty, and applies defaults. It also returns the file that was read.
func readConfig(path string) (*Config, string, error) {
	candidates := []string{path}
	if path == "" {
		candidates = configCandidates()
	}

	for _, p := range candidates {
		var cfg Config
		_, err := toml.DecodeFile(p, &cfg)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse %s", p)
		}
		cfg.setDefaults()
		return &cfg, p, nil
	}
	return nil, "", apperrors.New(apperrors.ErrCodeConfigMissing, "configuration file not found (looked in %s)\n%s",
		strings.Join(candidates, ", "), remediation())
}

func remediation() string {
	return fmt.Sprintf("  1. Copy %s\n  2. Rename it to %s\n  3. Set picwish_api_key to your PicWish API key\n  4. Run the program again",
		configTemplateFile, configFile)
}
