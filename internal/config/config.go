// internal/config/config.go
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

const (
	FormatText = "text"
	FormatHTML = "html"
	FormatJSON = "json"
)

type Query struct {
	Word          string `yaml:"word"`
	CaseSensitive bool   `yaml:"caseSensitive"`
}

type Config struct {
	RateLimit struct {
		RequestsPerSecond int `yaml:"requestsPerSecond"`
		Burst             int `yaml:"burst"`
	} `yaml:"rateLimit"`

	Concurrency int `yaml:"concurrency"`

	Sources struct {
		Files    []string `yaml:"files"`
		URLs     []string `yaml:"urls"`
		ListFile string   `yaml:"listFile"`
	} `yaml:"sources"`

	HTTPClient struct {
		Timeout    int    `yaml:"timeout"`
		MaxRetries int    `yaml:"maxRetries"`
		RetryDelay int    `yaml:"retryDelay"`
		MaxJitter  int    `yaml:"maxJitter"` // milliseconds
		UserAgent  string `yaml:"userAgent"`
	} `yaml:"httpClient"`

	Input struct {
		Format   string `yaml:"format"`
		Selector string `yaml:"selector"`
	} `yaml:"input"`

	WordProcessing struct {
		StopWordsFile string `yaml:"stopWordsFile"`
		Locale        string `yaml:"locale"`
	} `yaml:"wordProcessing"`

	Output struct {
		TopWordsCount int    `yaml:"topWordsCount"`
		IncludeStats  bool   `yaml:"includeStats"`
		Format        string `yaml:"format"`
		PrettyPrint   bool   `yaml:"prettyPrint"`
	} `yaml:"output"`

	Queries []Query `yaml:"queries"`

	// Files, URLs and the entries of ListFile, in that order
	AllSources []string `yaml:"-"`
}

// Load reads and parses the configuration at path
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	cfg.AllSources = append(cfg.AllSources, cfg.Sources.Files...)
	cfg.AllSources = append(cfg.AllSources, cfg.Sources.URLs...)
	if cfg.Sources.ListFile != "" {
		listed, err := loadSourcesFromFile(cfg.Sources.ListFile)
		if err != nil {
			return nil, fmt.Errorf("error loading sources from file: %w", err)
		}
		cfg.AllSources = append(cfg.AllSources, listed...)
	}

	SetDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadSourcesFromFile reads one path or URL per line
func loadSourcesFromFile(filepath string) ([]string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("error opening sources file: %w", err)
	}
	defer file.Close()

	var sources []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		src := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if src != "" && !strings.HasPrefix(src, "#") {
			sources = append(sources, src)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading sources file: %w", err)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources found in file %s", filepath)
	}

	return sources, nil
}

// SetDefaults fills in zero values
func SetDefaults(cfg *Config) {
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 5
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 4
	}
	if cfg.HTTPClient.Timeout == 0 {
		cfg.HTTPClient.Timeout = 30
	}
	if cfg.HTTPClient.MaxRetries == 0 {
		cfg.HTTPClient.MaxRetries = 3
	}
	if cfg.HTTPClient.RetryDelay == 0 {
		cfg.HTTPClient.RetryDelay = 1
	}
	if cfg.Input.Format == "" {
		cfg.Input.Format = FormatText
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatJSON
	}
	if cfg.Output.TopWordsCount == 0 {
		cfg.Output.TopWordsCount = 10
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.AllSources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("requestsPerSecond must be positive")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.HTTPClient.MaxJitter < 0 {
		return fmt.Errorf("maxJitter must not be negative")
	}
	if c.Input.Format != FormatText && c.Input.Format != FormatHTML {
		return fmt.Errorf("input format must be %q or %q, got %q", FormatText, FormatHTML, c.Input.Format)
	}
	if c.Input.Selector != "" && c.Input.Format != FormatHTML {
		return fmt.Errorf("selector requires input format %q", FormatHTML)
	}
	if c.Output.Format != FormatJSON && c.Output.Format != FormatText {
		return fmt.Errorf("output format must be %q or %q, got %q", FormatJSON, FormatText, c.Output.Format)
	}
	if _, err := c.LocaleTag(); err != nil {
		return err
	}
	for i, q := range c.Queries {
		if q.Word == "" {
			return fmt.Errorf("query %d has an empty word", i)
		}
	}
	return nil
}

// LocaleTag parses WordProcessing.Locale. An empty locale yields language.Und.
func (c *Config) LocaleTag() (language.Tag, error) {
	if c.WordProcessing.Locale == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(c.WordProcessing.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", c.WordProcessing.Locale, err)
	}
	return tag, nil
}
