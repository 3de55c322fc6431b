// Package config provides configuration loading and management for gqlrdf.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/geoknoesis/gqlrdf/rdf"
	"github.com/geoknoesis/gqlrdf/vocabulary"
)

// Config represents the complete gqlrdf configuration
type Config struct {
	API     APIConfig     `yaml:"api"`
	IRI     IRIConfig     `yaml:"iri"`
	Export  ExportConfig  `yaml:"export"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// APIConfig configures the GraphQL API
type APIConfig struct {
	// URL is the REST root serving /schema
	URL string `yaml:"url"`
	// GraphQLURL is the GraphQL endpoint
	GraphQLURL string `yaml:"graphql_url"`
	// Timeout bounds every HTTP request
	Timeout time.Duration `yaml:"timeout"`
}

// IRIConfig configures IRI minting
type IRIConfig struct {
	// Vocab is the vocabulary IRI, bound to @vocab and the empty prefix
	Vocab string `yaml:"vocab"`
	// EntityBase is the root of entity IRIs
	EntityBase string `yaml:"entity_base"`
}

// ExportConfig configures the export run
type ExportConfig struct {
	// OutputDir receives one <Type>.ttl file per exported type
	OutputDir string `yaml:"output_dir"`
	// PageLimit is the page size (<= 0 fetches every type in a single request)
	PageLimit int `yaml:"page_limit"`
	// MaxPages stops pagination of one type
	MaxPages int `yaml:"max_pages"`
	// StrictQuads aborts a type on the first quad that cannot be serialized
	StrictQuads bool `yaml:"strict_quads"`
	// Streaming decodes documents one at a time instead of as one array
	Streaming bool `yaml:"streaming"`
	// SafeMode makes the JSON-LD processor fail on values it would drop
	SafeMode bool `yaml:"safe_mode"`
	// QueryDepth limits nested object selections
	QueryDepth int `yaml:"query_depth"`
	// PropertyBlacklist lists properties never queried
	PropertyBlacklist []string `yaml:"property_blacklist"`
}

// MetricsConfig configures metric publication
type MetricsConfig struct {
	// PushgatewayURL enables pushing run metrics when set
	PushgatewayURL string `yaml:"pushgateway_url"`
	// Job is the Pushgateway job name
	Job string `yaml:"job"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			URL:        "http://localhost:8000",
			GraphQLURL: "http://localhost:8000/graphql",
			Timeout:    30 * time.Second,
		},
		IRI: IRIConfig{
			Vocab:      vocabulary.DefaultVocabIRI,
			EntityBase: vocabulary.DefaultEntityBase,
		},
		Export: ExportConfig{
			OutputDir:         "./out",
			PageLimit:         -1,
			MaxPages:          1000,
			StrictQuads:       false,
			Streaming:         true,
			SafeMode:          false,
			QueryDepth:        3,
			PropertyBlacklist: []string{"externalId"},
		},
		Metrics: MetricsConfig{
			Job: "gqlrdf",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if err := validateURL("api.url", c.API.URL); err != nil {
		return err
	}
	if err := validateURL("api.graphql_url", c.API.GraphQLURL); err != nil {
		return err
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if err := rdf.ValidateIRI(c.IRI.Vocab); err != nil {
		return fmt.Errorf("iri.vocab: %w", err)
	}
	if err := rdf.ValidateIRI(c.IRI.EntityBase); err != nil {
		return fmt.Errorf("iri.entity_base: %w", err)
	}
	if c.Export.OutputDir == "" {
		return fmt.Errorf("export.output_dir is required")
	}
	if c.Export.MaxPages <= 0 {
		return fmt.Errorf("export.max_pages must be positive")
	}
	if c.Export.QueryDepth <= 0 {
		return fmt.Errorf("export.query_depth must be positive")
	}
	if c.Metrics.PushgatewayURL != "" {
		if err := validateURL("metrics.pushgateway_url", c.Metrics.PushgatewayURL); err != nil {
			return err
		}
		if c.Metrics.Job == "" {
			return fmt.Errorf("metrics.job is required when pushing metrics")
		}
	}
	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: unsupported scheme %q", field, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: missing host", field)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
