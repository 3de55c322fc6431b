package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// ProjectConfigFile is the config file looked up in the working directory
	ProjectConfigFile = "gqlrdf.yaml"
	// DefaultEnvFile is the dotenv file loaded before reading the environment
	DefaultEnvFile = ".env"
)

// Environment variables overriding configuration values.
const (
	EnvAPIURL     = "GQLRDF_API_URL"
	EnvGraphQLURL = "GQLRDF_GRAPHQL_URL"
	EnvVocabIRI   = "GQLRDF_VOCAB_IRI"
	EnvEntityBase = "GQLRDF_ENTITY_BASE"
	EnvPageLimit  = "GQLRDF_PAGE_LIMIT"
	EnvOutputDir  = "GQLRDF_OUTPUT_DIR"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	// EnvFile is the dotenv file to load; empty disables it
	EnvFile string

	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{EnvFile: DefaultEnvFile, logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. Config file (path, or gqlrdf.yaml in the working directory)
// 3. Dotenv file (never overrides variables already set)
// 4. Environment variables
//
// An explicit path must exist; the implicit project file is optional.
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	switch {
	case path != "":
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config file", slog.String("path", path))
		config = fileConfig
	default:
		if fileConfig, err := LoadFromFile(ProjectConfigFile); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", ProjectConfigFile))
			config = fileConfig
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		} else {
			l.logger.Debug("No project config found")
		}
	}

	if l.EnvFile != "" {
		if err := godotenv.Load(l.EnvFile); err == nil {
			l.logger.Debug("Loaded env file", slog.String("path", l.EnvFile))
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load env file", slog.String("path", l.EnvFile), slog.String("error", err.Error()))
		}
	}

	if err := ApplyEnv(config, os.Getenv); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyEnv overrides config values from the environment.
func ApplyEnv(c *Config, getenv func(string) string) error {
	if v := getenv(EnvAPIURL); v != "" {
		c.API.URL = v
	}
	if v := getenv(EnvGraphQLURL); v != "" {
		c.API.GraphQLURL = v
	}
	if v := getenv(EnvVocabIRI); v != "" {
		c.IRI.Vocab = v
	}
	if v := getenv(EnvEntityBase); v != "" {
		c.IRI.EntityBase = v
	}
	if v := getenv(EnvOutputDir); v != "" {
		c.Export.OutputDir = v
	}
	if v := getenv(EnvPageLimit); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageLimit, err)
		}
		c.Export.PageLimit = limit
	}
	return nil
}
