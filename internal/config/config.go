// Package config loads run settings from defaults, .env files, the
// environment and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultFile                  = "birdmap.yaml"
	DefaultOutput                = "bird_database_mapping.json"
	DefaultDatabase              = "BIRD_DB"
	DefaultSchema                = "PUBLIC"
	DefaultMaxDatabasesPerDomain = 3
)

// Environment variables read by Load
const (
	EnvDataDir     = "BIRDMAP_DATA_DIR"
	EnvRecursive   = "BIRDMAP_RECURSIVE"
	EnvDatabase    = "SNOWFLAKE_DATABASE"
	EnvSchema      = "SNOWFLAKE_SCHEMA"
	EnvTablePrefix = "BIRDMAP_TABLE_PREFIX"
	EnvStage       = "BIRDMAP_STAGE"
)

// Warehouse holds the target warehouse settings
type Warehouse struct {
	Database    string `yaml:"database"`
	Schema      string `yaml:"schema"`
	TablePrefix string `yaml:"table_prefix"`
	Stage       string `yaml:"stage"`
}

// Config holds the settings of one run
type Config struct {
	DataDir               string    `yaml:"data_dir"`
	Recursive             bool      `yaml:"recursive"`
	Output                string    `yaml:"output"`
	SchemaScript          string    `yaml:"schema_script"`
	DocsDir               string    `yaml:"docs_dir"`
	MaxDatabasesPerDomain int       `yaml:"max_databases_per_domain"`
	Warehouse             Warehouse `yaml:"warehouse"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Output:                DefaultOutput,
		MaxDatabasesPerDomain: DefaultMaxDatabasesPerDomain,
		Warehouse: Warehouse{
			Database: DefaultDatabase,
			Schema:   DefaultSchema,
		},
	}
}

// LoadEnvFiles loads .env style files into the process environment without
// overriding variables that are already set. It reports whether any file was
// found; missing files are not an error.
func LoadEnvFiles(files ...string) (bool, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	loaded := false
	for _, f := range files {
		err := godotenv.Load(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return loaded, fmt.Errorf("failed to load %s: %w", f, err)
		}
		loaded = true
	}
	return loaded, nil
}

// Load builds a configuration from defaults, the environment and a YAML
// file. File values override the environment. An empty path reads
// DefaultFile when it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvDataDir); ok {
		c.DataDir = v
	}
	if v, ok := os.LookupEnv(EnvRecursive); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRecursive, err)
		}
		c.Recursive = b
	}
	if v, ok := os.LookupEnv(EnvDatabase); ok && v != "" {
		c.Warehouse.Database = v
	}
	if v, ok := os.LookupEnv(EnvSchema); ok && v != "" {
		c.Warehouse.Schema = v
	}
	if v, ok := os.LookupEnv(EnvTablePrefix); ok {
		c.Warehouse.TablePrefix = v
	}
	if v, ok := os.LookupEnv(EnvStage); ok {
		c.Warehouse.Stage = v
	}
	return nil
}

// Validate checks the configuration for values no run can use
func (c *Config) Validate() error {
	if c.MaxDatabasesPerDomain < 0 {
		return fmt.Errorf("max_databases_per_domain must not be negative, got %d", c.MaxDatabasesPerDomain)
	}
	if c.Warehouse.Database == "" {
		return errors.New("warehouse database must not be empty")
	}
	if c.Warehouse.Schema == "" {
		return errors.New("warehouse schema must not be empty")
	}
	return nil
}
