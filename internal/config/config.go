// Package config loads the wikichat API configuration from per-environment
// YAML files with ${VAR} environment expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the wikichat API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	LLM        LLMConfig        `yaml:"llm"`
	Collection CollectionConfig `yaml:"collection"`
	Subject    SubjectConfig    `yaml:"subject"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

// DatabaseConfig holds vector database connection settings.
// rueidis speaks to both Redis 8+ and Valkey with the search module.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// LLMConfig holds chat completion provider settings for the relevance
// filter and the answer summarizer.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`

	RelevanceMaxTokens   int     `yaml:"relevance_max_tokens"`
	RelevanceTemperature float32 `yaml:"relevance_temperature"`
	SummaryMaxTokens     int     `yaml:"summary_max_tokens"`
	SummaryTemperature   float32 `yaml:"summary_temperature"`

	MaxRetries  int `yaml:"max_retries"`
	BaseDelayMS int `yaml:"retry_base_delay_ms"`
	MaxDelayMS  int `yaml:"retry_max_delay_ms"`
}

// CollectionConfig holds settings for the single document collection.
type CollectionConfig struct {
	Name            string `yaml:"name"`
	HNSWM           int    `yaml:"hnsw_m"`
	HNSWEFConstruct int    `yaml:"hnsw_ef_construction"`
}

// SubjectConfig describes the topic the chat answers questions about.
type SubjectConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"` // short epithet used in LLM prompts
	BirthDate   string `yaml:"birth_date"`  // ISO date, used for age answers
}

// IngestConfig holds startup Wikipedia ingestion settings.
type IngestConfig struct {
	Enabled      bool   `yaml:"enabled"`
	WikipediaURL string `yaml:"wikipedia_url"`
	DocumentID   string `yaml:"document_id"`
	ChunkSize    int    `yaml:"chunk_size"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// LLM summarization sits on the search path, so the write window
		// must cover a full chat completion round-trip.
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if len(c.HTTP.CORSOrigins) == 0 {
		c.HTTP.CORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 1536
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-3.5-turbo"
	}
	if c.LLM.RelevanceMaxTokens <= 0 {
		c.LLM.RelevanceMaxTokens = 10
	}
	if c.LLM.RelevanceTemperature <= 0 {
		c.LLM.RelevanceTemperature = 0.1
	}
	if c.LLM.SummaryMaxTokens <= 0 {
		c.LLM.SummaryMaxTokens = 300
	}
	if c.LLM.SummaryTemperature <= 0 {
		c.LLM.SummaryTemperature = 0.3
	}
	if c.LLM.MaxRetries < 0 {
		c.LLM.MaxRetries = 0
	}
	if c.LLM.BaseDelayMS <= 0 {
		c.LLM.BaseDelayMS = 500
	}
	if c.LLM.MaxDelayMS <= 0 {
		c.LLM.MaxDelayMS = 10000
	}
	if c.Collection.Name == "" {
		c.Collection.Name = "wiki_documents"
	}
	if c.Collection.HNSWM <= 0 {
		c.Collection.HNSWM = 32
	}
	if c.Collection.HNSWEFConstruct <= 0 {
		c.Collection.HNSWEFConstruct = 400
	}
	if c.Subject.Name == "" {
		c.Subject.Name = "Sai Sai Kham Leng"
	}
	if c.Subject.Description == "" {
		c.Subject.Description = "a Myanmar singer, actor, and entertainer"
	}
	if c.Subject.BirthDate == "" {
		c.Subject.BirthDate = "1979-04-10"
	}
	if c.Ingest.WikipediaURL == "" {
		c.Ingest.WikipediaURL = "https://en.wikipedia.org/wiki/Sai_Sai_Kham_Leng"
	}
	if c.Ingest.DocumentID == "" {
		c.Ingest.DocumentID = "sai_sai_kham_leng_wiki"
	}
	if c.Ingest.ChunkSize <= 0 {
		c.Ingest.ChunkSize = 1000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if _, err := time.Parse("2006-01-02", c.Subject.BirthDate); err != nil {
		return fmt.Errorf("subject.birth_date must be an ISO date: %w", err)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
