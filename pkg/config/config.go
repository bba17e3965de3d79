// Package config provides hierarchical configuration management.
// Priority: defaults < system < user < project < env < flags
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all caseflow configuration.
type Config struct {
	Version int `yaml:"version"`

	Analysis  AnalysisConfig  `yaml:"analysis"`
	Session   SessionConfig   `yaml:"session"`
	Export    ExportConfig    `yaml:"export"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// AnalysisConfig controls vocabulary selection.
type AnalysisConfig struct {
	Domain   string `yaml:"domain"`    // built-in vocabulary name
	VocabDir string `yaml:"vocab_dir"` // directory of custom vocabulary YAML files
}

// SessionConfig controls result persistence.
type SessionConfig struct {
	Backend      string        `yaml:"backend"` // file | redis
	FilePath     string        `yaml:"file_path"`
	RedisAddress string        `yaml:"redis_address"`
	TTL          time.Duration `yaml:"ttl"` // 0 = keep forever
}

// ExportConfig controls artifact output.
type ExportConfig struct {
	Dir        string `yaml:"dir"`
	Parquet    bool   `yaml:"parquet"`
	DuckDBPath string `yaml:"duckdb_path"`
	S3Bucket   string `yaml:"s3_bucket"`
	S3Region   string `yaml:"s3_region"`
	S3Prefix   string `yaml:"s3_prefix"`
}

// TelemetryConfig controls optional OTLP tracing.
type TelemetryConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Endpoint      string  `yaml:"endpoint"`
	SamplingRatio float64 `yaml:"sampling_ratio"`
}

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	caseflowDir := filepath.Join(homeDir, ".caseflow")

	return &Config{
		Version: 1,
		Analysis: AnalysisConfig{
			Domain:   "banking",
			VocabDir: filepath.Join(caseflowDir, "vocabs"),
		},
		Session: SessionConfig{
			Backend:      "file",
			FilePath:     filepath.Join(caseflowDir, "sessions.json"),
			RedisAddress: "localhost:6379",
			TTL:          30 * 24 * time.Hour,
		},
		Export: ExportConfig{
			Dir: "caseflow-out",
		},
		Telemetry: TelemetryConfig{
			Enabled:       false,
			Endpoint:      "localhost:4317",
			SamplingRatio: 1.0,
		},
	}
}

// Manager handles configuration loading and merging.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	paths  []string // paths that were actually loaded
}

// NewManager creates a manager preloaded with defaults.
func NewManager() *Manager {
	return &Manager{config: Default()}
}

// Load loads configuration from all sources in priority order.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config = Default()
	m.paths = nil

	for _, path := range m.configPaths() {
		if err := m.loadFile(path); err != nil {
			if !os.IsNotExist(err) {
				return err
			}
			continue
		}
		m.paths = append(m.paths, path)
	}

	m.loadEnv()
	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Paths returns the config files that were loaded, in merge order.
func (m *Manager) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.paths...)
}

// configPaths returns config file paths in priority order.
func (m *Manager) configPaths() []string {
	var paths []string

	if runtime.GOOS != "windows" {
		paths = append(paths, "/etc/caseflow/config.yaml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".caseflow", "config.yaml"))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".caseflow.yaml"))
	}
	return paths
}

// loadFile loads a single config file and merges it.
func (m *Manager) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var partial Config
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	m.merge(&partial)
	return nil
}

// merge merges non-zero values from src into config.
func (m *Manager) merge(src *Config) {
	if src.Analysis.Domain != "" {
		m.config.Analysis.Domain = src.Analysis.Domain
	}
	if src.Analysis.VocabDir != "" {
		m.config.Analysis.VocabDir = src.Analysis.VocabDir
	}

	if src.Session.Backend != "" {
		m.config.Session.Backend = src.Session.Backend
	}
	if src.Session.FilePath != "" {
		m.config.Session.FilePath = src.Session.FilePath
	}
	if src.Session.RedisAddress != "" {
		m.config.Session.RedisAddress = src.Session.RedisAddress
	}
	if src.Session.TTL != 0 {
		m.config.Session.TTL = src.Session.TTL
	}

	if src.Export.Dir != "" {
		m.config.Export.Dir = src.Export.Dir
	}
	if src.Export.Parquet {
		m.config.Export.Parquet = true
	}
	if src.Export.DuckDBPath != "" {
		m.config.Export.DuckDBPath = src.Export.DuckDBPath
	}
	if src.Export.S3Bucket != "" {
		m.config.Export.S3Bucket = src.Export.S3Bucket
	}
	if src.Export.S3Region != "" {
		m.config.Export.S3Region = src.Export.S3Region
	}
	if src.Export.S3Prefix != "" {
		m.config.Export.S3Prefix = src.Export.S3Prefix
	}

	if src.Telemetry.Enabled {
		m.config.Telemetry.Enabled = true
	}
	if src.Telemetry.Endpoint != "" {
		m.config.Telemetry.Endpoint = src.Telemetry.Endpoint
	}
	if src.Telemetry.SamplingRatio != 0 {
		m.config.Telemetry.SamplingRatio = src.Telemetry.SamplingRatio
	}
}

// loadEnv loads configuration from environment variables.
func (m *Manager) loadEnv() {
	if v := os.Getenv("CASEFLOW_DOMAIN"); v != "" {
		m.config.Analysis.Domain = v
	}
	if v := os.Getenv("CASEFLOW_VOCAB_DIR"); v != "" {
		m.config.Analysis.VocabDir = v
	}
	if v := os.Getenv("CASEFLOW_SESSION_BACKEND"); v != "" {
		m.config.Session.Backend = v
	}
	if v := os.Getenv("CASEFLOW_REDIS_ADDRESS"); v != "" {
		m.config.Session.RedisAddress = v
	}
	if v := os.Getenv("CASEFLOW_EXPORT_DIR"); v != "" {
		m.config.Export.Dir = v
	}
	if v := os.Getenv("CASEFLOW_OTLP_ENDPOINT"); v != "" {
		m.config.Telemetry.Enabled = true
		m.config.Telemetry.Endpoint = v
	}
}

// Save writes the current configuration to the user config path.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	path := filepath.Join(home, ".caseflow", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
