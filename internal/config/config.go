// Package config provides repository configuration management,
// including reading and writing the git-re configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// configFileName is stored inside the repository's .git directory so the
// configuration travels with the clone, not the checkout.
const configFileName = ".gitre_config"

// RepoConfig represents the per-repository configuration. All fields are
// optional; an absent file means defaults.
type RepoConfig struct {
	// Verbose makes every invocation behave as if -v was passed.
	Verbose *bool `json:"verbose,omitempty"`
	// LogFile enables rotating file logging at the given path.
	LogFile *string `json:"logFile,omitempty"`
}

func configPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", configFileName)
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(configPath(repoRoot))
	if err != nil {
		// Config doesn't exist - return default
		return &RepoConfig{}, nil
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// WriteRepoConfig writes the repository configuration
func WriteRepoConfig(repoRoot string, config *RepoConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(configPath(repoRoot), data, 0600)
}

// IsVerbose returns the configured default verbosity
func (c *RepoConfig) IsVerbose() bool {
	return c.Verbose != nil && *c.Verbose
}

// GetLogFile returns the configured log file path, or "" when file logging
// is disabled.
func (c *RepoConfig) GetLogFile() string {
	if c.LogFile == nil {
		return ""
	}
	return *c.LogFile
}
