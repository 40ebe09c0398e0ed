package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted for a config file.
const EnvConfigPath = "LOADSHIFT_CONFIG"

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = "loadshift.yaml"

// GetConfigPath determines the configuration file path.
// Priority:
// 1. the path given on the command line (returned even if missing, so Load reports it)
// 2. LOADSHIFT_CONFIG environment variable
// 3. loadshift.yaml in the current working directory
// An empty result means "use defaults".
func GetConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if envPath := os.Getenv(EnvConfigPath); envPath != "" && fileExists(envPath) {
		return envPath
	}
	if cwd, err := os.Getwd(); err == nil {
		path := filepath.Join(cwd, DefaultConfigFile)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// Load reads the YAML file at path over the defaults and validates the result.
// An empty path yields the validated defaults.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
