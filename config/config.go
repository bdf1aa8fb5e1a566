package config

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"gopkg.in/yaml.v3"

	"github.com/AgnopraxLab/modvar/mutation"
)

// Config represents the main configuration structure
type Config struct {
	Mutation mutation.MutationConfig `yaml:"mutation"`
	Output   OutputConfig            `yaml:"output"`
	Log      LogConfig               `yaml:"log"`
	Key      KeyConfig               `yaml:"key"`
	Plan     mutation.Plan           `yaml:"plan"`
}

// OutputConfig holds output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
	File      string `yaml:"file"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Directory string `yaml:"directory"` // empty disables the run log file
	Verbosity int    `yaml:"verbosity"` // 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace
}

// KeyConfig holds the packet signing key
type KeyConfig struct {
	PrivateKey string `yaml:"private_key"` // hex, empty means a fresh key per run
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Mutation: *mutation.DefaultMutationConfig(),
		Output: OutputConfig{
			Directory: ".",
			File:      "packets.txt",
		},
		Log: LogConfig{
			Verbosity: 3,
		},
	}
}

// LoadConfig loads configuration from the specified YAML file. Keys missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return config, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Mutation.Validate(); err != nil {
		return fmt.Errorf("mutation: %w", err)
	}
	if c.Log.Verbosity < 0 || c.Log.Verbosity > 5 {
		return fmt.Errorf("log: verbosity must be within 0..5, got %d", c.Log.Verbosity)
	}
	if c.Output.File == "" {
		return fmt.Errorf("output: file must not be empty")
	}
	if c.Key.PrivateKey != "" {
		if _, err := c.PrivateKey(); err != nil {
			return fmt.Errorf("key: %w", err)
		}
	}
	return nil
}

// GetOutputPath returns the full path of the packet file
func (c *Config) GetOutputPath() string {
	return filepath.Join(c.Output.Directory, c.Output.File)
}

// PrivateKey returns the configured signing key, or a newly generated one.
func (c *Config) PrivateKey() (*ecdsa.PrivateKey, error) {
	if c.Key.PrivateKey == "" {
		return crypto.GenerateKey()
	}
	return crypto.HexToECDSA(strings.TrimPrefix(c.Key.PrivateKey, "0x"))
}

// PrintConfig prints the current configuration (for debugging)
func (c *Config) PrintConfig() {
	fmt.Println("=== modvar Configuration ===")
	fmt.Printf("Seed: %d\n", c.Mutation.Seed)
	fmt.Printf("Corpus Directory: %q\n", c.Mutation.CorpusDir)
	fmt.Printf("Mutations Per Message: %d\n", c.Mutation.MutationsPerMessage)
	fmt.Printf("Planned Mutations: %d\n", len(c.Plan.Mutations))
	fmt.Printf("Output: %s\n", c.GetOutputPath())
	fmt.Printf("Log Directory: %q\n", c.Log.Directory)
	fmt.Printf("Verbosity: %d\n", c.Log.Verbosity)
	fmt.Println("============================")
}
