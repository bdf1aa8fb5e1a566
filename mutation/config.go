package mutation

import (
	"fmt"

	"github.com/AgnopraxLab/modvar/mutation/corpus"
)

// MutationConfig holds configuration for mutation operations
type MutationConfig struct {
	Seed      int64  `yaml:"seed"`       // Random seed, 0 means use current time
	CorpusDir string `yaml:"corpus_dir"` // Directory holding <name>.vec files, empty means embedded

	// Parameter bounds for random transforms
	MaxModificationValue int `yaml:"max_modification_value"` // Upper bound of random numeric operands
	MaxFileEntries       int `yaml:"max_file_entries"`       // Upper bound of random corpus indices
	MaxConfigParameter   int `yaml:"max_config_parameter"`   // Upper bound of random positions and counts
	ModifiedArrayLength  int `yaml:"modified_array_length"`  // Upper bound of random byte array lengths
	MaxStringLength      int `yaml:"max_string_length"`      // Upper bound of random string lengths

	// Mutator settings
	MutationsPerMessage int  `yaml:"mutations_per_message"` // Fields randomized per Mutator.MutateN call
	LogMutations        bool `yaml:"log_mutations"`         // Log every chosen field
}

// DefaultMutationConfig returns a default mutation configuration
func DefaultMutationConfig() *MutationConfig {
	return &MutationConfig{
		Seed:      0, // Use current time
		CorpusDir: "",

		MaxModificationValue: 32000,
		MaxFileEntries:       200,
		MaxConfigParameter:   200,
		ModifiedArrayLength:  50,
		MaxStringLength:      50,

		MutationsPerMessage: 1,
		LogMutations:        false,
	}
}

// Validate validates the mutation configuration
func (c *MutationConfig) Validate() error {
	if c.MaxModificationValue <= 0 {
		return fmt.Errorf("max_modification_value must be positive, got %d", c.MaxModificationValue)
	}
	if c.MaxFileEntries <= 0 {
		return fmt.Errorf("max_file_entries must be positive, got %d", c.MaxFileEntries)
	}
	if c.MaxConfigParameter <= 0 {
		return fmt.Errorf("max_config_parameter must be positive, got %d", c.MaxConfigParameter)
	}
	if c.ModifiedArrayLength <= 0 {
		return fmt.Errorf("modified_array_length must be positive, got %d", c.ModifiedArrayLength)
	}
	if c.MaxStringLength <= 0 {
		return fmt.Errorf("max_string_length must be positive, got %d", c.MaxStringLength)
	}
	if c.MutationsPerMessage < 0 {
		return fmt.Errorf("mutations_per_message must not be negative, got %d", c.MutationsPerMessage)
	}
	return nil
}

// Clone creates a copy of the mutation configuration
func (c *MutationConfig) Clone() *MutationConfig {
	clone := *c
	return &clone
}

// Corpus returns the corpus set selected by CorpusDir.
func (c *MutationConfig) Corpus() *corpus.Set {
	return corpus.Dir(c.CorpusDir)
}
