package mutation

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/AgnopraxLab/modvar/fuzzing"
)

// MutationResult records one field flagged for randomization
type MutationResult struct {
	Field     string
	Type      string
	Before    string // description of the field before the random transform is drawn
	Timestamp time.Time
}

// Mutator picks fields of a message and flags them for randomization. The
// random transform itself is drawn from the mutator's Randomizer when the
// field is next read.
type Mutator struct {
	config     *MutationConfig
	randomizer *Randomizer
	logger     log.Logger
	rng        *rand.Rand

	mutations int
	perField  map[string]int
}

// NewMutator creates a new mutation manager. A nil logger logs to the root
// logger.
func NewMutator(config *MutationConfig, logger log.Logger) (*Mutator, error) {
	if config == nil {
		config = DefaultMutationConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mutation config: %w", err)
	}
	if logger == nil {
		logger = log.Root()
	}
	return &Mutator{
		config:     config.Clone(),
		randomizer: NewRandomizer(config, config.Corpus()),
		logger:     logger,
		rng:        fuzzing.NewRand(fuzzing.SubSeed(config.Seed, "mutator")),
		perField:   make(map[string]int),
	}, nil
}

// Randomizer returns the randomizer bound to mutated fields.
func (m *Mutator) Randomizer() *Randomizer {
	return m.randomizer
}

// Mutate picks one field of h and flags it so that its next read draws a
// random transform. The draw replaces the field's whole chain, so transforms
// attached earlier, from a Plan for instance, no longer apply to that field.
func (m *Mutator) Mutate(h Holder) (*MutationResult, error) {
	f, err := RandomField(h, m.rng)
	if err != nil {
		return nil, err
	}

	result := &MutationResult{
		Field:     f.Name(),
		Type:      f.Type(),
		Before:    f.String(),
		Timestamp: time.Now(),
	}
	f.bind(m.randomizer)
	f.RandomizeOnNextRead()

	m.mutations++
	m.perField[f.Name()]++
	if m.config.LogMutations {
		m.logger.Info("Flagged field for mutation", "field", f.Name(), "type", f.Type(), "before", result.Before)
	} else {
		m.logger.Trace("Flagged field for mutation", "field", f.Name(), "type", f.Type())
	}
	return result, nil
}

// MutateN flags count fields of h, possibly the same field more than once.
func (m *Mutator) MutateN(h Holder, count int) ([]*MutationResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid mutation count: %d", count)
	}

	results := make([]*MutationResult, 0, count)
	for i := 0; i < count; i++ {
		result, err := m.Mutate(h)
		if err != nil {
			return results, fmt.Errorf("mutation %d/%d: %w", i+1, count, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// MutateMessage flags MutationsPerMessage fields of h. With the setting at
// zero it does nothing.
func (m *Mutator) MutateMessage(h Holder) ([]*MutationResult, error) {
	if m.config.MutationsPerMessage == 0 {
		return nil, nil
	}
	return m.MutateN(h, m.config.MutationsPerMessage)
}

// GetConfig returns the current mutation configuration
func (m *Mutator) GetConfig() *MutationConfig {
	return m.config
}

// GetStats returns mutation statistics
func (m *Mutator) GetStats() map[string]interface{} {
	fields := make(map[string]int, len(m.perField))
	for name, n := range m.perField {
		fields[name] = n
	}
	stats := make(map[string]interface{})
	stats["mutations"] = m.mutations
	stats["fields"] = fields
	stats["config"] = m.config
	return stats
}
