// Copyright 2024 Fudong and Hosen
// This file is part of the D2PFuzz library.
//
// The D2PFuzz library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The D2PFuzz library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the D2PFuzz library. If not, see <http://www.gnu.org/licenses/>.

// Package generator builds batches of mutated, signed packets.
package generator

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/rand"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"

	"github.com/AgnopraxLab/modvar/fuzzing"
	"github.com/AgnopraxLab/modvar/message"
	"github.com/AgnopraxLab/modvar/mutation"
)

// Options configures a Generator.
type Options struct {
	Type   string // "ping" or "pong"
	Count  int
	Key    *ecdsa.PrivateKey
	Config *mutation.MutationConfig // nil means mutation.DefaultMutationConfig
	Plan   *mutation.Plan           // applied to every packet before random mutations
	// Expiration is written into every body; zero means 20 seconds from now.
	Expiration uint64
	Logger     log.Logger
}

// Result holds one generated batch.
type Result struct {
	Messages    []message.Packet
	Packets     [][]byte
	Hashes      [][]byte
	Mutations   [][]*mutation.MutationResult // per packet
	Fingerprint []byte
	Stats       map[string]interface{}
}

// Generator produces packets whose original values come from a seeded
// source and whose effective values are mutated by a plan and a Mutator.
type Generator struct {
	opts    Options
	mutator *mutation.Mutator
	rng     *rand.Rand
	logger  log.Logger
}

// New validates opts and creates a generator.
func New(opts Options) (*Generator, error) {
	if opts.Count <= 0 {
		return nil, fmt.Errorf("packet count must be positive, got %d", opts.Count)
	}
	if opts.Key == nil {
		return nil, errors.New("missing signing key")
	}
	if _, err := message.New(opts.Type); err != nil {
		return nil, err
	}
	if opts.Config == nil {
		opts.Config = mutation.DefaultMutationConfig()
	}
	if opts.Logger == nil {
		opts.Logger = log.Root()
	}
	mutator, err := mutation.NewMutator(opts.Config, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &Generator{
		opts:    opts,
		mutator: mutator,
		rng:     fuzzing.NewRand(fuzzing.SubSeed(opts.Config.Seed, "generator")),
		logger:  opts.Logger,
	}, nil
}

// Mutator returns the mutator flagging fields of generated packets.
func (g *Generator) Mutator() *mutation.Mutator {
	return g.mutator
}

// Next builds one packet: fresh originals, the plan's transforms and the
// random mutations of the configured mutations_per_message. A field picked
// for a random mutation loses its planned transforms on the first read.
func (g *Generator) Next() (message.Packet, []*mutation.MutationResult, error) {
	p, err := g.base()
	if err != nil {
		return nil, nil, err
	}
	if err := g.opts.Plan.Apply(p, g.mutator.Randomizer().Corpus()); err != nil {
		return nil, nil, fmt.Errorf("apply plan: %w", err)
	}
	results, err := g.mutator.MutateMessage(p)
	if err != nil {
		return nil, nil, err
	}
	return p, results, nil
}

// Generate builds, mutates and signs Count packets.
func (g *Generator) Generate() (*Result, error) {
	res := &Result{
		Messages:  make([]message.Packet, 0, g.opts.Count),
		Packets:   make([][]byte, 0, g.opts.Count),
		Hashes:    make([][]byte, 0, g.opts.Count),
		Mutations: make([][]*mutation.MutationResult, 0, g.opts.Count),
	}
	for i := 0; i < g.opts.Count; i++ {
		p, mutations, err := g.Next()
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
		packet, hash, err := message.Encode(g.opts.Key, p)
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
		g.logger.Debug("Generated packet", "index", i, "type", p.Name(), "size", len(packet), "hash", hexutil.Encode(hash))

		res.Messages = append(res.Messages, p)
		res.Packets = append(res.Packets, packet)
		res.Hashes = append(res.Hashes, hash)
		res.Mutations = append(res.Mutations, mutations)
	}
	res.Fingerprint = message.Fingerprint(res.Packets)
	res.Stats = g.mutator.GetStats()
	res.Stats["packets"] = len(res.Packets)
	res.Stats["type"] = g.opts.Type
	return res, nil
}

// Generate is a shorthand for New followed by Generate.
func Generate(opts Options) (*Result, error) {
	g, err := New(opts)
	if err != nil {
		return nil, err
	}
	return g.Generate()
}
