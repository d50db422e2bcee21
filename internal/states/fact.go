// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

// Package states persists resource state documents as generational
// envelopes in a key-value store. The generation tag names the on-disk
// schema of the envelope itself; records written by older code are
// migrated forward on read, never back.
package states

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// GenerationMarkerKey is the reserved envelope key holding the
	// generation tag. Its absence identifies a legacy record.
	GenerationMarkerKey = "__state_dict_generation"

	// CurrentGeneration is the generation this code reads and writes.
	CurrentGeneration = "Albatross"
)

// ConfigHashNeverMatches is the config_hash written when upgrading a
// legacy record. Legacy records carry no hash, so freshness checks
// against them must always fail; no real digest is ever empty.
const ConfigHashNeverMatches = ""

// UnknownGenerationError is a persisted record written by code newer
// than this. There is no downgrade path, so the record cannot be used.
type UnknownGenerationError struct {
	Generation string
}

func (e *UnknownGenerationError) Error() string {
	return fmt.Sprintf("persisted state has unknown generation %q (this client reads up to %q)", e.Generation, CurrentGeneration)
}

// Envelope is the current-generation persisted record.
type Envelope struct {
	State      map[string]any `json:"state"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
	ConfigHash string         `json:"config_hash"`
	Generation string         `json:"__state_dict_generation"`
}

// Upgrade on a current-generation record is the identity.
func (e *Envelope) Upgrade() *Envelope {
	return e
}

// Fact is one decoded persisted record at whatever generation it was
// written. Upgrade walks the forward-only migration chain to the current
// generation.
type Fact interface {
	Upgrade() *Envelope
}

// LegacyFact is a pre-generational record: a bare {state: ...} object
// with no marker, no timestamps and no config hash.
type LegacyFact struct {
	State map[string]any `json:"state"`
}

// Upgrade converts a legacy record to the current generation. The config
// hash is set to the never-matches sentinel: legacy data recorded nothing
// about the configuration that produced it, so it must always look stale.
func (f *LegacyFact) Upgrade() *Envelope {
	now := timestamp()
	return &Envelope{
		State:      f.State,
		CreatedAt:  now,
		UpdatedAt:  now,
		ConfigHash: ConfigHashNeverMatches,
		Generation: CurrentGeneration,
	}
}

// Decode parses a raw persisted record at whatever generation it carries.
func Decode(raw []byte) (Fact, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("persisted state is not a JSON object: %w", err)
	}

	marker, ok := probe[GenerationMarkerKey]
	if !ok {
		var legacy LegacyFact
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, fmt.Errorf("invalid legacy state record: %w", err)
		}
		return &legacy, nil
	}

	var generation string
	if err := json.Unmarshal(marker, &generation); err != nil {
		return nil, fmt.Errorf("invalid generation marker: %w", err)
	}
	if generation != CurrentGeneration {
		return nil, &UnknownGenerationError{Generation: generation}
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("invalid state record: %w", err)
	}
	return &envelope, nil
}

// ConfigHash returns the hash of a desired-configuration document, used
// for the freshness check between a persisted state and the configuration
// that produced it. encoding/json writes map keys in sorted order, so the
// digest is stable across key orderings.
func ConfigHash(config map[string]any) (string, error) {
	canonical, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("configuration is not hashable: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
