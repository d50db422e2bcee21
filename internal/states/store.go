// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package states

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/terradrive/terradrive/internal/params"
)

// Store reads and writes generational envelopes in a parameter store.
type Store struct {
	client params.Client
	logger hclog.Logger
}

// NewStore wraps a parameter store client.
func NewStore(client params.Client, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{
		client: client,
		logger: logger.Named("states"),
	}
}

// Load returns the envelope under key, migrated to the current generation
// if it was written by older code. The second result reports existence.
func (s *Store) Load(ctx context.Context, key string) (*Envelope, bool, error) {
	raw, ok, err := s.client.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	fact, err := Decode([]byte(raw))
	if err != nil {
		return nil, false, fmt.Errorf("state record %q: %w", key, err)
	}
	if _, legacy := fact.(*LegacyFact); legacy {
		s.logger.Info("migrating legacy state record", "key", key, "generation", CurrentGeneration)
	}
	return fact.Upgrade(), true, nil
}

// Save writes state under key, creating the envelope or refreshing an
// existing one. created_at survives updates; updated_at does not.
func (s *Store) Save(ctx context.Context, key string, state map[string]any, configHash string) error {
	now := timestamp()
	envelope := &Envelope{
		State:      state,
		CreatedAt:  now,
		UpdatedAt:  now,
		ConfigHash: configHash,
		Generation: CurrentGeneration,
	}

	if existing, ok, err := s.Load(ctx, key); err != nil {
		return err
	} else if ok {
		envelope.CreatedAt = existing.CreatedAt
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to encode state record %q: %w", key, err)
	}
	return s.client.Set(ctx, key, string(raw))
}

// Delete removes the envelope under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Delete(ctx, key)
}

// privateKey names the record holding the provider's opaque private
// payload, stored beside the envelope.
func privateKey(key string) string {
	return key + ".private"
}

// SavePrivate stores the provider's opaque private payload for key.
func (s *Store) SavePrivate(ctx context.Context, key string, private []byte) error {
	return s.client.Set(ctx, privateKey(key), base64.StdEncoding.EncodeToString(private))
}

// LoadPrivate returns the private payload stored for key.
func (s *Store) LoadPrivate(ctx context.Context, key string) ([]byte, bool, error) {
	encoded, ok, err := s.client.Get(ctx, privateKey(key))
	if err != nil || !ok {
		return nil, false, err
	}
	private, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false, fmt.Errorf("private payload for %q is not valid base64: %w", key, err)
	}
	return private, true, nil
}

// DeletePrivate removes the private payload stored for key.
func (s *Store) DeletePrivate(ctx context.Context, key string) error {
	return s.client.Delete(ctx, privateKey(key))
}

// SafeState returns the persisted state under key only when it is fresh:
// the stored config hash must match the hash of the caller's current
// desired configuration. A missing record and a stale record both report
// false; a stale state must never be handed to a caller whose
// configuration has moved on.
func (s *Store) SafeState(ctx context.Context, key string, desired map[string]any) (map[string]any, bool, error) {
	envelope, ok, err := s.Load(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	hash, err := ConfigHash(desired)
	if err != nil {
		return nil, false, err
	}
	if envelope.ConfigHash != hash {
		s.logger.Debug("persisted state is stale", "key", key)
		return nil, false, nil
	}
	return envelope.State, true, nil
}
