// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

// Package params abstracts the key-value store that holds persisted
// resource state documents. The store is deliberately dumb: string keys,
// string values, presence tracking. Everything about the shape of the
// values lives in the states package.
package params

import "context"

// Client is one parameter storage backend.
type Client interface {
	// Get returns the value for key. The second result reports whether
	// the key exists; a missing key is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
