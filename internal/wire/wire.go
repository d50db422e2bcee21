// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

// Package wire encodes and decodes the dynamic value trees exchanged with
// providers inside DynamicValue msgpack bodies. Values are plain Go trees:
// nil, bool, integers, floats, string, []any and map[string]any. The null
// document (a prior state that does not exist yet, a proposed state for a
// delete) is a plain nil.
package wire

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Marshal encodes a value tree to its msgpack wire form. Map keys are
// encoded in sorted order so that two encodings of the same tree are
// byte-identical, which the update short-circuit relies on.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding value to msgpack: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a msgpack wire body and normalizes the result: binary
// leaves become text, map keys become strings, and containers are walked
// recursively. Containers other than maps and ordered sequences are
// rejected; state trees in this protocol must never contain anything else.
func Unmarshal(b []byte) (any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	v, err := dec.DecodeInterface()
	if err != nil {
		return nil, fmt.Errorf("decoding msgpack value: %w", err)
	}
	return Normalize(v)
}

// Equal reports whether two wire encodings are byte-identical.
func Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}

// Normalize walks a freshly-decoded value tree and returns its canonical
// in-memory form. See Unmarshal.
func Normalize(v any) (any, error) {
	switch v := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil

	case []byte:
		return string(v), nil

	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			norm, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = norm
		}
		return out, nil

	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			norm, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[k] = norm
		}
		return out, nil

	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			key, err := normalizeKey(k)
			if err != nil {
				return nil, err
			}
			norm, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[key] = norm
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported value of type %T on the wire: only maps and ordered sequences may carry nested values", v)
	}
}

func normalizeKey(k any) (string, error) {
	switch k := k.(type) {
	case string:
		return k, nil
	case []byte:
		return string(k), nil
	default:
		return "", fmt.Errorf("unsupported map key of type %T on the wire", k)
	}
}
