// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package wire

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	tests := map[string]any{
		"null":   nil,
		"bool":   true,
		"string": "hello",
		"map": map[string]any{
			"name":    "instance-1",
			"enabled": true,
			"tags":    []any{"a", "b"},
			"nested": map[string]any{
				"port": int64(443),
			},
		},
		"list": []any{"one", "two"},
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			b, err := Marshal(in)
			if err != nil {
				t.Fatalf("Marshal: %s", err)
			}
			out, err := Unmarshal(b)
			if err != nil {
				t.Fatalf("Unmarshal: %s", err)
			}
			if diff := cmp.Diff(in, out); diff != "" {
				t.Errorf("round trip mismatch:\n%s", diff)
			}
		})
	}
}

func TestMarshalNullDocument(t *testing.T) {
	b, err := Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal: %s", err)
	}
	// msgpack nil is the single byte 0xc0
	if len(b) != 1 || b[0] != 0xc0 {
		t.Fatalf("expected msgpack nil, got % x", b)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	v := map[string]any{"b": int64(2), "a": int64(1), "c": int64(3)}
	first, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %s", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Marshal(v)
		if err != nil {
			t.Fatalf("Marshal: %s", err)
		}
		if !Equal(first, again) {
			t.Fatalf("encoding is not deterministic:\n% x\n% x", first, again)
		}
	}
}

func TestNormalizeBinaryToText(t *testing.T) {
	in := map[string]any{
		"blob": []byte("content"),
		"list": []any{[]byte("a"), "b"},
	}
	got, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize: %s", err)
	}
	want := map[string]any{
		"blob": "content",
		"list": []any{"a", "b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong normalized value:\n%s", diff)
	}
}

func TestNormalizeMapKeys(t *testing.T) {
	in := map[any]any{
		[]byte("bytes-key"): "v1",
		"string-key":        "v2",
	}
	got, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize: %s", err)
	}
	want := map[string]any{
		"bytes-key":  "v1",
		"string-key": "v2",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong normalized value:\n%s", diff)
	}
}

func TestNormalizeRejectsUnsupportedContainers(t *testing.T) {
	if _, err := Normalize(map[string]any{"set": map[bool]bool{true: true}}); err == nil {
		t.Fatal("expected error for unsupported container type")
	}
	if _, err := Normalize(map[any]any{int64(1): "x"}); err == nil {
		t.Fatal("expected error for non-text map key")
	}
}
