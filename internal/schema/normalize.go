// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package schema

import "fmt"

// TypeMismatchError reports a value whose container shape does not match
// what the schema declares for its position.
type TypeMismatchError struct {
	Name string // attribute or block name, empty at the root
	Want string // expected container shape
	Got  any    // offending value
}

func (e *TypeMismatchError) Error() string {
	where := "value"
	if e.Name != "" {
		where = fmt.Sprintf("value for %q", e.Name)
	}
	return fmt.Sprintf("%s should be %s but got %T", where, e.Want, e.Got)
}

// Fill returns a copy of v in which every attribute and nested block the
// schema declares but the input omits is present with a null value.
// Providers require a fully-shaped document: a missing key and a null key
// are different things on the wire, and only the latter is accepted.
//
// Single and group blocks recurse into the one child object, list and set
// blocks into each element, map blocks into each value. A present value
// whose container shape does not match the nesting mode is a
// *TypeMismatchError.
func Fill(v map[string]any, b *Block) (map[string]any, error) {
	filled := make(map[string]any, len(b.Attributes)+len(b.BlockTypes)+len(v))

	for name := range b.Attributes {
		filled[name] = nil
	}
	// Input values win over the null defaults, and keys the schema does
	// not declare pass through untouched.
	for name, value := range v {
		filled[name] = value
	}

	for name, nested := range b.BlockTypes {
		value, ok := v[name]
		if !ok || value == nil {
			filled[name] = nil
			continue
		}

		switch nested.Nesting {
		case NestingSingle, NestingGroup:
			child, ok := value.(map[string]any)
			if !ok {
				return nil, &TypeMismatchError{Name: name, Want: "an object", Got: value}
			}
			filledChild, err := Fill(child, nested.Block)
			if err != nil {
				return nil, err
			}
			filled[name] = filledChild

		case NestingList, NestingSet:
			items, ok := value.([]any)
			if !ok {
				return nil, &TypeMismatchError{Name: name, Want: "an array", Got: value}
			}
			filledItems := make([]any, len(items))
			for i, item := range items {
				child, ok := item.(map[string]any)
				if !ok {
					return nil, &TypeMismatchError{Name: name, Want: "an array of objects", Got: item}
				}
				filledChild, err := Fill(child, nested.Block)
				if err != nil {
					return nil, err
				}
				filledItems[i] = filledChild
			}
			filled[name] = filledItems

		case NestingMap:
			entries, ok := value.(map[string]any)
			if !ok {
				return nil, &TypeMismatchError{Name: name, Want: "an object", Got: value}
			}
			filledEntries := make(map[string]any, len(entries))
			for key, entry := range entries {
				child, ok := entry.(map[string]any)
				if !ok {
					return nil, &TypeMismatchError{Name: name, Want: "an object of objects", Got: entry}
				}
				filledChild, err := Fill(child, nested.Block)
				if err != nil {
					return nil, err
				}
				filledEntries[key] = filledChild
			}
			filled[name] = filledEntries

		default:
			return nil, fmt.Errorf("nested block %q has invalid nesting mode", name)
		}
	}

	return filled, nil
}

// Prune is the inverse-ish of Fill: it strips from a provider-reported
// state everything a caller could never have supplied, so the result is
// comparable against desired configuration. Computed attributes are
// dropped, null values are dropped, keys the schema does not declare are
// dropped, and nested blocks recurse with the same container-shape rules
// as Fill. Set nesting is recursed as an ordered sequence: the wire format
// never carries true sets, and a non-sequence value here is corruption and
// fails rather than degrading.
func Prune(v map[string]any, b *Block) (map[string]any, error) {
	pruned := make(map[string]any)

	for name, attr := range b.Attributes {
		if attr.Computed {
			continue
		}
		value, ok := v[name]
		if !ok || value == nil {
			continue
		}
		pruned[name] = value
	}

	for name, nested := range b.BlockTypes {
		value, ok := v[name]
		if !ok || value == nil {
			continue
		}

		switch nested.Nesting {
		case NestingSingle, NestingGroup:
			child, ok := value.(map[string]any)
			if !ok {
				return nil, &TypeMismatchError{Name: name, Want: "an object", Got: value}
			}
			prunedChild, err := Prune(child, nested.Block)
			if err != nil {
				return nil, err
			}
			pruned[name] = prunedChild

		case NestingList, NestingSet:
			items, ok := value.([]any)
			if !ok {
				return nil, &TypeMismatchError{Name: name, Want: "an array", Got: value}
			}
			prunedItems := make([]any, len(items))
			for i, item := range items {
				child, ok := item.(map[string]any)
				if !ok {
					return nil, &TypeMismatchError{Name: name, Want: "an array of objects", Got: item}
				}
				prunedChild, err := Prune(child, nested.Block)
				if err != nil {
					return nil, err
				}
				prunedItems[i] = prunedChild
			}
			pruned[name] = prunedItems

		case NestingMap:
			entries, ok := value.(map[string]any)
			if !ok {
				return nil, &TypeMismatchError{Name: name, Want: "an object", Got: value}
			}
			prunedEntries := make(map[string]any, len(entries))
			for key, entry := range entries {
				child, ok := entry.(map[string]any)
				if !ok {
					return nil, &TypeMismatchError{Name: name, Want: "an object of objects", Got: entry}
				}
				prunedChild, err := Prune(child, nested.Block)
				if err != nil {
					return nil, err
				}
				prunedEntries[key] = prunedChild
			}
			pruned[name] = prunedEntries

		default:
			return nil, fmt.Errorf("nested block %q has invalid nesting mode", name)
		}
	}

	return pruned, nil
}
