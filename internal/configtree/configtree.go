// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

// Package configtree is the caller-facing declarative form of a resource
// configuration: a tree of named blocks that serializes into the plain
// nested document the lifecycle client consumes as desired state.
package configtree

import (
	"fmt"
	"sort"
)

// NestingMode describes how sibling blocks sharing a name combine in the
// serialized document.
type NestingMode string

const (
	// NestingSingle is one object under the block's name. The default.
	NestingSingle NestingMode = "single"
	// NestingList is an array of sibling objects ordered by their keys.
	NestingList NestingMode = "list"
	// NestingSet is an array of sibling objects in declaration order.
	NestingSet NestingMode = "set"
	// NestingDict is a map of sibling objects keyed by their keys.
	NestingDict NestingMode = "dict"
)

// Block is one level of desired configuration. Name is nil only at the
// tree root. Key is required for list and dict nesting, where it fixes
// the sibling's position or map key.
type Block struct {
	Name       *string
	Attributes map[string]any
	Children   []*Block
	Nesting    NestingMode
	Key        *string
}

func (b *Block) nesting() NestingMode {
	if b.Nesting == "" {
		return NestingSingle
	}
	return b.Nesting
}

// Serialize flattens the tree into a plain nested document: attributes
// become top-level keys, each group of same-named children becomes one
// key shaped by the group's nesting mode. Violated sibling invariants and
// child names colliding with attribute keys are errors.
func (b *Block) Serialize() (map[string]any, error) {
	result := make(map[string]any, len(b.Attributes)+len(b.Children))
	for key, value := range b.Attributes {
		result[key] = value
	}

	// Group same-named children, preserving declaration order.
	var names []string
	groups := make(map[string][]*Block)
	for _, child := range b.Children {
		if child.Name == nil {
			return nil, fmt.Errorf("non-root block has no name")
		}
		name := *child.Name
		if _, seen := groups[name]; !seen {
			names = append(names, name)
		}
		groups[name] = append(groups[name], child)
	}

	for _, name := range names {
		if _, taken := result[name]; taken {
			return nil, fmt.Errorf("child block %q collides with an attribute of the same name", name)
		}
		value, err := serializeGroup(name, groups[name])
		if err != nil {
			return nil, err
		}
		result[name] = value
	}

	return result, nil
}

func serializeGroup(name string, siblings []*Block) (any, error) {
	mode := siblings[0].nesting()
	for _, sibling := range siblings[1:] {
		if sibling.nesting() != mode {
			return nil, fmt.Errorf("sibling blocks named %q mix nesting modes %q and %q", name, mode, sibling.nesting())
		}
	}

	switch mode {
	case NestingSingle:
		if len(siblings) > 1 {
			return nil, fmt.Errorf("%d sibling blocks named %q with single nesting", len(siblings), name)
		}
		return siblings[0].Serialize()

	case NestingList:
		keyed, err := keyedSiblings(name, siblings)
		if err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(keyed))
		for key := range keyed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		values := make([]any, 0, len(keys))
		for _, key := range keys {
			value, err := keyed[key].Serialize()
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return values, nil

	case NestingDict:
		keyed, err := keyedSiblings(name, siblings)
		if err != nil {
			return nil, err
		}
		values := make(map[string]any, len(keyed))
		for key, sibling := range keyed {
			value, err := sibling.Serialize()
			if err != nil {
				return nil, err
			}
			values[key] = value
		}
		return values, nil

	case NestingSet:
		values := make([]any, 0, len(siblings))
		for _, sibling := range siblings {
			value, err := sibling.Serialize()
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return values, nil

	default:
		return nil, fmt.Errorf("block %q has unknown nesting mode %q", name, mode)
	}
}

func keyedSiblings(name string, siblings []*Block) (map[string]*Block, error) {
	keyed := make(map[string]*Block, len(siblings))
	for _, sibling := range siblings {
		if sibling.Key == nil {
			return nil, fmt.Errorf("block %q with %s nesting has no key", name, sibling.nesting())
		}
		if _, dup := keyed[*sibling.Key]; dup {
			return nil, fmt.Errorf("sibling blocks named %q share key %q", name, *sibling.Key)
		}
		keyed[*sibling.Key] = sibling
	}
	return keyed, nil
}
