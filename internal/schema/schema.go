// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

// Package schema models the configuration shape a provider declares for
// itself and for each of its resource types, and implements the two
// schema-driven normalizations this client needs: filling a partial value
// tree before it is sent to a provider, and pruning a provider-reported
// state tree before it is exposed to callers.
package schema

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/terradrive/terradrive/internal/tfplugin5"
)

// NestingMode describes how a nested block attaches to its parent.
type NestingMode int

const (
	nestingInvalid NestingMode = iota
	NestingSingle
	NestingList
	NestingSet
	NestingMap
	NestingGroup
)

func (m NestingMode) String() string {
	switch m {
	case NestingSingle:
		return "single"
	case NestingList:
		return "list"
	case NestingSet:
		return "set"
	case NestingMap:
		return "map"
	case NestingGroup:
		return "group"
	default:
		return "invalid"
	}
}

// Block is one level of a schema: leaf attributes plus named nested blocks.
type Block struct {
	Attributes map[string]*Attribute
	BlockTypes map[string]*NestedBlock
}

// Attribute is a leaf value declaration. Computed attributes are assigned
// by the provider and must never appear in caller-supplied configuration.
type Attribute struct {
	Type        cty.Type
	Description string

	Required  bool
	Optional  bool
	Computed  bool
	Sensitive bool
}

// NestedBlock attaches a child Block to its parent with a nesting mode.
type NestedBlock struct {
	Block   *Block
	Nesting NestingMode
}

// ConvertProtoSchema converts the wire form of a schema into the typed
// model, decoding attribute types along the way.
func ConvertProtoSchema(s *tfplugin5.Schema) (*Block, error) {
	if s == nil || s.Block == nil {
		return nil, fmt.Errorf("provider returned an empty schema")
	}
	return ConvertProtoBlock(s.Block)
}

// ConvertProtoBlock converts one wire schema block. Unknown nesting modes
// and undecodable attribute types are errors rather than omissions; a
// silently dropped declaration would corrupt every later fill/prune pass.
func ConvertProtoBlock(b *tfplugin5.Schema_Block) (*Block, error) {
	block := &Block{
		Attributes: make(map[string]*Attribute, len(b.Attributes)),
		BlockTypes: make(map[string]*NestedBlock, len(b.BlockTypes)),
	}

	for _, a := range b.Attributes {
		attr := &Attribute{
			Description: a.Description,
			Required:    a.Required,
			Optional:    a.Optional,
			Computed:    a.Computed,
			Sensitive:   a.Sensitive,
		}

		if len(a.Type) > 0 {
			ty, err := ctyjson.UnmarshalType(a.Type)
			if err != nil {
				return nil, fmt.Errorf("invalid type for attribute %q: %w", a.Name, err)
			}
			attr.Type = ty
		}

		block.Attributes[a.Name] = attr
	}

	for _, nb := range b.BlockTypes {
		if nb.Block == nil {
			return nil, fmt.Errorf("nested block %q carries no schema block", nb.TypeName)
		}
		child, err := ConvertProtoBlock(nb.Block)
		if err != nil {
			return nil, err
		}
		nesting, err := convertNesting(nb.Nesting)
		if err != nil {
			return nil, fmt.Errorf("nested block %q: %w", nb.TypeName, err)
		}
		block.BlockTypes[nb.TypeName] = &NestedBlock{
			Block:   child,
			Nesting: nesting,
		}
	}

	return block, nil
}

func convertNesting(n int32) (NestingMode, error) {
	switch n {
	case tfplugin5.Schema_NestedBlock_SINGLE:
		return NestingSingle, nil
	case tfplugin5.Schema_NestedBlock_LIST:
		return NestingList, nil
	case tfplugin5.Schema_NestedBlock_SET:
		return NestingSet, nil
	case tfplugin5.Schema_NestedBlock_MAP:
		return NestingMap, nil
	case tfplugin5.Schema_NestedBlock_GROUP:
		return NestingGroup, nil
	default:
		return nestingInvalid, fmt.Errorf("unsupported block nesting mode %d", n)
	}
}
