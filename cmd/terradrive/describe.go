// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/terradrive/terradrive/internal/schema"
)

// describeBlock renders a schema block as a plain document for display.
func describeBlock(block *schema.Block) map[string]any {
	attributes := make(map[string]any, len(block.Attributes))
	for name, attr := range block.Attributes {
		described := map[string]any{}
		if attr.Type != cty.NilType {
			described["type"] = attr.Type.FriendlyName()
		}
		if attr.Required {
			described["required"] = true
		}
		if attr.Optional {
			described["optional"] = true
		}
		if attr.Computed {
			described["computed"] = true
		}
		if attr.Sensitive {
			described["sensitive"] = true
		}
		if attr.Description != "" {
			described["description"] = attr.Description
		}
		attributes[name] = described
	}

	blocks := make(map[string]any, len(block.BlockTypes))
	for name, nested := range block.BlockTypes {
		blocks[name] = map[string]any{
			"nesting": nested.Nesting.String(),
			"block":   describeBlock(nested.Block),
		}
	}

	described := map[string]any{"attributes": attributes}
	if len(blocks) > 0 {
		described["block_types"] = blocks
	}
	return described
}
