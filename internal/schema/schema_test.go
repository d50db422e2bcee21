// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"testing"

	"github.com/zclconf/go-cty/cty"

	"github.com/terradrive/terradrive/internal/tfplugin5"
)

func TestConvertProtoSchema(t *testing.T) {
	proto := &tfplugin5.Schema{
		Version: 1,
		Block: &tfplugin5.Schema_Block{
			Attributes: []*tfplugin5.Schema_Attribute{
				{Name: "content", Type: []byte(`"string"`), Optional: true},
				{Name: "id", Type: []byte(`"string"`), Computed: true},
			},
			BlockTypes: []*tfplugin5.Schema_NestedBlock{
				{
					TypeName: "settings",
					Nesting:  tfplugin5.Schema_NestedBlock_SINGLE,
					Block: &tfplugin5.Schema_Block{
						Attributes: []*tfplugin5.Schema_Attribute{
							{Name: "count", Type: []byte(`"number"`), Required: true},
						},
					},
				},
			},
		},
	}

	block, err := ConvertProtoSchema(proto)
	if err != nil {
		t.Fatalf("ConvertProtoSchema: %s", err)
	}

	content := block.Attributes["content"]
	if content == nil || !content.Optional || content.Type != cty.String {
		t.Errorf("wrong attribute content: %+v", content)
	}
	if id := block.Attributes["id"]; id == nil || !id.Computed {
		t.Errorf("wrong attribute id: %+v", id)
	}

	settings := block.BlockTypes["settings"]
	if settings == nil {
		t.Fatal("missing nested block settings")
	}
	if settings.Nesting != NestingSingle {
		t.Errorf("wrong nesting %s, want single", settings.Nesting)
	}
	if count := settings.Block.Attributes["count"]; count == nil || count.Type != cty.Number {
		t.Errorf("wrong nested attribute count: %+v", count)
	}
}

func TestConvertProtoSchemaErrors(t *testing.T) {
	if _, err := ConvertProtoSchema(nil); err == nil {
		t.Error("expected error for nil schema")
	}
	if _, err := ConvertProtoSchema(&tfplugin5.Schema{}); err == nil {
		t.Error("expected error for schema without block")
	}

	_, err := ConvertProtoSchema(&tfplugin5.Schema{
		Block: &tfplugin5.Schema_Block{
			Attributes: []*tfplugin5.Schema_Attribute{
				{Name: "broken", Type: []byte(`not json`)},
			},
		},
	})
	if err == nil {
		t.Error("expected error for undecodable attribute type")
	}

	_, err = ConvertProtoSchema(&tfplugin5.Schema{
		Block: &tfplugin5.Schema_Block{
			BlockTypes: []*tfplugin5.Schema_NestedBlock{
				{TypeName: "x", Nesting: 42, Block: &tfplugin5.Schema_Block{}},
			},
		},
	})
	if err == nil {
		t.Error("expected error for unknown nesting mode")
	}
}
