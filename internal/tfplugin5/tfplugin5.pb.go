// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package tfplugin5

import "fmt"

// The message types below mirror tfplugin5.proto. They carry standard
// protobuf struct tags and implement the legacy proto message interface,
// which the protobuf runtime (and therefore grpc-go's proto codec) accepts
// and marshals through tag-derived descriptors.

// Diagnostic severity values.
const (
	Diagnostic_INVALID int32 = 0
	Diagnostic_ERROR   int32 = 1
	Diagnostic_WARNING int32 = 2
)

// Schema.NestedBlock nesting modes.
const (
	Schema_NestedBlock_INVALID int32 = 0
	Schema_NestedBlock_SINGLE  int32 = 1
	Schema_NestedBlock_LIST    int32 = 2
	Schema_NestedBlock_SET     int32 = 3
	Schema_NestedBlock_MAP     int32 = 4
	Schema_NestedBlock_GROUP   int32 = 5
)

type DynamicValue struct {
	Msgpack []byte `protobuf:"bytes,1,opt,name=msgpack,proto3" json:"msgpack,omitempty"`
	Json    []byte `protobuf:"bytes,2,opt,name=json,proto3" json:"json,omitempty"`
}

func (m *DynamicValue) Reset()         { *m = DynamicValue{} }
func (m *DynamicValue) String() string { return fmt.Sprintf("%+v", *m) }
func (*DynamicValue) ProtoMessage()    {}

func (m *DynamicValue) GetMsgpack() []byte {
	if m != nil {
		return m.Msgpack
	}
	return nil
}

func (m *DynamicValue) GetJson() []byte {
	if m != nil {
		return m.Json
	}
	return nil
}

type Diagnostic struct {
	Severity  int32          `protobuf:"varint,1,opt,name=severity,proto3" json:"severity,omitempty"`
	Summary   string         `protobuf:"bytes,2,opt,name=summary,proto3" json:"summary,omitempty"`
	Detail    string         `protobuf:"bytes,3,opt,name=detail,proto3" json:"detail,omitempty"`
	Attribute *AttributePath `protobuf:"bytes,4,opt,name=attribute,proto3" json:"attribute,omitempty"`
}

func (m *Diagnostic) Reset()         { *m = Diagnostic{} }
func (m *Diagnostic) String() string { return fmt.Sprintf("%+v", *m) }
func (*Diagnostic) ProtoMessage()    {}

func (m *Diagnostic) GetSeverity() int32 {
	if m != nil {
		return m.Severity
	}
	return Diagnostic_INVALID
}

func (m *Diagnostic) GetSummary() string {
	if m != nil {
		return m.Summary
	}
	return ""
}

func (m *Diagnostic) GetDetail() string {
	if m != nil {
		return m.Detail
	}
	return ""
}

func (m *Diagnostic) GetAttribute() *AttributePath {
	if m != nil {
		return m.Attribute
	}
	return nil
}

type AttributePath struct {
	Steps []*AttributePath_Step `protobuf:"bytes,1,rep,name=steps,proto3" json:"steps,omitempty"`
}

func (m *AttributePath) Reset()         { *m = AttributePath{} }
func (m *AttributePath) String() string { return fmt.Sprintf("%+v", *m) }
func (*AttributePath) ProtoMessage()    {}

func (m *AttributePath) GetSteps() []*AttributePath_Step {
	if m != nil {
		return m.Steps
	}
	return nil
}

type AttributePath_Step struct {
	AttributeName    string `protobuf:"bytes,1,opt,name=attribute_name,json=attributeName,proto3" json:"attribute_name,omitempty"`
	ElementKeyString string `protobuf:"bytes,2,opt,name=element_key_string,json=elementKeyString,proto3" json:"element_key_string,omitempty"`
	ElementKeyInt    int64  `protobuf:"varint,3,opt,name=element_key_int,json=elementKeyInt,proto3" json:"element_key_int,omitempty"`
}

func (m *AttributePath_Step) Reset()         { *m = AttributePath_Step{} }
func (m *AttributePath_Step) String() string { return fmt.Sprintf("%+v", *m) }
func (*AttributePath_Step) ProtoMessage()    {}

func (m *AttributePath_Step) GetAttributeName() string {
	if m != nil {
		return m.AttributeName
	}
	return ""
}

func (m *AttributePath_Step) GetElementKeyString() string {
	if m != nil {
		return m.ElementKeyString
	}
	return ""
}

func (m *AttributePath_Step) GetElementKeyInt() int64 {
	if m != nil {
		return m.ElementKeyInt
	}
	return 0
}

type Stop_Request struct{}

func (m *Stop_Request) Reset()         { *m = Stop_Request{} }
func (m *Stop_Request) String() string { return fmt.Sprintf("%+v", *m) }
func (*Stop_Request) ProtoMessage()    {}

type Stop_Response struct {
	Error string `protobuf:"bytes,1,opt,name=Error,proto3" json:"Error,omitempty"`
}

func (m *Stop_Response) Reset()         { *m = Stop_Response{} }
func (m *Stop_Response) String() string { return fmt.Sprintf("%+v", *m) }
func (*Stop_Response) ProtoMessage()    {}

func (m *Stop_Response) GetError() string {
	if m != nil {
		return m.Error
	}
	return ""
}

type Schema struct {
	Version int64         `protobuf:"varint,1,opt,name=version,proto3" json:"version,omitempty"`
	Block   *Schema_Block `protobuf:"bytes,2,opt,name=block,proto3" json:"block,omitempty"`
}

func (m *Schema) Reset()         { *m = Schema{} }
func (m *Schema) String() string { return fmt.Sprintf("%+v", *m) }
func (*Schema) ProtoMessage()    {}

func (m *Schema) GetVersion() int64 {
	if m != nil {
		return m.Version
	}
	return 0
}

func (m *Schema) GetBlock() *Schema_Block {
	if m != nil {
		return m.Block
	}
	return nil
}

type Schema_Block struct {
	Version         int64                 `protobuf:"varint,1,opt,name=version,proto3" json:"version,omitempty"`
	Attributes      []*Schema_Attribute   `protobuf:"bytes,2,rep,name=attributes,proto3" json:"attributes,omitempty"`
	BlockTypes      []*Schema_NestedBlock `protobuf:"bytes,3,rep,name=block_types,json=blockTypes,proto3" json:"block_types,omitempty"`
	Description     string                `protobuf:"bytes,4,opt,name=description,proto3" json:"description,omitempty"`
	DescriptionKind int32                 `protobuf:"varint,5,opt,name=description_kind,json=descriptionKind,proto3" json:"description_kind,omitempty"`
	Deprecated      bool                  `protobuf:"varint,6,opt,name=deprecated,proto3" json:"deprecated,omitempty"`
}

func (m *Schema_Block) Reset()         { *m = Schema_Block{} }
func (m *Schema_Block) String() string { return fmt.Sprintf("%+v", *m) }
func (*Schema_Block) ProtoMessage()    {}

func (m *Schema_Block) GetVersion() int64 {
	if m != nil {
		return m.Version
	}
	return 0
}

func (m *Schema_Block) GetAttributes() []*Schema_Attribute {
	if m != nil {
		return m.Attributes
	}
	return nil
}

func (m *Schema_Block) GetBlockTypes() []*Schema_NestedBlock {
	if m != nil {
		return m.BlockTypes
	}
	return nil
}

type Schema_Attribute struct {
	Name            string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Type            []byte `protobuf:"bytes,2,opt,name=type,proto3" json:"type,omitempty"`
	Description     string `protobuf:"bytes,3,opt,name=description,proto3" json:"description,omitempty"`
	Required        bool   `protobuf:"varint,4,opt,name=required,proto3" json:"required,omitempty"`
	Optional        bool   `protobuf:"varint,5,opt,name=optional,proto3" json:"optional,omitempty"`
	Computed        bool   `protobuf:"varint,6,opt,name=computed,proto3" json:"computed,omitempty"`
	Sensitive       bool   `protobuf:"varint,7,opt,name=sensitive,proto3" json:"sensitive,omitempty"`
	DescriptionKind int32  `protobuf:"varint,8,opt,name=description_kind,json=descriptionKind,proto3" json:"description_kind,omitempty"`
	Deprecated      bool   `protobuf:"varint,9,opt,name=deprecated,proto3" json:"deprecated,omitempty"`
}

func (m *Schema_Attribute) Reset()         { *m = Schema_Attribute{} }
func (m *Schema_Attribute) String() string { return fmt.Sprintf("%+v", *m) }
func (*Schema_Attribute) ProtoMessage()    {}

func (m *Schema_Attribute) GetName() string {
	if m != nil {
		return m.Name
	}
	return ""
}

func (m *Schema_Attribute) GetType() []byte {
	if m != nil {
		return m.Type
	}
	return nil
}

func (m *Schema_Attribute) GetComputed() bool {
	if m != nil {
		return m.Computed
	}
	return false
}

type Schema_NestedBlock struct {
	TypeName string        `protobuf:"bytes,1,opt,name=type_name,json=typeName,proto3" json:"type_name,omitempty"`
	Block    *Schema_Block `protobuf:"bytes,2,opt,name=block,proto3" json:"block,omitempty"`
	Nesting  int32         `protobuf:"varint,3,opt,name=nesting,proto3" json:"nesting,omitempty"`
	MinItems int64         `protobuf:"varint,4,opt,name=min_items,json=minItems,proto3" json:"min_items,omitempty"`
	MaxItems int64         `protobuf:"varint,5,opt,name=max_items,json=maxItems,proto3" json:"max_items,omitempty"`
}

func (m *Schema_NestedBlock) Reset()         { *m = Schema_NestedBlock{} }
func (m *Schema_NestedBlock) String() string { return fmt.Sprintf("%+v", *m) }
func (*Schema_NestedBlock) ProtoMessage()    {}

func (m *Schema_NestedBlock) GetTypeName() string {
	if m != nil {
		return m.TypeName
	}
	return ""
}

func (m *Schema_NestedBlock) GetBlock() *Schema_Block {
	if m != nil {
		return m.Block
	}
	return nil
}

func (m *Schema_NestedBlock) GetNesting() int32 {
	if m != nil {
		return m.Nesting
	}
	return Schema_NestedBlock_INVALID
}

type ServerCapabilities struct {
	PlanDestroy               bool `protobuf:"varint,1,opt,name=plan_destroy,json=planDestroy,proto3" json:"plan_destroy,omitempty"`
	GetProviderSchemaOptional bool `protobuf:"varint,2,opt,name=get_provider_schema_optional,json=getProviderSchemaOptional,proto3" json:"get_provider_schema_optional,omitempty"`
}

func (m *ServerCapabilities) Reset()         { *m = ServerCapabilities{} }
func (m *ServerCapabilities) String() string { return fmt.Sprintf("%+v", *m) }
func (*ServerCapabilities) ProtoMessage()    {}

func (m *ServerCapabilities) GetPlanDestroy() bool {
	if m != nil {
		return m.PlanDestroy
	}
	return false
}

type GetProviderSchema_Request struct{}

func (m *GetProviderSchema_Request) Reset()         { *m = GetProviderSchema_Request{} }
func (m *GetProviderSchema_Request) String() string { return fmt.Sprintf("%+v", *m) }
func (*GetProviderSchema_Request) ProtoMessage()    {}

type GetProviderSchema_Response struct {
	Provider           *Schema             `protobuf:"bytes,1,opt,name=provider,proto3" json:"provider,omitempty"`
	ResourceSchemas    map[string]*Schema  `protobuf:"bytes,2,rep,name=resource_schemas,json=resourceSchemas,proto3" json:"resource_schemas,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
	DataSourceSchemas  map[string]*Schema  `protobuf:"bytes,3,rep,name=data_source_schemas,json=dataSourceSchemas,proto3" json:"data_source_schemas,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
	Diagnostics        []*Diagnostic       `protobuf:"bytes,4,rep,name=diagnostics,proto3" json:"diagnostics,omitempty"`
	ProviderMeta       *Schema             `protobuf:"bytes,5,opt,name=provider_meta,json=providerMeta,proto3" json:"provider_meta,omitempty"`
	ServerCapabilities *ServerCapabilities `protobuf:"bytes,6,opt,name=server_capabilities,json=serverCapabilities,proto3" json:"server_capabilities,omitempty"`
}

func (m *GetProviderSchema_Response) Reset()         { *m = GetProviderSchema_Response{} }
func (m *GetProviderSchema_Response) String() string { return fmt.Sprintf("%+v", *m) }
func (*GetProviderSchema_Response) ProtoMessage()    {}

func (m *GetProviderSchema_Response) GetProvider() *Schema {
	if m != nil {
		return m.Provider
	}
	return nil
}

func (m *GetProviderSchema_Response) GetResourceSchemas() map[string]*Schema {
	if m != nil {
		return m.ResourceSchemas
	}
	return nil
}

func (m *GetProviderSchema_Response) GetDiagnostics() []*Diagnostic {
	if m != nil {
		return m.Diagnostics
	}
	return nil
}

type Configure_Request struct {
	TerraformVersion string        `protobuf:"bytes,1,opt,name=terraform_version,json=terraformVersion,proto3" json:"terraform_version,omitempty"`
	Config           *DynamicValue `protobuf:"bytes,2,opt,name=config,proto3" json:"config,omitempty"`
}

func (m *Configure_Request) Reset()         { *m = Configure_Request{} }
func (m *Configure_Request) String() string { return fmt.Sprintf("%+v", *m) }
func (*Configure_Request) ProtoMessage()    {}

type Configure_Response struct {
	Diagnostics []*Diagnostic `protobuf:"bytes,1,rep,name=diagnostics,proto3" json:"diagnostics,omitempty"`
}

func (m *Configure_Response) Reset()         { *m = Configure_Response{} }
func (m *Configure_Response) String() string { return fmt.Sprintf("%+v", *m) }
func (*Configure_Response) ProtoMessage()    {}

func (m *Configure_Response) GetDiagnostics() []*Diagnostic {
	if m != nil {
		return m.Diagnostics
	}
	return nil
}

type ReadResource_Request struct {
	TypeName     string        `protobuf:"bytes,1,opt,name=type_name,json=typeName,proto3" json:"type_name,omitempty"`
	CurrentState *DynamicValue `protobuf:"bytes,2,opt,name=current_state,json=currentState,proto3" json:"current_state,omitempty"`
	Private      []byte        `protobuf:"bytes,3,opt,name=private,proto3" json:"private,omitempty"`
	ProviderMeta *DynamicValue `protobuf:"bytes,4,opt,name=provider_meta,json=providerMeta,proto3" json:"provider_meta,omitempty"`
}

func (m *ReadResource_Request) Reset()         { *m = ReadResource_Request{} }
func (m *ReadResource_Request) String() string { return fmt.Sprintf("%+v", *m) }
func (*ReadResource_Request) ProtoMessage()    {}

type ReadResource_Response struct {
	NewState    *DynamicValue `protobuf:"bytes,1,opt,name=new_state,json=newState,proto3" json:"new_state,omitempty"`
	Diagnostics []*Diagnostic `protobuf:"bytes,2,rep,name=diagnostics,proto3" json:"diagnostics,omitempty"`
	Private     []byte        `protobuf:"bytes,3,opt,name=private,proto3" json:"private,omitempty"`
}

func (m *ReadResource_Response) Reset()         { *m = ReadResource_Response{} }
func (m *ReadResource_Response) String() string { return fmt.Sprintf("%+v", *m) }
func (*ReadResource_Response) ProtoMessage()    {}

func (m *ReadResource_Response) GetNewState() *DynamicValue {
	if m != nil {
		return m.NewState
	}
	return nil
}

func (m *ReadResource_Response) GetDiagnostics() []*Diagnostic {
	if m != nil {
		return m.Diagnostics
	}
	return nil
}

func (m *ReadResource_Response) GetPrivate() []byte {
	if m != nil {
		return m.Private
	}
	return nil
}

type PlanResourceChange_Request struct {
	TypeName         string        `protobuf:"bytes,1,opt,name=type_name,json=typeName,proto3" json:"type_name,omitempty"`
	PriorState       *DynamicValue `protobuf:"bytes,2,opt,name=prior_state,json=priorState,proto3" json:"prior_state,omitempty"`
	ProposedNewState *DynamicValue `protobuf:"bytes,3,opt,name=proposed_new_state,json=proposedNewState,proto3" json:"proposed_new_state,omitempty"`
	Config           *DynamicValue `protobuf:"bytes,4,opt,name=config,proto3" json:"config,omitempty"`
	PriorPrivate     []byte        `protobuf:"bytes,5,opt,name=prior_private,json=priorPrivate,proto3" json:"prior_private,omitempty"`
	ProviderMeta     *DynamicValue `protobuf:"bytes,6,opt,name=provider_meta,json=providerMeta,proto3" json:"provider_meta,omitempty"`
}

func (m *PlanResourceChange_Request) Reset()         { *m = PlanResourceChange_Request{} }
func (m *PlanResourceChange_Request) String() string { return fmt.Sprintf("%+v", *m) }
func (*PlanResourceChange_Request) ProtoMessage()    {}

type PlanResourceChange_Response struct {
	PlannedState     *DynamicValue    `protobuf:"bytes,1,opt,name=planned_state,json=plannedState,proto3" json:"planned_state,omitempty"`
	RequiresReplace  []*AttributePath `protobuf:"bytes,2,rep,name=requires_replace,json=requiresReplace,proto3" json:"requires_replace,omitempty"`
	PlannedPrivate   []byte           `protobuf:"bytes,3,opt,name=planned_private,json=plannedPrivate,proto3" json:"planned_private,omitempty"`
	Diagnostics      []*Diagnostic    `protobuf:"bytes,4,rep,name=diagnostics,proto3" json:"diagnostics,omitempty"`
	LegacyTypeSystem bool             `protobuf:"varint,5,opt,name=legacy_type_system,json=legacyTypeSystem,proto3" json:"legacy_type_system,omitempty"`
}

func (m *PlanResourceChange_Response) Reset()         { *m = PlanResourceChange_Response{} }
func (m *PlanResourceChange_Response) String() string { return fmt.Sprintf("%+v", *m) }
func (*PlanResourceChange_Response) ProtoMessage()    {}

func (m *PlanResourceChange_Response) GetPlannedState() *DynamicValue {
	if m != nil {
		return m.PlannedState
	}
	return nil
}

func (m *PlanResourceChange_Response) GetRequiresReplace() []*AttributePath {
	if m != nil {
		return m.RequiresReplace
	}
	return nil
}

func (m *PlanResourceChange_Response) GetPlannedPrivate() []byte {
	if m != nil {
		return m.PlannedPrivate
	}
	return nil
}

func (m *PlanResourceChange_Response) GetDiagnostics() []*Diagnostic {
	if m != nil {
		return m.Diagnostics
	}
	return nil
}

type ApplyResourceChange_Request struct {
	TypeName       string        `protobuf:"bytes,1,opt,name=type_name,json=typeName,proto3" json:"type_name,omitempty"`
	PriorState     *DynamicValue `protobuf:"bytes,2,opt,name=prior_state,json=priorState,proto3" json:"prior_state,omitempty"`
	PlannedState   *DynamicValue `protobuf:"bytes,3,opt,name=planned_state,json=plannedState,proto3" json:"planned_state,omitempty"`
	Config         *DynamicValue `protobuf:"bytes,4,opt,name=config,proto3" json:"config,omitempty"`
	PlannedPrivate []byte        `protobuf:"bytes,5,opt,name=planned_private,json=plannedPrivate,proto3" json:"planned_private,omitempty"`
	ProviderMeta   *DynamicValue `protobuf:"bytes,6,opt,name=provider_meta,json=providerMeta,proto3" json:"provider_meta,omitempty"`
}

func (m *ApplyResourceChange_Request) Reset()         { *m = ApplyResourceChange_Request{} }
func (m *ApplyResourceChange_Request) String() string { return fmt.Sprintf("%+v", *m) }
func (*ApplyResourceChange_Request) ProtoMessage()    {}

type ApplyResourceChange_Response struct {
	NewState         *DynamicValue `protobuf:"bytes,1,opt,name=new_state,json=newState,proto3" json:"new_state,omitempty"`
	Private          []byte        `protobuf:"bytes,2,opt,name=private,proto3" json:"private,omitempty"`
	Diagnostics      []*Diagnostic `protobuf:"bytes,3,rep,name=diagnostics,proto3" json:"diagnostics,omitempty"`
	LegacyTypeSystem bool          `protobuf:"varint,4,opt,name=legacy_type_system,json=legacyTypeSystem,proto3" json:"legacy_type_system,omitempty"`
}

func (m *ApplyResourceChange_Response) Reset()         { *m = ApplyResourceChange_Response{} }
func (m *ApplyResourceChange_Response) String() string { return fmt.Sprintf("%+v", *m) }
func (*ApplyResourceChange_Response) ProtoMessage()    {}

func (m *ApplyResourceChange_Response) GetNewState() *DynamicValue {
	if m != nil {
		return m.NewState
	}
	return nil
}

func (m *ApplyResourceChange_Response) GetPrivate() []byte {
	if m != nil {
		return m.Private
	}
	return nil
}

func (m *ApplyResourceChange_Response) GetDiagnostics() []*Diagnostic {
	if m != nil {
		return m.Diagnostics
	}
	return nil
}

type ImportResourceState_Request struct {
	TypeName string `protobuf:"bytes,1,opt,name=type_name,json=typeName,proto3" json:"type_name,omitempty"`
	Id       string `protobuf:"bytes,2,opt,name=id,proto3" json:"id,omitempty"`
}

func (m *ImportResourceState_Request) Reset()         { *m = ImportResourceState_Request{} }
func (m *ImportResourceState_Request) String() string { return fmt.Sprintf("%+v", *m) }
func (*ImportResourceState_Request) ProtoMessage()    {}

type ImportResourceState_ImportedResource struct {
	TypeName string        `protobuf:"bytes,1,opt,name=type_name,json=typeName,proto3" json:"type_name,omitempty"`
	State    *DynamicValue `protobuf:"bytes,2,opt,name=state,proto3" json:"state,omitempty"`
	Private  []byte        `protobuf:"bytes,3,opt,name=private,proto3" json:"private,omitempty"`
}

func (m *ImportResourceState_ImportedResource) Reset() {
	*m = ImportResourceState_ImportedResource{}
}
func (m *ImportResourceState_ImportedResource) String() string { return fmt.Sprintf("%+v", *m) }
func (*ImportResourceState_ImportedResource) ProtoMessage()    {}

func (m *ImportResourceState_ImportedResource) GetTypeName() string {
	if m != nil {
		return m.TypeName
	}
	return ""
}

func (m *ImportResourceState_ImportedResource) GetState() *DynamicValue {
	if m != nil {
		return m.State
	}
	return nil
}

func (m *ImportResourceState_ImportedResource) GetPrivate() []byte {
	if m != nil {
		return m.Private
	}
	return nil
}

type ImportResourceState_Response struct {
	ImportedResources []*ImportResourceState_ImportedResource `protobuf:"bytes,1,rep,name=imported_resources,json=importedResources,proto3" json:"imported_resources,omitempty"`
	Diagnostics       []*Diagnostic                           `protobuf:"bytes,2,rep,name=diagnostics,proto3" json:"diagnostics,omitempty"`
}

func (m *ImportResourceState_Response) Reset()         { *m = ImportResourceState_Response{} }
func (m *ImportResourceState_Response) String() string { return fmt.Sprintf("%+v", *m) }
func (*ImportResourceState_Response) ProtoMessage()    {}

func (m *ImportResourceState_Response) GetImportedResources() []*ImportResourceState_ImportedResource {
	if m != nil {
		return m.ImportedResources
	}
	return nil
}

func (m *ImportResourceState_Response) GetDiagnostics() []*Diagnostic {
	if m != nil {
		return m.Diagnostics
	}
	return nil
}
