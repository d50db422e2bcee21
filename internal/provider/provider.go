// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

// Package provider wraps the raw tfplugin5 protocol client in a typed
// facade: schemas are fetched once and cached, values cross the boundary
// as plain decoded trees instead of DynamicValue envelopes, and provider
// diagnostics become Go errors.
package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/grpc"

	"github.com/terradrive/terradrive/internal/schema"
	"github.com/terradrive/terradrive/internal/tfplugin5"
	"github.com/terradrive/terradrive/internal/wire"
)

// terraformVersion is what this client announces in Configure. Providers
// gate features on it, so it stays pinned rather than tracking releases.
const terraformVersion = "0.14.10"

// Schema responses carry every resource schema the provider knows about
// and routinely blow through the default 4MB gRPC limit.
const maxSchemaMsgSize = 64 << 20

// ResponseFormatError is a structurally invalid provider response: the
// RPC succeeded and carried no error diagnostics, but the payload cannot
// be interpreted.
type ResponseFormatError struct {
	Message string
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("invalid provider response: %s", e.Message)
}

func responseFormatErrorf(format string, args ...any) *ResponseFormatError {
	return &ResponseFormatError{Message: fmt.Sprintf(format, args...)}
}

// Schemas is the cached result of the GetSchema RPC.
type Schemas struct {
	Provider      *schema.Block
	ResourceTypes map[string]*schema.Block
}

// ImportedResource is one candidate returned by an import.
type ImportedResource struct {
	TypeName string
	State    map[string]any
	Private  []byte
}

// PlanResult is the outcome of a PlanResourceChange RPC.
type PlanResult struct {
	PlannedState    map[string]any // nil when the provider planned a null state
	RequiresReplace bool
	PlannedPrivate  []byte
}

// ApplyResult is the outcome of an ApplyResourceChange RPC. When the RPC
// also produced error diagnostics the result is still populated: a failed
// apply may have partially created the resource, and the state and private
// payload it reported are the only record of that.
type ApplyResult struct {
	NewState map[string]any // nil when the provider reported a null state
	Private  []byte
}

// Provider is the typed facade over one running provider plugin.
type Provider struct {
	client tfplugin5.ProviderClient
	logger hclog.Logger

	mu      sync.Mutex
	schemas *Schemas
}

// New wraps a protocol client.
func New(client tfplugin5.ProviderClient, logger hclog.Logger) *Provider {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Provider{
		client: client,
		logger: logger.Named("provider"),
	}
}

// Schema returns the provider's schemas, fetching them on first use and
// serving the cached copy afterwards.
func (p *Provider) Schema(ctx context.Context) (*Schemas, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.schemas != nil {
		return p.schemas, nil
	}

	resp, err := p.client.GetSchema(ctx, &tfplugin5.GetProviderSchema_Request{},
		grpc.MaxCallRecvMsgSize(maxSchemaMsgSize),
	)
	if err != nil {
		return nil, fmt.Errorf("GetSchema RPC failed: %w", err)
	}
	if err := p.raiseDiagnostics(diagnosticsFromProto(resp.Diagnostics)); err != nil {
		return nil, err
	}

	providerBlock, err := schema.ConvertProtoSchema(resp.Provider)
	if err != nil {
		return nil, fmt.Errorf("invalid provider schema: %w", err)
	}

	schemas := &Schemas{
		Provider:      providerBlock,
		ResourceTypes: make(map[string]*schema.Block, len(resp.ResourceSchemas)),
	}
	for name, rs := range resp.ResourceSchemas {
		block, err := schema.ConvertProtoSchema(rs)
		if err != nil {
			return nil, fmt.Errorf("invalid schema for resource type %q: %w", name, err)
		}
		schemas.ResourceTypes[name] = block
	}

	p.schemas = schemas
	return p.schemas, nil
}

// ResourceSchema returns the schema for one resource type.
func (p *Provider) ResourceSchema(ctx context.Context, typeName string) (*schema.Block, error) {
	schemas, err := p.Schema(ctx)
	if err != nil {
		return nil, err
	}
	block, ok := schemas.ResourceTypes[typeName]
	if !ok {
		return nil, fmt.Errorf("provider has no resource type %q", typeName)
	}
	return block, nil
}

// Configure sends the provider its own configuration. The value is filled
// against the provider schema before it is encoded, so a sparse caller
// document is acceptable.
func (p *Provider) Configure(ctx context.Context, config map[string]any) error {
	schemas, err := p.Schema(ctx)
	if err != nil {
		return err
	}
	if config == nil {
		config = map[string]any{}
	}
	filled, err := schema.Fill(config, schemas.Provider)
	if err != nil {
		return err
	}
	dv, err := encodeDynamic(filled)
	if err != nil {
		return err
	}

	resp, err := p.client.Configure(ctx, &tfplugin5.Configure_Request{
		TerraformVersion: terraformVersion,
		Config:           dv,
	})
	if err != nil {
		return fmt.Errorf("Configure RPC failed: %w", err)
	}
	return p.raiseDiagnostics(diagnosticsFromProto(resp.Diagnostics))
}

// Stop asks the provider to cancel in-flight work. Purely advisory.
func (p *Provider) Stop(ctx context.Context) error {
	resp, err := p.client.Stop(ctx, &tfplugin5.Stop_Request{})
	if err != nil {
		return fmt.Errorf("Stop RPC failed: %w", err)
	}
	if resp.Error != "" {
		return fmt.Errorf("provider refused to stop: %s", resp.Error)
	}
	return nil
}

// ImportResource asks the provider to locate existing infrastructure by
// id and returns every candidate it reports.
func (p *Provider) ImportResource(ctx context.Context, typeName, id string) ([]ImportedResource, error) {
	resp, err := p.client.ImportResourceState(ctx, &tfplugin5.ImportResourceState_Request{
		TypeName: typeName,
		Id:       id,
	})
	if err != nil {
		return nil, fmt.Errorf("ImportResourceState RPC failed: %w", err)
	}
	if err := p.raiseDiagnostics(diagnosticsFromProto(resp.Diagnostics)); err != nil {
		return nil, err
	}

	imported := make([]ImportedResource, 0, len(resp.ImportedResources))
	for _, res := range resp.ImportedResources {
		state, err := decodeDynamic(res.State)
		if err != nil {
			return nil, err
		}
		imported = append(imported, ImportedResource{
			TypeName: res.TypeName,
			State:    state,
			Private:  res.Private,
		})
	}
	return imported, nil
}

// ReadResource refreshes a resource's state. A nil returned state means
// the provider reports the resource as gone.
func (p *Provider) ReadResource(ctx context.Context, typeName string, currentState map[string]any, private []byte) (map[string]any, []byte, error) {
	dv, err := encodeDynamic(currentState)
	if err != nil {
		return nil, nil, err
	}
	resp, err := p.client.ReadResource(ctx, &tfplugin5.ReadResource_Request{
		TypeName:     typeName,
		CurrentState: dv,
		Private:      private,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("ReadResource RPC failed: %w", err)
	}
	if err := p.raiseDiagnostics(diagnosticsFromProto(resp.Diagnostics)); err != nil {
		return nil, nil, err
	}
	newState, err := decodeDynamic(resp.NewState)
	if err != nil {
		return nil, nil, err
	}
	return newState, resp.Private, nil
}

// PlanResourceChange proposes a change and returns the provider's plan.
// A nil prior or proposed state is encoded as a null document, which is
// how creation (null prior) and destruction (null proposed) are expressed.
func (p *Provider) PlanResourceChange(ctx context.Context, typeName string, prior, proposed, config map[string]any, priorPrivate []byte) (*PlanResult, error) {
	priorDV, err := encodeDynamic(prior)
	if err != nil {
		return nil, err
	}
	proposedDV, err := encodeDynamic(proposed)
	if err != nil {
		return nil, err
	}
	configDV, err := encodeDynamic(config)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.PlanResourceChange(ctx, &tfplugin5.PlanResourceChange_Request{
		TypeName:         typeName,
		PriorState:       priorDV,
		ProposedNewState: proposedDV,
		Config:           configDV,
		PriorPrivate:     priorPrivate,
	})
	if err != nil {
		return nil, fmt.Errorf("PlanResourceChange RPC failed: %w", err)
	}
	if err := p.raiseDiagnostics(diagnosticsFromProto(resp.Diagnostics)); err != nil {
		return nil, err
	}

	planned, err := decodeDynamic(resp.PlannedState)
	if err != nil {
		return nil, err
	}
	return &PlanResult{
		PlannedState:    planned,
		RequiresReplace: len(resp.RequiresReplace) > 0,
		PlannedPrivate:  resp.PlannedPrivate,
	}, nil
}

// ApplyResourceChange executes a planned change. The returned result is
// valid even when err is non-nil, so callers can persist whatever partial
// state the provider managed to report before failing.
func (p *Provider) ApplyResourceChange(ctx context.Context, typeName string, prior, planned, config map[string]any, plannedPrivate []byte) (*ApplyResult, error) {
	priorDV, err := encodeDynamic(prior)
	if err != nil {
		return nil, err
	}
	plannedDV, err := encodeDynamic(planned)
	if err != nil {
		return nil, err
	}
	configDV, err := encodeDynamic(config)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.ApplyResourceChange(ctx, &tfplugin5.ApplyResourceChange_Request{
		TypeName:       typeName,
		PriorState:     priorDV,
		PlannedState:   plannedDV,
		Config:         configDV,
		PlannedPrivate: plannedPrivate,
	})
	if err != nil {
		return nil, fmt.Errorf("ApplyResourceChange RPC failed: %w", err)
	}

	// Decode the state before looking at diagnostics: a failed apply may
	// still report the partial state it left behind.
	result := &ApplyResult{Private: resp.Private}
	newState, stateErr := decodeDynamic(resp.NewState)
	if stateErr == nil {
		result.NewState = newState
	}

	if err := p.raiseDiagnostics(diagnosticsFromProto(resp.Diagnostics)); err != nil {
		return result, err
	}
	if stateErr != nil {
		return result, stateErr
	}
	return result, nil
}

// raiseDiagnostics logs warnings and converts error diagnostics into a
// *DiagnosticsError.
func (p *Provider) raiseDiagnostics(diags Diagnostics) error {
	for _, w := range diags.Warnings() {
		p.logger.Warn("provider warning", "summary", w.Summary, "detail", w.Detail)
	}
	return diags.Err()
}

// encodeDynamic wraps a value tree in a msgpack DynamicValue. A nil map
// becomes the msgpack null document.
func encodeDynamic(v map[string]any) (*tfplugin5.DynamicValue, error) {
	var body any
	if v != nil {
		body = v
	}
	b, err := wire.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &tfplugin5.DynamicValue{Msgpack: b}, nil
}

// decodeDynamic unwraps a msgpack DynamicValue into a value tree. An
// absent value and the null document both decode to nil.
func decodeDynamic(dv *tfplugin5.DynamicValue) (map[string]any, error) {
	if dv == nil || len(dv.Msgpack) == 0 {
		return nil, nil
	}
	decoded, err := wire.Unmarshal(dv.Msgpack)
	if err != nil {
		return nil, err
	}
	if decoded == nil {
		return nil, nil
	}
	m, ok := decoded.(map[string]any)
	if !ok {
		return nil, responseFormatErrorf("expected an object or null, got %T", decoded)
	}
	return m, nil
}
