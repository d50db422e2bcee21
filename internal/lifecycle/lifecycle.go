// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

// Package lifecycle drives one resource instance through its provider
// lifecycle: import, read, create, update and delete. A Client owns the
// in-memory record of the instance (state tree plus the provider's opaque
// private payload) and keeps the persisted envelope in step with it.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/terradrive/terradrive/internal/provider"
	"github.com/terradrive/terradrive/internal/schema"
	"github.com/terradrive/terradrive/internal/states"
	"github.com/terradrive/terradrive/internal/wire"
)

// providerOps is what a lifecycle Client needs from a provider facade.
// *provider.Provider satisfies it.
type providerOps interface {
	ResourceSchema(ctx context.Context, typeName string) (*schema.Block, error)
	ImportResource(ctx context.Context, typeName, id string) ([]provider.ImportedResource, error)
	ReadResource(ctx context.Context, typeName string, currentState map[string]any, private []byte) (map[string]any, []byte, error)
	PlanResourceChange(ctx context.Context, typeName string, prior, proposed, config map[string]any, priorPrivate []byte) (*provider.PlanResult, error)
	ApplyResourceChange(ctx context.Context, typeName string, prior, planned, config map[string]any, plannedPrivate []byte) (*provider.ApplyResult, error)
}

// Record is the in-memory view of one resource instance. A nil State
// means the remote object does not exist as far as this client knows;
// when State is nil the Private payload is meaningless.
type Record struct {
	TypeName   string
	ResourceID string
	Private    []byte
	State      map[string]any
}

func (r *Record) complete() bool {
	return r.State != nil && r.Private != nil
}

// Client drives the lifecycle of one resource instance.
type Client struct {
	provider providerOps
	store    *states.Store
	logger   hclog.Logger

	typeName string
	stateKey string

	record Record
	block  *schema.Block
}

// NewClient returns a lifecycle client for one resource instance. The
// state key identifies the instance's persisted envelope in the store.
func NewClient(p providerOps, store *states.Store, typeName, stateKey string, logger hclog.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Client{
		provider: p,
		store:    store,
		logger:   logger.Named("lifecycle").With("type", typeName, "key", stateKey),
		typeName: typeName,
		stateKey: stateKey,
		record:   Record{TypeName: typeName},
	}
}

// Record returns a copy of the current in-memory record.
func (c *Client) Record() Record {
	return c.record
}

// Restore seeds the in-memory record from a previously persisted state,
// for callers resuming work on an instance they already manage.
func (c *Client) Restore(resourceID string, state map[string]any, private []byte) {
	c.record.ResourceID = resourceID
	c.record.State = state
	c.record.Private = private
}

// Load restores the record from the store, for callers resuming work in
// a fresh process. A missing envelope leaves the record empty.
func (c *Client) Load(ctx context.Context) error {
	envelope, ok, err := c.store.Load(ctx, c.stateKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	c.record.State = envelope.State

	private, ok, err := c.store.LoadPrivate(ctx, c.stateKey)
	if err != nil {
		return err
	}
	if ok {
		c.record.Private = private
	}
	return nil
}

func (c *Client) schema(ctx context.Context) (*schema.Block, error) {
	if c.block != nil {
		return c.block, nil
	}
	block, err := c.provider.ResourceSchema(ctx, c.typeName)
	if err != nil {
		return nil, err
	}
	c.block = block
	return block, nil
}

// Import binds this client to existing infrastructure located by id. The
// provider may legally return auxiliary resources of other types; those
// are discarded. Anything other than exactly one candidate of the right
// type is a lookup failure, as is a candidate the provider can locate but
// can no longer read.
func (c *Client) Import(ctx context.Context, id string) (map[string]any, error) {
	if c.record.State != nil && c.record.ResourceID != id {
		return nil, &ConflictError{Recorded: c.record.ResourceID, Requested: id}
	}

	candidates, err := c.provider.ImportResource(ctx, c.typeName, id)
	if err != nil {
		return nil, err
	}

	var matches []provider.ImportedResource
	for _, candidate := range candidates {
		if candidate.TypeName == c.typeName {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 1:
	case 0:
		return nil, lookupErrorf("provider found no %s with id %q", c.typeName, id)
	default:
		return nil, lookupErrorf("provider found %d resources of type %s with id %q, refusing to guess", len(matches), c.typeName, id)
	}

	// Import alone proves the id resolves, not that the object can still
	// be materialized. The follow-up read is what decides.
	state, private, err := c.provider.ReadResource(ctx, c.typeName, matches[0].State, matches[0].Private)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, lookupErrorf("provider located %s %q but could not read it back", c.typeName, id)
	}

	c.record.ResourceID = id
	c.record.State = state
	c.record.Private = private
	// An imported state was produced by unknown configuration, so it is
	// persisted as never-fresh.
	if err := c.persist(ctx, states.ConfigHashNeverMatches); err != nil {
		return nil, err
	}

	c.logger.Info("imported resource", "id", id)
	return c.pruned(ctx, state)
}

// Read refreshes the record from the provider. A nil result without error
// means the remote object does not exist; when the provider confirms an
// object this client knew about is gone, the record and its envelope are
// purged before returning.
func (c *Client) Read(ctx context.Context) (map[string]any, error) {
	if c.record.State == nil {
		return nil, nil
	}
	if !c.record.complete() {
		return nil, &IncompleteStateError{Operation: "read"}
	}

	state, private, err := c.provider.ReadResource(ctx, c.typeName, c.record.State, c.record.Private)
	if err != nil {
		return nil, err
	}
	if state == nil {
		c.logger.Info("remote object is gone, purging state")
		if err := c.purge(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	c.record.State = state
	c.record.Private = private
	// A read does not change which configuration produced the state, so
	// the existing freshness hash is carried over.
	hash := states.ConfigHashNeverMatches
	if envelope, ok, err := c.store.Load(ctx, c.stateKey); err != nil {
		return nil, err
	} else if ok {
		hash = envelope.ConfigHash
	}
	if err := c.persist(ctx, hash); err != nil {
		return nil, err
	}

	return c.pruned(ctx, state)
}

// Create plans and applies the resource from a null prior state. Whatever
// the apply reports back is recorded and persisted before any provider
// error is surfaced: a failed create may still have created something,
// and losing track of it would leak infrastructure.
func (c *Client) Create(ctx context.Context, desired map[string]any) (map[string]any, error) {
	block, err := c.schema(ctx)
	if err != nil {
		return nil, err
	}
	filled, err := schema.Fill(desired, block)
	if err != nil {
		return nil, err
	}

	plan, err := c.provider.PlanResourceChange(ctx, c.typeName, nil, filled, filled, nil)
	if err != nil {
		return nil, err
	}

	result, applyErr := c.provider.ApplyResourceChange(ctx, c.typeName, nil, plan.PlannedState, filled, plan.PlannedPrivate)
	if result != nil {
		if err := c.capture(ctx, result, desired); err != nil {
			return nil, err
		}
	}
	if applyErr != nil {
		return nil, applyErr
	}

	if result.NewState == nil {
		// Some providers apply successfully and still report a null
		// state. Not this client's bug, but worth a trace.
		c.logger.Warn("provider returned no state after a successful create")
		return nil, nil
	}
	return c.pruned(ctx, result.NewState)
}

// Update plans a change against the current state and applies it. When
// the plan is byte-identical to the current state there is nothing to do:
// caller configuration is routinely narrower than the full provider state
// and would otherwise report spurious diffs forever. A plan that requires
// replacement is executed as delete-then-create.
func (c *Client) Update(ctx context.Context, desired map[string]any) (map[string]any, error) {
	if !c.record.complete() {
		return nil, &IncompleteStateError{Operation: "update"}
	}

	block, err := c.schema(ctx)
	if err != nil {
		return nil, err
	}
	filled, err := schema.Fill(desired, block)
	if err != nil {
		return nil, err
	}

	plan, err := c.provider.PlanResourceChange(ctx, c.typeName, c.record.State, filled, filled, c.record.Private)
	if err != nil {
		return nil, err
	}

	priorWire, err := wire.Marshal(c.record.State)
	if err != nil {
		return nil, err
	}
	plannedWire, err := wire.Marshal(plan.PlannedState)
	if err != nil {
		return nil, err
	}
	if wire.Equal(priorWire, plannedWire) {
		c.logger.Warn("nothing to apply, planned state matches current state")
		return c.pruned(ctx, c.record.State)
	}

	if plan.RequiresReplace {
		c.logger.Info("plan requires replacement, deleting and recreating")
		if err := c.Delete(ctx); err != nil {
			return nil, err
		}
		return c.Create(ctx, desired)
	}

	result, applyErr := c.provider.ApplyResourceChange(ctx, c.typeName, c.record.State, plan.PlannedState, filled, plan.PlannedPrivate)
	if result != nil {
		if err := c.capture(ctx, result, desired); err != nil {
			return nil, err
		}
	}
	if applyErr != nil {
		return nil, applyErr
	}

	if result.NewState == nil {
		return nil, &provider.ResponseFormatError{
			Message: "provider returned no state after a successful update",
		}
	}
	return c.pruned(ctx, result.NewState)
}

// Delete destroys the remote object and purges the record. The purge is
// unconditional on success: deletion is terminal regardless of what, if
// anything, the provider echoed back.
func (c *Client) Delete(ctx context.Context) error {
	if !c.record.complete() {
		return &IncompleteStateError{Operation: "delete"}
	}

	config := map[string]any{}
	plan, err := c.provider.PlanResourceChange(ctx, c.typeName, c.record.State, nil, config, c.record.Private)
	if err != nil {
		return err
	}

	if _, err := c.provider.ApplyResourceChange(ctx, c.typeName, c.record.State, plan.PlannedState, config, plan.PlannedPrivate); err != nil {
		return err
	}

	c.logger.Info("deleted resource")
	return c.purge(ctx)
}

// capture records what an apply reported back. The private payload is
// taken unconditionally and persisted even when no state came with it; a
// partially created object may be reachable through nothing else.
func (c *Client) capture(ctx context.Context, result *provider.ApplyResult, desired map[string]any) error {
	c.record.Private = result.Private
	if result.NewState == nil {
		return c.store.SavePrivate(ctx, c.stateKey, c.record.Private)
	}
	c.record.State = result.NewState
	return c.persistDesired(ctx, desired)
}

func (c *Client) persist(ctx context.Context, configHash string) error {
	if err := c.store.Save(ctx, c.stateKey, c.record.State, configHash); err != nil {
		return err
	}
	return c.store.SavePrivate(ctx, c.stateKey, c.record.Private)
}

func (c *Client) persistDesired(ctx context.Context, desired map[string]any) error {
	hash, err := states.ConfigHash(desired)
	if err != nil {
		return err
	}
	return c.persist(ctx, hash)
}

func (c *Client) purge(ctx context.Context) error {
	c.record.State = nil
	c.record.Private = nil
	c.record.ResourceID = ""
	if err := c.store.Delete(ctx, c.stateKey); err != nil {
		return err
	}
	return c.store.DeletePrivate(ctx, c.stateKey)
}

func (c *Client) pruned(ctx context.Context, state map[string]any) (map[string]any, error) {
	block, err := c.schema(ctx)
	if err != nil {
		return nil, err
	}
	pruned, err := schema.Prune(state, block)
	if err != nil {
		return nil, fmt.Errorf("provider state does not match the %s schema: %w", c.typeName, err)
	}
	return pruned, nil
}
