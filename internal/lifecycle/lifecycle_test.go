// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zclconf/go-cty/cty"

	"github.com/terradrive/terradrive/internal/params"
	"github.com/terradrive/terradrive/internal/provider"
	"github.com/terradrive/terradrive/internal/schema"
	"github.com/terradrive/terradrive/internal/states"
)

const testType = "fake_file"

// fakeProvider is a scriptable providerOps.
type fakeProvider struct {
	importRes func(id string) ([]provider.ImportedResource, error)
	read      func(state map[string]any, private []byte) (map[string]any, []byte, error)
	plan      func(prior, proposed, config map[string]any) (*provider.PlanResult, error)
	apply     func(prior, planned, config map[string]any, private []byte) (*provider.ApplyResult, error)

	applyCalls int
}

func (f *fakeProvider) ResourceSchema(context.Context, string) (*schema.Block, error) {
	return &schema.Block{
		Attributes: map[string]*schema.Attribute{
			"content": {Type: cty.String, Optional: true},
			"id":      {Type: cty.String, Computed: true},
		},
	}, nil
}

func (f *fakeProvider) ImportResource(_ context.Context, _, id string) ([]provider.ImportedResource, error) {
	return f.importRes(id)
}

func (f *fakeProvider) ReadResource(_ context.Context, _ string, state map[string]any, private []byte) (map[string]any, []byte, error) {
	return f.read(state, private)
}

func (f *fakeProvider) PlanResourceChange(_ context.Context, _ string, prior, proposed, config map[string]any, _ []byte) (*provider.PlanResult, error) {
	return f.plan(prior, proposed, config)
}

func (f *fakeProvider) ApplyResourceChange(_ context.Context, _ string, prior, planned, config map[string]any, private []byte) (*provider.ApplyResult, error) {
	f.applyCalls++
	return f.apply(prior, planned, config, private)
}

func newTestClient(t *testing.T, fake *fakeProvider) (*Client, *states.Store) {
	t.Helper()
	dir, err := params.NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	store := states.NewStore(dir, nil)
	return NewClient(fake, store, testType, "test-key", nil), store
}

func envelopeExists(t *testing.T, store *states.Store) bool {
	t.Helper()
	_, ok, err := store.Load(context.Background(), "test-key")
	if err != nil {
		t.Fatal(err)
	}
	return ok
}

func TestImport(t *testing.T) {
	fake := &fakeProvider{
		importRes: func(id string) ([]provider.ImportedResource, error) {
			return []provider.ImportedResource{
				// Auxiliary resource of another type must be discarded.
				{TypeName: "fake_other", State: map[string]any{"id": "aux"}},
				{TypeName: testType, State: map[string]any{"id": id}, Private: []byte("p0")},
			}, nil
		},
		read: func(state map[string]any, private []byte) (map[string]any, []byte, error) {
			if string(private) != "p0" {
				t.Errorf("read must use the imported private, got %q", private)
			}
			return map[string]any{"id": state["id"], "content": "found"}, []byte("p1"), nil
		},
	}
	client, store := newTestClient(t, fake)

	state, err := client.Import(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Import: %s", err)
	}
	// Pruned result: computed id dropped.
	if diff := cmp.Diff(map[string]any{"content": "found"}, state); diff != "" {
		t.Errorf("wrong imported state:\n%s", diff)
	}

	record := client.Record()
	if record.ResourceID != "abc" || string(record.Private) != "p1" {
		t.Errorf("wrong record: %+v", record)
	}
	if !envelopeExists(t, store) {
		t.Error("import must persist the envelope")
	}

	// An imported state is never fresh for any configuration.
	if _, fresh, _ := store.SafeState(context.Background(), "test-key", map[string]any{"content": "found"}); fresh {
		t.Error("imported state must not be considered fresh")
	}
}

func TestImportDisambiguation(t *testing.T) {
	cases := map[string][]provider.ImportedResource{
		"no candidates": {},
		"only foreign types": {
			{TypeName: "fake_other", State: map[string]any{}},
		},
		"two candidates": {
			{TypeName: testType, State: map[string]any{"id": "a"}},
			{TypeName: testType, State: map[string]any{"id": "b"}},
		},
	}
	for name, candidates := range cases {
		t.Run(name, func(t *testing.T) {
			fake := &fakeProvider{
				importRes: func(string) ([]provider.ImportedResource, error) {
					return candidates, nil
				},
			}
			client, _ := newTestClient(t, fake)
			_, err := client.Import(context.Background(), "abc")
			var lookupErr *LookupError
			if !errors.As(err, &lookupErr) {
				t.Fatalf("expected *LookupError, got %v", err)
			}
		})
	}
}

func TestImportDanglingIDFailsLookup(t *testing.T) {
	fake := &fakeProvider{
		importRes: func(id string) ([]provider.ImportedResource, error) {
			return []provider.ImportedResource{
				{TypeName: testType, State: map[string]any{"id": id}},
			}, nil
		},
		read: func(map[string]any, []byte) (map[string]any, []byte, error) {
			return nil, nil, nil
		},
	}
	client, _ := newTestClient(t, fake)

	_, err := client.Import(context.Background(), "dangling")
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *LookupError for unreadable import, got %v", err)
	}
}

func TestImportConflict(t *testing.T) {
	client, _ := newTestClient(t, &fakeProvider{})
	client.Restore("old-id", map[string]any{"id": "old-id"}, []byte("p"))

	_, err := client.Import(context.Background(), "new-id")
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *ConflictError, got %v", err)
	}
}

func TestReadNoopOnNullState(t *testing.T) {
	client, _ := newTestClient(t, &fakeProvider{})

	state, err := client.Read(context.Background())
	if err != nil || state != nil {
		t.Fatalf("Read on empty record: state=%v err=%v", state, err)
	}
}

func TestReadIncompleteRecord(t *testing.T) {
	client, _ := newTestClient(t, &fakeProvider{})
	client.Restore("x", map[string]any{"id": "x"}, nil)

	_, err := client.Read(context.Background())
	var incomplete *IncompleteStateError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected *IncompleteStateError, got %v", err)
	}
}

func TestReadPurgesGoneResource(t *testing.T) {
	fake := &fakeProvider{
		read: func(map[string]any, []byte) (map[string]any, []byte, error) {
			return nil, nil, nil
		},
	}
	client, store := newTestClient(t, fake)
	ctx := context.Background()

	if err := store.Save(ctx, "test-key", map[string]any{"id": "x"}, "h"); err != nil {
		t.Fatal(err)
	}
	client.Restore("x", map[string]any{"id": "x"}, []byte("p"))

	state, err := client.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	if state != nil {
		t.Errorf("gone resource must read as nil, got %v", state)
	}
	record := client.Record()
	if record.State != nil || record.Private != nil {
		t.Errorf("record not purged: %+v", record)
	}
	if envelopeExists(t, store) {
		t.Error("envelope not deleted on purge")
	}
}

func TestCreate(t *testing.T) {
	fake := &fakeProvider{
		plan: func(prior, proposed, config map[string]any) (*provider.PlanResult, error) {
			if prior != nil {
				t.Errorf("create must plan from a null prior state, got %v", prior)
			}
			if proposed["id"] != nil {
				t.Errorf("proposed state must be filled, got %v", proposed)
			}
			return &provider.PlanResult{PlannedState: proposed, PlannedPrivate: []byte("pp")}, nil
		},
		apply: func(prior, planned, config map[string]any, private []byte) (*provider.ApplyResult, error) {
			if string(private) != "pp" {
				t.Errorf("apply must use the planned private, got %q", private)
			}
			return &provider.ApplyResult{
				NewState: map[string]any{"content": "hello", "id": "new-1"},
				Private:  []byte("p1"),
			}, nil
		},
	}
	client, store := newTestClient(t, fake)

	state, err := client.Create(context.Background(), map[string]any{"content": "hello"})
	if err != nil {
		t.Fatalf("Create: %s", err)
	}
	if diff := cmp.Diff(map[string]any{"content": "hello"}, state); diff != "" {
		t.Errorf("wrong created state:\n%s", diff)
	}

	// The persisted state must be fresh for the desired config it was
	// created from.
	persisted, fresh, err := store.SafeState(context.Background(), "test-key", map[string]any{"content": "hello"})
	if err != nil || !fresh {
		t.Fatalf("SafeState: fresh=%v err=%v", fresh, err)
	}
	if persisted["id"] != "new-1" {
		t.Errorf("wrong persisted state: %v", persisted)
	}
}

func TestCreatePartialFailureCapture(t *testing.T) {
	applyErr := &provider.DiagnosticsError{
		Diagnostics: provider.Diagnostics{
			{Severity: provider.SeverityError, Summary: "creation failed halfway"},
		},
	}
	fake := &fakeProvider{
		plan: func(_, proposed, _ map[string]any) (*provider.PlanResult, error) {
			return &provider.PlanResult{PlannedState: proposed}, nil
		},
		apply: func(map[string]any, map[string]any, map[string]any, []byte) (*provider.ApplyResult, error) {
			return &provider.ApplyResult{Private: []byte("partial")}, applyErr
		},
	}
	client, _ := newTestClient(t, fake)

	_, err := client.Create(context.Background(), map[string]any{"content": "x"})
	var diagErr *provider.DiagnosticsError
	if !errors.As(err, &diagErr) {
		t.Fatalf("expected *DiagnosticsError, got %v", err)
	}
	// The partial private payload must have been captured before the
	// error was surfaced.
	if record := client.Record(); string(record.Private) != "partial" {
		t.Errorf("partial private lost: %+v", record)
	}
}

func TestCreateNullStateCleanApply(t *testing.T) {
	fake := &fakeProvider{
		plan: func(_, proposed, _ map[string]any) (*provider.PlanResult, error) {
			return &provider.PlanResult{PlannedState: proposed}, nil
		},
		apply: func(map[string]any, map[string]any, map[string]any, []byte) (*provider.ApplyResult, error) {
			return &provider.ApplyResult{Private: []byte("p")}, nil
		},
	}
	client, _ := newTestClient(t, fake)

	// A known provider quirk: clean apply, no state. Warning, not error.
	state, err := client.Create(context.Background(), map[string]any{"content": "x"})
	if err != nil {
		t.Fatalf("Create: %s", err)
	}
	if state != nil {
		t.Errorf("expected nil state, got %v", state)
	}
	if record := client.Record(); record.State != nil {
		t.Errorf("record state must stay untouched: %+v", record)
	}
}

func TestUpdateShortCircuit(t *testing.T) {
	current := map[string]any{"content": "same", "id": "x"}
	fake := &fakeProvider{
		plan: func(prior, _, _ map[string]any) (*provider.PlanResult, error) {
			// Provider plans no change.
			return &provider.PlanResult{PlannedState: prior}, nil
		},
		apply: func(map[string]any, map[string]any, map[string]any, []byte) (*provider.ApplyResult, error) {
			t.Fatal("apply must not be called when there is nothing to apply")
			return nil, nil
		},
	}
	client, _ := newTestClient(t, fake)
	client.Restore("x", current, []byte("p"))

	state, err := client.Update(context.Background(), map[string]any{"content": "same"})
	if err != nil {
		t.Fatalf("Update: %s", err)
	}
	if diff := cmp.Diff(map[string]any{"content": "same"}, state); diff != "" {
		t.Errorf("wrong state:\n%s", diff)
	}
	if fake.applyCalls != 0 {
		t.Errorf("apply called %d times", fake.applyCalls)
	}
}

func TestUpdateApplies(t *testing.T) {
	fake := &fakeProvider{
		plan: func(_, proposed, _ map[string]any) (*provider.PlanResult, error) {
			return &provider.PlanResult{
				PlannedState: map[string]any{"content": proposed["content"], "id": "x"},
			}, nil
		},
		apply: func(_, planned, _ map[string]any, _ []byte) (*provider.ApplyResult, error) {
			return &provider.ApplyResult{NewState: planned, Private: []byte("p2")}, nil
		},
	}
	client, _ := newTestClient(t, fake)
	client.Restore("x", map[string]any{"content": "old", "id": "x"}, []byte("p1"))

	state, err := client.Update(context.Background(), map[string]any{"content": "new"})
	if err != nil {
		t.Fatalf("Update: %s", err)
	}
	if diff := cmp.Diff(map[string]any{"content": "new"}, state); diff != "" {
		t.Errorf("wrong state:\n%s", diff)
	}
	if record := client.Record(); string(record.Private) != "p2" {
		t.Errorf("private not updated: %+v", record)
	}
}

func TestUpdateRequiresReplace(t *testing.T) {
	var deleted bool
	fake := &fakeProvider{}
	fake.plan = func(prior, proposed, _ map[string]any) (*provider.PlanResult, error) {
		if proposed == nil {
			// Destroy plan for the delete leg.
			return &provider.PlanResult{}, nil
		}
		if prior != nil {
			return &provider.PlanResult{
				PlannedState:    map[string]any{"content": "new", "id": "x"},
				RequiresReplace: true,
			}, nil
		}
		// Create leg.
		return &provider.PlanResult{PlannedState: proposed}, nil
	}
	fake.apply = func(prior, planned, _ map[string]any, _ []byte) (*provider.ApplyResult, error) {
		if planned == nil {
			deleted = true
			return &provider.ApplyResult{}, nil
		}
		if !deleted {
			t.Error("create leg ran before delete leg")
		}
		return &provider.ApplyResult{
			NewState: map[string]any{"content": "new", "id": "x2"},
			Private:  []byte("p2"),
		}, nil
	}
	client, _ := newTestClient(t, fake)
	client.Restore("x", map[string]any{"content": "old", "id": "x"}, []byte("p1"))

	state, err := client.Update(context.Background(), map[string]any{"content": "new"})
	if err != nil {
		t.Fatalf("Update: %s", err)
	}
	if !deleted {
		t.Error("replacement must delete first")
	}
	if diff := cmp.Diff(map[string]any{"content": "new"}, state); diff != "" {
		t.Errorf("wrong state:\n%s", diff)
	}
}

func TestUpdateNullStateCleanApply(t *testing.T) {
	fake := &fakeProvider{
		plan: func(_, proposed, _ map[string]any) (*provider.PlanResult, error) {
			return &provider.PlanResult{PlannedState: map[string]any{"content": "new", "id": "x"}}, nil
		},
		apply: func(map[string]any, map[string]any, map[string]any, []byte) (*provider.ApplyResult, error) {
			return &provider.ApplyResult{Private: []byte("p")}, nil
		},
	}
	client, _ := newTestClient(t, fake)
	client.Restore("x", map[string]any{"content": "old", "id": "x"}, []byte("p1"))

	_, err := client.Update(context.Background(), map[string]any{"content": "new"})
	var formatErr *provider.ResponseFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("a successful update with no state must be a *ResponseFormatError, got %v", err)
	}
}

func TestDeletePurges(t *testing.T) {
	fake := &fakeProvider{
		plan: func(_, proposed, config map[string]any) (*provider.PlanResult, error) {
			if proposed != nil {
				t.Errorf("delete must plan a null proposed state, got %v", proposed)
			}
			if len(config) != 0 {
				t.Errorf("delete must plan with an empty config, got %v", config)
			}
			return &provider.PlanResult{}, nil
		},
		apply: func(map[string]any, map[string]any, map[string]any, []byte) (*provider.ApplyResult, error) {
			return &provider.ApplyResult{}, nil
		},
	}
	client, store := newTestClient(t, fake)
	ctx := context.Background()

	if err := store.Save(ctx, "test-key", map[string]any{"id": "x"}, "h"); err != nil {
		t.Fatal(err)
	}
	client.Restore("x", map[string]any{"id": "x"}, []byte("p"))

	if err := client.Delete(ctx); err != nil {
		t.Fatalf("Delete: %s", err)
	}
	record := client.Record()
	if record.State != nil || record.Private != nil {
		t.Errorf("record not purged: %+v", record)
	}
	if envelopeExists(t, store) {
		t.Error("envelope not deleted")
	}
}

func TestLoadResumesFromStore(t *testing.T) {
	fake := &fakeProvider{
		read: func(state map[string]any, private []byte) (map[string]any, []byte, error) {
			if string(private) != "p1" {
				t.Errorf("read must use the persisted private, got %q", private)
			}
			return state, private, nil
		},
	}
	client, store := newTestClient(t, fake)
	ctx := context.Background()

	if err := store.Save(ctx, "test-key", map[string]any{"content": "x", "id": "1"}, "h"); err != nil {
		t.Fatal(err)
	}
	if err := store.SavePrivate(ctx, "test-key", []byte("p1")); err != nil {
		t.Fatal(err)
	}

	// A fresh client in a fresh process picks up where the last one left.
	if err := client.Load(ctx); err != nil {
		t.Fatalf("Load: %s", err)
	}
	state, err := client.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	if diff := cmp.Diff(map[string]any{"content": "x"}, state); diff != "" {
		t.Errorf("wrong state:\n%s", diff)
	}
}

func TestDeleteDiagnosticsSkipPurge(t *testing.T) {
	applyErr := &provider.DiagnosticsError{
		Diagnostics: provider.Diagnostics{
			{Severity: provider.SeverityError, Summary: "still in use"},
		},
	}
	fake := &fakeProvider{
		plan: func(map[string]any, map[string]any, map[string]any) (*provider.PlanResult, error) {
			return &provider.PlanResult{}, nil
		},
		apply: func(map[string]any, map[string]any, map[string]any, []byte) (*provider.ApplyResult, error) {
			return &provider.ApplyResult{}, applyErr
		},
	}
	client, _ := newTestClient(t, fake)
	client.Restore("x", map[string]any{"id": "x"}, []byte("p"))

	if err := client.Delete(context.Background()); err == nil {
		t.Fatal("expected delete error")
	}
	if record := client.Record(); record.State == nil {
		t.Error("failed delete must not purge the record")
	}
}
