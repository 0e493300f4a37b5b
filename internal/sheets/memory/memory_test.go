package memory

import (
	"context"
	"reflect"
	"testing"

	"fishlog/internal/core"
)

func TestMirrorAppendIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := New()

	first := core.CatchRecord{ID: 2, Species: "Perch", Catcher: "Alice"}
	if err := m.AppendCatch(ctx, first); err != nil {
		t.Fatalf("AppendCatch: %v", err)
	}
	if err := m.AppendCatch(ctx, core.CatchRecord{ID: 2, Species: "Pike"}); err != nil {
		t.Fatalf("AppendCatch: %v", err)
	}
	got, ok := m.Get(2)
	if !ok || got.Species != "Perch" {
		t.Fatalf("second append should not overwrite, got %+v", got)
	}
}

func TestMirrorDeleteAndList(t *testing.T) {
	ctx := context.Background()
	m := New()
	for _, id := range []int64{5, 1, 3} {
		_ = m.AppendCatch(ctx, core.CatchRecord{ID: id})
	}

	if err := m.DeleteCatch(ctx, 3); err != nil {
		t.Fatalf("DeleteCatch: %v", err)
	}
	if err := m.DeleteCatch(ctx, 42); err != nil {
		t.Fatalf("deleting a missing id should be a no-op: %v", err)
	}

	ids, err := m.MirroredIDs(ctx)
	if err != nil {
		t.Fatalf("MirroredIDs: %v", err)
	}
	if want := []int64{1, 5}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("MirroredIDs = %v, want %v", ids, want)
	}
}
