// Package storagetest holds the behavior every catch store backend must share.
package storagetest

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"fishlog/internal/core"
	"fishlog/internal/storage"
)

// Catch returns a complete catch for the given catcher and bait.
func Catch(catcher, bait string) core.NewCatch {
	w := 1.25
	return core.NewCatch{
		Species:     "Perch",
		Weight:      &w,
		Bait:        bait,
		Location:    "Pier",
		DateOfCatch: "2024-05-12",
		TimeOfCatch: "07:15",
		Catcher:     catcher,
		ImageRef:    "https://example.com/perch.jpg",
	}
}

// Run exercises a fresh store returned by open for each subtest.
func Run(t *testing.T, open func(t *testing.T) storage.CatchStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		s := open(t)
		got, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("create then list", func(t *testing.T) {
		s := open(t)
		in := Catch("Alice", "Worm")
		id, err := s.Create(ctx, in)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got))
		}
		if want := in.Record(id); !reflect.DeepEqual(got[0], want) {
			t.Fatalf("stored record = %+v, want %+v", got[0], want)
		}
	})

	t.Run("optional fields absent", func(t *testing.T) {
		s := open(t)
		in := Catch("Bob", "Fly")
		in.Weight = nil
		in.ImageRef = ""
		id, err := s.Create(ctx, in)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := s.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Weight != nil || got.ImageRef != "" {
			t.Fatalf("expected absent optionals, got %+v", got)
		}
	})

	t.Run("ids strictly increase", func(t *testing.T) {
		s := open(t)
		var last int64
		for i := 0; i < 5; i++ {
			id, err := s.Create(ctx, Catch("Alice", "Worm"))
			if err != nil {
				t.Fatalf("Create #%d: %v", i, err)
			}
			if id <= last {
				t.Fatalf("id %d not greater than %d", id, last)
			}
			last = id
		}
		got, _ := s.ListAll(ctx)
		for i := 1; i < len(got); i++ {
			if got[i].ID <= got[i-1].ID {
				t.Fatalf("list not ordered by id: %d after %d", got[i].ID, got[i-1].ID)
			}
		}
	})

	t.Run("validation error persists nothing", func(t *testing.T) {
		s := open(t)
		in := Catch("Alice", "Worm")
		in.Species = ""
		_, err := s.Create(ctx, in)
		if !errors.Is(err, core.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		got, _ := s.ListAll(ctx)
		if len(got) != 0 {
			t.Fatalf("expected 0 records, got %d", len(got))
		}
	})

	t.Run("delete removes only the target", func(t *testing.T) {
		s := open(t)
		a, _ := s.Create(ctx, Catch("Alice", "Worm"))
		b, _ := s.Create(ctx, Catch("Bob", "Spinner"))
		c, _ := s.Create(ctx, Catch("Cara", "Fly"))

		if err := s.DeleteByID(ctx, b); err != nil {
			t.Fatalf("DeleteByID: %v", err)
		}
		got, _ := s.ListAll(ctx)
		if len(got) != 2 || got[0].ID != a || got[1].ID != c {
			t.Fatalf("unexpected records after delete: %+v", got)
		}
		if _, err := s.Get(ctx, b); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for deleted id, got %v", err)
		}
	})

	t.Run("delete unknown id", func(t *testing.T) {
		s := open(t)
		id, _ := s.Create(ctx, Catch("Alice", "Worm"))
		if err := s.DeleteByID(ctx, id+1000); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		got, _ := s.ListAll(ctx)
		if len(got) != 1 || got[0].ID != id {
			t.Fatalf("store changed: %+v", got)
		}
	})

	t.Run("delete twice", func(t *testing.T) {
		s := open(t)
		id, _ := s.Create(ctx, Catch("Alice", "Worm"))
		if err := s.DeleteByID(ctx, id); err != nil {
			t.Fatalf("first delete: %v", err)
		}
		if err := s.DeleteByID(ctx, id); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("concurrent creates get distinct ids", func(t *testing.T) {
		s := open(t)
		const workers = 50

		var wg sync.WaitGroup
		ids := make([]int64, workers)
		errs := make([]error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ids[i], errs[i] = s.Create(ctx, Catch("Alice", "Worm"))
			}(i)
		}
		wg.Wait()

		seen := make(map[int64]bool, workers)
		for i, id := range ids {
			if errs[i] != nil {
				t.Fatalf("Create #%d: %v", i, errs[i])
			}
			if seen[id] {
				t.Fatalf("id %d assigned twice", id)
			}
			seen[id] = true
		}
		got, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if len(got) != workers {
			t.Fatalf("listed %d records, want %d", len(got), workers)
		}
		for _, rec := range got {
			if !seen[rec.ID] {
				t.Fatalf("listed id %d was never returned by Create", rec.ID)
			}
		}
	})

	t.Run("ids never reused", func(t *testing.T) {
		s := open(t)
		first, _ := s.Create(ctx, Catch("Alice", "Worm"))
		second, _ := s.Create(ctx, Catch("Bob", "Worm"))
		_ = s.DeleteByID(ctx, second)
		third, err := s.Create(ctx, Catch("Cara", "Worm"))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if third == first || third == second || third < second {
			t.Fatalf("id %d reused (first=%d second=%d)", third, first, second)
		}
	})
}
