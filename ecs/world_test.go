package ecs

import (
	"testing"

	"github.com/hollis909/ledgerunner/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if len(w.Entities()) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(w.Entities()))
				}
			}
		})
	}
}

func TestWorldStaleHandle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e := w.CreateEntity()
	if err := Add(w, e, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !w.DestroyEntity(e) {
		t.Fatalf("destroy should succeed")
	}

	// The recycled slot must not resurrect the old handle.
	e2 := w.CreateEntity()
	if e == e2 {
		t.Fatalf("recycled entity should differ in generation")
	}
	if w.IsAlive(e) {
		t.Fatalf("stale handle should be dead")
	}
	if _, ok := Get(w, e, h.Kind()); ok {
		t.Fatalf("stale handle should not reach components")
	}
	if Has(w, e2, h.Kind()) {
		t.Fatalf("recycled entity should start with no components")
	}
}

func TestWorldAddErrors(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	dead := w.CreateEntity()
	w.DestroyEntity(dead)

	if err := Add(w, dead, h.Kind(), intPtr(1)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	e := w.CreateEntity()
	if err := Add[int](w, e, h.Kind(), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	if err := w.AddComponent(e, 0, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
}

func TestWorldQuery(t *testing.T) {
	w := NewWorld()
	hi := component.NewComponent[int]()
	hs := component.NewComponent[string]()

	both := w.CreateEntity()
	onlyInt := w.CreateEntity()
	if err := Add(w, both, hi.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := Add(w, both, hs.Kind(), stringPtr("a")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := Add(w, onlyInt, hi.Kind(), intPtr(2)); err != nil {
		t.Fatalf("add: %v", err)
	}

	got := w.Query(hi.Kind(), hs.Kind())
	if len(got) != 1 || got[0] != both {
		t.Fatalf("expected only %v, got %v", both, got)
	}

	if got := w.Query(hi.Kind()); len(got) != 2 {
		t.Fatalf("expected 2 int holders, got %v", got)
	}

	// Destroyed entities drop out of queries without explicit removal.
	w.DestroyEntity(both)
	if got := w.Query(hi.Kind(), hs.Kind()); len(got) != 0 {
		t.Fatalf("expected empty query after destroy, got %v", got)
	}
}

func TestWorldForEachMutation(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	for i := 0; i < 3; i++ {
		e := w.CreateEntity()
		if err := Add(w, e, h.Kind(), intPtr(i)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	// Destroying the visited entity mid-iteration must not skip or panic.
	visited := 0
	ForEach(w, h.Kind(), func(e Entity, v *int) {
		visited++
		w.DestroyEntity(e)
	})
	if visited != 3 {
		t.Fatalf("expected 3 visits, got %d", visited)
	}
	if len(w.Entities()) != 0 {
		t.Fatalf("expected empty world, got %d entities", len(w.Entities()))
	}
}
