package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/jamble/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
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
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("second DestroyEntity should return false")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("recycled entity must differ from the stale handle")
	}
	if Has(w, fresh, h.Kind()) {
		t.Fatalf("components must not leak into a recycled slot")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestSparseWorldComponents(t *testing.T) {
	w := NewWorld()
	hi := component.NewComponent[int]("int")
	hs := component.NewComponent[string]("string")

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, hi.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, hi.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				if Has(w, e2, hi.Kind()) {
					t.Fatalf("e2 should not have int")
				}
			},
		},
		{
			name: "replace_keeps_single_entry",
			setup: func() error {
				return Add(w, e1, hi.Kind(), intPtr(11))
			},
			check: func(t *testing.T) {
				if Count(w, hi.Kind()) != 1 {
					t.Fatalf("expected 1 int component, got %d", Count(w, hi.Kind()))
				}
				v, _ := Get(w, e1, hi.Kind())
				if *v != 11 {
					t.Fatalf("expected replaced value 11, got %d", *v)
				}
			},
		},
		{
			name: "strings_on_both",
			setup: func() error {
				if err := Add(w, e1, hs.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, hs.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				v, ok := Get(w, e2, hs.Kind())
				if !ok || *v != "b" {
					t.Fatalf("expected b, got %v", v)
				}
			},
		},
		{
			name: "remove_swaps_last",
			setup: func() error {
				if !Remove(w, e1, hs.Kind()) {
					return errors.New("remove failed")
				}
				return nil
			},
			check: func(t *testing.T) {
				if Has(w, e1, hs.Kind()) {
					t.Fatalf("e1 string should be gone")
				}
				v, ok := Get(w, e2, hs.Kind())
				if !ok || *v != "b" {
					t.Fatalf("e2 string should survive the swap, got %v", v)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	var zero component.ComponentKind[int]
	if err := Add(w, e, zero, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	h := component.NewComponent[int]("int")
	if err := Add(w, e, h.Kind(), nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add e1: %v", err)
	}
	if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
		t.Fatalf("add e3: %v", err)
	}

	seen := map[Entity]int{}
	ForEach(w, h.Kind(), func(e Entity, v *int) {
		seen[e] = *v
		*v *= 10
	})
	if len(seen) != 2 || seen[e1] != 1 || seen[e3] != 3 {
		t.Fatalf("unexpected ForEach result %v", seen)
	}
	if _, ok := seen[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
	if v, _ := Get(w, e3, h.Kind()); *v != 30 {
		t.Fatalf("ForEach should hand out live pointers, got %d", *v)
	}

	// destroying during iteration is safe
	ForEach(w, h.Kind(), func(e Entity, _ *int) { DestroyEntity(w, e) })
	if Count(w, h.Kind()) != 0 {
		t.Fatalf("expected empty store, got %d", Count(w, h.Kind()))
	}
}

func TestForEach2(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponent[int]("int").Kind()
	kb := component.NewComponent[string]("string").Kind()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e2, kb, stringPtr("two"))
	_ = Add(w, e3, kb, stringPtr("three"))

	var res []Entity
	ForEach2(w, ka, kb, func(e Entity, a *int, b *string) {
		if *a != 2 || *b != "two" {
			t.Fatalf("unexpected pair %d %q", *a, *b)
		}
		res = append(res, e)
	})
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("expected only e2, got %v", res)
	}
}

type countingSystem struct{ calls []float64 }

func (s *countingSystem) Update(_ *World, dt float64) { s.calls = append(s.calls, dt) }

func TestScheduler(t *testing.T) {
	a, b := &countingSystem{}, &countingSystem{}
	s := NewScheduler(a, nil)
	s.Add(b)
	s.Add(nil)
	if len(s.Systems()) != 2 {
		t.Fatalf("nil systems must be skipped, got %d", len(s.Systems()))
	}
	s.Update(NewWorld(), 0.5)
	if len(a.calls) != 1 || a.calls[0] != 0.5 || len(b.calls) != 1 {
		t.Fatalf("expected one update each, got %v %v", a.calls, b.calls)
	}
}
