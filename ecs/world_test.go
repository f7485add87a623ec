package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/modelviewer/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
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
			dead := ents[c.destroyIndex]
			if !DestroyEntity(w, dead) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, dead) || DestroyEntity(w, dead) {
				t.Fatalf("entity should be dead exactly once")
			}

			reused := CreateEntity(w)
			if reused.id() != dead.id() || reused == dead {
				t.Fatalf("expected slot %d reused with a new generation, got %v", dead.id(), reused)
			}
		})
	}
}

func TestComponentsAndErrors(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := CreateEntity(w)

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"add", func() error { return Add(w, e, h.Kind(), intPtr(10)) }, nil},
		{"nil_value", func() error { return Add[int](w, e, h.Kind(), nil) }, component.ErrNilComponent},
		{"invalid_kind", func() error { return Add(w, e, component.ComponentKind[int]{}, intPtr(1)) }, component.ErrInvalidComponentKind},
		{"dead_entity", func() error { return Add(w, Entity(0), h.Kind(), intPtr(1)) }, component.ErrEntityNotAlive},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	v, ok := Get(w, e, h.Kind())
	if !ok || *v != 10 {
		t.Fatalf("expected 10, got %v ok=%v", v, ok)
	}
	*v = 11
	if v2, _ := Get(w, e, h.Kind()); *v2 != 11 {
		t.Fatalf("Get should return the stored pointer")
	}

	DestroyEntity(w, e)
	if Has(w, e, h.Kind()) {
		t.Fatalf("components should go with the entity")
	}
}

func TestForEachAscending(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	// Insert out of order; iteration follows entity order.
	for _, e := range []Entity{e3, e1} {
		if err := Add(w, e, h.Kind(), intPtr(int(e.id()))); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	var ents []Entity
	ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
	if len(ents) != 2 || ents[0] != e1 || ents[1] != e3 {
		t.Fatalf("got %v, want [%v %v] (not %v)", ents, e1, e3, e2)
	}

	if first, ok := w.First(h.Kind()); !ok || first != e1 {
		t.Fatalf("First = %v, %v", first, ok)
	}
}

func TestForEachToleratesAddDuringIteration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	for i := 0; i < 3; i++ {
		_ = Add(w, CreateEntity(w), h.Kind(), intPtr(i))
	}

	visited := 0
	ForEach(w, h.Kind(), func(Entity, *int) {
		visited++
		_ = Add(w, CreateEntity(w), h.Kind(), intPtr(99))
	})
	if visited != 3 {
		t.Fatalf("visited %d, want the 3 entities present at the start", visited)
	}
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e1, ka, intPtr(1))
				_ = Add(w, e2, ka, intPtr(2))
				_ = Add(w, e2, kb, intPtr(3))
				_ = Add(w, e2, kc, intPtr(5))
				_ = Add(w, e3, kb, intPtr(4))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				_ = Add(w, e, ka, intPtr(1))
				_ = Add(w, e, kb, intPtr(2))
				_ = Add(w, e, kc, intPtr(3))
				DestroyEntity(w, e)

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				ka := component.NewComponentKind[int]()
				_ = Add(w, e, ka, intPtr(1))

				var res []Entity
				ForEach3(w, ka, component.NewComponentKind[int](), component.NewComponentKind[int](), func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

type recordSystem struct {
	name string
	log  *[]string
	emit bool
}

func (s recordSystem) Update(w *World) {
	*s.log = append(*s.log, s.name)
	if s.emit {
		w.Events().Push(Event{Type: "ping"})
	}
	if n := len(w.Events().Peek("ping")); n > 0 {
		*s.log = append(*s.log, s.name+":saw")
	}
}

func TestSchedulerOrderAndEvents(t *testing.T) {
	w := NewWorld()
	var log []string
	w.AddSystem(recordSystem{name: "a", log: &log})
	w.AddSystem(recordSystem{name: "b", log: &log, emit: true})
	w.AddSystem(recordSystem{name: "c", log: &log})

	w.Update()
	want := []string{"a", "b", "b:saw", "c", "c:saw"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
	if len(w.Events().Peek("ping")) != 0 {
		t.Fatalf("events should not survive the tick")
	}
}

func TestComponentIDString(t *testing.T) {
	k := component.NewComponentKind[int]()
	if k.String() != "int" {
		t.Fatalf("String() = %q", k.String())
	}
}
