package task

import (
	"math/rand"
	"testing"

	"github.com/Makepad-fr/tada/internal/model"
)

type rename struct{ ID int64 }

func (rename) Kind() string { return "rename" }

func sample() model.List {
	return model.List{
		{ID: 30, Title: "c", Completed: true},
		{ID: 20, Title: "b"},
		{ID: 10, Title: "a"},
	}
}

func TestAddOnEmptyList(t *testing.T) {
	got := Reduce(nil, Add{ID: 1, Title: "Buy milk"})
	want := model.List{{ID: 1, Title: "Buy milk", Completed: false}}
	if !got.Equal(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAddPrependsAndKeepsOrder(t *testing.T) {
	before := sample()
	got := Reduce(before, Add{ID: 99, Title: "  new  "})

	if len(got) != len(before)+1 {
		t.Fatalf("len = %d, want %d", len(got), len(before)+1)
	}
	if got[0] != (model.Task{ID: 99, Title: "new"}) {
		t.Errorf("head = %+v", got[0])
	}
	if !got[1:].Equal(before) {
		t.Errorf("existing tasks changed: %+v", got[1:])
	}
	if !before.Equal(sample()) {
		t.Error("Reduce modified its input")
	}
}

func TestAddRejected(t *testing.T) {
	tests := []struct {
		name string
		add  Add
	}{
		{"empty title", Add{ID: 1, Title: ""}},
		{"blank title", Add{ID: 1, Title: "   "}},
		{"duplicate id", Add{ID: 20, Title: "dup"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(sample(), tt.add)
			if !got.Equal(sample()) {
				t.Errorf("list changed: %+v", got)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	got := Reduce(model.List{{ID: 1, Title: "x"}, {ID: 2, Title: "y"}}, Delete{ID: 1})
	want := model.List{{ID: 2, Title: "y"}}
	if !got.Equal(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	mid := Reduce(sample(), Delete{ID: 20})
	if !mid.Equal(model.List{{ID: 30, Title: "c", Completed: true}, {ID: 10, Title: "a"}}) {
		t.Errorf("delete middle: %+v", mid)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	once := Reduce(sample(), Delete{ID: 30})
	twice := Reduce(once, Delete{ID: 30})
	if !once.Equal(twice) {
		t.Errorf("once %+v, twice %+v", once, twice)
	}
}

func TestUpdateTitle(t *testing.T) {
	got := Reduce(model.List{{ID: 1, Title: "x"}}, UpdateTitle{ID: 1, Title: "z"})
	if !got.Equal(model.List{{ID: 1, Title: "z"}}) {
		t.Fatalf("got %+v", got)
	}

	before := sample()
	got = Reduce(before, UpdateTitle{ID: 30, Title: " renamed "})
	want := model.List{
		{ID: 30, Title: "renamed", Completed: true},
		{ID: 20, Title: "b"},
		{ID: 10, Title: "a"},
	}
	if !got.Equal(want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if before[0].Title != "c" {
		t.Error("Reduce modified its input")
	}
}

func TestNoOpTransitions(t *testing.T) {
	tests := []struct {
		name string
		tr   Transition
	}{
		{"delete unknown", Delete{ID: 404}},
		{"update unknown", UpdateTitle{ID: 404, Title: "x"}},
		{"update blank", UpdateTitle{ID: 20, Title: "  "}},
		{"unrecognized", rename{ID: 20}},
		{"nil pointer", (*Delete)(nil)},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reduce(sample(), tt.tr); !got.Equal(sample()) {
				t.Errorf("list changed: %+v", got)
			}
		})
	}
}

func TestPointerTransitions(t *testing.T) {
	got := Reduce(sample(), &Delete{ID: 10})
	if len(got) != 2 || got.Has(10) {
		t.Errorf("pointer delete: %+v", got)
	}
	got = Reduce(got, &UpdateTitle{ID: 20, Title: "bb"})
	if tk, _ := got.Find(20); tk.Title != "bb" {
		t.Errorf("pointer update: %+v", got)
	}
	got = Reduce(got, &Add{ID: 5, Title: "e"})
	if got[0].ID != 5 {
		t.Errorf("pointer add: %+v", got)
	}
}

// Random walks over valid transitions must keep ids unique and only ever
// touch the targeted task.
func TestRandomWalkKeepsListConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	gen := NewIDGen(nil)
	var l model.List

	for step := 0; step < 500; step++ {
		before := l
		switch op := rng.Intn(3); {
		case op == 0 || len(l) == 0:
			l = Reduce(l, Add{ID: gen.Next(l), Title: "t"})
			if len(l) != len(before)+1 || l[0].Completed {
				t.Fatalf("step %d: bad add", step)
			}
		case op == 1:
			id := l[rng.Intn(len(l))].ID
			l = Reduce(l, Delete{ID: id})
			if len(l) != len(before)-1 || l.Has(id) {
				t.Fatalf("step %d: bad delete of %d", step, id)
			}
		default:
			i := rng.Intn(len(l))
			l = Reduce(l, UpdateTitle{ID: l[i].ID, Title: "u"})
			for j := range l {
				if j == i {
					if l[j].ID != before[j].ID || l[j].Completed != before[j].Completed || l[j].Title != "u" {
						t.Fatalf("step %d: bad update %+v", step, l[j])
					}
				} else if l[j] != before[j] {
					t.Fatalf("step %d: update touched index %d", step, j)
				}
			}
		}

		seen := make(map[int64]bool, len(l))
		for _, tk := range l {
			if seen[tk.ID] {
				t.Fatalf("step %d: duplicate id %d", step, tk.ID)
			}
			seen[tk.ID] = true
		}
	}
}
