package store

import (
	"cmp"
	"testing"
)

type item struct {
	ID   int
	Name string
}

func itemAdapter() EntityAdapter[int, item] {
	return NewEntityAdapter(func(i item) int { return i.ID }, nil)
}

func names(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEntityAdapter_AddOne(t *testing.T) {
	a := itemAdapter()
	s := a.InitialState()

	s1 := a.AddOne(s, item{1, "one"})
	s2 := a.AddOne(s1, item{1, "duplicate"})

	if a.Total(s) != 0 {
		t.Errorf("Expected original state untouched, got %d entities", a.Total(s))
	}
	if a.Total(s2) != 1 {
		t.Errorf("Expected 1 entity, got %d", a.Total(s2))
	}
	if got, _ := a.SelectByID(s2, 1); got.Name != "one" {
		t.Errorf("Expected existing entity kept, got %q", got.Name)
	}
}

func TestEntityAdapter_AddManyKeepsOrder(t *testing.T) {
	a := itemAdapter()
	s := a.AddMany(a.InitialState(), []item{{3, "c"}, {1, "a"}, {2, "b"}})

	if got := names(a.SelectAll(s)); !equalStrings(got, []string{"c", "a", "b"}) {
		t.Errorf("Expected insertion order [c a b], got %v", got)
	}
}

func TestEntityAdapter_SortComparer(t *testing.T) {
	a := NewEntityAdapter(func(i item) int { return i.ID }, func(x, y item) int {
		return cmp.Compare(x.Name, y.Name)
	})
	s := a.AddMany(a.InitialState(), []item{{3, "c"}, {1, "a"}, {2, "b"}})

	if got := names(a.SelectAll(s)); !equalStrings(got, []string{"a", "b", "c"}) {
		t.Errorf("Expected sorted [a b c], got %v", got)
	}
}

func TestEntityAdapter_SetAll(t *testing.T) {
	a := itemAdapter()
	s := a.AddMany(a.InitialState(), []item{{1, "a"}, {2, "b"}})
	s = a.SetAll(s, []item{{9, "z"}})

	if got := names(a.SelectAll(s)); !equalStrings(got, []string{"z"}) {
		t.Errorf("Expected [z], got %v", got)
	}
}

func TestEntityAdapter_RemoveOne(t *testing.T) {
	a := itemAdapter()
	s := a.AddMany(a.InitialState(), []item{{1, "a"}, {2, "b"}, {3, "c"}})
	removed := a.RemoveOne(s, 2)

	if got := names(a.SelectAll(removed)); !equalStrings(got, []string{"a", "c"}) {
		t.Errorf("Expected [a c], got %v", got)
	}
	if a.Total(s) != 3 {
		t.Errorf("Expected original state untouched, got %d", a.Total(s))
	}
	if same := a.RemoveOne(removed, 42); a.Total(same) != 2 {
		t.Errorf("Expected missing id to be a no-op, got %d", a.Total(same))
	}
}

func TestEntityAdapter_UpdateOne(t *testing.T) {
	a := itemAdapter()
	s := a.AddMany(a.InitialState(), []item{{1, "a"}, {2, "b"}})

	next := a.UpdateOne(s, Update[int, item]{ID: 2, Apply: func(i item) item {
		i.Name = "B"
		return i
	}})

	if got, _ := a.SelectByID(next, 2); got.Name != "B" {
		t.Errorf("Expected updated name B, got %q", got.Name)
	}
	if got, _ := a.SelectByID(s, 2); got.Name != "b" {
		t.Errorf("Expected original entity untouched, got %q", got.Name)
	}

	moved := a.UpdateOne(next, Update[int, item]{ID: 1, Apply: func(i item) item {
		i.ID = 10
		return i
	}})
	if _, ok := a.SelectByID(moved, 1); ok {
		t.Error("Expected old id to be gone")
	}
	if got, ok := a.SelectByID(moved, 10); !ok || got.Name != "a" {
		t.Errorf("Expected entity under new id, got %+v", got)
	}
	if moved.IDs[0] != 10 {
		t.Errorf("Expected new id to keep position 0, got %v", moved.IDs)
	}
}

func TestEntityAdapter_UpsertOne(t *testing.T) {
	a := itemAdapter()
	s := a.UpsertOne(a.InitialState(), item{1, "a"})
	s = a.UpsertOne(s, item{1, "A"})

	if a.Total(s) != 1 {
		t.Errorf("Expected 1 entity, got %d", a.Total(s))
	}
	if got, _ := a.SelectByID(s, 1); got.Name != "A" {
		t.Errorf("Expected replaced name A, got %q", got.Name)
	}
}
