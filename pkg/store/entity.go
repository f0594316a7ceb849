package store

import (
	"maps"
	"slices"
)

// EntityState is a normalized collection: IDs keeps insertion (or sort)
// order, Entities maps each ID to its record. Adapter operations never
// modify an EntityState in place; they return a new one.
type EntityState[ID comparable, T any] struct {
	IDs      []ID
	Entities map[ID]T
}

// Update describes a change to one entity.
type Update[ID comparable, T any] struct {
	ID    ID
	Apply func(T) T
}

// EntityAdapter implements the normalized collection operations for one
// entity type.
type EntityAdapter[ID comparable, T any] struct {
	selectID func(T) ID
	compare  func(a, b T) int
}

// NewEntityAdapter returns an adapter keyed by selectID. With a nil
// compare, IDs keep insertion order.
func NewEntityAdapter[ID comparable, T any](selectID func(T) ID, compare func(a, b T) int) EntityAdapter[ID, T] {
	return EntityAdapter[ID, T]{selectID: selectID, compare: compare}
}

// InitialState returns an empty collection.
func (a EntityAdapter[ID, T]) InitialState() EntityState[ID, T] {
	return EntityState[ID, T]{IDs: []ID{}, Entities: map[ID]T{}}
}

func (a EntityAdapter[ID, T]) clone(s EntityState[ID, T]) EntityState[ID, T] {
	next := EntityState[ID, T]{
		IDs:      slices.Clone(s.IDs),
		Entities: maps.Clone(s.Entities),
	}
	if next.Entities == nil {
		next.Entities = map[ID]T{}
	}
	if next.IDs == nil {
		next.IDs = []ID{}
	}
	return next
}

func (a EntityAdapter[ID, T]) sorted(s EntityState[ID, T]) EntityState[ID, T] {
	if a.compare != nil {
		slices.SortStableFunc(s.IDs, func(x, y ID) int {
			return a.compare(s.Entities[x], s.Entities[y])
		})
	}
	return s
}

// AddOne adds entity unless its ID is already present.
func (a EntityAdapter[ID, T]) AddOne(s EntityState[ID, T], entity T) EntityState[ID, T] {
	return a.AddMany(s, []T{entity})
}

// AddMany adds every entity whose ID is not already present.
func (a EntityAdapter[ID, T]) AddMany(s EntityState[ID, T], entities []T) EntityState[ID, T] {
	next := a.clone(s)
	added := false
	for _, e := range entities {
		id := a.selectID(e)
		if _, ok := next.Entities[id]; ok {
			continue
		}
		next.Entities[id] = e
		next.IDs = append(next.IDs, id)
		added = true
	}
	if !added {
		return s
	}
	return a.sorted(next)
}

// SetAll replaces the collection with entities.
func (a EntityAdapter[ID, T]) SetAll(_ EntityState[ID, T], entities []T) EntityState[ID, T] {
	return a.AddMany(a.InitialState(), entities)
}

// RemoveOne removes the entity with id, if present.
func (a EntityAdapter[ID, T]) RemoveOne(s EntityState[ID, T], id ID) EntityState[ID, T] {
	if _, ok := s.Entities[id]; !ok {
		return s
	}
	next := a.clone(s)
	delete(next.Entities, id)
	next.IDs = slices.DeleteFunc(next.IDs, func(x ID) bool { return x == id })
	return next
}

// UpdateOne applies u to the entity with u.ID, if present. If the update
// changes the entity's ID, the entity moves to the new ID.
func (a EntityAdapter[ID, T]) UpdateOne(s EntityState[ID, T], u Update[ID, T]) EntityState[ID, T] {
	current, ok := s.Entities[u.ID]
	if !ok || u.Apply == nil {
		return s
	}
	next := a.clone(s)
	updated := u.Apply(current)
	newID := a.selectID(updated)
	if newID != u.ID {
		delete(next.Entities, u.ID)
		for i, x := range next.IDs {
			if x == u.ID {
				next.IDs[i] = newID
			}
		}
	}
	next.Entities[newID] = updated
	return a.sorted(next)
}

// UpsertOne adds entity or replaces the existing record with its ID.
func (a EntityAdapter[ID, T]) UpsertOne(s EntityState[ID, T], entity T) EntityState[ID, T] {
	id := a.selectID(entity)
	if _, ok := s.Entities[id]; !ok {
		return a.AddOne(s, entity)
	}
	next := a.clone(s)
	next.Entities[id] = entity
	return a.sorted(next)
}

// SelectAll returns the entities in ID order.
func (a EntityAdapter[ID, T]) SelectAll(s EntityState[ID, T]) []T {
	all := make([]T, 0, len(s.IDs))
	for _, id := range s.IDs {
		all = append(all, s.Entities[id])
	}
	return all
}

// SelectByID returns the entity with id.
func (a EntityAdapter[ID, T]) SelectByID(s EntityState[ID, T], id ID) (T, bool) {
	e, ok := s.Entities[id]
	return e, ok
}

// Total returns the number of entities.
func (a EntityAdapter[ID, T]) Total(s EntityState[ID, T]) int {
	return len(s.IDs)
}
