// Package pedigree defines the in-memory family-tree data model.
//
// A [Store] holds persons and family (union) records keyed by identifier and
// exposes the relationship lookups the analysis packages build on: parents,
// children, siblings, and spouses. Stores are built once by an ingester (see
// pkg/gedcom) and are read-only afterwards, so concurrent readers need no
// locking.
package pedigree

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrInvalidID is returned by [Store.AddPerson] and [Store.AddFamily]
	// when the record identifier is empty.
	ErrInvalidID = errors.New("record ID must not be empty")

	// ErrDuplicateID is returned by [Store.AddPerson] and [Store.AddFamily]
	// when a record with the same ID already exists.
	ErrDuplicateID = errors.New("duplicate record ID")
)

// Store is the pedigree store: all persons and families of one loaded tree.
//
// The zero value is not usable - use New. Store is safe for concurrent
// readers once fully built; it is not safe to mutate concurrently.
type Store struct {
	persons  map[string]*Person
	families map[string]*Family
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		persons:  make(map[string]*Person),
		families: make(map[string]*Family),
	}
}

// AddPerson adds a person record. Returns ErrInvalidID for an empty ID or
// ErrDuplicateID if the ID is already taken.
func (s *Store) AddPerson(p *Person) error {
	if p.ID == "" {
		return ErrInvalidID
	}
	if _, exists := s.persons[p.ID]; exists {
		return ErrDuplicateID
	}
	s.persons[p.ID] = p
	return nil
}

// AddFamily adds a family record. Returns ErrInvalidID for an empty ID or
// ErrDuplicateID if the ID is already taken.
func (s *Store) AddFamily(f *Family) error {
	if f.ID == "" {
		return ErrInvalidID
	}
	if _, exists := s.families[f.ID]; exists {
		return ErrDuplicateID
	}
	s.families[f.ID] = f
	return nil
}

// Person returns the person with the given ID, or nil if not found.
func (s *Store) Person(id string) *Person { return s.persons[id] }

// Family returns the family with the given ID, or nil if not found.
func (s *Store) Family(id string) *Family { return s.families[id] }

// PersonCount returns the number of persons in the store.
func (s *Store) PersonCount() int { return len(s.persons) }

// FamilyCount returns the number of families in the store.
func (s *Store) FamilyCount() int { return len(s.families) }

// PersonIDs returns all person IDs in sorted order. Sorting keeps
// whole-tree reports deterministic across runs.
func (s *Store) PersonIDs() []string {
	return slices.Sorted(maps.Keys(s.persons))
}

// FamilyIDs returns all family IDs in sorted order.
func (s *Store) FamilyIDs() []string {
	return slices.Sorted(maps.Keys(s.families))
}

// Parents returns the father and mother of the person with the given ID.
// Either may be nil: a person with a single known parent contributes only
// that side, and a person outside any family has neither.
func (s *Store) Parents(id string) (father, mother *Person) {
	p := s.persons[id]
	if p == nil || p.ChildIn == "" {
		return nil, nil
	}
	fam := s.families[p.ChildIn]
	if fam == nil {
		return nil, nil
	}
	return s.persons[fam.Father], s.persons[fam.Mother]
}

// Children returns every child of the person across all unions the person
// participates in as a parent. Children are returned in record order.
func (s *Store) Children(id string) []*Person {
	p := s.persons[id]
	if p == nil {
		return nil
	}
	var children []*Person
	for _, famID := range p.SpouseIn {
		fam := s.families[famID]
		if fam == nil {
			continue
		}
		for _, childID := range fam.Children {
			if child := s.persons[childID]; child != nil {
				children = append(children, child)
			}
		}
	}
	return children
}

// Siblings returns the other children of the person's child-family.
func (s *Store) Siblings(id string) []*Person {
	p := s.persons[id]
	if p == nil || p.ChildIn == "" {
		return nil
	}
	fam := s.families[p.ChildIn]
	if fam == nil {
		return nil
	}
	var siblings []*Person
	for _, childID := range fam.Children {
		if childID == id {
			continue
		}
		if sib := s.persons[childID]; sib != nil {
			siblings = append(siblings, sib)
		}
	}
	return siblings
}

// Spouses returns the partners of the person across all unions.
func (s *Store) Spouses(id string) []*Person {
	p := s.persons[id]
	if p == nil {
		return nil
	}
	var spouses []*Person
	for _, famID := range p.SpouseIn {
		fam := s.families[famID]
		if fam == nil {
			continue
		}
		other := fam.Father
		if other == id {
			other = fam.Mother
		}
		if other == "" || other == id {
			continue
		}
		if sp := s.persons[other]; sp != nil {
			spouses = append(spouses, sp)
		}
	}
	return spouses
}

// FindByName returns all persons whose full name contains the query,
// case-insensitively, in sorted ID order.
func (s *Store) FindByName(query string) []*Person {
	query = strings.ToLower(query)
	var matches []*Person
	for _, id := range s.PersonIDs() {
		p := s.persons[id]
		if strings.Contains(strings.ToLower(p.Name), query) {
			matches = append(matches, p)
		}
	}
	return matches
}
