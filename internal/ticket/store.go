package ticket

import (
	"slices"
	"sort"
)

// FilterAll is the FilterByField value that disables filtering.
const FilterAll = "all"

// FilterValue returns v, or FilterAll when v is empty.
func FilterValue(v string) string {
	if v == "" {
		return FilterAll
	}
	return v
}

// Store holds the ticket collection and the active sort state.
//
// A Store is not safe for concurrent use.
type Store struct {
	tickets []Ticket
	sort    SortState
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Load replaces the whole collection. The sort state is kept as is and is
// not re-applied.
func (s *Store) Load(tickets []Ticket) {
	s.tickets = slices.Clone(tickets)
}

// Len returns the number of tickets held.
func (s *Store) Len() int {
	return len(s.tickets)
}

// All returns a copy of the collection in its current order.
func (s *Store) All() []Ticket {
	return slices.Clone(s.tickets)
}

// SortState returns the active sort.
func (s *Store) SortState() SortState {
	return s.sort
}

// FilterByField returns the tickets whose field equals value, in store
// order. FilterAll returns the full collection.
func (s *Store) FilterByField(field, value string) []Ticket {
	if value == FilterAll {
		return s.All()
	}

	out := make([]Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		if t.Get(field) == value {
			out = append(out, t)
		}
	}
	return out
}

// FindByID returns the first ticket with the given identifier.
func (s *Store) FindByID(id string) (Ticket, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Ticket{}, false
	}
	return s.tickets[i], true
}

// UpdateByID applies patch to the first ticket with the given identifier.
// It reports whether a ticket was found; on false nothing changed.
func (s *Store) UpdateByID(id string, patch Patch) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	patch.Apply(&s.tickets[i])
	return true
}

// SortBy reorders the collection in place and returns the new sort state.
// Asking again for the field already sorted on inverts the direction; a
// different field starts ascending.
func (s *Store) SortBy(field string) SortState {
	if field == s.sort.Field && s.sort.Field != "" {
		s.sort.Direction = s.sort.Direction.Invert()
	} else {
		s.sort = SortState{Field: field, Direction: Asc}
	}

	SortStable(s.tickets, s.sort.Field, s.sort.Direction)
	return s.sort
}

// SortTo reorders the collection on field in the given direction, without
// toggling. An empty dir means Asc.
func (s *Store) SortTo(field string, dir Direction) SortState {
	if dir == "" {
		dir = Asc
	}
	s.sort = SortState{Field: field, Direction: dir}
	SortStable(s.tickets, field, dir)
	return s.sort
}

// Statuses returns the distinct status values present, sorted.
func (s *Store) Statuses() []string {
	seen := make(map[string]bool)
	var statuses []string
	for _, t := range s.tickets {
		if t.Status == "" || seen[t.Status] {
			continue
		}
		seen[t.Status] = true
		statuses = append(statuses, t.Status)
	}
	sort.Strings(statuses)
	return statuses
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tickets, func(t Ticket) bool {
		return t.ID == id
	})
}
