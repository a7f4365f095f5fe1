package ticket

import (
	"cmp"
	"slices"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps "desc" (any case) to Desc and everything else to Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Invert returns the opposite direction.
func (d Direction) Invert() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// SortState is the active sort of a Store. A zero Field means unsorted.
type SortState struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Compare returns -1, 0 or +1 comparing a and b on field.
//
// Priority compares by rank (High > Medium > Low > anything else). Every
// other field compares the raw strings, so dates only order
// chronologically when written as zero-padded ISO dates.
func Compare(a, b Ticket, field string) int {
	if field == FieldPriority {
		return cmp.Compare(PriorityRank(a.Priority), PriorityRank(b.Priority))
	}
	return strings.Compare(a.Get(field), b.Get(field))
}

// SortStable orders tickets in place on field. Ties keep their relative
// input order in both directions.
func SortStable(tickets []Ticket, field string, dir Direction) {
	slices.SortStableFunc(tickets, func(a, b Ticket) int {
		c := Compare(a, b, field)
		if dir == Desc {
			return -c
		}
		return c
	})
}

// Sorted returns a sorted copy, leaving tickets untouched.
func Sorted(tickets []Ticket, field string, dir Direction) []Ticket {
	out := slices.Clone(tickets)
	SortStable(out, field, dir)
	return out
}
