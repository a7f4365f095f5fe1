// Package ticket holds the tabular data pipeline of the desk: the CSV
// parser, the in-memory record store, the sort engine and the serializer.
//
// Nothing in this package performs I/O or locking. Callers that share a
// Store between goroutines must serialize access themselves (see
// core.Service).
package ticket

import (
	"strconv"
	"strings"
)

// Field names as they appear in the CSV header.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldRequester   = "requester"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldDate        = "date"
	FieldAssignedTo  = "assignedTo"
	FieldDescription = "description"
	FieldProgress    = "progress"
)

// Fields is the fixed column order used when serializing.
var Fields = []string{
	FieldID,
	FieldTitle,
	FieldRequester,
	FieldStatus,
	FieldPriority,
	FieldDate,
	FieldAssignedTo,
	FieldDescription,
	FieldProgress,
}

// Priority values with a defined rank.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// priorityRank is used only for comparison; it is never stored.
var priorityRank = map[string]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// PriorityRank returns the sort rank of a priority value.
// Unrecognized values rank 0.
func PriorityRank(priority string) int {
	return priorityRank[priority]
}

// Ticket is one record of the ticket file. Every field is kept as the raw
// string read from (or written to) the file so that a round trip never
// alters a value.
type Ticket struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Requester   string `json:"requester"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Date        string `json:"date"`
	AssignedTo  string `json:"assignedTo"`
	Description string `json:"description"`
	Progress    string `json:"progress"`
}

// Get returns the value of a field by its header name.
// Unknown names return the empty string.
func (t Ticket) Get(field string) string {
	switch field {
	case FieldID:
		return t.ID
	case FieldTitle:
		return t.Title
	case FieldRequester:
		return t.Requester
	case FieldStatus:
		return t.Status
	case FieldPriority:
		return t.Priority
	case FieldDate:
		return t.Date
	case FieldAssignedTo:
		return t.AssignedTo
	case FieldDescription:
		return t.Description
	case FieldProgress:
		return t.Progress
	}
	return ""
}

// ProgressValue coerces Progress to an integer, 0 when absent or invalid.
func (t Ticket) ProgressValue() int {
	n, err := strconv.Atoi(strings.TrimSpace(t.Progress))
	if err != nil {
		return 0
	}
	return n
}

// ProgressPercent is ProgressValue clamped to [0,100] for display.
func (t Ticket) ProgressPercent() int {
	return min(max(t.ProgressValue(), 0), 100)
}

// FromRow builds a Ticket from a parsed row. Missing keys become "".
func FromRow(row Row) Ticket {
	return Ticket{
		ID:          row[FieldID],
		Title:       row[FieldTitle],
		Requester:   row[FieldRequester],
		Status:      row[FieldStatus],
		Priority:    row[FieldPriority],
		Date:        row[FieldDate],
		AssignedTo:  row[FieldAssignedTo],
		Description: row[FieldDescription],
		Progress:    row[FieldProgress],
	}
}

// Patch carries the editable fields of a ticket. Applying a patch
// overwrites all of them; identifier, title, requester and date are never
// touched.
type Patch struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assignedTo"`
	Progress    int    `json:"progress"`
}

// Apply overwrites the editable fields of t with p.
// Progress is written as given, out-of-range values included.
func (p Patch) Apply(t *Ticket) {
	t.Description = p.Description
	t.Status = p.Status
	t.Priority = p.Priority
	t.AssignedTo = p.AssignedTo
	t.Progress = strconv.Itoa(p.Progress)
}

// PatchFrom returns the patch that would leave t unchanged, progress
// coerced through ProgressValue.
func PatchFrom(t Ticket) Patch {
	return Patch{
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssignedTo:  t.AssignedTo,
		Progress:    t.ProgressValue(),
	}
}
