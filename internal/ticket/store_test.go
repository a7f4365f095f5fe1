package ticket

import (
	"slices"
	"testing"
)

func sampleTickets() []Ticket {
	return []Ticket{
		{ID: "1", Title: "Printer", Requester: "Alice", Status: "Open", Priority: "Low", Date: "2024-01-03"},
		{ID: "2", Title: "VPN", Requester: "Bob", Status: "Closed", Priority: "High", Date: "2024-01-01"},
		{ID: "3", Title: "Mail", Requester: "Carl", Status: "Open", Priority: "Medium", Date: "2024-01-02"},
	}
}

func ids(tickets []Ticket) []string {
	out := make([]string, len(tickets))
	for i, t := range tickets {
		out[i] = t.ID
	}
	return out
}

func priorities(tickets []Ticket) []string {
	out := make([]string, len(tickets))
	for i, t := range tickets {
		out[i] = t.Priority
	}
	return out
}

// ----------------------------------------------------------------------------
// Sort Tests
// ----------------------------------------------------------------------------

func TestStore_SortByPriorityToggles(t *testing.T) {
	s := NewStore()
	s.Load(sampleTickets())

	state := s.SortBy(FieldPriority)
	if state.Direction != Asc {
		t.Errorf("first sort direction = %q, want asc", state.Direction)
	}
	if got, want := priorities(s.All()), []string{"Low", "Medium", "High"}; !slices.Equal(got, want) {
		t.Errorf("ascending = %v, want %v", got, want)
	}

	state = s.SortBy(FieldPriority)
	if state.Direction != Desc {
		t.Errorf("second sort direction = %q, want desc", state.Direction)
	}
	if got, want := priorities(s.All()), []string{"High", "Medium", "Low"}; !slices.Equal(got, want) {
		t.Errorf("descending = %v, want %v", got, want)
	}
}

func TestStore_SortByNewFieldResetsDirection(t *testing.T) {
	s := NewStore()
	s.Load(sampleTickets())

	s.SortBy(FieldDate)
	s.SortBy(FieldDate) // now desc
	state := s.SortBy(FieldTitle)

	if state.Field != FieldTitle || state.Direction != Asc {
		t.Errorf("state = %+v, want title/asc", state)
	}
	if got, want := ids(s.All()), []string{"3", "1", "2"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestStore_SortByNewFieldIgnoresPreviousDirection(t *testing.T) {
	s := NewStore()
	s.Load(sampleTickets())

	s.SortTo(FieldPriority, Desc)
	state := s.SortBy(FieldDate)

	if state.Field != FieldDate || state.Direction != Asc {
		t.Errorf("state = %+v, want date/asc", state)
	}
}

func TestStore_SortTo(t *testing.T) {
	s := NewStore()
	s.Load(sampleTickets())

	s.SortTo(FieldPriority, Desc)
	state := s.SortTo(FieldPriority, Desc)
	if state.Direction != Desc {
		t.Errorf("repeated SortTo toggled: %+v", state)
	}
	if got, want := priorities(s.All()), []string{"High", "Medium", "Low"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	if st := s.SortTo(FieldTitle, ""); st.Direction != Asc {
		t.Errorf("empty direction = %q, want asc", st.Direction)
	}
}

func TestStore_SortIsStable(t *testing.T) {
	input := []Ticket{
		{ID: "a", Status: "Open"},
		{ID: "b", Status: "Closed"},
		{ID: "c", Status: "Open"},
		{ID: "d", Status: "Closed"},
		{ID: "e", Status: "Open"},
	}

	s := NewStore()
	s.Load(input)

	s.SortBy(FieldStatus)
	if got, want := ids(s.All()), []string{"b", "d", "a", "c", "e"}; !slices.Equal(got, want) {
		t.Errorf("asc = %v, want %v", got, want)
	}

	s.SortBy(FieldStatus)
	if got, want := ids(s.All()), []string{"a", "c", "e", "b", "d"}; !slices.Equal(got, want) {
		t.Errorf("desc = %v, want %v", got, want)
	}
}

func TestStore_SortUnknownPriorityRanksLowest(t *testing.T) {
	s := NewStore()
	s.Load([]Ticket{
		{ID: "1", Priority: "Low"},
		{ID: "2", Priority: "Whenever"},
		{ID: "3", Priority: "High"},
	})

	s.SortBy(FieldPriority)
	if got, want := ids(s.All()), []string{"2", "1", "3"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestStore_SortDatesLexicographic(t *testing.T) {
	s := NewStore()
	s.Load([]Ticket{
		{ID: "1", Date: "9/1/2024"},
		{ID: "2", Date: "10/1/2024"},
	})

	s.SortBy(FieldDate)
	// "10/..." < "9/..." as strings.
	if got, want := ids(s.All()), []string{"2", "1"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestStore_SortVisibleToFilter(t *testing.T) {
	s := NewStore()
	s.Load(sampleTickets())
	s.SortTo(FieldPriority, Desc)

	open := s.FilterByField(FieldStatus, "Open")
	if got, want := ids(open), []string{"3", "1"}; !slices.Equal(got, want) {
		t.Errorf("filtered after sort = %v, want %v", got, want)
	}
}

func TestSorted_DoesNotMutate(t *testing.T) {
	in := sampleTickets()
	out := Sorted(in, FieldPriority, Desc)

	if got, want := ids(in), []string{"1", "2", "3"}; !slices.Equal(got, want) {
		t.Errorf("input reordered to %v", got)
	}
	if got, want := ids(out), []string{"2", "3", "1"}; !slices.Equal(got, want) {
		t.Errorf("Sorted = %v, want %v", got, want)
	}
}

func TestParseDirection(t *testing.T) {
	tests := map[string]Direction{
		"desc": Desc,
		"DESC": Desc,
		"asc":  Asc,
		"":     Asc,
		"up":   Asc,
	}
	for in, want := range tests {
		if got := ParseDirection(in); got != want {
			t.Errorf("ParseDirection(%q) = %q, want %q", in, got, want)
		}
	}
}

// ----------------------------------------------------------------------------
// Filter / Find / Update Tests
// ----------------------------------------------------------------------------

func TestStore_FilterByField(t *testing.T) {
	s := NewStore()
	s.Load(sampleTickets())

	all := s.FilterByField(FieldStatus, FilterAll)
	if !slices.Equal(all, sampleTickets()) {
		t.Errorf("filter all = %v, want the full collection", ids(all))
	}

	open := s.FilterByField(FieldStatus, "Open")
	if got, want := ids(open), []string{"1", "3"}; !slices.Equal(got, want) {
		t.Errorf("filter Open = %v, want %v", got, want)
	}

	if got := s.FilterByField(FieldStatus, "open"); len(got) != 0 {
		t.Errorf("filter is exact match, got %v for lowercase", ids(got))
	}
}

func TestStore_FilterDoesNotMutate(t *testing.T) {
	s := NewStore()
	s.Load(sampleTickets())

	out := s.FilterByField(FieldStatus, FilterAll)
	out[0].Title = "changed"

	if tk, _ := s.FindByID("1"); tk.Title != "Printer" {
		t.Errorf("store title = %q, filter result must be a copy", tk.Title)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestStore_FindByIDFirstMatch(t *testing.T) {
	s := NewStore()
	s.Load([]Ticket{
		{ID: "1", Title: "first"},
		{ID: "1", Title: "second"},
	})

	tk, ok := s.FindByID("1")
	if !ok || tk.Title != "first" {
		t.Errorf("FindByID = %+v, %v; want first match", tk, ok)
	}

	if _, ok := s.FindByID("404"); ok {
		t.Error("FindByID(404) found a ticket")
	}
}

func TestStore_UpdateByID(t *testing.T) {
	s := NewStore()
	s.Load(sampleTickets())

	patch := Patch{
		Description: "new desc",
		Status:      "In Progress",
		Priority:    "High",
		AssignedTo:  "Zoe",
		Progress:    140,
	}
	if !s.UpdateByID("1", patch) {
		t.Fatal("UpdateByID(1) = false, want true")
	}

	tk, _ := s.FindByID("1")
	want := Ticket{
		ID:          "1",
		Title:       "Printer",
		Requester:   "Alice",
		Status:      "In Progress",
		Priority:    "High",
		Date:        "2024-01-03",
		AssignedTo:  "Zoe",
		Description: "new desc",
		Progress:    "140",
	}
	if tk != want {
		t.Errorf("updated = %+v, want %+v", tk, want)
	}
}

func TestStore_UpdateByIDMissing(t *testing.T) {
	s := NewStore()
	s.Load(sampleTickets())

	if s.UpdateByID("404", Patch{Status: "Closed"}) {
		t.Error("UpdateByID(404) = true, want false")
	}
	if !slices.Equal(s.All(), sampleTickets()) {
		t.Error("collection changed after update on missing id")
	}
}

func TestStore_LoadKeepsSortState(t *testing.T) {
	s := NewStore()
	s.Load(sampleTickets())
	s.SortBy(FieldTitle)

	s.Load(sampleTickets())
	if st := s.SortState(); st.Field != FieldTitle {
		t.Errorf("sort state after Load = %+v, want title kept", st)
	}
	if got, want := ids(s.All()), []string{"1", "2", "3"}; !slices.Equal(got, want) {
		t.Errorf("Load must not re-apply sort, got %v", got)
	}
}

func TestStore_Statuses(t *testing.T) {
	s := NewStore()
	s.Load(append(sampleTickets(), Ticket{ID: "4"}, Ticket{ID: "5", Status: "Blocked"}))

	if got, want := s.Statuses(), []string{"Blocked", "Closed", "Open"}; !slices.Equal(got, want) {
		t.Errorf("Statuses = %v, want %v", got, want)
	}
}
