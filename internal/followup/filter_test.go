package followup

import "testing"

func TestFilterNameSentinelAndSubstring(t *testing.T) {
	e := stubEntity{name: "Acme Industries", hasList: true}
	if !(Filter{ClientName: AllClients}).Matches(e) {
		t.Fatalf("sentinel must match everything")
	}
	if !(Filter{ClientName: "acme"}).Matches(e) {
		t.Fatalf("name match must be case-insensitive substring")
	}
	if (Filter{ClientName: "globex"}).Matches(e) {
		t.Fatalf("unrelated name must not match")
	}
}

func TestFilterContactSubstring(t *testing.T) {
	e := stubEntity{name: "Acme", contact: "Ravi Sharma", hasList: true}
	if !(Filter{ContactPerson: "sharma"}).Matches(e) {
		t.Fatalf("contact match must be case-insensitive substring")
	}
	if (Filter{ContactPerson: "patel"}).Matches(e) {
		t.Fatalf("unrelated contact must not match")
	}
}

func TestFilterDateRangeDayBoundaries(t *testing.T) {
	// follow-up late on the 15th: included when endDate is the 15th,
	// excluded when endDate is the 14th
	e := stubEntity{
		records: []Record{{DateTime: "2024-01-15T23:59:00Z"}},
		hasList: true,
	}
	in := Filter{Range: DateRange{End: "2024-01-15"}}
	out := Filter{Range: DateRange{End: "2024-01-14"}}
	if !in.Matches(e) {
		t.Fatalf("end-of-day follow-up must be inside inclusive end bound")
	}
	if out.Matches(e) {
		t.Fatalf("follow-up after end bound must be excluded")
	}
	early := Filter{Range: DateRange{Start: "2024-01-16"}}
	if early.Matches(e) {
		t.Fatalf("follow-up before start bound must be excluded")
	}
}

func TestFilterDateRangeAnyOfList(t *testing.T) {
	e := stubEntity{
		records: []Record{
			{DateTime: "2024-01-01T10:00:00Z"},
			{DateTime: "2024-02-10T10:00:00Z"},
		},
		hasList: true,
	}
	f := Filter{Range: DateRange{Start: "2024-02-01", End: "2024-02-28"}}
	if !f.Matches(e) {
		t.Fatalf("one in-range record is enough")
	}
}

func TestFilterJobSingleDateSemantics(t *testing.T) {
	job := stubEntity{action: &Action{FollowUpDate: "2024-03-05T09:00:00Z"}}
	inRange := Filter{Range: DateRange{Start: "2024-03-01", End: "2024-03-31"}}
	outRange := Filter{Range: DateRange{Start: "2024-04-01", End: "2024-04-30"}}
	if !inRange.Matches(job) {
		t.Fatalf("job action date in range must match")
	}
	if outRange.Matches(job) {
		t.Fatalf("job action date out of range must not match")
	}

	dateless := stubEntity{}
	if inRange.Matches(dateless) {
		t.Fatalf("active bound must exclude a job with no date to compare")
	}
	if !(Filter{}).Matches(dateless) {
		t.Fatalf("no bound means a dateless job still matches")
	}
}

func TestFilterEmptyListExcludedWhenBoundActive(t *testing.T) {
	client := stubEntity{hasList: true}
	f := Filter{Range: DateRange{Start: "2024-01-01"}}
	if f.Matches(client) {
		t.Fatalf("client with no records must be excluded by an active bound")
	}
}

func TestFilterAllPredicatesAnded(t *testing.T) {
	e := stubEntity{
		name:    "Acme",
		contact: "Ravi",
		records: []Record{{DateTime: "2024-01-10T10:00:00Z"}},
		hasList: true,
	}
	ok := Filter{ClientName: "acme", ContactPerson: "ravi", Range: DateRange{Start: "2024-01-01", End: "2024-01-31"}}
	if !ok.Matches(e) {
		t.Fatalf("all predicates true must match")
	}
	badName := ok
	badName.ClientName = "globex"
	if badName.Matches(e) {
		t.Fatalf("one failing predicate must exclude")
	}
}

func TestFilterEntitiesPreservesOrder(t *testing.T) {
	a := stubEntity{name: "Acme One", hasList: true}
	b := stubEntity{name: "Globex", hasList: true}
	c := stubEntity{name: "Acme Two", hasList: true}
	got := FilterEntities([]Entity{a, b, c}, Filter{ClientName: "acme"})
	if len(got) != 2 || got[0].DisplayName() != "Acme One" || got[1].DisplayName() != "Acme Two" {
		t.Fatalf("unexpected filtered order: %#v", got)
	}
}

func TestPaginateReconstructsList(t *testing.T) {
	list := []int{1, 2, 3, 4, 5, 6, 7}
	pageSize := 3
	pages := TotalPages(len(list), pageSize)
	if pages != 3 {
		t.Fatalf("expected 3 pages got %d", pages)
	}
	var rebuilt []int
	for p := 1; p <= pages; p++ {
		rebuilt = append(rebuilt, Paginate(list, p, pageSize)...)
	}
	if len(rebuilt) != len(list) {
		t.Fatalf("pages must reconstruct the list exactly, got %v", rebuilt)
	}
	for i := range list {
		if rebuilt[i] != list[i] {
			t.Fatalf("page concat mismatch at %d: %v", i, rebuilt)
		}
	}
}

func TestPaginateOutOfRangeAndEmpty(t *testing.T) {
	list := []string{"a", "b"}
	if got := Paginate(list, 5, 10); len(got) != 0 {
		t.Fatalf("out-of-range page must be empty, got %v", got)
	}
	if got := TotalPages(0, 10); got != 1 {
		t.Fatalf("total pages is never below 1, got %d", got)
	}
	if got := Paginate([]string{}, 1, 10); len(got) != 0 {
		t.Fatalf("empty list yields empty page")
	}
}
