package followup

import (
	"testing"
	"time"
)

// stub entity used across resolver tests
type stubEntity struct {
	name    string
	contact string
	records []Record
	action  *Action
	hasList bool
}

func (s stubEntity) DisplayName() string       { return s.name }
func (s stubEntity) ContactName() string       { return s.contact }
func (s stubEntity) FollowupRecords() []Record { return s.records }
func (s stubEntity) ActionFollowup() *Action   { return s.action }
func (s stubEntity) HasFollowupList() bool     { return s.hasList }

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli()

func ts(offset time.Duration) string {
	return time.UnixMilli(now).UTC().Add(offset).Format(time.RFC3339)
}

func TestNearestFutureRecordBeatsActionDate(t *testing.T) {
	// action date is sooner, but the record-level entry must win
	e := stubEntity{
		records: []Record{{ID: 1, DateTime: ts(72 * time.Hour)}},
		action:  &Action{FollowUpDate: ts(24 * time.Hour)},
		hasList: true,
	}
	got, ok := NearestFuture(e, now)
	if !ok {
		t.Fatalf("expected upcoming follow-up")
	}
	want, _ := ParseMillis(ts(72 * time.Hour))
	if got != want {
		t.Fatalf("expected record date %d got %d", want, got)
	}
}

func TestNearestFuturePicksEarliestRecord(t *testing.T) {
	e := stubEntity{
		records: []Record{
			{ID: 1, DateTime: ts(96 * time.Hour)},
			{ID: 2, DateTime: ts(24 * time.Hour)},
			{ID: 3, DateTime: ts(48 * time.Hour)},
		},
		hasList: true,
	}
	got, ok := NearestFuture(e, now)
	want, _ := ParseMillis(ts(24 * time.Hour))
	if !ok || got != want {
		t.Fatalf("expected %d ok=true got %d ok=%v", want, got, ok)
	}
}

func TestNearestFutureIgnoresPastAndCompleted(t *testing.T) {
	e := stubEntity{
		records: []Record{
			{ID: 1, DateTime: ts(-24 * time.Hour)},                  // past
			{ID: 2, DateTime: ts(24 * time.Hour), Completed: true},  // done
			{ID: 3, DateTime: "not-a-date"},                         // garbage
		},
		hasList: true,
	}
	if _, ok := NearestFuture(e, now); ok {
		t.Fatalf("expected no upcoming follow-up")
	}
}

func TestNearestFutureFallsBackToAction(t *testing.T) {
	e := stubEntity{
		records: []Record{{ID: 1, DateTime: ts(-24 * time.Hour)}},
		action:  &Action{FollowUpDate: ts(48 * time.Hour)},
		hasList: true,
	}
	got, ok := NearestFuture(e, now)
	want, _ := ParseMillis(ts(48 * time.Hour))
	if !ok || got != want {
		t.Fatalf("expected action fallback %d got %d ok=%v", want, got, ok)
	}
}

func TestNearestFuturePastActionExcluded(t *testing.T) {
	e := stubEntity{action: &Action{FollowUpDate: ts(-time.Hour)}}
	if _, ok := NearestFuture(e, now); ok {
		t.Fatalf("past action date must not count")
	}
}

func TestRankUpcomingOrderAndTotal(t *testing.T) {
	a := stubEntity{name: "A", records: []Record{{DateTime: ts(72 * time.Hour)}}, hasList: true}
	b := stubEntity{name: "B", records: []Record{{DateTime: ts(24 * time.Hour)}}, hasList: true}
	c := stubEntity{name: "C", records: []Record{{DateTime: ts(48 * time.Hour)}}, hasList: true}
	d := stubEntity{name: "D", hasList: true} // nothing upcoming

	top, total := RankUpcoming([]Entity{a, b, c, d}, now, 2)
	if total != 3 {
		t.Fatalf("expected total 3 got %d", total)
	}
	if len(top) != 2 || top[0].Entity.DisplayName() != "B" || top[1].Entity.DisplayName() != "C" {
		t.Fatalf("unexpected ranking: %#v", top)
	}
}

func TestRankUpcomingStableOnTies(t *testing.T) {
	same := ts(24 * time.Hour)
	a := stubEntity{name: "first", records: []Record{{DateTime: same}}, hasList: true}
	b := stubEntity{name: "second", records: []Record{{DateTime: same}}, hasList: true}
	top, _ := RankUpcoming([]Entity{a, b}, now, 5)
	if len(top) != 2 || top[0].Entity.DisplayName() != "first" || top[1].Entity.DisplayName() != "second" {
		t.Fatalf("tie must keep input order: %#v", top)
	}
}

func TestParseMillisMalformed(t *testing.T) {
	for _, s := range []string{"", "garbage", "2024-13-45", "15/01/2024"} {
		if _, ok := ParseMillis(s); ok {
			t.Fatalf("expected parse failure for %q", s)
		}
	}
	if _, ok := ParseMillis("2024-01-15T23:59:00Z"); !ok {
		t.Fatalf("expected RFC3339 to parse")
	}
	if _, ok := ParseMillis("2024-01-15"); !ok {
		t.Fatalf("expected bare date to parse")
	}
}
