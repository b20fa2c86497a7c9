package followup

import (
	"sort"
	"time"
)

// Record is one dated follow-up entry in an entity's history list.
// DateTime is the raw timestamp string as received from the API; it is
// parsed lazily and tolerantly (a malformed value simply never matches).
type Record struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	DateTime    string `json:"datetime"`
	Completed   bool   `json:"completed"`
}

// Action is the single follow-up slot carried directly on job/project
// records, distinct from the list-based history. Overwritten on update,
// never appended.
type Action struct {
	FollowUpDate     string `json:"followUpDate,omitempty"`
	LastFollowUpDate string `json:"lastfollowUpDate,omitempty"`
}

// Entity is the capability view the resolver needs from a client, job or
// project. Each model provides a thin adapter; see internal/models.
type Entity interface {
	DisplayName() string
	ContactName() string
	// FollowupRecords returns the dated history list, possibly empty.
	FollowupRecords() []Record
	// ActionFollowup returns the single action slot, or nil.
	ActionFollowup() *Action
	// HasFollowupList reports whether this entity kind carries a record
	// list at all. Jobs do not; their date filter compares the single
	// action date instead of any-of-list.
	HasFollowupList() bool
}

// timestamp layouts accepted from the remote APIs, most specific first.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseMillis parses a timestamp string into Unix milliseconds.
// Returns ok=false for empty or unparseable input instead of an error so
// bad data is excluded from aggregation rather than aborting it.
func ParseMillis(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}

// NearestFuture resolves the soonest upcoming follow-up for one entity.
// Uncompleted future records take priority over the action-level date even
// when the action date is sooner; record-level data is considered more
// current. Returns ok=false when nothing upcoming exists.
func NearestFuture(e Entity, nowMillis int64) (int64, bool) {
	var best int64
	found := false
	for _, rec := range e.FollowupRecords() {
		if rec.Completed {
			continue
		}
		ms, ok := ParseMillis(rec.DateTime)
		if !ok || ms <= nowMillis {
			continue
		}
		if !found || ms < best {
			best = ms
			found = true
		}
	}
	if found {
		return best, true
	}
	if a := e.ActionFollowup(); a != nil {
		if ms, ok := ParseMillis(a.FollowUpDate); ok && ms > nowMillis {
			return ms, true
		}
	}
	return 0, false
}

// Upcoming pairs an entity with its resolved next follow-up time.
type Upcoming struct {
	Entity Entity
	At     int64
}

// RankUpcoming resolves every entity's nearest future follow-up, drops the
// ones with none, and returns the soonest topN in ascending order plus the
// total number of entities that had any upcoming follow-up (for badges).
// Entities with identical timestamps keep their input order.
func RankUpcoming(entities []Entity, nowMillis int64, topN int) ([]Upcoming, int) {
	upcoming := make([]Upcoming, 0, len(entities))
	for _, e := range entities {
		if at, ok := NearestFuture(e, nowMillis); ok {
			upcoming = append(upcoming, Upcoming{Entity: e, At: at})
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].At < upcoming[j].At })
	total := len(upcoming)
	if topN >= 0 && topN < len(upcoming) {
		upcoming = upcoming[:topN]
	}
	return upcoming, total
}
