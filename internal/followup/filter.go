package followup

import (
	"strings"
	"time"
)

// AllClients is the sentinel the SPA sends when the client-name dropdown is
// on its "all" option; it disables the name predicate entirely.
const AllClients = "All-Client"

// DateRange holds calendar-date bounds ("2006-01-02"). Either side may be
// empty, which open-ends that side. Bounds are normalized to UTC day
// boundaries: start 00:00:00.000, end 23:59:59.999.
type DateRange struct {
	Start string
	End   string
}

// Active reports whether at least one bound is set and parseable.
func (r DateRange) Active() bool {
	_, okS := r.startMillis()
	_, okE := r.endMillis()
	return okS || okE
}

func (r DateRange) startMillis() (int64, bool) {
	if r.Start == "" {
		return 0, false
	}
	t, err := time.Parse("2006-01-02", r.Start)
	if err != nil {
		return 0, false
	}
	return t.UTC().UnixMilli(), true
}

func (r DateRange) endMillis() (int64, bool) {
	if r.End == "" {
		return 0, false
	}
	t, err := time.Parse("2006-01-02", r.End)
	if err != nil {
		return 0, false
	}
	// inclusive end of day
	return t.UTC().Add(24*time.Hour - time.Millisecond).UnixMilli(), true
}

// Contains reports whether ms falls within the normalized bounds. A missing
// bound open-ends that side.
func (r DateRange) Contains(ms int64) bool {
	if s, ok := r.startMillis(); ok && ms < s {
		return false
	}
	if e, ok := r.endMillis(); ok && ms > e {
		return false
	}
	return true
}

// Filter is the combined list filter driven by the console's search bar.
// All three predicates must hold; empty values match everything.
type Filter struct {
	ClientName    string
	ContactPerson string
	Range         DateRange
}

// Matches evaluates the filter against one entity.
func (f Filter) Matches(e Entity) bool {
	return f.matchName(e) && f.matchContact(e) && f.matchDates(e)
}

func (f Filter) matchName(e Entity) bool {
	name := strings.TrimSpace(f.ClientName)
	if name == "" || name == AllClients {
		return true
	}
	return strings.Contains(strings.ToLower(e.DisplayName()), strings.ToLower(name))
}

func (f Filter) matchContact(e Entity) bool {
	contact := strings.TrimSpace(f.ContactPerson)
	if contact == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.ContactName()), strings.ToLower(contact))
}

// matchDates applies the kind-specific date semantics: entities with a
// record list match when any record falls within the bounds; jobs (no list)
// match on the single action date. With a bound active, an entity lacking
// any comparable date is excluded; with no bound everything matches.
func (f Filter) matchDates(e Entity) bool {
	if !f.Range.Active() {
		return true
	}
	if e.HasFollowupList() {
		for _, rec := range e.FollowupRecords() {
			if ms, ok := ParseMillis(rec.DateTime); ok && f.Range.Contains(ms) {
				return true
			}
		}
		return false
	}
	a := e.ActionFollowup()
	if a == nil {
		return false
	}
	ms, ok := ParseMillis(a.FollowUpDate)
	return ok && f.Range.Contains(ms)
}

// FilterEntities returns the entities matching f, preserving input order.
func FilterEntities(entities []Entity, f Filter) []Entity {
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Paginate slices one 1-based page out of list. Pages beyond the end yield
// an empty slice. Callers order the list (newest first) before paginating.
func Paginate[T any](list []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return nil
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(list) {
		return []T{}
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// TotalPages is ceil(n/pageSize), never less than 1.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
