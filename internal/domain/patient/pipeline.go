package patient

import (
	"sort"
	"strings"
	"time"
)

// Filter and sort parameter values. "all" (or empty) disables a categorical
// filter.
const (
	FilterAll = "all"

	SortByName      = "name"
	SortByAge       = "age"
	SortByLastVisit = "lastVisit"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Date-period filters over registration time, used by list views and exports.
const (
	PeriodAll    = "all"
	PeriodToday  = "today"
	Period7Days  = "7days"
	Period30Days = "30days"
)

// PipelineParams is the full parameter tuple of the list pipeline. For a fixed
// patient list and parameter tuple the output is deterministic, which is what
// makes results memoizable and assertions stable.
type PipelineParams struct {
	Search    string
	Sex       string
	Payment   string
	Period    string
	SortBy    string
	SortOrder string
	// Now anchors age derivation and period windows. The zero value means
	// time.Now at call time.
	Now time.Time
	// Loc is the clinic's calendar for the "today" period. Nil means UTC.
	Loc *time.Location
}

func (p PipelineParams) now() time.Time {
	if p.Now.IsZero() {
		return time.Now()
	}
	return p.Now
}

func (p PipelineParams) loc() *time.Location {
	if p.Loc == nil {
		return time.UTC
	}
	return p.Loc
}

// ApplyPipeline filters then sorts the patient list. Filtering and sorting are
// independent and composable; the input slice is never mutated.
func ApplyPipeline(patients []*Patient, params PipelineParams) []*Patient {
	out := Filter(patients, params)
	Sort(out, params)
	return out
}

// Filter returns the patients matching the search term, categorical filters,
// and date period. An empty search term matches everything; a categorical
// value of "all" (or empty) is a no-op.
func Filter(patients []*Patient, params PipelineParams) []*Patient {
	search := strings.ToLower(strings.TrimSpace(params.Search))
	now := params.now()
	loc := params.loc()

	out := make([]*Patient, 0, len(patients))
	for _, p := range patients {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if !matchesFilter(p.Sex, params.Sex) {
			continue
		}
		if !matchesFilter(p.PaymentMethod, params.Payment) {
			continue
		}
		if !matchesPeriod(p.CreatedAt, params.Period, now, loc) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p *Patient, search string) bool {
	return strings.Contains(strings.ToLower(p.FirstName), search) ||
		strings.Contains(strings.ToLower(p.Surname), search) ||
		strings.Contains(strings.ToLower(p.IDNumber), search)
}

func matchesFilter(value, filter string) bool {
	return filter == "" || filter == FilterAll || value == filter
}

func matchesPeriod(created time.Time, period string, now time.Time, loc *time.Location) bool {
	switch period {
	case "", PeriodAll:
		return true
	case PeriodToday:
		return SameDay(created, now, loc)
	case Period7Days:
		return !created.Before(now.AddDate(0, 0, -7))
	case Period30Days:
		return !created.Before(now.AddDate(0, 0, -30))
	default:
		return true
	}
}

// Sort orders patients in place by the given key and order. Unknown keys fall
// back to name. The sort is stable, so ties keep their incoming order.
func Sort(patients []*Patient, params PipelineParams) {
	now := params.now()
	desc := params.SortOrder == OrderDesc

	var less func(a, b *Patient) bool
	switch params.SortBy {
	case SortByAge:
		less = func(a, b *Patient) bool { return a.Age(now) < b.Age(now) }
	case SortByLastVisit:
		less = func(a, b *Patient) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		less = func(a, b *Patient) bool {
			return strings.ToLower(a.FullName()) < strings.ToLower(b.FullName())
		}
	}

	sort.SliceStable(patients, func(i, j int) bool {
		if desc {
			return less(patients[j], patients[i])
		}
		return less(patients[i], patients[j])
	})
}
