package patient

import (
	"sort"
	"time"
)

// Queue holds the three disjoint, ordered views of the day's consultations.
type Queue struct {
	Waiting        []*Patient `json:"waiting"`
	InConsultation []*Patient `json:"in_consultation"`
	Served         []*Patient `json:"served"`
}

// Next returns the waiting patient that would be seen next, or nil when the
// waiting queue is empty. Strict FIFO: earliest arrival first.
func (q *Queue) Next() *Patient {
	if len(q.Waiting) == 0 {
		return nil
	}
	return q.Waiting[0]
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// DeriveQueue partitions patients into the waiting / in-consultation / served
// buckets for the calendar day of ref in loc. Pure: no side effects, input
// order irrelevant, buckets pairwise disjoint.
//
//   - Waiting: status waiting, queue time on the day, ascending. The
//     registration-time fallback applies to this bucket only.
//   - InConsultation: status in_consultation, last status change on the day.
//   - Served: status served, last status change on the day, descending
//     (most recently completed first).
//
// In-consultation and served entries without a recorded status change have no
// known transition time and are excluded rather than guessed from the
// registration time. Waiting patients with neither timestamp are unscheduled
// and excluded from every bucket.
func DeriveQueue(patients []*Patient, ref time.Time, loc *time.Location) Queue {
	var q Queue

	for _, p := range patients {
		switch p.ConsultationStatus {
		case StatusWaiting:
			if ts, ok := p.QueueTime(); ok && SameDay(ts, ref, loc) {
				q.Waiting = append(q.Waiting, p)
			}
		case StatusInConsultation:
			if p.LastStatusChange != nil && SameDay(*p.LastStatusChange, ref, loc) {
				q.InConsultation = append(q.InConsultation, p)
			}
		case StatusServed:
			if p.LastStatusChange != nil && SameDay(*p.LastStatusChange, ref, loc) {
				q.Served = append(q.Served, p)
			}
		}
	}

	sort.SliceStable(q.Waiting, func(i, j int) bool {
		ti, _ := q.Waiting[i].QueueTime()
		tj, _ := q.Waiting[j].QueueTime()
		return ti.Before(tj)
	})
	sort.SliceStable(q.Served, func(i, j int) bool {
		ti, _ := q.Served[i].QueueTime()
		tj, _ := q.Served[j].QueueTime()
		return ti.After(tj)
	})

	return q
}

// PrevQueueDay steps the reference date back one day. Retrospective queue
// inspection has no lower bound.
func PrevQueueDay(ref time.Time) time.Time {
	return ref.AddDate(0, 0, -1)
}

// NextQueueDay steps the reference date forward one day. The step is refused
// when ref is already on (or past) today's calendar day in loc, so the queue
// view never shows a future day.
func NextQueueDay(ref, now time.Time, loc *time.Location) (time.Time, bool) {
	if !ref.In(loc).Before(startOfDay(now, loc)) {
		return ref, false
	}
	return ref.AddDate(0, 0, 1), true
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
