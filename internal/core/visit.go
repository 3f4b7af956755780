package core

import (
	"fmt"
	"time"
)

type VisitState string

const (
	FirstVisit VisitState = "FIRST_VISIT"
	Returning  VisitState = "RETURNING"
)

const day = 24 * time.Hour

// VisitRecord is the persisted counter and timestamps of one visitor.
type VisitRecord struct {
	VisitCount   int       `json:"visitCount"`
	FirstVisitAt time.Time `json:"firstVisitAt"`
	LastVisitAt  time.Time `json:"lastVisitAt"`
}

// VisitOutcome is the result of registering one page load.
type VisitOutcome struct {
	State         VisitState  `json:"state"`
	Record        VisitRecord `json:"record"`
	DayDifference int         `json:"dayDifference"`
	Message       string      `json:"message"`
}

// NextVisit advances prev to include a visit at now. A nil prev, or a
// record that was never counted, is a first visit.
func NextVisit(prev *VisitRecord, now time.Time) VisitOutcome {
	now = now.UTC()
	if prev == nil || prev.VisitCount <= 0 {
		rec := VisitRecord{VisitCount: 1, FirstVisitAt: now, LastVisitAt: now}
		return VisitOutcome{State: FirstVisit, Record: rec, Message: VisitMessage(FirstVisit, 0)}
	}

	rec := VisitRecord{
		VisitCount:   prev.VisitCount + 1,
		FirstVisitAt: prev.FirstVisitAt,
		LastVisitAt:  now,
	}
	if rec.FirstVisitAt.IsZero() {
		rec.FirstVisitAt = now
	}
	diff := DayDifference(rec.FirstVisitAt, rec.LastVisitAt)
	return VisitOutcome{
		State:         Returning,
		Record:        rec,
		DayDifference: diff,
		Message:       VisitMessage(Returning, diff),
	}
}

// DayDifference returns the number of whole days from first to last,
// rounding towards negative infinity.
func DayDifference(first, last time.Time) int {
	d := last.Sub(first)
	days := int(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}

func VisitMessage(state VisitState, days int) string {
	if state == FirstVisit {
		return "Welcome! Let us know if you have any questions."
	}
	switch {
	case days < 1:
		return "Back so soon! Awesome!"
	case days == 1:
		return "You last visited 1 day ago."
	default:
		return fmt.Sprintf("You last visited %d days ago.", days)
	}
}
