// Package schedule is the recurrence and aggregation engine: it expands
// recurring transaction templates into dated occurrences, merges them with
// one-off transactions, and derives calendar views (day lists, upcoming
// bills, monthly summaries) from the result.
//
// Every function is pure. Occurrences are never persisted; they are
// recomputed from templates on each call, and the current date is always an
// explicit parameter.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/util"
)

// Expand generates the occurrences of a transaction that fall inside the
// inclusive [windowStart, windowEnd] range, in ascending date order.
//
// A non-recurring transaction expands to itself, unchanged and unfiltered;
// callers that need window filtering apply it themselves (MonthOccurrences
// does). A recurring template expands from its anchor date: occurrence n is
// the n-th step from the anchor (1-based, the anchor itself being n=1), and
// each emitted copy carries the synthetic id "{templateID}-{n}".
//
// Monthly and yearly steps are always recomputed from the anchor so that a
// day-of-month past the end of a landing month clamps to its last day
// without sticking there: Jan 31 expands to Feb 28/29 and then Mar 31.
//
// An unsupported frequency stops the expansion; whatever has been emitted
// so far is returned rather than an error.
func Expand(t domain.Transaction, windowStart, windowEnd time.Time) []domain.Transaction {
	if !t.IsRecurring {
		return []domain.Transaction{t}
	}

	occurrences := []domain.Transaction{}
	current := t.Date

	for n := 1; !current.After(windowEnd); n++ {
		if !current.Before(windowStart) {
			occ := t
			occ.ID = fmt.Sprintf("%s-%d", t.ID, n)
			occ.Date = current
			occurrences = append(occurrences, occ)
		}

		switch t.Frequency() {
		case domain.FrequencyDaily:
			current = current.AddDate(0, 0, 1)
		case domain.FrequencyWeekly:
			current = current.AddDate(0, 0, 7)
		case domain.FrequencyBiweekly:
			current = current.AddDate(0, 0, 14)
		case domain.FrequencyMonthly:
			current = util.AddMonthsClamped(t.Date, n)
		case domain.FrequencyYearly:
			current = util.AddYearsClamped(t.Date, n)
		default:
			// Fail-soft: keep what was emitted, drop the rest
			return occurrences
		}
	}

	return occurrences
}

// MonthOccurrences resolves a transaction set against a calendar month:
// recurring templates are expanded over the month window, one-off
// transactions are included when their date falls inside it. The result is
// sorted ascending by date; same-date occurrences keep their input order.
func MonthOccurrences(transactions []domain.Transaction, year int, month time.Month) []domain.Transaction {
	windowStart, windowEnd := util.MonthWindow(year, month)

	resolved := []domain.Transaction{}
	for _, t := range transactions {
		if t.IsRecurring {
			resolved = append(resolved, Expand(t, windowStart, windowEnd)...)
			continue
		}
		if !t.Date.Before(windowStart) && !t.Date.After(windowEnd) {
			resolved = append(resolved, t)
		}
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Date.Before(resolved[j].Date)
	})

	return resolved
}
