package schedule

import (
	"sort"
	"time"

	"github.com/budgety/budgety-backend/internal/domain"
)

// MaxUpcomingBills caps the number of bills returned by UpcomingBills.
const MaxUpcomingBills = 5

// recurringLookaheadMonths is how far recurring templates are expanded when
// selecting upcoming bills, independent of the caller's horizon, so that a
// bill whose next occurrence lands just past the horizon is still found
// during expansion.
const recurringLookaheadMonths = 2

// UpcomingBills selects up to MaxUpcomingBills expense occurrences falling
// within [today, today+horizonDays], ascending by date. Recurring expense
// templates are expanded over a fixed two-month lookahead and then filtered
// to the horizon; one-off expenses are included directly when due.
func UpcomingBills(transactions []domain.Transaction, horizonDays int, today time.Time) []domain.Transaction {
	horizonEnd := today.AddDate(0, 0, horizonDays)
	lookaheadEnd := today.AddDate(0, recurringLookaheadMonths, 0)

	upcoming := []domain.Transaction{}
	for _, t := range transactions {
		if t.Type != domain.TransactionTypeExpense {
			continue
		}

		if t.IsRecurring {
			for _, occ := range Expand(t, today, lookaheadEnd) {
				if !occ.Date.Before(today) && !occ.Date.After(horizonEnd) {
					upcoming = append(upcoming, occ)
				}
			}
			continue
		}

		if !t.Date.Before(today) && !t.Date.After(horizonEnd) {
			upcoming = append(upcoming, t)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})

	if len(upcoming) > MaxUpcomingBills {
		upcoming = upcoming[:MaxUpcomingBills]
	}
	return upcoming
}
