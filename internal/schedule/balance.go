package schedule

import (
	"time"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/util"
	"github.com/shopspring/decimal"
)

// RunningBalance folds the signed amounts of all occurrences dated on or
// before upTo into initial. The input is expected to be already resolved
// (expanded); no recurrence expansion happens here.
func RunningBalance(transactions []domain.Transaction, initial decimal.Decimal, upTo time.Time) decimal.Decimal {
	balance := initial
	for i := range transactions {
		if transactions[i].Date.After(upTo) {
			continue
		}
		balance = balance.Add(transactions[i].Signed())
	}
	return balance
}

// DaySummary describes one calendar day of a month view: the occurrences
// landing on that day and the account balance after they apply.
type DaySummary struct {
	Day           int                  `json:"day"`
	Date          string               `json:"date"`
	Transactions  []domain.Transaction `json:"transactions"`
	EndingBalance decimal.Decimal      `json:"endingBalance"`
	IsToday       bool                 `json:"isToday"`
	IsPayday      bool                 `json:"isPayday"`
}

// DayList builds one DaySummary per calendar day of the month, in order.
// The ending balance is a single running total seeded by initial and folded
// strictly day by day. IsToday compares against the caller-supplied today
// (calendar-day equality); IsPayday marks days carrying a biweekly
// recurring income occurrence.
func DayList(transactions []domain.Transaction, year int, month time.Month, initial decimal.Decimal, today time.Time) []DaySummary {
	occurrences := MonthOccurrences(transactions, year, month)
	daysInMonth := util.DaysInMonth(year, month)

	days := make([]DaySummary, 0, daysInMonth)
	balance := initial

	for day := 1; day <= daysInMonth; day++ {
		date := util.Date(year, month, day)

		dayTransactions := []domain.Transaction{}
		payday := false
		for _, occ := range occurrences {
			if !util.SameDay(occ.Date, date) {
				continue
			}
			dayTransactions = append(dayTransactions, occ)
			balance = balance.Add(occ.Signed())
			if occ.Type == domain.TransactionTypeIncome && occ.IsRecurring && occ.Frequency() == domain.FrequencyBiweekly {
				payday = true
			}
		}

		days = append(days, DaySummary{
			Day:           day,
			Date:          util.FormatDate(date),
			Transactions:  dayTransactions,
			EndingBalance: balance,
			IsToday:       util.SameDay(date, today),
			IsPayday:      payday,
		})
	}

	return days
}
