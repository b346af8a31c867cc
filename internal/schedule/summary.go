package schedule

import (
	"strings"
	"time"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// givingGoalName identifies the savings goal whose yearly target is spread
// across the monthly summaries.
const givingGoalName = "giving"

// Summary holds the monthly aggregates shown next to the calendar: expected
// income, the fixed monthly obligations, and their per-bucket breakdown.
type Summary struct {
	TotalIncome   decimal.Decimal            `json:"totalIncome"`
	FixedExpenses decimal.Decimal            `json:"fixedExpenses"`
	Buckets       map[string]decimal.Decimal `json:"buckets"`
	MonthlyGiving decimal.Decimal            `json:"monthlyGiving"`
}

// MonthlySummary aggregates a month: TotalIncome sums the expanded income
// occurrences inside the month, FixedExpenses sums the monthly recurring
// expense templates (unexpanded, one charge per month by definition), and
// Buckets breaks the fixed expenses down via the configured category
// mapping. MonthlyGiving is one twelfth of the "giving" goal's target, when
// such a goal exists.
func MonthlySummary(transactions []domain.Transaction, goals []domain.SavingsGoal, buckets domain.BucketMap, year int, month time.Month) Summary {
	summary := Summary{
		TotalIncome:   decimal.Zero,
		FixedExpenses: decimal.Zero,
		Buckets:       map[string]decimal.Decimal{},
		MonthlyGiving: decimal.Zero,
	}

	for _, occ := range MonthOccurrences(transactions, year, month) {
		if occ.Type == domain.TransactionTypeIncome {
			summary.TotalIncome = summary.TotalIncome.Add(occ.Amount)
		}
	}

	for _, t := range transactions {
		if t.Type != domain.TransactionTypeExpense || !t.IsRecurring || t.Frequency() != domain.FrequencyMonthly {
			continue
		}
		summary.FixedExpenses = summary.FixedExpenses.Add(t.Amount)

		bucket := buckets.Resolve(t.Category)
		total, ok := summary.Buckets[bucket]
		if !ok {
			total = decimal.Zero
		}
		summary.Buckets[bucket] = total.Add(t.Amount)
	}

	for _, goal := range goals {
		if strings.EqualFold(goal.Name, givingGoalName) {
			summary.MonthlyGiving = goal.TargetAmount.Div(decimal.NewFromInt(12))
			break
		}
	}

	return summary
}
