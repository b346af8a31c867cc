package schedule

import (
	"testing"
	"time"

	"github.com/budgety/budgety-backend/internal/domain"
	"github.com/budgety/budgety-backend/internal/util"
	"github.com/shopspring/decimal"
)

func freqPtr(f domain.Frequency) *domain.Frequency {
	return &f
}

func recurring(id string, txType domain.TransactionType, amount float64, date time.Time, freq domain.Frequency) domain.Transaction {
	return domain.Transaction{
		ID:                  id,
		Type:                txType,
		Category:            "Test",
		Amount:              decimal.NewFromFloat(amount),
		Date:                date,
		IsRecurring:         true,
		RecurrenceFrequency: freqPtr(freq),
	}
}

func oneOff(id string, txType domain.TransactionType, amount float64, date time.Time) domain.Transaction {
	return domain.Transaction{
		ID:       id,
		Type:     txType,
		Category: "Test",
		Amount:   decimal.NewFromFloat(amount),
		Date:     date,
	}
}

func TestExpand_NonRecurringPassthrough(t *testing.T) {
	tx := oneOff("t1", domain.TransactionTypeExpense, 50, util.Date(2024, time.June, 10))

	// The window does not contain the date; expand still returns the
	// transaction unchanged (window filtering belongs to the caller)
	got := Expand(tx, util.Date(2024, time.January, 1), util.Date(2024, time.January, 31))
	if len(got) != 1 {
		t.Fatalf("Expected 1 occurrence, got %d", len(got))
	}
	if got[0].ID != "t1" {
		t.Errorf("Expected unchanged id t1, got %s", got[0].ID)
	}
	if !got[0].Date.Equal(tx.Date) {
		t.Errorf("Expected unchanged date %v, got %v", tx.Date, got[0].Date)
	}
}

func TestExpand_MonthlyRentScenario(t *testing.T) {
	tx := recurring("tid", domain.TransactionTypeExpense, 1200, util.Date(2024, time.January, 5), domain.FrequencyMonthly)

	got := Expand(tx, util.Date(2024, time.February, 1), util.Date(2024, time.February, 29))
	if len(got) != 1 {
		t.Fatalf("Expected 1 occurrence, got %d", len(got))
	}
	if got[0].ID != "tid-2" {
		t.Errorf("Expected id tid-2, got %s", got[0].ID)
	}
	if !got[0].Date.Equal(util.Date(2024, time.February, 5)) {
		t.Errorf("Expected date 2024-02-05, got %v", got[0].Date)
	}
	if !got[0].Amount.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("Expected amount 1200, got %s", got[0].Amount.String())
	}
}

func TestExpand_MonthlyClampsToEndOfFebruary(t *testing.T) {
	tx := recurring("t1", domain.TransactionTypeExpense, 100, util.Date(2024, time.January, 31), domain.FrequencyMonthly)

	got := Expand(tx, util.Date(2024, time.February, 1), util.Date(2024, time.February, 29))
	if len(got) != 1 {
		t.Fatalf("Expected exactly 1 occurrence in February, got %d", len(got))
	}
	if !got[0].Date.Equal(util.Date(2024, time.February, 29)) {
		t.Errorf("Expected last day of February, got %v", got[0].Date)
	}

	// Non-leap year clamps to the 28th
	got = Expand(tx, util.Date(2025, time.February, 1), util.Date(2025, time.February, 28))
	if len(got) != 1 {
		t.Fatalf("Expected exactly 1 occurrence in February 2025, got %d", len(got))
	}
	if !got[0].Date.Equal(util.Date(2025, time.February, 28)) {
		t.Errorf("Expected 2025-02-28, got %v", got[0].Date)
	}
}

func TestExpand_MonthlyDoesNotStickToShortMonth(t *testing.T) {
	tx := recurring("t1", domain.TransactionTypeExpense, 100, util.Date(2024, time.January, 31), domain.FrequencyMonthly)

	got := Expand(tx, util.Date(2024, time.March, 1), util.Date(2024, time.March, 31))
	if len(got) != 1 {
		t.Fatalf("Expected 1 occurrence in March, got %d", len(got))
	}
	if !got[0].Date.Equal(util.Date(2024, time.March, 31)) {
		t.Errorf("Expected the 31st again after the February clamp, got %v", got[0].Date)
	}
	if got[0].ID != "t1-3" {
		t.Errorf("Expected id t1-3, got %s", got[0].ID)
	}
}

func TestExpand_Daily(t *testing.T) {
	tx := recurring("t1", domain.TransactionTypeExpense, 5, util.Date(2024, time.March, 1), domain.FrequencyDaily)

	got := Expand(tx, util.Date(2024, time.March, 1), util.Date(2024, time.March, 10))
	if len(got) != 10 {
		t.Fatalf("Expected 10 occurrences, got %d", len(got))
	}
	for i, occ := range got {
		want := util.Date(2024, time.March, i+1)
		if !occ.Date.Equal(want) {
			t.Errorf("Occurrence %d: expected %v, got %v", i, want, occ.Date)
		}
	}
}

func TestExpand_BiweeklyNumbering(t *testing.T) {
	tx := recurring("pay", domain.TransactionTypeIncome, 2000, util.Date(2024, time.January, 5), domain.FrequencyBiweekly)

	got := Expand(tx, util.Date(2024, time.February, 1), util.Date(2024, time.February, 29))
	// Jan 5 (1), Jan 19 (2), Feb 2 (3), Feb 16 (4), Mar 1 stops
	if len(got) != 2 {
		t.Fatalf("Expected 2 occurrences, got %d", len(got))
	}
	if got[0].ID != "pay-3" || !got[0].Date.Equal(util.Date(2024, time.February, 2)) {
		t.Errorf("Expected pay-3 on Feb 2, got %s on %v", got[0].ID, got[0].Date)
	}
	if got[1].ID != "pay-4" || !got[1].Date.Equal(util.Date(2024, time.February, 16)) {
		t.Errorf("Expected pay-4 on Feb 16, got %s on %v", got[1].ID, got[1].Date)
	}
}

func TestExpand_Yearly(t *testing.T) {
	tx := recurring("ins", domain.TransactionTypeExpense, 600, util.Date(2022, time.July, 14), domain.FrequencyYearly)

	got := Expand(tx, util.Date(2024, time.July, 1), util.Date(2024, time.July, 31))
	if len(got) != 1 {
		t.Fatalf("Expected 1 occurrence, got %d", len(got))
	}
	if got[0].ID != "ins-3" || !got[0].Date.Equal(util.Date(2024, time.July, 14)) {
		t.Errorf("Expected ins-3 on 2024-07-14, got %s on %v", got[0].ID, got[0].Date)
	}
}

func TestExpand_UnknownFrequencyFailSoft(t *testing.T) {
	tx := recurring("t1", domain.TransactionTypeExpense, 100, util.Date(2024, time.March, 5), domain.Frequency("quarterly"))

	// The anchor is inside the window, so it is emitted before the
	// expansion stops on the unsupported frequency
	got := Expand(tx, util.Date(2024, time.March, 1), util.Date(2024, time.December, 31))
	if len(got) != 1 {
		t.Fatalf("Expected 1 occurrence before fail-soft stop, got %d", len(got))
	}
	if got[0].ID != "t1-1" {
		t.Errorf("Expected t1-1, got %s", got[0].ID)
	}

	// Anchor outside the window: nothing is emitted
	got = Expand(tx, util.Date(2024, time.April, 1), util.Date(2024, time.December, 31))
	if len(got) != 0 {
		t.Fatalf("Expected 0 occurrences, got %d", len(got))
	}
}

func TestExpand_Idempotent(t *testing.T) {
	tx := recurring("t1", domain.TransactionTypeExpense, 75, util.Date(2024, time.January, 15), domain.FrequencyWeekly)
	start := util.Date(2024, time.February, 1)
	end := util.Date(2024, time.March, 31)

	first := Expand(tx, start, end)
	second := Expand(tx, start, end)

	if len(first) != len(second) {
		t.Fatalf("Expected identical lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || !first[i].Date.Equal(second[i].Date) {
			t.Errorf("Occurrence %d differs between runs: %s/%v vs %s/%v",
				i, first[i].ID, first[i].Date, second[i].ID, second[i].Date)
		}
	}
}

func TestExpand_OccurrenceBeforeWindowAdvancesCounter(t *testing.T) {
	tx := recurring("t1", domain.TransactionTypeExpense, 10, util.Date(2024, time.January, 1), domain.FrequencyWeekly)

	got := Expand(tx, util.Date(2024, time.January, 15), util.Date(2024, time.January, 31))
	// Jan 1 (1), Jan 8 (2) skipped; Jan 15 (3), Jan 22 (4), Jan 29 (5) emitted
	if len(got) != 3 {
		t.Fatalf("Expected 3 occurrences, got %d", len(got))
	}
	if got[0].ID != "t1-3" {
		t.Errorf("Expected numbering counted from the anchor (t1-3), got %s", got[0].ID)
	}
}

func TestMonthOccurrences_MergesAndSorts(t *testing.T) {
	transactions := []domain.Transaction{
		oneOff("late", domain.TransactionTypeExpense, 40, util.Date(2024, time.March, 20)),
		recurring("rent", domain.TransactionTypeExpense, 1200, util.Date(2024, time.January, 5), domain.FrequencyMonthly),
		oneOff("early", domain.TransactionTypeIncome, 300, util.Date(2024, time.March, 2)),
		oneOff("outside", domain.TransactionTypeExpense, 99, util.Date(2024, time.April, 1)),
	}

	got := MonthOccurrences(transactions, 2024, time.March)
	if len(got) != 3 {
		t.Fatalf("Expected 3 occurrences, got %d", len(got))
	}
	if got[0].ID != "early" {
		t.Errorf("Expected early first, got %s", got[0].ID)
	}
	if got[1].ID != "rent-3" {
		t.Errorf("Expected rent-3 second, got %s", got[1].ID)
	}
	if got[2].ID != "late" {
		t.Errorf("Expected late last, got %s", got[2].ID)
	}
}

func TestMonthOccurrences_StableForSameDate(t *testing.T) {
	day := util.Date(2024, time.March, 10)
	transactions := []domain.Transaction{
		oneOff("a", domain.TransactionTypeExpense, 1, day),
		oneOff("b", domain.TransactionTypeExpense, 2, day),
		oneOff("c", domain.TransactionTypeExpense, 3, day),
	}

	got := MonthOccurrences(transactions, 2024, time.March)
	if len(got) != 3 {
		t.Fatalf("Expected 3 occurrences, got %d", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, got[i].ID)
		}
	}
}
