package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalance is a computed, never persisted, map of account code to signed net
// balance (debit positive, credit negative) over a date range.
type TrialBalance struct {
	From         time.Time // zero means unbounded
	To           time.Time
	SnapshotSize int // number of journal entries the figures were folded from
	balances     map[string]decimal.Decimal
}

// NewTrialBalance copies balances into a new TrialBalance.
func NewTrialBalance(from, to time.Time, snapshotSize int, balances map[string]decimal.Decimal) TrialBalance {
	cp := make(map[string]decimal.Decimal, len(balances))
	for k, v := range balances {
		cp[k] = v
	}
	return TrialBalance{From: from, To: to, SnapshotSize: snapshotSize, balances: cp}
}

// Balance returns the net balance of code, or zero when the account never moved.
func (tb TrialBalance) Balance(code string) decimal.Decimal {
	if b, ok := tb.balances[code]; ok {
		return b
	}
	return decimal.Zero
}

// Balances returns a copy of the underlying map.
func (tb TrialBalance) Balances() map[string]decimal.Decimal {
	cp := make(map[string]decimal.Decimal, len(tb.balances))
	for k, v := range tb.balances {
		cp[k] = v
	}
	return cp
}

// Accounts returns the account codes present, sorted.
func (tb TrialBalance) Accounts() []string {
	codes := make([]string, 0, len(tb.balances))
	for code := range tb.balances {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// TotalDebits sums the positive balances.
func (tb TrialBalance) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, b := range tb.balances {
		if b.IsPositive() {
			total = total.Add(b)
		}
	}
	return total
}

// TotalCredits sums the absolute value of the negative balances.
func (tb TrialBalance) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, b := range tb.balances {
		if b.IsNegative() {
			total = total.Add(b.Abs())
		}
	}
	return total
}

func (tb TrialBalance) IsBalanced() bool {
	return tb.TotalDebits().Equal(tb.TotalCredits())
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Category    AccountCategory `json:"category,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Rows lays the balances out in debit/credit columns ordered by account code.
// lookup and classifier may be nil.
func (tb TrialBalance) Rows(lookup AccountLookup, classifier AccountClassifier) []TrialBalanceRow {
	codes := tb.Accounts()
	rows := make([]TrialBalanceRow, 0, len(codes))
	for _, code := range codes {
		b := tb.balances[code]
		row := TrialBalanceRow{AccountCode: code, Debit: decimal.Zero, Credit: decimal.Zero}
		if b.IsNegative() {
			row.Credit = b.Abs()
		} else {
			row.Debit = b
		}
		if lookup != nil {
			if acc, ok := lookup.Lookup(code); ok {
				row.AccountName = acc.Name
				row.Category = acc.Category
			}
		}
		if row.Category == "" && classifier != nil {
			if cat, ok := classifier.Classify(code); ok {
				row.Category = cat
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// TrialBalanceReport is the presentation form of a TrialBalance.
type TrialBalanceReport struct {
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	Balanced     bool              `json:"balanced"`
}

// Report builds the row layout plus totals.
func (tb TrialBalance) Report(lookup AccountLookup, classifier AccountClassifier) TrialBalanceReport {
	return TrialBalanceReport{
		From:         tb.From,
		To:           tb.To,
		Rows:         tb.Rows(lookup, classifier),
		TotalDebits:  tb.TotalDebits(),
		TotalCredits: tb.TotalCredits(),
		Balanced:     tb.IsBalanced(),
	}
}
