package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/general_ledger/internal/apperrors"
)

// AccountCategory defines the fundamental accounting type of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// ParseAccountCategory accepts the category names case-insensitively. INCOME is an alias for REVENUE.
func ParseAccountCategory(s string) (AccountCategory, error) {
	switch c := AccountCategory(strings.ToUpper(strings.TrimSpace(s))); c {
	case Asset, Liability, Equity, Revenue, Expense:
		return c, nil
	case "INCOME":
		return Revenue, nil
	}
	return "", fmt.Errorf("%w: unknown account category %q", apperrors.ErrValidation, s)
}

// Account is a chart-of-accounts entry.
type Account struct {
	Code        string          `json:"code" yaml:"code"`
	Name        string          `json:"name" yaml:"name"`
	Category    AccountCategory `json:"category" yaml:"category"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	IsActive    bool            `json:"isActive" yaml:"active"`
}

// AccountClassifier maps an account code to its category.
type AccountClassifier interface {
	Classify(code string) (AccountCategory, bool)
}

// AccountClassifierFunc adapts a function to AccountClassifier.
type AccountClassifierFunc func(code string) (AccountCategory, bool)

func (f AccountClassifierFunc) Classify(code string) (AccountCategory, bool) {
	return f(code)
}

// AccountLookup resolves account codes against a chart of accounts.
type AccountLookup interface {
	Lookup(code string) (Account, bool)
}

// LeadingDigitClassifier classifies by the first digit of the code:
// 1 asset, 2 liability, 3 equity, 4 revenue, 5-9 expense.
type LeadingDigitClassifier struct{}

func (LeadingDigitClassifier) Classify(code string) (AccountCategory, bool) {
	if code == "" {
		return "", false
	}
	switch code[0] {
	case '1':
		return Asset, true
	case '2':
		return Liability, true
	case '3':
		return Equity, true
	case '4':
		return Revenue, true
	case '5', '6', '7', '8', '9':
		return Expense, true
	}
	return "", false
}

// FirstMatch tries each classifier in order.
func FirstMatch(classifiers ...AccountClassifier) AccountClassifier {
	return AccountClassifierFunc(func(code string) (AccountCategory, bool) {
		for _, c := range classifiers {
			if c == nil {
				continue
			}
			if cat, ok := c.Classify(code); ok {
				return cat, true
			}
		}
		return "", false
	})
}

// ChartOfAccounts is an immutable set of accounts keyed by code.
type ChartOfAccounts struct {
	accounts map[string]Account
}

// NewChartOfAccounts rejects duplicate codes, empty codes and unknown categories.
func NewChartOfAccounts(accounts []Account) (*ChartOfAccounts, error) {
	chart := &ChartOfAccounts{accounts: make(map[string]Account, len(accounts))}
	for _, a := range accounts {
		a.Code = strings.TrimSpace(a.Code)
		if a.Code == "" {
			return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
		}
		cat, err := ParseAccountCategory(string(a.Category))
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", a.Code, err)
		}
		a.Category = cat
		if _, dup := chart.accounts[a.Code]; dup {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, a.Code)
		}
		chart.accounts[a.Code] = a
	}
	return chart, nil
}

func (c *ChartOfAccounts) Lookup(code string) (Account, bool) {
	if c == nil {
		return Account{}, false
	}
	a, ok := c.accounts[code]
	return a, ok
}

func (c *ChartOfAccounts) Exists(code string) bool {
	_, ok := c.Lookup(code)
	return ok
}

func (c *ChartOfAccounts) Classify(code string) (AccountCategory, bool) {
	a, ok := c.Lookup(code)
	if !ok {
		return "", false
	}
	return a.Category, true
}

// Accounts returns every account sorted by code.
func (c *ChartOfAccounts) Accounts() []Account {
	if c == nil {
		return nil
	}
	out := make([]Account, 0, len(c.accounts))
	for _, a := range c.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (c *ChartOfAccounts) Len() int {
	if c == nil {
		return 0
	}
	return len(c.accounts)
}
