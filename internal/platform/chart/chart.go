// Package chart loads a chart of accounts from a YAML file.
package chart

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// accountEntry mirrors domain.Account with an optional active flag that defaults to true.
type accountEntry struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Active      *bool  `yaml:"active"`
}

type chartFile struct {
	Accounts []accountEntry `yaml:"accounts"`
}

// Load reads and parses the chart at path.
func Load(path string) (*domain.ChartOfAccounts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chart of accounts: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a chart of accounts document. Unknown fields are rejected.
func Parse(r io.Reader) (*domain.ChartOfAccounts, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file chartFile
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse chart of accounts: %w", err)
	}

	accounts := make([]domain.Account, 0, len(file.Accounts))
	for _, e := range file.Accounts {
		active := true
		if e.Active != nil {
			active = *e.Active
		}
		accounts = append(accounts, domain.Account{
			Code:        e.Code,
			Name:        e.Name,
			Category:    domain.AccountCategory(e.Category),
			Description: e.Description,
			IsActive:    active,
		})
	}
	return domain.NewChartOfAccounts(accounts)
}
