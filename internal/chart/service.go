// Package chart provides lookup over an existing chart of accounts.
package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/accountflow/accountflow/internal/model"
)

// Service provides in-memory lookup over chart-of-accounts records.
type Service struct {
	accounts []model.Account
	byCode   map[string]model.Account
	byName   map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byCode := make(map[string]model.Account, len(accounts))
	byName := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a
		byName[a.Name] = a
	}
	return &Service{accounts: accounts, byCode: byCode, byName: byName}
}

// Load reads accounts/chart-of-accounts.csv from a workspace root.
func Load(workspace string) (*Service, error) {
	path := filepath.Join(workspace, "accounts", "chart-of-accounts.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// ByCode returns the account with the given code.
func (s *Service) ByCode(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// ByName returns the account with the given name.
func (s *Service) ByName(name string) (model.Account, bool) {
	a, ok := s.byName[name]
	return a, ok
}

// Exists reports whether an account code exists.
func (s *Service) Exists(code string) bool {
	_, ok := s.byCode[code]
	return ok
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(subjectType model.SubjectType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == subjectType {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(workspace string) error {
	dir := filepath.Join(workspace, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	path := filepath.Join(dir, "chart-of-accounts.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
