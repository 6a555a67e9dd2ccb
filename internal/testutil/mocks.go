package testutil

import (
	"recall/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockVaultRepository is a mock for repository.VaultRepository
type MockVaultRepository struct {
	mock.Mock
}

func (m *MockVaultRepository) LoadCards() ([]domain.Card, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *MockVaultRepository) Refresh() ([]domain.Card, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *MockVaultRepository) SaveCard(card domain.Card) error {
	args := m.Called(card)
	return args.Error(0)
}

// MockProgressRepository is a mock for repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Load() (map[string]domain.Progress, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Progress), args.Error(1)
}

func (m *MockProgressRepository) Save(cardID string, progress domain.Progress) error {
	args := m.Called(cardID, progress)
	return args.Error(0)
}

// MockTransferRepository is a mock for repository.TransferRepository
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) ImportAll(cards []domain.Card, progressByID map[string]domain.Progress, replace bool) error {
	args := m.Called(cards, progressByID, replace)
	return args.Error(0)
}
