// Package testutil provides hand-written mock implementations of the
// repository interfaces for use in service and handler tests.
package testutil

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/websocket"
)

// MockAccountRepository is a mock implementation of domain.AccountRepository.
// Insertion order is preserved so listings are deterministic.
type MockAccountRepository struct {
	Accounts map[string]*domain.Account
	Order    []string
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts: make(map[string]*domain.Account),
	}
}

// AddAccount seeds an account (helper for tests)
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	if _, ok := m.Accounts[account.Name]; !ok {
		m.Order = append(m.Order, account.Name)
	}
	m.Accounts[account.Name] = account
}

// Create creates a new account
func (m *MockAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	if _, ok := m.Accounts[account.Name]; ok {
		return nil, domain.ErrAlreadyExists
	}
	m.AddAccount(account)
	return account, nil
}

// GetByName retrieves an account by name
func (m *MockAccountRepository) GetByName(name string) (*domain.Account, error) {
	if account, ok := m.Accounts[name]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

// GetAll retrieves all accounts in insertion order
func (m *MockAccountRepository) GetAll() ([]*domain.Account, error) {
	result := make([]*domain.Account, 0, len(m.Order))
	for _, name := range m.Order {
		result = append(result, m.Accounts[name])
	}
	return result, nil
}

// Update updates an existing account
func (m *MockAccountRepository) Update(account *domain.Account) (*domain.Account, error) {
	if _, ok := m.Accounts[account.Name]; !ok {
		return nil, domain.ErrAccountNotFound
	}
	m.Accounts[account.Name] = account
	return account, nil
}

// Delete removes an account
func (m *MockAccountRepository) Delete(name string) error {
	if _, ok := m.Accounts[name]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.Accounts, name)
	for i, n := range m.Order {
		if n == name {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	return nil
}

// MockItemRepository is a mock implementation of domain.RecurringItemRepository
type MockItemRepository struct {
	Items map[uuid.UUID]*domain.RecurringItem
	Order []uuid.UUID
}

// NewMockItemRepository creates a new MockItemRepository
func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		Items: make(map[uuid.UUID]*domain.RecurringItem),
	}
}

// AddItem seeds a recurring item (helper for tests)
func (m *MockItemRepository) AddItem(item *domain.RecurringItem) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if _, ok := m.Items[item.ID]; !ok {
		m.Order = append(m.Order, item.ID)
	}
	m.Items[item.ID] = item
}

// Create creates a new recurring item
func (m *MockItemRepository) Create(item *domain.RecurringItem) (*domain.RecurringItem, error) {
	m.AddItem(item)
	return item, nil
}

// GetByID retrieves a recurring item by ID
func (m *MockItemRepository) GetByID(id uuid.UUID) (*domain.RecurringItem, error) {
	if item, ok := m.Items[id]; ok {
		return item, nil
	}
	return nil, domain.ErrItemNotFound
}

// GetAll retrieves all recurring items in insertion order
func (m *MockItemRepository) GetAll() ([]*domain.RecurringItem, error) {
	result := make([]*domain.RecurringItem, 0, len(m.Order))
	for _, id := range m.Order {
		result = append(result, m.Items[id])
	}
	return result, nil
}

// Update updates an existing recurring item
func (m *MockItemRepository) Update(item *domain.RecurringItem) (*domain.RecurringItem, error) {
	if _, ok := m.Items[item.ID]; !ok {
		return nil, domain.ErrItemNotFound
	}
	m.Items[item.ID] = item
	return item, nil
}

// Delete removes a recurring item
func (m *MockItemRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(m.Items, id)
	for i, existing := range m.Order {
		if existing == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	return nil
}

// MockRevisionRepository is a mock implementation of domain.RevisionRepository
type MockRevisionRepository struct {
	Revisions map[uuid.UUID]*domain.BudgetRevision
	Order     []uuid.UUID
}

// NewMockRevisionRepository creates a new MockRevisionRepository
func NewMockRevisionRepository() *MockRevisionRepository {
	return &MockRevisionRepository{
		Revisions: make(map[uuid.UUID]*domain.BudgetRevision),
	}
}

// AddRevision seeds a revision (helper for tests)
func (m *MockRevisionRepository) AddRevision(revision *domain.BudgetRevision) {
	if revision.ID == uuid.Nil {
		revision.ID = uuid.New()
	}
	if _, ok := m.Revisions[revision.ID]; !ok {
		m.Order = append(m.Order, revision.ID)
	}
	m.Revisions[revision.ID] = revision
}

// Create creates a new revision
func (m *MockRevisionRepository) Create(revision *domain.BudgetRevision) (*domain.BudgetRevision, error) {
	m.AddRevision(revision)
	return revision, nil
}

// GetByID retrieves a revision by ID
func (m *MockRevisionRepository) GetByID(id uuid.UUID) (*domain.BudgetRevision, error) {
	if revision, ok := m.Revisions[id]; ok {
		return revision, nil
	}
	return nil, domain.ErrRevisionNotFound
}

// GetAll retrieves all revisions in insertion order
func (m *MockRevisionRepository) GetAll() ([]*domain.BudgetRevision, error) {
	result := make([]*domain.BudgetRevision, 0, len(m.Order))
	for _, id := range m.Order {
		result = append(result, m.Revisions[id])
	}
	return result, nil
}

// Delete removes a revision
func (m *MockRevisionRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Revisions[id]; !ok {
		return domain.ErrRevisionNotFound
	}
	delete(m.Revisions, id)
	for i, existing := range m.Order {
		if existing == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	return nil
}

// MockExportRepository captures exported objects in memory
type MockExportRepository struct {
	mu      sync.Mutex
	Objects map[string][]byte
	PutErr  error
}

// NewMockExportRepository creates a new MockExportRepository
func NewMockExportRepository() *MockExportRepository {
	return &MockExportRepository{Objects: make(map[string][]byte)}
}

// Put stores an object in memory and returns its key
func (m *MockExportRepository) Put(_ context.Context, key string, data io.Reader, _ string, _ int64) (string, error) {
	if m.PutErr != nil {
		return "", m.PutErr
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(data); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = buf.Bytes()
	return key, nil
}

// Delete removes a stored object
func (m *MockExportRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	return nil
}

// GeneratePresignedURL returns a stable fake URL for the object
func (m *MockExportRepository) GeneratePresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://exports.test/" + key, nil
}

// MockPublisher records published websocket events
type MockPublisher struct {
	mu     sync.Mutex
	Events []websocket.Event
}

// Publish records the event
func (m *MockPublisher) Publish(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// PublishedTypes returns the recorded event type strings
func (m *MockPublisher) PublishedTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, event := range m.Events {
		types[i] = event.Type
	}
	return types
}
