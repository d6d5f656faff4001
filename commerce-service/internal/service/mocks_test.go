package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/catalog"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/classifier"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/payment"
	r "github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/repository"
	"github.com/shopspring/decimal"
)

type MockPricer struct {
	Totals domain.Totals
	Err    error
	Calls  int
}

func (m *MockPricer) Calculate(context.Context, []domain.CartItem) (domain.Totals, error) {
	m.Calls++
	return m.Totals, m.Err
}

type MockAuthorizer struct {
	Decision payment.Decision
	Calls    int
}

func (m *MockAuthorizer) Authorize(context.Context, decimal.Decimal, string) payment.Decision {
	m.Calls++
	return m.Decision
}

type MockStore struct {
	mu       sync.Mutex
	byKey    map[string]*domain.Receipt
	saved    []*domain.Receipt
	GetErr   error
	SaveErrs []error
}

func NewMockStore() *MockStore {
	return &MockStore{byKey: map[string]*domain.Receipt{}}
}

func (m *MockStore) SaveReceipt(_ context.Context, receipt *domain.Receipt, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SaveErrs) > 0 {
		err := m.SaveErrs[0]
		m.SaveErrs = m.SaveErrs[1:]
		if err != nil {
			return err
		}
	}
	cp := *receipt
	m.saved = append(m.saved, &cp)
	if key != "" {
		m.byKey[key] = &cp
	}
	return nil
}

func (m *MockStore) GetReceiptByIdempotencyKey(_ context.Context, key string) (*domain.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	rc, ok := m.byKey[key]
	if !ok {
		return nil, r.ErrIdempotencyKeyNotFound
	}
	return rc, nil
}

type MockClassifier struct {
	Predictions []classifier.Prediction
	Err         error
	Got         string
}

func (m *MockClassifier) Classify(_ context.Context, image string) ([]classifier.Prediction, error) {
	m.Got = image
	return m.Predictions, m.Err
}

type MockLookup struct {
	Products map[string]domain.Product
	Err      error
}

func (m *MockLookup) GetByName(_ context.Context, name string) (domain.Product, error) {
	if m.Err != nil {
		return domain.Product{}, m.Err
	}
	p, ok := m.Products[strings.ToLower(name)]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %q", catalog.ErrProductNotFound, name)
	}
	return p, nil
}
