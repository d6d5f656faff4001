package http

import (
	"context"
	"sync"

	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/classifier"
	r "github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/repository"
)

type ClassifierStub struct {
	Predictions []classifier.Prediction
	Err         error
}

func (c *ClassifierStub) Classify(context.Context, string) ([]classifier.Prediction, error) {
	return c.Predictions, c.Err
}

type ReceiptStoreStub struct {
	mu    sync.Mutex
	byKey map[string]*domain.Receipt
	saved int
}

func (s *ReceiptStoreStub) SaveReceipt(_ context.Context, receipt *domain.Receipt, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved++
	if key == "" {
		return nil
	}
	if s.byKey == nil {
		s.byKey = map[string]*domain.Receipt{}
	}
	if _, ok := s.byKey[key]; ok {
		return r.ErrDuplicateReceipt
	}
	cp := *receipt
	s.byKey[key] = &cp
	return nil
}

func (s *ReceiptStoreStub) GetReceiptByIdempotencyKey(_ context.Context, key string) (*domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rc, ok := s.byKey[key]; ok {
		return rc, nil
	}
	return nil, r.ErrIdempotencyKeyNotFound
}
