package scanner

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/client"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/normalizer"
	"go.uber.org/zap"
)

// DefaultConfidenceThreshold is the lowest confidence accepted into the cart.
const DefaultConfidenceThreshold = 0.6

type Predictor interface {
	Predict(ctx context.Context, image string) (client.ScanResult, error)
}

type Catalog interface {
	Lookup(ctx context.Context, key string) (domain.Product, error)
	ByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error)
}

type Cart interface {
	AddOrMerge(in normalizer.ItemInput) (domain.CartLineItem, bool)
}

type Notifier interface {
	Notify(message string, severity domain.Severity) domain.Notification
}

type Outcome string

const (
	OutcomeAccepted       Outcome = "accepted"
	OutcomeLowConfidence  Outcome = "low_confidence"
	OutcomeUnknownProduct Outcome = "unknown_product"
)

type ScanOutcome struct {
	Outcome Outcome              `json:"outcome"`
	Result  client.ScanResult    `json:"result"`
	Item    *domain.CartLineItem `json:"item,omitempty"`
	Merged  bool                 `json:"merged"`
}

// Service feeds scan results and catalog selections into the cart.
type Service struct {
	predictor Predictor
	catalog   Catalog
	cart      Cart
	notifier  Notifier
	threshold float64
	scanning  atomic.Bool
	log       *zap.Logger
}

func NewService(predictor Predictor, catalog Catalog, cart Cart, notifier Notifier, threshold float64, log *zap.Logger) *Service {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultConfidenceThreshold
	}
	return &Service{
		predictor: predictor,
		catalog:   catalog,
		cart:      cart,
		notifier:  notifier,
		threshold: threshold,
		log:       log,
	}
}

// Scan classifies one image. Only one scan runs at a time.
func (s *Service) Scan(ctx context.Context, image string) (ScanOutcome, error) {
	if strings.TrimSpace(image) == "" {
		return ScanOutcome{}, ErrEmptyImage
	}
	if !s.scanning.CompareAndSwap(false, true) {
		return ScanOutcome{}, ErrScanInProgress
	}
	defer s.scanning.Store(false)

	result, err := s.predictor.Predict(ctx, image)
	if err != nil {
		s.log.Warn("scan failed", zap.Error(err))
		s.notifier.Notify("Error: "+err.Error(), domain.SeverityError)
		return ScanOutcome{}, err
	}

	log := s.log.With(zap.String("prediction", result.Prediction), zap.Float64("confidence", result.Confidence))
	if result.Confidence < s.threshold {
		log.Info("scan below confidence threshold")
		s.notifier.Notify(fmt.Sprintf("Low confidence: %.1f%%", result.Confidence*100), domain.SeverityInfo)
		return ScanOutcome{Outcome: OutcomeLowConfidence, Result: result}, nil
	}
	if result.Product == nil {
		log.Info("scanned label is not in the catalog")
		s.notifier.Notify(fmt.Sprintf("%s is not in the catalog", result.Prediction), domain.SeverityInfo)
		return ScanOutcome{Outcome: OutcomeUnknownProduct, Result: result}, nil
	}

	price := result.Product.Price
	confidence := result.Confidence
	in, err := normalizer.Normalize(normalizer.RawItem{
		Name:       result.Prediction,
		Price:      &price,
		Confidence: &confidence,
		Product:    result.Product,
	})
	if err != nil {
		return ScanOutcome{}, fmt.Errorf("normalize scan result: %w", err)
	}

	item, merged := s.cart.AddOrMerge(in)
	log.Info("scan accepted", zap.String("item_id", item.ID), zap.Bool("merged", merged))
	return ScanOutcome{Outcome: OutcomeAccepted, Result: result, Item: &item, Merged: merged}, nil
}

// SelectProduct adds a catalog product chosen by id or name.
func (s *Service) SelectProduct(ctx context.Context, key string) (domain.CartLineItem, bool, error) {
	product, err := s.catalog.Lookup(ctx, key)
	if err != nil {
		return domain.CartLineItem{}, false, err
	}

	price := product.Price
	in, err := normalizer.Normalize(normalizer.RawItem{
		Name:    product.Name,
		Price:   &price,
		Product: &product,
	})
	if err != nil {
		return domain.CartLineItem{}, false, fmt.Errorf("normalize product %q: %w", product.Name, err)
	}

	item, merged := s.cart.AddOrMerge(in)
	return item, merged, nil
}

func (s *Service) Products(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	return s.catalog.ByCategory(ctx, category)
}
