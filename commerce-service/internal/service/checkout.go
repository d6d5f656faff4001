package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/payment"
	r "github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/repository"
	"go.uber.org/zap"
)

const receiptIDAttempts = 3

type Pricer interface {
	Calculate(ctx context.Context, items []domain.CartItem) (domain.Totals, error)
}

type ReceiptStore interface {
	SaveReceipt(ctx context.Context, receipt *domain.Receipt, idempotencyKey string) error
	GetReceiptByIdempotencyKey(ctx context.Context, key string) (*domain.Receipt, error)
}

type CheckoutService struct {
	pricer     Pricer
	authorizer payment.Authorizer
	store      ReceiptStore
	now        func() time.Time
	intn       func(int) int
	log        *zap.Logger
}

func NewCheckoutService(p Pricer, a payment.Authorizer, store ReceiptStore, log *zap.Logger) *CheckoutService {
	return &CheckoutService{
		pricer:     p,
		authorizer: a,
		store:      store,
		now:        time.Now,
		intn:       rand.IntN,
		log:        log.Named("checkout"),
	}
}

// Checkout prices the cart from the catalog, authorizes the payment and stores the receipt.
// A request whose idempotency key already produced a receipt gets that receipt back unchanged.
// Declined payments are not stored, so the same key may be retried.
func (s *CheckoutService) Checkout(ctx context.Context, req *domain.CheckoutRequest) (*domain.Receipt, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	method := req.PaymentMethod
	if method == "" {
		method = domain.PaymentMethodCard
	}
	if method != domain.PaymentMethodCard && method != domain.PaymentMethodWallet {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	if req.IdempotencyKey != "" {
		existing, err := s.store.GetReceiptByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			s.log.Info("duplicate checkout request",
				zap.String("idempotency_key", req.IdempotencyKey),
				zap.String("receipt_id", existing.ReceiptID))
			return existing, nil
		}
		if !errors.Is(err, r.ErrIdempotencyKeyNotFound) {
			return nil, fmt.Errorf("failed to check idempotency: %w", err)
		}
	}

	totals, err := s.pricer.Calculate(ctx, req.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to price cart: %w", err)
	}
	if totals.Subtotal.IsZero() {
		return nil, ErrNoBillableItems
	}

	decision := s.authorizer.Authorize(ctx, totals.Total, method)
	if !decision.Approved {
		s.log.Info("payment declined",
			zap.String("total", totals.Total.StringFixed(2)),
			zap.Stringer("refusal", decision.Refusal))
		return nil, &DeclinedError{Reason: decision.Reason()}
	}

	receipt := &domain.Receipt{
		Timestamp:     s.now().UTC(),
		Items:         req.Items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: method,
		Status:        domain.ReceiptStatusCompleted,
	}
	return s.save(ctx, receipt, req.IdempotencyKey)
}

func (s *CheckoutService) save(ctx context.Context, receipt *domain.Receipt, key string) (*domain.Receipt, error) {
	for range receiptIDAttempts {
		receipt.ReceiptID = s.receiptID()

		err := s.store.SaveReceipt(ctx, receipt, key)
		if err == nil {
			s.log.Info("checkout completed",
				zap.String("receipt_id", receipt.ReceiptID),
				zap.String("total", receipt.Total.StringFixed(2)))
			return receipt, nil
		}
		if !errors.Is(err, r.ErrDuplicateReceipt) {
			return nil, fmt.Errorf("failed to store receipt: %w", err)
		}

		// a concurrent request with the same key won the insert
		if key != "" {
			if existing, getErr := s.store.GetReceiptByIdempotencyKey(ctx, key); getErr == nil {
				return existing, nil
			}
		}
	}
	return nil, errReceiptIDCollision
}

// receiptID formats RCP-<unix seconds>-<1000..9999>.
func (s *CheckoutService) receiptID() string {
	return fmt.Sprintf("RCP-%d-%d", s.now().Unix(), 1000+s.intn(9000))
}
