package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/client"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCompletionDelay is how long a succeeded session stays visible before the cart is cleared.
const DefaultCompletionDelay = 3 * time.Second

const (
	msgPaymentDeclined = "Payment failed. Please try again."
	msgPaymentError    = "Payment processing failed. Please try again."
	msgThankYou        = "Thank you for your purchase!"
)

// Cart is the part of the cart store the orchestrator needs.
type Cart interface {
	View() ([]domain.CartLineItem, domain.Totals)
	Clear()
}

type Notifier interface {
	Notify(message string, severity domain.Severity) domain.Notification
}

// Orchestrator drives at most one checkout session at a time.
type Orchestrator struct {
	mu         sync.Mutex
	session    *domain.CheckoutSession
	completion *time.Timer

	cart     Cart
	payment  *PaymentHandler
	notifier Notifier
	delay    time.Duration
	now      func() time.Time
	log      *zap.Logger
}

func NewOrchestrator(cart Cart, payment *PaymentHandler, notifier Notifier, completionDelay time.Duration, log *zap.Logger) *Orchestrator {
	if completionDelay <= 0 {
		completionDelay = DefaultCompletionDelay
	}
	return &Orchestrator{
		cart:     cart,
		payment:  payment,
		notifier: notifier,
		delay:    completionDelay,
		now:      time.Now,
		log:      log,
	}
}

// Open snapshots the cart into a new session in the selecting state.
func (o *Orchestrator) Open(_ context.Context) (domain.CheckoutSession, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session != nil {
		return domain.CheckoutSession{}, ErrSessionOpen
	}
	items, totals := o.cart.View()
	if len(items) == 0 {
		return domain.CheckoutSession{}, ErrEmptyCart
	}

	o.session = &domain.CheckoutSession{
		ID:            uuid.NewString(),
		Items:         items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: domain.PaymentMethodCard,
		State:         domain.CheckoutStateSelecting,
		OpenedAt:      o.now().UTC(),
	}
	o.log.Info("checkout opened",
		zap.String("session_id", o.session.ID),
		zap.Int("line_items", len(items)),
		zap.String("total", totals.Total.StringFixed(2)))
	return snapshot(o.session), nil
}

// Session returns the open session, if any.
func (o *Orchestrator) Session() (domain.CheckoutSession, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		return domain.CheckoutSession{}, false
	}
	return snapshot(o.session), true
}

func (o *Orchestrator) SelectPaymentMethod(method domain.PaymentMethod) (domain.CheckoutSession, error) {
	if !method.Valid() {
		return domain.CheckoutSession{}, ErrInvalidPaymentMethod
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.requireState(domain.CheckoutStateSelecting); err != nil {
		return domain.CheckoutSession{}, err
	}
	o.session.PaymentMethod = method
	return snapshot(o.session), nil
}

// Confirm charges the session and blocks until the payment capability answers.
// The returned session is either succeeded or failed; a failed payment is not an error.
func (o *Orchestrator) Confirm(ctx context.Context) (domain.CheckoutSession, error) {
	o.mu.Lock()
	if err := o.requireState(domain.CheckoutStateSelecting); err != nil {
		o.mu.Unlock()
		return domain.CheckoutSession{}, err
	}
	if !o.session.State.CanTransitionTo(domain.CheckoutStateProcessing) {
		o.mu.Unlock()
		return domain.CheckoutSession{}, ErrIllegalTransition
	}
	o.session.State = domain.CheckoutStateProcessing
	sessionID := o.session.ID
	req := domain.NewPaymentRequest(*o.session)
	o.mu.Unlock()

	log := o.log.With(zap.String("session_id", sessionID))
	log.Info("processing payment", zap.String("payment_method", string(req.PaymentMethod)))

	receipt, payErr := o.payment.charge(ctx, sessionID, req)

	o.mu.Lock()
	defer o.mu.Unlock()

	// processing sessions cannot be cancelled, so the session is still ours
	if payErr != nil {
		o.session.State = domain.CheckoutStateFailed
		o.session.Failure = failureMessage(payErr)
		log.Warn("payment failed", zap.Error(payErr))
		o.notifier.Notify(o.session.Failure, domain.SeverityError)
		return snapshot(o.session), nil
	}

	o.session.State = domain.CheckoutStateSucceeded
	o.session.Receipt = &receipt
	log.Info("payment succeeded", zap.String("receipt_id", receipt.ReceiptID))
	o.completion = time.AfterFunc(o.delay, func() { o.complete(sessionID) })
	return snapshot(o.session), nil
}

// Retry returns a failed session to payment method selection.
func (o *Orchestrator) Retry() (domain.CheckoutSession, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.requireState(domain.CheckoutStateFailed); err != nil {
		return domain.CheckoutSession{}, err
	}
	if !o.session.State.CanTransitionTo(domain.CheckoutStateSelecting) {
		return domain.CheckoutSession{}, ErrIllegalTransition
	}
	o.session.State = domain.CheckoutStateSelecting
	o.session.Failure = ""
	return snapshot(o.session), nil
}

// Close dismisses the session. Selecting and failed sessions are discarded without touching the cart;
// a succeeded session completes right away.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	if o.session == nil {
		o.mu.Unlock()
		return ErrNoSession
	}

	switch o.session.State {
	case domain.CheckoutStateProcessing:
		o.mu.Unlock()
		return ErrPaymentInProgress
	case domain.CheckoutStateSucceeded:
		id := o.session.ID
		o.mu.Unlock()
		o.complete(id)
		return nil
	default:
		o.log.Info("checkout cancelled", zap.String("session_id", o.session.ID), zap.String("state", o.session.State.String()))
		o.session = nil
		o.mu.Unlock()
		return nil
	}
}

// Shutdown stops a pending completion. The session is left as is.
func (o *Orchestrator) Shutdown() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.completion != nil {
		o.completion.Stop()
		o.completion = nil
	}
}

func (o *Orchestrator) complete(sessionID string) {
	o.mu.Lock()
	if o.session == nil || o.session.ID != sessionID || o.session.State != domain.CheckoutStateSucceeded {
		o.mu.Unlock()
		return
	}
	if o.completion != nil {
		o.completion.Stop()
		o.completion = nil
	}
	o.session = nil
	o.mu.Unlock()

	o.cart.Clear()
	o.notifier.Notify(msgThankYou, domain.SeveritySuccess)
	o.log.Info("checkout completed", zap.String("session_id", sessionID))
}

// requireState must be called with o.mu held.
func (o *Orchestrator) requireState(want domain.CheckoutState) error {
	if o.session == nil {
		return ErrNoSession
	}
	if o.session.State == domain.CheckoutStateProcessing {
		return ErrPaymentInProgress
	}
	if o.session.State != want {
		return ErrIllegalTransition
	}
	return nil
}

func failureMessage(err error) string {
	if errors.Is(err, client.ErrPaymentDeclined) {
		return msgPaymentDeclined
	}
	return msgPaymentError
}

func snapshot(s *domain.CheckoutSession) domain.CheckoutSession {
	out := *s
	out.Items = append([]domain.CartLineItem(nil), s.Items...)
	if s.Receipt != nil {
		r := *s.Receipt
		out.Receipt = &r
	}
	return out
}
