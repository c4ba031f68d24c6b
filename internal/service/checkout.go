package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/serahk/pantrylane/internal/domain"
)

// How long a finished flow shows its outcome before returning to idle.
const outcomeResetDelay = 3 * time.Second

// CheckoutStatus is the flow state reported to the storefront, used to
// restore the right view after a reload.
type CheckoutStatus struct {
	State     string `json:"state"`
	LastError string `json:"lastError,omitempty"`
}

type checkoutFlow struct {
	state      string
	lastError  string
	resetTimer *time.Timer
}

func (f *checkoutFlow) stopReset() {
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
}

// CheckoutService drives the order confirmation flow. Each session moves
// through idle, collecting, submitting and succeeded; a failed submission
// drops the flow back to collecting with the cart intact.
type CheckoutService struct {
	mu    sync.Mutex
	flows map[string]*checkoutFlow

	cart   domain.CartService
	sink   domain.SubmissionSink
	store  *SessionStore
	logger *slog.Logger

	now        func() time.Time
	resetDelay time.Duration
}

// NewCheckoutService creates a new CheckoutService instance.
func NewCheckoutService(cart domain.CartService, sink domain.SubmissionSink, store *SessionStore, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		flows:      make(map[string]*checkoutFlow),
		cart:       cart,
		sink:       sink,
		store:      store,
		logger:     logger,
		now:        time.Now,
		resetDelay: outcomeResetDelay,
	}
}

// flow returns the session's flow, creating an idle one if absent.
// Callers must hold s.mu.
func (s *CheckoutService) flow(sessionID string) *checkoutFlow {
	f, ok := s.flows[sessionID]
	if !ok {
		f = &checkoutFlow{state: domain.CheckoutIdle}
		s.flows[sessionID] = f
	}
	return f
}

// Start opens the confirmation flow for the session's current cart. The
// cart is snapshotted into the session store so a reload can restore it.
func (s *CheckoutService) Start(ctx context.Context, sessionID string) (*CheckoutStatus, error) {
	summary, err := s.cart.Summary(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(summary.Lines) == 0 {
		return nil, domain.Invalid("checkout.Start", "Your cart is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.flow(sessionID)
	if f.state == domain.CheckoutSubmitting {
		return nil, domain.Conflict("checkout.Start", "An order submission is already in progress")
	}
	f.stopReset()

	if err := s.store.Set(sessionID, StateCart, summary.Lines); err != nil {
		return nil, domain.Internal(err, "checkout.Start", "failed to save cart snapshot")
	}

	f.state = domain.CheckoutCollecting
	f.lastError = ""
	return &CheckoutStatus{State: f.state}, nil
}

// Submit validates the buyer details and hands the order to the sink.
// While the sink call is in flight the flow is submitting and duplicate
// submits are rejected.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, details domain.BuyerDetails) (*domain.SubmissionResult, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	f := s.flow(sessionID)
	switch f.state {
	case domain.CheckoutSubmitting:
		s.mu.Unlock()
		return nil, domain.Conflict("checkout.Submit", "An order submission is already in progress")
	case domain.CheckoutCollecting:
		// proceed
	default:
		s.mu.Unlock()
		return nil, domain.Conflict("checkout.Submit", "No checkout in progress")
	}
	f.state = domain.CheckoutSubmitting
	s.mu.Unlock()

	summary, err := s.cart.Summary(ctx, sessionID)
	if err != nil {
		s.failSubmit(sessionID, "failed to read cart")
		return nil, err
	}

	order := domain.OrderSubmission{
		BuyerDetails: details,
		Cart:         summary.Lines,
		OrderDate:    s.now().UTC(),
	}

	result := s.sink.SubmitOrder(ctx, order)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !result.Success {
		f.state = domain.CheckoutCollecting
		f.lastError = result.Message
		s.logger.Warn("order submission failed", "session_id", sessionID, "message", result.Message)
		return &result, nil
	}

	if err := s.store.Set(sessionID, StateOrderDetails, order); err != nil {
		s.logger.Error("failed to save order details", "error", err)
	}
	s.store.Delete(sessionID, StateCart)
	if err := s.cart.Clear(ctx, sessionID); err != nil {
		s.logger.Error("failed to clear cart after order", "error", err)
	}

	f.state = domain.CheckoutSucceeded
	f.lastError = ""
	s.scheduleReset(sessionID, f)

	s.logger.Info("order submitted", "session_id", sessionID, "items", len(order.Cart))
	return &result, nil
}

// Cancel abandons the confirmation flow. The cart is untouched.
func (s *CheckoutService) Cancel(ctx context.Context, sessionID string) (*CheckoutStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.flow(sessionID)
	switch f.state {
	case domain.CheckoutSubmitting:
		return nil, domain.Conflict("checkout.Cancel", "An order submission is already in progress")
	case domain.CheckoutSucceeded:
		f.stopReset()
	}

	f.state = domain.CheckoutIdle
	f.lastError = ""
	return &CheckoutStatus{State: f.state}, nil
}

// Status reports the session's current flow state.
func (s *CheckoutService) Status(sessionID string) *CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.flow(sessionID)
	return &CheckoutStatus{State: f.state, LastError: f.lastError}
}

// failSubmit drops a flow that was marked submitting back to collecting.
func (s *CheckoutService) failSubmit(sessionID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.flow(sessionID)
	f.state = domain.CheckoutCollecting
	f.lastError = message
}

// scheduleReset returns the flow to idle after the outcome has been shown.
// Callers must hold s.mu.
func (s *CheckoutService) scheduleReset(sessionID string, f *checkoutFlow) {
	f.stopReset()
	f.resetTimer = time.AfterFunc(s.resetDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if current, ok := s.flows[sessionID]; ok && current.state == domain.CheckoutSucceeded {
			current.state = domain.CheckoutIdle
			current.resetTimer = nil
		}
	})
}
