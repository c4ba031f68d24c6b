package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/serahk/pantrylane/internal/domain"
	"github.com/serahk/pantrylane/internal/service"
)

// mockCheckoutFlow implements CheckoutFlow for testing
type mockCheckoutFlow struct {
	startFunc  func(ctx context.Context, sessionID string) (*service.CheckoutStatus, error)
	submitFunc func(ctx context.Context, sessionID string, details domain.BuyerDetails) (*domain.SubmissionResult, error)
	cancelFunc func(ctx context.Context, sessionID string) (*service.CheckoutStatus, error)
	statusFunc func(sessionID string) *service.CheckoutStatus
}

func (m *mockCheckoutFlow) Start(ctx context.Context, sessionID string) (*service.CheckoutStatus, error) {
	if m.startFunc != nil {
		return m.startFunc(ctx, sessionID)
	}
	return &service.CheckoutStatus{State: domain.CheckoutCollecting}, nil
}

func (m *mockCheckoutFlow) Submit(ctx context.Context, sessionID string, details domain.BuyerDetails) (*domain.SubmissionResult, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, sessionID, details)
	}
	return &domain.SubmissionResult{Success: true, Message: "Order submitted successfully!"}, nil
}

func (m *mockCheckoutFlow) Cancel(ctx context.Context, sessionID string) (*service.CheckoutStatus, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, sessionID)
	}
	return &service.CheckoutStatus{State: domain.CheckoutIdle}, nil
}

func (m *mockCheckoutFlow) Status(sessionID string) *service.CheckoutStatus {
	if m.statusFunc != nil {
		return m.statusFunc(sessionID)
	}
	return &service.CheckoutStatus{State: domain.CheckoutIdle}
}

func TestCheckoutStartHandler(t *testing.T) {
	tests := []struct {
		name           string
		startFunc      func(ctx context.Context, sessionID string) (*service.CheckoutStatus, error)
		expectedStatus int
		expectedState  string
	}{
		{
			name:           "opens the flow",
			expectedStatus: http.StatusOK,
			expectedState:  domain.CheckoutCollecting,
		},
		{
			name: "empty cart is rejected",
			startFunc: func(ctx context.Context, sessionID string) (*service.CheckoutStatus, error) {
				return nil, domain.Invalid("checkout.Start", "Your cart is empty")
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "in-flight submission is a conflict",
			startFunc: func(ctx context.Context, sessionID string) (*service.CheckoutStatus, error) {
				return nil, domain.Conflict("checkout.Start", "An order submission is already in progress")
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCheckoutHandler(&mockCheckoutFlow{startFunc: tt.startFunc}, discardLogger(), false)

			req := httptest.NewRequest(http.MethodPost, "/checkout/start", nil)
			rec := httptest.NewRecorder()
			h.Start(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedState != "" {
				var status service.CheckoutStatus
				if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
					t.Fatalf("decoding body: %v", err)
				}
				if status.State != tt.expectedState {
					t.Errorf("expected state %q, got %q", tt.expectedState, status.State)
				}
			}
		})
	}
}

func TestCheckoutSubmitHandler(t *testing.T) {
	body := `{
		"name": "Asha Nair",
		"email": "asha@example.com",
		"phone": "5551234567",
		"address": "12 Harbor Lane, Springfield",
		"preferredContact": "WhatsApp"
	}`

	t.Run("passes details through and returns the result", func(t *testing.T) {
		var gotDetails domain.BuyerDetails
		flow := &mockCheckoutFlow{
			submitFunc: func(ctx context.Context, sessionID string, details domain.BuyerDetails) (*domain.SubmissionResult, error) {
				gotDetails = details
				return &domain.SubmissionResult{Success: true, Message: "Order submitted successfully!"}, nil
			},
		}
		h := NewCheckoutHandler(flow, discardLogger(), false)

		req := httptest.NewRequest(http.MethodPost, "/checkout/submit", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Submit(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotDetails.PreferredContact != domain.ContactWhatsApp {
			t.Errorf("expected WhatsApp, got %q", gotDetails.PreferredContact)
		}
		if !strings.Contains(rec.Body.String(), "Order submitted successfully!") {
			t.Error("expected success message in response")
		}
	})

	t.Run("validation failure returns field errors", func(t *testing.T) {
		flow := &mockCheckoutFlow{
			submitFunc: func(ctx context.Context, sessionID string, details domain.BuyerDetails) (*domain.SubmissionResult, error) {
				return nil, &domain.ValidationError{Op: "order.details", Fields: map[string]string{
					"phone": "Phone number must be at least 10 digits",
				}}
			},
		}
		h := NewCheckoutHandler(flow, discardLogger(), false)

		req := httptest.NewRequest(http.MethodPost, "/checkout/submit", strings.NewReader(`{"name": "Asha"}`))
		rec := httptest.NewRecorder()
		h.Submit(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"phone":"Phone number must be at least 10 digits"`) {
			t.Errorf("expected phone field error, got %s", rec.Body.String())
		}
	})

	t.Run("sink failure is a 200 with the failure message", func(t *testing.T) {
		flow := &mockCheckoutFlow{
			submitFunc: func(ctx context.Context, sessionID string, details domain.BuyerDetails) (*domain.SubmissionResult, error) {
				return &domain.SubmissionResult{Success: false, Message: "Failed to submit order: relay unreachable"}, nil
			},
		}
		h := NewCheckoutHandler(flow, discardLogger(), false)

		req := httptest.NewRequest(http.MethodPost, "/checkout/submit", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Submit(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"success":false`) {
			t.Errorf("expected unsuccessful result, got %s", rec.Body.String())
		}
	})
}

func TestCheckoutStatusHandler(t *testing.T) {
	flow := &mockCheckoutFlow{
		statusFunc: func(sessionID string) *service.CheckoutStatus {
			return &service.CheckoutStatus{State: domain.CheckoutCollecting, LastError: "Failed to submit order: relay unreachable"}
		},
	}
	h := NewCheckoutHandler(flow, discardLogger(), false)

	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), domain.CheckoutCollecting) {
		t.Errorf("expected collecting state, got %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "relay unreachable") {
		t.Errorf("expected last error in status, got %s", rec.Body.String())
	}
}
