package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/serahk/pantrylane/internal/domain"
	"github.com/serahk/pantrylane/internal/service"
)

// mockWishlist implements WishlistPipeline for testing
type mockWishlist struct {
	setUserDetailsFunc func(ctx context.Context, sessionID string, details domain.UserDetails) error
	viewFunc           func(ctx context.Context, sessionID string) (*service.WishlistView, error)
	addItemFunc        func(ctx context.Context, sessionID string, item domain.WishlistItem) (*service.WishlistView, error)
	removeItemFunc     func(ctx context.Context, sessionID string, index int) (*service.WishlistView, error)
	submitFunc         func(ctx context.Context, sessionID string, feedback string) (*domain.SubmissionResult, error)
}

func (m *mockWishlist) SetUserDetails(ctx context.Context, sessionID string, details domain.UserDetails) error {
	if m.setUserDetailsFunc != nil {
		return m.setUserDetailsFunc(ctx, sessionID, details)
	}
	return nil
}

func (m *mockWishlist) View(ctx context.Context, sessionID string) (*service.WishlistView, error) {
	if m.viewFunc != nil {
		return m.viewFunc(ctx, sessionID)
	}
	return &service.WishlistView{}, nil
}

func (m *mockWishlist) AddItem(ctx context.Context, sessionID string, item domain.WishlistItem) (*service.WishlistView, error) {
	if m.addItemFunc != nil {
		return m.addItemFunc(ctx, sessionID, item)
	}
	return &service.WishlistView{}, nil
}

func (m *mockWishlist) RemoveItem(ctx context.Context, sessionID string, index int) (*service.WishlistView, error) {
	if m.removeItemFunc != nil {
		return m.removeItemFunc(ctx, sessionID, index)
	}
	return &service.WishlistView{}, nil
}

func (m *mockWishlist) Submit(ctx context.Context, sessionID string, feedback string) (*domain.SubmissionResult, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, sessionID, feedback)
	}
	return &domain.SubmissionResult{Success: true, Message: "Wishlist submitted successfully!"}, nil
}

func TestWishlistUserDetailsHandler(t *testing.T) {
	t.Run("valid details are accepted", func(t *testing.T) {
		var got domain.UserDetails
		wl := &mockWishlist{
			setUserDetailsFunc: func(ctx context.Context, sessionID string, details domain.UserDetails) error {
				got = details
				return nil
			},
		}
		h := NewWishlistHandler(wl, discardLogger(), false)

		body := `{"name": "Asha Nair", "email": "asha@example.com", "phone": "5551234567", "address": "12 Harbor Lane"}`
		req := httptest.NewRequest(http.MethodPost, "/handoff/user-details", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.UserDetails(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Name != "Asha Nair" {
			t.Errorf("expected Asha Nair, got %q", got.Name)
		}
	})

	t.Run("invalid details return field errors", func(t *testing.T) {
		wl := &mockWishlist{
			setUserDetailsFunc: func(ctx context.Context, sessionID string, details domain.UserDetails) error {
				return &domain.ValidationError{Op: "wishlist.details", Fields: map[string]string{
					"email": "Please enter a valid email address",
				}}
			},
		}
		h := NewWishlistHandler(wl, discardLogger(), false)

		req := httptest.NewRequest(http.MethodPost, "/handoff/user-details", strings.NewReader(`{"name": "Asha"}`))
		rec := httptest.NewRecorder()
		h.UserDetails(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Please enter a valid email address") {
			t.Errorf("expected email field error, got %s", rec.Body.String())
		}
	})
}

func TestWishlistViewHandler(t *testing.T) {
	t.Run("redirects home without user details", func(t *testing.T) {
		wl := &mockWishlist{
			viewFunc: func(ctx context.Context, sessionID string) (*service.WishlistView, error) {
				return nil, service.ErrUserDetailsRequired
			},
		}
		h := NewWishlistHandler(wl, discardLogger(), false)

		req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
		rec := httptest.NewRecorder()
		h.View(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/" {
			t.Errorf("expected redirect to /, got %q", loc)
		}
	})

	t.Run("returns the wishlist view", func(t *testing.T) {
		wl := &mockWishlist{
			viewFunc: func(ctx context.Context, sessionID string) (*service.WishlistView, error) {
				return &service.WishlistView{
					UserDetails: domain.UserDetails{Name: "Asha Nair"},
					Items: []domain.WishlistItem{
						{ItemName: "Cardamom pods", Quantity: "2", Weight: "100g", Category: domain.WishlistOnline},
					},
				}, nil
			},
		}
		h := NewWishlistHandler(wl, discardLogger(), false)

		req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
		rec := httptest.NewRecorder()
		h.View(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Cardamom pods") {
			t.Errorf("expected item in view, got %s", rec.Body.String())
		}
	})
}

func TestWishlistRemoveItemHandler(t *testing.T) {
	var gotIndex int
	wl := &mockWishlist{
		removeItemFunc: func(ctx context.Context, sessionID string, index int) (*service.WishlistView, error) {
			gotIndex = index
			if index > 0 {
				return nil, domain.NotFound("wishlist.RemoveItem", "wishlist item", "1")
			}
			return &service.WishlistView{}, nil
		},
	}
	h := NewWishlistHandler(wl, discardLogger(), false)

	req := httptest.NewRequest(http.MethodPost, "/wishlist/items/remove", strings.NewReader(`{"index": 0}`))
	rec := httptest.NewRecorder()
	h.RemoveItem(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotIndex != 0 {
		t.Errorf("expected index 0, got %d", gotIndex)
	}

	req = httptest.NewRequest(http.MethodPost, "/wishlist/items/remove", strings.NewReader(`{"index": 1}`))
	rec = httptest.NewRecorder()
	h.RemoveItem(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for out-of-range index, got %d", rec.Code)
	}
}

func TestWishlistSubmitHandler(t *testing.T) {
	var gotFeedback string
	wl := &mockWishlist{
		submitFunc: func(ctx context.Context, sessionID string, feedback string) (*domain.SubmissionResult, error) {
			gotFeedback = feedback
			return &domain.SubmissionResult{Success: true, Message: "Wishlist submitted successfully!"}, nil
		},
	}
	h := NewWishlistHandler(wl, discardLogger(), false)

	req := httptest.NewRequest(http.MethodPost, "/wishlist/submit", strings.NewReader(`{"feedback": "Please call first"}`))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotFeedback != "Please call first" {
		t.Errorf("expected feedback to pass through, got %q", gotFeedback)
	}
	if !strings.Contains(rec.Body.String(), "Wishlist submitted successfully!") {
		t.Error("expected success message")
	}
}
