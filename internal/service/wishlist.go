package service

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/serahk/pantrylane/internal/domain"
)

// ErrUserDetailsRequired is returned when a wishlist operation runs before
// the owner has introduced themselves. The storefront sends the buyer back
// to the catalog entry point in that case.
var ErrUserDetailsRequired = &domain.Error{
	Code:    domain.ENOTFOUND,
	Message: "User details are required before building a wishlist",
}

// WishlistView is the full wishlist page state for a session.
type WishlistView struct {
	UserDetails domain.UserDetails       `json:"userDetails"`
	Items       []domain.WishlistItem    `json:"items"`
	LastResult  *domain.SubmissionResult `json:"lastResult,omitempty"`
}

type wishlistState struct {
	items      []domain.WishlistItem
	lastResult *domain.SubmissionResult
	resetTimer *time.Timer
	submitting bool
}

// WishlistService drives the wishlist pipeline: user details first, then
// item intake, then a one-shot submission to the sink.
type WishlistService struct {
	mu     sync.Mutex
	states map[string]*wishlistState

	store  *SessionStore
	sink   domain.SubmissionSink
	logger *slog.Logger

	now        func() time.Time
	resetDelay time.Duration
}

// NewWishlistService creates a new WishlistService instance.
func NewWishlistService(sink domain.SubmissionSink, store *SessionStore, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		states:     make(map[string]*wishlistState),
		store:      store,
		sink:       sink,
		logger:     logger,
		now:        time.Now,
		resetDelay: outcomeResetDelay,
	}
}

// state returns the session's wishlist state, creating it if absent.
// Callers must hold s.mu.
func (s *WishlistService) state(sessionID string) *wishlistState {
	st, ok := s.states[sessionID]
	if !ok {
		st = &wishlistState{}
		s.states[sessionID] = st
	}
	return st
}

// SetUserDetails validates and persists the wishlist owner's details.
func (s *WishlistService) SetUserDetails(ctx context.Context, sessionID string, details domain.UserDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}
	if err := s.store.Set(sessionID, StateUserDetails, details); err != nil {
		return domain.Internal(err, "wishlist.SetUserDetails", "failed to save user details")
	}
	return nil
}

func (s *WishlistService) userDetails(sessionID string) (domain.UserDetails, error) {
	var details domain.UserDetails
	ok, err := s.store.Get(sessionID, StateUserDetails, &details)
	if err != nil {
		return domain.UserDetails{}, domain.Internal(err, "wishlist.userDetails", "failed to read user details")
	}
	if !ok {
		return domain.UserDetails{}, ErrUserDetailsRequired
	}
	return details, nil
}

// View returns the session's wishlist. ErrUserDetailsRequired when the
// owner has not been captured yet.
func (s *WishlistService) View(ctx context.Context, sessionID string) (*WishlistView, error) {
	details, err := s.userDetails(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID)
	return s.view(details, st), nil
}

func (s *WishlistService) view(details domain.UserDetails, st *wishlistState) *WishlistView {
	items := make([]domain.WishlistItem, len(st.items))
	copy(items, st.items)
	return &WishlistView{
		UserDetails: details,
		Items:       items,
		LastResult:  st.lastResult,
	}
}

// AddItem normalizes and validates the item, then appends it.
func (s *WishlistService) AddItem(ctx context.Context, sessionID string, item domain.WishlistItem) (*WishlistView, error) {
	details, err := s.userDetails(sessionID)
	if err != nil {
		return nil, err
	}

	item = item.Normalize()
	if err := item.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID)
	st.items = append(st.items, item)

	s.logger.Debug("wishlist item added", "session_id", sessionID, "item", item.ItemName, "category", item.Category)
	return s.view(details, st), nil
}

// RemoveItem deletes the item at index.
func (s *WishlistService) RemoveItem(ctx context.Context, sessionID string, index int) (*WishlistView, error) {
	details, err := s.userDetails(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID)
	if index < 0 || index >= len(st.items) {
		return nil, domain.NotFound("wishlist.RemoveItem", "wishlist item", strconv.Itoa(index))
	}
	st.items = append(st.items[:index], st.items[index+1:]...)

	return s.view(details, st), nil
}

// Submit hands the wishlist to the sink. Optional feedback is merged into
// the owner's details. On success the session's wishlist state is cleared;
// on failure everything is preserved for a retry.
func (s *WishlistService) Submit(ctx context.Context, sessionID string, feedback string) (*domain.SubmissionResult, error) {
	details, err := s.userDetails(sessionID)
	if err != nil {
		return nil, err
	}
	if feedback != "" {
		details.Feedback = feedback
	}

	s.mu.Lock()
	st := s.state(sessionID)
	if st.submitting {
		s.mu.Unlock()
		return nil, domain.Conflict("wishlist.Submit", "A wishlist submission is already in progress")
	}
	if len(st.items) == 0 {
		s.mu.Unlock()
		return nil, domain.Invalid("wishlist.Submit", "Your wishlist is empty")
	}
	items := make([]domain.WishlistItem, len(st.items))
	copy(items, st.items)
	st.submitting = true
	s.mu.Unlock()

	submission := domain.WishlistSubmission{
		UserDetails: details,
		Items:       items,
		Date:        s.now().UTC(),
	}

	result := s.sink.SubmitWishlist(ctx, submission)

	s.mu.Lock()
	defer s.mu.Unlock()

	st.submitting = false
	st.lastResult = &result

	if !result.Success {
		s.logger.Warn("wishlist submission failed", "session_id", sessionID, "message", result.Message)
		return &result, nil
	}

	st.items = nil
	s.store.Delete(sessionID, StateUserDetails)
	s.scheduleReset(sessionID, st)

	s.logger.Info("wishlist submitted", "session_id", sessionID, "items", len(items))
	return &result, nil
}

// scheduleReset clears the success banner after it has been shown.
// Callers must hold s.mu.
func (s *WishlistService) scheduleReset(sessionID string, st *wishlistState) {
	if st.resetTimer != nil {
		st.resetTimer.Stop()
	}
	st.resetTimer = time.AfterFunc(s.resetDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if current, ok := s.states[sessionID]; ok {
			current.lastResult = nil
			current.resetTimer = nil
		}
	})
}
