package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/serahk/pantrylane/internal/domain"
	"github.com/shopspring/decimal"
)

// cartService keeps one cart per session in memory. Carts are small and
// short-lived, so a single mutex over the whole map is enough.
type cartService struct {
	mu     sync.Mutex
	carts  map[string][]domain.CartLine
	logger *slog.Logger
}

// NewCartService creates a new in-memory CartService instance.
func NewCartService(logger *slog.Logger) domain.CartService {
	return &cartService{
		carts:  make(map[string][]domain.CartLine),
		logger: logger,
	}
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, item domain.CatalogItem, quantity int) (*domain.CartSummary, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	merged := false
	for i := range lines {
		if lines[i].ID == item.ID {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, domain.CartLine{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Image:    item.Image,
			Weight:   item.Weight,
			PackSize: item.PackSize,
			Quantity: quantity,
		})
	}
	s.carts[sessionID] = lines

	s.logger.Debug("cart item added", "item_id", item.ID, "quantity", quantity, "merged", merged)
	return summarize(lines), nil
}

func (s *cartService) AddSpecial(ctx context.Context, sessionID string, option domain.SpecialOption, req domain.SpecialRequest) (*domain.CartSummary, error) {
	payload := &domain.SpecialPayload{Request: req}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	merged := false
	for i := range lines {
		if lines[i].ID == option.ID {
			// Re-adding a special keeps the newest request details.
			lines[i].Quantity++
			lines[i].Special = payload
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, domain.CartLine{
			ID:       option.ID,
			Name:     option.Name,
			Price:    decimal.Zero,
			Image:    option.Image,
			Quantity: 1,
			Special:  payload,
		})
	}
	s.carts[sessionID] = lines

	s.logger.Debug("special request added", "option_id", option.ID, "merged", merged)
	return summarize(lines), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, lineID string, delta int) (*domain.CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ID != lineID {
			continue
		}
		lines[i].Quantity += delta
		if lines[i].Quantity <= 0 {
			lines = append(lines[:i], lines[i+1:]...)
		}
		break
	}
	s.carts[sessionID] = lines

	return summarize(lines), nil
}

func (s *cartService) RemoveLine(ctx context.Context, sessionID string, lineID string) (*domain.CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ID == lineID {
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}
	s.carts[sessionID] = lines

	return summarize(lines), nil
}

func (s *cartService) Summary(ctx context.Context, sessionID string) (*domain.CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return summarize(s.carts[sessionID]), nil
}

func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

func summarize(lines []domain.CartLine) *domain.CartSummary {
	summary := &domain.CartSummary{
		Lines: make([]domain.CartLine, len(lines)),
		Total: decimal.Zero,
	}
	copy(summary.Lines, lines)

	for _, line := range lines {
		summary.Total = summary.Total.Add(line.Subtotal())
		summary.ItemCount += line.Quantity
	}
	return summary
}
