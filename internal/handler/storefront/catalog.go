package storefront

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/serahk/pantrylane/internal/catalog"
	"github.com/serahk/pantrylane/internal/domain"
	"github.com/serahk/pantrylane/internal/handler"
)

// CatalogStore is the read-only catalog surface the handlers need.
type CatalogStore interface {
	Categories() []domain.Category
	SpecialOptions() []domain.SpecialOption
	Item(id string) (domain.CatalogItem, error)
	SpecialOption(id string) (domain.SpecialOption, error)
	Browse(category, query string, page, perPage int) (*catalog.BrowsePage, error)
}

// CatalogHandler serves catalog browsing routes
type CatalogHandler struct {
	store  CatalogStore
	logger *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(store CatalogStore, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		store:  store,
		logger: logger,
	}
}

// Categories handles GET /catalog/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	handler.RespondJSON(w, http.StatusOK, map[string]any{
		"categories": h.store.Categories(),
	})
}

// SpecialOptions handles GET /catalog/special-options
func (h *CatalogHandler) SpecialOptions(w http.ResponseWriter, r *http.Request) {
	handler.RespondJSON(w, http.StatusOK, map[string]any{
		"specialOptions": h.store.SpecialOptions(),
	})
}

// Items handles GET /catalog/items
func (h *CatalogHandler) Items(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := intQuery(q.Get("page"))
	perPage := intQuery(q.Get("per_page"))

	result, err := h.store.Browse(q.Get("category"), q.Get("q"), page, perPage)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, result)
}

// intQuery parses a numeric query parameter, 0 when absent or malformed.
// Browse applies its own defaults for zero values.
func intQuery(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
