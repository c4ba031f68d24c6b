// Package catalog loads the product catalog from static JSON files and
// serves read-only browse queries. The catalog is loaded once at startup
// and never mutated, so lookups need no locking.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/serahk/pantrylane/internal/domain"
)

const DefaultPerPage = 12

const maxPerPage = 100

// Store holds the loaded catalog.
type Store struct {
	categories []domain.Category
	specials   []domain.SpecialOption

	itemsByID    map[string]domain.CatalogItem
	specialsByID map[string]domain.SpecialOption
	allItems     []domain.CatalogItem
}

// Load reads categories.json and special-options.json from dir.
func Load(dir string) (*Store, error) {
	var categories []domain.Category
	if err := readJSON(filepath.Join(dir, "categories.json"), &categories); err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	var specials []domain.SpecialOption
	if err := readJSON(filepath.Join(dir, "special-options.json"), &specials); err != nil {
		return nil, fmt.Errorf("loading special options: %w", err)
	}

	s := &Store{
		categories:   categories,
		specials:     specials,
		itemsByID:    make(map[string]domain.CatalogItem),
		specialsByID: make(map[string]domain.SpecialOption),
	}

	for _, c := range categories {
		if c.ID == "" {
			return nil, fmt.Errorf("category %q has no id", c.Name)
		}
		for _, item := range c.Items {
			if item.ID == "" {
				return nil, fmt.Errorf("item %q in category %q has no id", item.Name, c.ID)
			}
			if _, exists := s.itemsByID[item.ID]; exists {
				return nil, fmt.Errorf("duplicate item id %q", item.ID)
			}
			s.itemsByID[item.ID] = item
			s.allItems = append(s.allItems, item)
		}
	}

	for _, opt := range specials {
		if opt.ID == "" {
			return nil, fmt.Errorf("special option %q has no id", opt.Name)
		}
		s.specialsByID[opt.ID] = opt
	}

	return s, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Categories returns every category with its items.
func (s *Store) Categories() []domain.Category {
	return s.categories
}

// SpecialOptions returns the special request options.
func (s *Store) SpecialOptions() []domain.SpecialOption {
	return s.specials
}

// Item looks up a catalog item by id.
func (s *Store) Item(id string) (domain.CatalogItem, error) {
	item, ok := s.itemsByID[id]
	if !ok {
		return domain.CatalogItem{}, domain.NotFound("catalog.Item", "catalog item", id)
	}
	return item, nil
}

// SpecialOption looks up a special option by id.
func (s *Store) SpecialOption(id string) (domain.SpecialOption, error) {
	opt, ok := s.specialsByID[id]
	if !ok {
		return domain.SpecialOption{}, domain.NotFound("catalog.SpecialOption", "special option", id)
	}
	return opt, nil
}

// BrowsePage is one page of browse results. SpecialOptions is populated on
// the first page of the unfiltered view, where the storefront shows the
// special request cards ahead of the product grid.
type BrowsePage struct {
	Items          []domain.CatalogItem   `json:"items"`
	SpecialOptions []domain.SpecialOption `json:"specialOptions,omitempty"`
	Page           int                    `json:"page"`
	PerPage        int                    `json:"perPage"`
	TotalItems     int                    `json:"totalItems"`
	TotalPages     int                    `json:"totalPages"`
}

// Browse returns a page of items, optionally scoped to a category and
// filtered by a case-insensitive name search.
func (s *Store) Browse(category, query string, page, perPage int) (*BrowsePage, error) {
	items := s.allItems
	if category != "" {
		found := false
		for _, c := range s.categories {
			if c.ID == category {
				items = c.Items
				found = true
				break
			}
		}
		if !found {
			return nil, domain.NotFound("catalog.Browse", "category", category)
		}
	}

	query = strings.TrimSpace(query)
	if query != "" {
		items = filterByName(items, query)
	}

	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	result := &BrowsePage{
		Items:      items[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	if category == "" && page == 1 {
		result.SpecialOptions = s.matchingSpecials(query)
	}

	return result, nil
}

func filterByName(items []domain.CatalogItem, query string) []domain.CatalogItem {
	q := strings.ToLower(query)
	var matched []domain.CatalogItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			matched = append(matched, item)
		}
	}
	return matched
}

func (s *Store) matchingSpecials(query string) []domain.SpecialOption {
	if query == "" {
		return s.specials
	}
	q := strings.ToLower(query)
	var matched []domain.SpecialOption
	for _, opt := range s.specials {
		if strings.Contains(strings.ToLower(opt.Name), q) {
			matched = append(matched, opt)
		}
	}
	return matched
}
