package state

import (
	"strings"

	"github.com/databot-ai/databot-go/internal/models"
)

// DefaultPageSize is the fixed page size of the data registry listing.
const DefaultPageSize = 20

// DataStore caches one page of the data registry plus the total count
// across all pages. It is passive: changing the page number does not fetch
// anything — the view layer re-fetches and calls SetItems.
type DataStore struct {
	items    []models.DataItem
	total    int
	page     int
	pageSize int
	selected *models.DataItem
}

// NewDataStore creates a store positioned on page 1.
func NewDataStore() *DataStore {
	return &DataStore{page: 1, pageSize: DefaultPageSize}
}

// SetItems replaces the cached page and the total count after a list fetch.
func (s *DataStore) SetItems(items []models.DataItem, total int) {
	s.items = append([]models.DataItem(nil), items...)
	s.total = total
}

// Items returns the cached page.
func (s *DataStore) Items() []models.DataItem {
	return s.items
}

// Total returns the item count across all pages, which can exceed the
// number of cached items.
func (s *DataStore) Total() int {
	return s.total
}

// Page returns the current page number.
func (s *DataStore) Page() int {
	return s.page
}

// SetPage records the page number. The caller is responsible for
// re-fetching.
func (s *DataStore) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

// PageSize returns the fixed page size.
func (s *DataStore) PageSize() int {
	return s.pageSize
}

// Select remembers one item for detail flows; nil clears the selection.
func (s *DataStore) Select(item *models.DataItem) {
	s.selected = item
}

// Selected returns the remembered item, nil when none.
func (s *DataStore) Selected() *models.DataItem {
	return s.selected
}

// AddItem prepends a freshly registered item and bumps the total, without
// waiting for a re-fetch. An item whose id is already cached is ignored so
// the page never holds two entries with the same id.
func (s *DataStore) AddItem(item models.DataItem) {
	if s.indexOf(item.ID) >= 0 {
		return
	}
	s.items = append([]models.DataItem{item}, s.items...)
	s.total++
}

// UpdateItem replaces the cached copy of an item in place after a
// confirmed update. Unknown ids are ignored.
func (s *DataStore) UpdateItem(id string, item models.DataItem) {
	if i := s.indexOf(id); i >= 0 {
		s.items[i] = item
	}
}

// RemoveItem drops an item and decrements the total after a confirmed
// delete. The total only moves when the id was actually cached.
func (s *DataStore) RemoveItem(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.total--
}

// Filter returns the cached page's items whose title or content contains
// the query, case-insensitively. This searches the loaded page only, not
// the whole registry; that is a deliberate scope limit, not an oversight.
// An empty query returns the full page.
func (s *DataStore) Filter(query string) []models.DataItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.items
	}
	var matched []models.DataItem
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Title), query) ||
			strings.Contains(strings.ToLower(item.Content), query) {
			matched = append(matched, item)
		}
	}
	return matched
}

func (s *DataStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
