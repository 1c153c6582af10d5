package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"healthpoints/internal/domain"

	log "github.com/sirupsen/logrus"
)

// DefaultPageSize is the number of entities requested per page.
const DefaultPageSize = 20

// ListState is the activity of a ListController.
type ListState int

const (
	StateIdle ListState = iota
	StateLoading
	StateSearching
)

func (s ListState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSearching:
		return "searching"
	default:
		return "idle"
	}
}

// ListController owns the paginated, incrementally appended collection of
// one entity kind. Every fetch is tagged with a generation number; when a
// newer fetch has started, an older response is dropped and ErrStale returned.
type ListController[T any] struct {
	kind domain.Kind
	res  domain.Resource[T]

	mu        sync.Mutex
	items     []T
	links     domain.Links
	total     int
	page      int
	pageSize  int
	predicate string
	ascending bool
	query     string
	state     ListState
	gen       uint64
	scratch   T
}

// NewListController creates a controller sorted by id, ascending. A
// non-positive pageSize selects DefaultPageSize.
func NewListController[T any](kind domain.Kind, res domain.Resource[T], pageSize int) *ListController[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListController[T]{
		kind:      kind,
		res:       res,
		pageSize:  pageSize,
		predicate: "id",
		ascending: true,
	}
}

// begin must be called with l.mu held.
func (l *ListController[T]) begin(state ListState) uint64 {
	l.gen++
	l.state = state
	return l.gen
}

// LoadAll fetches the current page and appends it to the collection.
func (l *ListController[T]) LoadAll(ctx context.Context) error {
	l.mu.Lock()
	gen := l.begin(StateLoading)
	req := domain.PageRequest{Page: l.page, Size: l.pageSize, Sort: l.predicate, Ascending: l.ascending}
	l.mu.Unlock()

	page, err := l.res.List(ctx, req)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		log.WithFields(log.Fields{"kind": l.kind.Name, "page": req.Page}).Debug("discarding stale page")
		return ErrStale
	}
	l.state = StateIdle
	if err != nil {
		return fmt.Errorf("list %s page %d: %w", l.kind, req.Page, err)
	}
	l.items = append(l.items, page.Items...)
	l.links = page.Links
	l.total = page.Total
	return nil
}

// Reset empties the collection, rewinds to page 0 and reloads.
func (l *ListController[T]) Reset(ctx context.Context) error {
	l.mu.Lock()
	l.begin(StateLoading)
	l.page = 0
	l.items = nil
	l.links = nil
	l.query = ""
	l.mu.Unlock()
	return l.LoadAll(ctx)
}

// LoadPage selects page n and appends it to the collection.
func (l *ListController[T]) LoadPage(ctx context.Context, n int) error {
	if n < 0 {
		n = 0
	}
	l.mu.Lock()
	l.page = n
	l.mu.Unlock()
	return l.LoadAll(ctx)
}

// LoadNext loads the page named by the "next" link. It reports false when
// there is no further page.
func (l *ListController[T]) LoadNext(ctx context.Context) (bool, error) {
	l.mu.Lock()
	next, ok := l.links.Next()
	l.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, l.LoadPage(ctx, next)
}

// Search replaces the collection with the results of a full-text query. When
// the backend has no index for the collection it falls back to LoadAll. An
// empty query resets the list.
func (l *ListController[T]) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return l.Reset(ctx)
	}

	l.mu.Lock()
	gen := l.begin(StateSearching)
	l.query = query
	l.mu.Unlock()

	items, err := l.res.Search(ctx, query)

	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		log.WithFields(log.Fields{"kind": l.kind.Name, "query": query}).Debug("discarding stale search")
		return ErrStale
	}
	l.state = StateIdle
	if err != nil {
		l.mu.Unlock()
		if errors.Is(err, domain.ErrSearchIndexMissing) {
			log.WithField("kind", l.kind.Name).Info("no search index, falling back to listing")
			return l.LoadAll(ctx)
		}
		return fmt.Errorf("search %s: %w", l.kind, err)
	}
	l.items = items
	l.links = nil
	l.total = len(items)
	l.mu.Unlock()
	return nil
}

// Refresh resets the list and clears the scratch entity. It is used after a
// dialog closes with a committed change.
func (l *ListController[T]) Refresh(ctx context.Context) error {
	err := l.Reset(ctx)
	l.Clear()
	return err
}

// Clear replaces the scratch entity with a blank value.
func (l *ListController[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	var blank T
	l.scratch = blank
}

// SortBy changes the sort predicate and reloads from page 0.
func (l *ListController[T]) SortBy(ctx context.Context, field string, ascending bool) error {
	if field == "" {
		field = "id"
	}
	l.mu.Lock()
	l.predicate = field
	l.ascending = ascending
	l.mu.Unlock()
	return l.Reset(ctx)
}

// Items returns a copy of the collection.
func (l *ListController[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Page returns the current page index.
func (l *ListController[T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// Links returns the pagination links of the last page loaded.
func (l *ListController[T]) Links() domain.Links {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.links
}

// Total returns the collection size reported by the last load.
func (l *ListController[T]) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// State returns what the controller is currently doing.
func (l *ListController[T]) State() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Query returns the active search query, if any.
func (l *ListController[T]) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Sort returns the sort predicate and direction.
func (l *ListController[T]) Sort() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.predicate, l.ascending
}

// Scratch returns the pending-edit scratch entity.
func (l *ListController[T]) Scratch() T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scratch
}
