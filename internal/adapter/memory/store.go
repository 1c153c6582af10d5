package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"healthpoints/internal/domain"
)

// Store is an in-memory collection of one entity kind. It implements
// domain.Resource.
type Store[T domain.Entity[T]] struct {
	kind domain.Kind

	mu        sync.Mutex
	rows      []T
	idCounter int64
	noSearch  bool
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	noSearch bool
}

// WithoutSearchIndex makes Search report domain.ErrSearchIndexMissing.
func WithoutSearchIndex() StoreOption {
	return func(o *storeOptions) { o.noSearch = true }
}

// NewStore creates an empty store for kind.
func NewStore[T domain.Entity[T]](kind domain.Kind, opts ...StoreOption) *Store[T] {
	var o storeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{kind: kind, noSearch: o.noSearch}
}

// Kind returns the kind the store holds.
func (s *Store[T]) Kind() domain.Kind { return s.kind }

// List returns one page of the collection sorted by req.Sort, ties broken by
// id ascending.
func (s *Store[T]) List(ctx context.Context, req domain.PageRequest) (domain.Page[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]T, len(s.rows))
	copy(result, s.rows)

	field := req.Sort
	if field == "" {
		field = "id"
	}
	keys := make(map[int64]any, len(result))
	for _, e := range result {
		keys[idOf(e)] = fieldOf(e, field)
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := idOf(result[i]), idOf(result[j])
		c := compare(keys[a], keys[b])
		if c == 0 {
			return a < b
		}
		if req.Ascending {
			return c < 0
		}
		return c > 0
	})

	size := req.Size
	if size <= 0 {
		size = 20
	}
	total := len(result)
	last := 0
	if total > 0 {
		last = (total - 1) / size
	}
	page := req.Page
	if page < 0 {
		page = 0
	}

	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	links := domain.Links{"first": 0, "last": last}
	if page < last {
		links["next"] = page + 1
	}
	if page > 0 {
		links["prev"] = page - 1
	}
	return domain.Page[T]{Items: result[start:end:end], Links: links, Total: total}, nil
}

// Get returns the entity with id.
func (s *Store[T]) Get(ctx context.Context, id int64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.rows[i], nil
	}
	var zero T
	return zero, domain.ErrNotFound
}

// Create assigns the next id to e and stores it.
func (s *Store[T]) Create(ctx context.Context, e T) (T, error) {
	var zero T
	if !e.Ident().IsNew() {
		return zero, fmt.Errorf("%w: a new %s cannot already have an id", domain.ErrValidation, s.kind)
	}
	if err := validate(e); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.idCounter++
	e = e.WithIdent(domain.ExistingIdent(s.idCounter))
	s.rows = append(s.rows, e)
	return e, nil
}

// Update replaces the stored entity with the same id.
func (s *Store[T]) Update(ctx context.Context, e T) (T, error) {
	var zero T
	id, ok := e.Ident().Existing()
	if !ok {
		return zero, domain.ErrNewEntity
	}
	if err := validate(e); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return zero, domain.ErrNotFound
	}
	s.rows[i] = e
	return e, nil
}

// Delete removes the entity with id.
func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return nil
}

// Search returns every entity with a field value containing query, ignoring
// case.
func (s *Store[T]) Search(ctx context.Context, query string) ([]T, error) {
	if s.noSearch {
		return nil, domain.ErrSearchIndexMissing
	}
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.Lock()
	defer s.mu.Unlock()

	var result []T
	for _, e := range s.rows {
		for name, v := range fields(e) {
			if name == "id" || v == nil {
				continue
			}
			if strings.Contains(strings.ToLower(fmt.Sprint(v)), q) {
				result = append(result, e)
				break
			}
		}
	}
	return result, nil
}

// All returns a copy of every stored entity in insertion order.
func (s *Store[T]) All() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]T, len(s.rows))
	copy(result, s.rows)
	return result
}

func (s *Store[T]) indexOf(id int64) int {
	for i, e := range s.rows {
		if idOf(e) == id {
			return i
		}
	}
	return -1
}

func idOf[T domain.Entity[T]](e T) int64 {
	id, _ := e.Ident().Existing()
	return id
}

func validate(e any) error {
	if v, ok := e.(domain.Validator); ok {
		return v.Validate()
	}
	return nil
}

// fields returns the wire representation of e, so that sorting and search use
// the same names a client sends.
func fields(e any) map[string]any {
	b, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

func fieldOf(e any, name string) any { return fields(e)[name] }

// compare orders nil first, then numbers, strings and booleans by value.
// Dates and timestamps are encoded so that string order is time order.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
