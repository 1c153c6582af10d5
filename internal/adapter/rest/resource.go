package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"healthpoints/internal/domain"
)

// Resource is the client of one entity collection. It implements
// domain.Resource.
type Resource[T domain.Entity[T]] struct {
	c    *Client
	kind domain.Kind
}

// NewResource returns the client of kind's collection.
func NewResource[T domain.Entity[T]](c *Client, kind domain.Kind) *Resource[T] {
	return &Resource[T]{c: c, kind: kind}
}

func (r *Resource[T]) itemPath(id int64) string {
	return r.kind.Path + "/" + strconv.FormatInt(id, 10)
}

// List fetches one page sorted by req.Sort with id as the secondary key.
func (r *Resource[T]) List(ctx context.Context, req domain.PageRequest) (domain.Page[T], error) {
	dir := "desc"
	if req.Ascending {
		dir = "asc"
	}
	sort := req.Sort
	if sort == "" {
		sort = "id"
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	if req.Size > 0 {
		q.Set("size", strconv.Itoa(req.Size))
	}
	q.Add("sort", sort+","+dir)
	if sort != "id" {
		q.Add("sort", "id")
	}

	var items []T
	h, err := r.c.do(ctx, http.MethodGet, r.kind.Path, q, nil, &items)
	if err != nil {
		return domain.Page[T]{}, err
	}
	page := domain.Page[T]{Items: items, Links: parseLinks(h.Get("Link")), Total: len(items)}
	if v := h.Get("X-Total-Count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Total = n
		}
	}
	return page, nil
}

// Get fetches one entity by id.
func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var e T
	_, err := r.c.do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &e)
	return e, err
}

// Create posts a new entity and returns the server copy with its id.
func (r *Resource[T]) Create(ctx context.Context, e T) (T, error) {
	var out T
	if !e.Ident().IsNew() {
		return out, fmt.Errorf("%w: a new %s cannot already have an id", domain.ErrValidation, r.kind)
	}
	_, err := r.c.do(ctx, http.MethodPost, r.kind.Path, nil, e, &out)
	return out, err
}

// Update replaces an existing entity.
func (r *Resource[T]) Update(ctx context.Context, e T) (T, error) {
	var out T
	id, ok := e.Ident().Existing()
	if !ok {
		return out, domain.ErrNewEntity
	}
	_, err := r.c.do(ctx, http.MethodPut, r.itemPath(id), nil, e, &out)
	return out, err
}

// Delete removes the entity with id.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	_, err := r.c.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
	return err
}

// Search runs a full-text query. A 404 means the collection has no search
// index and is reported as domain.ErrSearchIndexMissing.
func (r *Resource[T]) Search(ctx context.Context, query string) ([]T, error) {
	var items []T
	_, err := r.c.do(ctx, http.MethodGet, "_search/"+r.kind.Path, url.Values{"query": {query}}, nil, &items)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("search %s: %w", r.kind, domain.ErrSearchIndexMissing)
	}
	return items, err
}
