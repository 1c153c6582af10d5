package stubapi

import (
	"net/http"
	"strconv"
	"strings"

	"healthpoints/internal/adapter/memory"
	"healthpoints/internal/domain"
)

// collection serves the CRUD and search routes of one store.
type collection[T domain.Entity[T]] struct {
	store *memory.Store[T]
}

func mount[T domain.Entity[T]](mux *http.ServeMux, store *memory.Store[T]) {
	c := &collection[T]{store: store}
	path := "/" + store.Kind().Path
	mux.HandleFunc(path, c.handleCollection)
	mux.HandleFunc(path+"/", c.handleItem)
	mux.HandleFunc("/_search"+path, c.handleSearch)
}

func (c *collection[T]) handleCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		field, asc := sortQuery(r)
		req := domain.PageRequest{
			Page:      intQuery(r, "page", 0),
			Size:      intQuery(r, "size", 20),
			Sort:      field,
			Ascending: asc,
		}
		if req.Size == 0 {
			req.Size = 20
		}
		page, err := c.store.List(ctx, req)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(page.Total))
		w.Header().Set("Link", linkHeader(r, page.Links, req.Size))
		items := page.Items
		if items == nil {
			items = []T{}
		}
		writeJSON(w, http.StatusOK, items)

	case http.MethodPost:
		var e T
		if err := parseJSON(r, &e); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := c.store.Create(ctx, e)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		id, _ := created.Ident().Existing()
		w.Header().Set("Location", "/api/"+c.store.Kind().Path+"/"+strconv.FormatInt(id, 10))
		writeJSON(w, http.StatusCreated, created)

	case http.MethodPut:
		// the backend also accepts PUT on the collection with the id in the body
		c.update(w, r, 0)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (c *collection[T]) handleItem(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/"+c.store.Kind().Path+"/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		e, err := c.store.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)

	case http.MethodPut:
		c.update(w, r, id)

	case http.MethodDelete:
		if err := c.store.Delete(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// update stores the body; a non-zero pathID must match the body's id.
func (c *collection[T]) update(w http.ResponseWriter, r *http.Request, pathID int64) {
	var e T
	if err := parseJSON(r, &e); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if pathID != 0 {
		if id, ok := e.Ident().Existing(); !ok || id != pathID {
			e = e.WithIdent(domain.ExistingIdent(pathID))
		}
	}
	updated, err := c.store.Update(r.Context(), e)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (c *collection[T]) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items, err := c.store.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}
