package domain

import (
	"context"
	"time"
)

// Kind names one entity type and the REST collection that serves it.
type Kind struct {
	// Name is the singular, user-facing name, e.g. "bloodPressure".
	Name string
	// Path is the collection segment under /api, e.g. "bloodPressures".
	Path string
}

// UpdateTopic is the broadcast topic published after a successful save.
func (k Kind) UpdateTopic() string { return k.Name + ".updated" }

func (k Kind) String() string { return k.Name }

var (
	KindPoint         = Kind{Name: "point", Path: "points"}
	KindPoints        = Kind{Name: "points", Path: "pointss"}
	KindBloodPressure = Kind{Name: "bloodPressure", Path: "bloodPressures"}
	KindWeight        = Kind{Name: "weight", Path: "weights"}
	KindPreference    = Kind{Name: "preference", Path: "preferences"}
	KindPreferences   = Kind{Name: "preferences", Path: "preferencess"}
)

// Kinds lists every entity kind in display order.
func Kinds() []Kind {
	return []Kind{KindPoint, KindPoints, KindBloodPressure, KindWeight, KindPreference, KindPreferences}
}

// Entity is implemented by every record type. Entities are values: WithIdent
// returns a copy and never mutates the receiver.
type Entity[T any] interface {
	Ident() Ident
	WithIdent(Ident) T
}

// Defaulter is implemented by entities that have field defaults for new
// records.
type Defaulter[T any] interface {
	WithDefaults(now time.Time) T
}

// Validator is implemented by entities that can be checked before they are
// submitted.
type Validator interface {
	Validate() error
}

// PageRequest selects one page of a sorted collection.
type PageRequest struct {
	Page      int
	Size      int
	Sort      string
	Ascending bool
}

// Links maps a pagination relation ("next", "prev", "first", "last") to a
// zero-based page index.
type Links map[string]int

// Next returns the index of the next page, if there is one.
func (l Links) Next() (int, bool) {
	n, ok := l["next"]
	return n, ok
}

// Page is one page of a collection plus its pagination metadata.
type Page[T any] struct {
	Items []T
	Links Links
	Total int
}

// Resource is the port for one remote entity collection.
type Resource[T any] interface {
	List(ctx context.Context, req PageRequest) (Page[T], error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, e T) (T, error)
	Update(ctx context.Context, e T) (T, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]T, error)
}
