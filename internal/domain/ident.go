package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Ident identifies an entity. It is either New (never persisted) or
// Existing with a server-assigned id. The zero value is New.
type Ident struct {
	id       int64
	existing bool
}

// NewIdent returns the identifier of an entity that has not been persisted.
func NewIdent() Ident { return Ident{} }

// ExistingIdent returns the identifier of a persisted entity.
func ExistingIdent(id int64) Ident { return Ident{id: id, existing: true} }

// IsNew reports whether the entity has not been persisted yet.
func (i Ident) IsNew() bool { return !i.existing }

// Existing returns the server id and true for persisted entities.
func (i Ident) Existing() (int64, bool) { return i.id, i.existing }

func (i Ident) String() string {
	if !i.existing {
		return "new"
	}
	return strconv.FormatInt(i.id, 10)
}

// MarshalJSON encodes New as null and Existing as its numeric id.
func (i Ident) MarshalJSON() ([]byte, error) {
	if !i.existing {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(i.id, 10)), nil
}

// UnmarshalJSON accepts null or an integer.
func (i *Ident) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*i = NewIdent()
		return nil
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return fmt.Errorf("ident: %w", err)
	}
	*i = ExistingIdent(id)
	return nil
}
