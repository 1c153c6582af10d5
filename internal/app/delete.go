package app

import (
	"context"
	"fmt"
	"sync"

	"healthpoints/internal/domain"
)

// DeleteDialogController confirms the deletion of one entity.
type DeleteDialogController[T domain.Entity[T]] struct {
	kind domain.Kind
	res  domain.Resource[T]

	mu       sync.Mutex
	entity   T
	deleting bool
	modal[T]
}

// NewDeleteDialogController opens a delete confirmation for entity.
func NewDeleteDialogController[T domain.Entity[T]](kind domain.Kind, res domain.Resource[T], entity T) *DeleteDialogController[T] {
	return &DeleteDialogController[T]{kind: kind, res: res, entity: entity, modal: newModal[T]()}
}

// ConfirmDelete deletes the entity and closes the dialog. On failure the
// dialog stays open.
func (d *DeleteDialogController[T]) ConfirmDelete(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDialogClosed
	}
	if d.deleting {
		d.mu.Unlock()
		return ErrSaveInProgress
	}
	entity := d.entity
	id, ok := entity.Ident().Existing()
	if !ok {
		d.mu.Unlock()
		return domain.ErrNewEntity
	}
	d.deleting = true
	d.mu.Unlock()

	err := d.res.Delete(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleting = false
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", d.kind, id, err)
	}
	d.finish(Closed, entity)
	return nil
}

// Clear dismisses the dialog without deleting.
func (d *DeleteDialogController[T]) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	var zero T
	d.finish(Dismissed, zero)
}

// Entity returns the entity awaiting confirmation.
func (d *DeleteDialogController[T]) Entity() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.entity
}

// Done delivers the dialog's single Result.
func (d *DeleteDialogController[T]) Done() <-chan Result[T] { return d.done }
