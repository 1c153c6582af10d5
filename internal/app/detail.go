package app

import (
	"context"
	"fmt"
	"sync"

	"healthpoints/internal/domain"
	"healthpoints/internal/event"
)

// DetailController is a read-only view of one entity. While open it listens
// on the kind's update topic and shows the latest saved copy. Close must be
// called when the view is torn down.
type DetailController[T domain.Entity[T]] struct {
	kind domain.Kind
	res  domain.Resource[T]
	sub  *event.Subscription

	mu     sync.Mutex
	entity T
	gen    uint64
}

// NewDetailController shows entity and subscribes to its update topic.
func NewDetailController[T domain.Entity[T]](kind domain.Kind, res domain.Resource[T], bus *event.Bus, entity T) *DetailController[T] {
	d := &DetailController[T]{kind: kind, res: res, entity: entity}
	d.sub = bus.Subscribe(kind.UpdateTopic(), d.onUpdate)
	return d
}

// onUpdate replaces the shown entity with a broadcast copy of the same
// record. Broadcasts about other records are ignored.
func (d *DetailController[T]) onUpdate(payload any) {
	e, ok := payload.(T)
	if !ok {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	shown, showing := d.entity.Ident().Existing()
	got, _ := e.Ident().Existing()
	if showing && shown != got {
		return
	}
	d.gen++
	d.entity = e
}

// Load fetches the entity again. A broadcast that lands while the fetch is
// in flight wins over the fetched copy.
func (d *DetailController[T]) Load(ctx context.Context, id int64) error {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.mu.Unlock()

	e, err := d.res.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load %s %d: %w", d.kind, id, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return ErrStale
	}
	d.entity = e
	return nil
}

// Entity returns the entity being shown.
func (d *DetailController[T]) Entity() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.entity
}

// Close releases the update subscription. It is safe to call more than once.
func (d *DetailController[T]) Close() {
	d.sub.Unsubscribe()
}
