package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"healthpoints/internal/domain"
	"healthpoints/internal/event"

	log "github.com/sirupsen/logrus"
)

// Outcome is how a dialog ended.
type Outcome int

const (
	// Closed means the dialog committed a change.
	Closed Outcome = iota + 1
	// Dismissed means the dialog was cancelled without persisting.
	Dismissed
)

func (o Outcome) String() string {
	switch o {
	case Closed:
		return "closed"
	case Dismissed:
		return "dismissed"
	default:
		return "open"
	}
}

// Result is delivered once on a dialog's Done channel.
type Result[T any] struct {
	Outcome Outcome
	Entity  T
}

type dialogOptions struct {
	now func() time.Time
}

// DialogOption configures a DialogController.
type DialogOption func(*dialogOptions)

// WithClock overrides the clock used for new-record defaults.
func WithClock(now func() time.Time) DialogOption {
	return func(o *dialogOptions) { o.now = now }
}

// modal is the close/dismiss bookkeeping shared by the dialog controllers.
type modal[T any] struct {
	closed bool
	done   chan Result[T]
}

func newModal[T any]() modal[T] {
	return modal[T]{done: make(chan Result[T], 1)}
}

// finish must be called with the owner's lock held.
func (m *modal[T]) finish(o Outcome, e T) bool {
	if m.closed {
		return false
	}
	m.closed = true
	m.done <- Result[T]{Outcome: o, Entity: e}
	close(m.done)
	return true
}

// DialogController owns one entity for the duration of a create or edit
// interaction.
type DialogController[T domain.Entity[T]] struct {
	kind domain.Kind
	res  domain.Resource[T]
	bus  *event.Bus

	mu      sync.Mutex
	entity  T
	saving  bool
	pickers map[string]bool
	modal[T]
}

// NewDialogController opens a dialog on entity. A new entity gets its kind's
// field defaults; an existing one is expected to be fetched by the caller.
func NewDialogController[T domain.Entity[T]](kind domain.Kind, res domain.Resource[T], bus *event.Bus, entity T, opts ...DialogOption) *DialogController[T] {
	o := dialogOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if entity.Ident().IsNew() {
		if d, ok := any(entity).(domain.Defaulter[T]); ok {
			entity = d.WithDefaults(o.now())
		}
	}
	return &DialogController[T]{
		kind:    kind,
		res:     res,
		bus:     bus,
		entity:  entity,
		pickers: make(map[string]bool),
		modal:   newModal[T](),
	}
}

// Save creates or updates the entity depending on whether it has an id. On
// success it publishes the kind's update topic with the saved entity and
// closes the dialog. On failure the dialog stays open.
func (d *DialogController[T]) Save(ctx context.Context) (T, error) {
	var zero T

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return zero, ErrDialogClosed
	}
	if d.saving {
		d.mu.Unlock()
		return zero, ErrSaveInProgress
	}
	entity := d.entity
	if v, ok := any(entity).(domain.Validator); ok {
		if err := v.Validate(); err != nil {
			d.mu.Unlock()
			return zero, err
		}
	}
	d.saving = true
	d.mu.Unlock()

	var (
		saved T
		err   error
		op    = "create"
	)
	if _, existing := entity.Ident().Existing(); existing {
		op = "update"
		saved, err = d.res.Update(ctx, entity)
	} else {
		saved, err = d.res.Create(ctx, entity)
	}

	if err != nil {
		d.mu.Lock()
		d.saving = false
		d.mu.Unlock()
		log.WithFields(log.Fields{"kind": d.kind.Name, "op": op}).WithError(err).Warn("save failed")
		return zero, fmt.Errorf("%s %s: %w", op, d.kind, err)
	}

	d.bus.Publish(d.kind.UpdateTopic(), saved)

	d.mu.Lock()
	d.entity = saved
	d.finish(Closed, saved)
	d.saving = false
	d.mu.Unlock()

	log.WithFields(log.Fields{"kind": d.kind.Name, "op": op, "id": saved.Ident()}).Debug("saved")
	return saved, nil
}

// Clear dismisses the dialog without persisting anything.
func (d *DialogController[T]) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	var zero T
	d.finish(Dismissed, zero)
}

// Load replaces the form with the current server copy.
func (d *DialogController[T]) Load(ctx context.Context, id int64) error {
	e, err := d.res.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load %s %d: %w", d.kind, id, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDialogClosed
	}
	d.entity = e
	return nil
}

// Edit applies a form change to the entity.
func (d *DialogController[T]) Edit(fn func(T) T) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDialogClosed
	}
	if d.saving {
		return ErrSaveInProgress
	}
	d.entity = fn(d.entity)
	return nil
}

// Entity returns the entity currently bound to the form.
func (d *DialogController[T]) Entity() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.entity
}

// Saving reports whether a save is in flight.
func (d *DialogController[T]) Saving() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saving
}

// IsOpen reports whether the dialog has not been closed or dismissed yet.
func (d *DialogController[T]) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.closed
}

// Done delivers the dialog's single Result.
func (d *DialogController[T]) Done() <-chan Result[T] { return d.done }

// OpenPicker marks the date picker of field as open.
func (d *DialogController[T]) OpenPicker(field string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pickers[field] = true
}

// ClosePicker marks the date picker of field as closed.
func (d *DialogController[T]) ClosePicker(field string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pickers, field)
}

// PickerOpen reports whether the date picker of field is open.
func (d *DialogController[T]) PickerOpen(field string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pickers[field]
}
