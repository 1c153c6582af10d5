package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"healthpoints/internal/app"
	"healthpoints/internal/domain"
)

// screen is the list, detail and dialogs of one entity kind.
type screen interface {
	kind() domain.Kind
	list(ctx context.Context, args []string) error
	search(ctx context.Context, query string) error
	show(ctx context.Context, id int64) error
	create(ctx context.Context) error
	edit(ctx context.Context, id int64) error
	remove(ctx context.Context, id int64) error
	closeDetail()
}

type entityScreen[T domain.Entity[T]] struct {
	a      *App
	k      domain.Kind
	res    domain.Resource[T]
	items  *app.ListController[T]
	detail *app.DetailController[T]
	form   formFunc[T]
	row    func(T) string
}

func newEntityScreen[T domain.Entity[T]](a *App, kind domain.Kind, res domain.Resource[T], pageSize int, form formFunc[T], row func(T) string) *entityScreen[T] {
	return &entityScreen[T]{
		a:     a,
		k:     kind,
		res:   res,
		items: app.NewListController[T](kind, res, pageSize),
		form:  form,
		row:   row,
	}
}

func (s *entityScreen[T]) kind() domain.Kind { return s.k }

// list handles "list <kind> [more|page N|sort F asc|desc]".
func (s *entityScreen[T]) list(ctx context.Context, args []string) error {
	var err error
	switch {
	case len(args) == 0:
		err = s.items.Reset(ctx)
	case args[0] == "more":
		var more bool
		more, err = s.items.LoadNext(ctx)
		if err == nil && !more {
			s.a.println("No more entries.")
		}
	case args[0] == "page" && len(args) == 2:
		var n int
		if n, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("page must be a number: %q", args[1])
		}
		err = s.items.LoadPage(ctx, n)
	case args[0] == "sort" && len(args) >= 2:
		asc := len(args) < 3 || !strings.EqualFold(args[2], "desc")
		err = s.items.SortBy(ctx, args[1], asc)
	default:
		return fmt.Errorf("usage: list %s [more|page N|sort FIELD asc|desc]", s.k)
	}
	if err != nil {
		return err
	}
	s.render()
	return nil
}

func (s *entityScreen[T]) render() {
	items := s.items.Items()
	field, asc := s.items.Sort()
	dir := "asc"
	if !asc {
		dir = "desc"
	}
	if q := s.items.Query(); q != "" {
		s.a.printf("%s matching %q (%d)\n", s.k, q, len(items))
	} else {
		s.a.printf("%s (%d of %d, sorted by %s %s)\n", s.k, len(items), s.items.Total(), field, dir)
	}
	for _, e := range items {
		s.a.println("  " + s.row(e))
	}
	if _, more := s.items.Links().Next(); more {
		s.a.printf("  ... \"list %s more\" for the next page\n", s.k)
	}
}

func (s *entityScreen[T]) search(ctx context.Context, query string) error {
	if err := s.items.Search(ctx, query); err != nil {
		return err
	}
	s.render()
	return nil
}

// show opens the detail view, which stays subscribed to updates until the
// next screen replaces it.
func (s *entityScreen[T]) show(ctx context.Context, id int64) error {
	e, err := s.res.Get(ctx, id)
	if err != nil {
		return err
	}
	s.a.teardown()
	s.detail = app.NewDetailController(s.k, s.res, s.a.bus, e)
	s.a.open = s
	s.printDetail()
	return nil
}

func (s *entityScreen[T]) printDetail() {
	b, err := json.MarshalIndent(s.detail.Entity(), "", "  ")
	if err != nil {
		s.a.printf("%s: %v\n", s.k, err)
		return
	}
	s.a.printf("%s\n%s\n", s.k, b)
}

func (s *entityScreen[T]) closeDetail() {
	if s.detail != nil {
		s.detail.Close()
		s.detail = nil
	}
}

func (s *entityScreen[T]) create(ctx context.Context) error {
	var blank T
	d := app.NewDialogController(s.k, s.res, s.a.bus, blank, app.WithClock(s.a.now))
	return s.runDialog(ctx, d)
}

func (s *entityScreen[T]) edit(ctx context.Context, id int64) error {
	e, err := s.res.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.runDialog(ctx, app.NewDialogController(s.k, s.res, s.a.bus, e))
}

// runDialog fills in the form and saves. A failed save may be retried;
// declining dismisses the dialog.
func (s *entityScreen[T]) runDialog(ctx context.Context, d *app.DialogController[T]) error {
	p := s.a.prompt()
	for {
		e, err := s.form(p, d.Entity())
		if err == nil {
			if err = d.Edit(func(T) T { return e }); err != nil {
				d.Clear()
				return err
			}
			_, err = d.Save(ctx)
		}
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrValidation) && !errors.Is(err, domain.ErrConflict) {
			d.Clear()
			return err
		}
		s.a.printf("Could not save: %v\n", err)
		again, perr := p.confirm("Edit again?")
		if perr != nil || !again {
			d.Clear()
			break
		}
	}
	return s.afterDialog(ctx, <-d.Done())
}

// afterDialog returns to the parent list; a committed change reloads it.
func (s *entityScreen[T]) afterDialog(ctx context.Context, r app.Result[T]) error {
	if r.Outcome != app.Closed {
		s.a.println("Cancelled.")
		return nil
	}
	s.a.printf("Saved %s %s.\n", s.k, r.Entity.Ident())
	if s.detail != nil {
		s.printDetail()
	}
	if err := s.items.Refresh(ctx); err != nil {
		return fmt.Errorf("reload %s: %w", s.k, err)
	}
	return nil
}

func (s *entityScreen[T]) remove(ctx context.Context, id int64) error {
	e, err := s.res.Get(ctx, id)
	if err != nil {
		return err
	}
	d := app.NewDeleteDialogController(s.k, s.res, e)
	s.a.println(s.row(e))
	ok, err := s.a.prompt().confirm(fmt.Sprintf("Delete %s %d?", s.k, id))
	if err != nil || !ok {
		d.Clear()
		s.a.println("Cancelled.")
		return err
	}
	if err := d.ConfirmDelete(ctx); err != nil {
		d.Clear()
		return err
	}
	<-d.Done()
	s.a.printf("Deleted %s %d.\n", s.k, id)
	if s.detail != nil {
		if shown, _ := s.detail.Entity().Ident().Existing(); shown == id {
			s.a.teardown()
		}
	}
	if err := s.items.Refresh(ctx); err != nil {
		return fmt.Errorf("reload %s: %w", s.k, err)
	}
	return nil
}
