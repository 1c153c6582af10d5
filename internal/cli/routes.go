package cli

import (
	"context"
	"errors"
	"fmt"

	"healthpoints/internal/domain"
)

var (
	// ErrLoginRequired is returned when an anonymous user opens a protected route.
	ErrLoginRequired = errors.New("login required")
	// ErrForbidden is returned when the user lacks the route's authority.
	ErrForbidden = errors.New("not allowed")
)

// Route is one navigable screen and the authorities that may open it.
type Route struct {
	Name        string
	Parent      string
	Authorities []string
}

// routes is the navigation table: a list, detail and three dialogs per
// kind, the home screen and the my-preferences dialog.
var routes = buildRoutes()

func buildRoutes() map[string]Route {
	user := []string{domain.AuthorityUser}
	table := map[string]Route{
		"home":           {Name: "home"},
		"preference.add": {Name: "preference.add", Parent: "home", Authorities: user},
		"chart":          {Name: "chart", Parent: "home", Authorities: user},
	}
	for _, k := range domain.Kinds() {
		table[k.Name] = Route{Name: k.Name, Parent: "home", Authorities: user}
		table[k.Name+".detail"] = Route{Name: k.Name + ".detail", Parent: k.Name, Authorities: user}
		for _, dialog := range []string{".new", ".edit", ".delete"} {
			table[k.Name+dialog] = Route{Name: k.Name + dialog, Parent: k.Name, Authorities: user}
		}
	}
	return table
}

// authorize checks that the current user may open route.
func (a *App) authorize(ctx context.Context, name string) error {
	r, ok := routes[name]
	if !ok {
		return fmt.Errorf("unknown route %q", name)
	}
	if len(r.Authorities) == 0 {
		return nil
	}
	if _, err := a.principal.Identity(ctx, false); err != nil {
		return err
	}
	if !a.principal.IsAuthenticated() {
		return fmt.Errorf("%s: %w", name, ErrLoginRequired)
	}
	if !a.principal.HasAnyAuthority(r.Authorities...) {
		return fmt.Errorf("%s: %w", name, ErrForbidden)
	}
	return nil
}
