package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	adaptoidc "healthpoints/internal/adapter/oidc"
	"healthpoints/internal/app"
	"healthpoints/internal/domain"

	"golang.org/x/oauth2"
)

const helpText = `Commands:
  home                               weekly progress
  login | logout
  list <kind> [more|page N|sort F asc|desc]
  search <kind> <query>
  show <kind> <id>
  new <kind>
  edit <kind> <id>
  delete <kind> <id>
  prefs                              edit your preferences
  chart bp|weight [days] [kg|lb]
  help | exit
Kinds: bp (bloodPressure), point, points, preference, preferences, weight`

// errExit ends the REPL.
var errExit = errors.New("exit")

// Exec runs one command line.
func (a *App) Exec(ctx context.Context, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help", "?":
		a.println(helpText)
		return nil
	case "exit", "quit":
		return errExit
	case "home":
		return a.home(ctx)
	case "login":
		return a.login(ctx)
	case "logout":
		return a.logout()
	case "prefs":
		return a.editPreferences(ctx)
	case "chart":
		return a.chart(ctx, args)
	case "list", "search", "show", "new", "edit", "delete":
		return a.entityCommand(ctx, cmd, args)
	default:
		return fmt.Errorf("unknown command %q, try \"help\"", cmd)
	}
}

func (a *App) entityCommand(ctx context.Context, cmd string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s <kind> ...", cmd)
	}
	s, err := a.screen(args[0])
	if err != nil {
		return err
	}
	rest := args[1:]
	k := s.kind().Name

	route := map[string]string{
		"list":   k,
		"search": k,
		"show":   k + ".detail",
		"new":    k + ".new",
		"edit":   k + ".edit",
		"delete": k + ".delete",
	}[cmd]
	if err := a.authorize(ctx, route); err != nil {
		return err
	}

	switch cmd {
	case "list":
		a.teardown()
		return s.list(ctx, rest)
	case "search":
		a.teardown()
		return s.search(ctx, strings.Join(rest, " "))
	case "new":
		return s.create(ctx)
	}

	if len(rest) != 1 {
		return fmt.Errorf("usage: %s %s <id>", cmd, args[0])
	}
	id, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return fmt.Errorf("id must be a number: %q", rest[0])
	}
	switch cmd {
	case "show":
		return s.show(ctx, id)
	case "edit":
		return s.edit(ctx, id)
	default:
		return s.remove(ctx, id)
	}
}

func (a *App) home(ctx context.Context) error {
	if err := a.authorize(ctx, "home"); err != nil {
		return err
	}
	a.teardown()

	acct, err := a.principal.Identity(ctx, false)
	if err != nil {
		return err
	}
	if acct == nil {
		a.println("Welcome! Log in to track your health points.")
		return nil
	}

	sum, err := a.points.ThisWeek(ctx)
	if err != nil {
		return err
	}
	a.printf("Hi %s. Week of %s: %d points (%.0f%% of %d), goal %d.\n",
		acct.Login, sum.Week, sum.Points, sum.Percentage, app.MaxWeeklyPoints, sum.Goal)
	return nil
}

func (a *App) login(ctx context.Context) error {
	if a.auth == nil || a.tokens == nil {
		return errors.New("login needs an OIDC issuer; set HEALTHPOINTS_OIDC_ISSUER or HEALTHPOINTS_TOKEN")
	}
	tok, claims, err := a.auth.DeviceLogin(ctx, func(r *oauth2.DeviceAuthResponse) {
		uri := r.VerificationURIComplete
		if uri == "" {
			uri = r.VerificationURI
		}
		a.printf("Open %s and enter code %s\n", uri, r.UserCode)
	})
	if err != nil {
		return err
	}
	src := a.auth.TokenSource(ctx, tok)
	if a.tokenFile != "" {
		if err := adaptoidc.SaveToken(a.tokenFile, tok); err != nil {
			return err
		}
		src = adaptoidc.PersistingTokenSource(src, a.tokenFile, tok)
	}
	a.tokens.Set(src)

	acct, err := a.principal.Identity(ctx, true)
	if err != nil {
		return err
	}
	switch {
	case acct != nil:
		a.printf("Logged in as %s.\n", acct.Login)
	case claims != nil:
		a.printf("Signed in as %s, but the API did not accept the token.\n", claims.Email)
	default:
		a.println("The API did not accept the token.")
	}
	return nil
}

func (a *App) logout() error {
	a.teardown()
	if a.tokens != nil {
		a.tokens.Clear()
	}
	a.principal.Forget()
	if a.tokenFile != "" {
		if err := adaptoidc.RemoveToken(a.tokenFile); err != nil {
			return err
		}
	}
	a.println("Logged out.")
	return nil
}

// editPreferences opens the preference dialog on the user's saved settings,
// or on a new record when there are none yet.
func (a *App) editPreferences(ctx context.Context) error {
	if err := a.authorize(ctx, "preference.add"); err != nil {
		return err
	}
	a.teardown()

	current, err := a.client.MyPreferences(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		current = domain.Preference{WeeklyGoal: domain.MinWeeklyGoal, WeightUnits: domain.UnitsKg}
	case err != nil:
		return err
	}
	d := app.NewDialogController(domain.KindPreference, a.prefs.res, a.bus, current)
	return a.prefs.runDialog(ctx, d)
}

// chart prints "chart bp|weight [days] [kg|lb]" as text series.
func (a *App) chart(ctx context.Context, args []string) error {
	if err := a.authorize(ctx, "chart"); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: chart bp|weight [days] [kg|lb]")
	}
	a.teardown()

	days := 30
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("days must be a number: %q", args[1])
		}
		days = n
	}

	var (
		chart app.Chart
		err   error
	)
	switch args[0] {
	case "bp":
		chart, err = a.charts.BloodPressure(ctx, days)
	case "weight":
		var unit domain.Units
		if len(args) > 2 {
			unit = domain.Units(strings.ToLower(args[2]))
		}
		chart, err = a.charts.Weight(ctx, days, unit)
	default:
		return fmt.Errorf("unknown chart %q", args[0])
	}
	if err != nil {
		return err
	}
	a.printChart(chart)
	return nil
}

func (a *App) printChart(c app.Chart) {
	a.println(c.Title)
	for _, s := range c.Series {
		if c.Unit != "" {
			a.printf("%s (%s)\n", s.Key, c.Unit)
		} else {
			a.println(s.Key)
		}
		if len(s.Values) == 0 {
			a.println("  no data")
		}
		for _, v := range s.Values {
			a.printf("  %s  %.1f\n", time.UnixMilli(v.X).UTC().Format(timestampLayout), v.Y)
		}
	}
}
