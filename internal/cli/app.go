// Package cli is the interactive front end: a line-oriented REPL whose
// screens are driven by the controllers in internal/app.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	adaptoidc "healthpoints/internal/adapter/oidc"
	"healthpoints/internal/adapter/rest"
	"healthpoints/internal/app"
	"healthpoints/internal/domain"
	"healthpoints/internal/event"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Authenticator performs interactive logins.
type Authenticator interface {
	DeviceLogin(ctx context.Context, prompt func(*oauth2.DeviceAuthResponse)) (*oauth2.Token, *adaptoidc.Claims, error)
	TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource
}

// Options wires an App.
type Options struct {
	Client   *rest.Client
	Bus      *event.Bus
	PageSize int
	// Auth enables the login command; nil leaves only static tokens.
	Auth      Authenticator
	Tokens    *adaptoidc.TokenHolder
	TokenFile string
	In        io.Reader
	Out       io.Writer
	Now       func() time.Time

	// Interactive shows a command prompt.
	Interactive bool
}

// App holds the screens and services of one CLI session.
type App struct {
	client    *rest.Client
	bus       *event.Bus
	principal *app.Principal
	points    *app.PointsService
	charts    *app.ChartsService

	auth      Authenticator
	tokens    *adaptoidc.TokenHolder
	tokenFile string

	screens map[string]screen
	prefs   *entityScreen[domain.Preference]
	// open is the screen whose detail view is showing, if any.
	open screen

	reader      *bufio.Reader
	out         io.Writer
	now         func() time.Time
	interactive bool
}

// NewApp creates an App with one screen per entity kind.
func NewApp(opts Options) *App {
	if opts.Bus == nil {
		opts.Bus = event.NewBus()
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := opts.Client
	a := &App{
		client:    c,
		bus:       opts.Bus,
		principal: app.NewPrincipal(c),
		points:    app.NewPointsService(c, c),
		charts:    app.NewChartsService(c, c, c),
		auth:      opts.Auth,
		tokens:    opts.Tokens,
		tokenFile: opts.TokenFile,
		screens:   make(map[string]screen),
		reader:    bufio.NewReader(opts.In),
		out:       opts.Out,
		now:       opts.Now,

		interactive: opts.Interactive,
	}

	size := opts.PageSize
	addScreen(a, "point", domain.KindPoint, size, pointForm, pointRow)
	addScreen(a, "points", domain.KindPoints, size, pointsForm, pointsRow)
	addScreen(a, "bp", domain.KindBloodPressure, size, bloodPressureForm, bloodPressureRow)
	addScreen(a, "weight", domain.KindWeight, size, weightForm, weightRow)
	a.prefs = addScreen(a, "preference", domain.KindPreference, size, preferenceForm, preferenceRow)
	addScreen(a, "preferences", domain.KindPreferences, size, preferencesForm, preferencesRow)
	return a
}

func addScreen[T domain.Entity[T]](a *App, alias string, kind domain.Kind, pageSize int, form formFunc[T], row func(T) string) *entityScreen[T] {
	s := newEntityScreen(a, kind, rest.NewResource[T](a.client, kind), pageSize, form, row)
	a.screens[alias] = s
	a.screens[kind.Name] = s
	return s
}

// aliases lists the screen names in a stable order.
func (a *App) aliases() []string {
	names := make([]string, 0, len(a.screens))
	for name := range a.screens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *App) screen(alias string) (screen, error) {
	s, ok := a.screens[alias]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q (one of %v)", alias, a.aliases())
	}
	return s, nil
}

// teardown closes the detail view that is showing, if any.
func (a *App) teardown() {
	if a.open != nil {
		a.open.closeDetail()
		a.open = nil
	}
}

// Close releases everything the session holds open.
func (a *App) Close() {
	a.teardown()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) prompt() *prompter {
	return &prompter{r: a.reader, w: a.out}
}

// Run resolves the current identity, then reads commands until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	if acct, err := a.principal.Identity(ctx, false); err != nil {
		log.WithError(err).Warn("could not resolve identity")
	} else if acct != nil {
		a.printf("Logged in as %s\n", acct.Login)
	}
	prompt := ""
	if a.interactive {
		prompt = "hp> "
	}
	return runREPL(ctx, a, a.reader, prompt)
}
