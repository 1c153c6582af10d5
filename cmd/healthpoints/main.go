package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	adaptoidc "healthpoints/internal/adapter/oidc"
	"healthpoints/internal/adapter/rest"
	"healthpoints/internal/cli"
	"healthpoints/internal/config"
	"healthpoints/internal/event"
	"healthpoints/internal/logging"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/term"
)

func main() {
	cfg, err := config.Load(os.Args[1:], nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.Setup(logging.SetupParams{Level: cfg.LogLevel, FormatJSON: cfg.LogJSON, Output: os.Stderr})

	ctx := context.Background()
	tokens := &adaptoidc.TokenHolder{}
	opts := cli.Options{
		Bus:         event.NewBus(),
		PageSize:    cfg.PageSize,
		Tokens:      tokens,
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}

	var clientOpts []rest.Option
	switch {
	case cfg.Token != "":
		tokens.Set(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}))
		clientOpts = append(clientOpts, rest.WithTokenSource(tokens))
	case cfg.OIDCIssuer != "":
		auth, err := adaptoidc.NewAuthenticator(ctx, cfg.OIDCIssuer, cfg.OIDCClientID)
		if err != nil {
			log.WithError(err).Fatal("oidc setup failed")
		}
		opts.Auth = auth
		opts.TokenFile = cfg.TokenFile

		tok, err := adaptoidc.LoadToken(cfg.TokenFile)
		switch {
		case err == nil:
			tokens.Set(adaptoidc.PersistingTokenSource(auth.TokenSource(ctx, tok), cfg.TokenFile, tok))
		case !errors.Is(err, os.ErrNotExist):
			log.WithError(err).Warn("ignoring saved token")
		}
		clientOpts = append(clientOpts, rest.WithTokenSource(tokens))
	}
	clientOpts = append(clientOpts, rest.WithTimeout(cfg.Timeout))

	client, err := rest.NewClient(cfg.APIURL, clientOpts...)
	if err != nil {
		log.WithError(err).Fatal("api client")
	}
	opts.Client = client

	log.WithFields(log.Fields{"api": cfg.APIURL, "interactive": opts.Interactive}).Debug("starting")
	if err := cli.NewApp(opts).Run(ctx); err != nil {
		log.WithError(err).Fatal("session ended")
	}
}
