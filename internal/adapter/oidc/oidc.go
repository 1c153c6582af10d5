// Package adaptoidc signs the CLI in against an OpenID Connect provider with
// the device authorization grant and keeps the resulting token on disk.
package adaptoidc

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// ErrNoDeviceFlow indicates that the provider does not advertise a device
// authorization endpoint.
var ErrNoDeviceFlow = errors.New("provider does not support the device flow")

// Claims is the subset of ID-token claims the CLI shows.
type Claims struct {
	Subject           string `json:"sub"`
	Email             string `json:"email"`
	PreferredUsername string `json:"preferred_username"`
}

// Authenticator performs device-flow logins against one provider.
type Authenticator struct {
	config   oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewAuthenticator discovers the provider at issuer. The "openid" scope is
// always requested.
func NewAuthenticator(ctx context.Context, issuer, clientID string, scopes ...string) (*Authenticator, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	endpoint := provider.Endpoint()
	if endpoint.DeviceAuthURL == "" {
		return nil, ErrNoDeviceFlow
	}
	return &Authenticator{
		config: oauth2.Config{
			ClientID: clientID,
			Endpoint: endpoint,
			Scopes:   append([]string{oidc.ScopeOpenID, "profile", "email", oidc.ScopeOfflineAccess}, scopes...),
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// DeviceLogin starts a device authorization, hands the user code to prompt
// and waits until the user has approved it or ctx ends. When the provider
// returns an ID token it is verified and its claims returned.
func (a *Authenticator) DeviceLogin(ctx context.Context, prompt func(*oauth2.DeviceAuthResponse)) (*oauth2.Token, *Claims, error) {
	resp, err := a.config.DeviceAuth(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("device authorization: %w", err)
	}
	prompt(resp)

	token, err := a.config.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, nil, fmt.Errorf("device token: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		log.Debug("token response carried no id_token")
		return token, nil, nil
	}
	idToken, err := a.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, nil, fmt.Errorf("verify id token: %w", err)
	}
	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return nil, nil, fmt.Errorf("id token claims: %w", err)
	}
	return token, &claims, nil
}

// TokenSource returns a source that refreshes token when it expires.
func (a *Authenticator) TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource {
	return a.config.TokenSource(ctx, token)
}
