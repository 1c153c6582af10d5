package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"healthpoints/internal/domain"
)

// AccountReader resolves the authenticated account.
type AccountReader interface {
	Account(ctx context.Context) (domain.Account, error)
}

// Principal caches the identity of the current user.
type Principal struct {
	accounts AccountReader

	mu       sync.Mutex
	account  *domain.Account
	resolved bool
}

// NewPrincipal creates a Principal backed by accounts.
func NewPrincipal(accounts AccountReader) *Principal {
	return &Principal{accounts: accounts}
}

// Identity returns the current account, fetching it on first use or when
// force is set. A rejected credential yields a nil account, not an error.
func (p *Principal) Identity(ctx context.Context, force bool) (*domain.Account, error) {
	p.mu.Lock()
	if p.resolved && !force {
		acct := p.account
		p.mu.Unlock()
		return acct, nil
	}
	p.mu.Unlock()

	acct, err := p.accounts.Account(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if errors.Is(err, domain.ErrUnauthorized) {
		p.account, p.resolved = nil, true
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}
	p.account, p.resolved = &acct, true
	return p.account, nil
}

// IsAuthenticated reports whether a resolved account is present.
func (p *Principal) IsAuthenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.account != nil
}

// HasAuthority reports whether the account holds authority.
func (p *Principal) HasAuthority(authority string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.account != nil && slices.Contains(p.account.Authorities, authority)
}

// HasAnyAuthority reports whether the account holds one of authorities. An
// empty list is satisfied by anyone, authenticated or not.
func (p *Principal) HasAnyAuthority(authorities ...string) bool {
	if len(authorities) == 0 {
		return true
	}
	for _, a := range authorities {
		if p.HasAuthority(a) {
			return true
		}
	}
	return false
}

// Forget drops the cached identity, e.g. on logout.
func (p *Principal) Forget() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.account, p.resolved = nil, false
}
