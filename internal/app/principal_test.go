package app

import (
	"context"
	"errors"
	"testing"

	"healthpoints/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipal_CachesIdentity(t *testing.T) {
	calls := 0
	r := &mockReaders{
		accountFn: func(context.Context) (domain.Account, error) {
			calls++
			return domain.Account{Login: "user", Authorities: []string{domain.AuthorityUser}}, nil
		},
	}
	p := NewPrincipal(r)
	ctx := context.Background()

	acct, err := p.Identity(ctx, false)
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.Equal(t, "user", acct.Login)

	_, err = p.Identity(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = p.Identity(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	assert.True(t, p.IsAuthenticated())
	assert.True(t, p.HasAuthority(domain.AuthorityUser))
	assert.False(t, p.HasAuthority(domain.AuthorityAdmin))
	assert.True(t, p.HasAnyAuthority(domain.AuthorityAdmin, domain.AuthorityUser))
}

func TestPrincipal_UnauthorizedIsAnonymous(t *testing.T) {
	p := NewPrincipal(&mockReaders{})

	acct, err := p.Identity(context.Background(), false)

	require.NoError(t, err)
	assert.Nil(t, acct)
	assert.False(t, p.IsAuthenticated())
	assert.False(t, p.HasAnyAuthority(domain.AuthorityUser))
	assert.True(t, p.HasAnyAuthority())
}

func TestPrincipal_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	p := NewPrincipal(&mockReaders{
		accountFn: func(context.Context) (domain.Account, error) { return domain.Account{}, boom },
	})

	_, err := p.Identity(context.Background(), false)

	assert.ErrorIs(t, err, boom)
	assert.False(t, p.IsAuthenticated())
}

func TestPrincipal_Forget(t *testing.T) {
	p := NewPrincipal(&mockReaders{
		accountFn: func(context.Context) (domain.Account, error) {
			return domain.Account{Login: "user", Authorities: []string{domain.AuthorityUser}}, nil
		},
	})
	_, err := p.Identity(context.Background(), false)
	require.NoError(t, err)

	p.Forget()

	assert.False(t, p.IsAuthenticated())
	assert.False(t, p.HasAuthority(domain.AuthorityUser))
}
