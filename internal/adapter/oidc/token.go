package adaptoidc

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"healthpoints/internal/domain"

	"golang.org/x/oauth2"
)

// LoadToken reads a token saved by SaveToken. A missing file yields
// os.ErrNotExist.
func LoadToken(path string) (*oauth2.Token, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, fmt.Errorf("token file %s: %w", path, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token file %s: no access token", path)
	}
	return &tok, nil
}

// SaveToken writes tok to path, readable by the owner only.
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("token dir: %w", err)
	}
	b, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return os.Rename(tmp, path)
}

// RemoveToken deletes the token file. A missing file is not an error.
func RemoveToken(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// persistingSource saves every token it hands out that differs from the last
// one saved, so refreshed tokens survive a restart.
type persistingSource struct {
	src  oauth2.TokenSource
	path string
	last string
}

// PersistingTokenSource wraps src so that refreshed tokens are written to path.
func PersistingTokenSource(src oauth2.TokenSource, path string, current *oauth2.Token) oauth2.TokenSource {
	ps := &persistingSource{src: src, path: path}
	if current != nil {
		ps.last = current.AccessToken
	}
	return oauth2.ReuseTokenSource(current, ps)
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != p.last {
		if err := SaveToken(p.path, tok); err != nil {
			return nil, err
		}
		p.last = tok.AccessToken
	}
	return tok, nil
}

// TokenHolder is a TokenSource whose underlying source can be swapped on
// login and logout. While empty it fails with domain.ErrUnauthorized.
type TokenHolder struct {
	mu  sync.Mutex
	src oauth2.TokenSource
}

// Set replaces the underlying source.
func (h *TokenHolder) Set(src oauth2.TokenSource) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.src = src
}

// Clear drops the underlying source.
func (h *TokenHolder) Clear() { h.Set(nil) }

// HasToken reports whether a source is set.
func (h *TokenHolder) HasToken() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.src != nil
}

func (h *TokenHolder) Token() (*oauth2.Token, error) {
	h.mu.Lock()
	src := h.src
	h.mu.Unlock()
	if src == nil {
		return nil, domain.ErrUnauthorized
	}
	return src.Token()
}
