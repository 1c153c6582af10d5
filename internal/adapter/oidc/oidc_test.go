package adaptoidc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func unsignedIDToken(claims string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(`{"alg": "none"}`)) + "." +
		base64.RawURLEncoding.EncodeToString([]byte(claims)) + "."
}

func newProvider(t *testing.T, withDevice bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		doc := map[string]any{
			"issuer":                 srv.URL,
			"authorization_endpoint": srv.URL + "/auth",
			"token_endpoint":         srv.URL + "/token",
			"jwks_uri":               srv.URL + "/keys",
		}
		if withDevice {
			doc["device_authorization_endpoint"] = srv.URL + "/device"
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	})
	mux.HandleFunc("/device", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"device_code":"dev-1","user_code":"ABCD-EFGH","verification_uri":"`+srv.URL+`/activate","expires_in":600,"interval":1}`)
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.PostForm.Get("device_code") != "dev-1" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		exp := time.Now().Add(time.Hour).Unix()
		idToken := unsignedIDToken(fmt.Sprintf(`{"iss":%q,"aud":"healthpoints-cli","sub":"u1","email":"user@example.com","exp":%d}`, srv.URL, exp))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-1",
			"refresh_token": "rt-1",
			"token_type":    "Bearer",
			"expires_in":    3600,
			"id_token":      idToken,
		})
	})
	return srv
}

func TestNewAuthenticatorRequiresDeviceFlow(t *testing.T) {
	srv := newProvider(t, false)

	_, err := NewAuthenticator(context.Background(), srv.URL, "healthpoints-cli")

	assert.ErrorIs(t, err, ErrNoDeviceFlow)
}

func TestDeviceLogin(t *testing.T) {
	srv := newProvider(t, true)
	ctx := context.Background()

	a, err := NewAuthenticator(ctx, srv.URL, "healthpoints-cli")
	require.NoError(t, err)
	a.verifier = oidc.NewVerifier(srv.URL, nil, &oidc.Config{ClientID: "healthpoints-cli", InsecureSkipSignatureCheck: true})

	var userCode string
	tok, claims, err := a.DeviceLogin(ctx, func(r *oauth2.DeviceAuthResponse) { userCode = r.UserCode })

	require.NoError(t, err)
	assert.Equal(t, "ABCD-EFGH", userCode)
	assert.Equal(t, "at-1", tok.AccessToken)
	require.NotNil(t, claims)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "user@example.com", claims.Email)
}
