package graph

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenJSON = `{"access_token":"fake-access-token","token_type":"Bearer","expires_in":3599}`

// newMockTokenServer fakes the AzureAD v2 token endpoint. Each request's
// form fields are handed to check before the canned token is returned.
func newMockTokenServer(t *testing.T, check func(r *http.Request)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		if check != nil {
			check(r)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testTokenJSON))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestAcquire_Success(t *testing.T) {
	srv := newMockTokenServer(t, func(r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		assert.Equal(t, "app-id", r.FormValue("client_id"))
		assert.Equal(t, "app-secret", r.FormValue("client_secret"))
		assert.Equal(t, DefaultScope, r.FormValue("scope"))
	})

	provider := NewCredentialProvider(srv.URL, "app-id", "app-secret", http.DefaultClient, slog.Default())

	cred, err := provider.Acquire(context.Background(), DefaultScope)
	require.NoError(t, err)
	assert.Equal(t, "fake-access-token", cred.AccessToken)
	assert.Equal(t, DefaultScope, cred.Scope)

	tok, err := cred.Token()
	require.NoError(t, err)
	assert.Equal(t, "fake-access-token", tok)
}

func TestAcquire_HostScope(t *testing.T) {
	scope := HostScope("contoso.sharepoint.com")
	assert.Equal(t, "https://contoso.sharepoint.com/.default", scope)

	srv := newMockTokenServer(t, func(r *http.Request) {
		assert.Equal(t, scope, r.FormValue("scope"))
	})

	provider := NewCredentialProvider(srv.URL, "app-id", "app-secret", nil, nil)

	cred, err := provider.Acquire(context.Background(), scope)
	require.NoError(t, err)
	assert.Equal(t, scope, cred.Scope)
}

func TestAcquire_EmptyScope(t *testing.T) {
	provider := NewCredentialProvider("http://unused.invalid", "app-id", "app-secret", nil, nil)

	_, err := provider.Acquire(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scope is required")
}

func TestAcquire_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"AADSTS7000215: Invalid client secret provided."}`))
	}))
	t.Cleanup(srv.Close)

	provider := NewCredentialProvider(srv.URL, "app-id", "wrong-secret", http.DefaultClient, slog.Default())

	_, err := provider.Acquire(context.Background(), DefaultScope)
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Contains(t, authErr.Body, "AADSTS7000215")
	assert.Contains(t, authErr.Error(), "401")
}

func TestAcquire_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token_type":"Bearer","expires_in":3599}`))
	}))
	t.Cleanup(srv.Close)

	provider := NewCredentialProvider(srv.URL, "app-id", "app-secret", http.DefaultClient, slog.Default())

	_, err := provider.Acquire(context.Background(), DefaultScope)
	require.Error(t, err)

	var authErr *AuthError
	assert.NotErrorAs(t, err, &authErr, "a 200 without a token is not an endpoint rejection")
}

func TestCredential_EmptyToken(t *testing.T) {
	cred := &Credential{}

	_, err := cred.Token()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no access token")
}
