package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/microsoft"
)

// DefaultScope is the audience scope for the Microsoft Graph API.
// App-only tokens minted with it carry whatever application permissions
// the tenant admin consented to.
const DefaultScope = "https://graph.microsoft.com/.default"

// HostScope returns the audience scope for the SharePoint tenant host.
// The site-scoped legacy surface rejects Graph-audience tokens with 401,
// so probes against it need a credential minted with this scope.
func HostScope(hostname string) string {
	return "https://" + hostname + "/.default"
}

// TokenURL returns the AzureAD v2 token endpoint for the tenant.
func TokenURL(tenantID string) string {
	return microsoft.AzureADEndpoint(tenantID).TokenURL
}

// AuthError is returned when the token endpoint answers with a non-success
// status. It carries the HTTP status and the raw response body so operators
// can tell a bad secret from a missing admin consent without re-running the
// exchange by hand. The client secret itself never appears in it.
type AuthError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: token exchange failed with HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Credential is a minted app-only access token bound to the audience scope
// it was requested for. It satisfies TokenSource so clients use it directly.
type Credential struct {
	AccessToken string
	Scope       string
}

// Token implements TokenSource.
func (c *Credential) Token() (string, error) {
	if c.AccessToken == "" {
		return "", errors.New("auth: credential has no access token")
	}

	return c.AccessToken, nil
}

// CredentialProvider mints app-only credentials via the OAuth2
// client-credentials grant. Every Acquire performs a fresh exchange; nothing
// is cached between pipeline runs, so two identical requests hit the token
// endpoint identically.
type CredentialProvider struct {
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewCredentialProvider creates a provider for the given token endpoint,
// typically TokenURL(tenantID). Tests inject a mock endpoint URL.
func NewCredentialProvider(tokenURL, clientID, clientSecret string, httpClient *http.Client, logger *slog.Logger) *CredentialProvider {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &CredentialProvider{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		logger:       logger,
	}
}

// Acquire performs a client-credentials exchange for the given audience
// scope. The scope is an explicit required argument because a single
// pipeline run needs differently scoped credentials: the Graph audience for
// resolution and download, the tenant-host audience for the legacy tier.
// A non-success token response is returned as *AuthError. The exchange is
// not retried.
func (p *CredentialProvider) Acquire(ctx context.Context, scope string) (*Credential, error) {
	if scope == "" {
		return nil, errors.New("auth: audience scope is required")
	}

	p.logger.Debug("acquiring app-only token", slog.String("scope", scope))

	cfg := clientcredentials.Config{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		TokenURL:     p.tokenURL,
		Scopes:       []string{scope},
		// AzureAD v2 accepts the secret in the POST body.
		AuthStyle: oauth2.AuthStyleInParams,
	}

	// The oauth2 package picks its HTTP client out of the context.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	tok, err := cfg.Token(ctx)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			status := 0
			if rerr.Response != nil {
				status = rerr.Response.StatusCode
			}

			p.logger.Warn("token exchange rejected",
				slog.String("scope", scope),
				slog.Int("status", status),
			)

			return nil, &AuthError{StatusCode: status, Body: string(rerr.Body), Err: err}
		}

		return nil, fmt.Errorf("auth: token exchange: %w", err)
	}

	p.logger.Debug("token acquired",
		slog.String("scope", scope),
		slog.Time("expiry", tok.Expiry),
	)

	return &Credential{AccessToken: tok.AccessToken, Scope: scope}, nil
}
