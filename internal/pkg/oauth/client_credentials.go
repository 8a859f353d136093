package oauth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCredentials configures a machine-to-machine OAuth2 grant.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
}

// NewClientCredentialsClient returns an HTTP client that fetches, caches and refreshes
// bearer tokens on its own. ctx governs token requests and should outlive the client.
// base, when set, is the transport used for both token and API calls.
func NewClientCredentialsClient(ctx context.Context, creds ClientCredentials, base *http.Client) *http.Client {
	config := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     creds.TokenURL,
		Scopes:       creds.Scopes,
		AuthStyle:    oauth2.AuthStyleAutoDetect,
	}
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	return config.Client(ctx)
}
