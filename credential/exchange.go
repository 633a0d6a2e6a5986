package credential

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/source"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCredentials performs the OAuth2 client-credentials grant against TokenURL.
type ClientCredentials struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// Client is used for the token request; http.DefaultClient when nil.
	Client *http.Client
	// Now stamps the expiry of tokens without expires_in; time.Now when nil.
	Now func() time.Time
}

// Fetch implements FetchFunc.
func (c ClientCredentials) Fetch(ctx context.Context) (Credential, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return Credential{}, &source.AuthError{Err: errors.New("client credentials are not configured")}
	}

	config := clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL,
		Scopes:       c.Scopes,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	if c.Client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.Client)
	}

	log.Infof("requesting access token from %s", c.TokenURL)
	token, err := config.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return Credential{}, &source.AuthError{
				Err: fmt.Errorf("token endpoint returned status %d", retrieveErr.Response.StatusCode),
			}
		}
		return Credential{}, &source.AuthError{Err: err}
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	// A token without an expiry is stored as already expired.
	expiresAt := now().Unix()
	if !token.Expiry.IsZero() {
		expiresAt = token.Expiry.Unix()
	}

	return Credential{Token: token.AccessToken, ExpiresAt: expiresAt}, nil
}
