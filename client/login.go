package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-console-core/internal/config"
)

const (
	consoleClientID = "admin-console"
	tokenPath       = "/auth/token"
)

// TokenSink receives the bearer token produced by a successful login. The
// session context satisfies it.
type TokenSink interface {
	StoreToken(token string)
}

// Login exchanges the operator's phone number and password for a bearer
// token using the OAuth2 resource-owner password grant and hands the access
// token to the sink. The token is stored unvalidated; a bad token simply
// yields an unauthenticated session on the next read.
func Login(ctx context.Context, cfg config.APIConfig, sink TokenSink, phone, password string) error {
	conf := &oauth2.Config{
		ClientID: consoleClientID,
		Endpoint: oauth2.Endpoint{
			TokenURL:  strings.TrimRight(cfg.GetAPIBaseURL(), "/") + tokenPath,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: cfg.GetHTTPTimeout()})
	token, err := conf.PasswordCredentialsToken(ctx, phone, password)
	if err != nil {
		return errors.Wrap(err, "[Login] password grant failed")
	}

	sink.StoreToken(token.AccessToken)
	return nil
}
