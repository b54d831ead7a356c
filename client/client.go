// Package client binds the console backend's REST surface to the shapes the
// core consumes: it adapts paginated collection endpoints into
// listing.FetchFunc values, maps mutation failures into listing.ErrorInfo,
// and runs the password login flow that seeds the session store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-console-core/internal/config"
	"github.com/jrsteele09/go-console-core/listing"
)

const (
	contentTypeJSON  = "application/json; charset=utf-8"
	requestIDHeader  = "X-Request-ID"
	authHeaderPrefix = "Bearer "
)

// TokenSource supplies the bearer token attached to outbound requests. The
// session context satisfies it; an empty token means the request goes out
// unauthenticated.
type TokenSource interface {
	StoredToken() string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func New(cfg config.APIConfig, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		httpClient: &http.Client{Timeout: cfg.GetHTTPTimeout()},
		tokens:     tokens,
	}
}

// errorEnvelope matches the backend's failure body.
type errorEnvelope struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// do executes one request. Transport failures and non-2xx statuses are
// converted to ErrorInfo; the caller owns the response body on success.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, *listing.ErrorInfo) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &listing.ErrorInfo{Message: err.Error(), Kind: listing.KindUnknown}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &listing.ErrorInfo{Message: err.Error(), Kind: listing.KindTransport}
	}

	requestID := uuid.New().String()
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	if token := c.tokens.StoredToken(); token != "" {
		req.Header.Set("Authorization", authHeaderPrefix+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("request_id", requestID).Str("path", path).Msg("[do] request failed")
		return nil, &listing.ErrorInfo{Message: err.Error(), Kind: listing.KindTransport}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		return nil, errorInfoFromResponse(resp)
	}

	return resp, nil
}

// errorInfoFromResponse maps a non-2xx response to an ErrorInfo. When the
// backend supplies its {error, kind} envelope, the kind is kept as-is
// (defaulting to "unknown" when the kind field is empty); a response with no
// decodable envelope is a transport failure.
func errorInfoFromResponse(resp *http.Response) *listing.ErrorInfo {
	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
		return &listing.ErrorInfo{
			Message: resp.Status,
			Kind:    listing.KindTransport,
		}
	}

	kind := envelope.Kind
	if kind == "" {
		kind = listing.KindUnknown
	}
	return &listing.ErrorInfo{Message: envelope.Error, Kind: kind}
}

// PostJSON issues a POST mutation. A nil return means the backend accepted
// it.
func (c *Client) PostJSON(ctx context.Context, path string, body any) *listing.ErrorInfo {
	return c.mutate(ctx, http.MethodPost, path, body)
}

// PutJSON issues a PUT mutation.
func (c *Client) PutJSON(ctx context.Context, path string, body any) *listing.ErrorInfo {
	return c.mutate(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE mutation.
func (c *Client) Delete(ctx context.Context, path string) *listing.ErrorInfo {
	return c.mutate(ctx, http.MethodDelete, path, nil)
}

func (c *Client) mutate(ctx context.Context, method, path string, body any) *listing.ErrorInfo {
	resp, errInfo := c.do(ctx, method, path, body)
	if errInfo != nil {
		return errInfo
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
