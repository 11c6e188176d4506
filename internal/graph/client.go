// Package graph is a minimal client for the Facebook Graph API calls made
// during the login callback: code exchange, profile lookup, and page
// token lookup.
package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	apperrors "github.com/alexjbarnes/page-token-broker/internal/errors"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the production Graph API host.
const DefaultBaseURL = "https://graph.facebook.com"

// apiVersion is the versioned prefix for the token and accounts endpoints.
// The profile endpoint is called unversioned.
const apiVersion = "v20.0"

const (
	// maxRedirects is the maximum number of HTTP redirects to follow
	// before giving up, matching the default net/http limit.
	maxRedirects = 10

	// DefaultTimeout bounds each call when no custom client is provided.
	DefaultTimeout = 10 * time.Second

	// maxAPIResponseBytes caps response body reads. Graph responses for
	// these endpoints are small JSON documents.
	maxAPIResponseBytes = 1024 * 1024

	// profileFields is the field list requested from /me.
	profileFields = "id,name,email"
)

// Profile is the subset of the /me response the broker stores.
type Profile struct {
	ID    string
	Name  string
	Email string
}

// Client talks to the Graph API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// sameHostRedirectPolicy follows redirects only when the target host
// matches the original request host. Requests carry the app secret and
// user tokens in the query string.
func sameHostRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.New("stopped after 10 redirects")
	}

	if len(via) > 0 {
		origHost := via[0].URL.Host
		if req.URL.Host != origHost {
			return fmt.Errorf("redirect to different host blocked: %s -> %s", origHost, req.URL.Host)
		}
	}

	return nil
}

// NewHTTPClient returns a pooled client with the given timeout and a
// same-host redirect policy.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Transport:     cleanhttp.DefaultPooledTransport(),
		Timeout:       timeout,
		CheckRedirect: sameHostRedirectPolicy,
	}
}

// NewClient creates a Graph client. If httpClient is nil, NewHTTPClient
// with DefaultTimeout is used. An empty baseURL means DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// sanitizeResponseBody truncates and sanitizes a response body for
// inclusion in error messages. Limits to 256 bytes and replaces
// non-printable characters to prevent log injection.
func sanitizeResponseBody(body []byte) string {
	const maxLen = 256
	if len(body) > maxLen {
		body = body[:maxLen]
	}

	var clean []byte

	for len(body) > 0 {
		r, size := utf8.DecodeRune(body)
		if r == utf8.RuneError && size <= 1 {
			clean = append(clean, '?')
			body = body[1:]

			continue
		}

		if r < 0x20 {
			clean = append(clean, '?')
		} else {
			clean = append(clean, body[:size]...)
		}

		body = body[size:]
	}

	return string(clean)
}

// get issues a GET to endpoint with params and returns the parsed JSON
// body. Any status outside 2xx is an error.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (gjson.Result, error) {
	u := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The URL holds secrets; report only the endpoint.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}

		return gjson.Result{}, fmt.Errorf("%w: sending request to %s: %w", apperrors.ErrAPIRequest, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes+1))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: reading response from %s: %w", apperrors.ErrAPIRequest, endpoint, err)
	}

	if len(body) > maxAPIResponseBytes {
		return gjson.Result{}, fmt.Errorf("%w: response from %s exceeds %d bytes", apperrors.ErrAPIResponse, endpoint, maxAPIResponseBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg := gjson.GetBytes(body, "error.message"); msg.Exists() && msg.String() != "" {
			return gjson.Result{}, fmt.Errorf("%w: %s (%d): %s", apperrors.ErrAPIRequest, endpoint, resp.StatusCode, sanitizeResponseBody([]byte(msg.String())))
		}

		return gjson.Result{}, fmt.Errorf("%w: %s returned status %d: %s", apperrors.ErrAPIRequest, endpoint, resp.StatusCode, sanitizeResponseBody(body))
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: %s returned malformed JSON", apperrors.ErrAPIResponse, endpoint)
	}

	result := gjson.ParseBytes(body)
	if !result.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: %s returned non-object JSON", apperrors.ErrAPIResponse, endpoint)
	}

	return result, nil
}

// ExchangeCode trades an authorization code for a user access token.
func (c *Client) ExchangeCode(ctx context.Context, clientID, clientSecret, code, redirectURI string) (string, error) {
	params := url.Values{
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"code":          {code},
		"redirect_uri":  {redirectURI},
	}

	res, err := c.get(ctx, "/"+apiVersion+"/oauth/access_token", params)
	if err != nil {
		return "", fmt.Errorf("exchanging code: %w", err)
	}

	token := res.Get("access_token").String()
	if token == "" {
		return "", fmt.Errorf("exchanging code: %w: no access_token in response", apperrors.ErrAPIResponse)
	}

	return token, nil
}

// Me fetches the id, name and email of the user owning userAccessToken.
func (c *Client) Me(ctx context.Context, userAccessToken string) (*Profile, error) {
	params := url.Values{
		"fields":       {profileFields},
		"access_token": {userAccessToken},
	}

	res, err := c.get(ctx, "/me", params)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}

	// Graph returns ids as strings; accept numbers too.
	id := res.Get("id").String()
	if id == "" {
		return nil, fmt.Errorf("fetching profile: %w: no id in response", apperrors.ErrAPIResponse)
	}

	return &Profile{
		ID:    id,
		Name:  res.Get("name").String(),
		Email: res.Get("email").String(),
	}, nil
}

// PageAccessToken returns the access token of the first page the user
// manages. An empty account list is reported as ErrNoPageAccounts.
func (c *Client) PageAccessToken(ctx context.Context, userAccessToken string) (string, error) {
	params := url.Values{
		"access_token": {userAccessToken},
	}

	res, err := c.get(ctx, "/"+apiVersion+"/me/accounts", params)
	if err != nil {
		return "", fmt.Errorf("fetching page token: %w", err)
	}

	data := res.Get("data")
	if !data.IsArray() {
		return "", fmt.Errorf("fetching page token: %w: no data array in response", apperrors.ErrAPIResponse)
	}

	accounts := data.Array()
	if len(accounts) == 0 {
		return "", fmt.Errorf("fetching page token: %w", apperrors.ErrNoPageAccounts)
	}

	token := accounts[0].Get("access_token").String()
	if token == "" {
		return "", fmt.Errorf("fetching page token: %w: first account has no access_token", apperrors.ErrAPIResponse)
	}

	return token, nil
}
