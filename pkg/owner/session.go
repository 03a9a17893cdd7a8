// Package owner is a minimal client for the Tesla Owner API. It covers exactly
// the surface a status-bar plugin needs: the OAuth password grant, the vehicle
// registry, per-vehicle telemetry reads, and a fixed set of commands.
package owner

import (
	"bytes"
	"context"
	_ "embed" // Used to embed version for use with user agent
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/therippa/tesla-bitbar/internal/log"
)

var (
	//go:embed version.txt
	libraryVersion string
)

const (
	baseURL = "https://owner-api.teslamotors.com"
	apiPath = "/api/1/"

	oauthClientID     = "e4a9949fcfa04068f59abb5a658f2bac0a3428e4652315490b659d5ab3f35a9e"
	oauthClientSecret = "c75f14bbadc8bee3a7594412c31416f8300256d7668ea7e6e7f06727bfb9d220"

	// Tokens are treated as expired one day before the server-declared expiry,
	// so a 30-minute render interval never dispatches with a token about to
	// lapse mid-flight.
	expiryMargin = 86400 * time.Second

	// Upper bound on response bodies; the API never returns more than a few
	// kilobytes per call.
	maxResponseLength = 1 << 20
)

func buildUserAgent(app string) string {
	library := strings.TrimSpace("tesla-bitbar/" + libraryVersion)
	build, ok := debug.ReadBuildInfo()
	if !ok {
		return library
	}
	if app == "" {
		path := strings.Split(build.Path, "/")
		if len(path) > 0 {
			app = path[len(path)-1]
		}
	}
	if app == "" {
		return library
	}
	return fmt.Sprintf("%s %s", app, library)
}

// Credentials selects one of the two ways to authorize a Session: a
// pre-existing access token, or an (email, password) pair exchanged lazily
// through the OAuth password grant. Immutable once constructed.
type Credentials struct {
	Email       string
	Password    string
	AccessToken string
}

// ProxyConfig routes all requests through an HTTP(S) proxy, with optional
// basic-auth credentials for the proxy itself. Pure transport configuration.
type ProxyConfig struct {
	URL      string
	User     string
	Password string
}

// Session owns the access token and its expiration instant, and dispatches
// authenticated requests against the Owner API. It is created once per process
// invocation and never shared across goroutines.
type Session struct {
	// HTTPClient performs all round-trips. Exported so tests can install an
	// intercepting transport.
	HTTPClient *http.Client
	UserAgent  string

	accessToken string
	expiration  time.Time
	oauth       url.Values // password-grant material; nil in token mode

	now func() time.Time
}

// NewSession constructs a Session without performing any network call. With
// creds.AccessToken set, the token is current with unbounded expiration (until
// the first 401). Otherwise the password grant runs lazily on first use.
func NewSession(creds Credentials, proxy *ProxyConfig) (*Session, error) {
	client := &http.Client{}
	if proxy != nil && proxy.URL != "" {
		u, err := url.Parse(proxy.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url: %w", err)
		}
		if proxy.User != "" {
			u.User = url.UserPassword(proxy.User, proxy.Password)
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(u)}
	}

	s := &Session{
		HTTPClient: client,
		UserAgent:  buildUserAgent(""),
		now:        time.Now,
	}
	if creds.AccessToken != "" {
		s.accessToken = strings.TrimSpace(creds.AccessToken)
		return s, nil
	}
	s.oauth = url.Values{
		"grant_type":    {"password"},
		"client_id":     {oauthClientID},
		"client_secret": {oauthClientSecret},
		"email":         {creds.Email},
		"password":      {creds.Password},
	}
	return s, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	CreatedAt   int64  `json:"created_at"`
	ExpiresIn   int64  `json:"expires_in"`
}

// expired reports whether a token exchange is required before dispatch. Token
// mode has no known expiry and relies on the server's 401.
func (s *Session) expired() bool {
	if s.oauth == nil {
		return false
	}
	return s.accessToken == "" || s.now().After(s.expiration)
}

// exchange runs the password grant and updates the token and its expiration.
func (s *Session) exchange(ctx context.Context) error {
	if s.oauth == nil {
		return ErrNoToken
	}
	body := []byte(s.oauth.Encode())
	request, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/oauth/token", bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("User-Agent", s.UserAgent)

	rsp, err := s.HTTPClient.Do(request)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer rsp.Body.Close()
	payload, err := io.ReadAll(io.LimitReader(rsp.Body, maxResponseLength))
	if err != nil {
		return &NetworkError{Err: err}
	}
	if rsp.StatusCode != http.StatusOK {
		return &APIError{Status: rsp.StatusCode, Body: string(payload)}
	}

	var token tokenResponse
	if err := json.Unmarshal(payload, &token); err != nil {
		return fmt.Errorf("malformed token response: %w", err)
	}
	if token.AccessToken == "" {
		return ErrNoToken
	}
	s.accessToken = token.AccessToken
	s.expiration = time.Unix(token.CreatedAt+token.ExpiresIn, 0).Add(-expiryMargin)
	log.Debug("Exchanged credentials for token expiring %s", s.expiration.Format(time.RFC3339))
	return nil
}

// GetAccessToken returns the current token, running the password grant first
// if no unexpired token is held. A rejected exchange reports ErrNoToken so the
// login flow can distinguish bad credentials from connectivity problems.
func (s *Session) GetAccessToken(ctx context.Context) (string, error) {
	if s.accessToken != "" && !s.expired() {
		return s.accessToken, nil
	}
	err := s.exchange(ctx)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return "", fmt.Errorf("%w: %s", ErrNoToken, apiErr)
	}
	if err != nil {
		return "", err
	}
	return s.accessToken, nil
}

// Get issues an authenticated GET against an api/1 endpoint, e.g. "vehicles".
func (s *Session) Get(ctx context.Context, endpoint string) ([]byte, error) {
	return s.dispatch(ctx, "GET", endpoint, nil)
}

// Post issues an authenticated POST against an api/1 endpoint. A nil body is
// sent as an empty JSON object.
func (s *Session) Post(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	if body == nil {
		body = []byte("{}")
	}
	return s.dispatch(ctx, "POST", endpoint, body)
}

func (s *Session) dispatch(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	if s.expired() {
		if err := s.exchange(ctx); err != nil {
			return nil, err
		}
	}

	u := baseURL + apiPath + endpoint
	request, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error constructing request to %s: %w", endpoint, err)
	}
	log.Debug("Sending %s %s: %s", method, u, body)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "*/*")
	request.Header.Set("User-Agent", s.UserAgent)
	request.Header.Set("Authorization", "Bearer "+s.accessToken)

	rsp, err := s.HTTPClient.Do(request)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer rsp.Body.Close()
	payload, err := io.ReadAll(io.LimitReader(rsp.Body, maxResponseLength))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	log.Debug("Server returned %d: %s: %s", rsp.StatusCode, http.StatusText(rsp.StatusCode), payload)

	switch {
	case rsp.StatusCode == http.StatusUnauthorized:
		return nil, ErrAuthExpired
	case rsp.StatusCode < 200 || rsp.StatusCode > 299:
		return nil, &APIError{Status: rsp.StatusCode, Body: string(payload)}
	}
	return payload, nil
}
