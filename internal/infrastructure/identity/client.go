package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const sessionHeader = "X-Session-ID"

var ErrBadResponse = errors.New("identity provider returned an unusable response")

// Profile is what the identity provider knows about an authenticated person.
type Profile struct {
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Picture      *string `json:"picture"`
	SessionToken string  `json:"session_token"`
}

type Client interface {
	SessionData(ctx context.Context, sessionID string) (Profile, error)
}

type httpClient struct {
	endpoint string
	client   *http.Client
	logger   *log.Logger
}

func NewClient(endpoint string, timeout time.Duration, logger *log.Logger) Client {
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpClient{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// SessionData exchanges a provider session id for the profile and session
// token. Failures are logged here and are never retried.
func (c *httpClient) SessionData(ctx context.Context, sessionID string) (Profile, error) {
	p, err := c.fetch(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		c.logger.Printf("[Identity] SessionData error endpoint=%s err=%v", c.endpoint, err)
		return Profile{}, err
	}
	return p, nil
}

func (c *httpClient) fetch(ctx context.Context, sessionID string) (Profile, error) {
	if sessionID == "" {
		return Profile{}, fmt.Errorf("%w: empty session id", ErrBadResponse)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Profile{}, err
	}
	req.Header.Set(sessionHeader, sessionID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Profile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Profile{}, fmt.Errorf("%w: status=%d body=%q", ErrBadResponse, resp.StatusCode, strings.TrimSpace(string(rb)))
	}

	var out Profile
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Profile{}, fmt.Errorf("%w: decode: %v", ErrBadResponse, err)
	}

	out.Email = strings.TrimSpace(out.Email)
	out.Name = strings.TrimSpace(out.Name)
	out.SessionToken = strings.TrimSpace(out.SessionToken)
	if out.Email == "" || out.SessionToken == "" {
		return Profile{}, fmt.Errorf("%w: missing email or session_token", ErrBadResponse)
	}
	return out, nil
}

var _ Client = (*httpClient)(nil)
