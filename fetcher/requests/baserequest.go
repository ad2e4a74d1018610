package requests

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"leaguestats/pkg/apperrors"
	"leaguestats/pkg/messages"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

const riotHostFormat = "https://%s.api.riotgames.com"

// RiotClient does the authenticated requests to the Riot API.
type RiotClient struct {
	httpClient *http.Client
	limiter    *RateLimiter
	validate   *validator.Validate
	apiKey     string
	hostFormat string
}

type Option func(*RiotClient)

// WithHostFormat changes the host, the format receives the lower case region.
func WithHostFormat(format string) Option {
	return func(c *RiotClient) {
		c.hostFormat = format
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *RiotClient) {
		c.httpClient = client
	}
}

// Create the client shared by every fetcher.
func NewRiotClient(apiKey string, limiter *RateLimiter, opts ...Option) *RiotClient {
	c := &RiotClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    limiter,
		validate:   validator.New(),
		apiKey:     apiKey,
		hostFormat: riotHostFormat,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// URL formats the full url for the region host.
func (c *RiotClient) URL(region string, path string, args ...any) string {
	return fmt.Sprintf(c.hostFormat, strings.ToLower(region)) + fmt.Sprintf(path, args...)
}

// Do a authenticated request to the Riot API.
// Return the respose.
func (c *RiotClient) AuthRequest(ctx context.Context, url string, method string, params map[string]string) (*http.Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("can't do a authenticated request without the API Key")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait interrupted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't create request: %w", err)
	}

	// Add the params.
	query := req.URL.Query()
	for key, value := range params {
		query.Add(key, value)
	}
	req.URL.RawQuery = query.Encode()

	req.Header.Set("X-Riot-Token", c.apiKey)
	return c.httpClient.Do(req)
}

// GetJSON does a authenticated GET and decodes the body into T.
// Every failure is marked as a external source failure.
func GetJSON[T any](ctx context.Context, c *RiotClient, url string, params map[string]string) (*T, error) {
	resp, err := c.AuthRequest(ctx, url, http.MethodGet, params)
	if err != nil {
		return nil, apperrors.External(err, messages.RequestFailedMsg, url)
	}
	defer resp.Body.Close()

	// Check the status code.
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.External(fmt.Errorf("status %d", resp.StatusCode), messages.BadStatusCodeMsg, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.External(err, messages.FailedToParseMsg)
	}

	var data T
	if err := sonic.Unmarshal(body, &data); err != nil {
		return nil, apperrors.External(err, messages.FailedToParseMsg)
	}

	return &data, nil
}

// ValidateStruct checks the validate tags of a decoded payload.
func (c *RiotClient) ValidateStruct(ctx context.Context, payload any) error {
	if err := c.validate.StructCtx(ctx, payload); err != nil {
		return apperrors.External(err, messages.InvalidPayloadMsg)
	}
	return nil
}

// ValidateVar checks a single decoded value against the tag.
func (c *RiotClient) ValidateVar(ctx context.Context, value any, tag string) error {
	if err := c.validate.VarCtx(ctx, value, tag); err != nil {
		return apperrors.External(err, messages.InvalidPayloadMsg)
	}
	return nil
}
