package picnic

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"fastnic/internal/config"

	"github.com/rs/zerolog"
)

// Client is the grocery-cart service API used by order placement and the
// discount optimizer.
type Client interface {
	// GetCart returns the current shopping cart contents.
	GetCart(ctx context.Context) ([]CartItem, error)

	// Search returns the first result group for a product name.
	Search(ctx context.Context, name string) ([]SearchResult, error)

	// AddProduct adds count units of a product to the cart.
	AddProduct(ctx context.Context, productID string, count int) error

	// RemoveProduct removes count units of a product from the cart.
	RemoveProduct(ctx context.Context, productID string, count int) error

	// LoggedIn reports whether the session is authenticated.
	LoggedIn(ctx context.Context) (bool, error)
}

// client implements Client over the service's JSON HTTP API.
type client struct {
	baseURL     string
	username    string
	password    string
	countryCode string
	httpClient  *http.Client
	logger      zerolog.Logger

	mu        sync.Mutex
	authToken string
}

// NewClient creates a new cart service client. Authentication is lazy:
// the first request logs in and subsequent requests reuse the token,
// re-authenticating once on a 401.
func NewClient(cfg config.PicnicConfig, logger zerolog.Logger) Client {
	return &client{
		baseURL:     cfg.BaseURL,
		username:    cfg.Username,
		password:    cfg.Password,
		countryCode: cfg.CountryCode,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger.With().Str("client", "picnic").Logger(),
	}
}

// cartGroup is the service's nested cart representation: one group per
// delivery slot, each wrapping its own item list.
type cartGroup struct {
	Items []CartItem `json:"items"`
}

// searchGroup is one result group of the search endpoint.
type searchGroup struct {
	Items []SearchResult `json:"items"`
}

// GetCart returns the cart, flattened to the first inner item per group.
func (c *client) GetCart(ctx context.Context) ([]CartItem, error) {
	var resp struct {
		Items []cartGroup `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &resp); err != nil {
		c.logger.Error().Err(err).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var items []CartItem
	for _, group := range resp.Items {
		if len(group.Items) == 0 {
			continue
		}
		items = append(items, group.Items[0])
	}

	c.logger.Debug().Int("count", len(items)).Msg("cart retrieved")

	return items, nil
}

// Search returns the items of the first result group for the given name.
func (c *client) Search(ctx context.Context, name string) ([]SearchResult, error) {
	var groups []searchGroup
	path := "/search?search_term=" + url.QueryEscape(name)
	if err := c.do(ctx, http.MethodGet, path, nil, &groups); err != nil {
		c.logger.Error().Err(err).Str("name", name).Msg("search failed")
		return nil, fmt.Errorf("search %q failed: %w", name, err)
	}

	if len(groups) == 0 {
		return nil, nil
	}

	return groups[0].Items, nil
}

// AddProduct adds count units of a product to the cart.
func (c *client) AddProduct(ctx context.Context, productID string, count int) error {
	body := map[string]any{"product_id": productID, "count": count}
	if err := c.do(ctx, http.MethodPost, "/cart/add_product", body, nil); err != nil {
		c.logger.Error().
			Err(err).
			Str("product_id", productID).
			Int("count", count).
			Msg("failed to add product")
		return fmt.Errorf("failed to add product %s: %w", productID, err)
	}

	c.logger.Debug().Str("product_id", productID).Int("count", count).Msg("product added")

	return nil
}

// RemoveProduct removes count units of a product from the cart.
func (c *client) RemoveProduct(ctx context.Context, productID string, count int) error {
	body := map[string]any{"product_id": productID, "count": count}
	if err := c.do(ctx, http.MethodPost, "/cart/remove_product", body, nil); err != nil {
		c.logger.Error().
			Err(err).
			Str("product_id", productID).
			Int("count", count).
			Msg("failed to remove product")
		return fmt.Errorf("failed to remove product %s: %w", productID, err)
	}

	c.logger.Debug().Str("product_id", productID).Int("count", count).Msg("product removed")

	return nil
}

// LoggedIn reports whether the session is authenticated by probing the
// user endpoint.
func (c *client) LoggedIn(ctx context.Context) (bool, error) {
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil); err != nil {
		var httpErr *httpError
		if errors.As(err, &httpErr) && httpErr.status == http.StatusUnauthorized {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// login authenticates and stores the session token.
func (c *client) login(ctx context.Context) error {
	// The service expects an MD5 digest of the password, not the password
	// itself.
	sum := md5.Sum([]byte(c.password))
	body := map[string]any{
		"key":       c.username,
		"secret":    hex.EncodeToString(sum[:]),
		"client_id": 1,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user/login", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-picnic-agent", "30100;1.15.77-"+c.countryCode)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &httpError{status: resp.StatusCode, path: "/user/login"}
	}

	token := resp.Header.Get("x-picnic-auth")
	if token == "" {
		return fmt.Errorf("login response carried no auth token")
	}

	c.mu.Lock()
	c.authToken = token
	c.mu.Unlock()

	c.logger.Debug().Msg("logged in to cart service")

	return nil
}

// do performs an authenticated request, logging in on demand and
// re-authenticating once when the token is rejected.
func (c *client) do(ctx context.Context, method, path string, body any, out any) error {
	c.mu.Lock()
	token := c.authToken
	c.mu.Unlock()

	if token == "" {
		if err := c.login(ctx); err != nil {
			return err
		}
	}

	err := c.request(ctx, method, path, body, out)
	var httpErr *httpError
	if errors.As(err, &httpErr) && httpErr.status == http.StatusUnauthorized {
		if err := c.login(ctx); err != nil {
			return err
		}
		return c.request(ctx, method, path, body, out)
	}

	return err
}

// request performs one HTTP round trip with the current token.
func (c *client) request(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.Lock()
	req.Header.Set("x-picnic-auth", c.authToken)
	c.mu.Unlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &httpError{status: resp.StatusCode, path: path}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// httpError is a non-2xx response from the cart service.
type httpError struct {
	status int
	path   string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("cart service returned %d for %s", e.status, e.path)
}
