// internal/adapters/out/mallapi/client.go
package mallapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	appsession "atelier/internal/application/session"
	cartdom "atelier/internal/domain/cart"
)

// Client implements the cart collaborator over the mall HTTP API.
//
// baseURL example:
// - Cloud Run: https://xxxxx.asia-northeast1.run.app
// - local: http://localhost:8080
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type listCartResponse struct {
	Items []cartdom.BackendLine `json:"items"`
}

type addLineRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

type removeLineRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	UnitPrice int64  `json:"unitPrice"`
}

type clearCartRequest struct {
	UserID string `json:"userId"`
}

// ListCart fetches the raw line records for the user. Grouping into display
// lines is the caller's concern.
func (c *Client) ListCart(ctx context.Context, userID string) ([]cartdom.BackendLine, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/mall/cart?userId=" + url.QueryEscape(strings.TrimSpace(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	setCommonHeaders(req)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mallapi: list cart: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, statusError("list cart", res)
	}

	var out listCartResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("mallapi: list cart decode: %w", err)
	}
	return out.Items, nil
}

// AddLine records one added line server-side.
func (c *Client) AddLine(ctx context.Context, userID, productID string, qty int, color, size string) error {
	return c.post(ctx, "/mall/cart/items", addLineRequest{
		UserID:    strings.TrimSpace(userID),
		ProductID: strings.TrimSpace(productID),
		Quantity:  qty,
		Color:     strings.TrimSpace(color),
		Size:      strings.TrimSpace(size),
	}, "add line")
}

// RemoveLine removes one line, keyed by all four discriminators.
func (c *Client) RemoveLine(ctx context.Context, userID, productID, color, size string, unitPrice int64) error {
	return c.post(ctx, "/mall/cart/items/remove", removeLineRequest{
		UserID:    strings.TrimSpace(userID),
		ProductID: strings.TrimSpace(productID),
		Color:     strings.TrimSpace(color),
		Size:      strings.TrimSpace(size),
		UnitPrice: unitPrice,
	}, "remove line")
}

// Clear empties the server-side cart.
func (c *Client) Clear(ctx context.Context, userID string) error {
	return c.post(ctx, "/mall/cart/clear", clearCartRequest{
		UserID: strings.TrimSpace(userID),
	}, "clear cart")
}

func (c *Client) post(ctx context.Context, path string, payload any, op string) error {
	if err := c.ready(); err != nil {
		return err
	}

	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	setCommonHeaders(req)

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("mallapi: %s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK || res.StatusCode == http.StatusNoContent {
		return nil
	}
	return statusError(op, res)
}

func (c *Client) ready() error {
	if c == nil {
		return fmt.Errorf("mallapi: client is nil")
	}
	if c.baseURL == "" {
		return fmt.Errorf("mallapi: baseURL is empty")
	}
	return nil
}

func setCommonHeaders(req *http.Request) {
	req.Header.Set("X-Request-Id", uuid.NewString())
}

func statusError(op string, res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	return fmt.Errorf("mallapi: %s failed status=%d body=%s", op, res.StatusCode, strings.TrimSpace(string(body)))
}

var _ appsession.CartService = (*Client)(nil)
