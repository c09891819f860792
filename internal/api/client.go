package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/config"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/model"
)

// Client talks to the backend REST API. All methods are safe for concurrent
// use; credentials are passed per call, never stored here.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New builds a client for the configured backend.
func New(cfg config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		httpc: &http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: newTransport(nil),
		},
	}
}

// OrderItemRequest is one line of an order submission.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest is the order-creation payload.
type OrderRequest struct {
	FullName string             `json:"full_name"`
	Email    string             `json:"email"`
	Address  string             `json:"address"`
	Items    []OrderItemRequest `json:"items"`
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access string `json:"access"`
}

type orderCreatedResponse struct {
	ID int64 `json:"id"`
}

type checkoutSessionRequest struct {
	OrderID int64 `json:"order_id"`
}

type checkoutSessionResponse struct {
	URL string `json:"url"`
}

// anyOK accepts any 2xx status.
const anyOK = 0

// do issues one JSON request. want is the exact status expected, or anyOK.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, bearer string, out any, want int) error {
	var rdr *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s: %w", path, err)
		}
		rdr = bytes.NewReader(data)
	} else {
		rdr = bytes.NewReader(nil)
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if want == anyOK && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return responseError(resp)
	}
	if want != anyOK && resp.StatusCode != want {
		return responseError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("api: decode %s response: %w", path, err)
		}
	}
	return nil
}

// Products lists catalog products, optionally filtered by free-text search
// and category slug.
func (c *Client) Products(ctx context.Context, search, category string) ([]model.Product, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if category != "" {
		q.Set("category", category)
	}
	var out []model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/", q, nil, "", &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories lists the catalog categories.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories/", nil, nil, "", &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, fullName, email, password string) error {
	body := registerRequest{FullName: fullName, Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/api/register/", nil, body, "", nil, http.StatusCreated)
}

// Token exchanges credentials for an access token.
func (c *Client) Token(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	body := tokenRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/token/", nil, body, "", &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.Access, nil
}

// CreateOrder submits an order and returns its identifier. The bearer token
// is optional; guests may order too. A 201 without an id is
// ErrMissingOrderID.
func (c *Client) CreateOrder(ctx context.Context, order OrderRequest, bearer string) (int64, error) {
	var out orderCreatedResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders/", nil, order, bearer, &out, http.StatusCreated); err != nil {
		return 0, err
	}
	if out.ID == 0 {
		return 0, ErrMissingOrderID
	}
	return out.ID, nil
}

// CreateCheckoutSession asks the backend for a payment redirect URL for an
// existing order. A success response without a url is ErrMissingCheckoutURL.
func (c *Client) CreateCheckoutSession(ctx context.Context, orderID int64) (string, error) {
	var out checkoutSessionResponse
	body := checkoutSessionRequest{OrderID: orderID}
	if err := c.do(ctx, http.MethodPost, "/api/orders/create-checkout-session/", nil, body, "", &out, anyOK); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", ErrMissingCheckoutURL
	}
	return out.URL, nil
}

// Orders lists the authenticated user's orders.
func (c *Client) Orders(ctx context.Context, bearer string) ([]model.Order, error) {
	var out []model.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/", nil, nil, bearer, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Order fetches one order with its line details.
func (c *Client) Order(ctx context.Context, id int64, bearer string) (model.Order, error) {
	var out model.Order
	path := fmt.Sprintf("/api/orders/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, bearer, &out, http.StatusOK); err != nil {
		return model.Order{}, err
	}
	return out, nil
}
