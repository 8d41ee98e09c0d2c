// Package api is the console's only touchpoint with the network: a typed
// client over the backend REST contract. Every call is a single attempt; a
// failed call surfaces as an error and the caller's local state stays put.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/shopspring/decimal"
)

// Client talks to the backend. The bearer token, when set, is attached to
// every request; without one, requests go out anonymous and the server
// decides what to reject.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient creates a client for the backend at baseURL (no trailing slash).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken sets the bearer token used on subsequent requests. An empty
// string clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the bearer token currently in use.
func (c *Client) Token() string {
	return c.token
}

// envelope mirrors the {success,message,data} body of non-auth endpoints.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do performs one request. For 2xx responses the envelope's data field is
// decoded into out (when out is non-nil); anything else becomes an error
// carrying the server's message.
func (c *Client) do(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		// Tolerate non-envelope bodies; the message just stays empty
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if env.Message != "" {
			return fmt.Errorf("%s %s: HTTP %d: %s", method, path, resp.StatusCode, env.Message)
		}
		return fmt.Errorf("%s %s: HTTP %d", method, path, resp.StatusCode)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// LoginResult is the decoded body of POST /auth/login.
type LoginResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	UserID    uint   `json:"userId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// ValidateResult is the decoded body of GET /auth/validate.
type ValidateResult struct {
	Valid    bool   `json:"valid"`
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login exchanges credentials for a token. Rejected credentials are a normal
// result with Success=false; only transport problems return an error.
func (c *Client) Login(username, password string) (*LoginResult, error) {
	payload := map[string]string{"username": username, "password": password}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request POST /auth/login: %w", err)
	}
	defer resp.Body.Close()

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	return &result, nil
}

// Logout revokes the current token server-side.
func (c *Client) Logout() error {
	return c.do(http.MethodPost, "/auth/logout", nil, nil)
}

// Validate asks the server whether the current token is still good. The
// endpoint answers 200 either way; Valid=false is a normal result.
func (c *Client) Validate() (*ValidateResult, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/auth/validate", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request GET /auth/validate: %w", err)
	}
	defer resp.Body.Close()

	var result ValidateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode validate response: %w", err)
	}
	return &result, nil
}

// PizzaDraft is the payload for creating or updating a catalog entry.
type PizzaDraft struct {
	Name        string          `json:"name"`
	Ingredients string          `json:"ingredients"`
	Price       decimal.Decimal `json:"price"`
	Available   *bool           `json:"available,omitempty"`
}

func (c *Client) Pizzas() ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := c.do(http.MethodGet, "/pizza", nil, &pizzas); err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (c *Client) AvailablePizzas() ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := c.do(http.MethodGet, "/pizza/disponibles", nil, &pizzas); err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (c *Client) Pizza(id int) (models.Pizza, error) {
	var pizza models.Pizza
	if err := c.do(http.MethodGet, fmt.Sprintf("/pizza/%d", id), nil, &pizza); err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (c *Client) CreatePizza(draft PizzaDraft) (models.Pizza, error) {
	var pizza models.Pizza
	if err := c.do(http.MethodPost, "/pizza", draft, &pizza); err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (c *Client) UpdatePizza(id int, draft PizzaDraft) (models.Pizza, error) {
	var pizza models.Pizza
	if err := c.do(http.MethodPut, fmt.Sprintf("/pizza/%d", id), draft, &pizza); err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (c *Client) DeletePizza(id int) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/pizza/%d", id), nil, nil)
}

// OrderDraft is the payload for placing an order. Total is advisory: the
// server recomputes it from the current unit price and is authoritative.
type OrderDraft struct {
	PizzaID       int             `json:"pizzaId"`
	Quantity      int             `json:"quantity"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	Notes         string          `json:"notes,omitempty"`
	Total         decimal.Decimal `json:"total"`
}

func (c *Client) Orders() ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(http.MethodGet, "/pedido", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) PendingOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(http.MethodGet, "/pedido/pendientes", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) OrdersByStatus(estado string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(http.MethodGet, "/pedido/estado/"+estado, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Order(id int) (models.Order, error) {
	var order models.Order
	if err := c.do(http.MethodGet, fmt.Sprintf("/pedido/%d", id), nil, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (c *Client) CreateOrder(draft OrderDraft) (models.Order, error) {
	var order models.Order
	if err := c.do(http.MethodPost, "/pedido", draft, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (c *Client) UpdateOrderStatus(id int, estado string) (models.Order, error) {
	var order models.Order
	payload := map[string]string{"estado": estado}
	if err := c.do(http.MethodPut, fmt.Sprintf("/pedido/%d/estado", id), payload, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (c *Client) DeleteOrder(id int) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/pedido/%d", id), nil, nil)
}

func (c *Client) Customers() ([]models.Customer, error) {
	var customers []models.Customer
	if err := c.do(http.MethodGet, "/cliente", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) CreateCustomer(customer models.Customer) (models.Customer, error) {
	var created models.Customer
	if err := c.do(http.MethodPost, "/cliente", customer, &created); err != nil {
		return models.Customer{}, err
	}
	return created, nil
}

func (c *Client) Users() ([]models.User, error) {
	var users []models.User
	if err := c.do(http.MethodGet, "/usuario", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserDraft is the payload for creating a backend user.
type UserDraft struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (c *Client) CreateUser(draft UserDraft) (models.User, error) {
	var created models.User
	if err := c.do(http.MethodPost, "/usuario", draft, &created); err != nil {
		return models.User{}, err
	}
	return created, nil
}
