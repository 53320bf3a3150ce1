package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/logger"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client is the storefront's view of the backend REST API.
type Client interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	SendOTP(ctx context.Context, req *models.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.AuthResponse, error)
	Me(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, req *models.UpdateProfileRequest) error
	CreateOrder(ctx context.Context, token string, req *models.CreateOrderRequest) (*models.Order, error)
	Ping(ctx context.Context) error
}

// Error is a failed backend call. StatusCode is 0 when no response arrived.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Observer is told about every completed call.
type Observer func(endpoint string, status int, duration time.Duration)

type Option func(*client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) { c.http = hc }
}

// WithRequestID sets the source of the X-Request-ID header.
func WithRequestID(fn func(ctx context.Context) string) Option {
	return func(c *client) { c.requestID = fn }
}

func WithObserver(o Observer) Option {
	return func(c *client) { c.observe = o }
}

type client struct {
	baseURL   string
	http      *http.Client
	requestID func(ctx context.Context) string
	observe   Observer
}

func New(baseURL string, timeout time.Duration, opts ...Option) Client {

	c := &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type call struct {
	method   string
	path     string
	endpoint string // label without ids, for metrics
	token    string
	body     any
	accept   []int
}

// do sends the call and returns the raw body of an accepted response.
func (c *client) do(ctx context.Context, cl call) ([]byte, error) {

	start := time.Now()
	status := 0

	defer func() {
		if c.observe != nil {
			c.observe(cl.endpoint, status, time.Since(start))
		}
	}()

	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, &Error{Message: "failed to encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reader)
	if err != nil {
		return nil, &Error{Message: "failed to build request", Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	if c.requestID != nil {
		if id := c.requestID(ctx); id != "" {
			req.Header.Set("X-Request-ID", id)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	status = resp.StatusCode

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: status, Message: "failed to read response", Err: err}
	}

	for _, code := range cl.accept {
		if code == status {
			return data, nil
		}
	}

	return nil, &Error{StatusCode: status, Message: messageFrom(data, status)}
}

// messageFrom prefers the backend's own "message" field.
func messageFrom(data []byte, status int) string {

	var body struct {
		Message string `json:"message"`
	}

	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}

	if text := http.StatusText(status); text != "" {
		return text
	}

	return fmt.Sprintf("unexpected status %d", status)
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Message: "invalid response from backend", Err: err}
	}

	return nil
}

// decodeProducts decodes element by element; entries that are not product
// objects are skipped.
func decodeProducts(ctx context.Context, raw []json.RawMessage) []models.Product {

	products := make([]models.Product, 0, len(raw))

	for i, r := range raw {
		var p models.Product
		if err := json.Unmarshal(r, &p); err != nil {
			logger.FromContext(ctx).Warn("Skipping undecodable product", slog.Int("index", i), slog.String("error", err.Error()))
			continue
		}
		products = append(products, p)
	}

	return products
}

func (c *client) ListProducts(ctx context.Context) ([]models.Product, error) {

	data, err := c.do(ctx, call{method: http.MethodGet, path: "/api/products", endpoint: "GET /api/products", accept: []int{http.StatusOK}})
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := decode(data, &raw); err != nil {
		return nil, err
	}

	return decodeProducts(ctx, raw), nil
}

func (c *client) GetProduct(ctx context.Context, id string) (*models.Product, error) {

	data, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/products/" + url.PathEscape(id),
		endpoint: "GET /api/products/{id}",
		accept:   []int{http.StatusOK},
	})
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := decode(data, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *client) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {

	data, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/products/search?q=" + url.QueryEscape(query),
		endpoint: "GET /api/products/search",
		accept:   []int{http.StatusOK},
	})
	if err != nil {
		return nil, err
	}

	var body struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    []json.RawMessage `json:"data"`
	}
	if err := decode(data, &body); err != nil {
		return nil, err
	}

	if !body.Success {
		msg := body.Message
		if msg == "" {
			msg = "An error occurred in the API."
		}
		return nil, &Error{StatusCode: http.StatusOK, Message: msg}
	}

	return decodeProducts(ctx, body.Data), nil
}

func (c *client) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {

	data, err := c.do(ctx, call{method: http.MethodPost, path: "/api/auth/login", endpoint: "POST /api/auth/login", body: req, accept: []int{http.StatusOK, http.StatusCreated}})
	if err != nil {
		return nil, err
	}

	var auth models.AuthResponse
	if err := decode(data, &auth); err != nil {
		return nil, err
	}

	return &auth, nil
}

func (c *client) SendOTP(ctx context.Context, req *models.SendOTPRequest) error {

	_, err := c.do(ctx, call{method: http.MethodPost, path: "/api/otp/send-otp", endpoint: "POST /api/otp/send-otp", body: req, accept: []int{http.StatusOK}})

	return err
}

func (c *client) VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.AuthResponse, error) {

	data, err := c.do(ctx, call{method: http.MethodPost, path: "/api/otp/verify-otp", endpoint: "POST /api/otp/verify-otp", body: req, accept: []int{http.StatusCreated}})
	if err != nil {
		return nil, err
	}

	var auth models.AuthResponse
	if err := decode(data, &auth); err != nil {
		return nil, err
	}

	return &auth, nil
}

func (c *client) Me(ctx context.Context, token string) (*models.User, error) {

	data, err := c.do(ctx, call{method: http.MethodGet, path: "/api/auth/me", endpoint: "GET /api/auth/me", token: token, accept: []int{http.StatusOK}})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := decode(data, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *client) UpdateProfile(ctx context.Context, token string, req *models.UpdateProfileRequest) error {

	_, err := c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/api/auth/update-profile",
		endpoint: "PUT /api/auth/update-profile",
		token:    token,
		body:     req,
		accept:   []int{http.StatusOK, http.StatusCreated, http.StatusNoContent},
	})

	return err
}

// CreateOrder only treats 201 Created as success.
func (c *client) CreateOrder(ctx context.Context, token string, req *models.CreateOrderRequest) (*models.Order, error) {

	data, err := c.do(ctx, call{method: http.MethodPost, path: "/api/orders/create", endpoint: "POST /api/orders/create", token: token, body: req, accept: []int{http.StatusCreated}})
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := decode(data, &order); err != nil {
		return nil, err
	}

	if order.ID == "" {
		return nil, &Error{StatusCode: http.StatusCreated, Message: "order response carries no id"}
	}

	return &order, nil
}

// Ping checks that the backend answers at all; any HTTP response counts.
func (c *client) Ping(ctx context.Context) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}

	return nil
}

// IsUnauthorized reports whether err is a backend rejection of the credentials.
func IsUnauthorized(err error) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.StatusCode == http.StatusUnauthorized || be.StatusCode == http.StatusForbidden
	}

	return false
}
