// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pizza

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pizzalab/pizza-tester/pkg/defaults"
	"github.com/pizzalab/pizza-tester/pkg/errors"
)

const (
	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "Pizza-Tester/1.0"

	// maxResponseBytes caps how much of a response body is decoded.
	maxResponseBytes = 10 << 20
)

// Endpoint labels used for logging and metrics.
const (
	endpointPizzas           = "pizzas"
	endpointPizzaByID        = "pizzas/{id}"
	endpointPizzasWithPrices = "pizzasWithPrices"
	endpointIngredientPrices = "ingredientPrices"
	endpointSearch           = "pizzas/search"
	endpointPizzaPrice       = "pizzasWithPrices/{id}/price"
	endpointCompute          = "pizzasWithPrices/compute"
)

// Option configures a Client.
type Option func(*Client)

// Client calls the pizza catalog API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// WithBaseURL sets the API base URL. A trailing slash is ignored.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

// WithHTTPClient replaces the tuned default HTTP client. The client is
// copied, so later options never modify the caller's value.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			cp := *client
			c.httpClient = &cp
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the total per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a Client for the default public API unless WithBaseURL says otherwise.
func NewClient(options ...Option) *Client {
	c := &Client{
		baseURL:   defaults.APIBaseURL,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout:   defaults.HTTPClientTimeout,
			Transport: newDefaultTransport(),
		},
	}

	for _, opt := range options {
		opt(c)
	}

	if c.baseURL == "" {
		c.baseURL = defaults.APIBaseURL
	}
	return c
}

func newDefaultTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetAllPizzas lists the catalog.
func (c *Client) GetAllPizzas(ctx context.Context) ([]Pizza, error) {
	return fetch[[]Pizza](ctx, c, request{
		endpoint: endpointPizzas,
		method:   http.MethodGet,
		segments: []string{"pizzas"},
	})
}

// GetPizzaByID fetches a single pizza.
func (c *Client) GetPizzaByID(ctx context.Context, id string) (Pizza, error) {
	return fetch[Pizza](ctx, c, request{
		endpoint: endpointPizzaByID,
		method:   http.MethodGet,
		segments: []string{"pizzas", id},
		attrs:    []any{"id", id},
	})
}

// GetPizzasWithPrices lists the catalog with prices populated.
func (c *Client) GetPizzasWithPrices(ctx context.Context) ([]Pizza, error) {
	return fetch[[]Pizza](ctx, c, request{
		endpoint: endpointPizzasWithPrices,
		method:   http.MethodGet,
		segments: []string{"pizzasWithPrices"},
	})
}

// GetIngredientPrices returns the unit price of every known ingredient.
func (c *Client) GetIngredientPrices(ctx context.Context) (IngredientPriceMap, error) {
	return fetch[IngredientPriceMap](ctx, c, request{
		endpoint: endpointIngredientPrices,
		method:   http.MethodGet,
		segments: []string{"ingredientPrices"},
	})
}

// SearchPizzasByIngredients returns the pizzas matching the given symbols.
// Each symbol is sent as its own ingredient query parameter, in order.
func (c *Client) SearchPizzasByIngredients(ctx context.Context, ingredients []string) ([]Pizza, error) {
	return fetch[[]Pizza](ctx, c, request{
		endpoint: endpointSearch,
		method:   http.MethodGet,
		segments: []string{"pizzas", "search"},
		query:    url.Values{"ingredient": ingredients},
		attrs:    []any{"ingredients", ingredients},
	})
}

// GetPizzaPrice fetches the price of a single pizza.
func (c *Client) GetPizzaPrice(ctx context.Context, id string) (PriceResult, error) {
	return fetch[PriceResult](ctx, c, request{
		endpoint: endpointPizzaPrice,
		method:   http.MethodGet,
		segments: []string{"pizzasWithPrices", id, "price"},
		attrs:    []any{"id", id},
	})
}

// ComputeCustomPizzaPrice asks the server to price an arbitrary ingredient list.
func (c *Client) ComputeCustomPizzaPrice(ctx context.Context, ingredients []string) (CustomPriceResult, error) {
	if ingredients == nil {
		ingredients = []string{}
	}
	return fetch[CustomPriceResult](ctx, c, request{
		endpoint: endpointCompute,
		method:   http.MethodPost,
		segments: []string{"pizzasWithPrices", "compute"},
		body:     computeRequest{Ingredients: ingredients},
		attrs:    []any{"ingredients", ingredients},
	})
}

type request struct {
	endpoint string
	method   string
	segments []string
	query    url.Values
	body     any
	attrs    []any
}

func (c *Client) buildURL(req request) string {
	var sb strings.Builder
	sb.WriteString(c.baseURL)
	for _, s := range req.segments {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(s))
	}
	if len(req.query) > 0 {
		sb.WriteByte('?')
		// spaces go out as %20, matching path segments
		sb.WriteString(strings.ReplaceAll(req.query.Encode(), "+", "%20"))
	}
	return sb.String()
}

// fetch performs one request and unwraps the data envelope.
func fetch[T any](ctx context.Context, c *Client, req request) (T, error) {
	var zero T

	data, err := c.do(ctx, req)
	if err != nil {
		slog.Error("pizza api request failed",
			append([]any{"endpoint", req.endpoint, "error", err}, req.attrs...)...)
		return zero, err
	}

	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		err = errors.WrapWithContext(errors.ErrCodeInternal, "invalid response body", err,
			map[string]any{"endpoint": req.endpoint})
		slog.Error("pizza api response could not be decoded",
			append([]any{"endpoint", req.endpoint, "error", err}, req.attrs...)...)
		return zero, err
	}

	return env.Data, nil
}

func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to encode request body", err)
		}
		body = bytes.NewReader(b)
	}

	target := c.buildURL(req)
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to create request", err,
			map[string]any{"url": target})
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	apiRequestDuration.WithLabelValues(req.endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		apiRequestsTotal.WithLabelValues(req.endpoint, "error").Inc()
		return nil, transportError(ctx, req.endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	apiRequestsTotal.WithLabelValues(req.endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, errors.NewWithContext(codeForStatus(resp.StatusCode),
			fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
			map[string]any{
				"endpoint": req.endpoint,
				"status":   resp.StatusCode,
			})
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(ctx, req.endpoint, err)
	}
	return data, nil
}

// codeForStatus classifies a failed status for observability. Callers treat
// every code the same way.
func codeForStatus(status int) errors.ErrorCode {
	switch {
	case status == http.StatusNotFound:
		return errors.ErrCodeNotFound
	case status == http.StatusMethodNotAllowed:
		return errors.ErrCodeMethodNotAllowed
	case status == http.StatusTooManyRequests:
		return errors.ErrCodeRateLimitExceeded
	case status == http.StatusGatewayTimeout:
		return errors.ErrCodeTimeout
	case status >= 500:
		return errors.ErrCodeUnavailable
	default:
		return errors.ErrCodeInvalidRequest
	}
}

func transportError(ctx context.Context, endpoint string, err error) error {
	code := errors.ErrCodeUnavailable
	var netErr net.Error
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(stderrors.As(err, &netErr) && netErr.Timeout()) {
		code = errors.ErrCodeTimeout
	}
	return errors.WrapWithContext(code, "request failed", err,
		map[string]any{"endpoint": endpoint})
}
