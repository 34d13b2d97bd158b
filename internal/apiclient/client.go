// Package apiclient is a typed client for the budget-assist HTTP API.
//
// Reads never fail: a transport error or non-2xx response is logged and an
// empty result is returned. Writes return *NetworkError or *APIError and are
// not retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a single request
const DefaultTimeout = 10 * time.Second

// Client talks to the /api/v1 endpoints
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends the token as a Bearer Authorization header
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the logger used for degraded reads
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for baseURL, e.g. http://localhost:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api/v1",
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.With().Str("component", "apiclient").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTransactions returns transactions matching q, or an empty slice on failure
func (c *Client) ListTransactions(ctx context.Context, q TransactionQuery) []Transaction {
	params := url.Values{}
	setParam(params, "type", q.Type)
	setParam(params, "category", q.Category)
	setParam(params, "start", q.Start)
	setParam(params, "end", q.End)
	setParam(params, "sort_by", q.SortBy)
	setParam(params, "order", q.Order)
	return getList[Transaction](ctx, c, "/transactions", params, "transactions")
}

// CreateTransaction records a transaction
func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*Transaction, error) {
	var out Transaction
	if err := c.send(ctx, http.MethodPost, "/transactions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBudgets returns budgets with their derived fields
func (c *Client) ListBudgets(ctx context.Context) []Budget {
	return getList[Budget](ctx, c, "/budgets", nil, "budgets")
}

// CreateBudget creates a budget
func (c *Client) CreateBudget(ctx context.Context, req CreateBudgetRequest) (*Budget, error) {
	var out Budget
	if err := c.send(ctx, http.MethodPost, "/budgets", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListGoals returns all savings goals
func (c *Client) ListGoals(ctx context.Context) []Goal {
	return getList[Goal](ctx, c, "/goals", nil, "goals")
}

// CreateGoal creates a savings goal
func (c *Client) CreateGoal(ctx context.Context, req CreateGoalRequest) (*Goal, error) {
	var out Goal
	if err := c.send(ctx, http.MethodPost, "/goals", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateGoal applies a partial update to a goal
func (c *Client) UpdateGoal(ctx context.Context, id int64, req UpdateGoalRequest) (*Goal, error) {
	var out Goal
	if err := c.send(ctx, http.MethodPut, "/goals/"+strconv.FormatInt(id, 10), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Summary returns the dashboard aggregate for [start, end]. Empty bounds use
// the server default (current calendar year).
func (c *Client) Summary(ctx context.Context, start, end string) Summary {
	params := url.Values{}
	setParam(params, "start", start)
	setParam(params, "end", end)

	empty := Summary{
		Budgets:           []Budget{},
		Goals:             []Goal{},
		ExpenseByCategory: []CategoryAmount{},
		IncomeByCategory:  []CategoryAmount{},
		Monthly:           []MonthlyPoint{},
	}

	data, err := c.do(ctx, http.MethodGet, "/summary", params, nil)
	if err != nil {
		c.degraded("/summary", err)
		return empty
	}

	var out Summary
	if err := json.Unmarshal(data, &out); err != nil {
		c.degraded("/summary", err)
		return empty
	}
	return out
}

// FinancialChart returns the zero-filled monthly series for [start, end]
func (c *Client) FinancialChart(ctx context.Context, start, end string) []MonthlyPoint {
	params := url.Values{}
	setParam(params, "start", start)
	setParam(params, "end", end)
	return getList[MonthlyPoint](ctx, c, "/summary/financial-chart", params, "monthly")
}

// ListNotifications returns the feed newest first
func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool) []Notification {
	var params url.Values
	if unreadOnly {
		params = url.Values{"unread": []string{"true"}}
	}
	return getList[Notification](ctx, c, "/notifications", params, "notifications")
}

// MarkNotificationRead marks a notification read. Repeating the call is harmless.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) (*Notification, error) {
	var out Notification
	path := "/notifications/" + strconv.FormatInt(id, 10) + "/read"
	if err := c.send(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// getList fetches path and decodes a list, degrading to empty on any failure
func getList[T any](ctx context.Context, c *Client, path string, params url.Values, name string) []T {
	data, err := c.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		c.degraded(path, err)
		return []T{}
	}
	return decodeList[T](data, name)
}

// decodeList accepts a bare array or an object wrapping the array under name
// (or "items"). Any other shape yields an empty slice.
func decodeList[T any](data []byte, name string) []T {
	var list []T
	if err := json.Unmarshal(data, &list); err == nil {
		if list == nil {
			return []T{}
		}
		return list
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return []T{}
	}
	for _, key := range []string{name, "items"} {
		raw, ok := wrapped[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &list); err == nil && list != nil {
			return list
		}
	}
	return []T{}
}

func (c *Client) degraded(path string, err error) {
	c.logger.Warn().Err(err).Str("path", path).Msg("Read failed, returning empty result")
}

// send performs a write and decodes the response into out
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	data, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// do executes one request. Transport failures become *NetworkError and
// non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) ([]byte, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{}
		_ = json.Unmarshal(data, apiErr)
		apiErr.StatusCode = resp.StatusCode
		return nil, apiErr
	}
	return data, nil
}

func setParam(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
