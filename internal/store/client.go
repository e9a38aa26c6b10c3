// Package store implements the boundary to the hosted backend-as-a-service:
// a REST query client for its relational tables, a client for its user-auth
// admin API, and the repositories the service layer consumes.
//
// Responses from the hosted service are normalized into models structs
// immediately after each call; nothing above this package ever branches on
// the provider's wire shapes.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/apnaparivar/familytree-backend/internal/logger"
	"github.com/apnaparivar/familytree-backend/internal/utils"
	"github.com/go-resty/resty/v2"
)

// RestConfig holds the connection settings for the hosted table API.
type RestConfig struct {
	// BaseURL is the root of the hosted service (e.g.
	// "https://xyzcompany.supabase.co").
	BaseURL string

	// ServiceKey is the privileged API key. It is sent both as the apikey
	// header and as a bearer token, which is what the hosted service
	// expects from trusted server-side callers.
	ServiceKey string

	// Timeout bounds every outbound call.
	Timeout time.Duration
}

// RestClient talks to the hosted service's table API (a PostgREST-style
// query surface rooted at /rest/v1). It is safe for concurrent use.
type RestClient struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewRestClient constructs a RestClient from cfg. The returned client owns
// its connection pool; the process entry point is responsible for building
// exactly one and injecting it into the repositories.
func NewRestClient(cfg RestConfig, logger *logger.Logger) *RestClient {
	cli := utils.NewHTTPClient(cfg.BaseURL, cfg.Timeout)
	cli.SetHeader("apikey", cfg.ServiceKey)
	cli.SetHeader("Authorization", "Bearer "+cfg.ServiceKey)
	cli.SetHeader("Content-Type", "application/json")

	logger.Debug().Str("base_url", cfg.BaseURL).Msg("created hosted-store REST client")
	return &RestClient{client: cli, logger: logger}
}

// From starts a query against the given table.
func (c *RestClient) From(table string) *Query {
	return &Query{client: c, table: table, params: map[string]string{}}
}

// Query accumulates PostgREST-style filters for one table operation.
// Filters apply to selects, updates, and deletes alike.
type Query struct {
	client *RestClient
	table  string
	params map[string]string
}

// Eq adds an equality filter on column.
func (q *Query) Eq(column, value string) *Query {
	q.params[column] = "eq." + value
	return q
}

// ILike adds a case-insensitive pattern filter on column. The pattern uses
// "*" as the wildcard, per the hosted service's convention.
func (q *Query) ILike(column, pattern string) *Query {
	q.params[column] = "ilike." + pattern
	return q
}

// OrderDesc orders the result set by column, newest/largest first.
func (q *Query) OrderDesc(column string) *Query {
	q.params["order"] = column + ".desc"
	return q
}

// Select executes the query as a GET and decodes the matching rows into
// dest, which must be a pointer to a slice.
func (q *Query) Select(ctx context.Context, dest any) error {
	resp, err := q.request(ctx).SetResult(dest).Get(q.path())
	if err != nil {
		return fmt.Errorf("select %s: %w", q.table, err)
	}
	return q.client.mapError(resp, q.table)
}

// Insert executes a POST with the given payload (a row or a slice of rows)
// and decodes the stored representation into dest when dest is non-nil.
// The hosted store assigns ids and timestamps, so the returned rows are the
// canonical ones.
func (q *Query) Insert(ctx context.Context, payload, dest any) error {
	req := q.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(payload)
	if dest != nil {
		req.SetResult(dest)
	}

	resp, err := req.Post(q.path())
	if err != nil {
		return fmt.Errorf("insert into %s: %w", q.table, err)
	}
	return q.client.mapError(resp, q.table)
}

// Update executes a PATCH applying values to every row matching the
// accumulated filters, decoding the updated rows into dest when non-nil.
// Callers detect lost conditional updates by checking for an empty dest.
func (q *Query) Update(ctx context.Context, values, dest any) error {
	req := q.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(values)
	if dest != nil {
		req.SetResult(dest)
	}

	resp, err := req.Patch(q.path())
	if err != nil {
		return fmt.Errorf("update %s: %w", q.table, err)
	}
	return q.client.mapError(resp, q.table)
}

// Delete removes every row matching the accumulated filters.
func (q *Query) Delete(ctx context.Context) error {
	resp, err := q.request(ctx).Delete(q.path())
	if err != nil {
		return fmt.Errorf("delete from %s: %w", q.table, err)
	}
	return q.client.mapError(resp, q.table)
}

func (q *Query) path() string {
	return "/rest/v1/" + q.table
}

func (q *Query) request(ctx context.Context) *resty.Request {
	return q.client.client.R().
		SetContext(ctx).
		SetQueryParams(q.params)
}

// storeError is the error body the hosted table API returns on failure.
type storeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// pgUniqueViolation is the SQLSTATE code the hosted store reports when an
// insert collides with a uniqueness constraint.
const pgUniqueViolation = "23505"

// mapError converts a non-2xx table-API response into a store error.
// Uniqueness violations get their own sentinel; everything else is wrapped
// with the table name and the provider's message.
func (c *RestClient) mapError(resp *resty.Response, table string) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	var se storeError
	_ = json.Unmarshal(resp.Body(), &se)

	if se.Code == pgUniqueViolation || strings.Contains(strings.ToLower(se.Message), "duplicate key") {
		return fmt.Errorf("%w: %s", ErrUniqueViolation, se.Message)
	}

	message := se.Message
	if message == "" {
		message = strings.TrimSpace(string(resp.Body()))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}

	c.logger.Error().
		Str("table", table).
		Int("status", resp.StatusCode()).
		Str("message", message).
		Msg("hosted store request failed")

	return fmt.Errorf("store request on %s failed: http %d: %s", table, resp.StatusCode(), message)
}
