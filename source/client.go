package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// maxErrorBodySize limits the size of error response bodies kept for logs.
	maxErrorBodySize = 4096

	// DefaultTimeout applies when ClientOptions.Timeout is zero.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxPages bounds the page loop when ClientOptions.MaxPages is zero.
	DefaultMaxPages = 1000
)

var (
	// ErrFetchFailed indicates a transport failure or a non-2xx response.
	ErrFetchFailed = errors.New("source: fetch failed")
	// ErrNoResult indicates a response without data for the requested operation.
	ErrNoResult = errors.New("source: no result")
)

// ClientOptions configures a Client.
type ClientOptions struct {
	// APIURL is the REST root serving GET /schema.
	APIURL string
	// GraphQLURL is the GraphQL endpoint.
	GraphQLURL string
	// Timeout bounds every HTTP request.
	Timeout time.Duration
	// PageLimit is the page size; non-positive disables pagination.
	PageLimit int
	// MaxPages stops the page loop of one type.
	MaxPages int
	// Builder generates list queries.
	Builder QueryBuilder
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
	// Logger receives request diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client fetches the schema and entity lists of a GraphQL API.
type Client struct {
	opts       ClientOptions
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{opts: opts, httpClient: httpClient, logger: logger.With("component", "source")}
}

// FetchSchema loads and decodes GET <APIURL>/schema.
func (c *Client) FetchSchema(ctx context.Context) (*Schema, error) {
	url := strings.TrimSuffix(c.opts.APIURL, "/") + "/schema"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schema: %w", err)
	}
	return DecodeSchema(body)
}

// FetchEntities returns every entity of def. Without a page limit a single
// request is issued; otherwise pages are requested with increasing offset
// until a short page arrives or MaxPages is reached.
func (c *Client) FetchEntities(ctx context.Context, s *Schema, def TypeDefinition) ([]any, error) {
	if c.opts.PageLimit <= 0 {
		return c.fetchPage(ctx, s, def, Page{})
	}
	var all []any
	var prevFirst string
	var prevOK bool
	for page := 0; page < c.opts.MaxPages; page++ {
		p := Page{Limit: c.opts.PageLimit, Offset: page * c.opts.PageLimit}
		items, err := c.fetchPage(ctx, s, def, p)
		if err != nil {
			return nil, err
		}
		first, ok := firstID(items)
		if ok && prevOK && first == prevFirst {
			c.logger.Warn("server ignored pagination, page repeats the previous one",
				"type", def.Canonical, "offset", p.Offset, "entities", len(all))
			return all, nil
		}
		prevFirst, prevOK = first, ok
		all = append(all, items...)
		if len(items) < c.opts.PageLimit {
			return all, nil
		}
	}
	c.logger.Warn("page limit reached, result may be truncated",
		"type", def.Canonical, "max_pages", c.opts.MaxPages, "entities", len(all))
	return all, nil
}

// firstID returns the id of the first item of a page.
func firstID(items []any) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	m, ok := items[0].(map[string]any)
	if !ok {
		return "", false
	}
	id, ok := m["id"]
	if !ok || id == nil {
		return "", false
	}
	return fmt.Sprint(id), true
}

type graphQLRequest struct {
	OperationName string `json:"operationName"`
	Query         string `json:"query"`
}

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors json.RawMessage            `json:"errors,omitempty"`
}

func (c *Client) fetchPage(ctx context.Context, s *Schema, def TypeDefinition, page Page) ([]any, error) {
	op, query, err := c.opts.Builder.Build(s, def, page)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(graphQLRequest{OperationName: op, Query: query})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.GraphQLURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("graphql request", "operation", op, "limit", page.Limit, "offset", page.Offset)
	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var resp graphQLResponse
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %v: %w", op, err, ErrFetchFailed)
	}
	raw, ok := resp.Data[op]
	if !ok || isJSONNull(raw) {
		c.logger.Error("no result", "operation", op, "errors", string(resp.Errors))
		return nil, fmt.Errorf("%s: %w", op, ErrNoResult)
	}

	var items []any
	dec = json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&items); err != nil {
		c.logger.Error("result is not a list", "operation", op, "error", err)
		return nil, fmt.Errorf("%s: result is not a list: %w", op, ErrNoResult)
	}
	if len(resp.Errors) > 0 && !isJSONNull(resp.Errors) {
		c.logger.Warn("partial result", "operation", op, "errors", string(resp.Errors))
	}
	return items, nil
}

// do executes req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("%w: %s returned %d: %s", ErrFetchFailed, req.URL, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}
	return body, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}
