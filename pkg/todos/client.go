package todos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/hooks/pkg/errors"
)

// DefaultBaseURL is where the mock server listens by default.
const DefaultBaseURL = "http://localhost:3001"

// Client talks to a /todos REST resource.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for baseURL with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the resource root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every todo.
func (c *Client) List(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := c.do(ctx, "todos.Client.List", http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []Todo{}
	}
	return todos, nil
}

// Create stores todo and returns it with the ID the server assigned.
func (c *Client) Create(ctx context.Context, todo Todo) (Todo, error) {
	var created Todo
	err := c.do(ctx, "todos.Client.Create", http.MethodPost, "/todos", todo, &created)
	return created, err
}

// Update replaces the todo with todo.ID.
func (c *Client) Update(ctx context.Context, todo Todo) (Todo, error) {
	var updated Todo
	path := "/todos/" + strconv.FormatInt(todo.ID, 10)
	err := c.do(ctx, "todos.Client.Update", http.MethodPatch, path, todo, &updated)
	return updated, err
}

// Delete removes the todo with id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	path := "/todos/" + strconv.FormatInt(id, 10)
	return c.do(ctx, "todos.Client.Delete", http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.New(op, errors.KindFetch, fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.New(op, errors.KindFetch, fmt.Errorf("create request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.New(op, errors.KindFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.New(op, errors.KindFetch,
			fmt.Errorf("%s %s returned %s: %s", method, path, resp.Status, strings.TrimSpace(string(msg))))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.New(op, errors.KindFetch, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
