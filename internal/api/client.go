package api

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
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	BaseURL        = "https://api.todoist.com/api/v1"
	DefaultTimeout = 30 * time.Second

	// timestampLayout is the UTC layout the completed-tasks endpoint expects.
	timestampLayout = "2006-01-02T15:04:05Z"
)

// Client is a Todoist API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	baseURL   string
	transport http.RoundTripper
	timeout   time.Duration
	logger    zerolog.Logger
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithTransport sets the transport that carries authenticated requests.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// NewClient creates a new Todoist API client
func NewClient(token string, opts ...Option) *Client {
	o := clientOptions{
		baseURL: BaseURL,
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})

	return &Client{
		baseURL: o.baseURL,
		httpClient: &http.Client{
			Timeout:   o.timeout,
			Transport: &oauth2.Transport{Source: src, Base: o.transport},
		},
		logger: o.logger,
	}
}

// request makes an authenticated request to the Todoist API
func (c *Client) request(ctx context.Context, method, endpoint string, params url.Values, data interface{}) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, params.Encode())
	}

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", reqURL).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Str("body", string(respBody)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// =============================================================================
// PROJECTS
// =============================================================================

// Project represents a Todoist project
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type projectsResponse struct {
	Results *[]Project `json:"results"`
}

func (c *Client) fetchProjects(ctx context.Context) (*projectsResponse, error) {
	resp, err := c.request(ctx, http.MethodGet, "projects", nil, nil)
	if err != nil {
		return nil, err
	}

	var page projectsResponse
	if err := json.Unmarshal(resp, &page); err != nil {
		return nil, fmt.Errorf("failed to parse projects: %w", err)
	}
	return &page, nil
}

// ListProjects returns all projects
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	page, err := c.fetchProjects(ctx)
	if err != nil {
		return nil, err
	}
	if page.Results == nil {
		return nil, nil
	}
	return *page.Results, nil
}

// FindProjectByName finds a project by name (case-insensitive exact match).
// A response without a results field is reported as not found.
func (c *Client) FindProjectByName(ctx context.Context, name string) (*Project, error) {
	page, err := c.fetchProjects(ctx)
	if err != nil {
		return nil, err
	}
	if page.Results == nil {
		return nil, &ProjectNotFoundError{Name: name}
	}

	for _, p := range *page.Results {
		if strings.EqualFold(p.Name, name) {
			c.logger.Info().Str("project", p.Name).Str("id", p.ID).Msg("found project")
			return &p, nil
		}
	}

	return nil, &ProjectNotFoundError{Name: name, Available: *page.Results}
}

// =============================================================================
// TASKS
// =============================================================================

// Task represents a task returned by the API. ParentID is nil for
// top-level tasks.
type Task struct {
	ID          string  `json:"id"`
	Content     string  `json:"content"`
	Description string  `json:"description"`
	ProjectID   string  `json:"project_id,omitempty"`
	ParentID    *string `json:"parent_id"`
	CompletedAt string  `json:"completed_at,omitempty"`
}

// IsSubtask reports whether the task has a parent.
func (t *Task) IsSubtask() bool {
	return t != nil && t.ParentID != nil
}

type completedTasksResponse struct {
	Items []Task `json:"items"`
}

// ListCompletedTasks returns tasks in the project completed within
// [since, until]. Both bounds are sent as UTC timestamps.
func (c *Client) ListCompletedTasks(ctx context.Context, projectID string, since, until time.Time) ([]Task, error) {
	params := url.Values{}
	params.Set("project_id", projectID)
	params.Set("since", since.UTC().Format(timestampLayout))
	params.Set("until", until.UTC().Format(timestampLayout))

	resp, err := c.request(ctx, http.MethodGet, "tasks/completed/by_completion_date", params, nil)
	if err != nil {
		return nil, err
	}

	var result completedTasksResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to parse completed tasks: %w", err)
	}

	return result.Items, nil
}

// AddTaskParams contains parameters for creating a task
type AddTaskParams struct {
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
}

// AddTask creates a new task
func (c *Client) AddTask(ctx context.Context, params AddTaskParams) (*Task, error) {
	resp, err := c.request(ctx, http.MethodPost, "tasks", nil, params)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := json.Unmarshal(resp, &task); err != nil {
		return nil, fmt.Errorf("failed to parse task: %w", err)
	}

	return &task, nil
}
