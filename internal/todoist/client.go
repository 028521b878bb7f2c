// internal/todoist/client.go
//
// Thin client for the Todoist REST v2 API. One export run performs
// exactly three GETs (/projects, /sections, /tasks) and assembles the
// results into a snapshot; there is no retry or backoff, a failed run
// is simply reported and the program exits.

package todoist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"todoist-export/internal/tree"
)

const (
	defaultBaseURL = "https://api.todoist.com/rest/v2"
	requestTimeout = 30 * time.Second
)

// ErrUnauthorized reports a rejected API token. Callers branch on it
// to tell the user their token is wrong rather than showing a raw
// HTTP status.
var ErrUnauthorized = errors.New("todoist: api token rejected")

// Fetcher is the narrow capability the export pipeline needs: produce
// one snapshot of the user's projects, sections, and tasks. The TUI
// talks to this interface so tests can substitute a canned snapshot
// for the network.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (tree.Snapshot, error)
}

// Client implements Fetcher against the real REST API.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// Option customizes a Client during construction.
type Option func(*Client)

// WithBaseURL points the client at a different API root. Tests use it
// with httptest servers.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// NewClient builds a REST client for the given API token.
func NewClient(token string, opts ...Option) *Client {
	client := &Client{
		token:   strings.TrimSpace(token),
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type projectPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type sectionPayload struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}

type taskPayload struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	SectionID string `json:"section_id"`
	Content   string `json:"content"`
	Completed bool   `json:"is_completed"`
}

type apiError struct {
	Error string `json:"error"`
}

// FetchSnapshot pulls the three collections in dependency order and
// returns them untouched; ordering is whatever the API returned.
func (c *Client) FetchSnapshot(ctx context.Context) (tree.Snapshot, error) {
	var snapshot tree.Snapshot

	var projects []projectPayload
	if err := c.getJSON(ctx, "/projects", &projects); err != nil {
		return tree.Snapshot{}, err
	}
	var sections []sectionPayload
	if err := c.getJSON(ctx, "/sections", &sections); err != nil {
		return tree.Snapshot{}, err
	}
	var tasks []taskPayload
	if err := c.getJSON(ctx, "/tasks", &tasks); err != nil {
		return tree.Snapshot{}, err
	}

	for _, p := range projects {
		snapshot.Projects = append(snapshot.Projects, tree.ProjectRecord{ID: p.ID, Name: p.Name})
	}
	for _, s := range sections {
		snapshot.Sections = append(snapshot.Sections, tree.SectionRecord{ID: s.ID, ProjectID: s.ProjectID, Name: s.Name})
	}
	for _, t := range tasks {
		snapshot.Tasks = append(snapshot.Tasks, tree.TaskRecord{
			ID:        t.ID,
			ProjectID: t.ProjectID,
			SectionID: t.SectionID,
			Content:   t.Content,
			Completed: t.Completed,
		})
	}
	return snapshot, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	if c.token == "" {
		return fmt.Errorf("todoist: %w: empty token", ErrUnauthorized)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("todoist: build request %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("todoist: get %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("todoist: read %s response: %w", path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("todoist: get %s: %w", path, ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		var payload apiError
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			return fmt.Errorf("todoist: get %s: api error (%d): %s", path, resp.StatusCode, payload.Error)
		}
		return fmt.Errorf("todoist: get %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("todoist: decode %s response: %w", path, err)
	}
	return nil
}
