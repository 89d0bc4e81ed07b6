package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError is an error body returned by the backend ({"error": ...}).
// The bot shows Message to the user as-is.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client calls the task API on the bot's behalf, injecting the shared
// X-API-Key header.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type Task struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at"`
	DueDate   *string  `json:"due_date"`
	Tags      []string `json:"tags"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			return &APIError{Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
		}
		return &APIError{Message: e.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func tgQuery(telegramID int64) url.Values {
	return url.Values{"telegram_id": {strconv.FormatInt(telegramID, 10)}}
}

func (c *Client) Register(ctx context.Context, telegramID int64, username string) error {
	return c.do(ctx, http.MethodPost, "/register/", nil, map[string]any{
		"telegram_id": telegramID,
		"username":    username,
	}, nil)
}

func (c *Client) Tasks(ctx context.Context, telegramID int64) ([]Task, error) {
	var out struct {
		Tasks []Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, "/tasks/", tgQuery(telegramID), nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *Client) Archive(ctx context.Context, telegramID int64) ([]Task, error) {
	var out struct {
		Tasks []Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, "/archive/", tgQuery(telegramID), nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, telegramID int64, title, dueDate string, tags []string) (*Task, error) {
	if tags == nil {
		tags = []string{}
	}
	body := map[string]any{
		"telegram_id": telegramID,
		"title":       title,
		"tags":        tags,
	}
	if dueDate != "" {
		body["due_date"] = dueDate
	}
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks/create/", nil, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, telegramID, taskID int64) error {
	return c.do(ctx, http.MethodPost, "/tasks/delete/", nil, map[string]any{
		"telegram_id": telegramID,
		"task_id":     taskID,
	}, nil)
}

func (c *Client) Tags(ctx context.Context, telegramID int64) ([]Tag, error) {
	var out struct {
		Tags []Tag `json:"tags"`
	}
	if err := c.do(ctx, http.MethodGet, "/tags/", tgQuery(telegramID), nil, &out); err != nil {
		return nil, err
	}
	return out.Tags, nil
}

func (c *Client) CreateTag(ctx context.Context, telegramID int64, name string) (*Tag, error) {
	var tag Tag
	err := c.do(ctx, http.MethodPost, "/tags/create/", nil, map[string]any{
		"telegram_id": telegramID,
		"name":        name,
	}, &tag)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (c *Client) DeleteTag(ctx context.Context, telegramID, tagID int64) error {
	return c.do(ctx, http.MethodPost, "/tags/delete/", nil, map[string]any{
		"telegram_id": telegramID,
		"tag_id":      tagID,
	}, nil)
}

func (c *Client) ClearAll(ctx context.Context, telegramID int64) error {
	return c.do(ctx, http.MethodPost, "/clear/", nil, map[string]any{
		"telegram_id": telegramID,
	}, nil)
}
