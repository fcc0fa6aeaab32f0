package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// statusTimeout bounds the liveness probe; a slow gateway counts as down.
	statusTimeout = 5 * time.Second
	// dispatchTimeout bounds agent dispatch calls. Timed-out dispatches fail
	// and are not retried.
	dispatchTimeout = 25 * time.Second

	chatCompletionsPath = "/v1/chat/completions"
	sessionHeaderName   = "x-agentdesk-session-key"
	// mainSessionKey is the fixed logical session channel all dashboard
	// dispatches are routed to.
	mainSessionKey = "agent:main:main"
)

// Status reports gateway liveness from a probe of its root endpoint.
type Status struct {
	OK        bool  `json:"ok"`
	LastCheck int64 `json:"lastCheck,omitempty"`
}

// CronJob is an opaque gateway cron record; fields pass through untouched.
type CronJob map[string]any

// Client calls the external agent gateway over HTTP. All calls carry the
// configured bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a gateway client.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Probe checks gateway liveness. The gateway serves content on all paths and
// returns 2xx when alive; transport failures report ok=false, not an error.
func (c *Client) Probe(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return Status{}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Status{}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return Status{
		OK:        resp.StatusCode >= 200 && resp.StatusCode < 300,
		LastCheck: time.Now().UnixMilli(),
	}
}

// SendMessage posts one user message to the main agent session. Non-2xx
// responses surface as an error embedding the HTTP status and raw body.
func (c *Client) SendMessage(ctx context.Context, message string) error {
	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	payload := chatRequest{Messages: []chatMessage{{Role: "user", Content: message}}}
	req, err := c.newRequest(ctx, http.MethodPost, chatCompletionsPath, payload)
	if err != nil {
		return err
	}
	req.Header.Set(sessionHeaderName, mainSessionKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway dispatch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gateway returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// ListCronJobs fetches the gateway's cron jobs. Failures degrade to an empty
// list so the dashboard renders without the gateway.
func (c *Client) ListCronJobs(ctx context.Context) ([]CronJob, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/cron/list", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return []CronJob{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []CronJob{}, nil
	}

	var out struct {
		Result []CronJob `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return []CronJob{}, nil
	}
	if out.Result == nil {
		return []CronJob{}, nil
	}
	return out.Result, nil
}

// AddCronJob registers a cron job with the gateway.
func (c *Client) AddCronJob(ctx context.Context, job CronJob) (CronJob, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/cron/add", job)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("add cron job: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gateway returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var created CronJob
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode cron response: %w", err)
	}
	return created, nil
}

// DeleteCronJob removes a cron job by ID.
func (c *Client) DeleteCronJob(ctx context.Context, jobID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/cron/"+jobID, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete cron job: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gateway returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
