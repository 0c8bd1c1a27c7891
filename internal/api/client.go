package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrTransport marks a request that never produced a response.
	ErrTransport = errors.New("api: transport failure")
	// ErrMalformed marks a response whose body is not the expected JSON.
	ErrMalformed = errors.New("api: malformed response body")
)

const requestIDHeader = "X-Request-Id"

// Client talks to the backend gateway. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "api").Logger(),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Status(ctx context.Context) (*StatusSnapshot, error) {
	var s StatusSnapshot
	if err := c.getJSON(ctx, "/api/status", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) IntervalInfo(ctx context.Context) (*IntervalInfo, error) {
	var info IntervalInfo
	if err := c.getJSON(ctx, "/api/interval_info", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) ChartData(ctx context.Context) ([]Reading, error) {
	var d ChartData
	if err := c.getJSON(ctx, "/api/chart_data", &d); err != nil {
		return nil, err
	}
	return d.Data, nil
}

func (c *Client) Scan(ctx context.Context) (*ScanResult, error) {
	var res ScanResult
	if err := c.getJSON(ctx, "/api/scan", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) QuickConnect(ctx context.Context) (string, error) {
	return c.message(ctx, http.MethodGet, "/api/start", nil)
}

func (c *Client) Connect(ctx context.Context, address string) (string, error) {
	body, _ := json.Marshal(map[string]string{"address": address})
	return c.message(ctx, http.MethodPost, "/api/connect", body)
}

func (c *Client) Disconnect(ctx context.Context) (string, error) {
	return c.message(ctx, http.MethodGet, "/api/disconnect", nil)
}

func (c *Client) ClearData(ctx context.Context) (string, error) {
	return c.message(ctx, http.MethodPost, "/api/clear_data", nil)
}

func (c *Client) DataSummary(ctx context.Context) (*DataSummary, error) {
	var s DataSummary
	if err := c.getJSON(ctx, "/api/data_summary", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ExportData copies the raw /api/export_data JSON document into w.
func (c *Client) ExportData(ctx context.Context, w io.Writer) error {
	res, _, err := c.do(ctx, http.MethodGet, "/api/export_data", nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: GET /api/export_data: %v", ErrTransport, err)
	}
	if !json.Valid(raw) {
		return fmt.Errorf("%w: GET /api/export_data", ErrMalformed)
	}
	_, err = w.Write(raw)
	return err
}

// Download streams GET /download into w and returns the file name announced
// by the backend, if any.
func (c *Client) Download(ctx context.Context, w io.Writer) (string, error) {
	res, id, err := c.do(ctx, http.MethodGet, "/download", nil)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api: GET /download: unexpected status %d (request_id=%s)", res.StatusCode, id)
	}

	if _, err := io.Copy(w, res.Body); err != nil {
		return "", fmt.Errorf("%w: GET /download: %v", ErrTransport, err)
	}
	return attachmentName(res.Header.Get("Content-Disposition")), nil
}

func (c *Client) message(ctx context.Context, method, path string, body []byte) (string, error) {
	var m MessageResponse
	if err := c.sendJSON(ctx, method, path, body, &m); err != nil {
		return "", err
	}
	return m.Message, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.sendJSON(ctx, http.MethodGet, path, nil, out)
}

// sendJSON decodes the body whatever the status code: a 400 carrying a
// message is a business-level answer, not a transport failure.
func (c *Client) sendJSON(ctx context.Context, method, path string, body []byte, out any) error {
	res, id, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		c.log.Debug().Str("request_id", id).Int("status", res.StatusCode).
			Msgf("%s %s returned non-2xx", method, path)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s (request_id=%s): %v", ErrMalformed, method, path, id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, string, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, "", fmt.Errorf("api: build %s %s: %w", method, path, err)
	}

	id := uuid.NewString()
	req.Header.Set(requestIDHeader, id)
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, id, fmt.Errorf("%w: %s %s (request_id=%s): %v", ErrTransport, method, path, id, err)
	}
	return res, id, nil
}
