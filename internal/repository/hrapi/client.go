package hrapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/madwell/signin-backend-go/internal/domain/pto"
)

const (
	AuthModeBasic  = "basic"
	AuthModeOAuth2 = "oauth2"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/91.0.4472.114 Safari/537.36"

	maxBodyBytes = 32 << 20 // 32MB
)

// Config holds the PTO endpoint settings
type Config struct {
	URL      string
	AuthMode string
	Username string
	Password string

	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration

	// ApprovedStatuses, when non-empty, keeps only requests whose status matches (case-insensitive).
	ApprovedStatuses []string
	Location         *time.Location
}

// Client fetches the leave calendar from the HR leave-management API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a PTO calendar client. For AuthModeOAuth2 pass the token-aware client
// from oauth.NewClientCredentialsClient as httpClient.
func NewClient(cfg Config, httpClient *http.Client) pto.Calendar {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Client{cfg: cfg, http: httpClient}
}

// Fetch implements pto.Calendar. Network failures and 5xx responses are retried with
// exponential backoff; anything else fails immediately.
func (c *Client) Fetch(ctx context.Context) ([]pto.Record, error) {
	for attempt := 0; ; attempt++ {
		records, retryable, err := c.fetchOnce(ctx)
		if err == nil {
			return c.filterApproved(records), nil
		}
		if !retryable || attempt >= c.cfg.MaxRetries || ctx.Err() != nil {
			return nil, err
		}

		wait := c.cfg.Backoff << attempt
		slog.Warn("PTO calendar fetch failed, retrying", "attempt", attempt+1, "wait", wait, "error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Client) fetchOnce(ctx context.Context) ([]pto.Record, bool, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build PTO request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.cfg.AuthMode != AuthModeOAuth2 && c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("failed to fetch PTO calendar: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, true, fmt.Errorf("failed to read PTO calendar: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode >= http.StatusInternalServerError,
			fmt.Errorf("%w: %d", pto.ErrUnexpectedStatus, resp.StatusCode)
	}

	records, err := decodeCalendar(body, c.cfg.Location)
	if err != nil {
		return nil, false, err
	}
	return records, false, nil
}

func (c *Client) filterApproved(records []pto.Record) []pto.Record {
	if len(c.cfg.ApprovedStatuses) == 0 {
		return records
	}
	out := records[:0]
	for _, rec := range records {
		for _, status := range c.cfg.ApprovedStatuses {
			if strings.EqualFold(strings.TrimSpace(rec.Status), strings.TrimSpace(status)) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
