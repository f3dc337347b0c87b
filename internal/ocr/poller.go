package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"doclab/internal/contextutil"
)

const (
	pollInterval    = 5 * time.Second
	maxPollAttempts = 120 // ~10 minutes at the fixed interval
)

// ErrPollTimeout is returned when the provider never reaches a terminal
// status within the polling budget.
var ErrPollTimeout = errors.New("polling timeout: processing took too long")

// ProviderError carries a failure the provider itself reported.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider processing failed: %s", e.Message)
}

// ProgressFunc receives progress milestones (0-100) with a message.
type ProgressFunc func(progress int, message string)

// Poller fetches a provider polling URL at a fixed interval until the body
// carries a terminal status marker. No backoff; interval and attempt count
// are fixed policy.
type Poller struct {
	client      *http.Client
	interval    time.Duration
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a Poller with the fixed production policy.
func NewPoller() *Poller {
	return &Poller{
		client:      &http.Client{Timeout: 30 * time.Second},
		interval:    pollInterval,
		maxAttempts: maxPollAttempts,
		sleep:       sleepContext,
	}
}

// Poll fetches url until a terminal payload appears. A "status":"complete"
// marker returns the parsed payload; "status":"failed" or "success":false
// returns a ProviderError with the embedded message; exhausting all attempts
// returns ErrPollTimeout. The body is scanned for the literal markers before
// JSON parsing so transient partial payloads are never parsed.
func (p *Poller) Poll(ctx context.Context, url string, progress ProgressFunc) (*RawResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		body, err := p.fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to poll results: %w", err)
		}

		if strings.Contains(body, `"status":"complete"`) {
			var raw RawResult
			if err := json.Unmarshal([]byte(body), &raw); err != nil {
				return nil, fmt.Errorf("failed to parse provider result: %w", err)
			}
			return &raw, nil
		}

		if strings.Contains(body, `"status":"failed"`) || strings.Contains(body, `"success":false`) {
			message := "Unknown error"
			var raw RawResult
			if err := json.Unmarshal([]byte(body), &raw); err == nil && raw.Error != "" {
				message = raw.Error
			}
			return nil, &ProviderError{Message: message}
		}

		if progress != nil {
			progress(50+attempt*15/p.maxAttempts, fmt.Sprintf("Polling... attempt %d", attempt+1))
		}
		logger.DebugContext(ctx, "poll attempt not terminal", "attempt", attempt+1)

		if err := p.sleep(ctx, p.interval); err != nil {
			return nil, err
		}
	}

	return nil, ErrPollTimeout
}

func (p *Poller) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// sleepContext sleeps for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
