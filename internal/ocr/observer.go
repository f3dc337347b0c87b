package ocr

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/chromedp/cdproto/network"

	"doclab/internal/contextutil"
)

// submissionResponse is the body of the provider's submission endpoint
// response; request_check_url is the one-time polling URL.
type submissionResponse struct {
	RequestCheckURL string `json:"request_check_url"`
}

// responseObserver watches the session's network traffic for the provider's
// submission response. It keeps a ledger of outbound request methods and,
// when a POST to the submission endpoint completes with HTTP 200, fetches
// the response body and delivers the extracted polling URL on a buffered
// channel. Only the first capture is kept.
type responseObserver struct {
	apiURL    string
	fetchBody func(requestID network.RequestID) ([]byte, error)

	mu      sync.Mutex
	methods map[network.RequestID]string

	captured chan string
}

func newResponseObserver(apiURL string, fetchBody func(requestID network.RequestID) ([]byte, error)) *responseObserver {
	return &responseObserver{
		apiURL:    apiURL,
		fetchBody: fetchBody,
		methods:   make(map[network.RequestID]string),
		captured:  make(chan string, 1),
	}
}

// OnRequest records the method of an outbound request.
func (o *responseObserver) OnRequest(requestID network.RequestID, method string) {
	o.mu.Lock()
	o.methods[requestID] = method
	o.mu.Unlock()
}

// OnResponse inspects a completed response. Non-matching URL, method, or
// status tuples are ignored; body-fetch and parse errors are logged, never
// escalated, because later responses may still match.
func (o *responseObserver) OnResponse(ctx context.Context, requestID network.RequestID, url string, status int64) {
	o.mu.Lock()
	method := o.methods[requestID]
	o.mu.Unlock()

	if url != o.apiURL || method != "POST" || status != 200 {
		return
	}
	logger := contextutil.LoggerFromContext(ctx)

	body, err := o.fetchBody(requestID)
	if err != nil {
		logger.WarnContext(ctx, "failed to read submission response body", "error", err)
		return
	}

	var resp submissionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.WarnContext(ctx, "failed to parse submission response", "error", err)
		return
	}
	if resp.RequestCheckURL == "" {
		logger.WarnContext(ctx, "submission response carried no polling URL")
		return
	}

	select {
	case o.captured <- resp.RequestCheckURL:
		logger.InfoContext(ctx, "captured polling URL", "url", resp.RequestCheckURL)
	default:
		// Already captured one; keep the first.
	}
}

// Captured returns the channel the polling URL is delivered on.
func (o *responseObserver) Captured() <-chan string {
	return o.captured
}
