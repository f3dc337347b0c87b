package ocr

import (
	"context"
	"errors"
	"time"

	"doclab/internal/contextutil"
)

const (
	fileInputSelector = `input[type="file"]`
	dropZoneSelector  = `div[role="button"].file-drop-zone.playground-drop-zone`
	challengeSelector = `div.w-full.svelte-1vitwd6`

	challengeAttempts = 10
	captureWaitPolls  = 10
)

var (
	// ErrNoFileInput is returned when the upload page has neither a file
	// input nor a clickable drop zone. Fatal for the job.
	ErrNoFileInput = errors.New("could not find file input element")
	// ErrNoPollingURL is returned when the submission response was never
	// observed. Fatal for the job.
	ErrNoPollingURL = errors.New("failed to capture polling URL")
)

// challengeResponseExpr reads the hidden anti-bot response field; empty
// string means the challenge is still unsolved.
const challengeResponseExpr = `(function() {
	const field = document.querySelector("[name=cf-turnstile-response]");
	return field ? (field.value || "") : "";
})()`

// challengeRectExpr computes a click target inside the challenge widget:
// left quarter, vertical center. Returns null when the widget is gone.
const challengeRectExpr = `(function() {
	const div = document.querySelector('div.w-full.svelte-1vitwd6');
	if (div) {
		const rect = div.getBoundingClientRect();
		return {x: rect.left + rect.width / 4 - 20, y: rect.top + rect.height / 2};
	}
	return null;
})()`

// pageDriver is the browser-session surface the controller drives. The
// chromedp binding implements it; tests substitute a scripted fake.
type pageDriver interface {
	// Navigate loads the given URL in the session's tab.
	Navigate(ctx context.Context, url string) error
	// Exists reports whether a CSS selector matches any element.
	Exists(ctx context.Context, selector string) (bool, error)
	// SetUploadFile attaches a file to the matched input element.
	SetUploadFile(ctx context.Context, selector, path string) error
	// Click clicks the first element matching a CSS selector.
	Click(ctx context.Context, selector string) error
	// ClickText clicks the first button containing the given text, waiting
	// up to timeout for it to appear. Returns false if it never did.
	ClickText(ctx context.Context, text string, timeout time.Duration) (bool, error)
	// Evaluate runs a JavaScript expression and unmarshals the result.
	Evaluate(ctx context.Context, expr string, result any) error
	// MouseClick dispatches a synthetic pointer click at viewport coordinates.
	MouseClick(ctx context.Context, x, y float64) error
	// Captured yields the polling URL once the response observer has it.
	Captured() <-chan string
	// Close tears the browser session down.
	Close()
}

// Controller acquires a provider polling URL for a file by driving the
// provider's upload page through an automated browser session: navigate,
// attach the file, work the anti-bot challenge, submit, and capture the
// submission response off the wire. The session is closed before the URL is
// returned; polling does not need the browser.
type Controller struct {
	uploadURL string
	sleep     func(ctx context.Context, d time.Duration) error
	newDriver func(ctx context.Context) (pageDriver, error)
}

// NewController creates a Controller that launches headless browser
// sessions against uploadURL and watches for responses from apiURL.
func NewController(uploadURL, apiURL string) *Controller {
	return &Controller{
		uploadURL: uploadURL,
		sleep:     sleepContext,
		newDriver: func(ctx context.Context) (pageDriver, error) {
			return newChromedpDriver(ctx, apiURL)
		},
	}
}

// AcquirePollingURL runs one full submission session and returns the
// captured polling URL. Progress milestones land between 10 and 35.
func (c *Controller) AcquirePollingURL(ctx context.Context, filePath string, progress ProgressFunc) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)
	report := func(p int, msg string) {
		if progress != nil {
			progress(p, msg)
		}
	}

	driver, err := c.newDriver(ctx)
	if err != nil {
		return "", err
	}
	defer driver.Close()

	report(10, "Navigating to provider")
	if err := driver.Navigate(ctx, c.uploadURL); err != nil {
		return "", err
	}
	if err := c.sleep(ctx, 3*time.Second); err != nil {
		return "", err
	}

	report(15, "Page loaded, preparing upload")

	report(20, "Uploading PDF")
	if err := c.attachFile(ctx, driver, filePath); err != nil {
		return "", err
	}
	logger.InfoContext(ctx, "attached file", "path", filePath)
	if err := c.sleep(ctx, 2*time.Second); err != nil {
		return "", err
	}

	// Best-effort initial click to surface the challenge widget.
	report(25, "Initial processing check")
	for _, label := range []string{"Submit", "Process", "Upload"} {
		clicked, err := driver.ClickText(ctx, label, 2*time.Second)
		if err != nil {
			logger.DebugContext(ctx, "initial button click failed", "label", label, "error", err)
			continue
		}
		if clicked {
			logger.InfoContext(ctx, "clicked initial button", "label", label)
			if err := c.sleep(ctx, 2*time.Second); err != nil {
				return "", err
			}
			break
		}
	}

	report(30, "Solving captcha")
	c.solveChallenge(ctx, driver)

	// The final trigger. Not finding it is logged, not fatal: the observer
	// may already have seen the submission go out.
	report(35, "Finalizing parse request")
	clicked, err := driver.ClickText(ctx, "Parse Document", 10*time.Second)
	if err != nil || !clicked {
		logger.WarnContext(ctx, "Parse Document button not clicked", "error", err)
	}

	url, err := c.awaitCapture(ctx, driver)
	if err != nil {
		return "", err
	}

	// Close before returning; the multi-minute polling wait must not pin a
	// browser process.
	driver.Close()
	return url, nil
}

// attachFile locates the file input (clicking the drop zone once to surface
// it if needed) and attaches the target file. Required step.
func (c *Controller) attachFile(ctx context.Context, driver pageDriver, filePath string) error {
	found, err := driver.Exists(ctx, fileInputSelector)
	if err != nil {
		return err
	}
	if !found {
		zoneFound, err := driver.Exists(ctx, dropZoneSelector)
		if err != nil {
			return err
		}
		if !zoneFound {
			return ErrNoFileInput
		}
		if err := driver.Click(ctx, dropZoneSelector); err != nil {
			return err
		}
		if err := c.sleep(ctx, time.Second); err != nil {
			return err
		}
	}
	return driver.SetUploadFile(ctx, fileInputSelector, filePath)
}

// solveChallenge probes the hidden challenge-response field up to
// challengeAttempts times, clicking the widget (and a computed point inside
// its rect) whenever the response is still empty. Exhausting the attempts
// is logged and accepted; the widget sometimes self-clears and the
// submission is attempted regardless.
func (c *Controller) solveChallenge(ctx context.Context, driver pageDriver) {
	logger := contextutil.LoggerFromContext(ctx)

	present, err := driver.Exists(ctx, challengeSelector)
	if err != nil {
		logger.WarnContext(ctx, "challenge widget probe failed", "error", err)
		return
	}
	if !present {
		logger.InfoContext(ctx, "no challenge widget found, skipping solve")
		return
	}

	for attempt := 1; attempt <= challengeAttempts; attempt++ {
		var response string
		if err := driver.Evaluate(ctx, challengeResponseExpr, &response); err != nil {
			logger.WarnContext(ctx, "challenge probe error", "attempt", attempt, "error", err)
			if err := c.sleep(ctx, 500*time.Millisecond); err != nil {
				return
			}
			continue
		}
		if response != "" {
			logger.InfoContext(ctx, "challenge solved", "attempt", attempt)
			return
		}

		logger.InfoContext(ctx, "challenge pending, clicking widget", "attempt", attempt)
		if err := driver.Click(ctx, challengeSelector); err != nil {
			logger.DebugContext(ctx, "challenge widget click failed", "error", err)
		}

		var pos *struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		}
		if err := driver.Evaluate(ctx, challengeRectExpr, &pos); err == nil && pos != nil {
			if err := driver.MouseClick(ctx, pos.X, pos.Y); err != nil {
				logger.DebugContext(ctx, "challenge pointer click failed", "error", err)
			}
		}

		if err := c.sleep(ctx, time.Second); err != nil {
			return
		}
	}

	logger.WarnContext(ctx, "challenge unresolved after max attempts, proceeding anyway",
		"attempts", challengeAttempts)
}

// awaitCapture gives the asynchronous response observer a short bounded
// window to deliver the polling URL after the final click.
func (c *Controller) awaitCapture(ctx context.Context, driver pageDriver) (string, error) {
	if err := c.sleep(ctx, 3*time.Second); err != nil {
		return "", err
	}

	for i := 0; i < captureWaitPolls; i++ {
		select {
		case url := <-driver.Captured():
			return url, nil
		default:
		}
		if err := c.sleep(ctx, time.Second); err != nil {
			return "", err
		}
	}

	select {
	case url := <-driver.Captured():
		return url, nil
	default:
		return "", ErrNoPollingURL
	}
}
