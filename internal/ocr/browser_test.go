package ocr

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeDriver scripts a browser session for controller tests.
type fakeDriver struct {
	hasFileInput      bool
	hasDropZone       bool
	hasChallenge      bool
	challengeResponse string
	parseButtonFound  bool
	captured          chan string

	navigations []string
	clicks      []string
	textClicks  []string
	uploads     []string
	mouseClicks int
	closed      int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		hasFileInput:     true,
		parseButtonFound: true,
		captured:         make(chan string, 1),
	}
}

func (d *fakeDriver) Navigate(ctx context.Context, url string) error {
	d.navigations = append(d.navigations, url)
	return nil
}

func (d *fakeDriver) Exists(ctx context.Context, selector string) (bool, error) {
	switch selector {
	case fileInputSelector:
		return d.hasFileInput, nil
	case dropZoneSelector:
		return d.hasDropZone, nil
	case challengeSelector:
		return d.hasChallenge, nil
	}
	return false, nil
}

func (d *fakeDriver) SetUploadFile(ctx context.Context, selector, path string) error {
	d.uploads = append(d.uploads, path)
	return nil
}

func (d *fakeDriver) Click(ctx context.Context, selector string) error {
	d.clicks = append(d.clicks, selector)
	if selector == dropZoneSelector {
		// Clicking the drop zone surfaces the hidden input.
		d.hasFileInput = true
	}
	return nil
}

func (d *fakeDriver) ClickText(ctx context.Context, text string, timeout time.Duration) (bool, error) {
	d.textClicks = append(d.textClicks, text)
	if text == "Parse Document" {
		return d.parseButtonFound, nil
	}
	return false, nil
}

func (d *fakeDriver) Evaluate(ctx context.Context, expr string, result any) error {
	if s, ok := result.(*string); ok {
		*s = d.challengeResponse
	}
	// Rect probes come back null; the pointer click path is exercised only
	// when a position deserializes.
	return nil
}

func (d *fakeDriver) MouseClick(ctx context.Context, x, y float64) error {
	d.mouseClicks++
	return nil
}

func (d *fakeDriver) Captured() <-chan string { return d.captured }

func (d *fakeDriver) Close() { d.closed++ }

func testController(d *fakeDriver) *Controller {
	return &Controller{
		uploadURL: "https://provider.example/upload",
		sleep:     func(ctx context.Context, _ time.Duration) error { return nil },
		newDriver: func(ctx context.Context) (pageDriver, error) { return d, nil },
	}
}

func TestController_AcquirePollingURL(t *testing.T) {
	driver := newFakeDriver()
	driver.captured <- "https://provider.example/check/abc"
	c := testController(driver)

	var milestones []int
	progress := func(pct int, message string) {
		milestones = append(milestones, pct)
	}

	url, err := c.AcquirePollingURL(context.Background(), "/tmp/doc.pdf", progress)
	if err != nil {
		t.Fatalf("AcquirePollingURL() error = %v", err)
	}
	if url != "https://provider.example/check/abc" {
		t.Errorf("url = %q", url)
	}

	if len(driver.navigations) != 1 || driver.navigations[0] != "https://provider.example/upload" {
		t.Errorf("navigations = %v", driver.navigations)
	}
	if len(driver.uploads) != 1 || driver.uploads[0] != "/tmp/doc.pdf" {
		t.Errorf("uploads = %v", driver.uploads)
	}
	if driver.closed == 0 {
		t.Error("driver should be closed")
	}

	// Milestones ascend through the acquisition band
	want := []int{10, 15, 20, 25, 30, 35}
	if len(milestones) != len(want) {
		t.Fatalf("milestones = %v, want %v", milestones, want)
	}
	for i := range want {
		if milestones[i] != want[i] {
			t.Errorf("milestones[%d] = %d, want %d", i, milestones[i], want[i])
		}
	}
}

func TestController_AcquirePollingURL_NoFileInput(t *testing.T) {
	driver := newFakeDriver()
	driver.hasFileInput = false
	driver.hasDropZone = false
	c := testController(driver)

	_, err := c.AcquirePollingURL(context.Background(), "/tmp/doc.pdf", nil)
	if !errors.Is(err, ErrNoFileInput) {
		t.Errorf("error = %v, want ErrNoFileInput", err)
	}
	if driver.closed == 0 {
		t.Error("driver should still be closed on failure")
	}
}

func TestController_AcquirePollingURL_DropZoneFallback(t *testing.T) {
	driver := newFakeDriver()
	driver.hasFileInput = false
	driver.hasDropZone = true
	driver.captured <- "https://provider.example/check/abc"
	c := testController(driver)

	_, err := c.AcquirePollingURL(context.Background(), "/tmp/doc.pdf", nil)
	if err != nil {
		t.Fatalf("AcquirePollingURL() error = %v", err)
	}

	clickedZone := false
	for _, sel := range driver.clicks {
		if sel == dropZoneSelector {
			clickedZone = true
		}
	}
	if !clickedZone {
		t.Error("drop zone should have been clicked to surface the input")
	}
	if len(driver.uploads) != 1 {
		t.Errorf("uploads = %v, want one attach after the fallback", driver.uploads)
	}
}

func TestController_AcquirePollingURL_ChallengeNeverResolves(t *testing.T) {
	driver := newFakeDriver()
	driver.hasChallenge = true
	driver.challengeResponse = "" // stays unsolved
	driver.captured <- "https://provider.example/check/abc"
	c := testController(driver)

	url, err := c.AcquirePollingURL(context.Background(), "/tmp/doc.pdf", nil)
	if err != nil {
		t.Fatalf("AcquirePollingURL() error = %v, unresolved challenge must not be fatal", err)
	}
	if url == "" {
		t.Error("submission should still be attempted with the challenge unresolved")
	}

	// The widget is clicked once per attempt before giving up.
	widgetClicks := 0
	for _, sel := range driver.clicks {
		if sel == challengeSelector {
			widgetClicks++
		}
	}
	if widgetClicks != challengeAttempts {
		t.Errorf("widget clicked %d times, want %d", widgetClicks, challengeAttempts)
	}
}

func TestController_AcquirePollingURL_SolvedChallengeStopsClicking(t *testing.T) {
	driver := newFakeDriver()
	driver.hasChallenge = true
	driver.challengeResponse = "token-xyz"
	driver.captured <- "https://provider.example/check/abc"
	c := testController(driver)

	if _, err := c.AcquirePollingURL(context.Background(), "/tmp/doc.pdf", nil); err != nil {
		t.Fatalf("AcquirePollingURL() error = %v", err)
	}
	for _, sel := range driver.clicks {
		if sel == challengeSelector {
			t.Error("solved challenge should not be clicked")
		}
	}
}

func TestController_AcquirePollingURL_NoCapture(t *testing.T) {
	driver := newFakeDriver()
	c := testController(driver)

	_, err := c.AcquirePollingURL(context.Background(), "/tmp/doc.pdf", nil)
	if !errors.Is(err, ErrNoPollingURL) {
		t.Errorf("error = %v, want ErrNoPollingURL", err)
	}
}
