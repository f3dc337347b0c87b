package ocr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// chromedpDriver binds pageDriver to a headless Chromium session. The
// allocator flags suppress the usual automation fingerprints; network
// events stream into the response observer via ListenTarget.
type chromedpDriver struct {
	tab      context.Context
	cancel   []context.CancelFunc
	observer *responseObserver
}

func newChromedpDriver(ctx context.Context, apiURL string) (pageDriver, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-plugins", true),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	d := &chromedpDriver{
		tab:    tabCtx,
		cancel: []context.CancelFunc{cancelTab, cancelAlloc},
	}
	d.observer = newResponseObserver(apiURL, func(requestID network.RequestID) ([]byte, error) {
		var body []byte
		err := chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			body, err = network.GetResponseBody(requestID).Do(ctx)
			return err
		}))
		return body, err
	})

	chromedp.ListenTarget(tabCtx, func(ev any) {
		switch e := ev.(type) {
		case *network.EventRequestWillBeSent:
			d.observer.OnRequest(e.RequestID, e.Request.Method)
		case *network.EventResponseReceived:
			// Body fetch round-trips through the CDP connection; never
			// block the event dispatch goroutine on it.
			go d.observer.OnResponse(tabCtx, e.RequestID, e.Response.URL, e.Response.Status)
		}
	})

	if err := chromedp.Run(tabCtx, network.Enable()); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}
	return d, nil
}

func (d *chromedpDriver) Navigate(_ context.Context, url string) error {
	if err := chromedp.Run(d.tab, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (d *chromedpDriver) Exists(_ context.Context, selector string) (bool, error) {
	tctx, cancel := context.WithTimeout(d.tab, 2*time.Second)
	defer cancel()

	var nodes []*cdp.Node
	err := chromedp.Run(tctx, chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)))
	if err != nil {
		return false, fmt.Errorf("failed to query %q: %w", selector, err)
	}
	return len(nodes) > 0, nil
}

func (d *chromedpDriver) SetUploadFile(_ context.Context, selector, path string) error {
	if err := chromedp.Run(d.tab, chromedp.SetUploadFiles(selector, []string{path}, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to attach file: %w", err)
	}
	return nil
}

func (d *chromedpDriver) Click(_ context.Context, selector string) error {
	tctx, cancel := context.WithTimeout(d.tab, 2*time.Second)
	defer cancel()
	return chromedp.Run(tctx, chromedp.Click(selector, chromedp.ByQuery))
}

func (d *chromedpDriver) ClickText(_ context.Context, text string, timeout time.Duration) (bool, error) {
	tctx, cancel := context.WithTimeout(d.tab, timeout)
	defer cancel()

	selector := fmt.Sprintf(`//button[contains(., %q)]`, text)
	err := chromedp.Run(tctx, chromedp.Click(selector, chromedp.BySearch))
	if errors.Is(err, context.DeadlineExceeded) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *chromedpDriver) Evaluate(_ context.Context, expr string, result any) error {
	return chromedp.Run(d.tab, chromedp.Evaluate(expr, result))
}

func (d *chromedpDriver) MouseClick(_ context.Context, x, y float64) error {
	return chromedp.Run(d.tab, chromedp.MouseClickXY(x, y))
}

func (d *chromedpDriver) Captured() <-chan string {
	return d.observer.Captured()
}

func (d *chromedpDriver) Close() {
	for _, cancel := range d.cancel {
		cancel()
	}
}
