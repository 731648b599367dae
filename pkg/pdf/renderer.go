package pdf

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rahmadfadli/silahan-backend/pkg/config"
)

// Renderer converts rendered HTML into PDF bytes.
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer drives a headless Chrome instance over the DevTools protocol.
// Each render spins up a fresh browser context so a wedged page cannot poison
// later renders.
type ChromeRenderer struct {
	cfg config.DocGenConfig
}

func NewChromeRenderer(cfg config.DocGenConfig) (*ChromeRenderer, error) {
	if cfg.RenderTimeout <= 0 {
		return nil, errors.New("render timeout must be positive")
	}
	return &ChromeRenderer{cfg: cfg}, nil
}

// RenderPDF loads the HTML in a headless page and prints it to A4 PDF.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	if html == "" {
		return nil, errors.New("html content is required")
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.RenderTimeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate("data:text/html," + url.PathEscape(html)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	}
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	if len(pdf) == 0 {
		return nil, errors.New("renderer produced empty pdf")
	}
	return pdf, nil
}
