package jobboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// descriptionSelector targets hh.ru's public listing-page description
// container; it's the DOM this fallback reads once the page has rendered,
// as opposed to the API's (sometimes empty) description field.
const descriptionSelector = `[data-qa="vacancy-description"]`

// RenderedPageFetcher is the rendered-page fallback for vacancy detail
// responses whose description field comes back empty from the API. It owns one
// headless browser instance, launched on first use and closed by Close —
// never shared across ingestion tasks, matching the plain HTTP Client's
// one-instance-per-task rule.
type RenderedPageFetcher struct {
	listingBaseURL string
	timeout        time.Duration

	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewRenderedPageFetcher creates a fetcher against the public listing site
// (distinct from the API base URL), lazily launching Chrome on first
// FetchDescription call so tasks that never hit an empty description never
// pay the browser-startup cost.
func NewRenderedPageFetcher(listingBaseURL string, timeout time.Duration) *RenderedPageFetcher {
	return &RenderedPageFetcher{listingBaseURL: listingBaseURL, timeout: timeout}
}

// FetchDescription renders the public vacancy page and extracts the
// description HTML from the DOM via goquery.
func (f *RenderedPageFetcher) FetchDescription(ctx context.Context, externalID string) (string, error) {
	if err := f.ensureBrowser(); err != nil {
		return "", err
	}

	renderCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	pageURL := fmt.Sprintf("%s/vacancy/%s", strings.TrimRight(f.listingBaseURL, "/"), externalID)
	page, err := f.browser.Context(renderCtx).Page(nil)
	if err != nil {
		return "", fmt.Errorf("open rendered page: %w", err)
	}
	defer page.Close()

	if err := page.Navigate(pageURL); err != nil {
		return "", fmt.Errorf("navigate rendered page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait rendered page load: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read rendered page html: %w", err)
	}

	return extractDescriptionFromHTML(html)
}

// extractDescriptionFromHTML is split out from FetchDescription so the
// goquery extraction itself is testable without a real browser.
func extractDescriptionFromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse rendered page html: %w", err)
	}

	description, err := doc.Find(descriptionSelector).First().Html()
	if err != nil {
		return "", fmt.Errorf("extract description html: %w", err)
	}
	return strings.TrimSpace(description), nil
}

func (f *RenderedPageFetcher) ensureBrowser() error {
	if f.browser != nil {
		return nil
	}
	f.launcher = launcher.New().Headless(true)
	controlURL, err := f.launcher.Launch()
	if err != nil {
		return fmt.Errorf("launch headless browser: %w", err)
	}
	f.browser = rod.New().ControlURL(controlURL)
	if err := f.browser.Connect(); err != nil {
		return fmt.Errorf("connect headless browser: %w", err)
	}
	return nil
}

// Close releases the browser and launcher, if one was started.
func (f *RenderedPageFetcher) Close() error {
	if f.browser != nil {
		_ = f.browser.Close()
	}
	if f.launcher != nil {
		f.launcher.Cleanup()
	}
	return nil
}
