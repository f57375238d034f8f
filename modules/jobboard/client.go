package jobboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const maxRetries = 5

// Client is the HH-style job-board HTTP client (component E). It owns a
// single *http.Client per the concurrency model's "each task owns its own
// HTTP session" — callers construct one Client per ingestion task rather
// than sharing a package-level client across tasks.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	rendered  *RenderedPageFetcher
}

// New constructs a Client. Returns an error if userAgent is empty (§6
// "requires User-Agent header, fail-fast if unset").
func New(baseURL, userAgent string, timeout time.Duration) (*Client, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("jobboard: User-Agent is required")
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}, nil
}

// WithRenderedPageFallback attaches the rendered-page fallback fetcher
// used when GetDetails' detail response has an empty description. Optional:
// a Client without one simply returns the empty description as-is.
func (c *Client) WithRenderedPageFallback(f *RenderedPageFetcher) *Client {
	c.rendered = f
	return c
}

// Close releases the rendered-page fallback's browser, if one was ever
// launched. Safe to call on a Client that never used the fallback.
func (c *Client) Close() error {
	if c.rendered != nil {
		return c.rendered.Close()
	}
	return nil
}

// Search fetches one page of the vacancy search endpoint.
func (c *Client) Search(ctx context.Context, f SearchFilters) (*SearchPage, error) {
	q := url.Values{}
	if f.Text != "" {
		q.Set("text", f.Text)
	}
	if f.Area != "" {
		q.Set("area", f.Area)
	}
	if f.Schedule != "" {
		q.Set("schedule", f.Schedule)
	}
	if f.Experience != "" {
		q.Set("experience", f.Experience)
	}
	if f.SalaryFrom != nil {
		q.Set("salary", strconv.Itoa(*f.SalaryFrom))
	}
	if f.Currency != "" {
		q.Set("currency", f.Currency)
	}
	q.Set("page", strconv.Itoa(f.Page))
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}

	var resp hhSearchResponse
	if err := c.doJSON(ctx, "/vacancies?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	items := make([]VacancyItem, 0, len(resp.Items))
	for _, raw := range resp.Items {
		items = append(items, raw.toVacancyItem())
	}
	return &SearchPage{Items: items, Page: resp.Page, Pages: resp.Pages, PerPage: resp.PerPage, TotalFound: resp.Found}, nil
}

// GetDetails fetches the detail endpoint for a single vacancy, used to
// merge description and key_skills into a search-result item (§4.4 step 2).
func (c *Client) GetDetails(ctx context.Context, externalID string) (*VacancyItem, error) {
	var raw hhVacancy
	if err := c.doJSON(ctx, "/vacancies/"+url.PathEscape(externalID), &raw); err != nil {
		return nil, err
	}
	item := raw.toVacancyItem()

	if item.Description == "" && c.rendered != nil {
		if description, err := c.rendered.FetchDescription(ctx, externalID); err == nil {
			item.Description = description
		}
	}

	return &item, nil
}

// doJSON performs a GET with retry/backoff and decodes the JSON body.
func (c *Client) doJSON(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, backoffDelay(attempt)); err != nil {
				return err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decode job board response: %w", err)
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests:
			if err := sleepCtx(ctx, retryAfterDelay(resp.Header.Get("Retry-After"), attempt)); err != nil {
				return err
			}
			lastErr = &HHAPIError{StatusCode: resp.StatusCode, Body: string(body)}
			continue
		case resp.StatusCode >= 500:
			lastErr = &HHAPIError{StatusCode: resp.StatusCode, Body: string(body)}
			continue
		default:
			return &HHAPIError{StatusCode: resp.StatusCode, Body: string(body)}
		}
	}
	return lastErr
}

// backoffDelay is the exact 2^attempt second backoff §5 requires.
func backoffDelay(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

// retryAfterDelay honors Retry-After as an integer second count or an
// HTTP-date, falling back to the exponential backoff formula.
func retryAfterDelay(header string, attempt int) time.Duration {
	if header == "" {
		return backoffDelay(attempt)
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(header); err == nil {
		if d := time.Until(when); d > 0 {
			return d
		}
	}
	return backoffDelay(attempt)
}

// PoliteDelay returns a uniform random delay in [200ms, 500ms) (§Glossary
// "Polite delay"); the ingestion service sleeps it after each ingested item.
func PoliteDelay() time.Duration {
	return 200*time.Millisecond + time.Duration(rand.Int63n(int64(300*time.Millisecond)))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
