package waiting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/platform/obs"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// HTTPCatalogSource fetches the published waiting_times.json export.
// Transient failures are retried with exponential backoff.
type HTTPCatalogSource struct {
	session     *http.Client
	url         string
	maxAttempts int
	backoff     time.Duration
}

func NewHTTPCatalogSource(url string) (*HTTPCatalogSource, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("waiting http source: url is empty")
	}

	return &HTTPCatalogSource{
		session:     &http.Client{Timeout: 10 * time.Second},
		url:         url,
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}, nil
}

func (h *HTTPCatalogSource) LoadWaitingSeries(ctx context.Context) (_ []domain.WaitingSeries, err error) {
	defer obs.Time(ctx, "waiting.http.Load")(&err)

	resp, err := h.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch waiting catalog %q: %w", h.url, err)
	}
	defer resp.Body.Close()

	series, err := DecodeCatalog(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch waiting catalog %q: %w", h.url, err)
	}

	return series, nil
}

func (h *HTTPCatalogSource) do(req *http.Request) (*http.Response, error) {
	resp, err := h.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries network errors, 429 and 5xx responses while
// respecting context cancellation.
func (h *HTTPCatalogSource) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := h.backoff
	var lastErr error

	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := h.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == h.maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
