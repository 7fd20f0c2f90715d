package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/jonathan/resume-ranker/internal/types"
)

// DefaultFetchTimeout is the default HTTP request timeout
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeRanker/1.0)"

// FetchError represents an error during URL fetching
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// FetchDocument downloads a job posting or résumé page. The document name gets an .html
// extension when the server reports HTML so AutoExtractor parses it as markup.
func FetchDocument(ctx context.Context, urlStr string, timeout time.Duration) (types.Document, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return types.Document{}, &FetchError{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return types.Document{}, &FetchError{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return types.Document{}, &FetchError{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return types.Document{}, &FetchError{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize))
	if err != nil {
		return types.Document{}, &FetchError{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	name := path.Base(parsedURL.Path)
	if name == "/" || name == "." || name == "" {
		name = parsedURL.Host
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "html") && !strings.HasSuffix(strings.ToLower(name), ".html") {
		name += ".html"
	}
	return types.Document{Name: name, Data: body}, nil
}
