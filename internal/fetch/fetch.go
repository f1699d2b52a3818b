// Package fetch retrieves blog content for a URL and extracts its main
// article text.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/social-amplifier/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; SocialAmplifier/1.0)"

// Options configures the fetch behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool // render JavaScript-heavy blogs in a headless browser when plain HTTP yields too little text
	Verbose    bool
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Article retrieves the blog page at urlStr and extracts its main text
// into a SourceDocument. A single attempt per invocation; any failure
// (invalid URL, HTTP error, non-text content, empty extraction) is a
// *fetch.Error.
func Article(ctx context.Context, urlStr string, opts *Options) (*types.SourceDocument, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	html, err := rawHTML(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}

	text, err := ExtractArticleText(html)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract article text", Cause: err}
	}

	// SPA blogs often serve a near-empty shell; retry through a headless
	// browser when enabled.
	if opts.UseBrowser && ShouldUseBrowser(text) {
		rendered, err := WithBrowser(ctx, urlStr, opts.Timeout, opts.Verbose)
		if err != nil {
			return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
		}
		text, err = ExtractArticleText(rendered)
		if err != nil {
			return nil, &Error{URL: urlStr, Message: "failed to extract article text", Cause: err}
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, &Error{URL: urlStr, Message: "no textual content extracted"}
	}

	return &types.SourceDocument{URL: urlStr, RawContent: text}, nil
}

// rawHTML performs the single HTTP GET and returns the response body.
func rawHTML(ctx context.Context, urlStr string, opts *Options) (string, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: "HTTP status " + resp.Status}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/") &&
		!strings.Contains(contentType, "xml") && !strings.Contains(contentType, "html") {
		return "", &Error{URL: urlStr, Message: "non-text content type: " + contentType}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	return string(body), nil
}

// ExtractArticleText parses HTML and returns the main article text.
// Noise elements are stripped first; content is located via article
// selectors with a fallback to the body element.
func ExtractArticleText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup, .comments").Remove()

	var main *goquery.Selection
	for _, selector := range articleSelectors() {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	return cleanWhitespace(main.Text()), nil
}

// articleSelectors returns selectors tried in order for blog content.
func articleSelectors() []string {
	return []string{
		"article",
		"main",
		".post-content",
		".entry-content",
		".blog-post",
		".content",
		"#content",
	}
}

// cleanWhitespace drops blank lines and trims each remaining one.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
