// Package article turns CLI inputs (arguments, stdin, files and web pages)
// into plain article text for classification and summarization.
package article

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// MaxInputBytes caps how much is read from any single source.
const MaxInputBytes = 10 * 1024 * 1024

// DefaultTimeout bounds a page fetch.
const DefaultTimeout = 30 * time.Second

// ErrNoText is returned when a source yields only whitespace.
var ErrNoText = errors.New("no article text found")

// Reader resolves article sources into text.
type Reader struct {
	stdin  io.Reader
	client *http.Client
}

// NewReader creates a Reader that uses stdin for the "-" source.
func NewReader(stdin io.Reader, timeout time.Duration) *Reader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Reader{
		stdin: stdin,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: timeout / 6}).DialContext,
				TLSHandshakeTimeout:   timeout / 6,
				ResponseHeaderTimeout: timeout / 2,
			},
		},
	}
}

// FromArgs joins positional arguments into one text.
func FromArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// FromFile reads path, or stdin when path is "-". HTML files are reduced to
// their main article text.
func (r *Reader) FromFile(path string) (string, error) {
	var src io.Reader
	if path == "-" {
		src = r.stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open %q: %w", path, err)
		}
		defer f.Close()
		src = f
	}

	data, err := io.ReadAll(io.LimitReader(src, MaxInputBytes))
	if err != nil {
		return "", fmt.Errorf("read %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ExtractText(strings.NewReader(string(data)), "", nil)
	}
	return nonEmpty(string(data))
}

// FromURL fetches a page and extracts its article text. With a selector, only
// the matching elements are used.
func (r *Reader) FromURL(ctx context.Context, rawURL, selector string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("invalid URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for URL %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", "biaslens/0.1")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL %q: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP request failed for URL %q: status %d", rawURL, resp.StatusCode)
	}

	return ExtractText(io.LimitReader(resp.Body, MaxInputBytes), selector, u)
}

// ExtractText returns the readable text of an HTML document. An empty selector
// uses readability to find the main content.
func ExtractText(content io.Reader, selector string, baseURL *url.URL) (string, error) {
	if selector != "" {
		return extractWithSelector(content, selector)
	}
	if baseURL == nil {
		baseURL = &url.URL{}
	}
	a, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}

	text := a.TextContent
	if title := strings.TrimSpace(a.Title); title != "" && !strings.HasPrefix(strings.TrimSpace(text), title) {
		text = title + ".\n\n" + text
	}
	return nonEmpty(text)
}

func extractWithSelector(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var parts []string
	selection.Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return nonEmpty(strings.Join(parts, "\n\n"))
}

func nonEmpty(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
