package widget

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const userAgent = "weft/1.0 (compatible; Go)"

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// isNetworkURL reports whether s is an http or https URL.
func isNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// resolve joins ref onto base. base is a directory or a URL; absolute refs
// are returned unchanged.
func resolve(base, ref string) string {
	if base == "" || isNetworkURL(ref) || filepath.IsAbs(ref) {
		return ref
	}
	if isNetworkURL(base) {
		b, err := url.Parse(base)
		if err != nil {
			return ref
		}
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return b.ResolveReference(r).String()
	}
	return filepath.Join(base, ref)
}

// fetch reads the resource at loc from disk or over HTTP.
func fetch(loc string) ([]byte, error) {
	if !isNetworkURL(loc) {
		return os.ReadFile(loc)
	}
	req, err := http.NewRequest(http.MethodGet, loc, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", loc, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, loc)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return buf.Bytes(), nil
}
