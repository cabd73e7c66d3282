package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// maxDownloadSize caps the size of a remote SVG document.
const maxDownloadSize = 64 << 20

// Download fetches the resource found at uri and returns its content.
// The resource must look like an SVG (or generic XML) document.
func Download(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URI %q: %w", uri, err)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to download file from URI: %s: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download file from URI: %s, status %v", uri, res.Status)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}

	ctype := res.Header.Get("Content-Type")
	if !IsSVGContentType(ctype) && !IsSVGContentType(DetectContentType(data)) {
		return nil, fmt.Errorf("the downloaded file is not a valid SVG document (content type %q)", ctype)
	}

	return data, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return u.Scheme == "http" || u.Scheme == "https"
}

// UrlStem returns the base name of the URL path without its extension.
func UrlStem(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// DetectContentType sniffs the MIME type of the content.
// Only the first 512 bytes are used to sniff the content type.
func DetectContentType(data []byte) string {
	if len(data) > 512 {
		data = data[:512]
	}
	// Always returns a valid content-type and "application/octet-stream" if no others seemed to match.
	return http.DetectContentType(data)
}

// IsSVGContentType reports whether the MIME type may hold an SVG document.
func IsSVGContentType(ctype string) bool {
	ctype = strings.ToLower(ctype)
	return strings.Contains(ctype, "svg") || strings.Contains(ctype, "xml") ||
		strings.HasPrefix(ctype, "text/plain")
}
