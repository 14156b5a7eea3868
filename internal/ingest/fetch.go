// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/pdiddy/research-hub/internal/httputil"
)

// MaxDocumentSize bounds a fetched document.
const MaxDocumentSize = 50 << 20

// IsURL reports whether s names an http or https document.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch downloads a remote document. The name comes from the last path
// segment, with .pdf appended when the server declares a PDF and the
// segment lacks the extension. The result still has to pass Validate.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Document{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", MIMEPDF)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return Document{}, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("fetching %s: HTTP %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", rawURL, err)
	}
	if len(data) > MaxDocumentSize {
		return Document{}, fmt.Errorf("fetching %s: document larger than %d bytes", rawURL, MaxDocumentSize)
	}

	mimeType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	name := nameFromURL(req.URL)
	if mimeType == MIMEPDF && !strings.EqualFold(path.Ext(name), ".pdf") {
		name += ".pdf"
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimeFromName(name)
	}
	return Document{Name: name, MIMEType: mimeType, Content: data}, nil
}

func nameFromURL(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "document"
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}
