// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Archive copies an ingested document into dir as <paperID>.pdf and returns
// the path. The write goes through a temporary file so a partial copy is
// never left under the final name.
func Archive(dir, paperID string, doc Document) (string, error) {
	if len(doc.Content) == 0 {
		return "", fmt.Errorf("archiving %s: document has no content", doc.Name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	destPath := filepath.Join(dir, slug(paperID)+".pdf")

	tmpFile, err := os.CreateTemp(dir, ".ingest-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(doc.Content)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing document: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return destPath, nil
}

// slug returns a filesystem-safe filename stem for id.
func slug(id string) string {
	return strings.NewReplacer("/", "-", ":", "-", "\\", "-").Replace(id)
}
