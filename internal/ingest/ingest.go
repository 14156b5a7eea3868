// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest validates uploaded documents and derives their titles
// before they are handed to the orchestrator.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MIMEPDF is the only accepted document type.
const MIMEPDF = "application/pdf"

// ErrUnsupportedFormat is returned for anything that is not a PDF. Its
// message is shown to the user as is.
var ErrUnsupportedFormat = errors.New("Please upload a PDF file.")

// pdfMagic opens every PDF file.
var pdfMagic = []byte("%PDF-")

// Document is one uploaded file.
type Document struct {
	// Name is the base filename, e.g. "my-cool-paper.pdf".
	Name string

	// MIMEType is the declared type, derived from the extension when empty.
	MIMEType string

	// Content is the file body. It may be nil when only metadata is known.
	Content []byte
}

// Open reads the file at path into a Document.
func Open(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	name := filepath.Base(path)
	return Document{Name: name, MIMEType: mimeFromName(name), Content: data}, nil
}

// Validate accepts only PDFs. The declared type (or the extension when no
// type is declared) must be application/pdf, and content, when present, must
// begin with the PDF magic bytes.
func Validate(doc Document) error {
	mime := doc.MIMEType
	if mime == "" {
		mime = mimeFromName(doc.Name)
	}
	if mime != MIMEPDF {
		return ErrUnsupportedFormat
	}
	if len(doc.Content) > 0 && !bytes.HasPrefix(doc.Content, pdfMagic) {
		return ErrUnsupportedFormat
	}
	return nil
}

// Title derives the document's paper title from its filename.
func (d Document) Title() string {
	return TitleFromFilename(d.Name)
}

// TitleFromFilename strips the .pdf extension, splits on hyphens and
// underscores, capitalizes the first letter of each word and joins with
// spaces: "my-cool-paper.pdf" becomes "My Cool Paper". Empty segments from
// doubled separators are dropped.
func TitleFromFilename(name string) string {
	name = filepath.Base(name)
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".pdf") {
		name = strings.TrimSuffix(name, ext)
	}

	words := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func mimeFromName(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return MIMEPDF
	}
	return "application/octet-stream"
}
