// Package doctext extracts plain text from uploaded offer documents.
// PDF and UTF-8 plain text are the only supported formats.
package doctext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrUnsupportedFormat is returned when the input is neither a PDF
	// nor valid UTF-8 text.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrCorruptDocument is returned when a PDF is recognized but its
	// structure cannot be read.
	ErrCorruptDocument = errors.New("corrupt document")
)

var pdfMagic = []byte("%PDF-")

// DocumentMetadata holds descriptive PDF properties. All fields are
// best effort and may be empty.
type DocumentMetadata struct {
	PageCount int    `json:"page_count"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Creator   string `json:"creator"`
	Producer  string `json:"producer"`
}

// FromBytes extracts the text content of data. PDFs yield their page
// texts in order joined by a blank line; anything else must be valid
// UTF-8 and is returned as-is.
func FromBytes(data []byte) (string, error) {
	if bytes.HasPrefix(data, pdfMagic) {
		return extractPDF(data)
	}
	if !utf8.Valid(data) {
		return "", ErrUnsupportedFormat
	}
	return string(data), nil
}

// FromReader reads r fully and extracts its text.
func FromReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("doctext: reading input: %w", err)
	}
	return FromBytes(data)
}

// FromFile extracts text from the file at path.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("doctext: reading %s: %w", path, err)
	}
	return FromBytes(data)
}

// FromBytesWithHint behaves like FromBytes but lets a declared MIME
// type reject mismatched content up front.
func FromBytesWithHint(data []byte, contentType string) (string, error) {
	switch {
	case strings.HasPrefix(contentType, "application/pdf"):
		if !bytes.HasPrefix(data, pdfMagic) {
			return "", ErrCorruptDocument
		}
		return extractPDF(data)
	case strings.HasPrefix(contentType, "text/plain"), contentType == "":
		return FromBytes(data)
	default:
		return "", ErrUnsupportedFormat
	}
}

// Metadata reads descriptive properties of a PDF without extracting its
// text. Non-PDF input is an error.
func Metadata(data []byte) (*DocumentMetadata, error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, ErrUnsupportedFormat
	}
	reader, err := openPDF(data)
	if err != nil {
		return nil, err
	}

	meta := &DocumentMetadata{PageCount: reader.NumPage()}
	info := reader.Trailer().Key("Info")
	if !info.IsNull() {
		meta.Title = info.Key("Title").Text()
		meta.Author = info.Key("Author").Text()
		meta.Creator = info.Key("Creator").Text()
		meta.Producer = info.Key("Producer").Text()
	}
	return meta, nil
}

func extractPDF(data []byte) (text string, err error) {
	reader, err := openPDF(data)
	if err != nil {
		return "", err
	}

	// The pdf library panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrCorruptDocument, r)
		}
	}()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, perr := page.GetPlainText(nil)
		if perr != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrCorruptDocument, i, perr)
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n\n"), nil
}

func openPDF(data []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader = nil
			err = fmt.Errorf("%w: %v", ErrCorruptDocument, r)
		}
	}()
	reader, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return reader, nil
}
