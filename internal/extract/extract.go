// Package extract turns uploaded files into plain text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedType is returned for extensions outside SupportedExtensions.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrInvalidEncoding is wrapped in an ExtractionError when text files are not UTF-8.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

// ExtractionError reports a supported file that could not be read.
type ExtractionError struct {
	Ext string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Ext, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Upload is a file as received from the user.
type Upload struct {
	Name string
	Data []byte
}

// Ext returns the lower-cased extension without the leading dot.
func (u Upload) Ext() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(u.Name), "."))
}

type extractFunc func(data []byte) (string, error)

var extractors = map[string]extractFunc{
	"txt":  decodeText,
	"py":   decodeText,
	"cpp":  decodeText,
	"pdf":  extractPDF,
	"docx": extractDOCX,
}

// SupportedExtensions lists accepted extensions in display order.
func SupportedExtensions() []string {
	return []string{"txt", "py", "cpp", "pdf", "docx"}
}

// Text extracts the plain text of u. It has no side effects, so extracting the
// same upload twice yields the same text.
func Text(u Upload) (string, error) {
	ext := u.Ext()
	fn, ok := extractors[ext]
	if !ok {
		return "", ErrUnsupportedType
	}
	text, err := fn(u.Data)
	if err != nil {
		return "", &ExtractionError{Ext: ext, Err: err}
	}
	return text, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}
