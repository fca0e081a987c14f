// Package loader opens structured specification documents and yields flat
// sequences of paragraph records for the section tree builder.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rkoval/specsect/internal/doctree"
)

// ErrNotFound is returned by LoadFile when the input path does not exist.
var ErrNotFound = errors.New("loader: file not found")

// ErrUnsupportedFormat is returned for unrecognized file extensions.
var ErrUnsupportedFormat = errors.New("loader: unsupported file format")

// ParseError wraps a document library failure, preserving the original
// message.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %s", e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Loader converts raw document bytes into an ordered sequence of
// paragraph records.
type Loader interface {
	Load(r io.Reader, filename string) ([]doctree.ParagraphRecord, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate loader for a filename.
func ForFile(filename string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextLoader{}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".pdf":
		return &PDFLoader{}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// LoadFile opens the document at path and returns its paragraph records.
// A missing path yields ErrNotFound; a library failure yields *ParseError.
func LoadFile(path string) ([]doctree.ParagraphRecord, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	l, err := ForFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := l.Load(f, filepath.Base(path))
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return records, nil
}
