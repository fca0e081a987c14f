package loader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/rkoval/specsect/internal/cleaner"
	"github.com/rkoval/specsect/internal/doctree"
)

// DOCXLoader handles .docx files. Heading levels come from the paragraph
// style names.
type DOCXLoader struct {
	Classifier HeadingClassifier // defaults to StyleClassifier
}

func (l *DOCXLoader) Load(r io.Reader, filename string) ([]doctree.ParagraphRecord, error) {
	classifier := l.Classifier
	if classifier == nil {
		classifier = StyleClassifier{}
	}

	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "specsect-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var records []doctree.ParagraphRecord
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		text := cleaner.Clean(docxParagraphText(para))
		if text == "" {
			continue
		}

		style := docxStyleName(para)
		records = append(records, doctree.ParagraphRecord{
			Text:      text,
			StyleName: style,
			Level:     classifier.Classify(RawParagraph{Text: text, StyleName: style}),
		})
	}

	return records, nil
}

func docxStyleName(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return "Normal"
	}
	return para.Properties.Style.Val
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
