package loader

import (
	"fmt"
	"io"
	"math"
	"os"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/rkoval/specsect/internal/cleaner"
	"github.com/rkoval/specsect/internal/doctree"
)

// PDFLoader handles PDF files. PDFs carry no style metadata, so heading
// levels are approximated from font size via FontSizeClassifier.
type PDFLoader struct {
	Classifier HeadingClassifier // defaults to FontSizeClassifier
}

func (l *PDFLoader) Load(r io.Reader, filename string) ([]doctree.ParagraphRecord, error) {
	classifier := l.Classifier
	if classifier == nil {
		classifier = FontSizeClassifier{}
	}

	// ledongthuc/pdf requires a seekable file, so we write to a temp file.
	tmp, err := os.CreateTemp("", "specsect-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var records []doctree.ParagraphRecord
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		records = append(records, pageRecords(page, classifier)...)
	}

	return records, nil
}

// pageRecords groups a page's positioned text fragments into lines and
// emits one record per line, classified by the line's leading font size.
func pageRecords(page pdflib.Page, classifier HeadingClassifier) []doctree.ParagraphRecord {
	content := page.Content()

	var records []doctree.ParagraphRecord
	var line []pdflib.Text

	flush := func() {
		if len(line) == 0 {
			return
		}
		var raw string
		for _, t := range line {
			raw += t.S
		}
		text := cleaner.Clean(raw)
		fontSize := line[0].FontSize
		line = line[:0]
		if text == "" {
			return
		}
		level := classifier.Classify(RawParagraph{Text: text, FontSize: fontSize})
		style := "Normal"
		if level > 0 {
			style = fmt.Sprintf("Heading %d", level)
		}
		records = append(records, doctree.ParagraphRecord{
			Text:      text,
			StyleName: style,
			Level:     level,
		})
	}

	for _, t := range content.Text {
		// A jump in the baseline starts a new line.
		if len(line) > 0 && math.Abs(t.Y-line[len(line)-1].Y) > 0.5 {
			flush()
		}
		line = append(line, t)
	}
	flush()

	return records
}
