package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rkoval/specsect/internal/cleaner"
	"github.com/rkoval/specsect/internal/doctree"
)

// TextLoader handles plain text files, the form produced by upstream PDF
// stripping. Paragraphs are blank-line separated; numbered heading lines
// are detected with PatternClassifier.
type TextLoader struct {
	Classifier HeadingClassifier // defaults to PatternClassifier
}

func (l *TextLoader) Load(r io.Reader, filename string) ([]doctree.ParagraphRecord, error) {
	classifier := l.Classifier
	if classifier == nil {
		classifier = PatternClassifier{}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var records []doctree.ParagraphRecord
	for _, para := range paragraphs {
		// Classify on the raw paragraph: headings are single short lines.
		level := classifier.Classify(RawParagraph{Text: para})

		text := cleaner.Clean(para)
		if text == "" {
			continue
		}

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

	return records, nil
}
