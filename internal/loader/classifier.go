package loader

import (
	"regexp"
	"strconv"
	"strings"
)

// RawParagraph carries the formatting metadata available for a paragraph
// before classification.
type RawParagraph struct {
	Text      string
	StyleName string
	FontSize  float64
}

// HeadingClassifier derives a heading level from paragraph formatting
// metadata, returning 0 for body text. Each input format supplies its own
// implementation: style names for DOCX, font-size thresholds for PDF,
// numbered-line patterns for plain text.
type HeadingClassifier interface {
	Classify(p RawParagraph) int
}

// StyleClassifier maps Word heading style names ("Heading 3", "heading 3",
// "Heading3") to their level.
type StyleClassifier struct{}

func (StyleClassifier) Classify(p RawParagraph) int {
	style := strings.TrimSpace(p.StyleName)
	lower := strings.ToLower(style)
	if !strings.HasPrefix(lower, "heading") {
		return 0
	}
	suffix := strings.TrimSpace(lower[len("heading"):])
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// FontSizeClassifier approximates heading levels from font size, for
// formats without a style taxonomy. Thresholds are exclusive lower bounds
// in descending order: a size above Thresholds[i] classifies as level i+1.
// This is a heuristic, not a guarantee.
type FontSizeClassifier struct {
	Thresholds []float64
}

// DefaultFontThresholds matches typical 3GPP PDF renderings: headings are
// set progressively larger than the ~10pt body text.
var DefaultFontThresholds = []float64{14, 12, 10}

func (c FontSizeClassifier) Classify(p RawParagraph) int {
	thresholds := c.Thresholds
	if len(thresholds) == 0 {
		thresholds = DefaultFontThresholds
	}
	for i, t := range thresholds {
		if p.FontSize > t {
			return i + 1
		}
	}
	return 0
}

// numberedHeading matches lines like "5.5.1.2 Procedure description".
var numberedHeading = regexp.MustCompile(`^(\d+(?:\.\d+)*)\s+\S`)

// PatternClassifier detects numbered headings in plain text, where no
// formatting metadata survives extraction. Level is the dotted-number
// depth ("5" = 1, "5.5.1.2" = 4). Long lines are assumed to be body text
// that merely starts with a number.
type PatternClassifier struct {
	MaxLineLen int // 0 means the 120-char default
}

func (c PatternClassifier) Classify(p RawParagraph) int {
	maxLen := c.MaxLineLen
	if maxLen == 0 {
		maxLen = 120
	}
	if len(p.Text) >= maxLen || strings.ContainsRune(p.Text, '\n') {
		return 0
	}
	m := numberedHeading.FindStringSubmatch(p.Text)
	if m == nil {
		return 0
	}
	return strings.Count(m[1], ".") + 1
}
