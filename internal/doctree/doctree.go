package doctree

import (
	"regexp"
	"strings"
)

// ParagraphRecord is the atomic unit of loader output: one non-empty
// paragraph of text plus its style metadata.
type ParagraphRecord struct {
	Text      string // Cleaned paragraph text
	StyleName string // Source style name ("Heading 2", "Normal", ...)
	Level     int    // Heading level (1 = top-level), 0 for body text
}

// IsHeading reports whether the record carries a heading level.
func (p ParagraphRecord) IsHeading() bool { return p.Level > 0 }

// Section is a node in the document's heading hierarchy. It owns its
// Subsections; Parent is a non-owning back-reference and is never
// serialized.
type Section struct {
	Level       int        `json:"level"`
	Heading     string     `json:"heading"`
	Content     []string   `json:"content,omitempty"`
	Subsections []*Section `json:"subsections,omitempty"`

	Parent *Section `json:"-"`
}

// headingNumber matches the dotted section number that prefixes 3GPP-style
// headings, e.g. "5.5.1.2 Procedure description".
var headingNumber = regexp.MustCompile(`^(\d+(?:\.\d+)*)\s+(.+)$`)

// ID returns the dotted section number from the heading ("5.5.1.2").
// Headings without a leading number return the full heading so the
// section remains addressable.
func (s *Section) ID() string {
	if m := headingNumber.FindStringSubmatch(s.Heading); m != nil {
		return m[1]
	}
	return s.Heading
}

// Name returns the heading with its leading section number stripped.
func (s *Section) Name() string {
	if m := headingNumber.FindStringSubmatch(s.Heading); m != nil {
		return m[2]
	}
	return s.Heading
}

// JoinedContent concatenates the section's body paragraphs into one string.
func (s *Section) JoinedContent() string {
	return strings.Join(s.Content, " ")
}

// Walk visits sections depth-first in document order.
func Walk(sections []*Section, fn func(*Section)) {
	for _, s := range sections {
		fn(s)
		Walk(s.Subsections, fn)
	}
}

// Chunk is a bounded-size slice of a Section's content, read-only after
// creation. Index is the chunk's sequence number within its section; the
// JSON tags mirror the column set downstream consumers select on.
type Chunk struct {
	SectionID string `json:"section_id"`
	Title     string `json:"section_name"`
	Level     int    `json:"section_level"`
	Index     int    `json:"chunk_id"`
	Content   string `json:"content_chunk"`
}
