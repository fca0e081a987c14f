// Package sectiontree builds a hierarchical tree of sections from the
// flat paragraph sequence a loader produces. Body paragraphs accumulate
// into the nearest enclosing section; headings open new sections keyed by
// their level.
package sectiontree

import (
	"strings"
	"unicode"

	"github.com/rkoval/specsect/internal/doctree"
)

// Options controls tree construction.
type Options struct {
	// MaxHeadingLevel is the deepest heading level that opens a section.
	// Deeper headings are treated as body text.
	MaxHeadingLevel int

	// RequireNumbered rejects headings that do not start with a digit,
	// filtering out front-matter headings like "Foreword".
	RequireNumbered bool

	// ExcludedKeywords rejects headings containing any of these words
	// (case-insensitive), e.g. "scope", "references", "abbreviations".
	ExcludedKeywords []string

	// CoalesceLimit merges a body paragraph into the previous buffered one
	// when their combined length stays under this threshold. 0 disables
	// coalescing.
	CoalesceLimit int

	// KeepPreamble attaches body text found before the first heading to a
	// synthetic level-1 section instead of dropping it.
	KeepPreamble bool

	// PreambleHeading names the synthetic preamble section.
	PreambleHeading string
}

// DefaultOptions mirrors the parameters used for 3GPP NAS specifications.
func DefaultOptions() Options {
	return Options{
		MaxHeadingLevel: 4,
		CoalesceLimit:   3000,
		PreambleHeading: "Preamble",
	}
}

// Stats reports what Build kept and discarded.
type Stats struct {
	Sections        int // sections created
	DroppedPreamble int // body paragraphs discarded before the first heading
}

// Build consumes paragraph records and returns the top-level sections.
//
// Open sections are tracked as an explicit stack: a heading at level L
// closes every open section at level >= L, and its parent is the nearest
// open ancestor of strictly lower level. A heading that skips levels with
// no open ancestor becomes an additional root rather than being lost.
func Build(paragraphs []doctree.ParagraphRecord, opts Options) ([]*doctree.Section, Stats) {
	if opts.MaxHeadingLevel <= 0 {
		opts.MaxHeadingLevel = DefaultOptions().MaxHeadingLevel
	}
	if opts.PreambleHeading == "" {
		opts.PreambleHeading = DefaultOptions().PreambleHeading
	}

	var (
		roots  []*doctree.Section
		stack  []*doctree.Section
		buffer []string
		stats  Stats
	)

	// flush attaches buffered body text to the deepest open section. With
	// no open section the text is preamble: kept or dropped per options.
	flush := func() {
		if len(buffer) == 0 {
			return
		}
		if len(stack) == 0 {
			if opts.KeepPreamble {
				pre := &doctree.Section{
					Level:   1,
					Heading: opts.PreambleHeading,
					Content: buffer,
				}
				roots = append(roots, pre)
				stats.Sections++
			} else {
				stats.DroppedPreamble += len(buffer)
			}
			buffer = nil
			return
		}
		deepest := stack[len(stack)-1]
		deepest.Content = append(deepest.Content, buffer...)
		buffer = nil
	}

	for _, para := range paragraphs {
		if para.Level > 0 && para.Level <= opts.MaxHeadingLevel && acceptHeading(para.Text, opts) {
			flush()

			for len(stack) > 0 && stack[len(stack)-1].Level >= para.Level {
				stack = stack[:len(stack)-1]
			}

			sec := &doctree.Section{
				Level:   para.Level,
				Heading: strings.TrimSpace(para.Text),
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				sec.Parent = parent
				parent.Subsections = append(parent.Subsections, sec)
			} else {
				roots = append(roots, sec)
			}
			stack = append(stack, sec)
			stats.Sections++
			continue
		}

		// Body text (including rejected pseudo-headings). Small paragraphs
		// coalesce with the previous buffered one, but never across a
		// heading-levelled record.
		if opts.CoalesceLimit > 0 && len(buffer) > 0 && para.Level == 0 &&
			len(buffer[len(buffer)-1])+len(para.Text) < opts.CoalesceLimit {
			buffer[len(buffer)-1] += " " + para.Text
		} else {
			buffer = append(buffer, para.Text)
		}
	}

	flush()
	return roots, stats
}

func acceptHeading(text string, opts Options) bool {
	if text == "" {
		return false
	}
	if opts.RequireNumbered && !unicode.IsDigit(rune(text[0])) {
		return false
	}
	if len(opts.ExcludedKeywords) > 0 {
		lower := strings.ToLower(text)
		for _, kw := range opts.ExcludedKeywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return false
			}
		}
	}
	return true
}
