// Package chunker splits section content into bounded-size chunks for
// downstream embedding or LLM extraction.
package chunker

import (
	"strings"

	"github.com/rkoval/specsect/internal/doctree"
)

// Mode selects the chunking strategy.
type Mode string

const (
	// ModeFixedWindow slides a fixed-size character window with overlap
	// over the section's concatenated content.
	ModeFixedWindow Mode = "fixed"

	// ModeParagraph greedily packs whole paragraphs, sentence-splitting
	// any paragraph that alone exceeds the chunk size.
	ModeParagraph Mode = "paragraph"
)

// Config controls chunking behavior. Sizes are in characters.
type Config struct {
	MaxChunkSize int     // Target chunk size.
	OverlapRatio float64 // Fraction of MaxChunkSize shared between consecutive windows.
	MinChunk     int     // Minimum chunk size to emit (paragraph mode only).
}

// DefaultConfig returns the parameters used for 3GPP NAS specifications.
func DefaultConfig() Config {
	return Config{
		MaxChunkSize: 2000,
		OverlapRatio: 0.1,
		MinChunk:     100,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxChunkSize <= 0 {
		c.MaxChunkSize = d.MaxChunkSize
	}
	if c.OverlapRatio < 0 || c.OverlapRatio >= 1 {
		c.OverlapRatio = d.OverlapRatio
	}
	if c.MinChunk <= 0 {
		c.MinChunk = d.MinChunk
	}
	return c
}

// Stats reports what a chunking pass emitted and discarded. Undersized
// chunks are never lost silently: Dropped counts them.
type Stats struct {
	Emitted int
	Dropped int
}

// FixedWindow slides a window of MaxChunkSize characters over the
// section's joined content with step MaxChunkSize*(1-OverlapRatio). The
// last chunk may be shorter than MaxChunkSize. Sizes count runes, so
// window boundaries never split a multi-byte character.
func FixedWindow(sec *doctree.Section, cfg Config) []doctree.Chunk {
	cfg = cfg.withDefaults()

	text := []rune(sec.JoinedContent())
	if len(text) == 0 {
		return nil
	}

	step := cfg.MaxChunkSize - int(float64(cfg.MaxChunkSize)*cfg.OverlapRatio)
	if step <= 0 {
		step = cfg.MaxChunkSize
	}

	var chunks []doctree.Chunk
	for i, idx := 0, 0; i < len(text); i += step {
		end := i + cfg.MaxChunkSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, newChunk(sec, idx, string(text[i:end])))
		idx++
		if end == len(text) {
			break
		}
	}
	return chunks
}

// ParagraphBound packs whole content paragraphs into chunks of at most
// MaxChunkSize characters. A single paragraph exceeding the limit is
// sentence-split. Chunks below MinChunk are discarded and counted.
func ParagraphBound(sec *doctree.Section, cfg Config) ([]doctree.Chunk, Stats) {
	cfg = cfg.withDefaults()

	var (
		chunks  []doctree.Chunk
		stats   Stats
		current strings.Builder
		idx     int
	)

	emit := func() {
		text := strings.TrimSpace(current.String())
		current.Reset()
		if text == "" {
			return
		}
		if len(text) < cfg.MinChunk {
			stats.Dropped++
			return
		}
		chunks = append(chunks, newChunk(sec, idx, text))
		idx++
		stats.Emitted++
	}

	add := func(piece string) {
		if current.Len() > 0 && current.Len()+len(piece)+1 > cfg.MaxChunkSize {
			emit()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(piece)
	}

	for _, para := range sec.Content {
		if len(para) > cfg.MaxChunkSize {
			for _, sent := range splitSentences(para) {
				add(sent)
			}
			continue
		}
		add(para)
	}
	emit()

	return chunks, stats
}

// ChunkTree chunks every section of the tree depth-first. Chunk indexes
// restart per section, matching the chunk_id sequence downstream
// consumers order by.
func ChunkTree(sections []*doctree.Section, mode Mode, cfg Config) ([]doctree.Chunk, Stats) {
	var all []doctree.Chunk
	var stats Stats

	doctree.Walk(sections, func(sec *doctree.Section) {
		switch mode {
		case ModeParagraph:
			chunks, st := ParagraphBound(sec, cfg)
			all = append(all, chunks...)
			stats.Emitted += st.Emitted
			stats.Dropped += st.Dropped
		default:
			chunks := FixedWindow(sec, cfg)
			all = append(all, chunks...)
			stats.Emitted += len(chunks)
		}
	})

	return all, stats
}

func newChunk(sec *doctree.Section, idx int, content string) doctree.Chunk {
	return doctree.Chunk{
		SectionID: sec.ID(),
		Title:     sec.Name(),
		Level:     sec.Level,
		Index:     idx,
		Content:   content,
	}
}

// splitSentences does basic sentence splitting on terminal punctuation
// followed by a space.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
