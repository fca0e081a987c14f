// Package export renders section trees into the formats the downstream
// tooling consumes: markdown, Mermaid hierarchy diagrams, and JSON
// property graphs.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rkoval/specsect/internal/doctree"
)

// Markdown writes the tree as '#'-per-level markdown. Feeding the output
// back through the markdown loader and tree builder reproduces the
// hierarchy. Content round-trips exactly when sections carry their
// original paragraphs; content reattached from overlapping chunks
// repeats each overlap region once per chunk that contains it.
func Markdown(w io.Writer, sections []*doctree.Section) error {
	for _, sec := range sections {
		if err := writeMarkdownSection(w, sec); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownSection(w io.Writer, sec *doctree.Section) error {
	if _, err := fmt.Fprintf(w, "%s %s\n\n", strings.Repeat("#", sec.Level), sec.Heading); err != nil {
		return err
	}
	for _, content := range sec.Content {
		if _, err := fmt.Fprintf(w, "%s\n\n", content); err != nil {
			return err
		}
	}
	for _, sub := range sec.Subsections {
		if err := writeMarkdownSection(w, sub); err != nil {
			return err
		}
	}
	return nil
}

// Mermaid writes the section hierarchy as a top-down Mermaid graph.
func Mermaid(w io.Writer, sections []*doctree.Section) error {
	if _, err := fmt.Fprintln(w, "graph TD"); err != nil {
		return err
	}

	ids := make(map[*doctree.Section]string)
	n := 0
	doctree.Walk(sections, func(sec *doctree.Section) {
		ids[sec] = fmt.Sprintf("n%d", n)
		n++
	})

	var writeErr error
	doctree.Walk(sections, func(sec *doctree.Section) {
		if writeErr != nil {
			return
		}
		if sec.Parent == nil {
			_, writeErr = fmt.Fprintf(w, "    %s[\"%s\"]\n", ids[sec], mermaidLabel(sec.Heading))
			return
		}
		_, writeErr = fmt.Fprintf(w, "    %s --> %s[\"%s\"]\n", ids[sec.Parent], ids[sec], mermaidLabel(sec.Heading))
	})
	return writeErr
}

func mermaidLabel(heading string) string {
	return strings.NewReplacer("\"", "'", "[", "(", "]", ")").Replace(heading)
}

// Node is a property-graph node for one section.
type Node struct {
	ID    string `json:"section_id"`
	Name  string `json:"section_name"`
	Level int    `json:"section_level"`
}

// Relationship links a parent section to one of its subsections.
type Relationship struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// PropertyGraph is the node/relationship shape the graph loaders consume.
type PropertyGraph struct {
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

// Graph flattens the tree into a property graph with HAS_SUBSECTION
// relationships.
func Graph(sections []*doctree.Section) PropertyGraph {
	g := PropertyGraph{
		Nodes:         []Node{},
		Relationships: []Relationship{},
	}
	doctree.Walk(sections, func(sec *doctree.Section) {
		g.Nodes = append(g.Nodes, Node{ID: sec.ID(), Name: sec.Name(), Level: sec.Level})
		if sec.Parent != nil {
			g.Relationships = append(g.Relationships, Relationship{
				From: sec.Parent.ID(),
				To:   sec.ID(),
				Type: "HAS_SUBSECTION",
			})
		}
	})
	return g
}

// JSON writes the property graph as indented JSON.
func JSON(w io.Writer, sections []*doctree.Section) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Graph(sections))
}
