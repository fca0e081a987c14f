package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/rkoval/specsect/internal/cleaner"
	"github.com/rkoval/specsect/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLLoader handles HTML files, mapping h1-h6 tags to heading levels.
type HTMLLoader struct{}

func (l *HTMLLoader) Load(r io.Reader, filename string) ([]doctree.ParagraphRecord, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var records []doctree.ParagraphRecord

	emit := func(raw string, level int) {
		text := cleaner.Clean(raw)
		if text == "" {
			return
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

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingTagLevel(n.Data); level > 0 {
				emit(textContent(n), level)
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote", "pre":
				emit(textContent(n), 0)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return records, nil
}

func headingTagLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
