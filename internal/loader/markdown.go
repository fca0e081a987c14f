package loader

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rkoval/specsect/internal/cleaner"
	"github.com/rkoval/specsect/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLoader handles Markdown files using goldmark. Heading levels
// come from the ATX marker depth, which covers both "# Title" and the
// numbered "## 5.5.1.2 Procedure description" convention used by
// converted specification documents.
type MarkdownLoader struct{}

func (l *MarkdownLoader) Load(r io.Reader, filename string) ([]doctree.ParagraphRecord, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var records []doctree.ParagraphRecord
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			heading := cleaner.Clean(string(node.Text(src)))
			if heading == "" {
				continue
			}
			records = append(records, doctree.ParagraphRecord{
				Text:      heading,
				StyleName: headingStyleName(node.Level),
				Level:     node.Level,
			})

		default:
			t := cleaner.Clean(blockText(n, src))
			if t == "" {
				continue
			}
			records = append(records, doctree.ParagraphRecord{
				Text:      t,
				StyleName: "Normal",
			})
		}
	}

	return records, nil
}

func headingStyleName(level int) string {
	return fmt.Sprintf("Heading %d", level)
}

// blockText gets the text content of a goldmark AST block node. Blocks
// with source line segments (paragraphs, code blocks) use those directly;
// container blocks such as lists recurse into their children.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		if c.Type() == ast.TypeBlock && buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(blockText(c, src))
	}
	return strings.TrimSpace(buf.String())
}
