// ABOUTME: Parses markdown article bodies into layout blocks with goldmark
// ABOUTME: Inline markup is flattened to plain text; structure is kept

package render

import (
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	markdownOnce   sync.Once
	markdownParser goldmark.Markdown
)

func parser() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownParser = goldmark.New()
	})
	return markdownParser
}

// Markdown parses an article body into blocks. Headings become paragraphs,
// code is kept verbatim, and blockquotes are unwrapped. An empty body yields
// no blocks.
func Markdown(src string) []Block {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	source := []byte(src)
	doc := parser().Parser().Parse(text.NewReader(source))
	return collectBlocks(doc, source, nil)
}

func collectBlocks(parent ast.Node, source []byte, out []Block) []Block {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
			if t := inlineText(node, source); t != "" {
				out = append(out, Block{Kind: Paragraph, Text: t})
			}
		case *ast.List:
			b := Block{Kind: List, Ordered: node.IsOrdered()}
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				if t := inlineText(item, source); t != "" {
					b.Items = append(b.Items, t)
				}
			}
			if len(b.Items) > 0 {
				out = append(out, b)
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			var sb strings.Builder
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				sb.Write(seg.Value(source))
			}
			if t := strings.TrimRight(sb.String(), "\n"); t != "" {
				out = append(out, Block{Kind: Paragraph, Text: t})
			}
		case *ast.Blockquote:
			out = collectBlocks(node, source, out)
		}
	}
	return out
}

// inlineText flattens the inline content under n. Nested lists are skipped.
func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.List:
			if c != n {
				return ast.WalkSkipChildren, nil
			}
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.AutoLink:
			sb.Write(t.Label(source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
