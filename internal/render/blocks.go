// ABOUTME: Splits message text into paragraphs and numbered lists
// ABOUTME: Lines like "2) Reinicie" form list runs; other lines join into paragraphs

package render

import (
	"regexp"
	"strings"
)

// BlockKind distinguishes paragraphs from lists.
type BlockKind int

const (
	// Paragraph is a run of prose joined with spaces.
	Paragraph BlockKind = iota
	// List is a run of items.
	List
)

// Block is one unit of message layout.
type Block struct {
	Kind    BlockKind
	Text    string
	Items   []string
	Ordered bool
}

var listItemPattern = regexp.MustCompile(`^(\d+)\)\s*(.+)$`)

// Blocks splits chat message text into layout blocks. Lines matching
// "<digits>) text" become items of an ordered list; other non-blank lines join
// into a paragraph. Text without any blocks becomes a single paragraph.
func Blocks(text string) []Block {
	var (
		blocks    []Block
		paragraph []string
		items     []string
	)
	flushParagraph := func() {
		if len(paragraph) > 0 {
			blocks = append(blocks, Block{Kind: Paragraph, Text: strings.Join(paragraph, " ")})
			paragraph = nil
		}
	}
	flushList := func() {
		if len(items) > 0 {
			blocks = append(blocks, Block{Kind: List, Items: items, Ordered: true})
			items = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := listItemPattern.FindStringSubmatch(line); m != nil {
			flushParagraph()
			items = append(items, m[2])
			continue
		}
		flushList()
		paragraph = append(paragraph, line)
	}
	flushParagraph()
	flushList()

	if len(blocks) == 0 {
		return []Block{{Kind: Paragraph, Text: text}}
	}
	return blocks
}
