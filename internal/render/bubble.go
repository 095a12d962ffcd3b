// ABOUTME: Draws chat messages as aligned, bordered bubbles
// ABOUTME: User bubbles sit right, system notices center, bot replies left

package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/2389/helpline/internal/chat"
)

const (
	defaultWidth   = 80
	minBubbleWidth = 20
	// horizontal border plus padding
	bubbleChrome = 4
)

// Bubble draws msg in a box no wider than 70% of width, aligned by sender.
func Bubble(msg chat.Message, width int) string {
	return DefaultTheme.Bubble(msg, width)
}

// Bubble draws msg with the theme's tones.
func (th Theme) Bubble(msg chat.Message, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	maxWidth := max(width*7/10, minBubbleWidth)

	tone := th.tone(msg)
	body := Layout(Blocks(msg.Text))

	inner := maxWidth - bubbleChrome
	if w := lipgloss.Width(body); w < inner {
		inner = w
	}
	box := lipgloss.NewStyle().
		Foreground(tone.Foreground).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tone.Border).
		Padding(0, 1).
		Width(inner + 2).
		Render(body)

	return lipgloss.PlaceHorizontal(width, alignment(msg.Sender), box)
}

func (th Theme) tone(msg chat.Message) Tone {
	switch {
	case msg.Kind == chat.KindQuickPrompt:
		return th.QuickPrompt
	case msg.Kind == chat.KindCategoryPrompt:
		return th.CategoryPrompt
	case msg.Sender == chat.SenderUser:
		return th.User
	case msg.Sender == chat.SenderSystem:
		return th.System
	default:
		return th.Bot
	}
}

func alignment(sender chat.Sender) lipgloss.Position {
	switch sender {
	case chat.SenderUser:
		return lipgloss.Right
	case chat.SenderSystem:
		return lipgloss.Center
	default:
		return lipgloss.Left
	}
}

// Layout renders blocks as plain text: paragraphs as-is, ordered lists as
// "1. item", other lists as "• item", with a blank line between blocks.
func Layout(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Kind != List {
			parts = append(parts, b.Text)
			continue
		}
		lines := make([]string, len(b.Items))
		for i, item := range b.Items {
			marker := "•"
			if b.Ordered {
				marker = strconv.Itoa(i+1) + "."
			}
			lines[i] = marker + " " + item
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
