// ABOUTME: Navigation chrome: top bar greeting, sidebar entries, and article cards
// ABOUTME: Admin entries only appear for managers

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/faq"
)

// AnonymousName is shown when the user has no name.
const AnonymousName = "Usuário"

// Greeting returns "Olá, <name>" for user.
func Greeting(user *api.User) string {
	name := AnonymousName
	if user != nil && user.Name != "" {
		name = user.Name
	}
	return "Olá, " + name
}

// TopBar draws the greeting right-aligned across width.
func TopBar(user *api.User, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	greeting := lipgloss.NewStyle().Bold(true).Render(Greeting(user))
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, greeting)
}

// NavItem is one sidebar entry and the command that opens it.
type NavItem struct {
	Label   string
	Command string
}

var (
	userNav = []NavItem{
		{Label: "Chat", Command: "chat"},
		{Label: "FAQ", Command: "faq"},
	}
	managerNav = []NavItem{
		{Label: "Admin • Tickets", Command: "admin tickets"},
		{Label: "Admin • Users", Command: "admin users"},
		{Label: "Admin • Reports", Command: "admin reports"},
	}
)

// Sidebar returns the navigation entries visible to the user.
func Sidebar(manager bool) []NavItem {
	items := append([]NavItem(nil), userNav...)
	if manager {
		items = append(items, managerNav...)
	}
	return items
}

// SidebarView draws the entries as a column, marking the active command.
func SidebarView(manager bool, active string) string {
	th := DefaultTheme
	var sb strings.Builder
	for _, item := range Sidebar(manager) {
		line := "  " + item.Label
		style := lipgloss.NewStyle().Foreground(th.FaintText)
		if item.Command == active {
			line = "› " + item.Label
			style = lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
		}
		sb.WriteString(style.Render(line))
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Article draws an FAQ article card: icon and title, category and date, then
// the body.
func Article(a faq.Article, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	th := DefaultTheme

	title := lipgloss.NewStyle().Bold(true).Render(strings.TrimSpace(a.Glyph + " " + a.Title))
	meta := a.Category
	if a.LastUpdated != "" {
		meta += " • " + a.LastUpdated
	}
	body := Layout(Markdown(a.Content))
	if body == "" {
		body = a.Description
	}

	card := lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.NewStyle().Foreground(th.FaintText).Render(meta),
		"",
		body,
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.CategoryPrompt.Border).
		Padding(0, 1).
		Width(max(width-2, minBubbleWidth)).
		Render(card)
}
