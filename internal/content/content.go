// ABOUTME: Canned chatbot script and local FAQ content, embedded as TOML
// ABOUTME: Decodes the table once and exposes lookups with the Outros/Geral fallbacks

package content

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed content.toml
var embedded string

// Category names, in display order.
const (
	Hardware   = "Hardware"
	Software   = "Software"
	Rede       = "Rede"
	Acesso     = "Acesso/Security"
	Impressora = "Impressora"
	SO         = "Sistema Operacional"
	Outros     = "Outros"
)

// GeneralCategory is the FAQ category used when an article has none.
const GeneralCategory = "Geral"

// Plan is one guided troubleshooting step sent after the user describes a problem.
type Plan struct {
	Intro    string   `toml:"intro"`
	Steps    []string `toml:"steps"`
	Reminder string   `toml:"reminder"`
	Closing  string   `toml:"closing"`
}

// Category is a triage category with its checklist, follow-up question, and plans.
type Category struct {
	Name     string   `toml:"name"`
	Question string   `toml:"question"`
	Guide    []string `toml:"guide"`
	Plans    []Plan   `toml:"plans"`
}

// Messages holds the fixed chat lines. Fields ending in a format verb are
// rendered with fmt by the caller.
type Messages struct {
	Welcome          string   `toml:"welcome"`
	Consent          string   `toml:"consent"`
	Intro            string   `toml:"intro"`
	CategoryPrompt   string   `toml:"category_prompt"`
	QuickPrompt      string   `toml:"quick_prompt"`
	CategorySelected string   `toml:"category_selected"`
	Acknowledge      string   `toml:"acknowledge"`
	Clarify          string   `toml:"clarify"`
	Failure          string   `toml:"failure"`
	Resolved         string   `toml:"resolved"`
	Escalated        string   `toml:"escalated"`
	PendingProtocol  string   `toml:"pending_protocol"`
	Handoff          string   `toml:"handoff"`
	Provisional      string   `toml:"provisional"`
	DefaultTitle     string   `toml:"default_title"`
	SummaryHeader    string   `toml:"summary_header"`
	HistoryHeader    string   `toml:"history_header"`
	QuickReplies     []string `toml:"quick_replies"`
}

// AssistantReplies are the offline answers keyed by topic.
type AssistantReplies struct {
	Network string `toml:"network"`
	Access  string `toml:"access"`
	Printer string `toml:"printer"`
	Generic string `toml:"generic"`
}

// Article is a bundled FAQ article shown when the backend has none.
type Article struct {
	ID          string   `toml:"id"`
	Title       string   `toml:"title"`
	Category    string   `toml:"category"`
	Content     string   `toml:"content"`
	Tags        []string `toml:"tags"`
	LastUpdated string   `toml:"last_updated"`
}

// Table is the full decoded content file.
type Table struct {
	Messages   Messages          `toml:"messages"`
	Assistant  AssistantReplies  `toml:"assistant"`
	Categories []Category        `toml:"categories"`
	Templates  map[string]string `toml:"templates"`
	Icons      map[string]string `toml:"icons"`
	FAQ        []Article         `toml:"faq"`
}

// Parse decodes a content table from TOML text and validates it.
func Parse(data string) (*Table, error) {
	var t Table
	md, err := toml.Decode(data, &t)
	if err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing content: unknown key %q", undecoded[0].String())
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validating content: %w", err)
	}
	return &t, nil
}

// Validate checks the invariants the chat flow relies on.
func (t *Table) Validate() error {
	if t.Messages.Welcome == "" {
		return errors.New("messages.welcome is required")
	}
	if len(t.Categories) == 0 {
		return errors.New("at least one category is required")
	}
	seen := make(map[string]bool, len(t.Categories))
	for _, c := range t.Categories {
		if c.Name == "" {
			return errors.New("category name is required")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate category %q", c.Name)
		}
		seen[c.Name] = true
	}
	if !seen[Outros] {
		return fmt.Errorf("category %q is required as the fallback", Outros)
	}
	if _, ok := t.Templates[GeneralCategory]; !ok {
		return fmt.Errorf("templates.%s is required as the fallback", GeneralCategory)
	}
	if len(t.FAQ) == 0 {
		return errors.New("at least one faq article is required")
	}
	return nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded table. It panics if the embedded file is
// invalid, which only a broken build can cause.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(embedded)
		if err != nil {
			panic("content: " + err.Error())
		}
		defaultTable = t
	})
	return defaultTable
}

// Category returns the named category, or Outros when it is unknown.
func (t *Table) Category(name string) Category {
	var fallback Category
	for _, c := range t.Categories {
		if c.Name == name {
			return c
		}
		if c.Name == Outros {
			fallback = c
		}
	}
	return fallback
}

// HasCategory reports whether name is a known category.
func (t *Table) HasCategory(name string) bool {
	for _, c := range t.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// CategoryNames returns the category names in display order.
func (t *Table) CategoryNames() []string {
	names := make([]string, len(t.Categories))
	for i, c := range t.Categories {
		names[i] = c.Name
	}
	return names
}

// CategoryLabel returns the numbered label shown next to a category, e.g. "3 - Rede".
func (t *Table) CategoryLabel(name string) string {
	for i, c := range t.Categories {
		if c.Name == name {
			return fmt.Sprintf("%d - %s", i+1, c.Name)
		}
	}
	return name
}

// CategoryGuide renders the message appended when a category is selected.
func (t *Table) CategoryGuide(name string) string {
	c := t.Category(name)
	lines := []string{fmt.Sprintf(t.Messages.CategorySelected, name)}
	lines = append(lines, numbered(c.Guide)...)
	return strings.Join(lines, "\n")
}

// ComposePlan renders plan number index for category, acknowledging userText
// when it is not empty. It reports false once the category's plans are used up.
func (t *Table) ComposePlan(category, userText string, index int) (string, bool) {
	if category == "" {
		return "", false
	}
	plans := t.Category(category).Plans
	if index < 0 || index >= len(plans) {
		return "", false
	}
	plan := plans[index]

	var parts []string
	if userText != "" {
		parts = append(parts, fmt.Sprintf(t.Messages.Acknowledge, userText))
	}
	parts = append(parts, plan.Intro)
	if len(plan.Steps) > 0 {
		parts = append(parts, strings.Join(numbered(plan.Steps), "\n"))
	}
	parts = append(parts, plan.Reminder, plan.Closing)

	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n"), true
}

// Template returns the canned article body for a category, or the Geral one.
func (t *Table) Template(category string) string {
	if tpl, ok := t.Templates[category]; ok && tpl != "" {
		return tpl
	}
	return t.Templates[GeneralCategory]
}

// Icon returns the glyph for the first name that has one, trying an article's
// icon before its category. Unknown names get the Hardware glyph.
func (t *Table) Icon(names ...string) string {
	for _, name := range names {
		if icon, ok := t.Icons[name]; ok {
			return icon
		}
	}
	return t.Icons[Hardware]
}

func numbered(items []string) []string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d) %s", i+1, item)
	}
	return lines
}
