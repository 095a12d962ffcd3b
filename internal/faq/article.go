// ABOUTME: Normalized FAQ article and the rules that fill in missing fields
// ABOUTME: Synthesizes ids, titles, descriptions, and content from category templates

package faq

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/content"
)

// DefaultTitle is shown for articles without a title.
const DefaultTitle = "Artigo sem título"

const descriptionRunes = 180

// Article is a knowledge-base article ready for display.
type Article struct {
	ID            string
	Title         string
	Description   string
	Content       string
	Category      string
	Icon          string
	Glyph         string // display symbol for Icon, falling back to Category
	Tags          []string
	LastUpdated   string
	FeedbackCount int
}

// Normalize fills the gaps in a backend article using the bundled templates.
func Normalize(raw api.Article) Article {
	return normalizeWith(content.Default(), raw)
}

func normalizeWith(tbl *content.Table, raw api.Article) Article {
	category := raw.Category
	if category == "" {
		category = content.GeneralCategory
	}

	description := raw.Description
	if description == "" {
		description = raw.Summary
	}
	body := raw.Content
	if body == "" {
		body = description
	}
	if strings.TrimSpace(body) == "" {
		body = tbl.Template(category)
	}
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		description = trimmed
	} else {
		description = prefix(body, descriptionRunes)
	}

	a := Article{
		ID:            raw.ID.String(),
		Title:         raw.Title,
		Description:   description,
		Content:       body,
		Category:      category,
		Icon:          raw.Icon,
		Tags:          raw.Tags,
		FeedbackCount: len(raw.Feedback),
	}
	if a.ID == "" {
		a.ID = raw.LegacyID.String()
	}
	if a.ID == "" {
		a.ID = "faq-" + uuid.NewString()
	}
	if a.Title == "" {
		a.Title = DefaultTitle
	}
	if a.Icon == "" {
		a.Icon = category
	}
	a.Glyph = tbl.Icon(a.Icon, category)
	if a.Tags == nil {
		a.Tags = []string{}
	}
	for _, ts := range []string{raw.LastUpdated, raw.UpdatedAt, raw.CreatedAt} {
		if ts != "" {
			a.LastUpdated = ts
			break
		}
	}
	return a
}

// Updated parses LastUpdated. Unparseable or empty values are the zero time.
func (a Article) Updated() time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, a.LastUpdated); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Matches reports whether needle (already lower-cased) appears in the title,
// description, content, or any tag.
func (a Article) Matches(needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(a.Title), needle) ||
		strings.Contains(strings.ToLower(a.Description), needle) ||
		strings.Contains(strings.ToLower(a.Content), needle) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Local returns the bundled articles, normalized.
func Local() []Article {
	return localFrom(content.Default())
}

func localFrom(tbl *content.Table) []Article {
	out := make([]Article, len(tbl.FAQ))
	for i, a := range tbl.FAQ {
		out[i] = normalizeWith(tbl, api.Article{
			ID:          api.FlexID(a.ID),
			Title:       a.Title,
			Category:    a.Category,
			Content:     a.Content,
			Tags:        a.Tags,
			LastUpdated: a.LastUpdated,
		})
	}
	return out
}

func prefix(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
