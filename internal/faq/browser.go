// ABOUTME: FAQ browser state: loaded articles, popular picks, filters, and votes
// ABOUTME: Falls back to bundled articles on any load failure and votes optimistically

package faq

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/content"
)

// AllCategories is the category filter value that matches every article.
const AllCategories = "Todos"

const popularLimit = 3

// ArticleSource lists backend articles. *api.ArticlesAPI satisfies it.
type ArticleSource interface {
	List(ctx context.Context, params map[string]string) ([]api.Article, error)
}

// FeedbackSender records article votes. *api.ArticlesAPI satisfies it.
type FeedbackSender interface {
	AddFeedback(ctx context.Context, id, feedbackType string) error
}

// Browser holds the articles the user is browsing. It is safe for concurrent use.
type Browser struct {
	source   ArticleSource
	feedback FeedbackSender
	content  *content.Table
	logger   *slog.Logger

	mu       sync.RWMutex
	articles []Article
	popular  []Article
	votes    map[string]string
	fallback bool
}

// NewBrowser creates an empty Browser. Call Load to fill it.
func NewBrowser(source ArticleSource, feedback FeedbackSender, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.Default().With("component", "faq")
	}
	return &Browser{
		source:   source,
		feedback: feedback,
		content:  content.Default(),
		logger:   logger,
		votes:    make(map[string]string),
	}
}

// Load fetches and normalizes the backend articles. An error or an empty
// list switches to the bundled articles; it reports whether that happened.
func (b *Browser) Load(ctx context.Context) (usedFallback bool) {
	var list []Article
	raw, err := b.source.List(ctx, nil)
	switch {
	case err != nil:
		b.logger.Warn("loading articles failed, using bundled articles", "error", err)
	case len(raw) == 0:
		b.logger.Info("backend has no articles, using bundled articles")
	default:
		list = make([]Article, len(raw))
		for i, r := range raw {
			list[i] = normalizeWith(b.content, r)
		}
	}

	fallback := len(list) == 0
	if fallback {
		list = localFrom(b.content)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.articles = list
	b.popular = SelectPopular(list)
	b.fallback = fallback
	return fallback
}

// Articles returns the loaded articles.
func (b *Browser) Articles() []Article {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Article(nil), b.articles...)
}

// Popular returns the most popular loaded articles.
func (b *Browser) Popular() []Article {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Article(nil), b.popular...)
}

// UsingFallback reports whether the bundled articles are shown.
func (b *Browser) UsingFallback() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fallback
}

// Categories returns AllCategories followed by the sorted distinct categories.
func (b *Browser) Categories() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	seen := make(map[string]bool)
	var cats []string
	for _, a := range b.articles {
		if !seen[a.Category] {
			seen[a.Category] = true
			cats = append(cats, a.Category)
		}
	}
	sort.Strings(cats)
	return append([]string{AllCategories}, cats...)
}

// Filter returns the articles in category (or all, for AllCategories or "")
// whose text or tags contain query, ignoring case.
func (b *Browser) Filter(query, category string) []Article {
	needle := strings.ToLower(strings.TrimSpace(query))

	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Article
	for _, a := range b.articles {
		if category != "" && category != AllCategories && a.Category != category {
			continue
		}
		if a.Matches(needle) {
			out = append(out, a)
		}
	}
	return out
}

// Find returns the loaded article with id.
func (b *Browser) Find(id string) (Article, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, a := range b.articles {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}

// Feedback records a vote locally, then sends it. Send failures are logged
// and the local vote stands.
func (b *Browser) Feedback(ctx context.Context, id string, helpful bool) string {
	vote := api.FeedbackDislike
	if helpful {
		vote = api.FeedbackLike
	}

	b.mu.Lock()
	b.votes[id] = vote
	b.mu.Unlock()

	if err := b.feedback.AddFeedback(ctx, id, vote); err != nil {
		b.logger.Warn("sending article feedback failed", "article_id", id, "vote", vote, "error", err)
	}
	return vote
}

// Vote returns the local vote for id, if any.
func (b *Browser) Vote(id string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.votes[id]
	return v, ok
}

// FocusPopular returns the query and category filter that bring a popular
// article into view.
func FocusPopular(a Article) (query, category string) {
	category = a.Category
	if category == "" {
		category = AllCategories
	}
	return a.Title, category
}

// SelectPopular returns up to three articles with the most feedback, newest
// first on ties.
func SelectPopular(list []Article) []Article {
	sorted := append([]Article(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].FeedbackCount != sorted[j].FeedbackCount {
			return sorted[i].FeedbackCount > sorted[j].FeedbackCount
		}
		return sorted[i].Updated().After(sorted[j].Updated())
	})
	if len(sorted) > popularLimit {
		sorted = sorted[:popularLimit]
	}
	return sorted
}
