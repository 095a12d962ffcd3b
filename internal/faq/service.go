// ABOUTME: FAQ endpoint helpers with the same bundled-article fallback as the browser
// ABOUTME: Wraps GET /faq, GET /faq/popular, and POST /faq/{id}/feedback

package faq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/2389/helpline/internal/api"
)

const popularFallbackCount = 2

// FAQSource is the backend FAQ call group. *api.FAQAPI satisfies it.
type FAQSource interface {
	List(ctx context.Context) ([]api.Article, error)
	Popular(ctx context.Context) ([]api.Article, error)
	AddFeedback(ctx context.Context, id string, payload api.FAQFeedback) error
}

// FAQArticles returns the FAQ entries, or the bundled articles when the
// backend fails or has none.
func FAQArticles(ctx context.Context, src FAQSource, logger *slog.Logger) []Article {
	raw, err := src.List(ctx)
	if err != nil {
		loggerOrDefault(logger).Warn("loading faq failed, using bundled articles", "error", err)
	}
	if len(raw) == 0 {
		return Local()
	}
	return normalizeAll(raw)
}

// PopularFAQ returns the popular FAQ entries, or the first two bundled
// articles when the backend fails or has none.
func PopularFAQ(ctx context.Context, src FAQSource, logger *slog.Logger) []Article {
	raw, err := src.Popular(ctx)
	if err != nil {
		loggerOrDefault(logger).Warn("loading popular faq failed, using bundled articles", "error", err)
	}
	if len(raw) == 0 {
		local := Local()
		if len(local) > popularFallbackCount {
			local = local[:popularFallbackCount]
		}
		return local
	}
	return normalizeAll(raw)
}

// SendFAQFeedback posts feedback for an FAQ entry. Unlike article votes,
// the error is returned to the caller after being logged.
func SendFAQFeedback(ctx context.Context, src FAQSource, id string, payload api.FAQFeedback, logger *slog.Logger) error {
	if err := src.AddFeedback(ctx, id, payload); err != nil {
		loggerOrDefault(logger).Error("sending faq feedback failed", "faq_id", id, "error", err)
		return fmt.Errorf("sending faq feedback: %w", err)
	}
	return nil
}

func normalizeAll(raw []api.Article) []Article {
	out := make([]Article, len(raw))
	for i, r := range raw {
		out[i] = Normalize(r)
	}
	return out
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default().With("component", "faq")
	}
	return logger
}
