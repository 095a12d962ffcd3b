// ABOUTME: FAQ subcommand: list, search, filter, popular, and vote on articles
// ABOUTME: Reads /articles or /faq and falls back to the bundled articles

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/faq"
	"github.com/2389/helpline/internal/render"
)

// Article sources selectable with --source.
const (
	sourceArticles = "articles"
	sourceFAQ      = "faq"
)

func cmdFAQ(ctx context.Context, args []string) error {
	var (
		common     commonFlags
		source     string
		search     string
		category   string
		popular    bool
		show       string
		feedbackID string
		helpful    bool
		notHelpful bool
	)
	fs := pflag.NewFlagSet("faq", pflag.ContinueOnError)
	common.register(fs)
	fs.StringVar(&source, "source", sourceArticles, "article endpoint: articles or faq")
	fs.StringVar(&search, "search", "", "text to search in titles, content, and tags")
	fs.StringVar(&category, "category", faq.AllCategories, "category filter")
	fs.BoolVar(&popular, "popular", false, "show the most helpful articles")
	fs.StringVar(&show, "show", "", "print the full article with this id")
	fs.StringVar(&feedbackID, "feedback", "", "article id to vote on")
	fs.BoolVar(&helpful, "helpful", false, "vote helpful (with --feedback)")
	fs.BoolVar(&notHelpful, "not-helpful", false, "vote not helpful (with --feedback)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if feedbackID != "" && helpful == notHelpful {
		return fmt.Errorf("%w: --feedback needs exactly one of --helpful or --not-helpful", errUsage)
	}
	if source != sourceArticles && source != sourceFAQ {
		return fmt.Errorf("%w: --source must be %s or %s", errUsage, sourceArticles, sourceFAQ)
	}

	a, err := newApp(ctx, common, false)
	if err != nil {
		return err
	}
	defer a.Close()

	logger := a.logger.With("component", "faq")
	var browser *faq.Browser
	if source == sourceFAQ {
		adapter := faqEndpoint{api: a.client.FAQ}
		browser = faq.NewBrowser(adapter, adapter, logger)
	} else {
		browser = faq.NewBrowser(a.client.Articles, a.client.Articles, logger)
	}

	if feedbackID != "" {
		browser.Feedback(ctx, feedbackID, helpful)
		vote := "útil"
		if !helpful {
			vote = "não útil"
		}
		color.New(color.FgGreen).Printf("✓ Obrigado! Artigo %s marcado como %s.\n", feedbackID, vote)
		return nil
	}

	cyan := color.New(color.FgCyan)
	if popular && source == sourceFAQ {
		cyan.Println("Mais populares")
		printArticles(faq.PopularFAQ(ctx, a.client.FAQ, logger))
		return nil
	}

	if browser.Load(ctx) {
		color.Yellow("Backend indisponível: mostrando artigos locais.\n\n")
	}

	if show != "" {
		article, ok := browser.Find(show)
		if !ok {
			return fmt.Errorf("article %q not found", show)
		}
		fmt.Println(render.Article(article, terminalWidth()))
		return nil
	}

	if popular {
		cyan.Println("Mais populares")
		printArticles(browser.Popular())
		return nil
	}

	list := browser.Filter(search, category)
	cyan.Printf("Artigos (%s)\n", strings.Join(browser.Categories(), " | "))
	if len(list) == 0 {
		fmt.Println("  Nenhum artigo encontrado.")
		return nil
	}
	printArticles(list)
	return nil
}

// faqEndpoint adapts the /faq call group to the browser's source and
// feedback interfaces.
type faqEndpoint struct {
	api faq.FAQSource
}

func (f faqEndpoint) List(ctx context.Context, _ map[string]string) ([]api.Article, error) {
	return f.api.List(ctx)
}

func (f faqEndpoint) AddFeedback(ctx context.Context, id, feedbackType string) error {
	payload := api.FAQFeedback{Helpful: feedbackType == api.FeedbackLike}
	return faq.SendFAQFeedback(ctx, f.api, id, payload, nil)
}

func printArticles(list []faq.Article) {
	gray := color.New(color.FgHiBlack)
	for _, art := range list {
		fmt.Printf("  %s %s\n", art.Glyph, art.Title)
		gray.Printf("     %s • %s • id %s\n", art.Category, orDash(art.LastUpdated), art.ID)
		if art.Description != "" {
			fmt.Printf("     %s\n", art.Description)
		}
	}
}
