// ABOUTME: Knowledge-base article call group: listing, CRUD, and like/dislike feedback
// ABOUTME: Backs the FAQ browser's article list and feedback buttons

package api

import (
	"context"
	"encoding/json"
)

// Feedback types accepted by the articles endpoint.
const (
	FeedbackLike    = "like"
	FeedbackDislike = "dislike"
)

// ArticlesAPI groups the /articles endpoints.
type ArticlesAPI struct {
	c *Client
}

// List returns articles, optionally filtered.
func (a *ArticlesAPI) List(ctx context.Context, params map[string]string) ([]Article, error) {
	var raw json.RawMessage
	if err := a.c.Get(ctx, "/articles", params, &raw); err != nil {
		return nil, err
	}
	return decodeList[Article](raw)
}

// Create publishes an article.
func (a *ArticlesAPI) Create(ctx context.Context, in ArticleInput) (*Article, error) {
	var article Article
	if err := a.c.Post(ctx, "/articles", in, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// Update replaces an article.
func (a *ArticlesAPI) Update(ctx context.Context, id string, in ArticleInput) (*Article, error) {
	var article Article
	if err := a.c.Put(ctx, "/articles/"+pathID(id), in, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// Delete removes an article.
func (a *ArticlesAPI) Delete(ctx context.Context, id string) error {
	return a.c.Delete(ctx, "/articles/"+pathID(id), nil)
}

// AddFeedback records a like or dislike.
func (a *ArticlesAPI) AddFeedback(ctx context.Context, id, feedbackType string) error {
	return a.c.Post(ctx, "/articles/"+pathID(id)+"/feedback", map[string]string{"type": feedbackType}, nil)
}
