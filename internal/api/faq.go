// ABOUTME: FAQ call group: full listing, popular entries, and feedback
// ABOUTME: Lists accept bare arrays or data/items envelopes

package api

import (
	"context"
	"encoding/json"
)

// FAQAPI groups the /faq endpoints.
type FAQAPI struct {
	c *Client
}

// FAQFeedback is the payload for FAQ feedback.
type FAQFeedback struct {
	Helpful bool   `json:"helpful"`
	Comment string `json:"comment,omitempty"`
}

// List returns all FAQ entries.
func (f *FAQAPI) List(ctx context.Context) ([]Article, error) {
	var raw json.RawMessage
	if err := f.c.Get(ctx, "/faq", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[Article](raw)
}

// Popular returns the most accessed FAQ entries.
func (f *FAQAPI) Popular(ctx context.Context) ([]Article, error) {
	var raw json.RawMessage
	if err := f.c.Get(ctx, "/faq/popular", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[Article](raw)
}

// AddFeedback records feedback on an FAQ entry.
func (f *FAQAPI) AddFeedback(ctx context.Context, id string, payload FAQFeedback) error {
	return f.c.Post(ctx, "/faq/"+pathID(id)+"/feedback", payload, nil)
}
