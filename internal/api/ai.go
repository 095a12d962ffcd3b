// ABOUTME: Assistant chat types and the backend /ai/chat call group
// ABOUTME: Extracts reply text from the several response shapes assistants return

package api

import (
	"context"
	"strings"
)

// ChatTurn is one entry of the conversation sent to an assistant.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the assistant request body.
type ChatRequest struct {
	Messages []ChatTurn `json:"messages"`
	Origin   string     `json:"origin,omitempty"`
}

// ChatReply covers the response shapes assistants use: a flat message,
// reply, or content field, or an OpenAI-style choices list.
type ChatReply struct {
	Message string `json:"message,omitempty"`
	Reply   string `json:"reply,omitempty"`
	Content string `json:"content,omitempty"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices,omitempty"`
}

// Text returns the first non-empty reply field, trimmed.
func (r *ChatReply) Text() string {
	if r == nil {
		return ""
	}
	for _, s := range []string{r.Message, r.Reply, r.Content} {
		if s != "" {
			return strings.TrimSpace(s)
		}
	}
	if len(r.Choices) > 0 {
		return strings.TrimSpace(r.Choices[0].Message.Content)
	}
	return ""
}

// OriginWeb tags requests coming from the end-user client.
const OriginWeb = "web"

// AIAPI groups the backend assistant endpoint.
type AIAPI struct {
	c *Client
}

// Chat posts the conversation to /ai/chat with origin "web".
func (a *AIAPI) Chat(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	req.Origin = OriginWeb
	var reply ChatReply
	if err := a.c.Post(ctx, "/ai/chat", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
