// ABOUTME: Remote assistant client with keyword fallback
// ABOUTME: Remembers a 404 for the session so later turns skip the remote call

package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/2389/helpline/internal/api"
)

// Mode selects which endpoint the Client talks to.
type Mode string

const (
	// ModeDirect posts {messages} to <assistant base>/chat without auth.
	ModeDirect Mode = "direct"
	// ModeBackend posts to the backend's /ai/chat with origin "web".
	ModeBackend Mode = "backend"
)

// ParseMode validates a configured mode. Empty means ModeDirect.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeDirect:
		return ModeDirect, nil
	case ModeBackend:
		return ModeBackend, nil
	default:
		return "", fmt.Errorf("unknown assistant mode %q (want %q or %q)", s, ModeDirect, ModeBackend)
	}
}

// Client answers chat turns through a remote assistant, falling back to
// canned replies. It is safe for concurrent use.
type Client struct {
	remote *api.Client
	mode   Mode
	logger *slog.Logger

	mu          sync.Mutex
	unavailable bool
}

// NewClient creates a Client. A nil remote makes every reply a fallback.
func NewClient(remote *api.Client, mode Mode, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default().With("component", "assistant")
	}
	if mode == "" {
		mode = ModeDirect
	}
	return &Client{remote: remote, mode: mode, logger: logger}
}

// Reply returns the assistant's answer to history. Remote failures are
// answered with Fallback; the only error is the caller's context ending.
func (c *Client) Reply(ctx context.Context, history []api.ChatTurn) (string, error) {
	if c.remote == nil || c.remote.BaseURL() == "" || c.Unavailable() {
		return Fallback(history), nil
	}

	text, err := c.ask(ctx, history)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if api.StatusOf(err) == http.StatusNotFound {
			c.mu.Lock()
			c.unavailable = true
			c.mu.Unlock()
			c.logger.Info("assistant endpoint not found, using offline replies", "mode", c.mode)
		} else {
			c.logger.Warn("assistant request failed, using offline reply", "error", err)
		}
		return Fallback(history), nil
	}

	if text == "" {
		return Fallback(history), nil
	}
	return text, nil
}

func (c *Client) ask(ctx context.Context, history []api.ChatTurn) (string, error) {
	if c.mode == ModeBackend {
		reply, err := c.remote.AI.Chat(ctx, api.ChatRequest{Messages: history})
		if err != nil {
			return "", err
		}
		return reply.Text(), nil
	}

	var reply api.ChatReply
	if err := c.remote.Post(ctx, "/chat", api.ChatRequest{Messages: history}, &reply); err != nil {
		return "", err
	}
	return reply.Text(), nil
}

// Unavailable reports whether a 404 has disabled remote calls.
func (c *Client) Unavailable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unavailable
}

// Reset re-enables remote calls after a 404.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unavailable = false
}
