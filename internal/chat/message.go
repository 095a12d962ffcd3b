// ABOUTME: Transcript message types and reply pacing for the chat flow
// ABOUTME: Messages serialize to the same JSON shape the web client stored

package chat

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/2389/helpline/internal/api"
)

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderBot    Sender = "bot"
	SenderSystem Sender = "system"
)

// Kind marks bot messages that carry interactive prompts.
type Kind string

const (
	KindCategoryPrompt Kind = "category-prompt"
	KindQuickPrompt    Kind = "quick-prompt"
)

// WelcomeID is the id of the first message of every conversation.
const WelcomeID = "w1"

// Message is one transcript entry.
type Message struct {
	ID     string `json:"id"`
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
	Kind   Kind   `json:"kind,omitempty"`
}

func newMessage(sender Sender, text, suffix string) Message {
	return Message{
		ID:     uuid.NewString() + "-" + suffix,
		Sender: sender,
		Text:   text,
	}
}

// turns maps the transcript to assistant chat turns. Everything the user did
// not write is sent as the assistant's side.
func turns(msgs []Message) []api.ChatTurn {
	out := make([]api.ChatTurn, len(msgs))
	for i, m := range msgs {
		role := "assistant"
		if m.Sender == SenderUser {
			role = "user"
		}
		out[i] = api.ChatTurn{Role: role, Content: m.Text}
	}
	return out
}

// Pacing controls the simulated typing delay before a reply appears.
type Pacing struct {
	Min     time.Duration
	Max     time.Duration
	PerChar time.Duration
}

// DefaultPacing is 18ms per character, clamped to [700ms, 2200ms].
var DefaultPacing = Pacing{
	Min:     700 * time.Millisecond,
	Max:     2200 * time.Millisecond,
	PerChar: 18 * time.Millisecond,
}

// Delay returns how long text should appear to take to type.
func (p Pacing) Delay(text string) time.Duration {
	d := time.Duration(utf8.RuneCountInString(text)) * p.PerChar
	if d > p.Max {
		d = p.Max
	}
	if d < p.Min {
		d = p.Min
	}
	return d
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
