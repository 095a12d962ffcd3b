// ABOUTME: Offline assistant replies chosen by keywords in the last user message
// ABOUTME: Covers network, access/password, and printer families plus a generic clarifier

package assistant

import (
	"strings"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/content"
)

// Roles used in chat turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	networkWords = []string{"wifi", "wi-fi", "rede"}
	accessWords  = []string{"senha", "acesso", "login"}
	printerWords = []string{"impressora"}
)

// Fallback returns a canned reply for the most recent user turn in history.
func Fallback(history []api.ChatTurn) string {
	return fallbackFrom(content.Default().Assistant, history)
}

func fallbackFrom(replies content.AssistantReplies, history []api.ChatTurn) string {
	text := strings.ToLower(lastUserText(history))

	switch {
	case containsAny(text, networkWords):
		return replies.Network
	case containsAny(text, accessWords):
		return replies.Access
	case containsAny(text, printerWords):
		return replies.Printer
	default:
		return replies.Generic
	}
}

func lastUserText(history []api.ChatTurn) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleUser {
			return history[i].Content
		}
	}
	return ""
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
