// ABOUTME: Tests for the offline keyword replies
// ABOUTME: Checks each keyword family and that only the latest user turn counts

package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/content"
)

func userTurn(text string) api.ChatTurn {
	return api.ChatTurn{Role: RoleUser, Content: text}
}

func TestFallback_KeywordFamilies(t *testing.T) {
	replies := content.Default().Assistant

	tests := []struct {
		name string
		text string
		want string
	}{
		{"wifi", "meu wifi caiu", replies.Network},
		{"wi-fi uppercase", "Sem Wi-Fi no andar 3", replies.Network},
		{"rede", "problema na REDE", replies.Network},
		{"senha", "esqueci a senha", replies.Access},
		{"acesso", "sem acesso ao portal", replies.Access},
		{"login", "não consigo fazer login", replies.Access},
		{"impressora", "a impressora travou", replies.Printer},
		{"generic", "o monitor está piscando", replies.Generic},
		{"empty", "", replies.Generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fallback([]api.ChatTurn{userTurn(tt.text)})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFallback_NetworkRepliesWithSteps(t *testing.T) {
	got := Fallback([]api.ChatTurn{userTurn("wifi")})
	assert.Contains(t, got, "Vamos verificar sua conexão")
	assert.Contains(t, got, "1) Confirme se o Wi-Fi está ativo")
}

func TestFallback_NetworkWinsOverAccess(t *testing.T) {
	got := Fallback([]api.ChatTurn{userTurn("senha do wifi")})
	assert.Equal(t, content.Default().Assistant.Network, got)
}

func TestFallback_UsesLatestUserTurn(t *testing.T) {
	history := []api.ChatTurn{
		userTurn("impressora"),
		{Role: RoleAssistant, Content: "fale sobre a rede"},
		userTurn("esqueci minha senha"),
		{Role: RoleAssistant, Content: "wifi"},
	}
	assert.Equal(t, content.Default().Assistant.Access, Fallback(history))
}

func TestFallback_NoUserTurns(t *testing.T) {
	history := []api.ChatTurn{{Role: RoleAssistant, Content: "impressora"}}
	assert.Equal(t, content.Default().Assistant.Generic, Fallback(history))
	assert.Equal(t, content.Default().Assistant.Generic, Fallback(nil))
}
