// ABOUTME: Tests for the remote assistant client
// ABOUTME: Uses the fake backend to cover reply shapes, 404 memory, and failure fallbacks

package assistant

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/apitest"
	"github.com/2389/helpline/internal/content"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDirect, m)

	m, err = ParseMode("backend")
	require.NoError(t, err)
	assert.Equal(t, ModeBackend, m)

	_, err = ParseMode("openai")
	assert.Error(t, err)
}

func TestClient_NoRemoteAlwaysFallsBack(t *testing.T) {
	c := NewClient(nil, ModeDirect, nil)
	got, err := c.Reply(context.Background(), []api.ChatTurn{userTurn("impressora")})
	require.NoError(t, err)
	assert.Equal(t, content.Default().Assistant.Printer, got)

	c = NewClient(api.New(""), ModeDirect, nil)
	got, err = c.Reply(context.Background(), []api.ChatTurn{userTurn("impressora")})
	require.NoError(t, err)
	assert.Equal(t, content.Default().Assistant.Printer, got)
}

func TestClient_DirectReplyShapes(t *testing.T) {
	tests := []struct {
		name string
		body any
		want string
	}{
		{"message", map[string]any{"message": "  olá  "}, "olá"},
		{"reply", map[string]any{"reply": "resposta"}, "resposta"},
		{"content", map[string]any{"content": "conteúdo"}, "conteúdo"},
		{"choices", map[string]any{"choices": []any{
			map[string]any{"message": map[string]any{"content": "escolha"}},
		}}, "escolha"},
		{"empty object", map[string]any{}, content.Default().Assistant.Generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.New(t)
			srv.Handle(http.MethodPost, "/chat", apitest.JSON(http.StatusOK, tt.body))

			c := NewClient(api.New(srv.URL), ModeDirect, nil)
			got, err := c.Reply(context.Background(), []api.ChatTurn{userTurn("tela azul")})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_DirectSendsMessagesWithoutOrigin(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/chat", apitest.JSON(http.StatusOK, map[string]any{"reply": "ok"}))

	c := NewClient(api.New(srv.URL), ModeDirect, nil)
	_, err := c.Reply(context.Background(), []api.ChatTurn{
		{Role: RoleAssistant, Content: "oi"},
		userTurn("ajuda"),
	})
	require.NoError(t, err)

	calls := srv.CallsTo(http.MethodPost, "/chat")
	require.Len(t, calls, 1)
	msgs, ok := calls[0].Body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 2)
	assert.NotContains(t, calls[0].Body, "origin")
	assert.Empty(t, calls[0].Auth)
}

func TestClient_BackendModeUsesAIChat(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/ai/chat", apitest.JSON(http.StatusOK, map[string]any{"message": "via backend"}))

	c := NewClient(api.New(srv.URL), ModeBackend, nil)
	got, err := c.Reply(context.Background(), []api.ChatTurn{userTurn("oi")})
	require.NoError(t, err)
	assert.Equal(t, "via backend", got)

	calls := srv.CallsTo(http.MethodPost, "/ai/chat")
	require.Len(t, calls, 1)
	assert.Equal(t, "web", calls[0].Body["origin"])
}

func TestClient_NotFoundIsRememberedUntilReset(t *testing.T) {
	srv := apitest.New(t)
	// No /chat route: the fake backend answers 404.

	c := NewClient(api.New(srv.URL), ModeDirect, nil)
	history := []api.ChatTurn{userTurn("wifi")}
	ctx := context.Background()

	got, err := c.Reply(ctx, history)
	require.NoError(t, err)
	assert.Equal(t, content.Default().Assistant.Network, got)
	assert.True(t, c.Unavailable())

	_, err = c.Reply(ctx, history)
	require.NoError(t, err)
	assert.Len(t, srv.CallsTo(http.MethodPost, "/chat"), 1, "second turn must skip the remote call")

	c.Reset()
	assert.False(t, c.Unavailable())
	_, err = c.Reply(ctx, history)
	require.NoError(t, err)
	assert.Len(t, srv.CallsTo(http.MethodPost, "/chat"), 2)
}

func TestClient_ServerErrorFallsBackWithoutMemory(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/chat", apitest.JSON(http.StatusBadGateway, map[string]any{"error": "down"}))

	c := NewClient(api.New(srv.URL), ModeDirect, nil)
	got, err := c.Reply(context.Background(), []api.ChatTurn{userTurn("senha")})
	require.NoError(t, err)
	assert.Equal(t, content.Default().Assistant.Access, got)
	assert.False(t, c.Unavailable())
}

func TestClient_NonJSONReplyFallsBack(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/chat", apitest.Raw(http.StatusOK, "<html>oops</html>"))

	c := NewClient(api.New(srv.URL), ModeDirect, nil)
	got, err := c.Reply(context.Background(), []api.ChatTurn{userTurn("impressora")})
	require.NoError(t, err)
	assert.Equal(t, content.Default().Assistant.Printer, got)
}

func TestClient_UnreachableFallsBack(t *testing.T) {
	c := NewClient(api.New(apitest.UnreachableURL(t)), ModeDirect, nil)
	got, err := c.Reply(context.Background(), []api.ChatTurn{userTurn("rede")})
	require.NoError(t, err)
	assert.Equal(t, content.Default().Assistant.Network, got)
	assert.False(t, c.Unavailable())
}

func TestClient_CanceledContextIsReturned(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/chat", apitest.JSON(http.StatusOK, map[string]any{"reply": "tarde"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(api.New(srv.URL), ModeDirect, nil)
	_, err := c.Reply(ctx, []api.ChatTurn{userTurn("oi")})
	assert.ErrorIs(t, err, context.Canceled)
}
