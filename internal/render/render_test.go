// ABOUTME: Tests for block splitting, markdown parsing, bubbles, and chrome
// ABOUTME: Layout checks assert on plain text since tests run without a terminal

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/chat"
	"github.com/2389/helpline/internal/faq"
)

// --- Blocks ---

func TestBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Block
	}{
		{
			name: "single paragraph",
			in:   "Olá! Como posso ajudar?",
			want: []Block{{Kind: Paragraph, Text: "Olá! Como posso ajudar?"}},
		},
		{
			name: "lines join with spaces and blanks are skipped",
			in:   "Entendi: sem rede\n\n  Vamos tentar o básico.  ",
			want: []Block{{Kind: Paragraph, Text: "Entendi: sem rede Vamos tentar o básico."}},
		},
		{
			name: "plan layout",
			in:   "Entendi: wifi\nPasso inicial:\n1) Reinicie o roteador\n2) Teste outra rede\nGuarde o print.\nFuncionou?",
			want: []Block{
				{Kind: Paragraph, Text: "Entendi: wifi Passo inicial:"},
				{Kind: List, Ordered: true, Items: []string{"Reinicie o roteador", "Teste outra rede"}},
				{Kind: Paragraph, Text: "Guarde o print. Funcionou?"},
			},
		},
		{
			name: "list without space after marker",
			in:   "3)Verifique o cabo",
			want: []Block{{Kind: List, Ordered: true, Items: []string{"Verifique o cabo"}}},
		},
		{
			name: "bare marker is prose",
			in:   "1)",
			want: []Block{{Kind: Paragraph, Text: "1)"}},
		},
		{
			name: "dot markers are prose",
			in:   "1. primeiro",
			want: []Block{{Kind: Paragraph, Text: "1. primeiro"}},
		},
		{
			name: "whitespace only keeps the original text",
			in:   " \n ",
			want: []Block{{Kind: Paragraph, Text: " \n "}},
		},
		{
			name: "empty",
			in:   "",
			want: []Block{{Kind: Paragraph, Text: ""}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Blocks(tt.in))
		})
	}
}

// --- Markdown ---

func TestMarkdown_ParenListAfterParagraph(t *testing.T) {
	src := "Checklist rápido de rede:\n1) Confirme o Wi-Fi ligado.\n2) Reinicie o roteador.\n3) Abra um chamado."

	blocks := Markdown(src)

	require.Len(t, blocks, 2)
	assert.Equal(t, Block{Kind: Paragraph, Text: "Checklist rápido de rede:"}, blocks[0])
	assert.Equal(t, Block{
		Kind:    List,
		Ordered: true,
		Items:   []string{"Confirme o Wi-Fi ligado.", "Reinicie o roteador.", "Abra um chamado."},
	}, blocks[1])
}

func TestMarkdown_FlattensInlineMarkup(t *testing.T) {
	blocks := Markdown("# Acesso\n\nUse **Ctrl+Alt+Del** e\nescolha *Alterar senha*.\n\n- VPN\n- Proxy")

	require.Len(t, blocks, 3)
	assert.Equal(t, Block{Kind: Paragraph, Text: "Acesso"}, blocks[0])
	assert.Equal(t, Block{Kind: Paragraph, Text: "Use Ctrl+Alt+Del e escolha Alterar senha."}, blocks[1])
	assert.Equal(t, Block{Kind: List, Items: []string{"VPN", "Proxy"}}, blocks[2])
}

func TestMarkdown_CodeAndQuotes(t *testing.T) {
	blocks := Markdown("> Atenção\n\n```\nipconfig /all\nping 8.8.8.8\n```")

	require.Len(t, blocks, 2)
	assert.Equal(t, "Atenção", blocks[0].Text)
	assert.Equal(t, "ipconfig /all\nping 8.8.8.8", blocks[1].Text)
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Nil(t, Markdown(""))
	assert.Nil(t, Markdown("  \n"))
}

// --- Layout and bubbles ---

func TestLayout(t *testing.T) {
	out := Layout([]Block{
		{Kind: Paragraph, Text: "Passos:"},
		{Kind: List, Ordered: true, Items: []string{"a", "b"}},
		{Kind: List, Items: []string{"c"}},
	})
	assert.Equal(t, "Passos:\n\n1. a\n2. b\n\n• c", out)
}

func TestBubble_Alignment(t *testing.T) {
	user := Bubble(chat.Message{Sender: chat.SenderUser, Text: "Sem internet"}, 80)
	bot := Bubble(chat.Message{Sender: chat.SenderBot, Text: "Vamos verificar"}, 80)
	system := Bubble(chat.Message{Sender: chat.SenderSystem, Text: "Chamado aberto"}, 80)

	assert.Contains(t, user, "Sem internet")
	assert.Contains(t, bot, "Vamos verificar")
	assert.Contains(t, system, "Chamado aberto")

	firstLine := func(s string) string { return strings.SplitN(s, "\n", 2)[0] }
	assert.True(t, strings.HasPrefix(firstLine(user), " "), "user bubble is pushed right")
	assert.True(t, strings.HasPrefix(firstLine(system), " "), "system bubble is centered")
	assert.False(t, strings.HasPrefix(firstLine(bot), " "), "bot bubble is flush left")
}

func TestBubble_RendersNumberedSteps(t *testing.T) {
	out := Bubble(chat.Message{Sender: chat.SenderBot, Text: "Tente:\n1) Reinicie\n2) Teste"}, 80)

	assert.Contains(t, out, "Tente:")
	assert.Contains(t, out, "1. Reinicie")
	assert.Contains(t, out, "2. Teste")
}

func TestTheme_Tone(t *testing.T) {
	th := DefaultTheme
	assert.Equal(t, th.QuickPrompt, th.tone(chat.Message{Sender: chat.SenderBot, Kind: chat.KindQuickPrompt}))
	assert.Equal(t, th.CategoryPrompt, th.tone(chat.Message{Sender: chat.SenderBot, Kind: chat.KindCategoryPrompt}))
	assert.Equal(t, th.User, th.tone(chat.Message{Sender: chat.SenderUser}))
	assert.Equal(t, th.System, th.tone(chat.Message{Sender: chat.SenderSystem}))
	assert.Equal(t, th.Bot, th.tone(chat.Message{Sender: chat.SenderBot}))
}

// --- Chrome ---

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Olá, Usuário", Greeting(nil))
	assert.Equal(t, "Olá, Usuário", Greeting(&api.User{Email: "x@y.z"}))
	assert.Equal(t, "Olá, Carla", Greeting(&api.User{Name: "Carla"}))
	assert.Contains(t, TopBar(&api.User{Name: "Carla"}, 40), "Olá, Carla")
}

func TestSidebar(t *testing.T) {
	labels := func(items []NavItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Label
		}
		return out
	}

	assert.Equal(t, []string{"Chat", "FAQ"}, labels(Sidebar(false)))
	assert.Equal(t,
		[]string{"Chat", "FAQ", "Admin • Tickets", "Admin • Users", "Admin • Reports"},
		labels(Sidebar(true)))

	view := SidebarView(true, "faq")
	assert.Contains(t, view, "› FAQ")
	assert.Contains(t, view, "  Chat")
	assert.NotContains(t, SidebarView(false, "chat"), "Admin")
}

func TestArticle(t *testing.T) {
	out := Article(faq.Article{
		Title:       "Sem acesso à rede",
		Category:    "Rede",
		Glyph:       "🌐",
		LastUpdated: "2025-01-10",
		Content:     "Checklist:\n1) Reinicie o roteador.",
	}, 80)

	assert.Contains(t, out, "Sem acesso à rede")
	assert.Contains(t, out, "Rede • 2025-01-10")
	assert.Contains(t, out, "1. Reinicie o roteador.")
}

func TestArticle_IconFromCategoryRendersGlyph(t *testing.T) {
	out := Article(faq.Normalize(api.Article{Title: "Como configurar a VPN", Category: "Rede"}), 80)
	assert.Contains(t, out, "📶 Como configurar a VPN")
	assert.NotContains(t, out, "Rede Como")

	named := Article(faq.Normalize(api.Article{Title: "Senha expirada", Category: "Rede", Icon: "Acesso"}), 80)
	assert.Contains(t, named, "🔒 Senha expirada")

	unknown := Article(faq.Normalize(api.Article{Title: "Outro", Category: "Desconhecida"}), 80)
	assert.Contains(t, unknown, "🖥 Outro")
}
