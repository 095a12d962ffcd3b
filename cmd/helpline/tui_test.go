// ABOUTME: Tests for chat input parsing, status hints, and the Bubble Tea model
// ABOUTME: The model runs a real flow over in-memory fakes with pacing disabled

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/chat"
	"github.com/2389/helpline/internal/content"
	"github.com/2389/helpline/internal/store"
)

type fakeTickets struct{ created []api.TicketInput }

func (f *fakeTickets) Create(_ context.Context, in api.TicketInput) (*api.Ticket, error) {
	f.created = append(f.created, in)
	return &api.Ticket{ID: "T-1"}, nil
}

type fakeAssistant struct{}

func (fakeAssistant) Reply(context.Context, []api.ChatTurn) (string, error) {
	return "Tente reiniciar.", nil
}

func newTestFlow(t *testing.T) (*chat.Flow, *fakeTickets) {
	t.Helper()
	tickets := &fakeTickets{}
	flow, err := chat.New(context.Background(), chat.Deps{
		Tickets:   tickets,
		Assistant: fakeAssistant{},
		Store:     store.NewMockStore(),
	}, chat.WithSleep(func(context.Context, time.Duration) error { return nil }))
	require.NoError(t, err)
	return flow, tickets
}

func TestParseInput(t *testing.T) {
	tbl := content.Default()
	fresh := chat.State{}
	accepted := chat.State{Accepted: true}
	triaging := chat.State{Accepted: true, Category: "Rede"}

	tests := []struct {
		name  string
		input string
		state chat.State
		want  action
	}{
		{"blank", "   ", accepted, action{kind: actionNone}},
		{"any text accepts first", "oi", fresh, action{kind: actionAccept}},
		{"quit before consent", "/sair", fresh, action{kind: actionQuit}},
		{"clear", "/LIMPAR", accepted, action{kind: actionClear}},
		{"help", "/ajuda", fresh, action{kind: actionHelp}},
		{"category by number", "/categoria 3", accepted, action{kind: actionCategory, arg: "Rede"}},
		{"category by name", "/categoria impressora", triaging, action{kind: actionCategory, arg: "Impressora"}},
		{"bare number picks category", "1", accepted, action{kind: actionCategory, arg: "Hardware"}},
		{"bare number is text once triaging", "1", triaging, action{kind: actionText, arg: "1"}},
		{"out of range category", "/categoria 99", accepted, action{kind: actionInvalid, arg: "Categoria desconhecida. Use /categoria N."}},
		{"quick reply", "/r 1", accepted, action{kind: actionQuick, arg: tbl.Messages.QuickReplies[0]}},
		{"resolved", "/sim", triaging, action{kind: actionResolved}},
		{"unresolved", "/não", triaging, action{kind: actionUnresolved}},
		{"human", "/humano", triaging, action{kind: actionHuman}},
		{"text", "  sem wifi  ", triaging, action{kind: actionText, arg: "sem wifi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseInput(tt.input, tbl, tt.state))
		})
	}

	unknown := parseInput("/foo", tbl, accepted)
	assert.Equal(t, actionInvalid, unknown.kind)
	assert.Contains(t, unknown.arg, commandHelp)
}

func TestPick(t *testing.T) {
	opts := []string{"Rede", "Outros"}

	got, ok := pick(opts, "2")
	assert.True(t, ok)
	assert.Equal(t, "Outros", got)

	_, ok = pick(opts, "0")
	assert.False(t, ok)
	_, ok = pick(opts, "")
	assert.False(t, ok)
	_, ok = pick(opts, "Hardware")
	assert.False(t, ok)
}

func TestHint(t *testing.T) {
	tbl := content.Default()

	assert.Contains(t, hint(tbl, chat.State{}), "Enter para aceitar")
	assert.Contains(t, hint(tbl, chat.State{Accepted: true}), "3 - Rede")
	assert.Contains(t, hint(tbl, chat.State{Accepted: true, Category: "Rede", PendingFeedbackID: "m1"}), "/sim")
	assert.Equal(t, "Chamado T-9 aberto. /limpar para recomeçar.",
		hint(tbl, chat.State{Accepted: true, Escalated: true, TicketID: "T-9"}))
	assert.Equal(t, commandHelp, hint(tbl, chat.State{Accepted: true, Category: "Rede"}))
}

func enter(t *testing.T, m chatModel, line string) (chatModel, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(chatModel), cmd
}

func TestChatModel_Conversation(t *testing.T) {
	flow, tickets := newTestFlow(t)
	m := newChatModel(context.Background(), flow, nil)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(chatModel)
	require.True(t, m.ready)
	assert.Contains(t, m.View(), "Olá, Usuário")

	m, cmd := enter(t, m, "ok")
	assert.Nil(t, cmd)
	assert.True(t, flow.Snapshot().Accepted)

	m, _ = enter(t, m, "3")
	assert.Equal(t, "Rede", flow.Snapshot().Category)

	m, cmd = enter(t, m, "sem wifi no andar 2")
	require.NotNil(t, cmd)
	reply, ok := cmd().(replyMsg)
	require.True(t, ok)
	require.NoError(t, reply.err)
	assert.Equal(t, chat.SourcePlan, reply.res.Source)

	next, _ = m.Update(reply)
	m = next.(chatModel)
	assert.Contains(t, m.statusLine(), "Resolveu?")
	assert.Contains(t, m.rendered, "sem wifi no andar 2")

	m, cmd = enter(t, m, "/nao")
	require.NotNil(t, cmd)
	esc, ok := cmd().(escalatedMsg)
	require.True(t, ok)
	assert.Equal(t, "T-1", esc.protocol)
	require.Len(t, tickets.created, 1)
	assert.Equal(t, "Rede", tickets.created[0].Category)

	next, _ = m.Update(esc)
	m = next.(chatModel)
	assert.True(t, flow.Snapshot().Escalated)
	assert.Contains(t, m.statusLine(), "Chamado T-1 aberto")

	m, _ = enter(t, m, "/limpar")
	assert.False(t, flow.Snapshot().Accepted)
	assert.Len(t, flow.Snapshot().Messages, 1)
}

func TestChatModel_InvalidCommandShowsNotice(t *testing.T) {
	flow, _ := newTestFlow(t)
	m := newChatModel(context.Background(), flow, &api.User{Name: "Ana"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(chatModel)

	m, _ = enter(t, m, "ok")
	m, cmd := enter(t, m, "/categoria 42")

	assert.Nil(t, cmd)
	assert.Contains(t, m.statusLine(), "Categoria desconhecida")
	assert.Contains(t, m.View(), "Olá, Ana")
}

func TestChatModel_QuitCommand(t *testing.T) {
	flow, _ := newTestFlow(t)
	m := newChatModel(context.Background(), flow, nil)

	_, cmd := enter(t, m, "/sair")
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestNoticeFor(t *testing.T) {
	assert.Empty(t, noticeFor(nil))
	assert.Empty(t, noticeFor(chat.ErrIgnored))
	assert.Equal(t, busyNotice, noticeFor(chat.ErrBusy))
	assert.Equal(t, busyNotice, noticeFor(fmt.Errorf("escalating: %w", chat.ErrBusy)))
	assert.Equal(t, "boom", noticeFor(errors.New("boom")))
}

func TestChatModel_EscalateWhileBusyShowsNotice(t *testing.T) {
	flow, _ := newTestFlow(t)
	m := newChatModel(context.Background(), flow, nil)

	next, _ := m.Update(escalatedMsg{err: chat.ErrBusy})
	m = next.(chatModel)
	assert.Equal(t, busyNotice, m.notice)
}

func TestTranscript(t *testing.T) {
	out := transcript([]chat.Message{
		{Sender: chat.SenderBot, Text: "Olá"},
		{Sender: chat.SenderUser, Text: "Oi"},
	}, 60)
	assert.Contains(t, out, "Olá")
	assert.Contains(t, out, "Oi")
	assert.True(t, strings.Index(out, "Olá") < strings.Index(out, "Oi"))
}
