// ABOUTME: Bubble Tea chat screen: transcript viewport, status line, and input
// ABOUTME: Slash commands drive consent, categories, quick replies, and feedback

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/chat"
	"github.com/2389/helpline/internal/content"
	"github.com/2389/helpline/internal/render"
)

const commandHelp = "/categoria N • /r N • /sim • /nao • /humano • /limpar • /sair"

const busyNotice = "Aguarde a resposta anterior."

type actionKind int

const (
	actionNone actionKind = iota
	actionAccept
	actionCategory
	actionQuick
	actionText
	actionResolved
	actionUnresolved
	actionHuman
	actionClear
	actionHelp
	actionQuit
	actionInvalid
)

// action is one parsed line of input.
type action struct {
	kind actionKind
	arg  string
}

// parseInput maps a line of input to an action for the current state.
func parseInput(input string, tbl *content.Table, st chat.State) action {
	text := strings.TrimSpace(input)
	if text == "" {
		return action{kind: actionNone}
	}

	fields := strings.Fields(text)
	verb := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(text, fields[0]))

	switch verb {
	case "/sair":
		return action{kind: actionQuit}
	case "/ajuda":
		return action{kind: actionHelp}
	case "/limpar":
		return action{kind: actionClear}
	}

	if !st.Accepted {
		return action{kind: actionAccept}
	}

	switch verb {
	case "/sim":
		return action{kind: actionResolved}
	case "/nao", "/não":
		return action{kind: actionUnresolved}
	case "/humano":
		return action{kind: actionHuman}
	case "/categoria":
		if name, ok := pick(tbl.CategoryNames(), rest); ok {
			return action{kind: actionCategory, arg: name}
		}
		return action{kind: actionInvalid, arg: "Categoria desconhecida. Use /categoria N."}
	case "/r":
		if label, ok := pick(tbl.Messages.QuickReplies, rest); ok {
			return action{kind: actionQuick, arg: label}
		}
		return action{kind: actionInvalid, arg: "Resposta rápida desconhecida. Use /r N."}
	}

	if strings.HasPrefix(verb, "/") {
		return action{kind: actionInvalid, arg: "Comando desconhecido. " + commandHelp}
	}
	if st.Category == "" {
		if name, ok := pick(tbl.CategoryNames(), text); ok {
			return action{kind: actionCategory, arg: name}
		}
	}
	return action{kind: actionText, arg: text}
}

// pick resolves a 1-based index or an exact (case-insensitive) name.
func pick(options []string, choice string) (string, bool) {
	if choice == "" {
		return "", false
	}
	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	for _, o := range options {
		if strings.EqualFold(o, choice) {
			return o, true
		}
	}
	return "", false
}

type replyMsg struct {
	res chat.Result
	err error
}

type escalatedMsg struct {
	protocol string
	err      error
}

type chatModel struct {
	ctx  context.Context
	flow *chat.Flow
	user *api.User

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	width    int
	height   int
	ready    bool
	notice   string
	rendered string
}

func newChatModel(ctx context.Context, flow *chat.Flow, user *api.User) chatModel {
	in := textinput.New()
	in.Placeholder = "Descreva o problema"
	in.Prompt = "› "
	in.Focus()
	in.CharLimit = 2000
	in.Width = defaultWidth - 4

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(render.DefaultTheme.Accent)

	return chatModel{
		ctx:   ctx,
		flow:  flow,
		user:  user,
		input: in,
		spin:  s,
		width: defaultWidth,
	}
}

func runChatTUI(ctx context.Context, flow *chat.Flow, user *api.User) error {
	p := tea.NewProgram(newChatModel(ctx, flow, user), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running chat: %w", err)
	}
	return nil
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		h := max(msg.Height-m.chromeHeight(), 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		m.rendered = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "enter":
			line := m.input.Value()
			m.input.SetValue("")
			cmd := m.handle(parseInput(line, m.flow.Content(), m.flow.Snapshot()))
			m.refresh()
			return m, cmd
		}

	case replyMsg:
		m.notice = noticeFor(msg.err)

	case escalatedMsg:
		m.notice = noticeFor(msg.err)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.refresh()
	return m, tea.Batch(cmds...)
}

// handle applies an action. Calls that may reach the network run as commands.
func (m *chatModel) handle(a action) tea.Cmd {
	m.notice = ""
	ctx, flow := m.ctx, m.flow

	switch a.kind {
	case actionQuit:
		return tea.Quit
	case actionHelp:
		m.notice = commandHelp
	case actionInvalid:
		m.notice = a.arg
	case actionAccept:
		_ = flow.Accept(ctx)
	case actionCategory:
		m.notice = noticeFor(flow.SelectCategory(ctx, a.arg))
	case actionClear:
		m.notice = noticeFor(flow.Clear(ctx))
	case actionResolved:
		_, err := flow.GiveFeedback(ctx, true)
		m.notice = noticeFor(err)
	case actionText:
		return func() tea.Msg {
			res, err := flow.SubmitMessage(ctx, a.arg)
			return replyMsg{res: res, err: err}
		}
	case actionQuick:
		return func() tea.Msg {
			res, err := flow.QuickReply(ctx, a.arg)
			return replyMsg{res: res, err: err}
		}
	case actionUnresolved:
		return func() tea.Msg {
			protocol, err := flow.GiveFeedback(ctx, false)
			return escalatedMsg{protocol: protocol, err: err}
		}
	case actionHuman:
		return func() tea.Msg {
			protocol, err := flow.Escalate(ctx)
			return escalatedMsg{protocol: protocol, err: err}
		}
	}
	return nil
}

// noticeFor turns a flow error into the status line text. Ignored actions
// show nothing.
func noticeFor(err error) string {
	switch {
	case err == nil, errors.Is(err, chat.ErrIgnored):
		return ""
	case errors.Is(err, chat.ErrBusy):
		return busyNotice
	default:
		return err.Error()
	}
}

// refresh re-renders the transcript when it changed and keeps the newest
// message in view.
func (m *chatModel) refresh() {
	if !m.ready {
		return
	}
	out := transcript(m.flow.Snapshot().Messages, m.viewport.Width)
	if out == m.rendered {
		return
	}
	m.rendered = out
	m.viewport.SetContent(out)
	m.viewport.GotoBottom()
}

func transcript(msgs []chat.Message, width int) string {
	parts := make([]string, len(msgs))
	for i, msg := range msgs {
		parts[i] = render.Bubble(msg, width)
	}
	return strings.Join(parts, "\n")
}

func (m chatModel) header() string {
	return render.TopBar(m.user, m.width)
}

func (m chatModel) chromeHeight() int {
	// header, status line, input
	return lipgloss.Height(m.header()) + 2
}

// statusLine says what the user can do next.
func (m chatModel) statusLine() string {
	faint := lipgloss.NewStyle().Foreground(render.DefaultTheme.FaintText)
	st := m.flow.Snapshot()

	switch {
	case st.Busy:
		return m.spin.View() + faint.Render(" digitando...")
	case m.notice != "":
		return faint.Render(m.notice)
	}
	return faint.Render(hint(m.flow.Content(), st))
}

func hint(tbl *content.Table, st chat.State) string {
	switch {
	case !st.Accepted:
		return "Enter para aceitar e começar • /sair"
	case st.Escalated:
		return "Chamado " + orDash(st.TicketID) + " aberto. /limpar para recomeçar."
	case st.PendingFeedbackID != "":
		return "Resolveu? /sim ou /nao • /humano"
	case st.Category == "":
		labels := make([]string, 0, len(tbl.Categories))
		for _, name := range tbl.CategoryNames() {
			labels = append(labels, tbl.CategoryLabel(name))
		}
		return "Categorias: " + strings.Join(labels, " | ")
	default:
		return commandHelp
	}
}

func (m chatModel) View() string {
	if !m.ready {
		return "\n  Carregando..."
	}
	return strings.Join([]string{
		m.header(),
		m.viewport.View(),
		m.statusLine(),
		m.input.View(),
	}, "\n")
}
