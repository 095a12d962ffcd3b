// ABOUTME: Chatbot state machine: consent, triage, guided plans, assistant replies
// ABOUTME: Persists the transcript after every change and restores it on startup

package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/content"
	"github.com/2389/helpline/internal/store"
)

// ErrIgnored is returned when an action does not apply in the current state,
// such as an empty message or a message before consent.
var ErrIgnored = errors.New("action ignored in current chat state")

// ErrBusy is returned when a message arrives while another is being processed.
var ErrBusy = errors.New("chat is busy processing a previous message")

// ErrUnknownCategory is returned by SelectCategory for names not in the content table.
var ErrUnknownCategory = errors.New("unknown category")

// TicketCreator opens tickets. *api.TicketsAPI satisfies it.
type TicketCreator interface {
	Create(ctx context.Context, in api.TicketInput) (*api.Ticket, error)
}

// TicketMessenger attaches messages to tickets. *api.TicketMessagesAPI satisfies it.
type TicketMessenger interface {
	Add(ctx context.Context, ticketID string, in api.TicketMessageInput) error
}

// Replier answers free-form turns. *assistant.Client satisfies it.
type Replier interface {
	Reply(ctx context.Context, history []api.ChatTurn) (string, error)
}

// Deps are the flow's collaborators. Tickets, Assistant, and Store are required.
type Deps struct {
	Tickets   TicketCreator
	Messages  TicketMessenger
	Assistant Replier
	Store     store.Store
	Content   *content.Table
	Logger    *slog.Logger
}

// Option configures a Flow.
type Option func(*Flow)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) {
		f.now = now
	}
}

// WithSleep replaces the pacing sleep.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Flow) {
		f.sleep = sleep
	}
}

// WithPacing replaces DefaultPacing.
func WithPacing(p Pacing) Option {
	return func(f *Flow) {
		f.pacing = p
	}
}

// Source says where a reply came from.
type Source string

const (
	SourcePlan      Source = "plan"
	SourceAssistant Source = "assistant"
	SourceFailure   Source = "failure"
)

// Result describes the outcome of SubmitMessage.
type Result struct {
	// Reply is the bot message produced for the turn.
	Reply Message
	// Source is where the reply came from.
	Source Source
	// Suppressed is true when the reply repeated the last bot message and
	// was not appended.
	Suppressed bool
}

// State is a point-in-time copy of the flow.
type State struct {
	Messages          []Message
	Accepted          bool
	Category          string
	PendingFeedbackID string
	FailCount         int
	PlanIndex         int
	Escalated         bool
	TicketID          string
	Busy              bool
	Typing            bool
}

// Flow is the chatbot conversation controller.
type Flow struct {
	tickets   TicketCreator
	messages  TicketMessenger
	assistant Replier
	store     store.Store
	content   *content.Table
	logger    *slog.Logger
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
	pacing    Pacing

	mu           sync.Mutex
	transcript   []Message
	accepted     bool
	category     string
	pending      string
	failCount    int
	planIndex    int
	escalated    bool
	escalating   bool
	ticketID     string
	busy         bool
	typing       bool
	lastUserText string
}

// New creates a Flow and restores any transcript saved in deps.Store.
func New(ctx context.Context, deps Deps, opts ...Option) (*Flow, error) {
	if deps.Tickets == nil {
		return nil, errors.New("chat: tickets dependency is required")
	}
	if deps.Assistant == nil {
		return nil, errors.New("chat: assistant dependency is required")
	}
	if deps.Store == nil {
		return nil, errors.New("chat: store dependency is required")
	}

	f := &Flow{
		tickets:   deps.Tickets,
		messages:  deps.Messages,
		assistant: deps.Assistant,
		store:     deps.Store,
		content:   deps.Content,
		logger:    deps.Logger,
		now:       time.Now,
		sleep:     sleepContext,
		pacing:    DefaultPacing,
	}
	if f.content == nil {
		f.content = content.Default()
	}
	if f.logger == nil {
		f.logger = slog.Default().With("component", "chat")
	}
	for _, opt := range opts {
		opt(f)
	}

	f.transcript = []Message{f.welcome()}
	if err := f.restore(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Flow) welcome() Message {
	return Message{ID: WelcomeID, Sender: SenderBot, Text: f.content.Messages.Welcome}
}

func (f *Flow) restore(ctx context.Context) error {
	saved, err := store.GetOrEmpty(ctx, f.store, store.KeyChatHistory)
	if err != nil {
		return fmt.Errorf("loading chat history: %w", err)
	}
	if saved == "" {
		return nil
	}

	var msgs []Message
	if err := json.Unmarshal([]byte(saved), &msgs); err != nil {
		f.logger.Warn("ignoring unreadable chat history", "error", err)
		return nil
	}
	if len(msgs) == 0 {
		return nil
	}

	f.transcript = msgs
	f.planIndex = 0
	for _, m := range msgs {
		if m.Sender == SenderUser {
			f.accepted = true
			break
		}
	}
	f.logger.Debug("restored chat history", "messages", len(msgs), "accepted", f.accepted)
	return nil
}

// Content returns the content table the flow speaks from.
func (f *Flow) Content() *content.Table {
	return f.content
}

// Snapshot returns a copy of the current state.
func (f *Flow) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	msgs := make([]Message, len(f.transcript))
	copy(msgs, f.transcript)
	return State{
		Messages:          msgs,
		Accepted:          f.accepted,
		Category:          f.category,
		PendingFeedbackID: f.pending,
		FailCount:         f.failCount,
		PlanIndex:         f.planIndex,
		Escalated:         f.escalated,
		TicketID:          f.ticketID,
		Busy:              f.busy || f.escalating,
		Typing:            f.typing,
	}
}

// Accept records the user's consent. It applies once.
func (f *Flow) Accept(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.accepted {
		return ErrIgnored
	}
	f.accepted = true
	f.planIndex = 0

	m := f.content.Messages
	categoryPrompt := newMessage(SenderBot, m.CategoryPrompt, "cat-prompt")
	categoryPrompt.Kind = KindCategoryPrompt
	quickPrompt := newMessage(SenderBot, m.QuickPrompt, "quick-prompt")
	quickPrompt.Kind = KindQuickPrompt

	f.appendLocked(ctx,
		newMessage(SenderUser, m.Consent, "confirm"),
		newMessage(SenderBot, m.Intro, "intro"),
		categoryPrompt,
		quickPrompt,
	)
	return nil
}

// SelectCategory focuses triage on a category. Selecting the active category
// again changes nothing.
func (f *Flow) SelectCategory(ctx context.Context, name string) error {
	if !f.content.HasCategory(name) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.accepted || f.category == name {
		return ErrIgnored
	}
	f.category = name
	f.failCount = 0
	f.planIndex = 0
	f.pending = ""

	c := f.content.Category(name)
	f.appendLocked(ctx,
		newMessage(SenderBot, f.content.CategoryGuide(name), "category-info"),
		newMessage(SenderBot, c.Question, "category-question"),
	)
	return nil
}

// QuickReply sends one of the canned quick-reply labels as a user message.
func (f *Flow) QuickReply(ctx context.Context, label string) (Result, error) {
	return f.SubmitMessage(ctx, label)
}

// SubmitMessage appends the user's message and answers it with the next
// guided plan for the active category, or with the assistant once the plans
// are used up. Assistant failures become a retry-later message, not an error.
func (f *Flow) SubmitMessage(ctx context.Context, text string) (Result, error) {
	trimmed := strings.TrimSpace(text)

	f.mu.Lock()
	if trimmed == "" || !f.accepted || f.escalated {
		f.mu.Unlock()
		return Result{}, ErrIgnored
	}
	if f.busy || f.escalating {
		f.mu.Unlock()
		return Result{}, ErrBusy
	}
	f.busy = true
	f.typing = true
	f.pending = ""
	f.lastUserText = trimmed
	f.appendLocked(ctx, newMessage(SenderUser, trimmed, "user"))

	started := f.now()
	plan, hasPlan := f.content.ComposePlan(f.category, trimmed, f.planIndex)
	var history []api.ChatTurn
	if !hasPlan {
		history = turns(f.transcript)
	}
	f.mu.Unlock()

	if hasPlan {
		return f.finishPlan(ctx, plan, started)
	}
	return f.finishAssistant(ctx, history, started)
}

func (f *Flow) finishPlan(ctx context.Context, plan string, started time.Time) (Result, error) {
	if err := f.pace(ctx, plan, started); err != nil {
		return f.fail(ctx, err), nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	reply := newMessage(SenderBot, plan, "bot")
	f.appendLocked(ctx, reply)
	f.pending = reply.ID
	f.planIndex++
	f.busy = false
	f.typing = false
	return Result{Reply: reply, Source: SourcePlan}, nil
}

func (f *Flow) finishAssistant(ctx context.Context, history []api.ChatTurn, started time.Time) (Result, error) {
	text, err := f.assistant.Reply(ctx, history)
	if err != nil {
		return f.fail(ctx, err), nil
	}
	if strings.TrimSpace(text) == "" {
		text = f.content.Messages.Clarify
	}
	if err := f.pace(ctx, text, started); err != nil {
		return f.fail(ctx, err), nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.busy = false
	f.typing = false
	reply := newMessage(SenderBot, text, "bot")

	if last, ok := f.lastBotLocked(); ok && strings.TrimSpace(last.Text) == strings.TrimSpace(text) {
		f.logger.Debug("suppressed duplicate assistant reply")
		return Result{Reply: reply, Source: SourceAssistant, Suppressed: true}, nil
	}
	f.appendLocked(ctx, reply)
	f.pending = reply.ID
	return Result{Reply: reply, Source: SourceAssistant}, nil
}

// fail appends the generic retry-later message and ends the turn.
func (f *Flow) fail(ctx context.Context, cause error) Result {
	f.logger.Warn("chat reply failed", "error", cause)

	f.mu.Lock()
	defer f.mu.Unlock()

	reply := newMessage(SenderBot, f.content.Messages.Failure, "err")
	f.appendLocked(ctx, reply)
	f.busy = false
	f.typing = false
	return Result{Reply: reply, Source: SourceFailure}
}

// pace waits until the reply's typing delay has passed since started.
func (f *Flow) pace(ctx context.Context, text string, started time.Time) error {
	remaining := f.pacing.Delay(text) - f.now().Sub(started)
	if remaining <= 0 {
		return nil
	}
	return f.sleep(ctx, remaining)
}

// GiveFeedback answers the "resolved?" question for the last reply. A
// resolved answer closes the loop; an unresolved one escalates right away
// and returns the ticket protocol. It returns ErrBusy while a reply or an
// escalation is in flight.
func (f *Flow) GiveFeedback(ctx context.Context, resolved bool) (string, error) {
	f.mu.Lock()
	if !f.accepted || f.escalated {
		f.mu.Unlock()
		return "", ErrIgnored
	}
	if f.busy || f.escalating {
		f.mu.Unlock()
		return "", ErrBusy
	}
	f.pending = ""
	f.planIndex = 0

	if resolved {
		f.failCount = 0
		f.appendLocked(ctx, newMessage(SenderBot, f.content.Messages.Resolved, "ok"))
		f.mu.Unlock()
		return "", nil
	}

	f.failCount++
	req := f.beginEscalationLocked()
	f.mu.Unlock()
	return f.escalate(ctx, req), nil
}

// Clear drops the saved transcript and restarts the conversation at the
// welcome message. It also lets the assistant retry a remote endpoint that
// previously answered 404.
func (f *Flow) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy || f.escalating {
		return ErrBusy
	}
	if err := f.store.Delete(ctx, store.KeyChatHistory); err != nil {
		return fmt.Errorf("clearing chat history: %w", err)
	}

	f.transcript = []Message{f.welcome()}
	f.accepted = false
	f.category = ""
	f.pending = ""
	f.failCount = 0
	f.planIndex = 0
	f.escalated = false
	f.ticketID = ""
	f.typing = false
	f.lastUserText = ""

	if r, ok := f.assistant.(interface{ Reset() }); ok {
		r.Reset()
	}
	return nil
}

func (f *Flow) lastBotLocked() (Message, bool) {
	for i := len(f.transcript) - 1; i >= 0; i-- {
		if f.transcript[i].Sender == SenderBot {
			return f.transcript[i], true
		}
	}
	return Message{}, false
}

// appendLocked adds msgs to the transcript and saves it. Callers hold f.mu.
func (f *Flow) appendLocked(ctx context.Context, msgs ...Message) {
	f.transcript = append(f.transcript, msgs...)
	f.saveLocked(ctx)
}

func (f *Flow) saveLocked(ctx context.Context) {
	data, err := json.Marshal(f.transcript)
	if err != nil {
		f.logger.Warn("encoding chat history", "error", err)
		return
	}
	// Saving must outlive a canceled request context.
	if err := f.store.Set(context.WithoutCancel(ctx), store.KeyChatHistory, string(data)); err != nil {
		f.logger.Warn("saving chat history", "error", err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
