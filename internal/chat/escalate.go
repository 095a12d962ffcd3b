// ABOUTME: Hands the conversation to a human analyst by opening a ticket
// ABOUTME: Never fails visibly: a backend error yields a provisional HL-<millis> protocol

package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/content"
)

const (
	maxTitleRunes   = 120
	maxHistoryRunes = 8000

	// PriorityHigh is the priority of every escalated ticket.
	PriorityHigh = "high"
)

// Escalate opens a ticket for the conversation and returns its protocol.
// It runs at most once per conversation; later calls return the protocol of
// the first. When the ticket cannot be created, the protocol is a local
// provisional one and the conversation is still handed off, so creation
// failures never surface as errors. Escalate returns ErrBusy without doing
// anything while a reply or the first escalation is in flight.
func (f *Flow) Escalate(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.escalated {
		id := f.ticketID
		f.mu.Unlock()
		return id, nil
	}
	if f.busy || f.escalating {
		f.mu.Unlock()
		return "", ErrBusy
	}
	req := f.beginEscalationLocked()
	f.mu.Unlock()

	return f.escalate(ctx, req), nil
}

// escalation is the ticket request captured when an escalation starts.
type escalation struct {
	category string
	title    string
	history  string
	lastUser string
}

// beginEscalationLocked claims the escalation and snapshots what the ticket
// needs. The caller holds f.mu and has checked that nothing is in flight.
func (f *Flow) beginEscalationLocked() escalation {
	f.escalating = true
	f.pending = ""
	f.planIndex = 0

	category := f.category
	if category == "" {
		category = content.Outros
	}
	title := f.lastUserText
	if title == "" {
		title = f.content.Messages.DefaultTitle
	}
	return escalation{
		category: category,
		title:    title,
		history:  f.historyDumpLocked(),
		lastUser: f.lastUserText,
	}
}

func (f *Flow) escalate(ctx context.Context, req escalation) string {
	f.logger.Info("escalating chat to a ticket", "category", req.category)

	ticket, err := f.tickets.Create(ctx, api.TicketInput{
		Title:       truncate(req.title, maxTitleRunes),
		Description: f.content.Messages.SummaryHeader + "\n" + req.history,
		Category:    req.category,
		Priority:    PriorityHigh,
	})
	if err != nil {
		return f.provisional(ctx, err)
	}

	var id string
	if ticket != nil {
		id = ticket.Identifier()
	}

	f.mu.Lock()
	f.ticketID = id
	f.escalated = true
	f.mu.Unlock()

	f.attachHistory(ctx, id, req.history, req.lastUser)

	protocol := id
	if protocol == "" {
		protocol = f.content.Messages.PendingProtocol
	}
	m := f.content.Messages

	f.mu.Lock()
	defer f.mu.Unlock()
	f.appendLocked(ctx,
		newMessage(SenderSystem, fmt.Sprintf(m.Escalated, req.category, protocol), "sys1"),
		newMessage(SenderBot, m.Handoff, "sys2"),
	)
	f.escalating = false
	f.logger.Info("chat escalated", "ticket_id", id, "category", req.category)
	return id
}

func (f *Flow) provisional(ctx context.Context, cause error) string {
	protocol := fmt.Sprintf("HL-%d", f.now().UnixMilli())
	f.logger.Error("ticket creation failed, using provisional protocol",
		"error", cause,
		"protocol", protocol,
	)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticketID = protocol
	f.escalated = true
	f.escalating = false
	f.appendLocked(ctx, newMessage(SenderSystem,
		fmt.Sprintf(f.content.Messages.Provisional, protocol), "sys-fallback"))
	return protocol
}

// attachHistory copies the transcript and the last user message onto the
// ticket. Failures are logged and otherwise ignored.
func (f *Flow) attachHistory(ctx context.Context, ticketID, history, lastUser string) {
	if ticketID == "" || f.messages == nil {
		return
	}

	err := f.messages.Add(ctx, ticketID, api.TicketMessageInput{
		SenderType: string(SenderSystem),
		Content:    f.content.Messages.HistoryHeader + "\n" + history,
	})
	if err == nil && lastUser != "" {
		err = f.messages.Add(ctx, ticketID, api.TicketMessageInput{
			SenderType: string(SenderUser),
			Content:    lastUser,
		})
	}
	if err != nil {
		f.logger.Warn("could not attach chat history to ticket", "ticket_id", ticketID, "error", err)
	}
}

// historyDumpLocked renders the transcript as "sender: text" lines.
func (f *Flow) historyDumpLocked() string {
	lines := make([]string, len(f.transcript))
	for i, m := range f.transcript {
		lines[i] = string(m.Sender) + ": " + m.Text
	}
	return truncate(strings.Join(lines, "\n"), maxHistoryRunes)
}
