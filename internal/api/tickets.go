// ABOUTME: Ticket call groups: ticket CRUD and ticket message attachment
// ABOUTME: Used by chatbot escalation and the admin ticket list

package api

import (
	"context"
	"encoding/json"
)

// TicketsAPI groups the /tickets endpoints.
type TicketsAPI struct {
	c *Client
}

// List returns tickets, optionally filtered (for example by origin).
func (t *TicketsAPI) List(ctx context.Context, params map[string]string) ([]Ticket, error) {
	var raw json.RawMessage
	if err := t.c.Get(ctx, "/tickets", params, &raw); err != nil {
		return nil, err
	}
	return decodeList[Ticket](raw)
}

// Get returns a single ticket.
func (t *TicketsAPI) Get(ctx context.Context, id string) (*Ticket, error) {
	var ticket Ticket
	if err := t.c.Get(ctx, "/tickets/"+pathID(id), nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Create opens a ticket.
func (t *TicketsAPI) Create(ctx context.Context, in TicketInput) (*Ticket, error) {
	var ticket Ticket
	if err := t.c.Post(ctx, "/tickets", in, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Update replaces a ticket's editable fields.
func (t *TicketsAPI) Update(ctx context.Context, id string, in TicketInput) (*Ticket, error) {
	var ticket Ticket
	if err := t.c.Put(ctx, "/tickets/"+pathID(id), in, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Delete removes a ticket.
func (t *TicketsAPI) Delete(ctx context.Context, id string) error {
	return t.c.Delete(ctx, "/tickets/"+pathID(id), nil)
}

// TicketMessagesAPI groups the /tickets/{id}/messages endpoint.
type TicketMessagesAPI struct {
	c *Client
}

// Add attaches a message to a ticket.
func (m *TicketMessagesAPI) Add(ctx context.Context, ticketID string, in TicketMessageInput) error {
	return m.c.Post(ctx, "/tickets/"+pathID(ticketID)+"/messages", in, nil)
}
