// ABOUTME: Manager list views over tickets and users with an optional origin filter
// ABOUTME: Listing failures are logged and shown as empty lists

package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/2389/helpline/internal/api"
)

// ErrNotManager is returned by RequireManager for users without the manager role.
var ErrNotManager = errors.New("manager role required")

// Filter placeholders shown next to the origin input.
const (
	TicketOriginHint = "ex: web|mobile|admin|chatbot"
	UserOriginHint   = "ex: web|mobile|admin"
)

// Placeholder is shown for missing ticket and user fields.
const Placeholder = "-"

// TicketLister lists tickets. *api.TicketsAPI satisfies it.
type TicketLister interface {
	List(ctx context.Context, params map[string]string) ([]api.Ticket, error)
}

// UserLister lists users. *api.UsersAPI satisfies it.
type UserLister interface {
	List(ctx context.Context, params map[string]string) ([]api.User, error)
}

// Views loads the admin lists.
type Views struct {
	tickets TicketLister
	users   UserLister
	logger  *slog.Logger
}

// New creates Views over the given listers.
func New(tickets TicketLister, users UserLister, logger *slog.Logger) *Views {
	if logger == nil {
		logger = slog.Default().With("component", "admin")
	}
	return &Views{tickets: tickets, users: users, logger: logger}
}

// RequireManager returns ErrNotManager unless user has the manager role.
func RequireManager(user *api.User) error {
	if user == nil || !user.IsManager() {
		return ErrNotManager
	}
	return nil
}

// Tickets lists tickets from origin, or all tickets when origin is empty.
func (v *Views) Tickets(ctx context.Context, origin string) []api.Ticket {
	list, err := v.tickets.List(ctx, originParams(origin))
	if err != nil {
		v.logger.Error("listing tickets", "origin", origin, "error", err)
		return []api.Ticket{}
	}
	if list == nil {
		return []api.Ticket{}
	}
	return list
}

// Users lists users from origin, or all users when origin is empty.
func (v *Views) Users(ctx context.Context, origin string) []api.User {
	list, err := v.users.List(ctx, originParams(origin))
	if err != nil {
		v.logger.Error("listing users", "origin", origin, "error", err)
		return []api.User{}
	}
	if list == nil {
		return []api.User{}
	}
	return list
}

func originParams(origin string) map[string]string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return nil
	}
	return map[string]string{"origin": origin}
}

// CountLabel renders "<n> <noun>", as in "3 tickets".
func CountLabel(n int, noun string) string {
	return fmt.Sprintf("%d %s", n, noun)
}

// TicketRow is one rendered line of the tickets view.
type TicketRow struct {
	Key         string
	Title       string
	Meta        string
	Origin      string
	Description string
}

// NewTicketRow formats a ticket for listing.
func NewTicketRow(t api.Ticket) TicketRow {
	return TicketRow{
		Key:         t.Key(),
		Title:       t.DisplayTitle(),
		Meta:        orPlaceholder(t.Category) + " • " + orPlaceholder(t.Priority),
		Origin:      orPlaceholder(t.Origin),
		Description: t.Description,
	}
}

// UserRow is one rendered line of the users view.
type UserRow struct {
	Key    string
	Name   string
	Origin string
}

// NewUserRow formats a user for listing.
func NewUserRow(u api.User) UserRow {
	return UserRow{
		Key:    u.Key(),
		Name:   u.DisplayName(),
		Origin: orPlaceholder(u.Origin),
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
