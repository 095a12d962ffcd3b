// Package api is the HTTP client for the HelpLine REST backend.
//
// # Overview
//
// Client wraps the five HTTP verbs over a configurable base URL. It attaches
// a bearer token when one is available and turns failures into *Error
// values. Typed call groups sit on top of it:
//
//   - Auth: login, register, current user
//   - Tickets and TicketMessages: ticket CRUD and ticket messages
//   - Articles: knowledge-base CRUD and feedback
//   - FAQ: FAQ listing, popular entries, feedback
//   - Users: user listing and managers
//   - AI: the backend assistant endpoint
//
// # Errors
//
// A response outside 2xx becomes an *Error carrying the HTTP status. The
// message comes from the server's body ("error" or "message") when present,
// otherwise from a localized default for the status class. A request that
// never reached the server becomes an *Error with Code "NETWORK", which
// matches ErrNetwork:
//
//	if errors.Is(err, api.ErrNetwork) {
//		// connectivity problem, not an application error
//	}
//
// # Usage
//
//	c := api.New(cfg.API.BaseURL, api.WithTokenSource(sessions))
//	tickets, err := c.Tickets.List(ctx, map[string]string{"origin": "chatbot"})
package api
