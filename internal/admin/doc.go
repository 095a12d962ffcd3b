// Package admin provides the manager-only list views of the client.
//
// # Overview
//
// The admin package backs three read-only views that are available to users
// with the manager role:
//
//   - Tickets: every ticket, optionally filtered by origin
//   - Users: every user, optionally filtered by origin
//   - Reports: a static summary placeholder
//
// # Origin Filter
//
// The origin filter is a free-form string such as web, mobile, admin, or
// chatbot. It is sent as the origin query parameter only when it is set; an
// empty filter lists everything.
//
// # Failure Handling
//
// A failed listing never fails the view. The error is logged and the view
// shows an empty list.
//
// # Usage
//
//	views := admin.New(client.Tickets, client.Users, logger)
//	tickets := views.Tickets(ctx, "chatbot")
//	fmt.Println(admin.CountLabel(len(tickets), "tickets"))
package admin
