// Package chat drives the support chatbot conversation.
//
// # Overview
//
// A Flow walks a user through consent, category triage, guided
// troubleshooting plans, and finally a handoff to a human analyst by opening
// a ticket. It is a small state machine:
//
//	unaccepted → accepted → category selected → awaiting feedback → escalated
//
// Escalated is terminal: the flow stops producing automated replies.
//
// # Flow
//
//	flow, err := chat.New(ctx, chat.Deps{
//	    Tickets:   client.Tickets,
//	    Messages:  client.TicketMessages,
//	    Assistant: assistantClient,
//	    Store:     st,
//	})
//
// Key operations:
//
//   - Accept(ctx): record consent and show the category and quick-reply prompts
//   - SelectCategory(ctx, name): show the category checklist and follow-up question
//   - SubmitMessage(ctx, text): answer with the next guided plan or the assistant
//   - GiveFeedback(ctx, resolved): close the loop or escalate
//   - Escalate(ctx): open a ticket, falling back to a provisional protocol when
//     creation fails
//   - Clear(ctx): drop the saved transcript and start over
//
// # Persistence
//
// The whole transcript is saved as JSON under store.KeyChatHistory after every
// change and restored by New. Storage failures are logged, not returned.
//
// # Concurrency
//
// Flow is safe for concurrent use. State is guarded by a mutex that is never
// held across network calls or the reply pacing delay. At most one reply or
// escalation runs at a time: SubmitMessage, GiveFeedback, Escalate, and Clear
// called meanwhile get ErrBusy. A reply that arrives after the user moved on
// still lands in the transcript.
package chat
