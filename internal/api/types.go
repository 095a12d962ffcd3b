// ABOUTME: Wire types shared by the API call groups
// ABOUTME: Tolerates heterogeneous backend shapes: numeric or string ids, bare or enveloped lists

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
)

// FlexID is an identifier the backend may send as a string or a number.
type FlexID string

// UnmarshalJSON accepts strings, numbers, and null.
func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = FlexID(n.String())
	return nil
}

// String returns the id as text.
func (id FlexID) String() string {
	return string(id)
}

// FlexList is a list field the backend does not always send as an array.
// Anything but an array decodes to an empty list, and array elements that
// do not decode as T are skipped.
type FlexList[T any] []T

// UnmarshalJSON keeps the decodable elements of an array and ignores any
// other shape.
func (l *FlexList[T]) UnmarshalJSON(data []byte) error {
	*l = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return err
	}
	out := make(FlexList[T], 0, len(elems))
	for _, raw := range elems {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// User is a backend user record.
type User struct {
	ID       FlexID `json:"id,omitempty"`
	LegacyID FlexID `json:"_id,omitempty"`
	Name     string `json:"name,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Origin   string `json:"origin,omitempty"`
}

// RoleManager is the role that unlocks the admin views.
const RoleManager = "manager"

// Key returns the first available identifier.
func (u User) Key() string {
	if u.ID != "" {
		return u.ID.String()
	}
	return u.LegacyID.String()
}

// DisplayName returns the name, full name, or email, in that order.
func (u User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.FullName != "":
		return u.FullName
	default:
		return u.Email
	}
}

// IsManager reports whether the user has the manager role.
func (u User) IsManager() bool {
	return u.Role == RoleManager
}

// Ticket is a backend ticket record.
type Ticket struct {
	ID          FlexID `json:"id,omitempty"`
	TicketID    FlexID `json:"ticketId,omitempty"`
	LegacyID    FlexID `json:"_id,omitempty"`
	Protocol    string `json:"protocol,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
	Origin      string `json:"origin,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Identifier returns the server-assigned id, reading id before ticketId.
func (t Ticket) Identifier() string {
	if t.ID != "" {
		return t.ID.String()
	}
	return t.TicketID.String()
}

// Key returns an identifier suitable for listing: id, _id, then protocol.
func (t Ticket) Key() string {
	switch {
	case t.ID != "":
		return t.ID.String()
	case t.LegacyID != "":
		return t.LegacyID.String()
	default:
		return t.Protocol
	}
}

// DisplayTitle returns the title, or "Ticket <protocol>" when it is empty.
func (t Ticket) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return "Ticket " + t.Protocol
}

// TicketInput is the payload for creating or updating a ticket.
type TicketInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// TicketMessageInput is the payload for attaching a message to a ticket.
type TicketMessageInput struct {
	SenderType string `json:"senderType"`
	Content    string `json:"content"`
}

// Article is a knowledge-base article as the backend sends it. Fields vary
// by backend version, so most are optional.
type Article struct {
	ID          FlexID                    `json:"id,omitempty"`
	LegacyID    FlexID                    `json:"_id,omitempty"`
	Title       string                    `json:"title,omitempty"`
	Description string                    `json:"description,omitempty"`
	Summary     string                    `json:"summary,omitempty"`
	Content     string                    `json:"content,omitempty"`
	Category    string                    `json:"category,omitempty"`
	Icon        string                    `json:"icon,omitempty"`
	Tags        FlexList[string]          `json:"tags,omitempty"`
	LastUpdated string                    `json:"lastUpdated,omitempty"`
	UpdatedAt   string                    `json:"updatedAt,omitempty"`
	CreatedAt   string                    `json:"createdAt,omitempty"`
	Feedback    FlexList[json.RawMessage] `json:"feedback,omitempty"`
}

// ArticleInput is the payload for creating or updating an article.
type ArticleInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
}

// decodeList accepts a bare JSON array or an object wrapping it under
// "data" or "items". Anything else decodes to an empty list.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decoding list: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Items json.RawMessage `json:"items"`
	}
	if raw[0] != '{' || json.Unmarshal(raw, &envelope) != nil {
		return nil, nil
	}
	for _, inner := range []json.RawMessage{envelope.Data, envelope.Items} {
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '[' {
			var items []T
			if err := json.Unmarshal(inner, &items); err != nil {
				return nil, fmt.Errorf("decoding list: %w", err)
			}
			return items, nil
		}
	}
	return nil, nil
}

// pathID escapes an id for use as a URL path segment.
func pathID(id string) string {
	return url.PathEscape(id)
}
