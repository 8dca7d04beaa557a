package model

import "time"

// ContactStatus is the operator-managed state of a contact message.
type ContactStatus string

const (
	ContactUnread   ContactStatus = "unread"
	ContactRead     ContactStatus = "read"
	ContactReplied  ContactStatus = "replied"
	ContactArchived ContactStatus = "archived"
)

var contactStatuses = []ContactStatus{ContactUnread, ContactRead, ContactReplied, ContactArchived}

// Valid reports whether s is one of the known statuses.
func (s ContactStatus) Valid() bool {
	for _, v := range contactStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransition is the contact status policy. Every known status may move
// to every known status; tighten the graph here.
func CanTransition(from, to ContactStatus) bool {
	return from.Valid() && to.Valid()
}

// ContactMessage represents a message submitted via the contact form.
type ContactMessage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ContactListOptions carries filter and pagination parameters for listing contact messages.
type ContactListOptions struct {
	// Status filters by message status. Empty string and "all" return all messages.
	Status string
	Limit  int
	Offset int
}

// ParseContactFilter validates a status filter. Empty means all.
func ParseContactFilter(s string) (string, bool) {
	if s == "" || s == "all" {
		return "all", true
	}
	return s, ContactStatus(s).Valid()
}
