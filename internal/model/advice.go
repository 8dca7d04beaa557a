package model

import "time"

// AnonymousAuthor is stored when a submitter leaves the name blank.
const AnonymousAuthor = "Anonymous"

// AdviceEntry is a piece of advice submitted to the advice museum.
// ApprovedAt is non-nil exactly when Approved is true.
type AdviceEntry struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	AuthorName  string     `json:"author_name"`
	AuthorEmail *string    `json:"author_email,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
	Approved    bool       `json:"approved"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

// AdviceFilter narrows an advice listing by moderation state.
type AdviceFilter string

const (
	AdviceFilterPending  AdviceFilter = "pending"
	AdviceFilterApproved AdviceFilter = "approved"
	AdviceFilterAll      AdviceFilter = "all"
)

// ParseAdviceFilter maps a query value to a filter. Empty means all.
func ParseAdviceFilter(s string) (AdviceFilter, bool) {
	switch AdviceFilter(s) {
	case "", AdviceFilterAll:
		return AdviceFilterAll, true
	case AdviceFilterPending, AdviceFilterApproved:
		return AdviceFilter(s), true
	}
	return "", false
}

// AdviceListOptions carries filter and pagination parameters for listing advice.
type AdviceListOptions struct {
	Filter AdviceFilter
	Limit  int
	Offset int
}
