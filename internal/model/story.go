package model

import "time"

// StoryEntry is one milestone on the life-story timeline.
type StoryEntry struct {
	ID            string    `json:"id"`
	Title         string    `json:"title" validate:"required,max=200"`
	Content       string    `json:"content" validate:"max=20000"`
	Year          int       `json:"year" validate:"gte=1900,lte=2100"`
	MilestoneType string    `json:"milestone_type" validate:"max=50"`
	OrderIndex    int       `json:"order_index"`
	Featured      bool      `json:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
