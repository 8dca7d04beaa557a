package model

import "time"

// Project statuses shown on the portfolio.
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectPaused    = "paused"
	ProjectArchived  = "archived"
)

type Project struct {
	ID              string    `json:"id"`
	Name            string    `json:"name" validate:"required,max=200"`
	Description     string    `json:"description" validate:"max=1000"`
	LongDescription string    `json:"long_description,omitempty" validate:"max=20000"`
	Status          string    `json:"status" validate:"oneof=active completed paused archived"`
	Category        string    `json:"category" validate:"max=50"`
	YearStarted     *int      `json:"year_started,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Tags            []string  `json:"tags" validate:"max=20,dive,max=40"`
	WebsiteURL      string    `json:"website_url,omitempty" validate:"omitempty,url"`
	GitHubURL       string    `json:"github_url,omitempty" validate:"omitempty,url"`
	ImageURL        string    `json:"image_url,omitempty"`
	Featured        bool      `json:"featured"`
	OrderIndex      int       `json:"order_index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
