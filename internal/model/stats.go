package model

// DashboardStats are the counters shown on the admin dashboard.
type DashboardStats struct {
	TotalStories   int `json:"total_stories"`
	TotalProjects  int `json:"total_projects"`
	PendingAdvice  int `json:"pending_advice"`
	TotalAdvice    int `json:"total_advice"`
	UnreadContacts int `json:"unread_contacts"`
	TotalContacts  int `json:"total_contacts"`
}
