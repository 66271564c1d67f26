package model

import "time"

type ActivityType string

const (
	ActivityComment         ActivityType = "comment"
	ActivityMilestoneUpdate ActivityType = "milestone_update"
	ActivityFinancialUpdate ActivityType = "financial_update"
	ActivityStatusChange    ActivityType = "status_change"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityComment, ActivityMilestoneUpdate, ActivityFinancialUpdate, ActivityStatusChange:
		return true
	}
	return false
}

// Activity is an entry in a project's feed.
type Activity struct {
	ID        string       `json:"id"`
	ProjectID string       `json:"project_id"`
	UserID    string       `json:"user_id"`
	Author    string       `json:"author"`
	Type      ActivityType `json:"type"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}
