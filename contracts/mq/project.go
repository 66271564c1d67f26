package mq

import "time"

const (
	RoutingKeyMatrixUpdated = "project.matrix_updated"
	RoutingKeyCommentAdded  = "project.comment_added"
)

type MatrixUpdatedPayload struct {
	ProjectID string    `json:"project_id"`
	CompanyID string    `json:"company_id"`
	UserID    string    `json:"user_id"`
	Fields    []string  `json:"fields"` // section.field, e.g. "vision.definition"
	At        time.Time `json:"at"`
}

type CommentAddedPayload struct {
	ActivityID string    `json:"activity_id"`
	ProjectID  string    `json:"project_id"`
	UserID     string    `json:"user_id"`
	Author     string    `json:"author"`
	At         time.Time `json:"at"`
}
