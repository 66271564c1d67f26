package mq

import "time"

const (
	RoutingKeySessionLoggedIn  = "session.logged_in"
	RoutingKeySessionLoggedOut = "session.logged_out"
)

type SessionLoggedInPayload struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CompanyID string    `json:"company_id,omitempty"`
	At        time.Time `json:"at"`
}

type SessionLoggedOutPayload struct {
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}
