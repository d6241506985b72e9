package domain

import "time"

// Audit actions and outcomes recorded for authentication activity.
const (
	AuditActionLogin          = "login"
	AuditActionRegister       = "register"
	AuditActionChangePassword = "change_password"

	AuditOutcomeSuccess   = "success"
	AuditOutcomeFailure   = "failure"
	AuditOutcomeThrottled = "throttled"
)

// AuthEvent is a single entry in the authentication audit trail.
type AuthEvent struct {
	Username  string
	Action    string
	Outcome   string
	Timestamp time.Time
}
