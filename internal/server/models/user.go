package models

import "time"

// Account roles. Role is a flat access-class tag; there is no permission
// hierarchy between the values.
const (
	RoleCandidate   = "candidate"
	RoleInterviewer = "interviewer"
	RoleAdmin       = "admin"
)

// Roles lists every valid account role.
var Roles = []string{RoleCandidate, RoleInterviewer, RoleAdmin}

// User is a stored account record. Email is unique across all accounts
// (lowercased before storage). PasswordHash is a bcrypt digest and must
// never be serialized into a response.
type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Role           string
	IsActive       bool
	InterviewCount int64
	LoginCount     int64
	LastLogin      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidRole reports whether role is one of the enumerated account roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
