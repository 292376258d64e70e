package domain

import "strings"

// Actor is the user on whose behalf a lifecycle operation runs. It is passed
// explicitly into every operation and used for authorization and for stamping
// created_by/modified_by.
type Actor struct {
	ID    int64
	Name  string
	Roles []string
}

// Guest returns the anonymous actor. Guests own no records and hold no roles.
func Guest() Actor {
	return Actor{Name: "guest"}
}

// IsGuest reports whether the actor is unauthenticated.
func (a Actor) IsGuest() bool {
	return a.ID == 0
}

// HasRole reports whether the actor carries the named role (case-insensitive).
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}
