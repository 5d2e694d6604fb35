package domain

import "time"

// Role is the capability level attached to a profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Profile is the identity record for a signed-in user.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Actor is the resolved identity of the current request. The zero value
// is the unauthenticated actor. Role is resolved fresh from the store
// per request, never cached across requests, because privilege can
// change between them.
type Actor struct {
	ID   string
	Role Role
}

// Anonymous is the unauthenticated actor.
var Anonymous = Actor{}

func (a Actor) Authenticated() bool { return a.ID != "" }

func (a Actor) IsAdmin() bool { return a.ID != "" && a.Role == RoleAdmin }
