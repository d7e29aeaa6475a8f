package models

import "time"

// User represents an account in the campaign manager.
//
// The password is stored as entered. JSON tags use the layout of existing
// export files so an exported document can be imported unchanged.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns a copy of the user safe to hand to API clients
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUser is the user view returned by the HTTP API
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}
