package storage

import (
	"campaignmanager/models"
)

// SessionRegister tracks the current user in two replicas: a persistent
// primary and a tab-scoped secondary. Reads prefer the primary and repair it
// from the secondary when it has gone missing.
type SessionRegister struct {
	primary   *KV
	secondary *KV
}

// NewSessionRegister creates a register over the two replicas
func NewSessionRegister(primary, secondary *KV) *SessionRegister {
	return &SessionRegister{primary: primary, secondary: secondary}
}

// SetCurrent writes a snapshot of user to both replicas. The result is the
// primary write's; a secondary failure is logged only. Callers confirm with
// GetCurrent.
func (r *SessionRegister) SetCurrent(user models.User) bool {
	r.primary.log.Debug("Setting current user: %s", user.Username)

	ok := r.primary.Put(KeyCurrentUser, user)
	if !r.secondary.Put(KeyCurrentUser, user) {
		r.secondary.log.Warn("Current user not mirrored to secondary store")
	}
	return ok
}

// GetCurrent returns the current user or nil. A user found only in the
// secondary replica is written back to the primary.
func (r *SessionRegister) GetCurrent() *models.User {
	var user models.User
	if r.primary.Get(KeyCurrentUser, &user) {
		return &user
	}

	if !r.secondary.Get(KeyCurrentUser, &user) {
		return nil
	}

	r.primary.log.Info("User %s recovered from secondary store", user.Username)
	if !r.primary.Put(KeyCurrentUser, user) {
		r.primary.log.Warn("Failed to restore current user to primary store")
	}
	return &user
}

// ClearCurrent removes the session from both replicas and returns the
// primary result
func (r *SessionRegister) ClearCurrent() bool {
	r.primary.log.Debug("Clearing current user")

	ok := r.primary.Remove(KeyCurrentUser)
	if !r.secondary.Remove(KeyCurrentUser) {
		r.secondary.log.Warn("Failed to clear current user from secondary store")
	}
	return ok
}
