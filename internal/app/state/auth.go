package state

import (
	"sync"

	"github.com/yallashop/storefront/internal/app/model"
	apperrors "github.com/yallashop/storefront/internal/errors"
)

// Auth is the authentication state container. The four operations that
// mutate it (login, register, logout, fetch-current-user) share one
// status field, last writer wins; the UI serializes them by user action.
type Auth struct {
	mu            sync.RWMutex
	authenticated bool
	user          *model.User
	role          model.UserRole
	status        Status
	err           *apperrors.Info
}

func NewAuth() *Auth {
	return &Auth{status: StatusIdle}
}

// Begin marks an auth operation as in flight.
func (a *Auth) Begin() {
	a.mu.Lock()
	a.status = StatusLoading
	a.err = nil
	a.mu.Unlock()
}

// ResolveLogin records a successful login: the session is authenticated
// and the user snapshot plus derived role are stored.
func (a *Auth) ResolveLogin(user *model.User, role model.UserRole) {
	a.mu.Lock()
	a.authenticated = true
	a.user = user
	a.role = role
	a.status = StatusSucceeded
	a.err = nil
	a.mu.Unlock()
}

// ResolveRegister records a successful registration. Registration does
// not authenticate the session.
func (a *Auth) ResolveRegister() {
	a.mu.Lock()
	a.status = StatusSucceeded
	a.err = nil
	a.mu.Unlock()
}

// ResolveLogout resets the container to its initial state.
func (a *Auth) ResolveLogout() {
	a.mu.Lock()
	a.authenticated = false
	a.user = nil
	a.role = ""
	a.status = StatusIdle
	a.err = nil
	a.mu.Unlock()
}

// ResolveCurrentUser records a restored session.
func (a *Auth) ResolveCurrentUser(user *model.User, role model.UserRole) {
	a.mu.Lock()
	a.authenticated = true
	a.user = user
	a.role = role
	a.status = StatusSucceeded
	a.err = nil
	a.mu.Unlock()
}

// RejectCurrentUser handles a failed fetch-current-user: it means "not
// logged in", not a hard error, so authentication is cleared silently.
func (a *Auth) RejectCurrentUser(info *apperrors.Info) {
	a.mu.Lock()
	a.authenticated = false
	a.user = nil
	a.role = ""
	a.status = StatusFailed
	a.err = info
	a.mu.Unlock()
}

// Fail records a rejected login, register, or logout.
func (a *Auth) Fail(info *apperrors.Info) {
	a.mu.Lock()
	a.status = StatusFailed
	a.err = info
	a.mu.Unlock()
}

// IsAuthenticated reports whether the session is authenticated.
func (a *Auth) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authenticated
}

// User returns the authenticated user snapshot, nil for guests.
func (a *Auth) User() *model.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// Role returns the derived session role, empty for guests.
func (a *Auth) Role() model.UserRole {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.role
}

// Status returns the status of the last auth operation.
func (a *Auth) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

// Err returns the rejection recorded by the last failed operation.
func (a *Auth) Err() *apperrors.Info {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.err
}
