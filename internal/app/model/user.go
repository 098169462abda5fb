package model

import "errors"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

var ErrNoRoles = errors.New("user has no roles")

// User is the canonical user shape after the API client has unwrapped
// whichever envelope the backend used.
type User struct {
	ID    uint     `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// PrimaryRole returns the role the session acts under. The backend
// guarantees a non-empty role set on every authenticated user; an empty
// set is a contract violation and fails instead of defaulting.
func (u *User) PrimaryRole() (UserRole, error) {
	if len(u.Roles) == 0 {
		return "", ErrNoRoles
	}
	return UserRole(u.Roles[0]), nil
}

func (u *User) IsAdmin() bool {
	role, err := u.PrimaryRole()
	return err == nil && role == RoleAdmin
}
