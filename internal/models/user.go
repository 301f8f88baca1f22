package models

// Roles assignable to a user account.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User is the internal account record, including the password hash.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`    // don’t expose hash
	Role         string `json:"role"` // student | teacher
}

// PublicUser is the externally visible projection of a User.
// It intentionally has no password field at all.
type PublicUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public strips the sensitive fields from a User.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}
