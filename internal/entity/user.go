package entity

// Role distinguishes regular learners from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the authenticated account behind a session.
type User struct {
	ID       int64
	Username string
	Email    string
	Role     Role
}

// IsAdmin reports whether the user may reach admin surfaces.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
