package user

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Manages directory, attendance, leave and settings
	RoleEmployee Role = "EMPLOYEE" // Punches and requests leave for themselves
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// IsAdmin checks if the role carries admin privileges
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
