package domain

// Role classifies an authenticated principal. All access decisions key off
// the role plus the actor's relationship to the entity being touched.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// IsValid returns true if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// Actor is an authenticated principal. It is supplied by the auth collaborator
// and immutable for the duration of a request.
type Actor struct {
	ID   string
	Role Role
}

// User is the directory view of a principal, used to validate student
// assignments at creation time and to populate names for XML export.
type User struct {
	ID    string
	Name  string
	Email string
	Role  Role
}
