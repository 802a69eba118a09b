package models

// Role names seeded at startup. A brand-new identity receives exactly one
// of these depending on the context it was first created in; reused
// identities keep whatever roles they already hold.
const (
	RoleGeneralAdmin = "general_admin"
	RoleSchoolAdmin  = "school_admin"
	RoleTeacher      = "teacher"
	RoleGuardian     = "guardian"
	RoleStudent      = "student"
)

// Role defines a permission role, based on the 'roles' table.
type Role struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// DefaultRoles is the catalog created by the seeder.
var DefaultRoles = []string{
	RoleGeneralAdmin,
	RoleSchoolAdmin,
	RoleTeacher,
	RoleGuardian,
	RoleStudent,
}
