package models

// Actor is the authenticated identity behind an operation, resolved once at
// the HTTP layer and passed explicitly into services. No ambient session
// lookups happen below the handlers.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff || a.Role == RoleSuperAdmin
}
