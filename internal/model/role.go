package model

// Role is the closed set of account types. Every authorization decision in
// the service is expressed as a predicate over this type rather than a raw
// string comparison, so an unknown role can never slip through a gate.
type Role string

const (
	RoleClient Role = "client" // books halls, manages favorites, submits ratings
	RoleOwner  Role = "owner"  // lists halls, approves or rejects bookings
)

// ParseRole normalizes and validates a role supplied by a client. The second
// return value is false when the input names no known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient:
		return RoleClient, true
	case RoleOwner:
		return RoleOwner, true
	}
	return "", false
}

// Valid reports whether the role is one of the known enumeration values.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleOwner
}

// CanManageHalls reports whether the role may create, update or delete hall
// listings and change booking statuses.
func (r Role) CanManageHalls() bool { return r == RoleOwner }

// CanBook reports whether the role may create bookings, manage favorites and
// submit ratings.
func (r Role) CanBook() bool { return r == RoleClient }

func (r Role) String() string { return string(r) }
