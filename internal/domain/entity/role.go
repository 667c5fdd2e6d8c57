// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents an authority granted to the signed-in account.
type Role string

const (
	// RoleUser indicates a regular customer account.
	RoleUser Role = "ROLE_USER"
	// RoleCook indicates a cook account.
	RoleCook Role = "ROLE_COOK"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleCook:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for persistence.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// Actor derives which side of a booking the holder of these roles acts for.
// Cook wins when both are present.
func (rs Roles) Actor() Actor {
	if rs.Contains(RoleCook) {
		return ActorCook
	}

	return ActorCustomer
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}

// Actor is one side of a booking. The value doubles as the topic segment.
type Actor string

const (
	ActorCustomer Actor = "user"
	ActorCook     Actor = "cook"
)

func (a Actor) String() string {
	return string(a)
}

// IsValid checks if the Actor is a valid value.
func (a Actor) IsValid() bool {
	return a == ActorCustomer || a == ActorCook
}
