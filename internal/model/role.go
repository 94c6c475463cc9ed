package model

import "fmt"

// Role is the closed set of marketplace roles. Callers resolve the role once
// at the identity boundary instead of comparing role name strings in every
// handler.
type Role int

const (
	RoleUnknown Role = iota
	RoleVendor
	RoleInfluencer
	RoleBuyer
	RoleAdmin
)

// ParseRole maps a role name to its Role value.
func ParseRole(s string) (Role, error) {
	switch s {
	case "vendor":
		return RoleVendor, nil
	case "influencer":
		return RoleInfluencer, nil
	case "buyer":
		return RoleBuyer, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleUnknown, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleVendor:
		return "vendor"
	case RoleInfluencer:
		return "influencer"
	case RoleBuyer:
		return "buyer"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}
