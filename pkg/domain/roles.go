package domain

import (
	"strings"

	dErrors "landregistry/pkg/domain-errors"
)

// Role is a named capability grant held by an account. An account may hold
// several roles at once.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleInspector    Role = "INSPECTOR"
	RoleUser         Role = "USER"
	RoleVerifiedUser Role = "VERIFIED_USER"
)

// Roles lists every valid role in a stable order.
var Roles = []Role{RoleAdmin, RoleInspector, RoleUser, RoleVerifiedUser}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", dErrors.New(dErrors.CodeValidation, "unknown role: "+s)
}

func (r Role) String() string {
	return string(r)
}
