package domain

import (
	"strings"

	dErrors "veriadmin/pkg/domain-errors"
)

// Role is an actor's privilege level. Roles are totally ordered.
type Role string

const (
	RoleEndUser    Role = "end_user"
	RoleStaff      Role = "staff"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

var roleRank = map[Role]int{
	RoleEndUser:    1,
	RoleStaff:      2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

// ParseRole accepts the canonical names plus the hyphenated spellings the
// frontend uses ("super-admin", "end-user").
func ParseRole(s string) (Role, error) {
	r := Role(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := roleRank[r]; !ok {
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown role")
	}
	return r, nil
}

// AtLeast reports whether r has min's privileges or more.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min] && roleRank[r] > 0
}

func (r Role) String() string {
	return string(r)
}
