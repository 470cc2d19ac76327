package authroles

import (
	domainauth "github.com/janasethu/civic-api/internal/domain/auth"
)

// StaticRoleMapper maps directory groups by simple string membership rules.
// Membership in AdminGroup yields the durable admin label; everyone else is
// a citizen. The label is informational for route gating; admin capability
// comes from the elevation grant.
type StaticRoleMapper struct {
	AdminGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	return domainauth.RoleCitizen
}
