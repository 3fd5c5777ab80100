// Copyright 2026 The SalonSight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package authz

// Role is a closed privilege tier. The zero value is not a valid role, so a
// Role that skipped ParseRole is caught by Valid rather than silently treated
// as the lowest tier.
type Role int

const (
	// RoleSuperAdmin is the platform operator role. Tenant-agnostic.
	RoleSuperAdmin Role = iota + 1

	// RoleAdmin is the platform support role. Tenant-agnostic, read-mostly.
	RoleAdmin

	// RoleTenantOwner owns a single salon account, including billing.
	RoleTenantOwner

	// RoleTenantManager manages staff and day-to-day operations of one salon.
	RoleTenantManager

	// RoleTenantUser is a staff member with query and reporting access.
	RoleTenantUser
)

// roleNames are the canonical claim values carried in credentials and stored
// in the users table.
var roleNames = map[Role]string{
	RoleSuperAdmin:    "super_admin",
	RoleAdmin:         "admin",
	RoleTenantOwner:   "tenant_owner",
	RoleTenantManager: "tenant_manager",
	RoleTenantUser:    "tenant_user",
}

var rolesByName = func() map[string]Role {
	m := make(map[string]Role, len(roleNames))
	for r, name := range roleNames {
		m[name] = r
	}
	return m
}()

// AllRoles lists every defined role, most privileged first.
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleAdmin,
	RoleTenantOwner,
	RoleTenantManager,
	RoleTenantUser,
}

// ParseRole maps a role claim to its Role. Unknown names fail with
// ErrInvalidRole so a bad claim never reaches a guard as a usable role.
func ParseRole(name string) (Role, error) {
	r, ok := rolesByName[name]
	if !ok {
		return 0, ErrInvalidRole
	}
	return r, nil
}

// String returns the canonical claim value for the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Rank returns the privilege rank used by the provisioning guard. Higher is
// more privileged. Rank is only ever compared against another Rank; it does
// not imply permission inheritance.
func (r Role) Rank() int {
	switch r {
	case RoleSuperAdmin:
		return 5
	case RoleAdmin:
		return 4
	case RoleTenantOwner:
		return 3
	case RoleTenantManager:
		return 2
	case RoleTenantUser:
		return 1
	default:
		return 0
	}
}

// AdminTier reports whether the role is platform-scoped. Admin-tier roles
// carry no tenant and bypass the tenant boundary check.
func (r Role) AdminTier() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// TenantTier reports whether the role is scoped to a single tenant.
func (r Role) TenantTier() bool {
	return r == RoleTenantOwner || r == RoleTenantManager || r == RoleTenantUser
}
