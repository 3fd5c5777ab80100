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

// -----------------------------------------------------------------------------
// Role → Permission mapping
// The mapping is fixed for the lifetime of the process. Changing it requires a
// redeploy, never a runtime mutation.
// -----------------------------------------------------------------------------

var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermManageAllTenants,
		PermViewAllData,
		PermManageSystemConfig,
		PermManageTenant,
		PermManageUsers,
		PermManageSubscription,
		PermViewAnalytics,
		PermUseAIQuery,
		PermViewReports,
	},
	RoleAdmin: {
		PermManageAllTenants,
		PermViewAllData,
		PermManageTenant,
		PermManageUsers,
		PermViewAnalytics,
		PermUseAIQuery,
		PermViewReports,
	},
	RoleTenantOwner: {
		PermManageTenant,
		PermManageUsers,
		PermManageSubscription,
		PermViewAnalytics,
		PermUseAIQuery,
		PermViewReports,
	},
	RoleTenantManager: {
		PermManageUsers,
		PermViewAnalytics,
		PermUseAIQuery,
		PermViewReports,
	},
	RoleTenantUser: {
		PermUseAIQuery,
		PermViewReports,
	},
}

// Registry exposes the immutable role → permission mapping. Construct it once
// at startup and share it read-only across all request handlers.
type Registry struct {
	perms map[Role]map[Permission]struct{}
}

// NewRegistry builds the registry from the fixed mapping table.
func NewRegistry() *Registry {
	perms := make(map[Role]map[Permission]struct{}, len(rolePermissions))
	for role, list := range rolePermissions {
		set := make(map[Permission]struct{}, len(list))
		for _, p := range list {
			set[p] = struct{}{}
		}
		perms[role] = set
	}
	return &Registry{perms: perms}
}

// PermissionsFor returns the permission set for a role. The returned slice is
// a copy; callers cannot mutate the registry through it. Two principals with
// the same role always see identical sets.
func (r *Registry) PermissionsFor(role Role) ([]Permission, error) {
	set, ok := r.perms[role]
	if !ok {
		return nil, ErrInvalidRole
	}
	out := make([]Permission, 0, len(set))
	for _, p := range AllPermissions {
		if _, ok := set[p]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// HasPermission reports whether the role carries the permission. Unknown
// roles carry nothing.
func (r *Registry) HasPermission(role Role, p Permission) bool {
	set, ok := r.perms[role]
	if !ok {
		return false
	}
	_, ok = set[p]
	return ok
}
