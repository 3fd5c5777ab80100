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

// Permission is an atomic capability token. Permissions are never combined or
// computed at runtime; each role maps to a fixed set of them in the registry.
type Permission string

const (
	// Platform-scoped permissions (admin tier only).
	PermManageAllTenants   Permission = "platform:manage_all_tenants"
	PermViewAllData        Permission = "platform:view_all_data"
	PermManageSystemConfig Permission = "platform:manage_system_settings"

	// Tenant-scoped permissions.
	PermManageTenant       Permission = "tenant:manage"
	PermManageUsers        Permission = "tenant:manage_users"
	PermManageSubscription Permission = "tenant:manage_subscription"
	PermViewAnalytics      Permission = "tenant:view_analytics"
	PermUseAIQuery         Permission = "tenant:use_ai_query"
	PermViewReports        Permission = "tenant:view_reports"
)

// AllPermissions lists every defined permission.
var AllPermissions = []Permission{
	PermManageAllTenants,
	PermViewAllData,
	PermManageSystemConfig,
	PermManageTenant,
	PermManageUsers,
	PermManageSubscription,
	PermViewAnalytics,
	PermUseAIQuery,
	PermViewReports,
}

// Valid reports whether p is one of the defined permissions.
func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

func (p Permission) String() string {
	return string(p)
}
