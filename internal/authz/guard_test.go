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

package authz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/salonsight/salonsight/internal/audit"
	"github.com/salonsight/salonsight/internal/authz"
)

// mockAudit implements audit.Logger for testing
type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) Log(ctx context.Context, event audit.Event) {
	m.Called(ctx, event)
}

func relaxedAudit() *mockAudit {
	a := new(mockAudit)
	a.On("Log", mock.Anything, mock.Anything).Return()
	return a
}

// TestPurpose: Validates that the permission guard allows exactly the roles
// whose registry set carries the required permission.
// Scope: Unit Test
// Security: RBAC permission enforcement at the operation boundary
// Expected: tenant_user may run AI queries but not manage users; tenant_manager may do both.
// Test Case ID: GRD-01
func TestGuard_RequirePermission_AllowAndDeny(t *testing.T) {
	guard := authz.NewGuard(authz.NewRegistry(), relaxedAudit())
	ctx := context.Background()

	staff := authz.Principal{UserID: "user-1", TenantID: "tenant-a", Role: authz.RoleTenantUser}
	manager := authz.Principal{UserID: "user-2", TenantID: "tenant-a", Role: authz.RoleTenantManager}

	assert.NoError(t, guard.RequirePermission(ctx, staff, authz.PermUseAIQuery))
	assert.NoError(t, guard.RequirePermission(ctx, manager, authz.PermUseAIQuery))
	assert.NoError(t, guard.RequirePermission(ctx, manager, authz.PermManageUsers))

	err := guard.RequirePermission(ctx, staff, authz.PermManageUsers)
	assert.True(t, errors.Is(err, authz.ErrPermissionDenied))
}

// TestPurpose: Validates that a denied permission check emits an access-denied
// audit event carrying the actor, tenant and the permission that was refused.
// Scope: Unit Test
// Security: Audit trail for authorization denials
// Expected: Exactly one access_denied event; allowed checks emit nothing.
// Test Case ID: GRD-02
func TestGuard_RequirePermission_DenialIsAudited(t *testing.T) {
	auditLogger := new(mockAudit)
	auditLogger.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeAccessDenied &&
			e.TenantID == "tenant-a" &&
			e.ActorID == "user-1" &&
			e.Resource == authz.PermManageSystemConfig.String()
	})).Return().Once()

	guard := authz.NewGuard(authz.NewRegistry(), auditLogger)
	ctx := context.Background()
	owner := authz.Principal{UserID: "user-1", TenantID: "tenant-a", Role: authz.RoleTenantOwner}

	err := guard.RequirePermission(ctx, owner, authz.PermManageSystemConfig)
	assert.True(t, errors.Is(err, authz.ErrPermissionDenied))

	// Allowed check: no further audit calls expected.
	assert.NoError(t, guard.RequirePermission(ctx, owner, authz.PermManageTenant))

	auditLogger.AssertExpectations(t)
}

// TestPurpose: Validates that the exact-role guard does not treat higher rank
// as a substitute for the required role.
// Scope: Unit Test
// Security: Operations reserved to one tier stay reserved to it
// Expected: Only super_admin passes RequireRole(super_admin); admin fails with ErrRoleMismatch.
// Test Case ID: GRD-03
func TestGuard_RequireRole_ExactMatchOnly(t *testing.T) {
	guard := authz.NewGuard(authz.NewRegistry(), relaxedAudit())
	ctx := context.Background()

	operator := authz.Principal{UserID: "op-1", Role: authz.RoleSuperAdmin}
	support := authz.Principal{UserID: "sup-1", Role: authz.RoleAdmin}

	assert.NoError(t, guard.RequireRole(ctx, operator, authz.RoleSuperAdmin))

	err := guard.RequireRole(ctx, support, authz.RoleSuperAdmin)
	assert.True(t, errors.Is(err, authz.ErrRoleMismatch))

	assert.NoError(t, guard.RequireAnyRole(ctx, support, authz.RoleSuperAdmin, authz.RoleAdmin))
	err = guard.RequireAnyRole(ctx, support, authz.RoleTenantOwner, authz.RoleTenantManager)
	assert.True(t, errors.Is(err, authz.ErrRoleMismatch))
}

// TestPurpose: Validates that an undefined role claim is reported as a data
// integrity fault rather than an ordinary denial.
// Scope: Unit Test
// Security: Fail-closed handling of corrupted principals
// Expected: Every guard entry point fails with ErrInvalidRole for an undefined role.
// Test Case ID: GRD-04
func TestGuard_InvalidRole_IsIntegrityFault(t *testing.T) {
	guard := authz.NewGuard(authz.NewRegistry(), relaxedAudit())
	ctx := context.Background()
	broken := authz.Principal{UserID: "user-1", TenantID: "tenant-a", Role: authz.Role(42)}

	assert.True(t, errors.Is(guard.RequirePermission(ctx, broken, authz.PermViewReports), authz.ErrInvalidRole))
	assert.True(t, errors.Is(guard.RequireRole(ctx, broken, authz.RoleTenantUser), authz.ErrInvalidRole))
	assert.True(t, errors.Is(guard.RequireAnyRole(ctx, broken, authz.RoleTenantUser), authz.ErrInvalidRole))
}
