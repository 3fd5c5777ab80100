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
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/salonsight/salonsight/internal/audit"
	"github.com/salonsight/salonsight/internal/authz"
)

// TestPurpose: Validates that a tenant-tier principal reaches its own tenant
// and nothing else.
// Scope: Unit Test
// Security: Multi-tenancy data isolation (prevents lateral movement)
// Expected: Own tenant allowed; any other tenant fails with ErrTenantMismatch.
// Test Case ID: BND-01
func TestBoundary_TenantTier_OwnTenantOnly(t *testing.T) {
	boundary := authz.NewBoundary(relaxedAudit())
	ctx := context.Background()

	owner := authz.Principal{UserID: "user-1", TenantID: "tenant-a", Role: authz.RoleTenantOwner}

	assert.NoError(t, boundary.RequireTenant(ctx, owner, "tenant-a"))

	err := boundary.RequireTenant(ctx, owner, "tenant-b")
	assert.True(t, errors.Is(err, authz.ErrTenantMismatch))

	// The highest tenant-tier rank buys no cross-tenant access.
	err = boundary.RequireTenant(ctx, owner, "tenant-c")
	assert.True(t, errors.Is(err, authz.ErrTenantMismatch))
}

// TestPurpose: Validates that admin-tier principals cross the boundary into
// any tenant without restriction.
// Scope: Unit Test
// Security: Platform operations over every tenant
// Expected: super_admin and admin pass for several distinct tenant IDs.
// Test Case ID: BND-02
func TestBoundary_AdminTier_Bypasses(t *testing.T) {
	boundary := authz.NewBoundary(relaxedAudit())
	ctx := context.Background()

	operator := authz.Principal{UserID: "op-1", Role: authz.RoleSuperAdmin}
	support := authz.Principal{UserID: "sup-1", Role: authz.RoleAdmin}

	for _, target := range []string{"tenant-a", "tenant-b", "tenant-c", "tenant-d"} {
		assert.NoError(t, boundary.RequireTenant(ctx, operator, target))
		assert.NoError(t, boundary.RequireTenant(ctx, support, target))
	}
}

// TestPurpose: Validates edge cases around empty tenant identifiers.
// Scope: Unit Test
// Security: Fail-closed matching (empty never matches empty)
// Expected: A tenant-tier principal with or without a tenant is denied when the target is empty.
// Test Case ID: BND-03
func TestBoundary_EmptyTenant_Denied(t *testing.T) {
	boundary := authz.NewBoundary(relaxedAudit())
	ctx := context.Background()

	member := authz.Principal{UserID: "user-1", TenantID: "tenant-a", Role: authz.RoleTenantUser}
	orphan := authz.Principal{UserID: "user-2", TenantID: "", Role: authz.RoleTenantUser}

	assert.True(t, errors.Is(boundary.RequireTenant(ctx, member, ""), authz.ErrTenantMismatch))
	assert.True(t, errors.Is(boundary.RequireTenant(ctx, orphan, ""), authz.ErrTenantMismatch))
	assert.True(t, errors.Is(boundary.RequireTenant(ctx, orphan, "tenant-a"), authz.ErrTenantMismatch))
}

// TestPurpose: Validates that a cross-tenant attempt is audited as a tenant
// mismatch, distinct from an ordinary permission denial.
// Scope: Unit Test
// Security: Audit trail for isolation violations
// Expected: One tenant_mismatch event naming actor, home tenant and target tenant.
// Test Case ID: BND-04
func TestBoundary_CrossTenant_IsAudited(t *testing.T) {
	auditLogger := new(mockAudit)
	auditLogger.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeTenantMismatch &&
			e.TenantID == "tenant-a" &&
			e.ActorID == "user-1" &&
			e.Resource == "tenant-b"
	})).Return().Once()

	boundary := authz.NewBoundary(auditLogger)
	member := authz.Principal{UserID: "user-1", TenantID: "tenant-a", Role: authz.RoleTenantManager}

	err := boundary.RequireTenant(context.Background(), member, "tenant-b")
	assert.True(t, errors.Is(err, authz.ErrTenantMismatch))
	auditLogger.AssertExpectations(t)
}

// TestPurpose: Randomized sweep over principal/target tenant pairs looking
// for a single false allow.
// Scope: Unit Test
// Security: Multi-tenancy data isolation under arbitrary pairings
// Expected: A tenant-tier check passes iff home == target; admin tier always passes.
// Test Case ID: BND-05
func TestBoundary_Randomized_NoFalseAllows(t *testing.T) {
	boundary := authz.NewBoundary(relaxedAudit())
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	tenants := make([]string, 10)
	for i := range tenants {
		tenants[i] = fmt.Sprintf("tenant-%02d", i)
	}
	tenantTier := []authz.Role{authz.RoleTenantOwner, authz.RoleTenantManager, authz.RoleTenantUser}

	for i := 0; i < 2000; i++ {
		home := tenants[rng.Intn(len(tenants))]
		target := tenants[rng.Intn(len(tenants))]
		role := tenantTier[rng.Intn(len(tenantTier))]
		p := authz.Principal{UserID: "user-x", TenantID: home, Role: role}

		err := boundary.RequireTenant(ctx, p, target)
		if home == target {
			assert.NoError(t, err, "role %s home %s target %s", role, home, target)
		} else {
			assert.True(t, errors.Is(err, authz.ErrTenantMismatch),
				"false allow: role %s home %s target %s", role, home, target)
		}
	}
}
