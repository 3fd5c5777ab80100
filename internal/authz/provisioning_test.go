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

// TestPurpose: Exhaustively validates every (acting role, requested role)
// provisioning pair against the rank rule.
// Scope: Unit Test
// Security: Privilege escalation prevention in user provisioning
// Expected: Admin tier may grant anything; a tenant-tier actor may grant only tenant-tier roles at or below its own rank.
// Test Case ID: PRV-01
func TestProvisioning_CanAssign_FullMatrix(t *testing.T) {
	prov := authz.NewProvisioning(relaxedAudit())
	ctx := context.Background()

	for _, acting := range authz.AllRoles {
		for _, requested := range authz.AllRoles {
			p := authz.Principal{UserID: "actor", TenantID: "tenant-a", Role: acting}
			err := prov.CanAssign(ctx, p, requested)

			wantAllow := acting.AdminTier() ||
				(requested.TenantTier() && requested.Rank() <= acting.Rank())

			if wantAllow {
				assert.NoError(t, err, "%s granting %s", acting, requested)
			} else {
				assert.True(t, errors.Is(err, authz.ErrPrivilegeEscalationDenied),
					"%s granting %s must be blocked", acting, requested)
			}
		}
	}
}

// TestPurpose: Validates the canonical escalation case: a manager promoting a
// user to owner.
// Scope: Unit Test
// Security: Vertical privilege escalation prevention
// Expected: tenant_manager cannot grant tenant_owner; the attempt is audited.
// Test Case ID: PRV-02
func TestProvisioning_ManagerCannotGrantOwner(t *testing.T) {
	auditLogger := new(mockAudit)
	auditLogger.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeEscalationBlocked &&
			e.ActorID == "mgr-1" &&
			e.Resource == authz.RoleTenantOwner.String()
	})).Return().Once()

	prov := authz.NewProvisioning(auditLogger)
	manager := authz.Principal{UserID: "mgr-1", TenantID: "tenant-a", Role: authz.RoleTenantManager}

	err := prov.CanAssign(context.Background(), manager, authz.RoleTenantOwner)
	assert.True(t, errors.Is(err, authz.ErrPrivilegeEscalationDenied))
	auditLogger.AssertExpectations(t)
}

// TestPurpose: Validates that no tenant-tier actor can mint platform roles,
// including self-grant at equal rank semantics.
// Scope: Unit Test
// Security: Tenant actors can never create platform operators
// Expected: tenant_owner granting admin or super_admin is blocked; granting its own role is allowed.
// Test Case ID: PRV-03
func TestProvisioning_TenantTier_CannotGrantAdminTier(t *testing.T) {
	prov := authz.NewProvisioning(relaxedAudit())
	ctx := context.Background()
	owner := authz.Principal{UserID: "own-1", TenantID: "tenant-a", Role: authz.RoleTenantOwner}

	assert.True(t, errors.Is(prov.CanAssign(ctx, owner, authz.RoleAdmin), authz.ErrPrivilegeEscalationDenied))
	assert.True(t, errors.Is(prov.CanAssign(ctx, owner, authz.RoleSuperAdmin), authz.ErrPrivilegeEscalationDenied))

	// Lateral grant at own rank is fine.
	assert.NoError(t, prov.CanAssign(ctx, owner, authz.RoleTenantOwner))
}

// TestPurpose: Validates that undefined roles on either side are rejected as
// integrity faults before any rank comparison happens.
// Scope: Unit Test
// Security: Fail-closed handling of corrupted provisioning requests
// Expected: ErrInvalidRole for an undefined acting or requested role.
// Test Case ID: PRV-04
func TestProvisioning_InvalidRoles_Rejected(t *testing.T) {
	prov := authz.NewProvisioning(relaxedAudit())
	ctx := context.Background()

	broken := authz.Principal{UserID: "actor", TenantID: "tenant-a", Role: authz.Role(42)}
	owner := authz.Principal{UserID: "own-1", TenantID: "tenant-a", Role: authz.RoleTenantOwner}

	assert.True(t, errors.Is(prov.CanAssign(ctx, broken, authz.RoleTenantUser), authz.ErrInvalidRole))
	assert.True(t, errors.Is(prov.CanAssign(ctx, owner, authz.Role(0)), authz.ErrInvalidRole))
}
