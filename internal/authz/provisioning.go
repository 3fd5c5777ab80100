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

import (
	"context"
	"fmt"

	"github.com/salonsight/salonsight/internal/audit"
)

// Provisioning constrains the roles a tenant-tier principal may grant when
// creating or promoting users. Admin-tier actors are exempt; the constraint
// exists for tenant self-service provisioning only. It has no state of its
// own and is evaluated once per user-creation or promotion request.
type Provisioning struct {
	auditLogger audit.Logger
}

// NewProvisioning creates a provisioning guard.
func NewProvisioning(auditLogger audit.Logger) *Provisioning {
	return &Provisioning{auditLogger: auditLogger}
}

// CanAssign allows the assignment iff the requested role is tenant-tier and
// does not outrank the acting principal. A single rank inequality over the
// closed role set replaces any hand-maintained adjacency list, so there is
// no entry to forget. A tenant-tier actor can never grant an admin-tier
// role, whatever its own rank.
func (g *Provisioning) CanAssign(ctx context.Context, acting Principal, requested Role) error {
	if !acting.Role.Valid() || !requested.Valid() {
		return fmt.Errorf("provisioning roles %q -> %q: %w", acting.Role, requested, ErrInvalidRole)
	}
	if acting.Role.AdminTier() {
		return nil
	}
	if requested.TenantTier() && requested.Rank() <= acting.Role.Rank() {
		return nil
	}
	g.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeEscalationBlocked,
		TenantID: acting.TenantID,
		ActorID:  acting.UserID,
		Resource: requested.String(),
		Metadata: map[string]any{"acting_role": acting.Role.String()},
	})
	return fmt.Errorf("role %s cannot grant %s: %w", acting.Role, requested, ErrPrivilegeEscalationDenied)
}
