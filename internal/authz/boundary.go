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

// Boundary enforces tenant isolation. It runs on every tenant-scoped
// operation, after authentication and before any handler logic, as the last
// line of defense against handlers that forget to filter by tenant.
type Boundary struct {
	auditLogger audit.Logger
}

// NewBoundary creates a tenant boundary enforcer.
func NewBoundary(auditLogger audit.Logger) *Boundary {
	return &Boundary{auditLogger: auditLogger}
}

// RequireTenant allows admin-tier principals unconditionally; a tenant-tier
// principal is allowed iff the target tenant is its own. A mismatch is
// audited as a security event distinct from ordinary permission denial,
// since it indicates either a bug or an attack.
func (b *Boundary) RequireTenant(ctx context.Context, p Principal, targetTenantID string) error {
	if !p.Role.Valid() {
		return fmt.Errorf("principal role %q: %w", p.Role, ErrInvalidRole)
	}
	if p.Role.AdminTier() {
		return nil
	}
	if targetTenantID != "" && p.TenantID == targetTenantID {
		return nil
	}
	b.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantMismatch,
		TenantID: p.TenantID,
		ActorID:  p.UserID,
		Resource: targetTenantID,
		Metadata: map[string]any{"role": p.Role.String()},
	})
	return fmt.Errorf("tenant %s cannot access tenant %s: %w", p.TenantID, targetTenantID, ErrTenantMismatch)
}
