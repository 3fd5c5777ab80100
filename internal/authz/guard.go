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

// Guard gates operations behind a required permission or role. It is pure
// with respect to shared state: the registry is immutable and the guard holds
// no per-request state, so concurrent use needs no locking. Checks are
// short-circuiting; an operation that stacks several guards surfaces the
// first failure.
type Guard struct {
	registry    *Registry
	auditLogger audit.Logger
}

// NewGuard creates a guard over the given registry.
func NewGuard(registry *Registry, auditLogger audit.Logger) *Guard {
	return &Guard{registry: registry, auditLogger: auditLogger}
}

// RequirePermission allows the principal iff its role carries the permission.
func (g *Guard) RequirePermission(ctx context.Context, p Principal, perm Permission) error {
	if !p.Role.Valid() {
		return fmt.Errorf("principal role %q: %w", p.Role, ErrInvalidRole)
	}
	if !perm.Valid() {
		return fmt.Errorf("permission %q: %w", perm, ErrInvalidRole)
	}
	if g.registry.HasPermission(p.Role, perm) {
		return nil
	}
	g.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeAccessDenied,
		TenantID: p.TenantID,
		ActorID:  p.UserID,
		Resource: perm.String(),
		Metadata: map[string]any{"role": p.Role.String()},
	})
	return fmt.Errorf("role %s lacks %s: %w", p.Role, perm, ErrPermissionDenied)
}

// RequireRole allows the principal iff its role matches exactly. Used for
// operations reserved to a single tier, such as tenant suspension.
func (g *Guard) RequireRole(ctx context.Context, p Principal, role Role) error {
	if !p.Role.Valid() {
		return fmt.Errorf("principal role %q: %w", p.Role, ErrInvalidRole)
	}
	if p.Role == role {
		return nil
	}
	g.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeAccessDenied,
		TenantID: p.TenantID,
		ActorID:  p.UserID,
		Resource: role.String(),
		Metadata: map[string]any{"role": p.Role.String(), "check": "require_role"},
	})
	return fmt.Errorf("role %s is not %s: %w", p.Role, role, ErrRoleMismatch)
}

// RequireAnyRole allows the principal iff its role is one of roles.
func (g *Guard) RequireAnyRole(ctx context.Context, p Principal, roles ...Role) error {
	if !p.Role.Valid() {
		return fmt.Errorf("principal role %q: %w", p.Role, ErrInvalidRole)
	}
	for _, role := range roles {
		if p.Role == role {
			return nil
		}
	}
	g.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeAccessDenied,
		TenantID: p.TenantID,
		ActorID:  p.UserID,
		Metadata: map[string]any{"role": p.Role.String(), "check": "require_any_role"},
	})
	return fmt.Errorf("role %s not permitted: %w", p.Role, ErrRoleMismatch)
}
