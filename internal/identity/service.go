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

package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/salonsight/salonsight/internal/audit"
	"github.com/salonsight/salonsight/internal/authz"
)

// Service provides user provisioning. Every mutation passes the full guard
// chain before any effect: permission, tenant boundary, then the escalation
// check. A failed check leaves no partial state behind.
type Service struct {
	repo         Repository
	hasher       *PasswordHasher
	guard        *authz.Guard
	boundary     *authz.Boundary
	provisioning *authz.Provisioning
	auditLogger  audit.Logger
}

// NewService creates a new identity service
func NewService(
	repo Repository,
	hasher *PasswordHasher,
	guard *authz.Guard,
	boundary *authz.Boundary,
	provisioning *authz.Provisioning,
	auditLogger audit.Logger,
) *Service {
	return &Service{
		repo:         repo,
		hasher:       hasher,
		guard:        guard,
		boundary:     boundary,
		provisioning: provisioning,
		auditLogger:  auditLogger,
	}
}

// CreateUserInput carries a provisioning request.
type CreateUserInput struct {
	TenantID string
	Email    string
	FullName string
	Password string
	Role     authz.Role
}

// CreateUser provisions a user inside a tenant on behalf of acting. The
// requested role may not outrank the acting principal, and a tenant-tier
// actor can never grant an admin-tier role.
func (s *Service) CreateUser(ctx context.Context, acting authz.Principal, in CreateUserInput) (*User, error) {
	if err := s.guard.RequirePermission(ctx, acting, authz.PermManageUsers); err != nil {
		return nil, err
	}
	if err := s.boundary.RequireTenant(ctx, acting, in.TenantID); err != nil {
		return nil, err
	}
	if err := s.provisioning.CanAssign(ctx, acting, in.Role); err != nil {
		return nil, err
	}

	if in.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if in.Password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("user %q: %w", in.Email, ErrUserAlreadyExists)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tenantID := in.TenantID
	if in.Role.AdminTier() {
		tenantID = ""
	}

	user := &User{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         in.Role,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeUserProvisioned,
		TenantID: in.TenantID,
		ActorID:  acting.UserID,
		Resource: user.ID,
		Metadata: map[string]any{"role": in.Role.String(), "email": in.Email},
	})

	return user, nil
}

// ChangeRole promotes or demotes an existing user, under the same escalation
// constraint as creation.
func (s *Service) ChangeRole(ctx context.Context, acting authz.Principal, userID string, newRole authz.Role) error {
	if err := s.guard.RequirePermission(ctx, acting, authz.PermManageUsers); err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.boundary.RequireTenant(ctx, acting, user.TenantID); err != nil {
		return err
	}
	if err := s.provisioning.CanAssign(ctx, acting, newRole); err != nil {
		return err
	}

	if err := s.repo.UpdateRole(ctx, userID, newRole); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoleChanged,
		TenantID: user.TenantID,
		ActorID:  acting.UserID,
		Resource: userID,
		Metadata: map[string]any{"from": user.Role.String(), "to": newRole.String()},
	})

	return nil
}

// ListTenantUsers lists users of one tenant, boundary-checked.
func (s *Service) ListTenantUsers(ctx context.Context, acting authz.Principal, tenantID string) ([]*User, error) {
	if err := s.guard.RequirePermission(ctx, acting, authz.PermManageUsers); err != nil {
		return nil, err
	}
	if err := s.boundary.RequireTenant(ctx, acting, tenantID); err != nil {
		return nil, err
	}
	return s.repo.ListByTenant(ctx, tenantID)
}
