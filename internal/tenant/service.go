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

package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salonsight/salonsight/internal/audit"
)

// Service provides tenant management and quota business logic
type Service struct {
	repo        Repository
	tracker     QuotaTracker
	auditLogger audit.Logger
}

// NewService creates a new tenant service
func NewService(repo Repository, tracker QuotaTracker, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		tracker:     tracker,
		auditLogger: auditLogger,
	}
}

// CreateTenant creates a new tenant on the given subscription tier with the
// tier's default quota limits.
func (s *Service) CreateTenant(ctx context.Context, name, ownerEmail, tier string, actorID string) (*Tenant, error) {
	if name == "" {
		return nil, fmt.Errorf("tenant name is required")
	}
	if ownerEmail == "" {
		return nil, fmt.Errorf("owner email is required")
	}
	if tier == "" {
		tier = TierStarter
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("tenant %q: %w", name, ErrTenantAlreadyExists)
	}

	now := time.Now()
	t := &Tenant{
		ID:                 uuid.NewString(),
		Name:               name,
		OwnerEmail:         ownerEmail,
		SubscriptionTier:   tier,
		SubscriptionStatus: StatusTrial,
		UsageCounters:      make(map[ActionClass]int64),
		UsageLimits:        DefaultLimits(tier),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	if mem, ok := s.tracker.(*MemoryQuotaTracker); ok {
		mem.Register(t.ID, t.UsageLimits)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantCreated,
		TenantID: t.ID,
		ActorID:  actorID,
		Resource: name,
		Metadata: map[string]any{"tier": tier},
	})

	return t, nil
}

// GetTenant retrieves a tenant by ID
func (s *Service) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	if id == "" {
		return nil, fmt.Errorf("empty tenant id: %w", ErrTenantNotFound)
	}
	return s.repo.GetByID(ctx, id)
}

// ListTenants lists tenants with pagination
func (s *Service) ListTenants(ctx context.Context, limit, offset int) ([]*Tenant, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// RequireOperational fails with ErrTenantSuspended unless the tenant's
// subscription allows service.
func (s *Service) RequireOperational(ctx context.Context, id string) (*Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.Operational() {
		return nil, fmt.Errorf("tenant %s status %s: %w", id, t.SubscriptionStatus, ErrTenantSuspended)
	}
	return t, nil
}

// Suspend marks a tenant suspended. Callers gate this behind the super-admin
// role check; the service records the audit trail.
func (s *Service) Suspend(ctx context.Context, id, actorID string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusSuspended); err != nil {
		return fmt.Errorf("failed to suspend tenant: %w", err)
	}
	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantSuspended,
		TenantID: id,
		ActorID:  actorID,
	})
	return nil
}

// Reinstate returns a suspended tenant to active status.
func (s *Service) Reinstate(ctx context.Context, id, actorID string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusActive); err != nil {
		return fmt.Errorf("failed to reinstate tenant: %w", err)
	}
	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantReinstated,
		TenantID: id,
		ActorID:  actorID,
	})
	return nil
}

// ReserveQuota checks the tenant is operational, then atomically reserves one
// unit of the action class. Exhaustion is audited but is a business
// condition, not a security event.
func (s *Service) ReserveQuota(ctx context.Context, tenantID string, class ActionClass) (*Reservation, error) {
	if _, err := s.RequireOperational(ctx, tenantID); err != nil {
		return nil, err
	}
	res, err := s.tracker.Reserve(ctx, tenantID, class)
	if err != nil {
		if used, limit, uerr := s.tracker.Usage(ctx, tenantID, class); uerr == nil {
			s.auditLogger.Log(ctx, audit.Event{
				Type:     audit.TypeQuotaExhausted,
				TenantID: tenantID,
				Resource: string(class),
				Metadata: map[string]any{"used": used, "limit": limit},
			})
		}
		return nil, err
	}
	return res, nil
}

// Usage reports the tenant's counter and ceiling for one action class.
func (s *Service) Usage(ctx context.Context, tenantID string, class ActionClass) (used, limit int64, err error) {
	return s.tracker.Usage(ctx, tenantID, class)
}

// ResetPeriod zeroes a tenant's counters for the new billing month.
func (s *Service) ResetPeriod(ctx context.Context, tenantID, actorID string) error {
	if err := s.tracker.ResetPeriod(ctx, tenantID); err != nil {
		return err
	}
	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeQuotaReset,
		TenantID: tenantID,
		ActorID:  actorID,
	})
	return nil
}
