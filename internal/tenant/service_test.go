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
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salonsight/salonsight/internal/audit"
)

// mockRepo implements Repository for testing
type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, t *Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tenant), args.Error(1)
}

func (m *mockRepo) GetByName(ctx context.Context, name string) (*Tenant, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tenant), args.Error(1)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]*Tenant, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Tenant), args.Error(1)
}

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

// TestPurpose: Validates tenant creation defaults: trial status, tier quota
// ceilings, a usable UUID, and an audit record.
// Scope: Unit Test
// Security: New tenants start metered, never unlimited
// Expected: Created tenant is on trial with starter limits; a tenant_created event is logged.
// Test Case ID: TEN-01
func TestService_CreateTenant_Defaults(t *testing.T) {
	repo := new(mockRepo)
	auditLogger := new(mockAudit)
	tracker := NewMemoryQuotaTracker()
	service := NewService(repo, tracker, auditLogger)
	ctx := context.Background()

	repo.On("GetByName", ctx, "Polished Nails").Return((*Tenant)(nil), ErrTenantNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*tenant.Tenant")).Return(nil)
	auditLogger.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeTenantCreated && e.ActorID == "op-1"
	})).Return().Once()

	created, err := service.CreateTenant(ctx, "Polished Nails", "owner@example.com", "", "op-1")
	require.NoError(t, err)

	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, StatusTrial, created.SubscriptionStatus)
	assert.Equal(t, TierStarter, created.SubscriptionTier)
	assert.Equal(t, DefaultLimits(TierStarter), created.UsageLimits)

	// The tracker picked up the new tenant's ceilings.
	_, limit, err := tracker.Usage(ctx, created.ID, ActionAIQuery)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimits(TierStarter)[ActionAIQuery], limit)

	auditLogger.AssertExpectations(t)
}

// TestPurpose: Validates duplicate-name rejection at creation.
// Scope: Unit Test
// Security: Tenant identity uniqueness
// Expected: Creating a tenant whose name exists fails with ErrTenantAlreadyExists.
// Test Case ID: TEN-02
func TestService_CreateTenant_DuplicateName(t *testing.T) {
	repo := new(mockRepo)
	service := NewService(repo, NewMemoryQuotaTracker(), relaxedAudit())
	ctx := context.Background()

	repo.On("GetByName", ctx, "Polished Nails").Return(&Tenant{ID: "t-1", Name: "Polished Nails"}, nil)

	_, err := service.CreateTenant(ctx, "Polished Nails", "owner@example.com", TierStarter, "op-1")
	assert.True(t, errors.Is(err, ErrTenantAlreadyExists))
}

// TestPurpose: Validates that suspension closes the quota path entirely and
// reinstatement reopens it.
// Scope: Unit Test
// Security: Suspended tenants receive no service
// Expected: ReserveQuota on a suspended tenant fails with ErrTenantSuspended before the tracker is consulted.
// Test Case ID: TEN-03
func TestService_ReserveQuota_SuspendedTenant(t *testing.T) {
	repo := new(mockRepo)
	tracker := NewMemoryQuotaTracker()
	tracker.Register("t-1", DefaultLimits(TierStarter))
	service := NewService(repo, tracker, relaxedAudit())
	ctx := context.Background()

	repo.On("GetByID", ctx, "t-1").Return(&Tenant{
		ID:                 "t-1",
		SubscriptionStatus: StatusSuspended,
	}, nil)

	_, err := service.ReserveQuota(ctx, "t-1", ActionAIQuery)
	assert.True(t, errors.Is(err, ErrTenantSuspended))

	used, _, err := tracker.Usage(ctx, "t-1", ActionAIQuery)
	require.NoError(t, err)
	assert.Equal(t, int64(0), used, "suspended tenant must not consume quota")
}

// TestPurpose: Validates quota exhaustion through the service path, with the
// audit event carrying the counter snapshot.
// Scope: Unit Test
// Security: Business-limit enforcement with an audit trail
// Expected: The reservation past the ceiling fails with ErrQuotaExceeded and logs quota_exhausted with used == limit.
// Test Case ID: TEN-04
func TestService_ReserveQuota_ExhaustionAudited(t *testing.T) {
	repo := new(mockRepo)
	tracker := NewMemoryQuotaTracker()
	tracker.Register("t-1", map[ActionClass]int64{ActionAIQuery: 2})
	auditLogger := new(mockAudit)
	auditLogger.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeQuotaExhausted &&
			e.TenantID == "t-1" &&
			e.Metadata["used"] == int64(2) &&
			e.Metadata["limit"] == int64(2)
	})).Return().Once()
	service := NewService(repo, tracker, auditLogger)
	ctx := context.Background()

	repo.On("GetByID", ctx, "t-1").Return(&Tenant{ID: "t-1", SubscriptionStatus: StatusActive}, nil)

	for i := 0; i < 2; i++ {
		res, err := service.ReserveQuota(ctx, "t-1", ActionAIQuery)
		require.NoError(t, err)
		res.Confirm()
	}

	_, err := service.ReserveQuota(ctx, "t-1", ActionAIQuery)
	assert.True(t, errors.Is(err, ErrQuotaExceeded))
	auditLogger.AssertExpectations(t)
}

// TestPurpose: Validates the suspend/reinstate lifecycle transitions and
// their audit events.
// Scope: Unit Test
// Security: Platform-operator lifecycle actions are traceable
// Expected: Suspend writes suspended status, Reinstate writes active; both log events naming the actor.
// Test Case ID: TEN-05
func TestService_SuspendAndReinstate(t *testing.T) {
	repo := new(mockRepo)
	auditLogger := new(mockAudit)
	service := NewService(repo, NewMemoryQuotaTracker(), auditLogger)
	ctx := context.Background()

	repo.On("GetByID", ctx, "t-1").Return(&Tenant{ID: "t-1", SubscriptionStatus: StatusActive}, nil)
	repo.On("UpdateStatus", ctx, "t-1", StatusSuspended).Return(nil).Once()
	repo.On("UpdateStatus", ctx, "t-1", StatusActive).Return(nil).Once()
	auditLogger.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeTenantSuspended && e.ActorID == "op-1"
	})).Return().Once()
	auditLogger.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeTenantReinstated && e.ActorID == "op-1"
	})).Return().Once()

	require.NoError(t, service.Suspend(ctx, "t-1", "op-1"))
	require.NoError(t, service.Reinstate(ctx, "t-1", "op-1"))

	repo.AssertExpectations(t)
	auditLogger.AssertExpectations(t)
}

// TestPurpose: Validates the billing-period reset through the service.
// Scope: Unit Test
// Security: Period resets are audited platform actions
// Expected: Counters return to zero and a quota_reset event is logged.
// Test Case ID: TEN-06
func TestService_ResetPeriod(t *testing.T) {
	repo := new(mockRepo)
	tracker := NewMemoryQuotaTracker()
	tracker.Register("t-1", map[ActionClass]int64{ActionAIQuery: 10})
	auditLogger := new(mockAudit)
	auditLogger.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeQuotaReset && e.TenantID == "t-1"
	})).Return().Once()
	service := NewService(repo, tracker, auditLogger)
	ctx := context.Background()

	repo.On("GetByID", ctx, "t-1").Return(&Tenant{ID: "t-1", SubscriptionStatus: StatusActive}, nil)

	res, err := service.ReserveQuota(ctx, "t-1", ActionAIQuery)
	require.NoError(t, err)
	res.Confirm()

	require.NoError(t, service.ResetPeriod(ctx, "t-1", "op-1"))

	used, _, err := tracker.Usage(ctx, "t-1", ActionAIQuery)
	require.NoError(t, err)
	assert.Equal(t, int64(0), used)
	auditLogger.AssertExpectations(t)
}
