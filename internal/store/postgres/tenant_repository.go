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

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/salonsight/salonsight/internal/tenant"
)

// TenantRepository implements tenant.Repository
type TenantRepository struct {
	db *DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create inserts the tenant and one quota row per metered action class, in a
// single transaction.
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	_, err = tx.Exec(ctx, `
		INSERT INTO tenants (id, name, owner_email, subscription_tier, subscription_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID, t.Name, t.OwnerEmail, t.SubscriptionTier, t.SubscriptionStatus, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert tenant: %w", err)
	}

	for class, limit := range t.UsageLimits {
		_, err = tx.Exec(ctx, `
			INSERT INTO tenant_quotas (tenant_id, action_class, used_count, usage_limit)
			VALUES ($1, $2, 0, $3)
		`, t.ID, string(class), limit)
		if err != nil {
			return fmt.Errorf("failed to insert quota row: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	t.CreatedAt = now
	t.UpdatedAt = now
	return nil
}

// GetByID retrieves a tenant with its quota counters and limits.
func (r *TenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	t := &tenant.Tenant{}
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, name, owner_email, subscription_tier, subscription_status, created_at, updated_at
		FROM tenants WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.OwnerEmail, &t.SubscriptionTier, &t.SubscriptionStatus, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, tenant.ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tenant: %w", err)
	}

	if err := r.loadQuotas(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetByName retrieves a tenant by name.
func (r *TenantRepository) GetByName(ctx context.Context, name string) (*tenant.Tenant, error) {
	var id string
	err := r.db.pool.QueryRow(ctx, `SELECT id FROM tenants WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, tenant.ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tenant: %w", err)
	}
	return r.GetByID(ctx, id)
}

// UpdateStatus changes the subscription status.
func (r *TenantRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.pool.Exec(ctx, `
		UPDATE tenants SET subscription_status = $2, updated_at = now() WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update tenant status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

// List retrieves tenants with pagination.
func (r *TenantRepository) List(ctx context.Context, limit, offset int) ([]*tenant.Tenant, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, owner_email, subscription_tier, subscription_status, created_at, updated_at
		FROM tenants ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*tenant.Tenant
	for rows.Next() {
		t := &tenant.Tenant{}
		if err := rows.Scan(&t.ID, &t.Name, &t.OwnerEmail, &t.SubscriptionTier, &t.SubscriptionStatus, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *TenantRepository) loadQuotas(ctx context.Context, t *tenant.Tenant) error {
	rows, err := r.db.pool.Query(ctx, `
		SELECT action_class, used_count, usage_limit FROM tenant_quotas WHERE tenant_id = $1
	`, t.ID)
	if err != nil {
		return fmt.Errorf("failed to query quotas: %w", err)
	}
	defer rows.Close()

	t.UsageCounters = make(map[tenant.ActionClass]int64)
	t.UsageLimits = make(map[tenant.ActionClass]int64)
	for rows.Next() {
		var class string
		var used, limit int64
		if err := rows.Scan(&class, &used, &limit); err != nil {
			return fmt.Errorf("failed to scan quota: %w", err)
		}
		t.UsageCounters[tenant.ActionClass(class)] = used
		t.UsageLimits[tenant.ActionClass(class)] = limit
	}
	return rows.Err()
}
