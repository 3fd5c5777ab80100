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
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/salonsight/salonsight/internal/observability/logger"
	"github.com/salonsight/salonsight/internal/tenant"
)

// QuotaRepository implements tenant.QuotaTracker against Postgres. The check
// and increment are one conditional UPDATE, so the atomicity holds across
// replicas of this service, not just within one process.
type QuotaRepository struct {
	db *DB
}

// NewQuotaRepository creates a durable quota tracker.
func NewQuotaRepository(db *DB) *QuotaRepository {
	return &QuotaRepository{db: db}
}

// Reserve implements tenant.QuotaTracker.
func (r *QuotaRepository) Reserve(ctx context.Context, tenantID string, class tenant.ActionClass) (*tenant.Reservation, error) {
	var remaining int64
	err := r.db.pool.QueryRow(ctx, `
		UPDATE tenant_quotas
		SET used_count = used_count + 1
		WHERE tenant_id = $1 AND action_class = $2 AND used_count < usage_limit
		RETURNING usage_limit - used_count
	`, tenantID, string(class)).Scan(&remaining)

	if errors.Is(err, pgx.ErrNoRows) {
		// Either the row does not exist or the ceiling is reached.
		var used, limit int64
		probe := r.db.pool.QueryRow(ctx, `
			SELECT used_count, usage_limit FROM tenant_quotas
			WHERE tenant_id = $1 AND action_class = $2
		`, tenantID, string(class)).Scan(&used, &limit)
		if errors.Is(probe, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tenant %s action %s: %w", tenantID, class, tenant.ErrUnknownActionClass)
		}
		if probe != nil {
			return nil, fmt.Errorf("failed to probe quota: %w", probe)
		}
		return nil, fmt.Errorf("tenant %s action %s at %d/%d: %w", tenantID, class, used, limit, tenant.ErrQuotaExceeded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reserve quota: %w", err)
	}

	release := func() {
		// Runs after the request context may be gone; use a fresh one.
		rctx := context.Background()
		if _, err := r.db.pool.Exec(rctx, `
			UPDATE tenant_quotas SET used_count = used_count - 1
			WHERE tenant_id = $1 AND action_class = $2 AND used_count > 0
		`, tenantID, string(class)); err != nil {
			slog.Error("failed to release quota reservation",
				logger.TenantID(tenantID), logger.ActionClass(string(class)), logger.Error(err))
		}
	}

	return tenant.NewReservation(tenantID, class, remaining, release), nil
}

// Usage implements tenant.QuotaTracker.
func (r *QuotaRepository) Usage(ctx context.Context, tenantID string, class tenant.ActionClass) (int64, int64, error) {
	var used, limit int64
	err := r.db.pool.QueryRow(ctx, `
		SELECT used_count, usage_limit FROM tenant_quotas
		WHERE tenant_id = $1 AND action_class = $2
	`, tenantID, string(class)).Scan(&used, &limit)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, fmt.Errorf("tenant %s action %s: %w", tenantID, class, tenant.ErrUnknownActionClass)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query quota: %w", err)
	}
	return used, limit, nil
}

// ResetPeriod implements tenant.QuotaTracker.
func (r *QuotaRepository) ResetPeriod(ctx context.Context, tenantID string) error {
	tag, err := r.db.pool.Exec(ctx, `
		UPDATE tenant_quotas SET used_count = 0 WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return fmt.Errorf("failed to reset quota period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}
