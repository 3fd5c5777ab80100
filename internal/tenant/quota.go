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
	"fmt"
	"sync"
)

var (
	// ErrQuotaExceeded is returned when a tenant's metered-action ceiling is
	// reached. A recoverable business condition: the caller should suggest a
	// plan upgrade or wait for the period reset.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrUnknownActionClass is returned for an action class the tenant has
	// no limit configured for.
	ErrUnknownActionClass = errors.New("unknown action class")
)

// Reservation is a provisional quota increment. The increment only sticks for
// the billing period once the metered action is confirmed; if the downstream
// action never executes (client disconnect, executor failure), Release
// returns the unit so the counter never drifts above real usage.
type Reservation struct {
	TenantID  string
	Class     ActionClass
	Remaining int64

	release func()
	once    sync.Once
}

// NewReservation builds a reservation around a release callback. Used by
// QuotaTracker implementations outside this package.
func NewReservation(tenantID string, class ActionClass, remaining int64, release func()) *Reservation {
	return &Reservation{TenantID: tenantID, Class: class, Remaining: remaining, release: release}
}

// Confirm commits the reservation. The increment becomes final.
func (r *Reservation) Confirm() {
	r.once.Do(func() {})
}

// Release rolls the increment back. Safe to call after Confirm; whichever
// runs first wins and the other is a no-op.
func (r *Reservation) Release() {
	r.once.Do(r.release)
}

// QuotaTracker enforces per-tenant ceilings on metered action classes. The
// check and the increment are one atomic unit; under concurrent requests the
// counter never exceeds the limit.
type QuotaTracker interface {
	// Reserve atomically checks the tenant's counter for the action class
	// against its limit and increments it. At or above the limit it fails
	// with ErrQuotaExceeded without mutating state.
	Reserve(ctx context.Context, tenantID string, class ActionClass) (*Reservation, error)

	// Usage returns the current counter and limit for the action class.
	Usage(ctx context.Context, tenantID string, class ActionClass) (used, limit int64, err error)

	// ResetPeriod zeroes all counters for a tenant. Called by the billing
	// job at the start of each calendar month.
	ResetPeriod(ctx context.Context, tenantID string) error
}

// counters is the mutable per-tenant quota state. Each tenant's counters are
// independent; no lock is ever shared across tenant boundaries.
type counters struct {
	mu     sync.Mutex
	used   map[ActionClass]int64
	limits map[ActionClass]int64
}

// MemoryQuotaTracker is the in-process QuotaTracker. Guard components around
// it are stateless; this is the one place in the authorization core that owns
// genuinely shared mutable state, so the check-then-increment runs under a
// per-tenant mutex held only for the duration of the check and increment.
type MemoryQuotaTracker struct {
	mu      sync.RWMutex
	tenants map[string]*counters
}

// NewMemoryQuotaTracker creates an empty tracker.
func NewMemoryQuotaTracker() *MemoryQuotaTracker {
	return &MemoryQuotaTracker{tenants: make(map[string]*counters)}
}

// Register installs limits for a tenant, preserving any usage already
// accumulated this period. Limits for classes not present are removed.
func (t *MemoryQuotaTracker) Register(tenantID string, limits map[ActionClass]int64) {
	t.mu.Lock()
	c, ok := t.tenants[tenantID]
	if !ok {
		c = &counters{used: make(map[ActionClass]int64)}
		t.tenants[tenantID] = c
	}
	t.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.limits = make(map[ActionClass]int64, len(limits))
	for class, limit := range limits {
		c.limits[class] = limit
	}
}

func (t *MemoryQuotaTracker) get(tenantID string) (*counters, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.tenants[tenantID]
	return c, ok
}

// Reserve implements QuotaTracker.
func (t *MemoryQuotaTracker) Reserve(ctx context.Context, tenantID string, class ActionClass) (*Reservation, error) {
	c, ok := t.get(tenantID)
	if !ok {
		return nil, fmt.Errorf("tenant %s: %w", tenantID, ErrTenantNotFound)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	limit, ok := c.limits[class]
	if !ok {
		return nil, fmt.Errorf("tenant %s action %s: %w", tenantID, class, ErrUnknownActionClass)
	}
	if c.used[class] >= limit {
		return nil, fmt.Errorf("tenant %s action %s at %d/%d: %w", tenantID, class, c.used[class], limit, ErrQuotaExceeded)
	}
	c.used[class]++
	remaining := limit - c.used[class]

	return &Reservation{
		TenantID:  tenantID,
		Class:     class,
		Remaining: remaining,
		release: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.used[class] > 0 {
				c.used[class]--
			}
		},
	}, nil
}

// Usage implements QuotaTracker.
func (t *MemoryQuotaTracker) Usage(ctx context.Context, tenantID string, class ActionClass) (int64, int64, error) {
	c, ok := t.get(tenantID)
	if !ok {
		return 0, 0, fmt.Errorf("tenant %s: %w", tenantID, ErrTenantNotFound)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	limit, ok := c.limits[class]
	if !ok {
		return 0, 0, fmt.Errorf("tenant %s action %s: %w", tenantID, class, ErrUnknownActionClass)
	}
	return c.used[class], limit, nil
}

// ResetPeriod implements QuotaTracker.
func (t *MemoryQuotaTracker) ResetPeriod(ctx context.Context, tenantID string) error {
	c, ok := t.get(tenantID)
	if !ok {
		return fmt.Errorf("tenant %s: %w", tenantID, ErrTenantNotFound)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.used = make(map[ActionClass]int64)
	return nil
}
