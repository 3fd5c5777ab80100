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

import "time"

// ActionClass tags a metered operation for quota accounting.
type ActionClass string

const (
	// ActionAIQuery is one natural-language analytics query.
	ActionAIQuery ActionClass = "ai_query"

	// ActionReportExport is one generated report export.
	ActionReportExport ActionClass = "report_export"

	// ActionPOSSync is one point-of-sale data synchronization run.
	ActionPOSSync ActionClass = "pos_sync"
)

// MeteredActions lists every action class tracked per tenant.
var MeteredActions = []ActionClass{ActionAIQuery, ActionReportExport, ActionPOSSync}

// Subscription tiers
const (
	TierStarter      = "starter"
	TierProfessional = "professional"
	TierEnterprise   = "enterprise"
)

// Subscription status
const (
	StatusTrial     = "trial"
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusCancelled = "cancelled"
)

// Tenant represents one salon account. All tenant-scoped data and quotas are
// partitioned by its ID.
type Tenant struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	OwnerEmail         string                `json:"owner_email"`
	SubscriptionTier   string                `json:"subscription_tier"`
	SubscriptionStatus string                `json:"subscription_status"`
	UsageCounters      map[ActionClass]int64 `json:"usage_counters"`
	UsageLimits        map[ActionClass]int64 `json:"usage_limits"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// Operational reports whether the tenant may be served at all. Suspended and
// cancelled tenants are refused before any handler logic runs.
func (t *Tenant) Operational() bool {
	return t.SubscriptionStatus == StatusActive || t.SubscriptionStatus == StatusTrial
}

// tierLimits are the monthly ceilings per subscription tier.
var tierLimits = map[string]map[ActionClass]int64{
	TierStarter: {
		ActionAIQuery:      1000,
		ActionReportExport: 50,
		ActionPOSSync:      31,
	},
	TierProfessional: {
		ActionAIQuery:      10000,
		ActionReportExport: 500,
		ActionPOSSync:      124,
	},
	TierEnterprise: {
		ActionAIQuery:      100000,
		ActionReportExport: 5000,
		ActionPOSSync:      744,
	},
}

// DefaultLimits returns the quota ceilings for a subscription tier. Unknown
// tiers fall back to starter so a bad tier value never grants unlimited use.
func DefaultLimits(tier string) map[ActionClass]int64 {
	src, ok := tierLimits[tier]
	if !ok {
		src = tierLimits[TierStarter]
	}
	out := make(map[ActionClass]int64, len(src))
	for class, limit := range src {
		out[class] = limit
	}
	return out
}
