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

// Principal is the resolved, authenticated actor for one request. It is
// constructed fresh per request from the validated credential and never
// cached beyond it. Permissions are always derived from the registry via the
// role; they are never stored on the principal or in the credential, so a
// stale permission set cannot outlive a single request.
type Principal struct {
	// UserID identifies the authenticated user.
	UserID string

	// TenantID is the tenant the principal belongs to. Empty for admin-tier
	// roles, which are tenant-agnostic.
	TenantID string

	// Role is the principal's privilege tier.
	Role Role
}
