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

import "errors"

// Domain errors. Every failure is terminal for the current request and none
// is fatal to the process; the transport layer maps these to status codes.
var (
	// ErrUnauthenticated is returned when the credential is missing,
	// malformed, or expired.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidRole is returned when a role claim or a requested role is not
	// one of the defined roles. This is a data-integrity fault, not an
	// ordinary denial, and is logged as such.
	ErrInvalidRole = errors.New("invalid role")

	// ErrPermissionDenied is returned when the principal's role does not
	// carry the required permission.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrRoleMismatch is returned by exact-role guards.
	ErrRoleMismatch = errors.New("role mismatch")

	// ErrTenantMismatch is returned when a tenant-tier principal targets a
	// resource outside its own tenant. Audited as a security event.
	ErrTenantMismatch = errors.New("tenant mismatch")

	// ErrPrivilegeEscalationDenied is returned when a provisioning request
	// would grant a role above the acting principal's rank.
	ErrPrivilegeEscalationDenied = errors.New("privilege escalation denied")
)
