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

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/salonsight/salonsight/internal/authz"
	"github.com/salonsight/salonsight/internal/identity"
	"github.com/salonsight/salonsight/internal/tenant"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps the core's error taxonomy to transport status codes.
// Denials are never downgraded; quota exhaustion gets its own code because it
// is an expected business condition rather than a security fault.
func statusForError(err error) int {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, authz.ErrInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, authz.ErrPermissionDenied),
		errors.Is(err, authz.ErrRoleMismatch),
		errors.Is(err, authz.ErrTenantMismatch),
		errors.Is(err, authz.ErrPrivilegeEscalationDenied),
		errors.Is(err, tenant.ErrTenantSuspended):
		return http.StatusForbidden
	case errors.Is(err, tenant.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, tenant.ErrTenantNotFound),
		errors.Is(err, identity.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, tenant.ErrTenantAlreadyExists),
		errors.Is(err, identity.ErrUserAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in logs, not responses.
		msg = "internal server error"
	}
	respondError(w, status, msg)
}
