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
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/salonsight/salonsight/internal/tenant"
)

type createTenantRequest struct {
	Name       string `json:"name"`
	OwnerEmail string `json:"owner_email"`
	Tier       string `json:"tier"`
}

// CreateTenant provisions a new salon account.
func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	p, _ := GetPrincipal(r.Context())

	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.tenantService.CreateTenant(r.Context(), req.Name, req.OwnerEmail, req.Tier, p.UserID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

// ListTenants lists all tenants (platform scope).
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	tenants, err := h.tenantService.ListTenants(r.Context(), limit, offset)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tenants": tenants})
}

// GetTenant returns one tenant with its usage counters.
func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.tenantService.GetTenant(r.Context(), chi.URLParam(r, "tenantID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// GetUsage reports the counter and ceiling for one action class.
func (h *Handler) GetUsage(w http.ResponseWriter, r *http.Request) {
	class := tenant.ActionClass(r.URL.Query().Get("action"))
	if class == "" {
		class = tenant.ActionAIQuery
	}

	used, limit, err := h.tenantService.Usage(r.Context(), chi.URLParam(r, "tenantID"), class)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"action_class": class,
		"used":         used,
		"limit":        limit,
		"remaining":    limit - used,
	})
}

// SuspendTenant marks a tenant suspended. Super-admin only, enforced by the
// route's exact-role guard.
func (h *Handler) SuspendTenant(w http.ResponseWriter, r *http.Request) {
	p, _ := GetPrincipal(r.Context())
	if err := h.tenantService.Suspend(r.Context(), chi.URLParam(r, "tenantID"), p.UserID); err != nil {
		respondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": tenant.StatusSuspended})
}

// ReinstateTenant returns a suspended tenant to active status.
func (h *Handler) ReinstateTenant(w http.ResponseWriter, r *http.Request) {
	p, _ := GetPrincipal(r.Context())
	if err := h.tenantService.Reinstate(r.Context(), chi.URLParam(r, "tenantID"), p.UserID); err != nil {
		respondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": tenant.StatusActive})
}

// ResetQuotaPeriod zeroes a tenant's counters for a new billing month.
func (h *Handler) ResetQuotaPeriod(w http.ResponseWriter, r *http.Request) {
	p, _ := GetPrincipal(r.Context())
	if err := h.tenantService.ResetPeriod(r.Context(), chi.URLParam(r, "tenantID"), p.UserID); err != nil {
		respondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
