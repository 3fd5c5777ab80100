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

	"github.com/go-chi/chi/v5"

	"github.com/salonsight/salonsight/internal/authz"
	"github.com/salonsight/salonsight/internal/identity"
)

type createUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser provisions a user inside the tenant. The identity service runs
// the permission, boundary, and escalation guards before any effect.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	p, _ := GetPrincipal(r.Context())

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := authz.ParseRole(req.Role)
	if err != nil {
		respondWithError(w, err)
		return
	}

	user, err := h.identityService.CreateUser(r.Context(), p, identity.CreateUserInput{
		TenantID: chi.URLParam(r, "tenantID"),
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// ListUsers lists the tenant's users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, _ := GetPrincipal(r.Context())

	users, err := h.identityService.ListTenantUsers(r.Context(), p, chi.URLParam(r, "tenantID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// ChangeUserRole promotes or demotes a user, under the escalation guard.
func (h *Handler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	p, _ := GetPrincipal(r.Context())

	var req changeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := authz.ParseRole(req.Role)
	if err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.identityService.ChangeRole(r.Context(), p, chi.URLParam(r, "userID"), role); err != nil {
		respondWithError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"role": role.String()})
}
