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
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/salonsight/salonsight/internal/authz"
	"github.com/salonsight/salonsight/internal/identity"
	"github.com/salonsight/salonsight/internal/observability/metrics"
	"github.com/salonsight/salonsight/internal/principal"
	"github.com/salonsight/salonsight/internal/tenant"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	resolver        *principal.Resolver
	guard           *authz.Guard
	boundary        *authz.Boundary
	identityService *identity.Service
	tenantService   *tenant.Service
	queryExecutor   QueryExecutor
	meter           *metrics.Meter
}

// NewHandler creates a new HTTP handler
func NewHandler(
	resolver *principal.Resolver,
	guard *authz.Guard,
	boundary *authz.Boundary,
	identityService *identity.Service,
	tenantService *tenant.Service,
	queryExecutor QueryExecutor,
	meter *metrics.Meter,
) *Handler {
	return &Handler{
		resolver:        resolver,
		guard:           guard,
		boundary:        boundary,
		identityService: identityService,
		tenantService:   tenantService,
		queryExecutor:   queryExecutor,
		meter:           meter,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.AuthMiddleware)

		// Platform-scoped tenant management (admin tier).
		r.With(h.RequirePermission(authz.PermManageAllTenants)).
			Post("/tenants", h.CreateTenant)
		r.With(h.RequirePermission(authz.PermManageAllTenants)).
			Get("/tenants", h.ListTenants)

		// Tenant-scoped routes. The boundary middleware runs on every one of
		// them; per-route permission checks compose on top.
		r.Route("/tenants/{tenantID}", func(r chi.Router) {
			r.Use(h.TenantBoundary)

			r.With(h.RequirePermission(authz.PermManageTenant)).
				Get("/", h.GetTenant)
			r.With(h.RequirePermission(authz.PermViewAnalytics)).
				Get("/usage", h.GetUsage)

			// Suspension and reinstatement are reserved to the platform
			// operator role exactly, not to any permission set.
			r.With(h.RequireRole(authz.RoleSuperAdmin)).
				Post("/suspend", h.SuspendTenant)
			r.With(h.RequireRole(authz.RoleSuperAdmin)).
				Post("/reinstate", h.ReinstateTenant)
			r.With(h.RequireRole(authz.RoleSuperAdmin)).
				Post("/quota/reset", h.ResetQuotaPeriod)

			// Provisioning. The identity service re-runs the permission and
			// boundary checks itself and adds the escalation guard.
			r.Post("/users", h.CreateUser)
			r.Get("/users", h.ListUsers)
			r.Put("/users/{userID}/role", h.ChangeUserRole)

			// Metered AI query.
			r.With(h.RequirePermission(authz.PermUseAIQuery)).
				Post("/ai/query", h.AIQuery)
		})
	})

	return r
}

// HealthCheck responds 200 when the service is up.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
