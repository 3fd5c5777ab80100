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
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/salonsight/salonsight/internal/authz"
	"github.com/salonsight/salonsight/internal/observability/logger"
)

// Guard chain per tenant-scoped request:
// authenticate → permission/role check → tenant boundary → handler.
// The boundary check runs on EVERY tenant-scoped route, not only
// provisioning; it is the last line of defense against a handler that
// forgets to filter by tenant.

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				slog.InfoContext(r.Context(), "http_request",
					logger.RequestID(middleware.GetReqID(r.Context())),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.RemoteAddr(r.RemoteAddr),
					logger.StatusCode(ww.Status()),
					logger.Duration(time.Since(start).Milliseconds()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// AuthMiddleware resolves the bearer credential into a Principal and stores
// it in the request context. The principal is built fresh per request; no
// resolution result is cached across requests.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer credential")
			return
		}

		p, err := h.resolver.Resolve(token)
		if err != nil {
			respondWithError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequirePermission gates the route behind one permission.
func (h *Handler) RequirePermission(perm authz.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := GetPrincipal(r.Context())
			if !ok {
				respondError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if err := h.guard.RequirePermission(r.Context(), p, perm); err != nil {
				h.meter.DecisionsDenied.Add(r.Context(), 1)
				respondWithError(w, err)
				return
			}
			h.meter.DecisionsAllowed.Add(r.Context(), 1)
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole gates the route behind an exact role.
func (h *Handler) RequireRole(role authz.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := GetPrincipal(r.Context())
			if !ok {
				respondError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if err := h.guard.RequireRole(r.Context(), p, role); err != nil {
				h.meter.DecisionsDenied.Add(r.Context(), 1)
				respondWithError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TenantBoundary enforces tenant isolation on routes carrying a {tenantID}
// path parameter. The target tenant comes from the route, never from a
// client-supplied header.
func (h *Handler) TenantBoundary(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := GetPrincipal(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		target := chi.URLParam(r, "tenantID")
		if err := h.boundary.RequireTenant(r.Context(), p, target); err != nil {
			h.meter.DecisionsDenied.Add(r.Context(), 1)
			respondWithError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
