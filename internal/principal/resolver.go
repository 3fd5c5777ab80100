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

// Package principal turns an authenticated credential into an authz.Principal.
// Token issuance (login, signing) lives outside this service; the resolver
// only verifies and extracts claims.
package principal

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/salonsight/salonsight/internal/authz"
)

// Claims are the verifiable claims carried by a bearer credential.
type Claims struct {
	TenantID string `json:"tenant_id,omitempty"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Resolver validates a bearer credential and constructs a Principal. It is a
// pure function of the credential's claims and holds no per-request state.
type Resolver struct {
	parser *jwt.Parser
	secret []byte
}

// NewResolver creates a resolver verifying HS256 credentials with the given
// signing secret.
func NewResolver(secret []byte) *Resolver {
	return &Resolver{
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
		secret: secret,
	}
}

// Resolve validates the credential and builds the Principal for this request.
// The principal's permissions are derived from the registry at check time,
// never read from the credential, so a stale permission cache cannot outlive
// the request. Malformed or expired credentials fail with ErrUnauthenticated;
// an unknown role claim fails with ErrInvalidRole, which is a data-integrity
// fault rather than an ordinary denial.
func (r *Resolver) Resolve(credential string) (authz.Principal, error) {
	if credential == "" {
		return authz.Principal{}, fmt.Errorf("empty credential: %w", authz.ErrUnauthenticated)
	}

	claims := &Claims{}
	_, err := r.parser.ParseWithClaims(credential, claims, func(t *jwt.Token) (any, error) {
		return r.secret, nil
	})
	if err != nil {
		return authz.Principal{}, fmt.Errorf("credential rejected: %w", errors.Join(err, authz.ErrUnauthenticated))
	}

	if claims.Subject == "" {
		return authz.Principal{}, fmt.Errorf("credential missing subject: %w", authz.ErrUnauthenticated)
	}

	role, err := authz.ParseRole(claims.Role)
	if err != nil {
		return authz.Principal{}, fmt.Errorf("role claim %q: %w", claims.Role, err)
	}

	// Every tenant-tier principal belongs to exactly one tenant; admin-tier
	// principals are tenant-agnostic and carry no tenant at all.
	if role.TenantTier() && claims.TenantID == "" {
		return authz.Principal{}, fmt.Errorf("tenant role without tenant claim: %w", authz.ErrUnauthenticated)
	}
	tenantID := claims.TenantID
	if role.AdminTier() {
		tenantID = ""
	}

	return authz.Principal{
		UserID:   claims.Subject,
		TenantID: tenantID,
		Role:     role,
	}, nil
}
