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
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salonsight/salonsight/internal/tenant"
)

// QueryExecutor is the external natural-language analytics engine. Its
// correctness is not this service's concern; the authorization core only
// decides whether the call may happen and meters it.
type QueryExecutor interface {
	Execute(ctx context.Context, tenantID, question string) (*QueryResult, error)
}

// QueryResult is the executor's answer.
type QueryResult struct {
	SQL     string `json:"sql,omitempty"`
	Summary string `json:"summary"`
	Rows    []any  `json:"rows,omitempty"`
}

// NoopQueryExecutor acknowledges queries without running them. It stands
// in when no analytics engine is configured, so quota accounting and the
// authorization path can still be exercised end to end.
type NoopQueryExecutor struct{}

func (NoopQueryExecutor) Execute(_ context.Context, _, question string) (*QueryResult, error) {
	return &QueryResult{Summary: fmt.Sprintf("query accepted: %s", question)}, nil
}

type aiQueryRequest struct {
	Question string `json:"question"`
}

// AIQuery runs one metered analytics query. The quota unit is reserved
// before the executor runs and released if the executor fails, so the
// counter only ever reflects queries that actually executed.
func (h *Handler) AIQuery(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	var req aiQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	res, err := h.tenantService.ReserveQuota(r.Context(), tenantID, tenant.ActionAIQuery)
	if err != nil {
		if statusForError(err) == http.StatusTooManyRequests {
			h.meter.QuotaRejections.Add(r.Context(), 1)
		}
		respondWithError(w, err)
		return
	}

	result, err := h.queryExecutor.Execute(r.Context(), tenantID, req.Question)
	if err != nil {
		res.Release()
		respondWithError(w, err)
		return
	}
	res.Confirm()

	respondJSON(w, http.StatusOK, map[string]any{
		"result":    result,
		"remaining": res.Remaining,
	})
}
