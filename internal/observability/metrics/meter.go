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

package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Config holds metrics configuration
type Config struct {
	Enabled bool
}

// Meter wraps OpenTelemetry meter
type Meter struct {
	meter metric.Meter

	// Authorization decision counters, labelled at record time.
	DecisionsAllowed metric.Int64Counter
	DecisionsDenied  metric.Int64Counter
	QuotaRejections  metric.Int64Counter
}

// New creates a new meter instance
func New(ctx context.Context, cfg Config, serviceName string) (*Meter, error) {
	var meter metric.Meter
	if cfg.Enabled {
		meter = otel.Meter(serviceName)
	} else {
		meter = otel.Meter("noop")
	}

	m := &Meter{meter: meter}

	var err error
	if m.DecisionsAllowed, err = meter.Int64Counter(
		"authz.decisions.allowed",
		metric.WithDescription("Requests allowed by the authorization core"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.DecisionsDenied, err = meter.Int64Counter(
		"authz.decisions.denied",
		metric.WithDescription("Requests denied by the authorization core"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.QuotaRejections, err = meter.Int64Counter(
		"authz.quota.rejections",
		metric.WithDescription("Metered actions refused at the tenant ceiling"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	return m, nil
}

// GetMeter returns the underlying meter
func (m *Meter) GetMeter() metric.Meter {
	return m.meter
}
