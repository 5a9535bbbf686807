package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/planner"
)

// Planner requests a study plan from the external planning service and
// normalizes the response into the domain shape. Every failure mode is an
// error return; the caller decides to fall back, never this layer.
type Planner struct {
	client Client
	log    planner.Logger
}

// NewPlanner creates a Planner backed by a planning-service client.
func NewPlanner(client Client, log planner.Logger) *Planner {
	if log == nil {
		log = planner.NopLogger
	}
	return &Planner{client: client, log: log}
}

// RequestPlan builds the planning prompt from the snapshot, sends it, and
// normalizes the response. Without a credential it returns ErrNoCredential
// immediately, before any network traffic.
func (p *Planner) RequestPlan(ctx context.Context, in planner.PlanInput, now time.Time) (*domain.StudyPlan, error) {
	if !p.client.Available() {
		return nil, ErrNoCredential
	}

	prompt := BuildPlanningPrompt(in, now)
	resp, err := p.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("requesting plan: %w", err)
	}

	parsed, err := ExtractJSON[planResponse](resp.Text, validatePlanResponse)
	if err != nil {
		return nil, fmt.Errorf("parsing plan response: %w", err)
	}

	plan, err := normalizePlan(in, now, parsed, p.log)
	if err != nil {
		return nil, fmt.Errorf("normalizing plan response: %w", err)
	}
	return plan, nil
}
