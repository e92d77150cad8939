package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/berinia/export-cli/internal/lead"
	"github.com/berinia/export-cli/internal/metrics"
)

// ResolutionError marks a campaign resolution failure. It aborts the whole
// batch: without a campaign no lead in it can be attached to anything.
type ResolutionError struct {
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("campaign: resolution failed: %v", e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ResolverOptions configures auto-created campaigns.
type ResolverOptions struct {
	Agent       string
	TargetLeads int
}

// Resolver picks the campaign a lead batch attaches to.
type Resolver struct {
	store       Store
	agent       string
	targetLeads int
	now         func() time.Time
}

// NewResolver creates a campaign resolver.
func NewResolver(store Store, opts ResolverOptions) *Resolver {
	if opts.TargetLeads <= 0 {
		opts.TargetLeads = DefaultTargetLeads
	}
	return &Resolver{
		store:       store,
		agent:       opts.Agent,
		targetLeads: opts.TargetLeads,
		now:         time.Now,
	}
}

// Resolve returns the campaign id for a batch.
// Uses a four-pass cascade:
//  1. Explicit id requested by the caller, taken as-is
//  2. First campaign id carried by a lead in the batch
//  3. Most recently created campaign
//  4. Auto-created campaign under the default niche
//
// Any store failure is returned as a *ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, leads []lead.Normalized, explicitID *int64) (int64, error) {
	// Pass 1: caller-supplied campaign. No existence check, the caller
	// owns the id it asked for.
	if explicitID != nil {
		zap.L().Debug("resolve: explicit campaign", zap.Int64("campaign_id", *explicitID))
		return *explicitID, nil
	}

	// Pass 2: campaign carried by the batch itself.
	for _, l := range leads {
		if l.CampaignID != nil {
			zap.L().Debug("resolve: campaign from lead",
				zap.String("source_id", l.SourceID),
				zap.Int64("campaign_id", *l.CampaignID),
			)
			return *l.CampaignID, nil
		}
	}

	// Pass 3: newest existing campaign.
	existing, err := r.store.ListRecentFirst(ctx)
	if err != nil {
		return 0, &ResolutionError{Err: err}
	}
	if len(existing) > 0 {
		zap.L().Debug("resolve: most recent campaign",
			zap.Int64("campaign_id", existing[0].ID),
			zap.String("nom", existing[0].Name),
		)
		return existing[0].ID, nil
	}

	// Pass 4: nothing exists yet, create one.
	id, err := r.create(ctx)
	if err != nil {
		return 0, &ResolutionError{Err: err}
	}
	return id, nil
}

func (r *Resolver) create(ctx context.Context) (int64, error) {
	nicheID, err := r.store.FindOrCreateDefaultNiche(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "campaign: default niche")
	}

	now := r.now().UTC()
	id, err := r.store.Create(ctx, Record{
		Name:        fmt.Sprintf("Campagne Auto - %s", now.Format("02/01/2006 15:04")),
		Description: "Campagne créée automatiquement lors d'un export",
		Status:      StatusActive,
		TargetLeads: r.targetLeads,
		Agent:       r.agent,
		NicheID:     nicheID,
		CreatedAt:   now,
	})
	if err != nil {
		return 0, eris.Wrap(err, "campaign: auto-create")
	}

	metrics.RecordCampaignCreated()
	zap.L().Info("resolve: created campaign",
		zap.Int64("campaign_id", id),
		zap.Int64("niche_id", nicheID),
	)
	return id, nil
}
