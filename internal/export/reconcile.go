package export

import (
	"context"

	"go.uber.org/zap"

	"github.com/berinia/export-cli/internal/lead"
)

// OutcomeKind is what happened to a single lead.
type OutcomeKind string

const (
	OutcomeInserted OutcomeKind = "inserted"
	OutcomeUpdated  OutcomeKind = "updated"
	OutcomeRejected OutcomeKind = "rejected"
)

// Outcome is the result of reconciling one lead. LeadID is the CRM row id
// for inserted and updated leads; Err is set for rejected ones.
type Outcome struct {
	Kind   OutcomeKind
	LeadID int64
	Err    *ReconcileError
}

// Reconciler writes one normalized lead into the CRM, matching duplicates
// by phone first, then by email. Each lead runs in its own transaction so
// a failure never poisons the rest of the batch.
type Reconciler struct {
	store lead.Store
}

// NewReconciler creates a reconciler over the given lead store.
func NewReconciler(store lead.Store) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile inserts or updates one lead under the given campaign. It never
// returns an error: every failure becomes a rejected Outcome.
func (r *Reconciler) Reconcile(ctx context.Context, nl lead.Normalized, campaignID int64) Outcome {
	if campaignID <= 0 {
		return rejected(nl.SourceID, ErrMissingCampaign, nil)
	}
	if nl.Phone == "" && (nl.Email == "" || lead.IsPlaceholder(nl.Email)) {
		return rejected(nl.SourceID, ErrMissingContactChannel, nil)
	}
	nl.CampaignID = &campaignID

	var (
		kind   OutcomeKind
		leadID int64
	)
	err := r.store.InTx(ctx, func(tx lead.Store) error {
		existing, err := r.match(ctx, tx, nl)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := tx.Update(ctx, existing.ID, nl); err != nil {
				return err
			}
			kind, leadID = OutcomeUpdated, existing.ID
			return nil
		}

		id, err := tx.Insert(ctx, nl)
		if err != nil {
			return err
		}
		kind, leadID = OutcomeInserted, id
		return nil
	})
	if err != nil {
		zap.L().Warn("reconcile: lead failed",
			zap.String("source_id", nl.SourceID),
			zap.Error(err),
		)
		return rejected(nl.SourceID, ErrStore, err)
	}

	zap.L().Debug("reconcile: lead written",
		zap.String("source_id", nl.SourceID),
		zap.Int64("lead_id", leadID),
		zap.String("outcome", string(kind)),
	)
	return Outcome{Kind: kind, LeadID: leadID}
}

// match finds an existing CRM row for the lead. Phone wins over email, and
// placeholder emails never match: they are fabricated, so two unrelated
// leads could share one.
func (r *Reconciler) match(ctx context.Context, tx lead.Store, nl lead.Normalized) (*lead.Record, error) {
	if nl.Phone != "" {
		existing, err := tx.FindByPhone(ctx, nl.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}
	if nl.Email != "" && !lead.IsPlaceholder(nl.Email) {
		return tx.FindByEmail(ctx, nl.Email)
	}
	return nil, nil
}

func rejected(sourceID string, kind ErrorKind, err error) Outcome {
	return Outcome{
		Kind: OutcomeRejected,
		Err:  &ReconcileError{Kind: kind, SourceID: sourceID, Err: err},
	}
}
