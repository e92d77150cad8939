package export

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/berinia/export-cli/internal/campaign"
	"github.com/berinia/export-cli/internal/lead"
	"github.com/berinia/export-cli/internal/metrics"
)

// Exporter runs a full export batch: normalize, resolve the campaign,
// reconcile each lead.
type Exporter struct {
	normalizer *lead.Normalizer
	resolver   *campaign.Resolver
	reconciler *Reconciler
	now        func() time.Time
}

// NewExporter wires an exporter over the given stores.
func NewExporter(leads lead.Store, resolver *campaign.Resolver) *Exporter {
	return &Exporter{
		normalizer: lead.NewNormalizer(),
		resolver:   resolver,
		reconciler: NewReconciler(leads),
		now:        time.Now,
	}
}

// ExportBatch processes a batch of raw leads and returns the result
// document. It never returns an error: batch-level failures are reported
// inside the result, per-lead failures are counted and the batch goes on.
func (e *Exporter) ExportBatch(ctx context.Context, raws []lead.Raw, explicitCampaignID *int64) *BatchResult {
	result := &BatchResult{
		BatchID:        uuid.NewString(),
		TotalAttempted: len(raws),
		Errors:         []string{},
		LeadsExported:  []string{},
		Timestamp:      e.now().UTC(),
	}

	if len(raws) == 0 {
		result.Success = true
		metrics.RecordBatch("success")
		zap.L().Info("export: empty batch", zap.String("batch_id", result.BatchID))
		return result
	}

	normalized := make([]lead.Normalized, len(raws))
	for i, r := range raws {
		normalized[i] = e.normalizer.Normalize(r)
	}

	campaignID, err := e.resolver.Resolve(ctx, normalized, explicitCampaignID)
	if err != nil {
		result.Success = false
		result.ErrorCount = 1
		result.Errors = append(result.Errors, err.Error())
		metrics.RecordBatch("failed")
		zap.L().Error("export: campaign resolution failed",
			zap.String("batch_id", result.BatchID),
			zap.Error(err),
		)
		return result
	}

	for _, nl := range normalized {
		outcome := e.reconciler.Reconcile(ctx, nl, campaignID)
		metrics.RecordLead(string(outcome.Kind))
		if outcome.Kind == OutcomeRejected {
			result.ErrorCount++
			result.Errors = append(result.Errors, outcome.Err.Error())
			continue
		}
		result.LeadsCount++
		result.LeadsExported = append(result.LeadsExported, nl.SourceID)
	}

	// Success means something made it into the CRM, not that every lead
	// did; downstream branches on this plus error_count.
	result.Success = result.LeadsCount > 0
	metrics.RecordBatch(batchStatus(result))

	zap.L().Info("export: batch done",
		zap.String("batch_id", result.BatchID),
		zap.Int64("campaign_id", campaignID),
		zap.Int("exported", result.LeadsCount),
		zap.Int("errors", result.ErrorCount),
	)
	return result
}

func batchStatus(r *BatchResult) string {
	switch {
	case r.ErrorCount == 0:
		return "success"
	case r.LeadsCount > 0:
		return "partial"
	default:
		return "failed"
	}
}
