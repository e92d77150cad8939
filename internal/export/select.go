package export

import (
	"strings"

	"go.uber.org/zap"

	"github.com/berinia/export-cli/internal/lead"
)

// DecisionEntry is one lead named by the upstream export decision.
type DecisionEntry struct {
	ID      string `json:"id"`
	Quality string `json:"qualite,omitempty"`
	Reason  string `json:"raison_export,omitempty"`
}

// Decision is the upstream pipeline's verdict on which classified leads
// should go out now and which should wait.
type Decision struct {
	LeadsToExportNow []DecisionEntry `json:"leads_to_export_now"`
	LeadsToDelay     []DecisionEntry `json:"leads_to_delay"`
}

// SelectOptions tunes the fallback passes of SelectLeads.
type SelectOptions struct {
	// Limit bounds the last-resort pass. Zero means 5.
	Limit int
	// ScoreThreshold is the global score cutoff. Zero means 0.7.
	ScoreThreshold float64
}

// SelectLeads picks which classified leads get exported.
// Uses a three-pass fallback:
//  1. Leads named by the decision document
//  2. Qualified leads: classified WARM/HOT, or a warm/hot temperature, or
//     a global score above the threshold
//  3. The first Limit leads of the batch
func SelectLeads(raws []lead.Raw, decision *Decision, opts SelectOptions) []lead.Raw {
	if opts.Limit <= 0 {
		opts.Limit = 5
	}
	if opts.ScoreThreshold <= 0 {
		opts.ScoreThreshold = 0.7
	}

	// Pass 1: explicit decision ids.
	if decision != nil && len(decision.LeadsToExportNow) > 0 {
		wanted := make(map[string]bool, len(decision.LeadsToExportNow))
		for _, e := range decision.LeadsToExportNow {
			wanted[e.ID] = true
		}
		var out []lead.Raw
		for _, r := range raws {
			if wanted[r.ID] {
				out = append(out, r)
			}
		}
		if len(out) > 0 {
			zap.L().Debug("select: decision ids", zap.Int("count", len(out)))
			return out
		}
	}

	// Pass 2: per-lead qualification. Any one signal is enough.
	var out []lead.Raw
	for _, r := range raws {
		if qualifies(r, opts.ScoreThreshold) {
			out = append(out, r)
		}
	}
	if len(out) > 0 {
		zap.L().Debug("select: qualified", zap.Int("count", len(out)))
		return out
	}

	// Pass 3: head of the batch.
	if len(raws) > opts.Limit {
		raws = raws[:opts.Limit]
	}
	zap.L().Debug("select: first leads", zap.Int("count", len(raws)))
	return raws
}

func qualifies(r lead.Raw, scoreThreshold float64) bool {
	if r.Classification != nil && isWarmOrHot(r.Classification.Quality) {
		return true
	}
	if isWarmOrHot(r.Temperature) {
		return true
	}
	return r.GlobalScore > scoreThreshold
}

func isWarmOrHot(temp string) bool {
	switch strings.ToUpper(strings.TrimSpace(temp)) {
	case "WARM", "HOT":
		return true
	}
	return false
}
