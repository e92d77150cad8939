// Package export orchestrates CRM export batches: it normalizes incoming
// leads, resolves their campaign, and reconciles each one against the
// store, one transaction per lead.
package export

import "fmt"

// ErrorKind classifies why a single lead was rejected.
type ErrorKind string

const (
	// ErrMissingContactChannel means the lead ended up with neither a
	// phone nor a usable email after normalization.
	ErrMissingContactChannel ErrorKind = "missing_contact_channel"

	// ErrMissingCampaign means no campaign id was available for the lead.
	ErrMissingCampaign ErrorKind = "missing_campaign"

	// ErrStore means the per-lead transaction failed.
	ErrStore ErrorKind = "store_error"
)

// ReconcileError is the per-lead rejection reason. It never aborts the
// batch: the lead is counted and the batch moves on.
type ReconcileError struct {
	Kind     ErrorKind
	SourceID string
	Err      error
}

func (e *ReconcileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lead %s: %s: %v", e.SourceID, e.Kind, e.Err)
	}
	return fmt.Sprintf("lead %s: %s", e.SourceID, e.Kind)
}

func (e *ReconcileError) Unwrap() error { return e.Err }
