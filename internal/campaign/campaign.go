// Package campaign models CRM campaigns and resolves which campaign a
// batch of exported leads is attached to.
package campaign

import "time"

const (
	// StatusActive marks a campaign as accepting leads.
	StatusActive = "active"

	// DefaultTargetLeads is the lead target assigned to auto-created
	// campaigns.
	DefaultTargetLeads = 100

	// DefaultNicheName and DefaultNicheDescription identify the niche
	// auto-created campaigns attach to when none exists.
	DefaultNicheName        = "Default"
	DefaultNicheDescription = "Default niche for testing"
)

// Record is a persisted campaign row.
type Record struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"nom" db:"nom"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"statut" db:"statut"`
	TargetLeads int       `json:"target_leads" db:"target_leads"`
	Agent       string    `json:"agent" db:"agent"`
	NicheID     int64     `json:"niche_id" db:"niche_id"`
	CreatedAt   time.Time `json:"date_creation" db:"date_creation"`
}

// Niche is a persisted niche row. Campaigns group under niches.
type Niche struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"nom" db:"nom"`
	Description string `json:"description" db:"description"`
}
