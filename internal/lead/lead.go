// Package lead defines the lead records flowing through the CRM export
// pipeline and the stores that persist them.
package lead

import "time"

const (
	// StatusNew is the status assigned to leads that arrive without one.
	StatusNew = "new"

	// DefaultName is used when a lead carries neither a contact nor a
	// company name.
	DefaultName = "Inconnu"

	// PlaceholderDomain is the domain of generated placeholder emails.
	// Addresses under it never participate in duplicate matching.
	PlaceholderDomain = "emailfactice.com"
)

// Classification carries the qualification verdict attached to a lead by
// the upstream analysis pipeline.
type Classification struct {
	Quality string  `json:"qualite_lead"`
	Score   float64 `json:"score,omitempty"`
}

// Raw is a lead as received from the upstream pipeline, before any
// normalization. Field presence is unreliable: every string may be empty.
type Raw struct {
	ID             string          `json:"id"`
	CompanyName    string          `json:"company_name"`
	ContactName    string          `json:"contact_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Website        string          `json:"website,omitempty"`
	Address        string          `json:"address,omitempty"`
	CampaignID     *int64          `json:"campaign_id,omitempty"`
	Status         string          `json:"status,omitempty"`
	Temperature    string          `json:"gpt_temperature,omitempty"`
	GlobalScore    float64         `json:"global_score,omitempty"`
	Classification *Classification `json:"classification,omitempty"`
}

// Normalized is a lead after normalization: every persisted field has a
// usable value and the contact-channel guarantees hold.
type Normalized struct {
	SourceID   string    `json:"source_id"`
	Name       string    `json:"nom"`
	Email      string    `json:"email"`
	Phone      string    `json:"telephone"`
	Company    string    `json:"entreprise"`
	CampaignID *int64    `json:"campagne_id,omitempty"`
	Status     string    `json:"statut"`
	CreatedAt  time.Time `json:"date_creation"`
}

// Record is a persisted lead row.
type Record struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"nom" db:"nom"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"telephone" db:"telephone"`
	Company    string    `json:"entreprise" db:"entreprise"`
	Status     string    `json:"statut" db:"statut"`
	CampaignID *int64    `json:"campagne_id" db:"campagne_id"`
	CreatedAt  time.Time `json:"date_creation" db:"date_creation"`
}
