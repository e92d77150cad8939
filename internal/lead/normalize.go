package lead

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Normalizer turns raw pipeline leads into records safe to persist.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer returns a Normalizer using the wall clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// Normalize cleans a raw lead's contact fields and fills the fallbacks:
// a deterministic placeholder email when no valid one exists, DefaultName
// when both names are missing, StatusNew when no status was carried.
func (n *Normalizer) Normalize(r Raw) Normalized {
	phone := CleanPhone(r.Phone)
	email := CleanEmail(r.Email)
	if !strings.Contains(email, "@") {
		email = ""
	}
	if email == "" {
		email = PlaceholderEmail(r.ID, r.CompanyName, phone)
	}

	name := strings.TrimSpace(r.ContactName)
	if name == "" {
		name = strings.TrimSpace(r.CompanyName)
	}
	if name == "" {
		name = DefaultName
	}

	status := strings.TrimSpace(r.Status)
	if status == "" {
		status = StatusNew
	}

	return Normalized{
		SourceID:   r.ID,
		Name:       name,
		Email:      email,
		Phone:      phone,
		Company:    strings.TrimSpace(r.CompanyName),
		CampaignID: r.CampaignID,
		Status:     status,
		CreatedAt:  n.now().UTC(),
	}
}

// PlaceholderEmail derives a stable fake address from the lead's identity
// fields. The same input always yields the same address, so re-exporting a
// batch never fabricates a second identity for the same lead.
func PlaceholderEmail(sourceID, company, phone string) string {
	sum := md5.Sum([]byte(sourceID + company + phone))
	return fmt.Sprintf("mail_%s@%s", hex.EncodeToString(sum[:])[:8], PlaceholderDomain)
}

// IsPlaceholder reports whether an email was generated by PlaceholderEmail.
func IsPlaceholder(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), "@"+PlaceholderDomain)
}
