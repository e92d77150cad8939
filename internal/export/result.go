package export

import "time"

// BatchResult is the document returned to the caller after a batch run.
// Its JSON shape is consumed by the upstream pipeline and must stay stable.
type BatchResult struct {
	BatchID        string    `json:"batch_id"`
	Success        bool      `json:"success"`
	LeadsCount     int       `json:"leads_count"`
	TotalAttempted int       `json:"total_attempted"`
	ErrorCount     int       `json:"error_count"`
	Errors         []string  `json:"errors"`
	LeadsExported  []string  `json:"leads_exported"`
	Timestamp      time.Time `json:"timestamp"`
}
