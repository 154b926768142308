package dto

import "github.com/bohselecta/luvler-metering/internal/types"

// CheckResponse is the gate decision for a credit-consuming request.
// Skipped is set for anonymous callers, whose demo access is unmetered.
type CheckResponse struct {
	Admitted bool       `json:"admitted"`
	Skipped  bool       `json:"skipped,omitempty"`
	Tier     types.Tier `json:"tier,omitempty" example:"free"`
	Limit    int64      `json:"limit,omitempty" example:"5"`
	Used     int64      `json:"used,omitempty" example:"3"`
}

// RecordResponse acknowledges a usage recording request. Recording is
// best-effort: accepted does not guarantee the counter was persisted.
type RecordResponse struct {
	Accepted bool `json:"accepted"`
}
