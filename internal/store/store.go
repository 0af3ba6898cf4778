// Package store persists analysis results behind a pluggable interface.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/accountflow/accountflow/internal/model"
)

// ErrNotFound is returned when no analysis exists for an ID.
var ErrNotFound = errors.New("analysis not found")

// Status is the lifecycle state of a stored analysis.
type Status string

const (
	// StatusDraft marks an analysis that has not been reviewed yet.
	StatusDraft Status = "draft"
	// StatusConfirmed marks an analysis promoted to trusted; its rules
	// may be used for sample generation.
	StatusConfirmed Status = "confirmed"
)

// Context scopes stored analyses to a user, company, or scenario. Empty
// fields are wildcards when listing.
type Context struct {
	UserID     string
	CompanyID  string
	ScenarioID string
}

// Record is one stored analysis.
type Record struct {
	ID        string
	Result    model.AnalysisResult
	Context   Context
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the persistence surface for analysis results. Both backends
// behave identically; see TestStoreConformance.
type Store interface {
	// Save stores a new analysis as a draft and returns the record,
	// assigning an ID when the result carries none.
	Save(ctx context.Context, result model.AnalysisResult, sctx Context) (Record, error)
	// Get returns the record for an ID, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)
	// List returns records matching every non-empty Context field,
	// newest first.
	List(ctx context.Context, sctx Context) ([]Record, error)
	// Update replaces a record's result, keeping ID, context, and status.
	Update(ctx context.Context, id string, result model.AnalysisResult) (Record, error)
	// Confirm promotes a draft to confirmed. Confirming an already
	// confirmed analysis is a no-op.
	Confirm(ctx context.Context, id string) (Record, error)
	// Delete removes a record, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

func matches(r Record, sctx Context) bool {
	if sctx.UserID != "" && r.Context.UserID != sctx.UserID {
		return false
	}
	if sctx.CompanyID != "" && r.Context.CompanyID != sctx.CompanyID {
		return false
	}
	if sctx.ScenarioID != "" && r.Context.ScenarioID != sctx.ScenarioID {
		return false
	}
	return true
}
