package order

import (
	"context"

	"searchorder/internal/disambiguation"
	"searchorder/internal/dispatch"
	"searchorder/internal/providers"
)

// CandidateFetcher runs disambiguation lookups.
type CandidateFetcher interface {
	Fetch(ctx context.Context, req disambiguation.Request) disambiguation.Result
	SearchOrganisations(ctx context.Context, term string) ([]providers.OrgSuggestion, error)
}

// LookupRegistry is the part of the provider registry the wizard calls
// directly.
type LookupRegistry interface {
	CheckDataAvailability(ctx context.Context, id, dataType string) (providers.Availability, error)
	GetLandTitleCounts(ctx context.Context, q providers.LandTitleCountsQuery) (providers.LandTitleCounts, error)
}

// Submitter dispatches report jobs.
type Submitter interface {
	Submit(ctx context.Context, jobs []dispatch.Job) *dispatch.Batch
}

// Store keeps wizards by order ID.
type Store interface {
	Save(ctx context.Context, w *Wizard) error
	FindByID(ctx context.Context, id string) (*Wizard, error)
	Delete(ctx context.Context, id string) error
}
