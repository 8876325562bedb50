package disambiguation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"searchorder/internal/catalog"
	"searchorder/internal/providers"
	dErrors "searchorder/pkg/domain-errors"
	platformstrings "searchorder/pkg/platform/strings"
)

// landTitlePersons searches every chosen state concurrently and merges the
// proprietor names into a sorted, de-duplicated union. A failing state is
// logged and contributes nothing; only when every state fails is the
// combined error returned.
func (e *Engine) landTitlePersons(ctx context.Context, id Identity, states []catalog.State) ([]Candidate, error) {
	if len(states) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "choose at least one state for a land title search")
	}

	names := make([][]string, len(states))
	errs := make([]error, len(states))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxState)
	for i, state := range states {
		g.Go(func() error {
			found, err := e.registry.SearchLandTitlePersonNames(gctx, providers.LandTitlePersonQuery{
				FirstName: id.FirstName,
				LastName:  id.LastName,
				State:     string(state),
			})
			if err != nil {
				e.metrics.IncrementStateFailure(string(state))
				e.logger.WarnContext(gctx, "land title name search failed for state",
					"state", state,
					"error", err,
				)
				errs[i] = fmt.Errorf("%s: %w", state, err)
				return nil
			}
			names[i] = found
			return nil
		})
	}
	// Workers never return errors so one failing state cannot cancel the others.
	_ = g.Wait()

	failed := 0
	var all []string
	for i := range states {
		if errs[i] != nil {
			failed++
			continue
		}
		all = append(all, names[i]...)
	}
	if failed == len(states) {
		return nil, errors.Join(errs...)
	}

	merged := platformstrings.SortedUpperUnion(all)
	out := make([]Candidate, 0, len(merged))
	for _, name := range merged {
		out = append(out, Candidate{
			Provider:    providers.ProviderLandTitle,
			Label:       name,
			Raw:         name,
			IdentityKey: providers.ProviderLandTitle + ":" + name,
		})
	}
	return out, nil
}

// LandTitleName is the proprietor name a confirmed candidate stands for.
func LandTitleName(c Candidate) string {
	if name, ok := c.Raw.(string); ok {
		return name
	}
	return strings.ToUpper(c.Label)
}
