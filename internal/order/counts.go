package order

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"searchorder/internal/catalog"
	"searchorder/internal/disambiguation"
	"searchorder/internal/providers"
	"searchorder/internal/resolution"
)

type countTask struct {
	key         resolution.CountKey
	queries     []providers.LandTitleCountsQuery
	fingerprint string
}

// storedCounts remembers which queries produced a count so it is only used
// while the order still describes the same property or proprietors.
type storedCounts struct {
	fingerprint string
	counts      resolution.TitleCounts
}

func queryFingerprint(qs []providers.LandTitleCountsQuery) string {
	var b strings.Builder
	for _, q := range qs {
		fmt.Fprintf(&b, "%q|%q|%q|%q|%q|%q;", q.Kind, q.State, q.Name, q.ABN, q.Reference, q.Address)
	}
	return b.String()
}

// RefreshLandTitleCounts looks up title counts for every active land-title
// search in every chosen state, concurrently. A failed lookup keeps the
// placeholder count for its state and does not fail the refresh.
func (w *Wizard) RefreshLandTitleCounts(ctx context.Context) error {
	w.mu.Lock()
	if err := w.checkOpen(); err != nil {
		w.mu.Unlock()
		return err
	}
	tasks := w.countTasks()
	epoch := w.epoch
	limit := w.deps.CountConcurrency
	w.mu.Unlock()

	if len(tasks) == 0 {
		return nil
	}

	var (
		mu      sync.Mutex
		results = make(map[resolution.CountKey]storedCounts, len(tasks))
		g       errgroup.Group
	)
	g.SetLimit(limit)
	for _, t := range tasks {
		g.Go(func() error {
			counts, err := w.lookupCounts(ctx, t)
			if err != nil {
				w.deps.Metrics.IncrementCountLookupFailure(string(t.key.State))
				w.deps.Logger.WarnContext(ctx, "land title counts lookup failed",
					"order_id", w.id,
					"code", t.key.Code,
					"state", t.key.State,
					"error", err,
				)
				return nil
			}
			mu.Lock()
			results[t.key] = storedCounts{fingerprint: t.fingerprint, counts: counts}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.epoch != epoch {
		w.deps.Logger.DebugContext(ctx, "discarding counts for a replaced subject", "order_id", w.id)
		return nil
	}
	for k, v := range results {
		w.counts[k] = v
	}
	return nil
}

func (w *Wizard) lookupCounts(ctx context.Context, t countTask) (resolution.TitleCounts, error) {
	out := resolution.TitleCounts{Known: true}
	for _, q := range t.queries {
		c, err := w.deps.Registry.GetLandTitleCounts(ctx, q)
		if err != nil {
			return resolution.TitleCounts{}, err
		}
		out.Current += c.Current
		out.Historical += c.Historical
		out.TitleReferences = append(out.TitleReferences, c.TitleReferences...)
	}
	return out, nil
}

// countTasks builds one task per (active land-title entry, state). Must be
// called with the lock held.
func (w *Wizard) countTasks() []countTask {
	subj := w.holder.Current()
	lt := w.sel.LandTitle()
	res := w.seq.Resolution()

	var tasks []countTask
	for _, code := range w.sel.Active() {
		e, ok := w.deps.Catalog.Entry(code)
		if !ok || e.Pricing != catalog.PricingPerJurisdiction {
			continue
		}
		if e.SatisfiedBy != "" && w.sel.IsActive(e.SatisfiedBy) {
			continue
		}
		for _, state := range lt.States {
			base := providers.LandTitleCountsQuery{Kind: string(e.Kind), State: string(state)}
			var queries []providers.LandTitleCountsQuery
			switch e.Kind {
			case catalog.KindLandTitleReference:
				if lt.Reference != "" {
					base.Reference = lt.Reference
					queries = append(queries, base)
				}
			case catalog.KindLandTitleAddress:
				if lt.Address != "" {
					base.Address = lt.Address
					queries = append(queries, base)
				}
			case catalog.KindLandTitleOrganisation:
				if subj.Kind == catalog.SubjectOrganisation {
					base.Name = subj.Organisation.Name
					base.ABN = subj.Organisation.ABN
					queries = append(queries, base)
				}
			case catalog.KindLandTitlePerson:
				if o, ok := res.Outcome(catalog.KindLandTitlePerson); ok && o.Resolved() {
					for _, c := range o.Selected {
						q := base
						q.Name = disambiguation.LandTitleName(c)
						queries = append(queries, q)
					}
				}
			}
			if len(queries) > 0 {
				tasks = append(tasks, countTask{
					key:         resolution.CountKey{Code: e.Code, State: state},
					queries:     queries,
					fingerprint: queryFingerprint(queries),
				})
			}
		}
	}
	return tasks
}

// currentCounts returns the stored counts whose queries match what the order
// would look up now. Counts for a changed address, reference or proprietor
// list are left out so pricing falls back to the placeholder. Must be called
// with the lock held.
func (w *Wizard) currentCounts() map[resolution.CountKey]resolution.TitleCounts {
	if len(w.counts) == 0 {
		return nil
	}
	out := make(map[resolution.CountKey]resolution.TitleCounts, len(w.counts))
	for _, t := range w.countTasks() {
		if c, ok := w.counts[t.key]; ok && c.fingerprint == t.fingerprint {
			out[t.key] = c.counts
		}
	}
	return out
}
