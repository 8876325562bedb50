package dispatch

import (
	"maps"

	"github.com/google/uuid"

	"searchorder/internal/catalog"
	"searchorder/internal/director"
	"searchorder/internal/disambiguation"
	"searchorder/internal/pricing"
	"searchorder/internal/providers"
	"searchorder/internal/resolution"
	"searchorder/internal/selection"
	"searchorder/internal/subject"
)

// Status is the lifecycle state of a report job.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)

// Job is one report to create.
type Job struct {
	ID        string         `json:"id"`
	Type      catalog.Code   `json:"type"`
	Payload   map[string]any `json:"payload"`
	Status    Status         `json:"status"`
	ResultRef string         `json:"result_ref,omitempty"`
	Error     string         `json:"error,omitempty"`
}

type jobBuilder struct {
	cat    *catalog.Catalog
	snap   selection.Snapshot
	res    resolution.Snapshot
	policy pricing.Policy
	base   map[string]any
	jobs   []Job
}

// BuildJobs expands the active selection into one job per billed unit, in
// catalog order. Per-jurisdiction entries produce one job per state carrying
// the titles to retrieve.
func BuildJobs(cat *catalog.Catalog, snap selection.Snapshot, subj subject.Subject, res resolution.Snapshot, policy pricing.Policy) []Job {
	b := &jobBuilder{cat: cat, snap: snap, res: res, policy: policy, base: subjectPayload(subj)}
	for _, code := range snap.Active {
		e, ok := cat.Entry(code)
		if !ok {
			continue
		}
		if e.SatisfiedBy != "" && snap.IsActive(e.SatisfiedBy) {
			continue
		}
		b.entry(e)
	}
	return b.jobs
}

func (b *jobBuilder) add(e catalog.Entry, fields map[string]any) {
	payload := maps.Clone(b.base)
	payload["code"] = string(e.Code)
	payload["kind"] = string(e.Kind)
	maps.Copy(payload, fields)
	b.jobs = append(b.jobs, Job{
		ID:      uuid.NewString(),
		Type:    e.Code,
		Payload: payload,
		Status:  StatusQueued,
	})
}

func (b *jobBuilder) entry(e catalog.Entry) {
	switch e.Pricing {
	case catalog.PricingFlat:
		b.add(e, nil)
	case catalog.PricingPerAsicType:
		for _, t := range b.snap.AsicTypes {
			b.add(e, map[string]any{"asic_type": string(t)})
		}
	case catalog.PricingPerCourtType:
		for _, t := range b.snap.CourtType.Covers() {
			fields := map[string]any{"court_type": string(t)}
			if o, ok := b.res.Outcome(courtSessionKind(t)); ok {
				fields["matches"] = matchPayloads(o.Selected)
			}
			b.add(e, fields)
		}
	case catalog.PricingPerMatch:
		b.perMatch(e)
	case catalog.PricingPerDirector:
		for _, slot := range b.res.Slots(e.Code) {
			if slot.Status == director.SlotRecorded {
				b.add(e, map[string]any{"director": b.directorPayload(slot.DirectorIndex)})
			}
		}
	case catalog.PricingPerJurisdiction:
		b.perJurisdiction(e)
	}
}

func courtSessionKind(t catalog.CourtType) catalog.SearchKind {
	if t == catalog.CourtCivil {
		return catalog.KindCourtCivil
	}
	return catalog.KindCourtCriminal
}

func (b *jobBuilder) perMatch(e catalog.Entry) {
	if !e.PerDirector {
		o, ok := b.res.Outcome(e.Kind)
		if !ok {
			return
		}
		b.matches(e, nil, o.Selected, pricing.SubjectUnits(o))
		return
	}
	for _, slot := range b.res.Slots(e.Code) {
		fields := map[string]any{"director": b.directorPayload(slot.DirectorIndex)}
		b.matches(e, fields, slot.Matches, b.policy.DirectorUnits(slot))
	}
}

// matches adds one job per chosen registry match, or a single null-match job
// when the unit is billed without one.
func (b *jobBuilder) matches(e catalog.Entry, fields map[string]any, selected []disambiguation.Candidate, units int) {
	if units == 0 {
		return
	}
	api := 0
	for _, c := range selected {
		if c.Fallback {
			continue
		}
		api++
		f := maps.Clone(fields)
		if f == nil {
			f = make(map[string]any)
		}
		f["match"] = matchPayload(c)
		b.add(e, f)
	}
	if api == 0 {
		f := maps.Clone(fields)
		if f == nil {
			f = make(map[string]any)
		}
		f["match"] = nil
		b.add(e, f)
	}
}

func (b *jobBuilder) perJurisdiction(e catalog.Entry) {
	lt := b.snap.LandTitle
	var proprietors []string
	if e.Kind == catalog.KindLandTitlePerson {
		if o, ok := b.res.Outcome(catalog.KindLandTitlePerson); ok {
			for _, c := range o.Selected {
				proprietors = append(proprietors, disambiguation.LandTitleName(c))
			}
		}
	}
	for _, state := range lt.States {
		fields := map[string]any{
			"state":  string(state),
			"detail": string(lt.Detail),
			"add_on": lt.AddOn,
			"titles": titlesPayload(pricing.TitleReferences(lt.Detail, b.res.Counts(e.Code, state))),
		}
		switch e.Kind {
		case catalog.KindLandTitleReference:
			fields["reference"] = lt.Reference
		case catalog.KindLandTitleAddress:
			fields["address"] = lt.Address
		case catalog.KindLandTitlePerson:
			fields["proprietors"] = proprietors
		}
		b.add(e, fields)
	}
}

func (b *jobBuilder) directorPayload(index int) map[string]any {
	for _, d := range b.res.Directors() {
		if d.Index == index {
			return map[string]any{
				"index":         d.Index,
				"first_name":    d.FirstName,
				"last_name":     d.LastName,
				"date_of_birth": d.DateOfBirth,
				"status":        string(d.Status),
			}
		}
	}
	return map[string]any{"index": index}
}

func subjectPayload(subj subject.Subject) map[string]any {
	if subj.Kind == catalog.SubjectOrganisation {
		return map[string]any{
			"subject_kind": string(subj.Kind),
			"abn":          subj.Organisation.ABN,
			"acn":          subj.Organisation.ACN,
			"name":         subj.Organisation.Name,
		}
	}
	return map[string]any{
		"subject_kind":  string(subj.Kind),
		"first_name":    subj.Individual.FirstName,
		"middle_name":   subj.Individual.MiddleName,
		"last_name":     subj.Individual.LastName,
		"date_of_birth": subj.Individual.DateOfBirth,
	}
}

func matchPayload(c disambiguation.Candidate) map[string]any {
	m := map[string]any{
		"provider":     c.Provider,
		"identity_key": c.IdentityKey,
		"label":        c.Label,
	}
	if c.Raw != nil {
		m["record"] = c.Raw
	}
	return m
}

func matchPayloads(cs []disambiguation.Candidate) []map[string]any {
	out := make([]map[string]any, 0, len(cs))
	for _, c := range cs {
		out = append(out, matchPayload(c))
	}
	return out
}

func titlesPayload(refs pricing.TitleRefs) map[string]any {
	switch r := refs.(type) {
	case pricing.Split:
		return map[string]any{"current": references(r.Current), "historical": references(r.Historical)}
	case pricing.Flat:
		return map[string]any{"historical": r.Historical, "items": references(r.Items)}
	}
	return nil
}

func references(refs []providers.TitleReference) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Reference)
	}
	return out
}
