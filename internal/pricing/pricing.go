// Package pricing computes the price of an order. ComputeTotal is pure: it
// reads a selection snapshot and a resolution snapshot and never mutates
// either.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"searchorder/internal/catalog"
	"searchorder/internal/director"
	"searchorder/internal/disambiguation"
	"searchorder/internal/resolution"
	"searchorder/internal/selection"
)

// Line is one priced row of the breakdown.
type Line struct {
	Code        catalog.Code    `json:"code"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Breakdown is the priced order.
type Breakdown struct {
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

type pricer struct {
	cat    *catalog.Catalog
	snap   selection.Snapshot
	res    resolution.Snapshot
	policy Policy
	lines  []Line
}

// ComputeTotal prices every active entry in catalog order.
func ComputeTotal(cat *catalog.Catalog, snap selection.Snapshot, res resolution.Snapshot, policy Policy) Breakdown {
	p := &pricer{cat: cat, snap: snap, res: res, policy: policy}
	for _, code := range snap.Active {
		e, ok := cat.Entry(code)
		if !ok {
			continue
		}
		if e.SatisfiedBy != "" && snap.IsActive(e.SatisfiedBy) {
			continue
		}
		p.entry(e)
	}

	total := decimal.Zero
	for _, l := range p.lines {
		total = total.Add(l.Subtotal)
	}
	return Breakdown{Lines: p.lines, Total: total.Round(2)}
}

func (p *pricer) add(code catalog.Code, description string, unit decimal.Decimal, qty int) {
	if qty <= 0 {
		return
	}
	p.lines = append(p.lines, Line{
		Code:        code,
		Description: description,
		UnitPrice:   unit.Round(2),
		Quantity:    qty,
		Subtotal:    unit.Mul(decimal.NewFromInt(int64(qty))).Round(2),
	})
}

func (p *pricer) entry(e catalog.Entry) {
	switch e.Pricing {
	case catalog.PricingFlat:
		p.add(e.Code, e.DisplayName, e.BasePrice, 1)
	case catalog.PricingPerAsicType:
		for _, t := range p.snap.AsicTypes {
			if price, ok := p.cat.AsicPrice(t); ok {
				p.add(e.Code, fmt.Sprintf("%s (%s)", e.DisplayName, t), price, 1)
			}
		}
	case catalog.PricingPerCourtType:
		for _, t := range p.snap.CourtType.Covers() {
			if price, ok := p.cat.CourtPrice(t); ok {
				p.add(e.Code, fmt.Sprintf("%s (%s)", e.DisplayName, t), price, 1)
			}
		}
	case catalog.PricingPerMatch:
		p.perMatch(e)
	case catalog.PricingPerDirector:
		n := 0
		for _, slot := range p.res.Slots(e.Code) {
			if slot.Status == director.SlotRecorded {
				n++
			}
		}
		p.add(e.Code, e.DisplayName, e.BasePrice, n)
	case catalog.PricingPerJurisdiction:
		p.perJurisdiction(e)
	}
}

func (p *pricer) perMatch(e catalog.Entry) {
	if !e.PerDirector {
		o, ok := p.res.Outcome(e.Kind)
		if !ok {
			return
		}
		p.add(e.Code, e.DisplayName, e.BasePrice, SubjectUnits(o))
		return
	}
	names := make(map[int]string)
	for _, d := range p.res.Directors() {
		names[d.Index] = d.FullName()
	}
	for _, slot := range p.res.Slots(e.Code) {
		desc := disambiguation.JoinLabel(e.DisplayName, names[slot.DirectorIndex])
		p.add(e.Code, desc, e.BasePrice, p.policy.DirectorUnits(slot))
	}
}

func (p *pricer) perJurisdiction(e catalog.Entry) {
	lt := p.snap.LandTitle
	for _, state := range lt.States {
		tariff, ok := p.cat.StateTariff(state)
		if !ok {
			continue
		}
		label := disambiguation.JoinLabel(e.DisplayName, string(state))
		if !e.NoLocator {
			p.add(e.Code, label+" locator", tariff.Locator, 1)
		}
		switch refs := TitleReferences(lt.Detail, p.res.Counts(e.Code, state)).(type) {
		case Flat:
			if refs.Historical {
				p.add(e.Code, label+" historical titles", tariff.TitleSearchFull.Historical, refs.Units())
			} else {
				p.add(e.Code, label+" titles", tariff.TitleSearchFull.Title, refs.Units())
			}
		case Split:
			p.add(e.Code, label+" titles", tariff.TitleSearchFull.Title, len(refs.Current))
			p.add(e.Code, label+" historical titles", tariff.TitleSearchFull.Historical, len(refs.Historical))
		}
	}
	if lt.AddOn && len(lt.States) > 0 {
		p.add(e.Code, e.DisplayName+" add-on", p.cat.AddOnSurcharge(), 1)
	}
}
