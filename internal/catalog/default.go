package catalog

import "github.com/shopspring/decimal"

func aud(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	organisationOnly = []SubjectKind{SubjectOrganisation}
	individualOnly   = []SubjectKind{SubjectIndividual}
)

// DefaultEntries is the production catalog in presentation order.
func DefaultEntries() []Entry {
	return []Entry{
		{Code: CodeASIC, Category: CategoryOrganisation, DisplayName: "ASIC Company Extract", Pricing: PricingPerAsicType, Kind: KindASIC, VisibleFor: organisationOnly},
		{Code: CodeATO, Category: CategoryOrganisation, DisplayName: "ATO Debt Search", BasePrice: aud("25.00"), Pricing: PricingFlat, Kind: KindATO, VisibleFor: organisationOnly},
		{Code: CodeCourt, Category: CategoryOrganisation, DisplayName: "Court Search", BasePrice: aud("10.00"), Pricing: PricingFlat, Kind: KindCourt, VisibleFor: organisationOnly},
		{Code: CodePPSR, Category: CategoryOrganisation, DisplayName: "PPSR Search", BasePrice: aud("12.00"), Pricing: PricingFlat, Kind: KindPPSR, VisibleFor: organisationOnly},

		{Code: CodeIndividualBankruptcy, Category: CategoryIndividual, DisplayName: "Bankruptcy Search", BasePrice: aud("40.00"), Pricing: PricingPerMatch, Kind: KindBankruptcy, RequiresDisambiguation: true, VisibleFor: individualOnly},
		{Code: CodeIndividualRelatedEntities, Category: CategoryIndividual, DisplayName: "Related Entities Search", BasePrice: aud("30.00"), Pricing: PricingPerMatch, Kind: KindRelatedEntities, RequiresDisambiguation: true, VisibleFor: individualOnly},
		{Code: CodeIndividualCourt, Category: CategoryIndividual, DisplayName: "Court Search", Pricing: PricingPerCourtType, Kind: KindCourt, RequiresDisambiguation: true, VisibleFor: individualOnly},
		{Code: CodeIndividualPPSR, Category: CategoryIndividual, DisplayName: "PPSR Search", BasePrice: aud("12.00"), Pricing: PricingFlat, Kind: KindPPSR, VisibleFor: individualOnly},

		{Code: CodeLandTitleReference, Category: CategoryLandTitle, DisplayName: "Title Reference Search", Pricing: PricingPerJurisdiction, Kind: KindLandTitleReference, NoLocator: true},
		{Code: CodeLandTitleAddress, Category: CategoryLandTitle, DisplayName: "Address Search", Pricing: PricingPerJurisdiction, Kind: KindLandTitleAddress},
		{Code: CodeLandTitleOrganisation, Category: CategoryLandTitle, DisplayName: "Organisation Title Search", Pricing: PricingPerJurisdiction, Kind: KindLandTitleOrganisation, VisibleFor: organisationOnly},
		{Code: CodeLandTitleIndividual, Category: CategoryLandTitle, DisplayName: "Individual Title Search", Pricing: PricingPerJurisdiction, Kind: KindLandTitlePerson, RequiresDisambiguation: true, VisibleFor: individualOnly},

		{Code: CodeDirectorPPSR, Category: CategoryAdditional, DisplayName: "Director PPSR", BasePrice: aud("12.00"), Pricing: PricingPerDirector, Kind: KindPPSR, PerDirector: true, VisibleFor: organisationOnly},
		{Code: CodeDirectorBankruptcy, Category: CategoryAdditional, DisplayName: "Director Bankruptcy", BasePrice: aud("40.00"), Pricing: PricingPerMatch, Kind: KindBankruptcy, RequiresDisambiguation: true, PerDirector: true, VisibleFor: organisationOnly},
		{Code: CodeDirectorRelatedEntities, Category: CategoryAdditional, DisplayName: "Director Related Entities", BasePrice: aud("30.00"), Pricing: PricingPerMatch, Kind: KindRelatedEntities, RequiresDisambiguation: true, PerDirector: true, VisibleFor: organisationOnly},
		{Code: CodeAddLandTitleOrganisation, Category: CategoryAdditional, DisplayName: "Land Title (Organisation)", Pricing: PricingPerJurisdiction, Kind: KindLandTitleOrganisation, SatisfiedBy: CodeLandTitleOrganisation, VisibleFor: organisationOnly},
		{Code: CodeAddLandTitleIndividual, Category: CategoryAdditional, DisplayName: "Land Title (Individual)", Pricing: PricingPerJurisdiction, Kind: KindLandTitlePerson, RequiresDisambiguation: true, SatisfiedBy: CodeLandTitleIndividual, VisibleFor: individualOnly},
	}
}

// DefaultTariffs returns the production tariff tables in AUD.
func DefaultTariffs() Tariffs {
	state := func(locator, title, historical string) StateTariff {
		return StateTariff{
			Locator:         aud(locator),
			TitleSearchFull: TitleSearchFull{Title: aud(title), Historical: aud(historical)},
		}
	}
	return Tariffs{
		Asic: map[AsicType]decimal.Decimal{
			AsicCurrent:    aud("29.00"),
			AsicHistorical: aud("39.00"),
			AsicDocuments:  aud("19.00"),
		},
		Court: map[CourtType]decimal.Decimal{
			CourtCriminal: aud("10.00"),
			CourtCivil:    aud("10.00"),
		},
		States: map[State]StateTariff{
			StateNSW: state("15.00", "27.00", "35.00"),
			StateVIC: state("12.50", "24.00", "32.00"),
			StateQLD: state("14.00", "26.50", "34.00"),
			StateSA:  state("13.00", "25.00", "31.00"),
			StateWA:  state("13.50", "25.50", "33.00"),
			StateTAS: state("11.00", "22.00", "28.00"),
			StateACT: state("12.00", "23.00", "29.00"),
			StateNT:  state("11.50", "22.50", "28.50"),
		},
		AddOnSurcharge: aud("40.00"),
	}
}

// Default builds the production catalog.
func Default() *Catalog {
	c, err := New(DefaultEntries(), DefaultTariffs())
	if err != nil {
		panic(err)
	}
	return c
}
