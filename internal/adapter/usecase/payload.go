package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"adpilot/internal/core/domain"
)

// Demographic defaults applied when the ad carries no audience data.
const (
	defaultAgeMin = 18
	defaultAgeMax = 65
)

const defaultRadiusMiles = 10

// Generate maps normalized campaign/ad records into the ad platform's
// nested request payload. It is a pure function: identical inputs
// always produce an identical preview, which the preview-before-publish
// UX depends on. A missing website URL does not fail generation; a
// placeholder is substituted and reported as a warning for the caller
// to judge.
func Generate(in domain.GenerateInput) (*domain.PublishPreview, error) {
	if in.CampaignName == "" {
		return nil, domain.E(domain.CodeValidation, "a campaign name is required to generate a payload")
	}

	var warnings []string
	creative := domain.CreativeSpec{
		PageID:           in.PageID,
		InstagramActorID: in.InstagramActorID,
	}
	if in.Copy != nil {
		creative.Headline = in.Copy.Headline
		creative.PrimaryText = in.Copy.PrimaryText
		creative.Description = in.Copy.Description
	}
	if in.Creative != nil {
		creative.ImageURL = in.Creative.ImageURL
	}

	switch in.Destination.Type {
	case domain.DestinationForm:
		if in.Destination.LeadFormID == "" {
			return nil, domain.E(domain.CodeValidation, "a lead form is required for a form destination")
		}
		creative.LeadFormID = in.Destination.LeadFormID
		creative.CallToAction = "SIGN_UP"
		// A website URL on a form destination is auxiliary only; it
		// never overrides the destination type.
		creative.LinkURL = in.Destination.URL
	case domain.DestinationCall:
		if in.Destination.Phone == "" {
			return nil, domain.E(domain.CodeValidation, "a phone number is required for a call destination")
		}
		creative.PhoneNumber = in.Destination.Phone
		creative.CallToAction = "CALL_NOW"
	default:
		url := in.Destination.URL
		if url == "" {
			url = placeholderURL(in.PageID)
			warnings = append(warnings, fmt.Sprintf(
				"no destination URL configured; using placeholder URL %s", url))
		}
		creative.LinkURL = url
		creative.CallToAction = "LEARN_MORE"
	}

	targeting := domain.Targeting{
		GeoLocations: buildGeoLocations(in.Locations),
		AgeMin:       defaultAgeMin,
		AgeMax:       defaultAgeMax,
		Genders:      in.Genders,
	}
	if in.AgeMin > 0 {
		targeting.AgeMin = in.AgeMin
	}
	if in.AgeMax > 0 {
		targeting.AgeMax = in.AgeMax
	}

	data := domain.PublishData{
		Campaign: domain.CampaignSpec{
			Name:                in.CampaignName,
			Objective:           objectiveFor(in.Goal),
			SpecialAdCategories: []string{"NONE"},
		},
		AdSet: domain.AdSetSpec{
			Name:             in.CampaignName + " Ad Set",
			DailyBudget:      strconv.FormatInt(in.DailyBudget, 10),
			BillingEvent:     "IMPRESSIONS",
			OptimizationGoal: optimizationGoalFor(in.Goal),
			Targeting:        targeting,
		},
		Ads: []domain.AdSpec{{
			Name:     in.AdName,
			Creative: creative,
			Tracking: domain.TrackingSpec{URLTags: "source=adpilot"},
		}},
	}

	return &domain.PublishPreview{
		Data:             data,
		Warnings:         warnings,
		AdCount:          len(data.Ads),
		DailyBudgetText:  FormatMinorUnits(in.DailyBudget, in.Currency),
		TargetingSummary: targetingSummary(targeting.GeoLocations),
	}, nil
}

// placeholderURL is the fallback link for a website destination without
// a URL: the page's own public profile.
func placeholderURL(pageID string) string {
	return "https://facebook.com/" + pageID
}

func objectiveFor(goal domain.Goal) string {
	switch goal {
	case domain.GoalLeads, domain.GoalCalls:
		return "OUTCOME_LEADS"
	default:
		return "OUTCOME_TRAFFIC"
	}
}

func optimizationGoalFor(goal domain.Goal) string {
	switch goal {
	case domain.GoalLeads:
		return "LEAD_GENERATION"
	case domain.GoalCalls:
		return "QUALITY_CALL"
	default:
		return "LINK_CLICKS"
	}
}

// buildGeoLocations partitions target locations into the platform's geo
// buckets by declared type. Radius locations become centroid+radius
// custom entries instead of keyed places.
func buildGeoLocations(locations []domain.TargetLocation) domain.GeoLocations {
	var geo domain.GeoLocations
	for _, loc := range locations {
		switch loc.Type {
		case domain.LocationCountry:
			geo.Countries = append(geo.Countries, loc.Key)
		case domain.LocationRegion:
			geo.Regions = append(geo.Regions, domain.KeyedPlace{Key: loc.Key})
		case domain.LocationCity:
			geo.Cities = append(geo.Cities, domain.KeyedPlace{Key: loc.Key})
		case domain.LocationRadius:
			radius := loc.RadiusMi
			if radius <= 0 {
				radius = defaultRadiusMiles
			}
			geo.CustomLocations = append(geo.CustomLocations, domain.CustomLocation{
				Latitude:     loc.Lat,
				Longitude:    loc.Lng,
				Radius:       radius,
				DistanceUnit: "mile",
			})
		}
	}
	return geo
}

// FormatMinorUnits renders an integer minor-unit amount as a decimal
// display string, e.g. 1250 -> "12.50 USD".
func FormatMinorUnits(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	text := fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
	if currency == "" {
		return text
	}
	return text + " " + currency
}

// targetingSummary produces the one-line phrase shown in previews:
// counts of non-empty geo buckets with correctly pluralized nouns, or
// "No targeting" when there is no geo data.
func targetingSummary(geo domain.GeoLocations) string {
	type bucket struct {
		n        int
		singular string
		plural   string
	}
	buckets := []bucket{
		{len(geo.Countries), "country", "countries"},
		{len(geo.Regions), "region", "regions"},
		{len(geo.Cities), "city", "cities"},
		{len(geo.CustomLocations), "custom location", "custom locations"},
	}
	var parts []string
	for _, b := range buckets {
		switch {
		case b.n == 1:
			parts = append(parts, fmt.Sprintf("1 %s", b.singular))
		case b.n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", b.n, b.plural))
		}
	}
	if len(parts) == 0 {
		return "No targeting"
	}
	return strings.Join(parts, ", ")
}
