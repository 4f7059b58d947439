package usecase

import (
	"time"

	"adpilot/internal/core/domain"
)

// Preflight runs the read-only readiness checks. It never mutates
// state, so it is safe to call any number of times. The clock is
// injected for deterministic reports in tests.
type Preflight struct {
	now func() time.Time
}

func NewPreflight() *Preflight {
	return &Preflight{now: time.Now}
}

// Run performs every check and assembles the report. Every entry in
// Errors is critical severity and blocks publishing; warnings never
// block. CanPublish is true iff Errors is empty.
func (p *Preflight) Run(in domain.PreflightInput) *domain.PreflightReport {
	ts := p.now().UTC()
	report := &domain.PreflightReport{
		Errors:   []domain.ValidationError{},
		Warnings: []domain.ValidationError{},
	}
	critical := func(code, message, remediation string, recoverable bool) {
		report.Errors = append(report.Errors, domain.ValidationError{
			Code: code, Message: message, Severity: domain.SeverityCritical,
			Remediation: remediation, Recoverable: recoverable, Timestamp: ts,
		})
	}
	warn := func(code, message, remediation string) {
		report.Warnings = append(report.Warnings, domain.ValidationError{
			Code: code, Message: message, Severity: domain.SeverityWarning,
			Remediation: remediation, Recoverable: true, Timestamp: ts,
		})
	}

	// Connection and token.
	switch {
	case in.AccessToken == "":
		critical(domain.ValidationNoConnection,
			"No Meta connection is linked to this campaign.",
			"Connect a Meta account to the campaign.", false)
	case !in.TokenExpiresAt.IsZero() && !in.TokenExpiresAt.After(ts):
		critical(domain.ValidationTokenExpired,
			"The Meta access token has expired.",
			"Reconnect the Meta account to refresh the token.", false)
	}

	if in.AdAccountID == "" {
		critical(domain.ValidationGeneric,
			"No ad account is selected.",
			"Select an ad account in the connection settings.", true)
	}
	if !in.PaymentConnected {
		critical(domain.ValidationPaymentRequired,
			"No payment method is connected to the ad account.",
			"Add a payment method to the ad account.", true)
	}

	if in.Headline == "" && in.PrimaryText == "" {
		critical(domain.ValidationGeneric,
			"The ad has no copy: both headline and primary text are empty.",
			"Write a headline or primary text for the selected copy.", true)
	}

	p.checkDestination(in, critical, warn)
	p.checkLocations(in.Locations, critical, warn)

	report.CanPublish = len(report.Errors) == 0
	return report
}

func (p *Preflight) checkDestination(in domain.PreflightInput, critical func(string, string, string, bool), warn func(string, string, string)) {
	if in.Destination == nil {
		critical(domain.ValidationGeneric,
			"No destination is configured for the ad.",
			"Choose where the ad should send people: a website, a lead form or a phone call.", true)
		return
	}
	switch in.Destination.Type {
	case domain.DestinationCall:
		if in.Destination.Phone == "" {
			critical(domain.ValidationGeneric,
				"The call destination has no phone number.",
				"Add the phone number the ad should dial.", true)
		}
	case domain.DestinationForm:
		if in.Destination.LeadFormID == "" && in.Destination.URL == "" {
			// Nothing to publish and nothing to infer a fallback from.
			critical(domain.ValidationGeneric,
				"The lead destination has neither a form nor a website to fall back to.",
				"Create a lead form, or set a website URL as fallback.", false)
		}
	default:
		if in.Destination.URL == "" {
			// Generation substitutes a placeholder URL, so this does
			// not block; the preview surfaces the substitution.
			warn(domain.ValidationGeneric,
				"The website destination has no URL; a placeholder will be used.",
				"Set the website URL the ad should open.")
		}
	}
}

func (p *Preflight) checkLocations(locations []domain.TargetLocation, critical func(string, string, string, bool), warn func(string, string, string)) {
	if len(locations) == 0 {
		warn(domain.ValidationGeneric,
			"No target locations are set; the platform will default to a broad region.",
			"Add target locations to narrow the audience.")
		return
	}
	for _, loc := range locations {
		if loc.Type == domain.LocationRadius {
			continue
		}
		if loc.Key == "" {
			// The platform key cannot be re-entered by the user; the
			// location must be re-resolved against the platform.
			critical(domain.ValidationGeneric,
				"Target location \""+loc.Name+"\" is missing its platform targeting key.",
				"Remove the location and search for it again so it can be re-resolved.", false)
		}
	}
}
