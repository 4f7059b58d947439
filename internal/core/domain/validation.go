package domain

import "time"

// Severity of a preflight finding. Critical findings block publishing;
// warnings never do.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Preflight-specific validation codes. Generic findings reuse the
// top-level validation_error code.
const (
	ValidationNoConnection    = "NO_META_CONNECTION"
	ValidationTokenExpired    = "token_expired"
	ValidationPaymentRequired = "payment_required"
	ValidationGeneric         = "validation_error"
)

// ValidationError is one preflight finding. Recoverable indicates the
// user can fix it by editing the ad or its settings; non-recoverable
// findings require external action (reconnect, re-resolve targeting).
type ValidationError struct {
	Code        string    `json:"code"`
	Message     string    `json:"message"`
	Severity    Severity  `json:"severity"`
	Remediation string    `json:"remediation"`
	Recoverable bool      `json:"recoverable"`
	Timestamp   time.Time `json:"timestamp"`
}

// PreflightReport is the outcome of the read-only readiness checks.
// CanPublish is true iff Errors is empty; every entry in Errors is
// critical and every entry in Warnings is warning severity.
type PreflightReport struct {
	CanPublish bool              `json:"canPublish"`
	Errors     []ValidationError `json:"errors"`
	Warnings   []ValidationError `json:"warnings"`
}

// PreflightInput carries everything the readiness checks inspect. It is
// assembled from the connection, the ad's selected copy and destination
// and its target locations; the checks themselves never touch storage.
type PreflightInput struct {
	AccessToken      string
	TokenExpiresAt   time.Time
	PageID           string
	AdAccountID      string
	InstagramActorID string
	PaymentConnected bool

	Goal        Goal
	PrimaryText string
	Headline    string
	Description string

	Destination *Destination
	Locations   []TargetLocation
}
