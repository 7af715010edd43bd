// Package flows implements the three auth workflows (sign-in, sign-up,
// password reset) as sequential state machines over the remote boundary.
// Each flow validates, checks connectivity, performs its remote calls and
// converts every failure into either a field-local error or an AlertRequest.
// Raw backend errors never leave this package.
package flows

// Severity classifies an alert for presentation.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// AlertRequest is a structured request for a modal notification. It is
// constructed here and consumed once by the presentation layer.
type AlertRequest struct {
	Title    string
	Message  string
	Severity Severity
}

// AlertSink receives alerts produced by a flow. The CLI renders them; tests
// record them.
type AlertSink func(AlertRequest)
