package vitals

// Severity is the display tier of a single reading.
type Severity string

const (
	SeverityNormal  Severity = "normal"
	SeverityWarning Severity = "warning"
	SeverityHigh    Severity = "high"
)

// ColorClass returns the CSS class the dashboards use for the tier.
func (s Severity) ColorClass() string {
	switch s {
	case SeverityHigh:
		return "text-red-600"
	case SeverityWarning:
		return "text-amber-500"
	}
	return "text-green-600"
}

// Severity thresholds, inclusive.
const (
	severityBPHighSystolic     = 140.0
	severityBPHighDiastolic    = 90.0
	severityBPWarningSystolic  = 120.0
	severityBPWarningDiastolic = 80.0
	severitySugarHigh          = 126.0
	severitySugarWarning       = 100.0
)

// Alert thresholds, exclusive. Deliberately not shared with the severity set.
const (
	alertBPSystolic  = 140.0
	alertBPDiastolic = 90.0
	alertSugar       = 180.0
)

// Classification is the outcome of both policies for one reading.
type Classification struct {
	Severity   Severity `json:"severity"`
	Alert      bool     `json:"alert"`
	ColorClass string   `json:"colorClass"`
}

// Classify runs the severity and alert policies on a reading. Values are
// expected in mmHg, mg/dL and kg.
func Classify(kind Kind, primary float64, secondary *float64) Classification {
	sev := SeverityOf(kind, primary, secondary)
	return Classification{
		Severity:   sev,
		Alert:      IsAlert(kind, primary, secondary),
		ColorClass: sev.ColorClass(),
	}
}

// SeverityOf is the display policy.
func SeverityOf(kind Kind, primary float64, secondary *float64) Severity {
	switch kind {
	case KindBloodPressure:
		if primary >= severityBPHighSystolic || (secondary != nil && *secondary >= severityBPHighDiastolic) {
			return SeverityHigh
		}
		if primary >= severityBPWarningSystolic || (secondary != nil && *secondary >= severityBPWarningDiastolic) {
			return SeverityWarning
		}
	case KindBloodSugar:
		if primary >= severitySugarHigh {
			return SeverityHigh
		}
		if primary >= severitySugarWarning {
			return SeverityWarning
		}
	}
	return SeverityNormal
}

// IsAlert is the escalation policy that surfaces a reading on the doctors'
// triage view. Weight never alerts here; weight gain is an advice rule.
func IsAlert(kind Kind, primary float64, secondary *float64) bool {
	switch kind {
	case KindBloodPressure:
		return primary > alertBPSystolic || (secondary != nil && *secondary > alertBPDiastolic)
	case KindBloodSugar:
		return primary > alertSugar
	}
	return false
}
