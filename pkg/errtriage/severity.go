package errtriage

import "github.com/errtriage/errtriage-go/pkg/errtriage/diag"

// Severity is the urgency tier of a Record.
type Severity = diag.Severity

// Severity tiers.
const (
	SeverityLow      = diag.SeverityLow
	SeverityMedium   = diag.SeverityMedium
	SeverityHigh     = diag.SeverityHigh
	SeverityCritical = diag.SeverityCritical
)

// Style tokens returned by SeverityColorClass.
const (
	ColorClassLow      = "text-blue-600 dark:text-blue-400"
	ColorClassMedium   = "text-yellow-600 dark:text-yellow-400"
	ColorClassHigh     = "text-orange-600 dark:text-orange-400"
	ColorClassCritical = "text-red-600 dark:text-red-400"
	ColorClassDefault  = "text-gray-600 dark:text-gray-400"
)

// SeverityColorClass returns the presentation token for a severity.
// Values outside the four tiers get ColorClassDefault.
func SeverityColorClass(s Severity) string {
	switch s {
	case SeverityLow:
		return ColorClassLow
	case SeverityMedium:
		return ColorClassMedium
	case SeverityHigh:
		return ColorClassHigh
	case SeverityCritical:
		return ColorClassCritical
	default:
		return ColorClassDefault
	}
}
