package errtriage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/errtriage/errtriage-go/pkg/errtriage"
)

func TestSeverityColorClass(t *testing.T) {
	tests := []struct {
		severity errtriage.Severity
		want     string
	}{
		{errtriage.SeverityLow, "text-blue-600 dark:text-blue-400"},
		{errtriage.SeverityMedium, "text-yellow-600 dark:text-yellow-400"},
		{errtriage.SeverityHigh, "text-orange-600 dark:text-orange-400"},
		{errtriage.SeverityCritical, "text-red-600 dark:text-red-400"},
		{errtriage.Severity(""), "text-gray-600 dark:text-gray-400"},
		{errtriage.Severity("fatal"), "text-gray-600 dark:text-gray-400"},
		{errtriage.Severity("HIGH"), "text-gray-600 dark:text-gray-400"},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			assert.Equal(t, tt.want, errtriage.SeverityColorClass(tt.severity))
		})
	}
}

func TestSeverityColorClass_Distinct(t *testing.T) {
	seen := map[string]errtriage.Severity{}
	for _, s := range []errtriage.Severity{
		errtriage.SeverityLow,
		errtriage.SeverityMedium,
		errtriage.SeverityHigh,
		errtriage.SeverityCritical,
	} {
		token := errtriage.SeverityColorClass(s)
		prev, dup := seen[token]
		assert.False(t, dup, "%s and %s share token %q", prev, s, token)
		assert.NotEqual(t, errtriage.ColorClassDefault, token)
		seen[token] = s
	}
	assert.Len(t, seen, 4)
}
