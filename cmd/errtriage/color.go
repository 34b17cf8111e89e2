package main

import (
	"github.com/fatih/color"

	"github.com/errtriage/errtriage-go/pkg/errtriage"
)

// severityColors is the terminal counterpart of errtriage.SeverityColorClass.
type severityColors struct {
	low, medium, high, critical, other *color.Color
}

func newSeverityColors(enabled bool) severityColors {
	return severityColors{
		low:      setColor(color.New(color.FgBlue), enabled),
		medium:   setColor(color.New(color.FgYellow), enabled),
		high:     setColor(color.New(color.FgMagenta, color.Bold), enabled),
		critical: setColor(color.New(color.FgRed, color.Bold), enabled),
		other:    setColor(color.New(color.Faint), enabled),
	}
}

func (c severityColors) get(s errtriage.Severity) *color.Color {
	switch s {
	case errtriage.SeverityLow:
		return c.low
	case errtriage.SeverityMedium:
		return c.medium
	case errtriage.SeverityHigh:
		return c.high
	case errtriage.SeverityCritical:
		return c.critical
	default:
		return c.other
	}
}

// setColor overrides the package-wide TTY detection for c.
func setColor(c *color.Color, enabled bool) *color.Color {
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
