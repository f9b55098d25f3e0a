package views

import (
	"strings"

	"github.com/networkteam/pagetour/scenario"
)

type BadgeVariant string

const (
	BadgeVariantSecondary BadgeVariant = "secondary"
	BadgeVariantSuccess   BadgeVariant = "success"
	BadgeVariantWarning   BadgeVariant = "warning"
	BadgeVariantError     BadgeVariant = "error"
)

type BadgeProps struct {
	Variant BadgeVariant
	Class   string
}

// StatusVariant maps a scenario status to the badge shown for it.
func StatusVariant(status scenario.Status) BadgeVariant {
	switch status {
	case scenario.StatusPassed:
		return BadgeVariantSuccess
	case scenario.StatusFailed:
		return BadgeVariantWarning
	case scenario.StatusErrored:
		return BadgeVariantError
	default:
		return BadgeVariantSecondary
	}
}

func levelVariant(level string) BadgeVariant {
	switch {
	case strings.HasPrefix(level, "ERROR"):
		return BadgeVariantError
	case strings.HasPrefix(level, "WARN"):
		return BadgeVariantWarning
	default:
		return BadgeVariantSecondary
	}
}

func badgeClasses(props BadgeProps) string {
	classes := []string{"badge"}

	switch props.Variant {
	case BadgeVariantSuccess:
		classes = append(classes, "badge-success")
	case BadgeVariantWarning:
		classes = append(classes, "badge-warning")
	case BadgeVariantError:
		classes = append(classes, "badge-error")
	default:
		classes = append(classes, "badge-secondary")
	}

	if props.Class != "" {
		classes = append(classes, props.Class)
	}

	return strings.Join(classes, " ")
}
