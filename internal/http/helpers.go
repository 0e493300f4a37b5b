package http

import (
	"errors"
	"strconv"
	"strings"

	"fishlog/internal/core"
)

var fieldLabels = map[string]string{
	"species":     "Species",
	"bait":        "Bait",
	"location":    "Location",
	"dateOfCatch": "Date of catch",
	"timeOfCatch": "Time of catch",
	"catcher":     "Catcher",
}

// sanitizeInput trims and strips control characters other than tab and newlines.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// validationMessages turns a validation failure into user-facing lines.
func validationMessages(err error) []string {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve) && len(ve.Fields) > 0:
		msgs := make([]string, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			label, ok := fieldLabels[f]
			if !ok {
				label = f
			}
			msgs = append(msgs, label+" is required")
		}
		return msgs
	case errors.Is(err, errInvalidWeight):
		return []string{"Weight must be a non-negative number"}
	default:
		return []string{err.Error()}
	}
}

func formatWeight(w *float64) string {
	if w == nil {
		return ""
	}
	return strconv.FormatFloat(*w, 'f', -1, 64)
}
