package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const isoDate = "2006-01-02"

// Date rewrites a parseable date as its UTC calendar day, YYYY-MM-DD. Dates
// without a zone are read as UTC; an explicit offset is converted. A date
// without a year is not interpretable and is returned unchanged.
func Date(s string) (out string) {
	// dateparse can panic on some malformed input.
	defer func() {
		if recover() != nil {
			out = s
		}
	}()

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}

	t, err := dateparse.ParseIn(trimmed, time.UTC)
	if err != nil || t.Year() == 0 {
		return s
	}
	return t.UTC().Format(isoDate)
}
