package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockPattern = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?::\d{2})?\s*(am|pm)?$`)

// Time rewrites a clock time as 24-hour HH:MM. Seconds are dropped.
func Time(s string) string {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return s
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	switch strings.ToLower(m[3]) {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minute > 59 {
		return s
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
