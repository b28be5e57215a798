package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var clockRegex = regexp.MustCompile(`^(\d+):([0-5]\d)(?::([0-5]\d))?$`)

// ParseDuration parses a manual time entry into whole seconds
// Supported formats:
// - HH:MM or HH:MM:SS (e.g., "1:30", "01:30:15")
// - Go durations (e.g., "1h30m", "90m", "45s")
// - plain seconds (e.g., "3600")
func ParseDuration(input string) (int64, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, fmt.Errorf("duration is empty")
	}

	var seconds int64
	if m := clockRegex.FindStringSubmatch(input); m != nil {
		h, _ := strconv.ParseInt(m[1], 10, 64)
		mins, _ := strconv.ParseInt(m[2], 10, 64)
		var sec int64
		if m[3] != "" {
			sec, _ = strconv.ParseInt(m[3], 10, 64)
		}
		seconds = h*3600 + mins*60 + sec
	} else if n, err := strconv.ParseInt(input, 10, 64); err == nil {
		seconds = n
	} else if d, err := time.ParseDuration(input); err == nil {
		seconds = int64(d / time.Second)
	} else {
		return 0, fmt.Errorf("invalid duration %q. Use: HH:MM, 1h30m, 90m or seconds", input)
	}

	if seconds < 1 {
		return 0, fmt.Errorf("duration must be at least 1 second")
	}
	return seconds, nil
}
