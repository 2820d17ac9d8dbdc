package celltype

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ZeroLiteral is the expansion of a shorthand with no usable unit.
const ZeroLiteral = "00:00:00:00"

var shorthandRegex = regexp.MustCompile(`(\d+)([DdHhMmSs])`)

// ExpandShorthand converts the first "<digits><unit>" shorthand found in s
// into a days:hours:minutes:seconds literal with only the unit's slot set.
// The digits are zero-padded to two places. No match yields "".
//
//	ExpandShorthand("3d")  // "03:00:00:00"
//	ExpandShorthand("12h") // "00:12:00:00"
func ExpandShorthand(s string) string {
	m := shorthandRegex.FindStringSubmatch(s)
	if m == nil {
		return ""
	}

	digits := m[1]
	if len(digits) < 2 {
		digits = strings.Repeat("0", 2-len(digits)) + digits
	}

	switch strings.ToLower(m[2]) {
	case "d":
		return digits + ":00:00:00"
	case "h":
		return "00:" + digits + ":00:00"
	case "m":
		return "00:00:" + digits + ":00"
	case "s":
		return "00:00:00:" + digits
	default:
		return ZeroLiteral
	}
}

// ParseLiteral parses a days:hours:minutes:seconds literal. Hours must be
// below 24, minutes and seconds below 60.
func ParseLiteral(lit string) (time.Duration, error) {
	parts := strings.Split(lit, ":")
	if len(parts) != 4 {
		return 0, fmt.Errorf("invalid timespan literal %q", lit)
	}

	limits := []int64{math.MaxInt64, 23, 59, 59}
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}

	var total time.Duration
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return 0, fmt.Errorf("invalid timespan literal %q", lit)
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil || v > limits[i] {
			return 0, fmt.Errorf("timespan literal %q out of range", lit)
		}
		if v > int64(math.MaxInt64-total)/int64(units[i]) {
			return 0, fmt.Errorf("timespan literal %q out of range", lit)
		}
		total += time.Duration(v) * units[i]
	}
	return total, nil
}
