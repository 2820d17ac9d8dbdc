package celltype

import (
	"strconv"
	"time"
)

const (
	// DateLayout is the only accepted literal date format (dd/mm/yyyy).
	DateLayout = "02/01/2006"

	// MinDateString replaces empty datetime cells.
	MinDateString = "01/01/0001"
)

// serialEpoch is the base of spreadsheet date serials. Serials are counted
// from here minus two days: one for 1-based counting and one for the
// non-existent 29 Feb 1900.
var serialEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseSerial reports whether s is a 32-bit integer date serial.
func ParseSerial(s string) (int, bool) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// SerialToTime converts a date serial with the historical off-by-two rule.
func SerialToTime(serial int) time.Time {
	return serialEpoch.AddDate(0, 0, serial-2)
}

// ParseDate parses a dd/mm/yyyy literal.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func dateText(s string) string {
	if s == "" {
		return MinDateString
	}
	return s
}
