package celltype

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// decimalRegex accepts digits with optional thousands separators in the
// integer part and an optional fraction. Signs, exponents and surrounding
// whitespace are rejected.
var decimalRegex = regexp.MustCompile(`^(\d[\d,]*)?(\.\d*)?$`)

var one = big.NewRat(1, 1)

// ParseDecimal parses s in the invariant numeric format ("1,234.50").
func ParseDecimal(s string) (pgtype.Numeric, error) {
	if !decimalRegex.MatchString(s) || !strings.ContainsAny(s, "0123456789") {
		return pgtype.Numeric{}, fmt.Errorf("invalid number format: %q", s)
	}

	var n pgtype.Numeric
	if err := n.Scan(strings.ReplaceAll(s, ",", "")); err != nil {
		return pgtype.Numeric{}, fmt.Errorf("invalid number format: %q: %w", s, err)
	}
	return n, nil
}
