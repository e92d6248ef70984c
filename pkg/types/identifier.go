package types

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnsupportedIdentifier is returned when Normalize receives a value whose
// dynamic type is not in the supported set (integers, floats, string).
var ErrUnsupportedIdentifier = fmt.Errorf("unsupported identifier type")

var (
	// numericWithSuffix matches a digit sequence with an optional decimal
	// suffix that is exactly zero ("123", "123.0", "123.00").
	numericWithSuffix = regexp.MustCompile(`^(\d+)(?:\.0+)?$`)

	// identifierShape matches the accepted store identifier alphabet:
	// plain numbers (123) and alphanumeric codes (I05, T09, AB123).
	identifierShape = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// Normalize converts any supported representation of a store identifier into
// its canonical string form. Equivalent numeric representations collapse to
// the same string (123, "123", and 123.0 all become "123"); non-numeric
// codes pass through unchanged apart from surrounding whitespace, preserving
// case. The canonical form is the sole basis for identifier equality.
func Normalize(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return normalizeString(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float32:
		return normalizeFloat(float64(x)), nil
	case float64:
		return normalizeFloat(x), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedIdentifier, v)
	}
}

// Equal reports whether two identifier values are the same store identifier.
// It is true iff both values normalize without error to equal canonical
// forms; comparison never panics and unsupported types compare unequal.
func Equal(a, b any) bool {
	na, err := Normalize(a)
	if err != nil {
		return false
	}
	nb, err := Normalize(b)
	if err != nil {
		return false
	}
	return na == nb
}

// Valid reports whether the canonical form of v is a well-formed store
// identifier: a non-empty run of letters and digits.
func Valid(v any) bool {
	n, err := Normalize(v)
	if err != nil {
		return false
	}
	return identifierShape.MatchString(n)
}

// SplitList parses a comma-separated identifier list into canonical forms.
// Empty and malformed entries are dropped.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		n := normalizeString(part)
		if n != "" && identifierShape.MatchString(n) {
			out = append(out, n)
		}
	}
	return out
}

// normalizeString strips surrounding whitespace and collapses a trailing
// zero-valued decimal suffix. Anything that is not a plain digit sequence
// passes through unchanged, which is what keeps alphanumeric codes distinct
// from numbers that merely share a prefix.
func normalizeString(s string) string {
	s = strings.TrimSpace(s)
	if m := numericWithSuffix.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// normalizeFloat renders a float identifier. A zero fractional part
// truncates to the integer form; any other value keeps its decimal form
// unchanged, never rounded. NaN and infinities have no canonical form and
// normalize to the empty string, which matches nothing valid.
func normalizeFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
