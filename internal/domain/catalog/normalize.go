package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a raw cell for keyword matching: it stringifies the
// value, removes diacritics, lower-cases it and collapses whitespace.
// Lower-casing runs after NFKD because compatibility decomposition can yield
// capitals ("ℌ" becomes "H"). The Turkish dotless i has no decomposition and
// is folded to "i" explicitly.
// Normalize never fails and Normalize(Normalize(x)) == Normalize(x).
func Normalize(value any) string {
	text := Stringify(value)
	// transform chains keep internal buffers, so one is built per call.
	chain := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Map(foldDotless))
	stripped, _, err := transform.String(chain, text)
	if err != nil {
		stripped = text
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// Stringify renders a raw cell as text. nil becomes "" and floats are printed
// without trailing zeros.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func foldDotless(r rune) rune {
	if r == 'ı' {
		return 'i'
	}
	return r
}
