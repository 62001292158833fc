package telephony

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transliterate reduces s to its closest plain-ASCII form: compatibility
// decomposition, combining marks dropped, anything else outside ASCII
// dropped. "Société Générale" becomes "Societe Generale".
//
// Control characters are dropped too; a CR or LF in a caller id would end
// the AMI line early.
func Transliterate(s string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return r > unicode.MaxASCII || unicode.IsControl(r)
		})),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return out
}
