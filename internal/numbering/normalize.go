// Package numbering turns a user-entered phone number into the dial string a
// switch expects, given a tenant's prefix rules. It performs no I/O.
package numbering

import (
	"strings"

	"click2dial/internal/dialerr"
)

// PrefixRules are the per-tenant dialing prefixes. Non-empty prefixes are
// digits only; CountryPrefix and InternationalPrefix are required. Both are
// enforced when the configuration is saved, not here.
type PrefixRules struct {
	CountryPrefix         string `json:"country_prefix"`
	NationalPrefix        string `json:"national_prefix,omitempty"`
	InternationalPrefix   string `json:"international_prefix"`
	OutPrefix             string `json:"out_prefix,omitempty"`
	NationalFormatAllowed bool   `json:"national_format_allowed"`
}

// Branch records which path of the algorithm produced a dial string.
type Branch string

const (
	// BranchDomestic is an international-format number carrying our own
	// country prefix.
	BranchDomestic Branch = "domestic"
	// BranchForeign is an international-format number for another country.
	BranchForeign Branch = "foreign"
	// BranchNational is a number entered in national format.
	BranchNational Branch = "national"
)

// Result is the outcome of a successful normalization.
type Result struct {
	// Cleaned is the input with formatting characters removed.
	Cleaned    string
	DialString string
	Branch     Branch
}

var formatting = strings.NewReplacer(
	" ", "",
	".", "",
	"(", "",
	")", "",
	"[", "",
	"]", "",
	"-", "",
	"/", "",
)

// Normalize returns the dial string for raw under rules.
func Normalize(raw string, rules PrefixRules) (string, error) {
	res, err := Classify(raw, rules)
	if err != nil {
		return "", err
	}
	return res.DialString, nil
}

// Classify runs the normalization and also reports the branch taken.
func Classify(raw string, rules PrefixRules) (Result, error) {
	if raw == "" {
		return Result{}, dialerr.New(dialerr.KindEmptyNumber, "")
	}

	cleaned := Clean(raw)
	if cleaned == "" {
		return Result{}, dialerr.New(dialerr.KindEmptyNumber, "only formatting characters")
	}

	res := Result{Cleaned: cleaned}
	var number string

	switch {
	case cleaned[0] == '+':
		digits := cleaned[1:]
		if !isDigits(digits) {
			return Result{}, dialerr.Newf(dialerr.KindInvalidFormat, "%q", raw)
		}
		if strings.HasPrefix(digits, rules.CountryPrefix) {
			number = rules.NationalPrefix + digits[len(rules.CountryPrefix):]
			res.Branch = BranchDomestic
		} else {
			number = rules.InternationalPrefix + digits
			res.Branch = BranchForeign
		}
	case rules.NationalFormatAllowed:
		if !isDigits(cleaned) {
			return Result{}, dialerr.Newf(dialerr.KindInvalidNationalFormat, "%q", raw)
		}
		number = cleaned
		res.Branch = BranchNational
	default:
		return Result{}, dialerr.Newf(dialerr.KindInvalidInternationalFormatRequired, "%q", raw)
	}

	res.DialString = rules.OutPrefix + number
	return res, nil
}

// Clean removes every formatting character a human might type.
func Clean(raw string) string {
	return formatting.Replace(raw)
}

// isDigits reports whether s is non-empty and made only of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
