package numbering

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const unknownRegion = "ZZ"

// DestinationRegion returns the ISO 3166 region of an international-format
// number ("+33141981242" -> "FR"). National-format input and numbers the
// metadata cannot place return "". It is informational only and never
// changes the dial string.
func DestinationRegion(cleaned string) string {
	if !strings.HasPrefix(cleaned, "+") {
		return ""
	}
	num, err := phonenumbers.Parse(cleaned, unknownRegion)
	if err != nil {
		return ""
	}
	region := phonenumbers.GetRegionCodeForNumber(num)
	if region == unknownRegion {
		return ""
	}
	return region
}
