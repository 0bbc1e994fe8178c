// Package phone provides phone number normalization and validation.
// Parsing and plan checks are pure functions of the input plus the static
// numbering-plan metadata shipped with the phonenumbers library.
package phone

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"numtrack_backend/platform/apperr"
)

// LineType is the usage category of a number within its numbering plan.
type LineType string

const (
	LineTypeMobile    LineType = "Mobile"
	LineTypeFixedLine LineType = "Fixed Line"
	LineTypeTollFree  LineType = "Toll Free"
	LineTypeVoip      LineType = "VoIP"
	LineTypeUnknown   LineType = "Unknown"
)

// CanonicalNumber is the unique identity of a phone number: its country code
// plus national significant digits. Two numbers are equal iff both parts match.
// Values are constructed once by Parse and never mutated.
type CanonicalNumber struct {
	CountryCode    string
	NationalNumber string
	RawInput       string
}

// Key returns the repository key form "<countryCode>/<nationalNumber>".
func (n CanonicalNumber) Key() string {
	return n.CountryCode + "/" + n.NationalNumber
}

// E164 returns the +<countryCode><nationalNumber> form.
func (n CanonicalNumber) E164() string {
	return "+" + n.CountryCode + n.NationalNumber
}

// ValidationResult describes how a canonical number fits its numbering plan.
type ValidationResult struct {
	IsValid             bool
	IsPossible          bool
	CountryCode         string
	Region              string
	NationalFormat      string
	InternationalFormat string
	E164                string
	LineType            LineType
}

// Parse normalizes a raw string plus an optional default-region hint into a
// CanonicalNumber. All textual forms of one number (international, local with
// or without the leading zero) normalize to the same value. Returns a
// KindParse error when the input carries no digits or a local form cannot be
// resolved without a region.
func Parse(raw, defaultRegion string) (CanonicalNumber, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.ContainsAny(trimmed, "0123456789") {
		return CanonicalNumber{}, apperr.Parse("input contains no digits")
	}

	parsed, err := phonenumbers.Parse(trimmed, strings.ToUpper(defaultRegion))
	if err != nil {
		return CanonicalNumber{}, apperr.Wrap(apperr.KindParse, "cannot parse phone number: "+err.Error(), err)
	}

	return CanonicalNumber{
		CountryCode:    strconv.Itoa(int(parsed.GetCountryCode())),
		NationalNumber: phonenumbers.GetNationalSignificantNumber(parsed),
		RawInput:       raw,
	}, nil
}

// Validate checks a canonical number against its national numbering plan.
// It never fails: numbers outside the plan yield IsValid=false.
func Validate(n CanonicalNumber) ValidationResult {
	parsed, err := phonenumbers.Parse(n.E164(), "")
	if err != nil {
		// A canonical number that no longer parses has no plan at all.
		return ValidationResult{CountryCode: n.CountryCode, E164: n.E164(), LineType: LineTypeUnknown}
	}

	return ValidationResult{
		IsValid:             phonenumbers.IsValidNumber(parsed),
		IsPossible:          phonenumbers.IsPossibleNumber(parsed),
		CountryCode:         n.CountryCode,
		Region:              phonenumbers.GetRegionCodeForNumber(parsed),
		NationalFormat:      phonenumbers.Format(parsed, phonenumbers.NATIONAL),
		InternationalFormat: phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL),
		E164:                phonenumbers.Format(parsed, phonenumbers.E164),
		LineType:            classify(parsed),
	}
}

// classify maps plan number types onto the tracked line-type set. Plans where
// mobile and fixed ranges overlap report an ambiguous type; those classify as
// Unknown rather than guessing either side.
func classify(parsed *phonenumbers.PhoneNumber) LineType {
	switch phonenumbers.GetNumberType(parsed) {
	case phonenumbers.MOBILE:
		return LineTypeMobile
	case phonenumbers.FIXED_LINE:
		return LineTypeFixedLine
	case phonenumbers.TOLL_FREE:
		return LineTypeTollFree
	case phonenumbers.VOIP:
		return LineTypeVoip
	default:
		return LineTypeUnknown
	}
}
