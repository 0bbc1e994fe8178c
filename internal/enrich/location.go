package enrich

import (
	"github.com/nyaruka/phonenumbers"

	"numtrack_backend/internal/phone"
)

// DetailedLocation is a representative coordinate for a number's region, not
// the handset's position.
type DetailedLocation struct {
	City      string
	State     string
	Country   string
	Latitude  float64
	Longitude float64
}

// LocationInfo is the heuristic location tier. Detailed is nil when the
// region table has no entry.
type LocationInfo struct {
	Region        string
	BasicLocation string
	Detailed      *DetailedLocation
}

// Location derives coarse geolocation for a number: the geocoder description
// from the numbering-plan tables plus a representative coordinate for the
// region. Missing data degrades to empty/absent fields.
func (e *Enricher) Location(n phone.CanonicalNumber) LocationInfo {
	parsed, err := phonenumbers.Parse(n.E164(), "")
	if err != nil {
		return LocationInfo{}
	}

	info := LocationInfo{
		Region: phonenumbers.GetRegionCodeForNumber(parsed),
	}

	if desc, err := phonenumbers.GetGeocodingForNumber(parsed, e.lang); err == nil {
		info.BasicLocation = desc
	}

	if seat, ok := regionSeats[info.Region]; ok {
		info.Detailed = &DetailedLocation{
			City:      seat.City,
			State:     seat.State,
			Country:   seat.Country,
			Latitude:  seat.Latitude,
			Longitude: seat.Longitude,
		}
	}

	return info
}
