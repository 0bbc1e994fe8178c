// Package enrich derives descriptive metadata and heuristic signals from
// validated phone numbers. Descriptive metadata (carrier, region, timezones,
// line type) comes from the static tables shipped with the phonenumbers
// library. The owner and location tiers are best-effort heuristics built on
// coarse public signals; they are deterministic for a given number and static
// table set, and must never be presented as verified identity data.
package enrich

import (
	"time"

	"github.com/nyaruka/phonenumbers"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"numtrack_backend/internal/phone"
	"numtrack_backend/platform/logger"
)

// Unknown is the sentinel label for metadata the static tables cannot supply.
const Unknown = "Unknown"

// PhoneInfo is the descriptive metadata tier for a number.
type PhoneInfo struct {
	Carrier   string
	Region    string
	Timezones []string
	LineType  phone.LineType
}

// Enricher resolves metadata and heuristic signals for canonical numbers.
// Lookups are cached per E.164 form; concurrent lookups of the same number
// collapse into one table walk.
type Enricher struct {
	lang  string
	cache *cache.Cache
	group singleflight.Group
	log   *logger.Logger
}

// New creates an Enricher. lang selects the locale for carrier and geocoding
// descriptions, ttl bounds how long resolved metadata stays cached.
func New(lang string, ttl time.Duration, log *logger.Logger) *Enricher {
	return &Enricher{
		lang:  lang,
		cache: cache.New(ttl, 2*ttl),
		log:   log.WithComponent("enricher"),
	}
}

// Info derives the descriptive metadata tier. Called with an invalid number
// it returns a PhoneInfo with every field Unknown; it never fails.
func (e *Enricher) Info(n phone.CanonicalNumber, vr phone.ValidationResult) PhoneInfo {
	if !vr.IsValid {
		return unknownInfo()
	}

	key := n.E164()
	if cached, ok := e.cache.Get(key); ok {
		return cached.(PhoneInfo)
	}

	resolved, _, _ := e.group.Do(key, func() (interface{}, error) {
		info := e.resolve(n, vr)
		e.cache.Set(key, info, cache.DefaultExpiration)
		return info, nil
	})

	return resolved.(PhoneInfo)
}

func (e *Enricher) resolve(n phone.CanonicalNumber, vr phone.ValidationResult) PhoneInfo {
	parsed, err := phonenumbers.Parse(n.E164(), "")
	if err != nil {
		e.log.Debug("metadata lookup failed", "number", n.Key(), "error", err)
		return unknownInfo()
	}

	info := PhoneInfo{
		Carrier:  Unknown,
		Region:   Unknown,
		LineType: vr.LineType,
	}

	if carrier, err := phonenumbers.GetCarrierForNumber(parsed, e.lang); err == nil && carrier != "" {
		info.Carrier = carrier
	}
	if region := phonenumbers.GetRegionCodeForNumber(parsed); region != "" {
		info.Region = region
	}
	if zones, err := phonenumbers.GetTimezonesForNumber(parsed); err == nil {
		info.Timezones = zones
	}

	return info
}

func unknownInfo() PhoneInfo {
	return PhoneInfo{Carrier: Unknown, Region: Unknown, LineType: phone.LineTypeUnknown}
}
