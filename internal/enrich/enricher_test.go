package enrich

import (
	"reflect"
	"testing"
	"time"

	"numtrack_backend/internal/phone"
	"numtrack_backend/platform/logger"
)

func newTestEnricher() *Enricher {
	return New("en", time.Minute, logger.New("development"))
}

func mustParse(t *testing.T, raw string) phone.CanonicalNumber {
	t.Helper()
	n, err := phone.Parse(raw, "")
	if err != nil {
		t.Fatalf("Parse(%q): %v", raw, err)
	}
	return n
}

func TestInfo_InvalidNumberYieldsUnknown(t *testing.T) {
	e := newTestEnricher()
	n := mustParse(t, "+12345")

	info := e.Info(n, phone.Validate(n))

	if info.Carrier != Unknown || info.Region != Unknown {
		t.Fatalf("expected Unknown fields, got %+v", info)
	}
	if info.LineType != phone.LineTypeUnknown {
		t.Fatalf("expected Unknown line type, got %q", info.LineType)
	}
	if len(info.Timezones) != 0 {
		t.Fatalf("expected no timezones, got %v", info.Timezones)
	}
}

func TestInfo_ValidNumberResolvesMetadata(t *testing.T) {
	e := newTestEnricher()
	n := mustParse(t, "+2348012345678")

	info := e.Info(n, phone.Validate(n))

	if info.Region != "NG" {
		t.Fatalf("expected region NG, got %q", info.Region)
	}
	if info.LineType != phone.LineTypeMobile {
		t.Fatalf("expected Mobile, got %q", info.LineType)
	}
	if len(info.Timezones) == 0 {
		t.Fatal("expected at least one timezone")
	}
}

func TestInfo_CachedResultIsStable(t *testing.T) {
	e := newTestEnricher()
	n := mustParse(t, "+2348012345678")
	vr := phone.Validate(n)

	first := e.Info(n, vr)
	second := e.Info(n, vr)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestOwner_Deterministic(t *testing.T) {
	e := newTestEnricher()
	n := mustParse(t, "+2348012345678")

	first := e.Owner(n)
	second := e.Owner(n)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical owner info, got %+v and %+v", first, second)
	}
}

func TestOwner_ScoresWithinBounds(t *testing.T) {
	e := newTestEnricher()

	for _, raw := range []string{"+2348012345678", "+12125551234", "+442079460000", "+19005551234"} {
		info := e.Owner(mustParse(t, raw))
		if info.RiskScore < 0 || info.RiskScore > 1 {
			t.Fatalf("%s: risk score %v out of range", raw, info.RiskScore)
		}
		if info.SpamProbability < 0 || info.SpamProbability > 1 {
			t.Fatalf("%s: spam probability %v out of range", raw, info.SpamProbability)
		}
		if len(info.SocialProfiles) == 0 {
			t.Fatalf("%s: expected at least one social profile", raw)
		}
	}
}

func TestOwner_KnownRegionGetsName(t *testing.T) {
	e := newTestEnricher()
	info := e.Owner(mustParse(t, "+2348012345678"))

	if info.Name == nil {
		t.Fatal("expected a name for NG number")
	}
	if info.Email == nil {
		t.Fatal("expected an email")
	}
}

func TestLocation_KnownRegionHasDetail(t *testing.T) {
	e := newTestEnricher()
	info := e.Location(mustParse(t, "+2348012345678"))

	if info.Region != "NG" {
		t.Fatalf("expected region NG, got %q", info.Region)
	}
	if info.Detailed == nil {
		t.Fatal("expected detailed location for NG")
	}
	if info.Detailed.Country != "Nigeria" {
		t.Fatalf("expected Nigeria, got %q", info.Detailed.Country)
	}
}

func TestLocation_UnknownRegionDegrades(t *testing.T) {
	e := newTestEnricher()
	info := e.Location(mustParse(t, "+12345"))

	if info.Detailed != nil {
		t.Fatalf("expected no detailed location, got %+v", info.Detailed)
	}
}
