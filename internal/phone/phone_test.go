package phone

import (
	"testing"

	"numtrack_backend/platform/apperr"
)

func TestParse_FormatInvariance(t *testing.T) {
	forms := []struct {
		raw    string
		region string
	}{
		{"+2348012345678", ""},
		{"+234 801 234 5678", ""},
		{"08012345678", "NG"},
		{"8012345678", "NG"},
	}

	for _, f := range forms {
		n, err := Parse(f.raw, f.region)
		if err != nil {
			t.Fatalf("Parse(%q, %q): unexpected error %v", f.raw, f.region, err)
		}
		if n.CountryCode != "234" || n.NationalNumber != "8012345678" {
			t.Fatalf("Parse(%q, %q): expected 234/8012345678, got %s", f.raw, f.region, n.Key())
		}
	}
}

func TestParse_NoDigits(t *testing.T) {
	_, err := Parse("not-a-number", "")
	if err == nil {
		t.Fatal("expected parse error for input without digits")
	}
	if !apperr.Is(err, apperr.KindParse) {
		t.Fatalf("expected KindParse, got %v", apperr.GetKind(err))
	}
}

func TestParse_LocalWithoutRegion(t *testing.T) {
	_, err := Parse("08012345678", "")
	if err == nil {
		t.Fatal("expected parse error for local format without region")
	}
	if !apperr.Is(err, apperr.KindParse) {
		t.Fatalf("expected KindParse, got %v", apperr.GetKind(err))
	}
}

func TestValidate_ValidMobile(t *testing.T) {
	n, err := Parse("+2348012345678", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vr := Validate(n)
	if !vr.IsValid {
		t.Fatal("expected valid number")
	}
	if !vr.IsPossible {
		t.Fatal("expected possible number")
	}
	if vr.Region != "NG" {
		t.Fatalf("expected region NG, got %q", vr.Region)
	}
	if vr.LineType != LineTypeMobile {
		t.Fatalf("expected Mobile, got %q", vr.LineType)
	}
	if vr.E164 != "+2348012345678" {
		t.Fatalf("expected E164 +2348012345678, got %q", vr.E164)
	}
}

func TestValidate_InvalidNumberDoesNotError(t *testing.T) {
	n, err := Parse("+12345", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vr := Validate(n)
	if vr.IsValid {
		t.Fatal("expected invalid number")
	}
}

func TestValidate_AmbiguousRangeClassifiesUnknown(t *testing.T) {
	// US geographic numbers share mobile and fixed-line ranges, so the plan
	// cannot pick a side.
	n, err := Parse("+12125551234", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vr := Validate(n)
	if !vr.IsValid {
		t.Fatal("expected valid number")
	}
	if vr.LineType != LineTypeUnknown {
		t.Fatalf("expected Unknown for shared range, got %q", vr.LineType)
	}
}

func TestCanonicalNumber_KeyAndE164(t *testing.T) {
	n := CanonicalNumber{CountryCode: "234", NationalNumber: "8012345678"}
	if n.Key() != "234/8012345678" {
		t.Fatalf("expected key 234/8012345678, got %q", n.Key())
	}
	if n.E164() != "+2348012345678" {
		t.Fatalf("expected +2348012345678, got %q", n.E164())
	}
}
