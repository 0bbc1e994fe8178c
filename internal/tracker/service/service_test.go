package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"numtrack_backend/internal/enrich"
	"numtrack_backend/internal/tracker/repository"
	"numtrack_backend/internal/tracker/transport"
	"numtrack_backend/platform/apperr"
	"numtrack_backend/platform/db"
	"numtrack_backend/platform/logger"
	"numtrack_backend/platform/validator"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	repo, err := repository.New(conn)
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}

	log := logger.New("development")
	return New(repo, enrich.New("en", time.Minute, log), validator.New(), log, "NG")
}

func track(t *testing.T, svc *Service, raw, notes string) transport.TrackResponse {
	t.Helper()
	resp, err := svc.Track(context.Background(), transport.TrackRequest{PhoneNumber: raw, Notes: notes})
	if err != nil {
		t.Fatalf("track %q: %v", raw, err)
	}
	return resp
}

func TestValidate_ReportsPlanFit(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Validate(context.Background(), "+2348012345678", "")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !resp.IsValid || !resp.IsPossible {
		t.Fatalf("expected valid possible number, got %+v", resp)
	}
	if resp.CountryCode != "234" || resp.Region != "NG" {
		t.Fatalf("unexpected country/region: %+v", resp)
	}
	if resp.LineType != "Mobile" {
		t.Fatalf("expected Mobile, got %q", resp.LineType)
	}
}

func TestValidate_ParseErrorForGarbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Validate(context.Background(), "not-a-number", "")
	if !apperr.Is(err, apperr.KindParse) {
		t.Fatalf("expected KindParse, got %v", err)
	}
}

func TestInfo_DerivesMetadata(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Info(context.Background(), "+2348012345678", "")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if resp.Region != "NG" || resp.LineType != "Mobile" {
		t.Fatalf("unexpected info: %+v", resp)
	}
}

func TestEnrichedInfo_FlagsHeuristicTiers(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.EnrichedInfo(context.Background(), "+2348012345678", "")
	if err != nil {
		t.Fatalf("enriched info: %v", err)
	}
	if resp.Owner.Disclaimer == "" || resp.Location.Disclaimer == "" {
		t.Fatal("heuristic tiers must carry the approximate-data disclaimer")
	}
	if resp.Owner.RiskScore < 0 || resp.Owner.RiskScore > 1 {
		t.Fatalf("risk score out of range: %v", resp.Owner.RiskScore)
	}
	if resp.Location.Region != "NG" {
		t.Fatalf("expected region NG, got %q", resp.Location.Region)
	}
}

func TestTrack_SpacedFormOfSameNumberUpdatesOneRecord(t *testing.T) {
	svc := newTestService(t)

	first := track(t, svc, "+2348012345678", "")
	if !first.Created {
		t.Fatal("expected first track to create")
	}

	time.Sleep(10 * time.Millisecond)

	second := track(t, svc, "+234 801 234 5678", "Business contact")
	if second.Created {
		t.Fatal("expected second track to update, not create")
	}
	if !second.Record.LastTracked.After(first.Record.LastTracked) {
		t.Fatalf("lastTracked not bumped: %v -> %v", first.Record.LastTracked, second.Record.LastTracked)
	}
	if second.Record.CountryCode != "234" || second.Record.NationalNumber != "8012345678" {
		t.Fatalf("unexpected canonical form: %+v", second.Record)
	}
	if second.Record.Notes != "Business contact" {
		t.Fatalf("expected second notes to win, got %q", second.Record.Notes)
	}
	if !second.Record.DateAdded.Equal(first.Record.DateAdded) {
		t.Fatalf("dateAdded changed: %v -> %v", first.Record.DateAdded, second.Record.DateAdded)
	}

	list, err := svc.List(context.Background(), transport.ListRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("expected one record, got %d", list.Total)
	}
}

func TestTrack_LocalFormUsesDefaultRegion(t *testing.T) {
	svc := newTestService(t)

	resp := track(t, svc, "08012345678", "")
	if resp.Record.PhoneNumber != "+2348012345678" {
		t.Fatalf("expected +2348012345678, got %q", resp.Record.PhoneNumber)
	}
}

func TestValidate_RegionOverrideResolvesLocalForm(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Validate(context.Background(), "2125551234", "us")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if resp.PhoneNumber != "+12125551234" || resp.Region != "US" {
		t.Fatalf("unexpected resolution: %+v", resp)
	}
}

func TestValidate_MalformedRegionOverrideRejected(t *testing.T) {
	svc := newTestService(t)

	for _, region := range []string{"Nigeria", "N", "1G"} {
		_, err := svc.Validate(context.Background(), "08012345678", region)
		if !apperr.Is(err, apperr.KindInvalidArgument) {
			t.Fatalf("region %q: expected KindInvalidArgument, got %v", region, err)
		}
	}
}

func TestTrack_InvalidNumberRejected(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Track(context.Background(), transport.TrackRequest{PhoneNumber: "+12345"})
	if !apperr.Is(err, apperr.KindParse) {
		t.Fatalf("expected KindParse for invalid number, got %v", err)
	}
}

func TestRemove_AbsentNumberIsNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.Remove(context.Background(), "+2348012345678", "")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestRemove_DeletesTrackedNumber(t *testing.T) {
	svc := newTestService(t)
	track(t, svc, "+2348012345678", "")

	if err := svc.Remove(context.Background(), "+234 801 234 5678", ""); err != nil {
		t.Fatalf("remove: %v", err)
	}

	list, err := svc.List(context.Background(), transport.ListRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 0 {
		t.Fatalf("expected empty store, got %d records", list.Total)
	}
}

func TestStats_TotalMatchesListLength(t *testing.T) {
	svc := newTestService(t)
	track(t, svc, "+2348012345678", "")
	track(t, svc, "+12125551234", "")
	track(t, svc, "+442079460000", "")

	ctx := context.Background()
	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	list, err := svc.List(ctx, transport.ListRequest{Page: 1, PageSize: 500})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if stats.Total != len(list.Records) {
		t.Fatalf("stats total %d != list length %d", stats.Total, len(list.Records))
	}
	if stats.RegionDistribution["NG"] != 1 || stats.RegionDistribution["US"] != 1 || stats.RegionDistribution["GB"] != 1 {
		t.Fatalf("unexpected region distribution: %v", stats.RegionDistribution)
	}
}

func TestClearAll_EmptiesTheStore(t *testing.T) {
	svc := newTestService(t)
	track(t, svc, "+2348012345678", "")

	ctx := context.Background()
	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 0 {
		t.Fatalf("expected empty store, got %d", stats.Total)
	}
}
