// Package service implements the tracker boundary: the synchronous operation
// set presentation collaborators call into. Control flow for every write is
// normalize, validate, enrich, persist.
package service

import (
	"context"
	"math"
	"time"

	"numtrack_backend/internal/enrich"
	"numtrack_backend/internal/phone"
	"numtrack_backend/internal/tracker/repository"
	"numtrack_backend/internal/tracker/transport"
	"numtrack_backend/platform/apperr"
	"numtrack_backend/platform/logger"
	"numtrack_backend/platform/validator"
)

// Service provides the phone tracking boundary operations.
type Service struct {
	repo          repository.Repository
	enricher      *enrich.Enricher
	val           *validator.Validator
	log           *logger.Logger
	defaultRegion string
}

// New creates a tracker service. defaultRegion resolves local-format numbers
// when the caller supplies no region of their own.
func New(repo repository.Repository, enricher *enrich.Enricher, val *validator.Validator, log *logger.Logger, defaultRegion string) *Service {
	return &Service{
		repo:          repo,
		enricher:      enricher,
		val:           val,
		log:           log.WithComponent("tracker"),
		defaultRegion: defaultRegion,
	}
}

// region resolves an explicit region override against the configured default.
// Overrides must be two-letter codes; anything else is a caller bug, not a
// phone parse failure.
func (s *Service) region(override string) (string, error) {
	if override == "" {
		return s.defaultRegion, nil
	}
	if err := s.val.Var(override, "alpha,len=2"); err != nil {
		return "", apperr.InvalidArgument("region must be a two-letter code: " + override)
	}
	return override, nil
}

// Validate parses a raw number and reports how it fits its numbering plan.
func (s *Service) Validate(ctx context.Context, raw, defaultRegion string) (transport.ValidationResponse, error) {
	region, err := s.region(defaultRegion)
	if err != nil {
		return transport.ValidationResponse{}, err
	}
	n, err := phone.Parse(raw, region)
	if err != nil {
		return transport.ValidationResponse{}, err
	}
	return toValidationResponse(phone.Validate(n)), nil
}

// Info parses a raw number and derives its descriptive metadata.
func (s *Service) Info(ctx context.Context, raw, defaultRegion string) (transport.PhoneInfoResponse, error) {
	region, err := s.region(defaultRegion)
	if err != nil {
		return transport.PhoneInfoResponse{}, err
	}
	n, err := phone.Parse(raw, region)
	if err != nil {
		return transport.PhoneInfoResponse{}, err
	}
	vr := phone.Validate(n)
	return toPhoneInfoResponse(n, s.enricher.Info(n, vr)), nil
}

// EnrichedInfo bundles the descriptive metadata tier with the heuristic
// owner and location tiers.
func (s *Service) EnrichedInfo(ctx context.Context, raw, defaultRegion string) (transport.EnrichedInfoResponse, error) {
	region, err := s.region(defaultRegion)
	if err != nil {
		return transport.EnrichedInfoResponse{}, err
	}
	n, err := phone.Parse(raw, region)
	if err != nil {
		return transport.EnrichedInfoResponse{}, err
	}
	vr := phone.Validate(n)

	return transport.EnrichedInfoResponse{
		Phone:    toPhoneInfoResponse(n, s.enricher.Info(n, vr)),
		Owner:    toOwnerResponse(s.enricher.Owner(n)),
		Location: toLocationResponse(s.enricher.Location(n)),
	}, nil
}

// Track validates, enriches, and persists a number. Re-tracking an already
// known number refreshes lastTracked and notes instead of duplicating it.
func (s *Service) Track(ctx context.Context, req transport.TrackRequest) (transport.TrackResponse, error) {
	if err := s.val.Struct(req); err != nil {
		return transport.TrackResponse{}, apperr.Wrap(apperr.KindInvalidArgument, "invalid track request", err)
	}

	region, err := s.region(req.DefaultRegion)
	if err != nil {
		return transport.TrackResponse{}, err
	}
	n, err := phone.Parse(req.PhoneNumber, region)
	if err != nil {
		return transport.TrackResponse{}, err
	}

	vr := phone.Validate(n)
	if !vr.IsValid {
		return transport.TrackResponse{}, apperr.Parse("number is not valid for its numbering plan: " + n.E164())
	}

	info := s.enricher.Info(n, vr)
	rec, created, err := s.repo.Upsert(ctx, repository.UpsertParams{
		Number:    n,
		Carrier:   info.Carrier,
		Region:    info.Region,
		Timezones: info.Timezones,
		LineType:  info.LineType,
		IsValid:   vr.IsValid,
		Notes:     req.Notes,
	})
	if err != nil {
		return transport.TrackResponse{}, err
	}

	s.log.Info("number tracked", "number", n.E164(), "created", created)
	return transport.TrackResponse{Record: toRecordResponse(rec), Created: created}, nil
}

// List returns one page of tracked records, optionally filtered.
func (s *Service) List(ctx context.Context, req transport.ListRequest) (transport.ListResponse, error) {
	page, err := s.repo.List(ctx, req.Page, req.PageSize, req.Search)
	if err != nil {
		return transport.ListResponse{}, err
	}

	records := make([]transport.TrackedRecordResponse, len(page.Records))
	for i, rec := range page.Records {
		records[i] = toRecordResponse(rec)
	}

	totalPages := 0
	if page.Total > 0 {
		totalPages = int(math.Ceil(float64(page.Total) / float64(req.PageSize)))
	}

	return transport.ListResponse{
		Records:    records,
		Page:       req.Page,
		PageSize:   req.PageSize,
		Total:      page.Total,
		TotalPages: totalPages,
	}, nil
}

// Remove deletes a tracked number identified by any textual form of it.
func (s *Service) Remove(ctx context.Context, raw, defaultRegion string) error {
	region, err := s.region(defaultRegion)
	if err != nil {
		return err
	}
	n, err := phone.Parse(raw, region)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, n); err != nil {
		return err
	}
	s.log.Info("record deleted", "number", n.E164())
	return nil
}

// Stats aggregates the tracked record set.
func (s *Service) Stats(ctx context.Context) (transport.StatsResponse, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return transport.StatsResponse{}, err
	}
	return toStatsResponse(stats), nil
}

// ClearAll wipes the record set. Idempotent.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("all records cleared")
	return nil
}

func toValidationResponse(vr phone.ValidationResult) transport.ValidationResponse {
	return transport.ValidationResponse{
		PhoneNumber:         vr.E164,
		IsValid:             vr.IsValid,
		IsPossible:          vr.IsPossible,
		CountryCode:         vr.CountryCode,
		Region:              vr.Region,
		NationalFormat:      vr.NationalFormat,
		InternationalFormat: vr.InternationalFormat,
		LineType:            string(vr.LineType),
	}
}

func toPhoneInfoResponse(n phone.CanonicalNumber, info enrich.PhoneInfo) transport.PhoneInfoResponse {
	return transport.PhoneInfoResponse{
		PhoneNumber: n.E164(),
		Carrier:     info.Carrier,
		Region:      info.Region,
		Timezones:   info.Timezones,
		LineType:    string(info.LineType),
	}
}

func toOwnerResponse(info enrich.OwnerInfo) transport.OwnerInfoResponse {
	return transport.OwnerInfoResponse{
		Name:            info.Name,
		Email:           info.Email,
		RiskScore:       info.RiskScore,
		SpamProbability: info.SpamProbability,
		SocialProfiles:  info.SocialProfiles,
		Disclaimer:      enrich.Disclaimer,
	}
}

func toLocationResponse(info enrich.LocationInfo) transport.LocationInfoResponse {
	resp := transport.LocationInfoResponse{
		Region:        info.Region,
		BasicLocation: info.BasicLocation,
		Disclaimer:    enrich.Disclaimer,
	}
	if info.Detailed != nil {
		resp.Detailed = &transport.DetailedLocationResponse{
			City:      info.Detailed.City,
			State:     info.Detailed.State,
			Country:   info.Detailed.Country,
			Latitude:  info.Detailed.Latitude,
			Longitude: info.Detailed.Longitude,
		}
	}
	return resp
}

func toRecordResponse(rec repository.TrackedRecord) transport.TrackedRecordResponse {
	return transport.TrackedRecordResponse{
		PhoneNumber:    rec.Number.E164(),
		CountryCode:    rec.Number.CountryCode,
		NationalNumber: rec.Number.NationalNumber,
		Carrier:        rec.Carrier,
		Region:         rec.Region,
		Timezones:      rec.Timezones,
		LineType:       string(rec.LineType),
		IsValid:        rec.IsValid,
		DateAdded:      rec.DateAdded,
		LastTracked:    rec.LastTracked,
		Notes:          rec.Notes,
	}
}

func toStatsResponse(stats repository.Stats) transport.StatsResponse {
	return transport.StatsResponse{
		Total:                stats.Total,
		Valid:                stats.Valid,
		Invalid:              stats.Invalid,
		RecentActivity:       stats.RecentActivity,
		CarrierDistribution:  stats.Carriers,
		LineTypeDistribution: stats.LineTypes,
		RegionDistribution:   stats.Regions,
		GeneratedAt:          time.Now().UTC(),
	}
}
