// Package tracker provides the phone intelligence and tracking bounded
// context: validation, enrichment, and the persistent record store behind
// one service boundary.
package tracker

import (
	"database/sql"

	"numtrack_backend/internal/enrich"
	"numtrack_backend/internal/tracker/repository"
	"numtrack_backend/internal/tracker/service"
	"numtrack_backend/platform/config"
	"numtrack_backend/platform/logger"
	"numtrack_backend/platform/validator"
)

// Module wires the tracker context together.
type Module struct {
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the tracker module with all its dependencies.
func NewModule(db *sql.DB, cfg *config.Config, val *validator.Validator, log *logger.Logger) (*Module, error) {
	repo, err := repository.New(db)
	if err != nil {
		return nil, err
	}

	enricher := enrich.New(cfg.CarrierLang, cfg.EnrichCacheTTL, log)
	svc := service.New(repo, enricher, val, log, cfg.DefaultRegion)

	return &Module{
		service: svc,
		repo:    repo,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "tracker"
}

// Service returns the boundary operations for presentation collaborators.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}
