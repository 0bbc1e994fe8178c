package repository

import (
	"context"
	"time"

	"numtrack_backend/internal/phone"
)

// TrackedRecord is the persisted entity for one tracked number, keyed by its
// canonical (country code, national number) pair.
type TrackedRecord struct {
	Number      phone.CanonicalNumber
	Carrier     string
	Region      string
	Timezones   []string
	LineType    phone.LineType
	IsValid     bool
	DateAdded   time.Time
	LastTracked time.Time
	Notes       string
}

// UpsertParams carries the refreshed metadata for an insert-or-update.
type UpsertParams struct {
	Number    phone.CanonicalNumber
	Carrier   string
	Region    string
	Timezones []string
	LineType  phone.LineType
	IsValid   bool
	Notes     string
}

// Page is one page of tracked records plus the total matching count.
type Page struct {
	Records []TrackedRecord
	Total   int
}

// Stats aggregates the record set.
type Stats struct {
	Total          int
	Valid          int
	Invalid        int
	RecentActivity int
	Carriers       map[string]int
	LineTypes      map[string]int
	Regions        map[string]int
}

// TrackedNumberReader provides read operations over tracked records.
type TrackedNumberReader interface {
	Get(ctx context.Context, n phone.CanonicalNumber) (TrackedRecord, error)
	List(ctx context.Context, page, pageSize int, search string) (Page, error)
	All(ctx context.Context) ([]TrackedRecord, error)
	Stats(ctx context.Context) (Stats, error)
}

// TrackedNumberWriter provides write operations over tracked records.
type TrackedNumberWriter interface {
	Upsert(ctx context.Context, params UpsertParams) (TrackedRecord, bool, error)
	Delete(ctx context.Context, n phone.CanonicalNumber) error
	Clear(ctx context.Context) error
}

// Repository combines all tracked number operations.
type Repository interface {
	TrackedNumberReader
	TrackedNumberWriter
}
