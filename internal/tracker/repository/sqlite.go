package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"numtrack_backend/internal/phone"
	"numtrack_backend/platform/apperr"
)

//go:embed schema.sql
var schema string

const recordNotFoundMessage = "phone number is not tracked"

const recordColumns = "country_code, national_number, e164, carrier, region, timezone, line_type, is_valid, date_added, last_tracked, notes"

// lockStripes partitions the per-key lock table. Mutations on the same
// canonical number serialize; unrelated numbers almost always proceed
// independently.
const lockStripes = 64

// Repo implements the Repository interface with sqlite.
type Repo struct {
	db    *sql.DB
	locks [lockStripes]sync.Mutex
}

// New creates a tracked numbers repository and bootstraps the schema.
func New(db *sql.DB) (*Repo, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Repo{db: db}, nil
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func (r *Repo) lockFor(n phone.CanonicalNumber) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(n.Key()))
	return &r.locks[h.Sum32()%lockStripes]
}

// Upsert inserts a record for an unseen number or refreshes the existing one.
// date_added is set once on insert and never touched again; last_tracked,
// notes, and the derived metadata refresh on every call. Returns the stored
// record and whether it was newly created.
func (r *Repo) Upsert(ctx context.Context, params UpsertParams) (TrackedRecord, bool, error) {
	mu := r.lockFor(params.Number)
	mu.Lock()
	defer mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return TrackedRecord{}, false, apperr.Storage("begin upsert", err)
	}
	defer tx.Rollback()

	var dateAdded time.Time
	err = tx.QueryRowContext(ctx,
		"SELECT date_added FROM phone_records WHERE country_code = ? AND national_number = ?",
		params.Number.CountryCode, params.Number.NationalNumber,
	).Scan(&dateAdded)

	now := time.Now().UTC()
	created := false

	switch {
	case errors.Is(err, sql.ErrNoRows):
		created = true
		dateAdded = now
		_, err = tx.ExecContext(ctx, `
			INSERT INTO phone_records (`+recordColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			params.Number.CountryCode, params.Number.NationalNumber, params.Number.E164(),
			params.Carrier, params.Region, strings.Join(params.Timezones, ","),
			string(params.LineType), params.IsValid, dateAdded, now, params.Notes,
		)
		if err != nil {
			return TrackedRecord{}, false, apperr.Storage("insert phone record", err)
		}
	case err != nil:
		return TrackedRecord{}, false, apperr.Storage("read phone record", err)
	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE phone_records
			SET carrier = ?, region = ?, timezone = ?, line_type = ?, is_valid = ?, last_tracked = ?, notes = ?
			WHERE country_code = ? AND national_number = ?`,
			params.Carrier, params.Region, strings.Join(params.Timezones, ","),
			string(params.LineType), params.IsValid, now, params.Notes,
			params.Number.CountryCode, params.Number.NationalNumber,
		)
		if err != nil {
			return TrackedRecord{}, false, apperr.Storage("update phone record", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return TrackedRecord{}, false, apperr.Storage("commit upsert", err)
	}

	return TrackedRecord{
		Number:      params.Number,
		Carrier:     params.Carrier,
		Region:      params.Region,
		Timezones:   params.Timezones,
		LineType:    params.LineType,
		IsValid:     params.IsValid,
		DateAdded:   dateAdded,
		LastTracked: now,
		Notes:       params.Notes,
	}, created, nil
}

// Get retrieves the record for a canonical number.
func (r *Repo) Get(ctx context.Context, n phone.CanonicalNumber) (TrackedRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM phone_records WHERE country_code = ? AND national_number = ?",
		n.CountryCode, n.NationalNumber,
	)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackedRecord{}, apperr.NotFound(recordNotFoundMessage)
	}
	if err != nil {
		return TrackedRecord{}, apperr.Storage("get phone record", err)
	}
	return rec, nil
}

// Delete removes the record for a canonical number permanently.
func (r *Repo) Delete(ctx context.Context, n phone.CanonicalNumber) error {
	mu := r.lockFor(n)
	mu.Lock()
	defer mu.Unlock()

	result, err := r.db.ExecContext(ctx,
		"DELETE FROM phone_records WHERE country_code = ? AND national_number = ?",
		n.CountryCode, n.NationalNumber,
	)
	if err != nil {
		return apperr.Storage("delete phone record", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperr.Storage("delete phone record", err)
	}
	if affected == 0 {
		return apperr.NotFound(recordNotFoundMessage)
	}
	return nil
}

// List returns one page of records ordered by date_added descending,
// filtered case-insensitively across number, carrier, region, and notes.
// Pagination is 1-indexed; a page beyond the last yields an empty slice.
func (r *Repo) List(ctx context.Context, page, pageSize int, search string) (Page, error) {
	if page <= 0 || pageSize <= 0 {
		return Page{}, apperr.InvalidArgument("page and pageSize must be positive")
	}

	term := strings.ToLower(strings.TrimSpace(search))
	filter := `
		(? = ''
			OR lower(e164) LIKE '%' || ? || '%'
			OR lower(carrier) LIKE '%' || ? || '%'
			OR lower(region) LIKE '%' || ? || '%'
			OR lower(notes) LIKE '%' || ? || '%')`

	var total int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM phone_records WHERE "+filter,
		term, term, term, term, term,
	).Scan(&total)
	if err != nil {
		return Page{}, apperr.Storage("count phone records", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM phone_records
		WHERE `+filter+`
		ORDER BY date_added DESC, e164 ASC
		LIMIT ? OFFSET ?`,
		term, term, term, term, term, pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return Page{}, apperr.Storage("list phone records", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return Page{}, apperr.Storage("scan phone records", err)
	}

	return Page{Records: records, Total: total}, nil
}

// All returns every record, newest first. Used by the exporter.
func (r *Repo) All(ctx context.Context) ([]TrackedRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM phone_records ORDER BY date_added DESC, e164 ASC")
	if err != nil {
		return nil, apperr.Storage("list phone records", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, apperr.Storage("scan phone records", err)
	}
	return records, nil
}

// Stats aggregates the record set inside one read transaction so concurrent
// writes cannot skew a snapshot halfway through.
func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return Stats{}, apperr.Storage("begin stats", err)
	}
	defer tx.Rollback()

	stats := Stats{
		Carriers:  map[string]int{},
		LineTypes: map[string]int{},
		Regions:   map[string]int{},
	}

	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_valid THEN 1 ELSE 0 END), 0)
		FROM phone_records`).Scan(&stats.Total, &stats.Valid)
	if err != nil {
		return Stats{}, apperr.Storage("count records", err)
	}
	stats.Invalid = stats.Total - stats.Valid

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM phone_records WHERE date_added >= ?", cutoff,
	).Scan(&stats.RecentActivity)
	if err != nil {
		return Stats{}, apperr.Storage("count recent records", err)
	}

	for column, dest := range map[string]map[string]int{
		"carrier":   stats.Carriers,
		"line_type": stats.LineTypes,
		"region":    stats.Regions,
	} {
		if err := distribution(ctx, tx, column, dest); err != nil {
			return Stats{}, apperr.Storage("aggregate "+column, err)
		}
	}

	return stats, nil
}

// Clear removes every record. Idempotent.
func (r *Repo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM phone_records"); err != nil {
		return apperr.Storage("clear phone records", err)
	}
	return nil
}

func distribution(ctx context.Context, tx *sql.Tx, column string, dest map[string]int) error {
	rows, err := tx.QueryContext(ctx,
		"SELECT COALESCE(NULLIF("+column+", ''), 'Unknown'), COUNT(*) FROM phone_records GROUP BY 1")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		var count int
		if err := rows.Scan(&value, &count); err != nil {
			return err
		}
		dest[value] = count
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (TrackedRecord, error) {
	var rec TrackedRecord
	var e164, timezones, lineType string

	err := row.Scan(
		&rec.Number.CountryCode, &rec.Number.NationalNumber, &e164,
		&rec.Carrier, &rec.Region, &timezones, &lineType, &rec.IsValid,
		&rec.DateAdded, &rec.LastTracked, &rec.Notes,
	)
	if err != nil {
		return TrackedRecord{}, err
	}

	rec.Number.RawInput = e164
	rec.LineType = phone.LineType(lineType)
	if timezones != "" {
		rec.Timezones = strings.Split(timezones, ",")
	}
	return rec, nil
}

func scanRecords(rows *sql.Rows) ([]TrackedRecord, error) {
	var records []TrackedRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
