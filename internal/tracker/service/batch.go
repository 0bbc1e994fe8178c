package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"numtrack_backend/internal/tracker/transport"
	"numtrack_backend/platform/apperr"
)

// Export formats understood by ExportAll and DecodeRows.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// exportSchemaVersion guards round-trips: an import only has to understand
// envelopes it wrote itself.
const exportSchemaVersion = 1

var csvHeader = []string{"Phone Number", "Carrier", "Region", "Timezone", "Line Type", "Date Added", "Last Tracked", "Notes"}

// ImportBatch runs the full track pipeline per row. A failing row lands in
// the error list and never aborts the rows after it; partial success is the
// expected outcome.
func (s *Service) ImportBatch(ctx context.Context, rows []transport.ImportRow) (transport.ImportResponse, error) {
	resp := transport.ImportResponse{Errors: []transport.ImportError{}}

	for i, row := range rows {
		_, err := s.Track(ctx, transport.TrackRequest{
			PhoneNumber: row.PhoneNumber,
			Notes:       row.Notes,
		})
		if err != nil {
			resp.Errors = append(resp.Errors, transport.ImportError{
				Row:    i,
				Input:  row.PhoneNumber,
				Code:   apperr.CodeOf(err),
				Reason: err.Error(),
			})
			continue
		}
		resp.ImportedCount++
	}

	s.log.Info("import finished", "imported", resp.ImportedCount, "failed", len(resp.Errors))
	return resp, nil
}

// ExportAll serializes the full record set in the requested format, wrapped
// in an envelope carrying the export id, timestamp, schema version, and
// record count.
func (s *Service) ExportAll(ctx context.Context, format string) ([]byte, error) {
	records, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	envelope := transport.ExportEnvelope{
		ExportID:      uuid.NewString(),
		ExportedAt:    time.Now().UTC(),
		SchemaVersion: exportSchemaVersion,
		RecordCount:   len(records),
		Records:       make([]transport.ExportRecord, len(records)),
	}
	for i, rec := range records {
		envelope.Records[i] = transport.ExportRecord{
			PhoneNumber:    rec.Number.E164(),
			CountryCode:    rec.Number.CountryCode,
			NationalNumber: rec.Number.NationalNumber,
			Carrier:        rec.Carrier,
			Region:         rec.Region,
			Timezone:       strings.Join(rec.Timezones, " "),
			LineType:       string(rec.LineType),
			DateAdded:      rec.DateAdded,
			LastTracked:    rec.LastTracked,
			Notes:          rec.Notes,
		}
	}

	switch strings.ToLower(format) {
	case FormatJSON:
		return json.MarshalIndent(envelope, "", "  ")
	case FormatCSV:
		return encodeCSV(envelope)
	default:
		return nil, apperr.InvalidArgument("unsupported export format: " + format)
	}
}

// DecodeRows turns an export produced by ExportAll back into import rows.
// Only phoneNumber and notes survive the round trip; metadata columns are
// recomputed by the import pipeline rather than trusted from the file.
func (s *Service) DecodeRows(format string, blob []byte) ([]transport.ImportRow, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return decodeJSONRows(blob)
	case FormatCSV:
		return decodeCSVRows(blob)
	default:
		return nil, apperr.InvalidArgument("unsupported import format: " + format)
	}
}

func encodeCSV(envelope transport.ExportEnvelope) ([]byte, error) {
	var buf bytes.Buffer

	// CSV has no document header, so the envelope rides in a comment line.
	fmt.Fprintf(&buf, "# exportId=%s exportedAt=%s schemaVersion=%d recordCount=%d\n",
		envelope.ExportID, envelope.ExportedAt.Format(time.RFC3339), envelope.SchemaVersion, envelope.RecordCount)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range envelope.Records {
		row := []string{
			rec.PhoneNumber, rec.Carrier, rec.Region, rec.Timezone, rec.LineType,
			rec.DateAdded.Format(time.RFC3339), rec.LastTracked.Format(time.RFC3339), rec.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func decodeCSVRows(blob []byte) ([]transport.ImportRow, error) {
	r := csv.NewReader(bytes.NewReader(blob))
	r.Comment = '#'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindParse, "malformed csv: "+err.Error(), err)
	}

	var rows []transport.ImportRow
	for _, record := range records {
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		if record[0] == csvHeader[0] {
			continue
		}
		row := transport.ImportRow{PhoneNumber: strings.TrimSpace(record[0])}
		if len(record) >= len(csvHeader) {
			row.Notes = record[len(csvHeader)-1]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeJSONRows(blob []byte) ([]transport.ImportRow, error) {
	var envelope transport.ExportEnvelope
	if err := json.Unmarshal(blob, &envelope); err != nil {
		return nil, apperr.Wrap(apperr.KindParse, "malformed export document: "+err.Error(), err)
	}
	if envelope.SchemaVersion != 0 && envelope.SchemaVersion != exportSchemaVersion {
		return nil, apperr.Parse(fmt.Sprintf("unsupported schema version %d", envelope.SchemaVersion))
	}

	rows := make([]transport.ImportRow, len(envelope.Records))
	for i, rec := range envelope.Records {
		rows[i] = transport.ImportRow{PhoneNumber: rec.PhoneNumber, Notes: rec.Notes}
	}
	return rows, nil
}
