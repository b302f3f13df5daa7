// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records conversion attempts in a SQLite database so that
// repeated batch runs only convert documents whose source changed.
package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/ollyswanson/fixture-converter/pkg/types"
)

// Store manages the manifest database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the manifest database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating manifest directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	// Batch workers share the store; SQLite accepts one writer at a time.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating manifest schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			source_path TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			output_path TEXT NOT NULL,
			source_mod_time TEXT,
			status TEXT NOT NULL,
			error TEXT,
			converted_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores the outcome of a conversion attempt, replacing any earlier
// record for the same source path.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (source_path, id, output_path, source_mod_time, status, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source_path) DO UPDATE SET
			id=excluded.id, output_path=excluded.output_path,
			source_mod_time=excluded.source_mod_time, status=excluded.status,
			error=excluded.error, converted_at=excluded.converted_at`,
		rec.SourcePath, rec.ID, rec.OutputPath,
		formatTime(rec.SourceModTime), string(rec.Status), rec.Error, formatTime(rec.ConvertedAt),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", rec.SourcePath, err)
	}
	return nil
}

// Lookup returns the record for sourcePath. ok is false when none exists.
func (s *Store) Lookup(ctx context.Context, sourcePath string) (rec types.ConversionRecord, ok bool, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT source_path, id, output_path, source_mod_time, status, error, converted_at
		 FROM documents WHERE source_path = ?`, sourcePath)

	rec, err = scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ConversionRecord{}, false, nil
	}
	if err != nil {
		return types.ConversionRecord{}, false, fmt.Errorf("looking up %s: %w", sourcePath, err)
	}
	return rec, true, nil
}

// Unchanged reports whether doc was converted successfully from a source with
// the same modification time and its output file still exists.
func (s *Store) Unchanged(ctx context.Context, doc types.Document, modTime time.Time) (bool, error) {
	rec, ok, err := s.Lookup(ctx, doc.SourcePath)
	if err != nil || !ok {
		return false, err
	}
	if rec.Status != types.ConversionDone || !rec.SourceModTime.Equal(modTime) {
		return false, nil
	}
	if rec.OutputPath != doc.OutputPath {
		return false, nil
	}
	if _, err := os.Stat(doc.OutputPath); err != nil {
		return false, nil
	}
	return true, nil
}

// List returns all records ordered by source path.
func (s *Store) List(ctx context.Context) ([]types.ConversionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_path, id, output_path, source_mod_time, status, error, converted_at
		 FROM documents ORDER BY source_path`)
	if err != nil {
		return nil, fmt.Errorf("listing manifest: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning manifest row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ExportYAML writes every record to w as a YAML sequence.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	records, err := s.List(ctx)
	if err != nil {
		return err
	}
	if records == nil {
		records = []types.ConversionRecord{}
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (types.ConversionRecord, error) {
	var (
		rec                  types.ConversionRecord
		status               string
		modTime, convertedAt sql.NullString
		errMsg               sql.NullString
	)
	if err := row.Scan(&rec.SourcePath, &rec.ID, &rec.OutputPath, &modTime, &status, &errMsg, &convertedAt); err != nil {
		return types.ConversionRecord{}, err
	}
	rec.Status = types.ConversionStatus(status)
	rec.Error = errMsg.String
	rec.SourceModTime = parseTime(modTime.String)
	rec.ConvertedAt = parseTime(convertedAt.String)
	return rec, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
