// Package storage implements the SQLite-backed record store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Furim/MoneyFlexerski/internal/core"
	"github.com/Furim/MoneyFlexerski/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db     *sql.DB
	dbPath string
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, dbPath: dbPath}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertRecord implements store.RecordStore.
func (r *SQLiteRepository) InsertRecord(ctx context.Context, rec core.Record) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO records (kind, amount_cents, day, year, month, section) VALUES (?, ?, ?, ?, ?, ?)`,
		string(rec.Kind), rec.Amount.Cents, rec.Day, rec.Year, rec.Month, rec.Section)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Record saved",
		"id", id,
		"kind", rec.Kind,
		"amount_cents", rec.Amount.Cents,
		"day", rec.Day,
		"year", rec.Year,
		"month", rec.Month)

	return id, nil
}

// UpsertIncome implements store.RecordStore. There is at most one income
// record per (year, month); re-saving replaces it.
func (r *SQLiteRepository) UpsertIncome(ctx context.Context, rec core.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE records SET amount_cents = ? WHERE kind = ? AND year = ? AND month = ?`,
		rec.Amount.Cents, string(core.KindIncome), rec.Year, rec.Month)
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		if _, err := r.InsertRecord(ctx, rec); err != nil {
			return fmt.Errorf("insert income: %w", err)
		}
	}
	return nil
}

// GetIncome implements store.RecordStore. Returns nil when no income record
// exists for the month.
func (r *SQLiteRepository) GetIncome(ctx context.Context, year, month int) (*core.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, kind, amount_cents, day, year, month, section FROM records
		 WHERE kind = ? AND year = ? AND month = ?`,
		string(core.KindIncome), year, month)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get income: %w", err)
	}
	return &rec, nil
}

// SearchRecords implements store.RecordStore. The query is a conjunction of
// field-equality tests; zero-valued fields are skipped.
func (r *SQLiteRepository) SearchRecords(ctx context.Context, q store.RecordQuery) ([]core.Record, error) {
	var (
		where []string
		args  []any
	)
	if q.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(q.Kind))
	}
	if q.Year != 0 {
		where = append(where, "year = ?")
		args = append(args, q.Year)
	}
	if q.Month != 0 {
		where = append(where, "month = ?")
		args = append(args, q.Month)
	}
	if q.Section != "" {
		where = append(where, "section = ?")
		args = append(args, q.Section)
	}

	query := `SELECT id, kind, amount_cents, day, year, month, section FROM records`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// AllRecords implements store.RecordStore.
func (r *SQLiteRepository) AllRecords(ctx context.Context) ([]core.Record, error) {
	return r.SearchRecords(ctx, store.RecordQuery{})
}

// LastModified implements store.RecordStore, sourced from the database
// file's metadata.
func (r *SQLiteRepository) LastModified() (time.Time, error) {
	info, err := os.Stat(r.dbPath)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat database file: %w", err)
	}
	return info.ModTime(), nil
}

// LoadSections implements store.SectionStore.
func (r *SQLiteRepository) LoadSections(ctx context.Context) ([]core.Section, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, balance_cents FROM sections ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}
	defer rows.Close()

	var sections []core.Section
	for rows.Next() {
		var s core.Section
		if err := rows.Scan(&s.Name, &s.Balance.Cents); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return sections, nil
}

// ReplaceSections implements store.SectionStore: truncate and rewrite the
// whole collection in one transaction.
func (r *SQLiteRepository) ReplaceSections(ctx context.Context, sections []core.Section) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := rewriteSections(ctx, tx, sections); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sections: %w", err)
	}
	return nil
}

// RecordAdjustment implements store.SectionStore. The section rewrite and
// the ledger append commit together, so a crash cannot leave the persisted
// balance inconsistent with the ledger's sum.
func (r *SQLiteRepository) RecordAdjustment(ctx context.Context, sections []core.Section, entry core.Record) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := rewriteSections(ctx, tx, sections); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO records (kind, amount_cents, day, year, month, section) VALUES (?, ?, ?, ?, ?, ?)`,
		string(entry.Kind), entry.Amount.Cents, entry.Day, entry.Year, entry.Month, entry.Section); err != nil {
		return fmt.Errorf("insert section entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit adjustment: %w", err)
	}

	slog.InfoContext(ctx, "Section adjustment recorded",
		"section", entry.Section,
		"amount_cents", entry.Amount.Cents,
		"year", entry.Year,
		"month", entry.Month)

	return nil
}

func rewriteSections(ctx context.Context, tx *sql.Tx, sections []core.Section) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM sections`); err != nil {
		return fmt.Errorf("truncate sections: %w", err)
	}
	for _, s := range sections {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sections (name, balance_cents) VALUES (?, ?)`,
			s.Name, s.Balance.Cents); err != nil {
			return fmt.Errorf("insert section %q: %w", s.Name, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.Record, error) {
	var (
		rec  core.Record
		kind string
	)
	if err := row.Scan(&rec.ID, &kind, &rec.Amount.Cents, &rec.Day, &rec.Year, &rec.Month, &rec.Section); err != nil {
		return core.Record{}, err
	}
	rec.Kind = core.Kind(kind)
	return rec, nil
}

func collectRecords(rows *sql.Rows) ([]core.Record, error) {
	var out []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}
