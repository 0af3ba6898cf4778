package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/accountflow/accountflow/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL DEFAULT '',
	company_id  TEXT NOT NULL DEFAULT '',
	scenario_id TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	result      TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_company ON analyses(company_id);
`

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) the analysis database under
// <workspace>/.accountflow/accountflow.db.
func OpenSQLite(workspace string) (*SQLite, error) {
	dir := filepath.Join(workspace, ".accountflow")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating workspace dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared", filepath.Join(dir, "accountflow.db"))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Save(ctx context.Context, result model.AnalysisResult, sctx Context) (Record, error) {
	id := result.ID
	if id == "" {
		id = uuid.NewString()
	}
	result.ID = id

	payload, err := json.Marshal(result)
	if err != nil {
		return Record{}, fmt.Errorf("encoding result: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses(id,user_id,company_id,scenario_id,status,result,created_at,updated_at) VALUES (?,?,?,?,?,?,?,?)`,
		id, sctx.UserID, sctx.CompanyID, sctx.ScenarioID, string(StatusDraft), string(payload),
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return Record{}, fmt.Errorf("inserting analysis: %w", err)
	}

	return Record{ID: id, Result: result, Context: sctx, Status: StatusDraft, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *SQLite) Get(ctx context.Context, id string) (Record, error) {
	return scanRecord(s.db.QueryRowContext(ctx,
		`SELECT id,user_id,company_id,scenario_id,status,result,created_at,updated_at FROM analyses WHERE id=?`, id))
}

func (s *SQLite) List(ctx context.Context, sctx Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,user_id,company_id,scenario_id,status,result,created_at,updated_at FROM analyses
		 WHERE (?='' OR user_id=?) AND (?='' OR company_id=?) AND (?='' OR scenario_id=?)
		 ORDER BY created_at DESC`,
		sctx.UserID, sctx.UserID, sctx.CompanyID, sctx.CompanyID, sctx.ScenarioID, sctx.ScenarioID)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		rec, err := scanRecordRows(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (s *SQLite) Update(ctx context.Context, id string, result model.AnalysisResult) (Record, error) {
	result.ID = id
	payload, err := json.Marshal(result)
	if err != nil {
		return Record{}, fmt.Errorf("encoding result: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `UPDATE analyses SET result=?, updated_at=? WHERE id=?`,
		string(payload), now.Format(time.RFC3339Nano), id)
	if err != nil {
		return Record{}, fmt.Errorf("updating analysis: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Record{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *SQLite) Confirm(ctx context.Context, id string) (Record, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`UPDATE analyses SET status=?, updated_at=? WHERE id=? AND status<>?`,
		string(StatusConfirmed), now.Format(time.RFC3339Nano), id, string(StatusConfirmed))
	if err != nil {
		return Record{}, fmt.Errorf("confirming analysis: %w", err)
	}
	// Zero rows means missing or already confirmed; Get distinguishes.
	return s.Get(ctx, id)
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(row *sql.Row) (Record, error) {
	var rec Record
	var status, payload, createdAt, updatedAt string
	err := row.Scan(&rec.ID, &rec.Context.UserID, &rec.Context.CompanyID, &rec.Context.ScenarioID,
		&status, &payload, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("scanning analysis: %w", err)
	}
	return decodeRecord(rec, status, payload, createdAt, updatedAt)
}

func scanRecordRows(rows *sql.Rows) (Record, error) {
	var rec Record
	var status, payload, createdAt, updatedAt string
	err := rows.Scan(&rec.ID, &rec.Context.UserID, &rec.Context.CompanyID, &rec.Context.ScenarioID,
		&status, &payload, &createdAt, &updatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("scanning analysis: %w", err)
	}
	return decodeRecord(rec, status, payload, createdAt, updatedAt)
}

func decodeRecord(rec Record, status, payload, createdAt, updatedAt string) (Record, error) {
	rec.Status = Status(status)
	if err := json.Unmarshal([]byte(payload), &rec.Result); err != nil {
		return Record{}, fmt.Errorf("decoding analysis %s: %w", rec.ID, err)
	}

	var err error
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Record{}, fmt.Errorf("parsing created_at for %s: %w", rec.ID, err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return Record{}, fmt.Errorf("parsing updated_at for %s: %w", rec.ID, err)
	}
	return rec, nil
}
