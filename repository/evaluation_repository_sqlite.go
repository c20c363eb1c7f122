package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"loan-evaluator/domain"
)

const evaluationSchema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	mode       TEXT NOT NULL,
	prompt     TEXT NOT NULL DEFAULT '',
	outcome    TEXT NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	result     TEXT
);
`

type evaluationRow struct {
	ID        string         `db:"id"`
	CreatedAt string         `db:"created_at"`
	Mode      string         `db:"mode"`
	Prompt    string         `db:"prompt"`
	Outcome   string         `db:"outcome"`
	Error     string         `db:"error"`
	Result    sql.NullString `db:"result"`
}

// SQLiteEvaluationRepository persists audit records to a SQLite file.
type SQLiteEvaluationRepository struct {
	db *sqlx.DB
}

func NewSQLiteEvaluationRepository(dbPath string) (*SQLiteEvaluationRepository, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(evaluationSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteEvaluationRepository{db: db}, nil
}

func (r *SQLiteEvaluationRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteEvaluationRepository) Save(record domain.AuditRecord) error {
	row := evaluationRow{
		ID:        record.ID,
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339Nano),
		Mode:      string(record.Mode),
		Prompt:    record.Prompt,
		Outcome:   record.Outcome,
		Error:     record.Error,
	}
	if record.Result != nil {
		data, err := json.Marshal(record.Result)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		row.Result = sql.NullString{String: string(data), Valid: true}
	}

	_, err := r.db.NamedExec(`INSERT INTO evaluations (id, created_at, mode, prompt, outcome, error, result)
		VALUES (:id, :created_at, :mode, :prompt, :outcome, :error, :result)`, row)
	if err != nil {
		return fmt.Errorf("insert evaluation %s: %w", record.ID, err)
	}
	return nil
}

func (r *SQLiteEvaluationRepository) Recent(limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = -1 // no limit in SQLite
	}

	var rows []evaluationRow
	err := r.db.Select(&rows, `SELECT id, created_at, mode, prompt, outcome, error, result
		FROM evaluations ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("select evaluations: %w", err)
	}

	records := make([]domain.AuditRecord, 0, len(rows))
	for _, row := range rows {
		rec := domain.AuditRecord{
			ID:      row.ID,
			Mode:    domain.Mode(row.Mode),
			Prompt:  row.Prompt,
			Outcome: row.Outcome,
			Error:   row.Error,
		}
		createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("decode created_at of %s: %w", row.ID, err)
		}
		rec.CreatedAt = createdAt
		if row.Result.Valid && row.Result.String != "" {
			var ev domain.Evaluation
			if err := json.Unmarshal([]byte(row.Result.String), &ev); err != nil {
				return nil, fmt.Errorf("decode result of %s: %w", row.ID, err)
			}
			rec.Result = &ev
		}
		records = append(records, rec)
	}
	return records, nil
}
