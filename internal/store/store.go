package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/pepo-gtm/pepo/config"
	"github.com/pepo-gtm/pepo/internal/agent/core"
)

// ErrRunNotFound is returned when no archived run matches the requested id.
var ErrRunNotFound = errors.New("run not found")

// RunRecord is one archived workflow execution.
type RunRecord struct {
	ID             string          `json:"id"`
	Goal           string          `json:"goal"`
	Summary        string          `json:"summary"`
	Cost           float64         `json:"cost"`
	Duration       time.Duration   `json:"duration"`
	ScratchpadFile string          `json:"scratchpad_file,omitempty"`
	Result         json.RawMessage `json:"result,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RecordFromResult converts a finished workflow result into its archive form.
func RecordFromResult(res *core.WorkflowResult) (RunRecord, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return RunRecord{}, fmt.Errorf("marshaling result: %w", err)
	}
	return RunRecord{
		ID:             res.RunID,
		Goal:           string(res.Goal),
		Summary:        res.Summary,
		Cost:           res.Cost,
		Duration:       res.Duration,
		ScratchpadFile: res.ScratchpadFile,
		Result:         raw,
		CreatedAt:      res.CreatedAt,
	}, nil
}

// Archive persists finished runs. Backed by Postgres when configured,
// otherwise by JSON files under the data directory.
type Archive interface {
	SaveRun(ctx context.Context, rec RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, error)
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	Close() error
}

// Store is the Postgres-backed archive.
type Store struct {
	DB *sql.DB
}

// New opens the archive described by cfg.
func New(ctx context.Context, cfg config.PostgresConfig) (*Store, error) {
	return NewWithDSN(ctx, cfg.DSN())
}

// NewWithDSN constructs the Store using an explicit Postgres DSN.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) SaveRun(ctx context.Context, rec RunRecord) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO runs (id, goal, summary, cost, duration_ms, scratchpad_file, result, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET
			summary = EXCLUDED.summary,
			cost = EXCLUDED.cost,
			duration_ms = EXCLUDED.duration_ms,
			result = EXCLUDED.result`,
		rec.ID, rec.Goal, rec.Summary, rec.Cost, rec.Duration.Milliseconds(),
		rec.ScratchpadFile, []byte(rec.Result), rec.CreatedAt)
	return err
}

func (s *Store) GetRun(ctx context.Context, id string) (RunRecord, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, goal, summary, cost, duration_ms, scratchpad_file, result, created_at
		FROM runs WHERE id = $1`, id)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, ErrRunNotFound
	}
	return rec, err
}

func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, goal, summary, cost, duration_ms, scratchpad_file, result, created_at
		FROM runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (RunRecord, error) {
	var (
		rec        RunRecord
		durationMS int64
		result     []byte
	)
	err := row.Scan(&rec.ID, &rec.Goal, &rec.Summary, &rec.Cost, &durationMS,
		&rec.ScratchpadFile, &result, &rec.CreatedAt)
	if err != nil {
		return RunRecord{}, err
	}
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	rec.Result = result
	return rec, nil
}
