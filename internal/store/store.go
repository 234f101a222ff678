package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/LdDl/bubbles-go/bubbles"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	source TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS markers (
	id TEXT NOT NULL,
	run_id TEXT NOT NULL REFERENCES runs(id),
	number INTEGER NOT NULL,
	PRIMARY KEY (run_id, id)
);
CREATE TABLE IF NOT EXISTS positions (
	run_id TEXT NOT NULL REFERENCES runs(id),
	frame INTEGER NOT NULL,
	marker INTEGER NOT NULL,
	x INTEGER,
	y INTEGER,
	resolved INTEGER NOT NULL,
	PRIMARY KEY (run_id, frame, marker)
);
`

// Store persists position history of tracking runs in SQLite
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open database %s", path)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "Can't execute %q", pragma)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Can't create schema")
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores markers and every frame of history as a new run
func (s *Store) SaveRun(ctx context.Context, source string, markers []*bubbles.Marker, history *bubbles.History) (uuid.UUID, error) {
	runID := uuid.New()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "Can't begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO runs (id, started_at, source) VALUES (?, ?, ?)`,
		runID.String(), time.Now().UnixNano(), source); err != nil {
		return uuid.Nil, errors.Wrap(err, "Can't insert run")
	}
	for _, marker := range markers {
		if _, err := tx.ExecContext(ctx, `INSERT INTO markers (id, run_id, number) VALUES (?, ?, ?)`,
			marker.GetID().String(), runID.String(), marker.GetNumber()); err != nil {
			return uuid.Nil, errors.Wrapf(err, "Can't insert marker %d", marker.GetNumber())
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO positions (run_id, frame, marker, x, y, resolved) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "Can't prepare positions insert")
	}
	defer stmt.Close()
	for _, record := range history.Records() {
		for _, n := range history.Markers() {
			pos, _ := record.Position(n)
			var x, y sql.NullInt64
			if pos.Resolved {
				x = sql.NullInt64{Int64: int64(pos.X), Valid: true}
				y = sql.NullInt64{Int64: int64(pos.Y), Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, runID.String(), record.FrameNo, n, x, y, pos.Resolved); err != nil {
				return uuid.Nil, errors.Wrapf(err, "Can't insert position of marker %d on frame %d", n, record.FrameNo)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, errors.Wrap(err, "Can't commit run")
	}
	return runID, nil
}

// Position is a stored marker position
type Position struct {
	Frame    int
	Marker   int
	X        int
	Y        int
	Resolved bool
}

// Positions returns stored positions of the run ordered by frame and marker
func (s *Store) Positions(ctx context.Context, runID uuid.UUID) ([]Position, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT frame, marker, x, y, resolved FROM positions WHERE run_id = ? ORDER BY frame, marker`, runID.String())
	if err != nil {
		return nil, errors.Wrap(err, "Can't query positions")
	}
	defer rows.Close()
	positions := make([]Position, 0)
	for rows.Next() {
		var pos Position
		var x, y sql.NullInt64
		if err := rows.Scan(&pos.Frame, &pos.Marker, &x, &y, &pos.Resolved); err != nil {
			return nil, errors.Wrap(err, "Can't scan position")
		}
		pos.X, pos.Y = int(x.Int64), int(y.Int64)
		positions = append(positions, pos)
	}
	return positions, errors.Wrap(rows.Err(), "Can't iterate positions")
}
