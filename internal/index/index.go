// Package index records saved benchmark artifacts in a local SQLite
// database so they can be listed later.
package index

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/output"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout is fixed-width so stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Artifact is one saved circuit file.
type Artifact struct {
	ID        string    `json:"id" yaml:"id"`
	Path      string    `json:"path" yaml:"path"`
	Benchmark string    `json:"benchmark" yaml:"benchmark"`
	Level     string    `json:"level" yaml:"level"`
	NumQubits int       `json:"numQubits" yaml:"numQubits"`
	Target    string    `json:"target,omitempty" yaml:"target,omitempty"`
	OptLevel  int       `json:"optLevel" yaml:"optLevel"`
	Mirror    bool      `json:"mirror" yaml:"mirror"`
	Format    string    `json:"format" yaml:"format"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	Benchmark string
	Level     string
}

// Index is an open artifact database.
type Index struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path, creating its directory.
func Open(path string) (*Index, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	// A single connection serializes writers on the file.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing index %s: %w", path, err)
	}
	output.Debug("opened artifact index", "path", path)
	return &Index{db: db, path: path}, nil
}

// Path returns the database file.
func (x *Index) Path() string {
	return x.path
}

// Close closes the database.
func (x *Index) Close() error {
	return x.db.Close()
}

// Record stores a, replacing any earlier artifact with the same path. It
// assigns an id and creation time when missing and returns the stored row.
func (x *Index) Record(ctx context.Context, a Artifact) (Artifact, error) {
	if a.Path == "" || a.Benchmark == "" {
		return Artifact{}, oerrors.NewValidationError("an artifact needs a path and a benchmark", "artifact", "")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.CreatedAt = a.CreatedAt.UTC()

	_, err := x.db.ExecContext(ctx, `
		INSERT INTO artifacts (id, path, benchmark, level, num_qubits, target, opt_level, mirror, format, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			id = excluded.id,
			benchmark = excluded.benchmark,
			level = excluded.level,
			num_qubits = excluded.num_qubits,
			target = excluded.target,
			opt_level = excluded.opt_level,
			mirror = excluded.mirror,
			format = excluded.format,
			created_at = excluded.created_at`,
		a.ID, a.Path, a.Benchmark, a.Level, a.NumQubits, a.Target, a.OptLevel, a.Mirror, a.Format,
		a.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Artifact{}, fmt.Errorf("recording %s: %w", a.Path, err)
	}
	output.Debug("recorded artifact", "id", a.ID, "path", a.Path)
	return a, nil
}

// List returns the artifacts matching f, oldest first.
func (x *Index) List(ctx context.Context, f Filter) ([]Artifact, error) {
	query := `SELECT id, path, benchmark, level, num_qubits, target, opt_level, mirror, format, created_at FROM artifacts`
	var (
		where []string
		args  []any
	)
	if f.Benchmark != "" {
		where = append(where, "benchmark = ?")
		args = append(args, f.Benchmark)
	}
	if f.Level != "" {
		where = append(where, "level = ?")
		args = append(args, f.Level)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, path"

	rows, err := x.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		var (
			a       Artifact
			created string
		)
		if err := rows.Scan(&a.ID, &a.Path, &a.Benchmark, &a.Level, &a.NumQubits, &a.Target,
			&a.OptLevel, &a.Mirror, &a.Format, &created); err != nil {
			return nil, fmt.Errorf("reading artifact: %w", err)
		}
		if a.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("artifact %s: bad creation time %q: %w", a.ID, created, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
