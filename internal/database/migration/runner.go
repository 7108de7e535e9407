// Package migration applies the versioned SQL files embedded in the binary.
package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// advisoryKey serialises concurrent runners across server replicas.
const advisoryKey int64 = 746295114

var (
	ErrChecksumMismatch = errors.New("migration checksum mismatch")
	ErrDuplicateVersion = errors.New("duplicate migration version")
	ErrEmptyMigration   = errors.New("empty migration file")
)

// Runner applies V<n>__name.sql files in version order. Applied versions are
// skipped, and an applied file whose checksum changed aborts the run before
// anything executes. Source wins over Dir when both are set.
type Runner struct {
	Source fs.FS
	Dir    string
	Logger *zap.Logger
}

// Result lists the versions applied by one Run.
type Result struct {
	Applied []Migration
	Skipped int
}

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

func (r Runner) Run(ctx context.Context, db *sql.DB) (Result, error) {
	if db == nil {
		return Result{}, errors.New("nil db")
	}
	src, err := r.source()
	if err != nil {
		return Result{}, err
	}
	migs, err := Load(src)
	if err != nil || len(migs) == 0 {
		return Result{}, err
	}

	// The advisory lock belongs to a session, so lock, apply and unlock all
	// happen on one pinned connection.
	conn, err := db.Conn(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("acquire conn: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, advisoryKey); err != nil {
		return Result{}, fmt.Errorf("advisory lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.WithoutCancel(ctx), `SELECT pg_advisory_unlock($1)`, advisoryKey)
	}()

	if _, err := conn.ExecContext(ctx, createHistoryTable); err != nil {
		return Result{}, fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := appliedChecksums(ctx, conn)
	if err != nil {
		return Result{}, err
	}
	res, err := plan(migs, applied)
	if err != nil {
		return Result{}, err
	}

	log := r.logger()
	for _, m := range res.Applied {
		if err := apply(ctx, conn, m); err != nil {
			return Result{}, err
		}
		log.Info("migration applied", zap.Int64("version", m.Version), zap.String("file", m.Filename))
	}
	return res, nil
}

func (r Runner) source() (fs.FS, error) {
	if r.Source != nil {
		return r.Source, nil
	}
	if dir := strings.TrimSpace(r.Dir); dir != "" {
		return os.DirFS(dir), nil
	}
	return nil, errors.New("migration source not configured")
}

func (r Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Load reads every migration file at the root of src, sorted by version.
// Files that do not follow the naming scheme are ignored.
func Load(src fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(src, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var migs []Migration
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m, ok, err := readMigration(src, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			migs = append(migs, m)
		}
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("%w: %d (%s, %s)", ErrDuplicateVersion, migs[i].Version, migs[i-1].Filename, migs[i].Filename)
		}
	}
	return migs, nil
}

func readMigration(src fs.FS, filename string) (Migration, bool, error) {
	parts := fileRe.FindStringSubmatch(filename)
	if parts == nil {
		return Migration{}, false, nil
	}
	version, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Migration{}, false, fmt.Errorf("invalid migration version in %s: %w", filename, err)
	}
	raw, err := fs.ReadFile(src, filename)
	if err != nil {
		return Migration{}, false, err
	}
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return Migration{}, false, fmt.Errorf("%w: %s", ErrEmptyMigration, filename)
	}
	sum := sha256.Sum256([]byte(body))
	return Migration{
		Version:  version,
		Name:     parts[2],
		Filename: filename,
		SQL:      body,
		Checksum: hex.EncodeToString(sum[:]),
	}, true, nil
}

// plan splits migs into pending and already applied, rejecting edited files.
func plan(migs []Migration, applied map[int64]string) (Result, error) {
	var res Result
	for _, m := range migs {
		sum, done := applied[m.Version]
		switch {
		case !done:
			res.Applied = append(res.Applied, m)
		case sum != m.Checksum:
			return Result{}, fmt.Errorf("%w: version=%d file=%s", ErrChecksumMismatch, m.Version, m.Filename)
		default:
			res.Skipped++
		}
	}
	return res, nil
}

const createHistoryTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func appliedChecksums(ctx context.Context, conn *sql.Conn) (map[int64]string, error) {
	rows, err := conn.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var (
			version  int64
			checksum string
		)
		if err := rows.Scan(&version, &checksum); err != nil {
			return nil, err
		}
		out[version] = checksum
	}
	return out, rows.Err()
}

// apply runs one file and records it in the same transaction.
func apply(ctx context.Context, conn *sql.Conn, m Migration) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply %s: %w", m.Filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		m.Version, m.Name, m.Checksum,
	); err != nil {
		return fmt.Errorf("record %s: %w", m.Filename, err)
	}
	return tx.Commit()
}
