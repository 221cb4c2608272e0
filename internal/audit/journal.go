// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package audit keeps a journal of the calls operators made against the
// payment methods API. The journal lives in a SQL database reached through
// bun; sqlite, postgres and mysql are supported.
package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/user"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/toeirei/paymaster/internal/logging"
)

// ErrUnsupportedDatabase is returned by Open for an unknown database type.
var ErrUnsupportedDatabase = errors.New("audit: unsupported database type")

// Entry is one journal line.
type Entry struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Target    int       `json:"target,omitempty"`
	OK        bool      `json:"ok"`
	Details   string    `json:"details,omitempty"`
}

// EntryModel maps operator_journal.
type EntryModel struct {
	bun.BaseModel `bun:"table:operator_journal"`
	ID            int       `bun:"id,pk,autoincrement"`
	Timestamp     time.Time `bun:"timestamp,notnull"`
	Username      string    `bun:"username,notnull"`
	Action        string    `bun:"action,notnull"`
	Target        int       `bun:"target"`
	OK            bool      `bun:"ok,notnull"`
	Details       string    `bun:"details"`
}

// Journal appends and reads journal entries.
type Journal struct {
	db       *bun.DB
	username string
	now      func() time.Time
}

type Option func(*Journal)

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// WithUsername overrides the operator name taken from the OS account.
func WithUsername(name string) Option {
	return func(j *Journal) { j.username = name }
}

// Open connects to the journal database and creates the table if needed.
func Open(ctx context.Context, dbType, dsn string, opts ...Option) (*Journal, error) {
	driverName := dbType
	switch dbType {
	case "sqlite", "mysql":
	case "postgres":
		// The pgx stdlib registers driver name "pgx".
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDatabase, dbType)
	}

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is its own database.
	if dbType == "sqlite" && strings.Contains(dsn, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(4)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	j := &Journal{
		db:       createBunDB(sqlDB, dbType),
		username: currentUsername(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}

	start := time.Now()
	if _, err := j.db.NewCreateTable().Model((*EntryModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = j.db.Close()
		return nil, fmt.Errorf("failed to create journal table: %w", err)
	}
	logging.Debugf("audit: journal ready on %s in %s", dbType, time.Since(start))
	return j, nil
}

func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// currentUsername strips a Windows domain prefix from the OS account name.
func currentUsername() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	if parts := strings.Split(u.Username, `\`); len(parts) > 1 {
		return parts[1]
	}
	return u.Username
}

// Close releases the database.
func (j *Journal) Close() error { return j.db.Close() }

// Record appends e. Timestamp and Username are filled in when empty.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = j.now()
	}
	e.Timestamp = e.Timestamp.UTC()
	if e.Username == "" {
		e.Username = j.username
	}
	m := &EntryModel{
		Timestamp: e.Timestamp,
		Username:  e.Username,
		Action:    e.Action,
		Target:    e.Target,
		OK:        e.OK,
		Details:   e.Details,
	}
	if _, err := j.db.NewInsert().Model(m).Exec(ctx); err != nil {
		return Entry{}, fmt.Errorf("record %s: %w", e.Action, err)
	}
	e.ID = m.ID
	return e, nil
}

// List returns up to limit entries, newest first. A non-positive limit
// returns every entry.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	var rows []EntryModel
	q := j.db.NewSelect().Model(&rows).OrderExpr("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	out := make([]Entry, 0, len(rows))
	for _, m := range rows {
		out = append(out, Entry{
			ID:        m.ID,
			Timestamp: m.Timestamp.UTC(),
			Username:  m.Username,
			Action:    m.Action,
			Target:    m.Target,
			OK:        m.OK,
			Details:   m.Details,
		})
	}
	return out, nil
}

// Recorder returns a callback suitable for console.WithRecorder. Journal
// failures are logged and otherwise ignored.
func (j *Journal) Recorder(ctx context.Context) func(action string, id int, err error) {
	return func(action string, id int, callErr error) {
		e := Entry{Action: action, Target: id, OK: callErr == nil}
		if callErr != nil {
			e.Details = callErr.Error()
		}
		if _, err := j.Record(ctx, e); err != nil {
			logging.Warnf("audit: %v", err)
		}
	}
}
