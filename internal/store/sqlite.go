package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ashureev/boj-daily/internal/domain"
	"github.com/ashureev/boj-daily/internal/shared"
	_ "modernc.org/sqlite"
)

const (
	saveMaxRetries    = 3
	saveRetryBaseWait = 50 * time.Millisecond
)

// SQLiteStore implements Repository using a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One writer at a time; cycles are sequential anyway.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		handle TEXT NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		solved_count INTEGER NOT NULL DEFAULT 0,
		current_streak INTEGER NOT NULL DEFAULT 0,
		last_solved_date TEXT,
		registered_at INTEGER NOT NULL,
		last_checked_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_users_handle ON users(handle);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const selectUsers = `
	SELECT id, handle, display_name, solved_count, current_streak,
	       last_solved_date, registered_at, last_checked_at
	FROM users`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*domain.User, error) {
	var user domain.User
	var lastSolved sql.NullString
	var registeredAt, lastCheckedAt int64

	if err := row.Scan(
		&user.ID, &user.Handle, &user.DisplayName,
		&user.SolvedCount, &user.CurrentStreak,
		&lastSolved, &registeredAt, &lastCheckedAt,
	); err != nil {
		return nil, err
	}

	if lastSolved.Valid && lastSolved.String != "" {
		d, err := domain.ParseDate(lastSolved.String)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", user.ID, err)
		}
		user.LastSolvedDate = &d
	}
	user.RegisteredAt = time.Unix(registeredAt, 0)
	user.LastCheckedAt = time.Unix(lastCheckedAt, 0)

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns users in registration order.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, selectUsers+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close user rows", "error", closeErr)
		}
	}()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			slog.Warn("Skipping unreadable user record", "error", err)
			continue
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user by storage key.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, selectUsers+` WHERE id = ?`, id)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user row: %w", err)
	}
	return user, nil
}

func dateArg(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// UpsertUser creates or updates a user record.
func (s *SQLiteStore) UpsertUser(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	query := `
	INSERT INTO users (id, handle, display_name, solved_count, current_streak,
	                   last_solved_date, registered_at, last_checked_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		handle = excluded.handle,
		display_name = excluded.display_name,
		solved_count = excluded.solved_count,
		current_streak = excluded.current_streak,
		last_solved_date = excluded.last_solved_date,
		registered_at = excluded.registered_at,
		last_checked_at = excluded.last_checked_at`

	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Handle, user.DisplayName,
		user.SolvedCount, user.CurrentStreak, dateArg(user.LastSolvedDate),
		user.RegisteredAt.Unix(), user.LastCheckedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// SaveUsers writes back progress fields for every user in one transaction,
// retrying when the database is busy.
func (s *SQLiteStore) SaveUsers(ctx context.Context, users []*domain.User) error {
	for _, u := range users {
		if err := u.Validate(); err != nil {
			return err
		}
	}

	for i := 0; i < saveMaxRetries; i++ {
		err := s.saveUsersOnce(ctx, users)
		if err == nil {
			return nil
		}

		if shared.IsSQLiteConflictError(err) && i < saveMaxRetries-1 {
			delay := saveRetryBaseWait * time.Duration(1<<i) // 50ms, 100ms
			slog.Debug("SaveUsers hit a locked database, retrying",
				"attempt", i+1,
				"delay", delay)
			time.Sleep(delay)
			continue
		}

		return fmt.Errorf("save users after %d attempts: %w", i+1, err)
	}
	return nil
}

func (s *SQLiteStore) saveUsersOnce(ctx context.Context, users []*domain.User) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Warn("failed to roll back save", "error", rbErr)
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE users SET
			solved_count = ?, current_streak = ?, last_solved_date = ?, last_checked_at = ?
		WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("prepare update: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, u := range users {
		result, execErr := stmt.ExecContext(ctx,
			u.SolvedCount, u.CurrentStreak, dateArg(u.LastSolvedDate), u.LastCheckedAt.Unix(), u.ID)
		if execErr != nil {
			return fmt.Errorf("update user %q: %w", u.ID, execErr)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			slog.Warn("SaveUsers skipped a user removed during the cycle", "user_id", u.ID)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DeleteUser removes a user.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
