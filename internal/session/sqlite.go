package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/perawita/bot-telegram-expxxx/internal/dbx"
	"github.com/perawita/bot-telegram-expxxx/internal/logging"
	"github.com/perawita/bot-telegram-expxxx/internal/session/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists sessions in a local sqlite database, surviving
// process restarts within the retention window.
type SQLiteStore struct {
	sdb *sql.DB
	db  dbx.DBTX
	log logging.Logger
}

// OpenSQLite opens (creating if needed) the session database at dsn and
// applies pending migrations.
func OpenSQLite(ctx context.Context, dsn string, log logging.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	return &SQLiteStore{sdb: db, db: db, log: log}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) Close() error {
	return s.sdb.Close()
}

// Load returns the stored session for chatID, or a zero session if the chat
// has never interacted.
func (s *SQLiteStore) Load(ctx context.Context, chatID int64) (*Session, error) {
	query := `SELECT step, email, password, user_json, updated_at FROM sessions WHERE chat_id = ?`
	row := s.db.QueryRowContext(ctx, query, chatID)

	var (
		sess     Session
		step     int
		userJSON sql.NullString
		updated  int64
	)
	if err := row.Scan(&step, &sess.Email, &sess.Password, &userJSON, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &Session{}, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	sess.Step = Step(step)
	sess.UpdatedAt = time.Unix(updated, 0)
	if userJSON.Valid && userJSON.String != "" {
		var u User
		if err := json.Unmarshal([]byte(userJSON.String), &u); err != nil {
			return nil, fmt.Errorf("decode session user: %w", err)
		}
		sess.User = &u
	}

	return &sess, nil
}

// Save upserts the session for chatID and stamps UpdatedAt.
func (s *SQLiteStore) Save(ctx context.Context, chatID int64, sess *Session) error {
	var userJSON sql.NullString
	if sess.User != nil {
		b, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("encode session user: %w", err)
		}
		userJSON = sql.NullString{String: string(b), Valid: true}
	}

	query := `INSERT INTO sessions (chat_id, step, email, password, user_json, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(chat_id) DO UPDATE SET step = excluded.step,
				email = excluded.email,
				password = excluded.password,
				user_json = excluded.user_json,
				updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		chatID, int(sess.Step), sess.Email, sess.Password, userJSON, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// RunSweeper deletes sessions idle longer than ttl, once per interval, until
// ctx is cancelled.
func (s *SQLiteStore) RunSweeper(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := s.deleteExpired(ctx, ttl)
			if err != nil {
				s.log.Error(ctx, "session sweep failed", "error", err.Error())
				continue
			}
			if n > 0 {
				s.log.Info(ctx, "expired sessions removed", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *SQLiteStore) deleteExpired(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
