// Package postgres provides the Postgres-backed session store.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/target/hr-console/internal/adapters/postgres/pgxutil"
	domainauth "github.com/target/hr-console/internal/domain/auth"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/migrate"
)

// ErrNotFound is returned when a session is not found.
var ErrNotFound = apperrors.NotFound("session not found")

// SessionStore persists sessions in the hr_sessions table.
type SessionStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSessionStore creates a store over db. Call EnsureSchema before first use.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db, now: time.Now}
}

// EnsureSchema applies the session table migrations.
func (s *SessionStore) EnsureSchema(ctx context.Context) error {
	if err := migrate.Run(ctx, s.db); err != nil {
		return fmt.Errorf("session schema: %w", err)
	}
	return nil
}

type sessionRow struct {
	ID          string     `db:"id"`
	Token       string     `db:"token"`
	Email       string     `db:"email"`
	DisplayName string     `db:"display_name"`
	CreatedAt   time.Time  `db:"created_at"`
	ExpiresAt   *time.Time `db:"expires_at"`
}

func (r sessionRow) toDomain() domainauth.Session {
	sess := domainauth.Session{
		ID:          r.ID,
		Token:       r.Token,
		Email:       r.Email,
		DisplayName: r.DisplayName,
		CreatedAt:   r.CreatedAt,
	}
	if r.ExpiresAt != nil {
		sess.ExpiresAt = *r.ExpiresAt
	}
	return sess
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

const upsertSessionSQL = `
	INSERT INTO hr_sessions (id, token, email, display_name, created_at, expires_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		token = EXCLUDED.token,
		email = EXCLUDED.email,
		display_name = EXCLUDED.display_name,
		expires_at = EXCLUDED.expires_at`

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if sess.Expired(s.now()) {
		return errors.New("session is expired")
	}
	createdAt := sess.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, upsertSessionSQL,
		sess.ID, sess.Token, sess.Email, sess.DisplayName, createdAt, nullableTime(sess.ExpiresAt))
	if err != nil {
		return fmt.Errorf("save session: %w", apperrors.MapDBError(err))
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	var row sessionRow
	err := pgxutil.WithPgxConn(ctx, s.db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, token, email, display_name, created_at, expires_at
			FROM hr_sessions WHERE id = $1`, id)
		if err != nil {
			return err
		}
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[sessionRow])
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domainauth.Session{}, ErrNotFound
	}
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("get session: %w", apperrors.MapDBError(err))
	}

	sess := row.toDomain()
	if sess.Expired(s.now()) {
		if err := s.Delete(ctx, id); err != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", err)
		}
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM hr_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", apperrors.MapDBError(err))
	}
	return nil
}

// PurgeExpired deletes sessions whose expiry is at or before now.
func (s *SessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM hr_sessions WHERE expires_at IS NOT NULL AND expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", apperrors.MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge sessions rows affected: %w", err)
	}
	return n, nil
}
