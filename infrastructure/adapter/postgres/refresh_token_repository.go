package postgres

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain/entity"
)

type RefreshTokenRepositoryAdapter struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

func NewRefreshTokenRepositoryAdapter(db *sql.DB, salt string) outbound.RefreshTokenRepository {
	return &RefreshTokenRepositoryAdapter{
		db:   db,
		salt: salt,
		now:  time.Now,
	}
}

func (r *RefreshTokenRepositoryAdapter) Create(ctx context.Context, token *entity.RefreshToken) error {
	if token == nil {
		return fmt.Errorf("refresh token cannot be nil")
	}
	if token.ID == "" || token.UserID == "" || token.Token == "" {
		return fmt.Errorf("refresh token ID, user ID, and token are required")
	}

	query := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at, revoked, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		token.ID,
		token.UserID,
		hashToken(token.Token, r.salt),
		token.ExpiresAt,
		token.CreatedAt,
		token.RevokedAt != nil,
		token.RevokedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return outbound.ErrRefreshTokenAlreadyExists
		}
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepositoryAdapter) FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	query := `
		SELECT id, user_id, expires_at, created_at, revoked, revoked_at
		FROM refresh_tokens
		WHERE token_hash = $1
		LIMIT 1
	`

	var refreshToken entity.RefreshToken
	var revokedAt sql.NullTime
	var revoked bool

	err := r.db.QueryRowContext(ctx, query, hashToken(token, r.salt)).Scan(
		&refreshToken.ID,
		&refreshToken.UserID,
		&refreshToken.ExpiresAt,
		&refreshToken.CreatedAt,
		&revoked,
		&revokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}

	switch {
	case revokedAt.Valid:
		refreshToken.RevokedAt = &revokedAt.Time
	case revoked:
		n := r.now()
		refreshToken.RevokedAt = &n
	}

	return &refreshToken, nil
}

func (r *RefreshTokenRepositoryAdapter) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	query := `
		UPDATE refresh_tokens
		SET revoked = TRUE, revoked_at = $1
		WHERE token_hash = $2 AND revoked = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, r.now(), hashToken(token, r.salt))
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return expectAffected(result, outbound.ErrRefreshTokenNotFound)
}

func (r *RefreshTokenRepositoryAdapter) RevokeByUserID(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user ID cannot be empty")
	}

	query := `
		UPDATE refresh_tokens
		SET revoked = TRUE, revoked_at = $1
		WHERE user_id = $2 AND revoked = FALSE
	`

	if _, err := r.db.ExecContext(ctx, query, r.now(), userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens by user ID: %w", err)
	}
	return nil
}

// hashToken returns the salted SHA-256 digest stored in the BYTEA column.
func hashToken(raw, salt string) []byte {
	sum := sha256.Sum256([]byte(raw + salt))
	return sum[:]
}
