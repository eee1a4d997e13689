package repository

import (
	"context"
	"fmt"

	"course-platform/internal/data/entity"
	"course-platform/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *entity.PasswordReset) error
	FindValidToken(ctx context.Context, token string) (*entity.PasswordReset, error)
	MarkAsUsed(ctx context.Context, resetID uuid.UUID) error
}

type passwordResetRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPasswordResetRepository(db database.PgxIface, log *zap.Logger) PasswordResetRepository {
	return &passwordResetRepository{
		db:  db,
		log: log.With(zap.String("repository", "password_reset")),
	}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *entity.PasswordReset) error {
	query := `
		INSERT INTO password_resets (id, user_id, email, token, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		reset.ID,
		reset.UserID,
		reset.Email,
		reset.Token,
		reset.ExpiresAt,
		reset.IsUsed,
		reset.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create password reset",
			zap.Error(err),
			zap.String("email", reset.Email),
		)
		return fmt.Errorf("create password reset for %s: %w", reset.Email, err)
	}

	return nil
}

func (r *passwordResetRepository) FindValidToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	query := `
		SELECT id, user_id, email, token, expires_at, is_used, created_at
		FROM password_resets
		WHERE token = $1
		  AND is_used = false
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var reset entity.PasswordReset
	err := r.db.QueryRow(ctx, query, token).Scan(
		&reset.ID,
		&reset.UserID,
		&reset.Email,
		&reset.Token,
		&reset.ExpiresAt,
		&reset.IsUsed,
		&reset.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid reset token", zap.Error(err))
		return nil, fmt.Errorf("find valid reset token: %w", err)
	}

	return &reset, nil
}

func (r *passwordResetRepository) MarkAsUsed(ctx context.Context, resetID uuid.UUID) error {
	query := `
		UPDATE password_resets
		SET is_used = true
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, resetID)
	if err != nil {
		r.log.Error("Failed to mark reset token as used",
			zap.Error(err),
			zap.String("reset_id", resetID.String()),
		)
		return fmt.Errorf("mark reset token %s as used: %w", resetID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reset token %s not found", resetID.String())
	}

	return nil
}
