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

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	FindPendingByOrderID(ctx context.Context, provider entity.PaymentProvider, orderID string) (*entity.Purchase, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Purchase, error)

	// Business queries. MarkCompleted is guarded on pending status so a
	// duplicate webhook delivery affects zero rows.
	MarkCompleted(ctx context.Context, id uuid.UUID, paymentID string) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

type purchaseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPurchaseRepository(db database.PgxIface, log *zap.Logger) PurchaseRepository {
	return &purchaseRepository{
		db:  db,
		log: log.With(zap.String("repository", "purchase")),
	}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, user_id, course_id, provider, amount, currency,
		                       status, provider_order_id, provider_payment_id,
		                       created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		purchase.ID,
		purchase.UserID,
		purchase.CourseID,
		purchase.Provider,
		purchase.Amount,
		purchase.Currency,
		purchase.Status,
		purchase.ProviderOrderID,
		purchase.ProviderPaymentID,
		purchase.CreatedAt,
		purchase.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create purchase",
			zap.Error(err),
			zap.String("user_id", purchase.UserID.String()),
			zap.String("course_id", purchase.CourseID.String()),
			zap.String("provider", string(purchase.Provider)),
		)
		return fmt.Errorf("create purchase for user %s: %w", purchase.UserID.String(), err)
	}

	return nil
}

func (r *purchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	query := `
		SELECT id, user_id, course_id, provider, amount, currency, status,
		       provider_order_id, provider_payment_id, created_at, updated_at
		FROM purchases
		WHERE id = $1
	`

	var purchase entity.Purchase
	err := r.db.QueryRow(ctx, query, id).Scan(
		&purchase.ID,
		&purchase.UserID,
		&purchase.CourseID,
		&purchase.Provider,
		&purchase.Amount,
		&purchase.Currency,
		&purchase.Status,
		&purchase.ProviderOrderID,
		&purchase.ProviderPaymentID,
		&purchase.CreatedAt,
		&purchase.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find purchase by ID",
			zap.Error(err),
			zap.String("purchase_id", id.String()),
		)
		return nil, fmt.Errorf("find purchase by ID %s: %w", id.String(), err)
	}

	return &purchase, nil
}

func (r *purchaseRepository) FindPendingByOrderID(ctx context.Context, provider entity.PaymentProvider, orderID string) (*entity.Purchase, error) {
	query := `
		SELECT id, user_id, course_id, provider, amount, currency, status,
		       provider_order_id, provider_payment_id, created_at, updated_at
		FROM purchases
		WHERE provider = $1 AND provider_order_id = $2 AND status = 'pending'
	`

	var purchase entity.Purchase
	err := r.db.QueryRow(ctx, query, provider, orderID).Scan(
		&purchase.ID,
		&purchase.UserID,
		&purchase.CourseID,
		&purchase.Provider,
		&purchase.Amount,
		&purchase.Currency,
		&purchase.Status,
		&purchase.ProviderOrderID,
		&purchase.ProviderPaymentID,
		&purchase.CreatedAt,
		&purchase.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending purchase",
			zap.Error(err),
			zap.String("provider", string(provider)),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("find pending purchase for order %s: %w", orderID, err)
	}

	return &purchase, nil
}

func (r *purchaseRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Purchase, error) {
	query := `
		SELECT id, user_id, course_id, provider, amount, currency, status,
		       provider_order_id, provider_payment_id, created_at, updated_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find purchases by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find purchases for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var purchases []*entity.Purchase
	for rows.Next() {
		var purchase entity.Purchase
		err := rows.Scan(
			&purchase.ID,
			&purchase.UserID,
			&purchase.CourseID,
			&purchase.Provider,
			&purchase.Amount,
			&purchase.Currency,
			&purchase.Status,
			&purchase.ProviderOrderID,
			&purchase.ProviderPaymentID,
			&purchase.CreatedAt,
			&purchase.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan purchase row", zap.Error(err))
			return nil, fmt.Errorf("scan purchase row: %w", err)
		}
		purchases = append(purchases, &purchase)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate purchase rows: %w", err)
	}

	return purchases, nil
}

func (r *purchaseRepository) MarkCompleted(ctx context.Context, id uuid.UUID, paymentID string) (bool, error) {
	query := `
		UPDATE purchases
		SET status = 'completed', provider_payment_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, paymentID)
	if err != nil {
		r.log.Error("Failed to mark purchase completed",
			zap.Error(err),
			zap.String("purchase_id", id.String()),
		)
		return false, fmt.Errorf("mark purchase %s completed: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *purchaseRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE purchases
		SET status = 'failed', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark purchase failed",
			zap.Error(err),
			zap.String("purchase_id", id.String()),
		)
		return fmt.Errorf("mark purchase %s failed: %w", id.String(), err)
	}

	return nil
}
