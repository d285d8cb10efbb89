package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/omnistock/stock-ledger-service/internal/apperrors"
	"github.com/omnistock/stock-ledger-service/internal/model"
	"github.com/omnistock/stock-ledger-service/internal/platform/postgres"
)

const uniqueViolation = "23505"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateWithDecrements(ctx context.Context, o *model.Order, items []model.OrderItem, decrement func(tx *sqlx.Tx) error) error {
	return postgres.WithinTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		orderQuery := `
            INSERT INTO orders (id, store_id, created_by, status, total, notes, created_at, updated_at)
            VALUES (:id, :store_id, :created_by, :status, :total, :notes, :created_at, :updated_at)
        `
		if _, err := tx.NamedExecContext(ctx, orderQuery, o); err != nil {
			if isUniqueViolation(err) {
				return apperrors.Conflict("order already exists").Wrap(err)
			}
			return fmt.Errorf("insert order: %w", err)
		}

		itemQuery := `
            INSERT INTO order_items (id, order_id, item_id, quantity, unit_price, created_at)
            VALUES (:id, :order_id, :item_id, :quantity, :unit_price, :created_at)
        `
		for _, item := range items {
			if _, err := tx.NamedExecContext(ctx, itemQuery, item); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}

		return decrement(tx)
	})
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (*model.Order, []model.OrderItem, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var items []model.OrderItem
	err = r.DB.SelectContext(ctx, &items, `SELECT * FROM order_items WHERE order_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return nil, nil, err
	}
	return &o, items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
