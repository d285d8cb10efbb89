package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/omnistock/stock-ledger-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (*model.Store, error) {
	var s model.Store
	query := `SELECT * FROM stores WHERE id = $1`

	err := r.DB.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) ListBranches(ctx context.Context, parentID string) ([]model.Store, error) {
	var stores []model.Store
	query := `SELECT * FROM stores WHERE parent_store_id = $1 AND is_active = true ORDER BY name`

	err := r.DB.SelectContext(ctx, &stores, query, parentID)
	return stores, err
}
