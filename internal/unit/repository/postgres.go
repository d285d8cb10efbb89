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

func (r *PGRepository) GetByID(ctx context.Context, id string) (*model.UnitOfMeasurement, error) {
	var u model.UnitOfMeasurement
	query := `SELECT * FROM units_of_measurement WHERE id = $1`

	err := r.DB.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) ListByFamily(ctx context.Context, family model.UnitFamily) ([]model.UnitOfMeasurement, error) {
	var units []model.UnitOfMeasurement
	query := `SELECT * FROM units_of_measurement WHERE family = $1 ORDER BY conversion_factor_to_base ASC`

	err := r.DB.SelectContext(ctx, &units, query, family)
	return units, err
}
