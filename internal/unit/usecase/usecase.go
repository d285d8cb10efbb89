package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/omnistock/stock-ledger-service/internal/apperrors"
	"github.com/omnistock/stock-ledger-service/internal/logger"
	"github.com/omnistock/stock-ledger-service/internal/model"
	"github.com/omnistock/stock-ledger-service/internal/platform/cache"
	"github.com/omnistock/stock-ledger-service/internal/unit"
	"go.uber.org/zap"
)

const unitCacheTTL = 10 * time.Minute

type unitUseCase struct {
	repo   unit.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

// NewUnitUseCase builds the conversion service. The cache may be nil; unit
// reads then always hit the database.
func NewUnitUseCase(repo unit.Repository, cache *cache.RedisClient, log logger.ZapLogger) unit.UseCase {
	return &unitUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *unitUseCase) FetchUnit(ctx context.Context, id string) (*model.UnitOfMeasurement, error) {
	cacheKey := "unit:" + id

	if uc.cache != nil {
		if val, err := uc.cache.Get(ctx, cacheKey); err == nil {
			var u model.UnitOfMeasurement
			if err := json.Unmarshal([]byte(val), &u); err == nil {
				return &u, nil
			}
		}
	}

	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to load unit of measurement", err)
	}
	if u == nil {
		return nil, apperrors.NotFoundWithID("unit of measurement", id)
	}

	if uc.cache != nil {
		if data, err := json.Marshal(u); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, string(data), unitCacheTTL); err != nil {
				uc.logger.Warn("failed to cache unit", zap.String("unit_id", id), zap.Error(err))
			}
		}
	}

	return u, nil
}

func (uc *unitUseCase) ListByFamily(ctx context.Context, family model.UnitFamily) ([]model.UnitOfMeasurement, error) {
	units, err := uc.repo.ListByFamily(ctx, family)
	if err != nil {
		return nil, apperrors.Internal("failed to list units of measurement", err)
	}
	return units, nil
}

// checkFactor refuses a non-positive conversion factor outright. Silently
// dividing by it would corrupt every stored quantity downstream.
func checkFactor(u *model.UnitOfMeasurement) error {
	if u.ConversionFactorToBase <= 0 {
		return apperrors.Internal(
			fmt.Sprintf("unit %s has non-positive conversion factor %v", u.ID, u.ConversionFactorToBase),
			nil,
		)
	}
	return nil
}

func (uc *unitUseCase) ToBase(presentationQty float64, u *model.UnitOfMeasurement) (float64, error) {
	if err := checkFactor(u); err != nil {
		return 0, err
	}
	return presentationQty * u.ConversionFactorToBase, nil
}

func (uc *unitUseCase) ToPresentation(baseQty float64, u *model.UnitOfMeasurement) (float64, error) {
	if err := checkFactor(u); err != nil {
		return 0, err
	}
	return baseQty / u.ConversionFactorToBase, nil
}

// PriceToBase converts a price per presentation unit to a price per base
// unit. A price divides where a quantity multiplies.
func (uc *unitUseCase) PriceToBase(presentationPrice float64, u *model.UnitOfMeasurement) (float64, error) {
	if err := checkFactor(u); err != nil {
		return 0, err
	}
	return presentationPrice / u.ConversionFactorToBase, nil
}

func (uc *unitUseCase) PriceToPresentation(basePricePerUnit float64, u *model.UnitOfMeasurement) (float64, error) {
	if err := checkFactor(u); err != nil {
		return 0, err
	}
	return basePricePerUnit * u.ConversionFactorToBase, nil
}
