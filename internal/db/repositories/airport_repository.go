package repositories

import (
	"context"

	gormlib "gorm.io/gorm"

	models "github.com/5outh/towerlog/internal/models/gorm"
)

// AirportRepository handles airport table reads for the orchestrator.
type AirportRepository struct {
	db *gormlib.DB
}

func NewAirportRepository(db *gormlib.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// FindByCode finds an airport by its fs code (case-insensitive).
func (r *AirportRepository) FindByCode(ctx context.Context, code string) (*models.Airport, error) {
	var airport models.Airport

	err := r.db.WithContext(ctx).
		Where("UPPER(ap_code) = UPPER(?)", code).
		First(&airport).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// ByState returns every airport registered in the given state.
func (r *AirportRepository) ByState(ctx context.Context, stateCode string) ([]models.Airport, error) {
	var airports []models.Airport

	err := r.db.WithContext(ctx).
		Where("state_code = ?", stateCode).
		Order("ap_code").
		Find(&airports).Error
	if err != nil {
		return nil, err
	}

	return airports, nil
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Airport{}).Count(&count).Error
	return count, err
}
