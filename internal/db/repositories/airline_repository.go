package repositories

import (
	"context"

	gormlib "gorm.io/gorm"

	models "github.com/5outh/towerlog/internal/models/gorm"
)

type AirlineRepository struct {
	db *gormlib.DB
}

func NewAirlineRepository(db *gormlib.DB) *AirlineRepository {
	return &AirlineRepository{db: db}
}

// All returns carriers ordered by code. limit <= 0 returns everything.
func (r *AirlineRepository) All(ctx context.Context, limit int) ([]models.Airline, error) {
	var airlines []models.Airline

	query := r.db.WithContext(ctx).Order("al_code")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&airlines).Error; err != nil {
		return nil, err
	}
	return airlines, nil
}
