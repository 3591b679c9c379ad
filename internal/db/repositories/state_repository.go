package repositories

import (
	"context"

	gormlib "gorm.io/gorm"

	models "github.com/5outh/towerlog/internal/models/gorm"
)

type StateRepository struct {
	db *gormlib.DB
}

func NewStateRepository(db *gormlib.DB) *StateRepository {
	return &StateRepository{db: db}
}

// All returns every known state, ordered by code.
func (r *StateRepository) All(ctx context.Context) ([]models.State, error) {
	var states []models.State

	err := r.db.WithContext(ctx).
		Order("state_code").
		Find(&states).Error
	if err != nil {
		return nil, err
	}

	return states, nil
}
