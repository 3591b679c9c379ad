package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	gormlib "gorm.io/gorm"

	models "github.com/5outh/towerlog/internal/models/gorm"
)

var PgDB *gormlib.DB

func InitPostgresORM(dsn string) (*gormlib.DB, error) {
	orm, err := gormlib.Open(postgres.Open(dsn), &gormlib.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = orm
	return orm, nil
}

// Migrate creates or updates the entity tables plus the audit log and
// api key tables. Column shapes come from the model tags; referential
// integrity beyond that lives in the models, not in DB constraints.
func Migrate(orm *gormlib.DB) error {
	if err := orm.AutoMigrate(
		&models.State{},
		&models.City{},
		&models.Airport{},
		&models.Airline{},
		&models.Airplane{},
		&models.Flight{},
		&models.Waypoint{},
		&models.Result{},
		&models.Tax{},
		&models.PilotPay{},
	); err != nil {
		return fmt.Errorf("failed to migrate entity tables: %w", err)
	}

	if err := orm.Exec(`CREATE TABLE IF NOT EXISTS logs (
		id BIGSERIAL PRIMARY KEY,
		type TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`).Error; err != nil {
		return fmt.Errorf("failed to create logs table: %w", err)
	}

	if err := orm.Exec(`CREATE TABLE IF NOT EXISTS api_keys (
		key TEXT PRIMARY KEY,
		status BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`).Error; err != nil {
		return fmt.Errorf("failed to create api_keys table: %w", err)
	}

	return nil
}
