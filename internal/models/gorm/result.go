package gorm

import "time"

// Result holds the pay-calculation output for one flight. One row per
// flight id, overwritten on recalculation.
type Result struct {
	FlightID         string  `gorm:"column:flight_id;primaryKey;type:varchar(16)" json:"flight_id"`
	CurrentEarnings  float64 `gorm:"column:current_earnings;type:numeric(10,2)" json:"current_earnings"`
	ProposedEarnings float64 `gorm:"column:proposed_earnings;type:numeric(10,2)" json:"proposed_earnings"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Result) TableName() string {
	return "results"
}
