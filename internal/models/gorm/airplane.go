package gorm

import "time"

// Airplane is an equipment type (e.g. "B738"), not a tail number. The
// IATA equipment code is the natural key.
type Airplane struct {
	AirplaneCode string `gorm:"column:airplane_code;primaryKey;type:varchar(8)" json:"airplane_code"`
	AirplaneName string `gorm:"column:airplane_name" json:"airplane_name"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Airplane) TableName() string {
	return "airplanes"
}
