package gorm

import "time"

type Airline struct {
	ALCode      string `gorm:"column:al_code;primaryKey;type:varchar(8)" json:"al_code"`
	AirlineName string `gorm:"column:airline_name" json:"airline_name"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Airline) TableName() string {
	return "airlines"
}
