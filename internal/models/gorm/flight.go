package gorm

import "time"

// Flight is keyed by the provider-issued flight id. Departure and arrival
// airports reference airports.ap_code; timestamps are kept as the
// provider's UTC strings.
type Flight struct {
	FlightID     string `gorm:"column:flight_id;primaryKey;type:varchar(16)" json:"flight_id"`
	FlightNumber string `gorm:"column:flight_number" json:"flight_number"`
	Dept         string `gorm:"column:dept;index" json:"dept"`
	Dest         string `gorm:"column:dest;index" json:"dest"`
	TimeDept     string `gorm:"column:time_dept" json:"time_dept"`
	TimeDest     string `gorm:"column:time_dest" json:"time_dest"`
	Status       string `gorm:"column:status;type:varchar(2)" json:"status"`
	AirplaneCode string `gorm:"column:airplane_code" json:"airplane_code"`
	ALCode       string `gorm:"column:al_code" json:"al_code"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Flight) TableName() string {
	return "flights"
}
