package gorm

import "time"

// Waypoint is one timestamped position sample on a flight's track.
// Many-to-one with Flight; surrogate keyed since samples have no natural
// identity of their own.
type Waypoint struct {
	ID         uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FlightID   string   `gorm:"column:flight_id;index" json:"flight_id"`
	Lat        *float64 `gorm:"column:lat;type:numeric(10,5)" json:"lat"`
	Lon        *float64 `gorm:"column:lon;type:numeric(10,5)" json:"lon"`
	Speed      *float64 `gorm:"column:speed" json:"speed"`
	Altitude   *float64 `gorm:"column:altitude" json:"altitude"`
	RecordedAt string   `gorm:"column:recorded_at" json:"recorded_at"`
	StateCode  string   `gorm:"column:state_code" json:"state_code"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Waypoint) TableName() string {
	return "waypoints"
}
