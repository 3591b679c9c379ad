package gorm

import "time"

// City rows are enriched with coordinates from the geolocation provider
// when a lookup succeeds; otherwise lat/lon stay NULL.
type City struct {
	CityCode  string   `gorm:"column:city_code;primaryKey;type:varchar(8)" json:"city_code"`
	CityName  string   `gorm:"column:city_name" json:"city_name"`
	StateCode string   `gorm:"column:state_code;index" json:"state_code"`
	Lat       *float64 `gorm:"column:lat;type:numeric(10,5)" json:"lat"`
	Lon       *float64 `gorm:"column:lon;type:numeric(10,5)" json:"lon"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (City) TableName() string {
	return "cities"
}
