package gorm

import "time"

// Airport is keyed by its natural fs code (e.g. "JFK"), not a surrogate id.
// Repeated ingestion runs identify "the same" airport purely by this code.
type Airport struct {
	APCode      string   `gorm:"column:ap_code;primaryKey;type:varchar(8)" json:"ap_code"`
	Lat         *float64 `gorm:"column:lat;type:numeric(10,5)" json:"lat"`
	Lon         *float64 `gorm:"column:lon;type:numeric(10,5)" json:"lon"`
	AirportName string   `gorm:"column:airport_name" json:"airport_name"`
	Street1     string   `gorm:"column:street1" json:"street1"`
	Street2     string   `gorm:"column:street2" json:"street2"`
	Zip         string   `gorm:"column:zip" json:"zip"`
	CityCode    string   `gorm:"column:city_code;index" json:"city_code"`
	StateCode   string   `gorm:"column:state_code;index" json:"state_code"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Airport) TableName() string {
	return "airports"
}
