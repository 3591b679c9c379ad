package gorm

// PilotPay is the per-airline, per-equipment pay rate table used by the
// earnings calculator. Rate is dollars per mile flown.
type PilotPay struct {
	ID           uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ALCode       string  `gorm:"column:al_code;index" json:"al_code"`
	PilotRank    string  `gorm:"column:pilot_rank" json:"pilot_rank"`
	AirplaneCode string  `gorm:"column:airplane_code" json:"airplane_code"`
	Rate         float64 `gorm:"column:rate;type:numeric(10,5)" json:"rate"`
}

func (PilotPay) TableName() string {
	return "pilot_pay"
}
