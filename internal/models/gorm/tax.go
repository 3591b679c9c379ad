package gorm

// Tax is static reference data: one income-tax bracket for a state.
// Surrogate keyed; brackets have no business identifier.
type Tax struct {
	ID           uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StateCode    string  `gorm:"column:state_code;index" json:"state_code"`
	BracketStart float64 `gorm:"column:bracket_start;type:numeric(10,2)" json:"bracket_start"`
	BracketEnd   float64 `gorm:"column:bracket_end;type:numeric(10,2)" json:"bracket_end"`
	IncomeTax    float64 `gorm:"column:income_tax;type:numeric(10,5)" json:"income_tax"`
}

func (Tax) TableName() string {
	return "taxes"
}
