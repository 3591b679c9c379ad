package gorm

import "time"

type State struct {
	StateCode string `gorm:"column:state_code;primaryKey;type:varchar(4)" json:"state_code"`
	StateName string `gorm:"column:state_name" json:"state_name"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (State) TableName() string {
	return "states"
}
