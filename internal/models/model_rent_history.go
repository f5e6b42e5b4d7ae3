package models

import (
	"time"

	"github.com/reelhouse/rental/pkg/types"
)

// RentHistory is one row of the append-only rental ledger. Rows are written
// by the lifecycle engine on create and renew, never updated or deleted, so
// the model carries no updated_at/deleted_at.
type RentHistory struct {
	ID     string           `gorm:"column:id;type:uuid;primary_key" json:"id"`
	RentID string           `gorm:"column:rent_id;type:uuid;not null;index" json:"rent_id"`
	Action types.RentAction `gorm:"column:action;type:varchar(5);not null" json:"action"`

	CreatedAt time.Time `json:"created_at"`
}

func (RentHistory) TableName() string {
	return "rent_history"
}
