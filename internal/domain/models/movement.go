package models

import "time"

// MovementSource identifies which ledger operation produced a movement.
type MovementSource string

const (
	SourceCreate    MovementSource = "create"
	SourceAdjust    MovementSource = "adjust"
	SourceDeduct    MovementSource = "deduct"
	SourceRestock   MovementSource = "restock"
	SourceProcedure MovementSource = "procedure"
	SourceBootstrap MovementSource = "bootstrap"
)

// StockMovement is an audit record of a committed ledger mutation.
// Movements never feed back into ledger state.
type StockMovement struct {
	ID            string         `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	ItemID        int64          `json:"itemId" bson:"item_id" gorm:"index"`
	ItemName      string         `json:"itemName" bson:"item_name" gorm:"size:255"`
	Delta         int            `json:"delta" bson:"delta"`
	QuantityAfter int            `json:"quantityAfter" bson:"quantity_after"`
	Reason        string         `json:"reason,omitempty" bson:"reason,omitempty" gorm:"size:512"`
	Source        MovementSource `json:"source" bson:"source" gorm:"size:16"`
	RecordedAt    time.Time      `json:"recordedAt" bson:"recorded_at"`
}

// TableName pins the table name used by gorm.
func (StockMovement) TableName() string {
	return "stock_movements"
}
