package models

import "time"

// ProcedureDefinition is a reusable recipe of inventory lines consumed together.
type ProcedureDefinition struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"not null;size:255"`
	NameKey   string          `json:"-" gorm:"not null;size:255;uniqueIndex"`
	Items     []ProcedureLine `json:"items" gorm:"foreignKey:ProcedureID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TableName pins the table name used by gorm.
func (ProcedureDefinition) TableName() string {
	return "procedures"
}

// ProcedureLine is one {item, quantity} requirement of a procedure.
type ProcedureLine struct {
	ID                int64  `json:"-" gorm:"primaryKey"`
	ProcedureID       int64  `json:"-" gorm:"index;not null"`
	Position          int    `json:"-" gorm:"not null"`
	InventoryItemID   int64  `json:"inventoryItemId" gorm:"not null"`
	InventoryItemName string `json:"inventoryItemName" gorm:"size:255"`
	Quantity          int    `json:"quantity" gorm:"not null"`
}

// TableName pins the table name used by gorm.
func (ProcedureLine) TableName() string {
	return "procedure_lines"
}

// ConsumptionLine is a single {item, quantity} request against the ledger.
type ConsumptionLine struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

// ConsumptionLines projects the procedure's requirements onto ledger lines.
func (p ProcedureDefinition) ConsumptionLines() []ConsumptionLine {
	lines := make([]ConsumptionLine, 0, len(p.Items))
	for _, item := range p.Items {
		lines = append(lines, ConsumptionLine{ItemID: item.InventoryItemID, Quantity: item.Quantity})
	}
	return lines
}
