package models

import (
	"strings"
	"time"
)

// Status is the derived stock level of an inventory item.
type Status string

const (
	StatusOK  Status = "OK"
	StatusLow Status = "Low"
	StatusOut Status = "Out"
)

const (
	DefaultCategory = "Uncategorized"
	DefaultSupplier = "Unknown"
)

// DeriveStatus maps a quantity and reorder threshold to a Status.
// The threshold is inclusive: quantity == threshold is Low.
func DeriveStatus(quantity, threshold int) Status {
	switch {
	case quantity == 0:
		return StatusOut
	case quantity <= threshold:
		return StatusLow
	default:
		return StatusOK
	}
}

// InventoryItem is one stock record of the ledger.
type InventoryItem struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	NameKey     string    `json:"-" gorm:"not null;size:255;uniqueIndex"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Threshold   int       `json:"threshold" gorm:"not null"`
	OrderAmount int       `json:"orderAmount" gorm:"not null;default:0"`
	Status      Status    `json:"status" gorm:"size:8;not null"`
	Category    string    `json:"category" gorm:"size:255"`
	Supplier    string    `json:"supplier" gorm:"size:255"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// TableName pins the table name used by gorm.
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// Touch recomputes the derived status and stamps the mutation time.
func (i *InventoryItem) Touch(now time.Time) {
	i.Status = DeriveStatus(i.Quantity, i.Threshold)
	i.LastUpdated = now
}

// NameKey normalizes a product name for case-insensitive uniqueness.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
