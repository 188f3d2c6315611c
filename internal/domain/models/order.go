package models

import "time"

// OrderStatus tracks a supply order through delivery.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

// Order is a supply order linked to the ledger item it restocks.
type Order struct {
	ID                int64       `json:"id" gorm:"primaryKey"`
	ProductName       string      `json:"productName" gorm:"not null;size:255"`
	Quantity          int         `json:"quantity" gorm:"not null"`
	Supplier          string      `json:"supplier" gorm:"size:255"`
	Category          string      `json:"category" gorm:"size:255"`
	InventoryItemID   int64       `json:"inventoryItemId" gorm:"index;not null"`
	Status            OrderStatus `json:"status" gorm:"size:16;not null"`
	DeliveredQuantity int         `json:"deliveredQuantity"`
	CreatedAt         time.Time   `json:"createdAt"`
	DeliveredAt       *time.Time  `json:"deliveredAt,omitempty"`
}

// TableName pins the table name used by gorm.
func (Order) TableName() string {
	return "orders"
}
