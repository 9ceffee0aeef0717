package models

import "gorm.io/gorm"

// Payment statuses as reported by the (external) payment provider.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

type Payment struct {
	gorm.Model
	OrderID   uint    `gorm:"column:order_id;index"`
	Provider  string  `gorm:"column:provider"`
	Amount    float64 `gorm:"column:amount"`
	Currency  string  `gorm:"column:currency;default:USD"`
	Status    string  `gorm:"column:status;default:pending;index"`
	Reference string  `gorm:"column:reference;uniqueIndex"`
}
