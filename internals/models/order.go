package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses, advanced by the admin panel only.
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	gorm.Model
	OrderNumber string    `gorm:"column:order_number;uniqueIndex"`
	CustomerID  uint      `gorm:"column:customer_id;index"`
	Service     string    `gorm:"column:service"`
	Subject     string    `gorm:"column:subject"`
	Pages       int       `gorm:"column:pages"`
	Deadline    time.Time `gorm:"column:deadline;index"`
	Status      string    `gorm:"column:status;default:pending;index"`
	TotalPrice  float64   `gorm:"column:total_price"`
	Currency    string    `gorm:"column:currency;default:USD"`
	Notes       string    `gorm:"column:notes"`
}
