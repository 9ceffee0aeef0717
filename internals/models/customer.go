package models

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	Email      string `gorm:"column:email;uniqueIndex"`
	FullName   string `gorm:"column:full_name"`
	Phone      string `gorm:"column:phone"`
	TelegramID string `gorm:"column:telegram_id"`
	Country    string `gorm:"column:country"`
}
