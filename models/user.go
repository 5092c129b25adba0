package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string        `gorm:"not null;unique"`
	Password     string        `gorm:"not null"`
	Email        string        `gorm:"not null;unique"`
	Role         string        `gorm:"not null;default:'user'"`
	Status       string        `gorm:"not null;default:'active'"`
	Balance      *Balance      `gorm:"hasOne:Balance"`
	Rounds       []GameRound   `gorm:"hasMany:GameRound"`
	History      []GameHistory `gorm:"hasMany:GameHistory"`
	Transactions []Transaction `gorm:"hasMany:Transaction"`
}
