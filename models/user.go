package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Email     string `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Username  string `json:"username" gorm:"size:150;uniqueIndex;not null"`
	FirstName string `json:"first_name" gorm:"size:150"`
	LastName  string `json:"last_name" gorm:"size:150"`
	Password  string `json:"-" gorm:"size:150;not null"`
}
