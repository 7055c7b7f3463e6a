package models

import "gorm.io/gorm"

// Tag - справочник тегов рецептов (создаются администратором)
type Tag struct {
	gorm.Model
	Name  string `json:"name" gorm:"size:200;uniqueIndex;not null"`
	Color string `json:"color" gorm:"size:7;uniqueIndex;not null"` // HEX, например "#E26C2D"
	Slug  string `json:"slug" gorm:"size:200;uniqueIndex;not null"`
}
