package models

import "gorm.io/gorm"

// Ingredient - справочник ингредиентов с единицей измерения
type Ingredient struct {
	gorm.Model
	Name            string `json:"name" gorm:"size:200;not null;index"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:200;not null"`
}
