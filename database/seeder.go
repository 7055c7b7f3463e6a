package database

import (
	"github.com/BAlenkaA/foodgram-project-react/models"

	"gorm.io/gorm"
)

// SeedTags проверяет таблицу tags и, если она пуста, заполняет её базовыми тегами
func SeedTags(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Tag{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Теги уже есть, ничего не делаем
	}
	tags := []models.Tag{
		{Name: "Завтрак", Color: "#E26C2D", Slug: "zavtrak"},
		{Name: "Обед", Color: "#49B64E", Slug: "obed"},
		{Name: "Ужин", Color: "#8775D2", Slug: "uzhin"},
	}
	return db.Create(&tags).Error
}

// SeedIngredients заполняет пустой справочник ингредиентов стартовым набором
func SeedIngredients(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Ingredient{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	ingredients := []models.Ingredient{
		{Name: "мука", MeasurementUnit: "г"},
		{Name: "сахар", MeasurementUnit: "г"},
		{Name: "соль", MeasurementUnit: "г"},
		{Name: "молоко", MeasurementUnit: "мл"},
		{Name: "вода", MeasurementUnit: "мл"},
		{Name: "яйца", MeasurementUnit: "шт."},
		{Name: "масло сливочное", MeasurementUnit: "г"},
		{Name: "масло растительное", MeasurementUnit: "мл"},
		{Name: "картофель", MeasurementUnit: "г"},
		{Name: "лук репчатый", MeasurementUnit: "г"},
		{Name: "морковь", MeasurementUnit: "г"},
		{Name: "чеснок", MeasurementUnit: "зубч."},
		{Name: "перец чёрный молотый", MeasurementUnit: "г"},
		{Name: "рис", MeasurementUnit: "г"},
		{Name: "макароны", MeasurementUnit: "г"},
	}
	return db.Create(&ingredients).Error
}
