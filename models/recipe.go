package models

import "gorm.io/gorm"

type Recipe struct {
	gorm.Model
	AuthorID    uint   `json:"author_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"size:200;not null"`
	Image       string `json:"image" gorm:"type:text"`
	Text        string `json:"text" gorm:"type:text"`
	CookingTime int    `json:"cooking_time" gorm:"not null"`

	Author      User               `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Tags        []RecipeTag        `json:"-" gorm:"foreignKey:RecipeID"`
	Ingredients []IngredientAmount `json:"-" gorm:"foreignKey:RecipeID"`
}

// RecipeTag - связка рецепт-тег. Пара (recipe, tag) уникальна,
// уникальный индекс страхует от гонок при двойной отправке формы.
type RecipeTag struct {
	ID       uint `gorm:"primarykey"`
	RecipeID uint `gorm:"not null;uniqueIndex:idx_recipe_tag"`
	TagID    uint `gorm:"not null;uniqueIndex:idx_recipe_tag"`

	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tag    Tag    `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

// IngredientAmount - связка рецепт-ингредиент с количеством.
// Пара (recipe, ingredient) уникальна, amount строго положительный.
type IngredientAmount struct {
	ID           uint `gorm:"primarykey"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int  `gorm:"not null"`

	Recipe     Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}
