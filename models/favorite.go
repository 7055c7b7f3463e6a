package models

import "time"

// Favorite - избранные рецепты пользователя.
// Без мягкого удаления: повторное добавление после удаления
// не должно упираться в уникальный индекс по старой строке.
type Favorite struct {
	ID        uint `gorm:"primarykey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  uint `gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	CreatedAt time.Time

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
