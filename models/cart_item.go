package models

import "time"

// CartItem - рецепт в списке покупок пользователя
type CartItem struct {
	ID        uint `gorm:"primarykey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_recipe"`
	RecipeID  uint `gorm:"not null;uniqueIndex:idx_cart_user_recipe"`
	CreatedAt time.Time

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
