package database

import (
	"github.com/BAlenkaA/foodgram-project-react/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeTag{},
		&models.IngredientAmount{},
		&models.Favorite{},
		&models.CartItem{},
		&models.Subscription{},
	); err != nil {
		return err
	}

	// Индексы под частые выборки
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_recipes_created_at ON recipes(created_at DESC)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_cart_items_user_id ON cart_items(user_id)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_favorites_user_id ON favorites(user_id)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_subscriptions_subscriber_id ON subscriptions(subscriber_id)`).Error; err != nil {
		return err
	}

	return nil
}
