package services

import (
	"log"
	"time"

	"github.com/BAlenkaA/foodgram-project-react/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// PurgeDeletedRecipes окончательно удаляет рецепты, помеченные удалёнными
// больше retention назад, вместе с их связками, избранным и корзинами
func PurgeDeletedRecipes(db *gorm.DB, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)

	var ids []uint
	err := db.Unscoped().Model(&models.Recipe{}).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id IN ?", ids).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id IN ?", ids).Delete(&models.IngredientAmount{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id IN ?", ids).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id IN ?", ids).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id IN ?", ids).Delete(&models.Recipe{}).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

// StartCleanupCron запускает ежедневную чистку удалённых рецептов в 03:00
func StartCleanupCron(db *gorm.DB) {
	c := cron.New()
	_, err := c.AddFunc("0 3 * * *", func() {
		purged, err := PurgeDeletedRecipes(db, 30*24*time.Hour)
		if err != nil {
			log.Printf("Cleanup cron error: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("Cleanup cron: purged %d deleted recipes", purged)
		}
	})
	if err != nil {
		log.Printf("Failed to schedule cleanup cron: %v", err)
		return
	}
	c.Start()
	log.Println("Cleanup cron scheduled (daily at 03:00)")
}
