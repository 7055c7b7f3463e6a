package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/BAlenkaA/foodgram-project-react/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB поднимает чистую in-memory SQLite со всей схемой
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeTag{},
		&models.IngredientAmount{},
		&models.Favorite{},
		&models.CartItem{},
		&models.Subscription{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTag(t *testing.T, db *gorm.DB, name string) models.Tag {
	t.Helper()
	sum := 0
	for _, b := range []byte(name) {
		sum = sum*31 + int(b)
	}
	tag := models.Tag{
		Name:  name,
		Color: fmt.Sprintf("#%06X", sum%0xFFFFFF),
		Slug:  name,
	}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ingredient).Error)
	return ingredient
}

// createRecipeAt создаёт рецепт напрямую с заданным created_at,
// чтобы проверки сортировки не зависели от скорости теста
func createRecipeAt(t *testing.T, db *gorm.DB, authorID uint, name string, createdAt time.Time) models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Image:       "media/recipes/" + name + ".png",
		Text:        "text",
		CookingTime: 10,
	}
	recipe.CreatedAt = createdAt
	require.NoError(t, db.Create(&recipe).Error)
	return recipe
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
