package services

import (
	"errors"
	"strings"
	"time"

	"github.com/BAlenkaA/foodgram-project-react/models"

	"gorm.io/gorm"
)

// IngredientPair - пара (ингредиент, количество) из запроса.
// Amount указателем: отсутствующее количество отличается от нулевого.
type IngredientPair struct {
	ID     uint `json:"id"`
	Amount *int `json:"amount"`
}

// RecipeAttrs - скалярные поля рецепта. Nil-поле при обновлении
// означает "оставить прежнее значение".
type RecipeAttrs struct {
	Name        *string
	Text        *string
	Image       *string
	CookingTime *int
}

type RecipeFilter struct {
	AuthorID    *uint
	TagSlugs    []string
	FavoritedBy *uint
	InCartOf    *uint
}

type RecipeService struct {
	DB *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{DB: db}
}

// ValidateComposition проверяет теги, ингредиенты и время приготовления
// до любой записи в базу. Только чтение справочников, без побочных эффектов.
func (s *RecipeService) ValidateComposition(tagIDs []uint, ingredients []IngredientPair, cookingTime *int) error {
	if len(tagIDs) == 0 {
		return validationError(CodeEmptyTags, "Поле теги обязательно для заполнения")
	}
	seenTags := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seenTags[id] {
			return validationError(CodeDuplicateTag, "Повторяющиеся теги в запросе")
		}
		seenTags[id] = true
	}
	var tagCount int64
	if err := s.DB.Model(&models.Tag{}).Where("id IN ?", tagIDs).Count(&tagCount).Error; err != nil {
		return err
	}
	if tagCount != int64(len(tagIDs)) {
		return validationError(CodeUnknownTag, "Тег с указанным ID не найден")
	}

	if len(ingredients) == 0 {
		return validationError(CodeEmptyIngredients, "Поле ингредиенты обязательно для заполнения")
	}
	seenIngredients := make(map[uint]bool, len(ingredients))
	ids := make([]uint, 0, len(ingredients))
	for _, pair := range ingredients {
		if pair.Amount == nil || *pair.Amount <= 0 {
			return validationError(CodeInvalidAmount, "Количество ингредиента должно быть больше 0")
		}
		if seenIngredients[pair.ID] {
			return validationError(CodeDuplicateIngredient, "Повторяющиеся ингредиенты в запросе")
		}
		seenIngredients[pair.ID] = true
		ids = append(ids, pair.ID)
	}
	var ingredientCount int64
	if err := s.DB.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&ingredientCount).Error; err != nil {
		return err
	}
	if ingredientCount != int64(len(ids)) {
		return validationError(CodeUnknownIngredient, "Ингредиент с указанным ID не найден")
	}

	if cookingTime != nil && *cookingTime <= 0 {
		return validationError(CodeInvalidCookingTime, "Время приготовления должно быть положительным числом")
	}
	return nil
}

// Create создаёт рецепт вместе со связками тегов и ингредиентов
// в одной транзакции: либо всё, либо ничего.
func (s *RecipeService) Create(authorID uint, attrs RecipeAttrs, tagIDs []uint, ingredients []IngredientPair) (*models.Recipe, error) {
	if attrs.CookingTime == nil {
		return nil, validationError(CodeInvalidCookingTime, "Время приготовления должно быть положительным числом")
	}
	if err := s.ValidateComposition(tagIDs, ingredients, attrs.CookingTime); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		CookingTime: *attrs.CookingTime,
	}
	if attrs.Name != nil {
		recipe.Name = *attrs.Name
	}
	if attrs.Text != nil {
		recipe.Text = *attrs.Text
	}
	if attrs.Image != nil {
		recipe.Image = *attrs.Image
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return composeJunctions(tx, recipe.ID, tagIDs, ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(recipe.ID)
}

// Replace полностью заменяет состав рецепта: старые связки удаляются,
// новые создаются из запроса. Тег или ингредиент, не пришедший в запросе,
// исчезает, даже если раньше был. Скалярные поля с nil не трогаются.
func (s *RecipeService) Replace(recipeID, callerID uint, attrs RecipeAttrs, tagIDs []uint, ingredients []IngredientPair) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.DB.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(CodeRecipeNotFound, "Нет такого рецепта")
		}
		return nil, err
	}
	if recipe.AuthorID != callerID {
		return nil, permissionError(CodeNotAuthor, "Редактировать рецепт может только его автор")
	}
	if err := s.ValidateComposition(tagIDs, ingredients, attrs.CookingTime); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if attrs.Name != nil {
		updates["name"] = *attrs.Name
	}
	if attrs.Text != nil {
		updates["text"] = *attrs.Text
	}
	if attrs.Image != nil {
		updates["image"] = *attrs.Image
	}
	if attrs.CookingTime != nil {
		updates["cooking_time"] = *attrs.CookingTime
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientAmount{}).Error; err != nil {
			return err
		}
		if err := composeJunctions(tx, recipe.ID, tagIDs, ingredients); err != nil {
			return err
		}
		return tx.Model(&recipe).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(recipe.ID)
}

// Delete удаляет рецепт, доступно только автору
func (s *RecipeService) Delete(recipeID, callerID uint) error {
	var recipe models.Recipe
	if err := s.DB.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(CodeRecipeNotFound, "Нет такого рецепта")
		}
		return err
	}
	if recipe.AuthorID != callerID {
		return permissionError(CodeNotAuthor, "Удалить рецепт может только его автор")
	}
	return s.DB.Delete(&recipe).Error
}

func (s *RecipeService) Get(recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.DB.
		Preload("Author").
		Preload("Tags.Tag").
		Preload("Ingredients.Ingredient").
		First(&recipe, recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(CodeRecipeNotFound, "Нет такого рецепта")
		}
		return nil, err
	}
	return &recipe, nil
}

// List возвращает страницу рецептов (created_at DESC) и общее число
// под фильтрами автора, тегов, избранного и списка покупок
func (s *RecipeService) List(filter RecipeFilter, offset, limit int) ([]models.Recipe, int64, error) {
	q := s.DB.Model(&models.Recipe{})
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		q = q.Where("id IN (SELECT recipe_tags.recipe_id FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id WHERE tags.slug IN ?)", filter.TagSlugs)
	}
	if filter.FavoritedBy != nil {
		q = q.Where("id IN (SELECT recipe_id FROM favorites WHERE user_id = ?)", *filter.FavoritedBy)
	}
	if filter.InCartOf != nil {
		q = q.Where("id IN (SELECT recipe_id FROM cart_items WHERE user_id = ?)", *filter.InCartOf)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := q.
		Preload("Author").
		Preload("Tags.Tag").
		Preload("Ingredients.Ingredient").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// composeJunctions создаёт связки валидированного состава одним bulk-insert
// на таблицу. Нарушение уникального индекса здесь возможно только в обход
// валидации и превращается в ConflictError.
func composeJunctions(tx *gorm.DB, recipeID uint, tagIDs []uint, ingredients []IngredientPair) error {
	recipeTags := make([]models.RecipeTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		recipeTags = append(recipeTags, models.RecipeTag{RecipeID: recipeID, TagID: tagID})
	}
	if err := tx.Create(&recipeTags).Error; err != nil {
		if isUniqueViolation(err) {
			return conflictError(CodeDuplicateTag, "Тег уже привязан к рецепту")
		}
		return err
	}

	amounts := make([]models.IngredientAmount, 0, len(ingredients))
	for _, pair := range ingredients {
		amount := 0
		if pair.Amount != nil {
			amount = *pair.Amount
		}
		amounts = append(amounts, models.IngredientAmount{
			RecipeID:     recipeID,
			IngredientID: pair.ID,
			Amount:       amount,
		})
	}
	if err := tx.Create(&amounts).Error; err != nil {
		if isUniqueViolation(err) {
			return conflictError(CodeDuplicateIngredient, "Ингредиент уже привязан к рецепту")
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		errors.Is(err, gorm.ErrDuplicatedKey)
}
